package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandAuth(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"auth","user_id":7}`))
	require.NoError(t, err)

	auth, ok := cmd.(AuthCommand)
	require.True(t, ok)
	assert.Equal(t, int64(7), auth.UserID)
}

func TestParseCommandChatMessage(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"chat_message","chat_room_id":3,"message":"hi"}`))
	require.NoError(t, err)

	msg, ok := cmd.(ChatMessageCommand)
	require.True(t, ok)
	assert.Equal(t, int64(3), msg.ChatRoomID)
	assert.Equal(t, "hi", msg.Message)
}

func TestParseCommandMarkRead(t *testing.T) {
	cmd, err := ParseCommand([]byte(`{"type":"mark_read","chat_room_id":3}`))
	require.NoError(t, err)

	mark, ok := cmd.(MarkReadCommand)
	require.True(t, ok)
	assert.Equal(t, int64(3), mark.ChatRoomID)
}

func TestParseCommandRejectsBadFrames(t *testing.T) {
	cases := []struct {
		name    string
		frame   string
		message string
	}{
		{"not json", `{{{`, "Invalid message format"},
		{"unknown type", `{"type":"subscribe"}`, "Unknown message type"},
		{"auth without user id", `{"type":"auth"}`, "A user id is required to authenticate"},
		{"chat message without room", `{"type":"chat_message","message":"hi"}`, "Invalid message data"},
		{"chat message without text", `{"type":"chat_message","chat_room_id":3}`, "Invalid message data"},
		{"mark read without room", `{"type":"mark_read"}`, "A chat room id is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := ParseCommand([]byte(tc.frame))
			assert.Nil(t, cmd)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.message, parseErr.Message)
		})
	}
}
