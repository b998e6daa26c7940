package websocket

import (
	"encoding/json"

	"fleamarket/internal/domain/entity"
)

// Event kinds carried over the push channel, one JSON frame per event.
const (
	EventAuth        = "auth"
	EventChatMessage = "chat_message"
	EventMarkRead    = "mark_read"

	EventAuthSuccess        = "auth_success"
	EventNewMessage         = "new_message"
	EventMessagesMarkedRead = "messages_marked_read"
	EventError              = "error"
)

// Command is the typed form of a client frame. Frames are parsed and
// validated once at this boundary; handlers dispatch on the concrete type and
// never look at raw JSON again.
type Command interface {
	isCommand()
}

type AuthCommand struct {
	UserID int64
}

type ChatMessageCommand struct {
	ChatRoomID int64
	Message    string
}

type MarkReadCommand struct {
	ChatRoomID int64
}

func (AuthCommand) isCommand()        {}
func (ChatMessageCommand) isCommand() {}
func (MarkReadCommand) isCommand()    {}

// ParseError carries the client-facing message for a malformed frame.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

type inboundFrame struct {
	Type       string `json:"type"`
	UserID     int64  `json:"user_id"`
	ChatRoomID int64  `json:"chat_room_id"`
	Message    string `json:"message"`
}

// ParseCommand validates a raw frame and returns the typed command for it.
// Required-field checks happen here, per event kind, so every downstream
// handler receives a well-formed command.
func ParseCommand(data []byte) (Command, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, &ParseError{Message: "Invalid message format"}
	}

	switch frame.Type {
	case EventAuth:
		if frame.UserID == 0 {
			return nil, &ParseError{Message: "A user id is required to authenticate"}
		}
		return AuthCommand{UserID: frame.UserID}, nil

	case EventChatMessage:
		if frame.ChatRoomID == 0 || frame.Message == "" {
			return nil, &ParseError{Message: "Invalid message data"}
		}
		return ChatMessageCommand{ChatRoomID: frame.ChatRoomID, Message: frame.Message}, nil

	case EventMarkRead:
		if frame.ChatRoomID == 0 {
			return nil, &ParseError{Message: "A chat room id is required"}
		}
		return MarkReadCommand{ChatRoomID: frame.ChatRoomID}, nil

	default:
		return nil, &ParseError{Message: "Unknown message type"}
	}
}

// Server-to-client events.

type AuthSuccessEvent struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

type NewMessageEvent struct {
	Type       string              `json:"type"`
	ChatRoomID int64               `json:"chat_room_id"`
	Message    *entity.ChatMessage `json:"message"`
}

type MessagesMarkedReadEvent struct {
	Type       string `json:"type"`
	ChatRoomID int64  `json:"chat_room_id"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewAuthSuccessEvent(userID, timestamp int64) AuthSuccessEvent {
	return AuthSuccessEvent{Type: EventAuthSuccess, UserID: userID, Timestamp: timestamp}
}

func NewNewMessageEvent(roomID int64, message *entity.ChatMessage) NewMessageEvent {
	return NewMessageEvent{Type: EventNewMessage, ChatRoomID: roomID, Message: message}
}

func NewMessagesMarkedReadEvent(roomID int64) MessagesMarkedReadEvent {
	return MessagesMarkedReadEvent{Type: EventMessagesMarkedRead, ChatRoomID: roomID}
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}
