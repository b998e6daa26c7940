package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleamarket/internal/domain/entity"
	"fleamarket/pkg/errors"
)

type fakeBlockRepo struct {
	blocks map[[2]int64]bool
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[[2]int64]bool)}
}

func (f *fakeBlockRepo) Create(ctx context.Context, block *entity.Block) error {
	f.blocks[[2]int64{block.BlockerID, block.BlockedUserID}] = true
	return nil
}

func (f *fakeBlockRepo) Delete(ctx context.Context, blockerID, blockedUserID int64) error {
	delete(f.blocks, [2]int64{blockerID, blockedUserID})
	return nil
}

func (f *fakeBlockRepo) IsBlocked(ctx context.Context, blockerID, blockedUserID int64) (bool, error) {
	return f.blocks[[2]int64{blockerID, blockedUserID}], nil
}

func (f *fakeBlockRepo) ListByBlocker(ctx context.Context, blockerID int64) ([]*entity.Block, error) {
	var out []*entity.Block
	for pair := range f.blocks {
		if pair[0] == blockerID {
			out = append(out, &entity.Block{BlockerID: pair[0], BlockedUserID: pair[1]})
		}
	}
	return out, nil
}

func TestIsParticipant(t *testing.T) {
	access := NewChatAccess(newFakeBlockRepo())
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}

	assert.True(t, access.IsParticipant(room, 1))
	assert.True(t, access.IsParticipant(room, 2))
	assert.False(t, access.IsParticipant(room, 3))
}

func TestOtherParticipant(t *testing.T) {
	access := NewChatAccess(newFakeBlockRepo())
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}

	assert.Equal(t, int64(2), access.OtherParticipant(room, 1))
	assert.Equal(t, int64(1), access.OtherParticipant(room, 2))
}

func TestCanSendDeniesNonParticipant(t *testing.T) {
	access := NewChatAccess(newFakeBlockRepo())
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}

	err := access.CanSend(context.Background(), room, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCanSendDeniesBlockedSender(t *testing.T) {
	blockRepo := newFakeBlockRepo()
	access := NewChatAccess(blockRepo)
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}

	// The seller blocks the buyer: the buyer can no longer send.
	require.NoError(t, blockRepo.Create(context.Background(), &entity.Block{BlockerID: 2, BlockedUserID: 1}))

	err := access.CanSend(context.Background(), room, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BLOCKED_BY_RECIPIENT"))

	// The seller itself is unaffected.
	assert.NoError(t, access.CanSend(context.Background(), room, 2))
}

func TestCanSendAllowsSenderWhoBlockedRecipient(t *testing.T) {
	blockRepo := newFakeBlockRepo()
	access := NewChatAccess(blockRepo)
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}

	// The buyer blocking the seller hides content from the buyer's views but
	// does not gate the buyer's sends.
	require.NoError(t, blockRepo.Create(context.Background(), &entity.Block{BlockerID: 1, BlockedUserID: 2}))

	assert.NoError(t, access.CanSend(context.Background(), room, 1))
}

func TestCanSendReflectsUnblock(t *testing.T) {
	blockRepo := newFakeBlockRepo()
	access := NewChatAccess(blockRepo)
	room := &entity.ChatRoom{BuyerID: 1, SellerID: 2}
	ctx := context.Background()

	require.NoError(t, blockRepo.Create(ctx, &entity.Block{BlockerID: 2, BlockedUserID: 1}))
	require.Error(t, access.CanSend(ctx, room, 1))

	// Block state is re-checked on every send, so an unblock takes effect
	// immediately.
	require.NoError(t, blockRepo.Delete(ctx, 2, 1))
	assert.NoError(t, access.CanSend(ctx, room, 1))
}
