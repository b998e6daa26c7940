package repository

import (
	"context"

	"fleamarket/internal/domain/entity"
)

type BlockRepository interface {
	Create(ctx context.Context, block *entity.Block) error
	Delete(ctx context.Context, blockerID, blockedUserID int64) error
	ListByBlocker(ctx context.Context, blockerID int64) ([]*entity.Block, error)

	// IsBlocked reports whether blockerID has blocked blockedUserID. Block
	// state can change mid-conversation, so send paths must call this on
	// every send, not just at room-open time.
	IsBlocked(ctx context.Context, blockerID, blockedUserID int64) (bool, error)
}
