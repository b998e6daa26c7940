package usecase

import (
	"context"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/logger"
)

type BlockUseCase struct {
	blockRepo repository.BlockRepository
	userRepo  repository.UserRepository
}

func NewBlockUseCase(blockRepo repository.BlockRepository, userRepo repository.UserRepository) *BlockUseCase {
	return &BlockUseCase{
		blockRepo: blockRepo,
		userRepo:  userRepo,
	}
}

func (uc *BlockUseCase) Block(ctx context.Context, blockerID, blockedUserID int64) (*entity.Block, error) {
	if blockerID == blockedUserID {
		return nil, errors.BadRequest("You cannot block yourself", nil)
	}

	target, err := uc.userRepo.GetByID(ctx, blockedUserID)
	if err != nil {
		return nil, errors.Internal("Failed to load user", err)
	}
	if target == nil {
		return nil, errors.NotFound("User", nil)
	}

	already, err := uc.blockRepo.IsBlocked(ctx, blockerID, blockedUserID)
	if err != nil {
		return nil, errors.Internal("Failed to check block status", err)
	}
	if already {
		return nil, errors.Conflict("User is already blocked")
	}

	block := &entity.Block{BlockerID: blockerID, BlockedUserID: blockedUserID}
	if err := uc.blockRepo.Create(ctx, block); err != nil {
		return nil, errors.Internal("Failed to create block", err)
	}

	logger.Info("User %d blocked user %d", blockerID, blockedUserID)
	return block, nil
}

func (uc *BlockUseCase) Unblock(ctx context.Context, blockerID, blockedUserID int64) error {
	blocked, err := uc.blockRepo.IsBlocked(ctx, blockerID, blockedUserID)
	if err != nil {
		return errors.Internal("Failed to check block status", err)
	}
	if !blocked {
		return errors.NotFound("Block", nil)
	}
	if err := uc.blockRepo.Delete(ctx, blockerID, blockedUserID); err != nil {
		return errors.Internal("Failed to delete block", err)
	}
	return nil
}

func (uc *BlockUseCase) ListBlocked(ctx context.Context, blockerID int64) ([]*entity.Block, error) {
	blocks, err := uc.blockRepo.ListByBlocker(ctx, blockerID)
	if err != nil {
		return nil, errors.Internal("Failed to list blocks", err)
	}
	return blocks, nil
}
