package repository

import (
	"context"

	"gorm.io/gorm"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
)

type gormBlockRepository struct {
	db *gorm.DB
}

func NewGormBlockRepository(db *gorm.DB) repository.BlockRepository {
	return &gormBlockRepository{db: db}
}

func (r *gormBlockRepository) Create(ctx context.Context, block *entity.Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *gormBlockRepository) Delete(ctx context.Context, blockerID, blockedUserID int64) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_user_id = ?", blockerID, blockedUserID).
		Delete(&entity.Block{}).Error
}

func (r *gormBlockRepository) ListByBlocker(ctx context.Context, blockerID int64) ([]*entity.Block, error) {
	var blocks []*entity.Block
	err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *gormBlockRepository) IsBlocked(ctx context.Context, blockerID, blockedUserID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Block{}).
		Where("blocker_id = ? AND blocked_user_id = ?", blockerID, blockedUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
