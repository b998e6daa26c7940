package repository

import (
	"context"

	"gorm.io/gorm"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
)

type gormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) repository.ReportRepository {
	return &gormReportRepository{db: db}
}

func (r *gormReportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
