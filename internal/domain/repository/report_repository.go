package repository

import (
	"context"

	"fleamarket/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
}
