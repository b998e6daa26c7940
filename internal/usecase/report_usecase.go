package usecase

import (
	"context"
	"strings"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
)

type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

type CreateReportInput struct {
	ReportedUserID    *int64
	ReportedProductID *int64
	Reason            string
	Details           string
}

func (uc *ReportUseCase) Create(ctx context.Context, reporterID int64, input CreateReportInput) (*entity.Report, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, errors.BadRequest("A reason is required", nil)
	}
	if input.ReportedUserID == nil && input.ReportedProductID == nil {
		return nil, errors.BadRequest("A report target is required", nil)
	}

	report := &entity.Report{
		ReporterID:        reporterID,
		ReportedUserID:    input.ReportedUserID,
		ReportedProductID: input.ReportedProductID,
		Reason:            input.Reason,
		Details:           input.Details,
		Status:            "pending",
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, errors.Internal("Failed to create report", err)
	}
	return report, nil
}
