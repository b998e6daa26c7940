package handler

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type createReportRequest struct {
	ReportedUserID    *int64 `json:"reported_user_id"`
	ReportedProductID *int64 `json:"reported_product_id"`
	Reason            string `json:"reason" validate:"required"`
	Details           string `json:"details"`
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	report, err := h.reportUseCase.Create(c.Request().Context(), userID, usecase.CreateReportInput{
		ReportedUserID:    req.ReportedUserID,
		ReportedProductID: req.ReportedProductID,
		Reason:            req.Reason,
		Details:           req.Details,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}
