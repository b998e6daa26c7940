package handler

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/response"
)

type BlockHandler struct {
	blockUseCase *usecase.BlockUseCase
}

func NewBlockHandler(blockUseCase *usecase.BlockUseCase) *BlockHandler {
	return &BlockHandler{
		blockUseCase: blockUseCase,
	}
}

type blockRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

func (h *BlockHandler) BlockUser(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	block, err := h.blockUseCase.Block(c.Request().Context(), userID, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, block)
}

func (h *BlockHandler) UnblockUser(c echo.Context) error {
	blockedID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	if err := h.blockUseCase.Unblock(c.Request().Context(), userID, blockedID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"deleted": true})
}

func (h *BlockHandler) ListBlocked(c echo.Context) error {
	userID := c.Get("uid").(int64)

	blocks, err := h.blockUseCase.ListBlocked(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, blocks)
}
