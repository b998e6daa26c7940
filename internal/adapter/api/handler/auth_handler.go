package handler

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=30"`
	Password     string `json:"password" validate:"required,min=8"`
	Nickname     string `json:"nickname" validate:"required,max=30"`
	ProfileImage string `json:"profile_image"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Nickname:     req.Nickname,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := c.Get("uid").(int64)

	user, err := h.authUseCase.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Nickname     string `json:"nickname" validate:"omitempty,max=30"`
	ProfileImage string `json:"profile_image"`
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Nickname:     req.Nickname,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
