package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createChatRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	SellerID  int64 `json:"seller_id" validate:"required"`
}

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// CreateChat opens the room for (current user, seller, product), returning
// the existing room when the buyer already started this conversation.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	room, err := h.chatUseCase.GetOrCreateRoom(c.Request().Context(), userID, usecase.CreateRoomInput{
		ProductID: req.ProductID,
		SellerID:  req.SellerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, room)
}

// GetUserChats lists the authenticated user's rooms, newest first.
func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(int64)

	rooms, err := h.chatUseCase.ListUserRooms(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, rooms)
}

// GetUnreadCount returns the user's unread total. It intentionally never
// errors; a failure inside the aggregator degrades to a zero count.
func (h *ChatHandler) GetUnreadCount(c echo.Context) error {
	userID := c.Get("uid").(int64)

	count := h.chatUseCase.UnreadCount(c.Request().Context(), userID)

	return response.Success(c, map[string]int64{"count": count})
}

// GetChatByID returns one room with participants, product and block state.
func (h *ChatHandler) GetChatByID(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	detail, err := h.chatUseCase.GetRoomDetail(c.Request().Context(), userID, roomID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

// GetChatMessages returns the room's full ordered message list and marks the
// room read for the caller.
func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	messages, err := h.chatUseCase.ListRoomMessages(c.Request().Context(), userID, roomID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// PollChatMessages returns messages newer than the last_message_id cursor.
// An empty array means the client is caught up.
func (h *ChatHandler) PollChatMessages(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	var lastMessageID int64
	if raw := c.QueryParam("last_message_id"); raw != "" {
		lastMessageID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || lastMessageID < 0 {
			return response.Error(c, errors.BadRequest("Invalid last_message_id", err))
		}
	}

	messages, err := h.chatUseCase.PollRoomMessages(c.Request().Context(), userID, roomID, lastMessageID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// SendMessage persists a message and then push-notifies both participants'
// live connections best-effort. The response reports persistence, not push
// delivery.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(int64)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, room, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, roomID, req.Message)
	if err != nil {
		return response.Error(c, err)
	}

	h.chatUseCase.BroadcastNewMessage(room, message)

	return response.Created(c, message)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid id", err)
	}
	return id, nil
}
