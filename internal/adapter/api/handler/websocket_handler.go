package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "fleamarket/internal/infrastructure/websocket"
	"fleamarket/internal/usecase"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler owns the push channel: it upgrades connections and
// dispatches typed commands to the chat use case. Connections start
// unauthenticated; an auth frame binds them to a user in the registry.
type WebSocketHandler struct {
	chatUseCase *usecase.ChatUseCase
	authUseCase *usecase.AuthUseCase
	manager     *ws.Manager
}

func NewWebSocketHandler(chatUseCase *usecase.ChatUseCase, authUseCase *usecase.AuthUseCase, manager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		chatUseCase: chatUseCase,
		authUseCase: authUseCase,
		manager:     manager,
	}
}

// HandleWebSocket upgrades the request and starts the connection's read and
// write pumps. The client stays anonymous until it sends an auth frame.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("websocket upgrade failed: %v", err)
		return err
	}

	client := ws.NewClient(conn)

	go client.WritePump()
	go client.ReadPump(h.manager, h)

	return nil
}

// HandleFrame parses one inbound frame and dispatches on its command type.
// Failures are reported back over the same connection as error events; a bad
// frame never tears the connection down.
func (h *WebSocketHandler) HandleFrame(client *ws.Client, frame []byte) {
	cmd, err := ws.ParseCommand(frame)
	if err != nil {
		h.sendError(client, err)
		return
	}

	switch cmd := cmd.(type) {
	case ws.AuthCommand:
		h.handleAuth(client, cmd)
	case ws.ChatMessageCommand:
		h.handleChatMessage(client, cmd)
	case ws.MarkReadCommand:
		h.handleMarkRead(client, cmd)
	}
}

func (h *WebSocketHandler) handleAuth(client *ws.Client, cmd ws.AuthCommand) {
	ctx := context.Background()

	user, err := h.authUseCase.GetUser(ctx, cmd.UserID)
	if err != nil || user == nil {
		h.queueEvent(client, ws.NewErrorEvent("Unknown user"))
		return
	}

	h.manager.Register(cmd.UserID, client)
	h.queueEvent(client, ws.NewAuthSuccessEvent(cmd.UserID, time.Now().UnixMilli()))
}

func (h *WebSocketHandler) handleChatMessage(client *ws.Client, cmd ws.ChatMessageCommand) {
	if client.UserID == 0 {
		h.queueEvent(client, ws.NewErrorEvent("Authentication is required"))
		return
	}

	message, room, err := h.chatUseCase.SendMessage(context.Background(), client.UserID, cmd.ChatRoomID, cmd.Message)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.chatUseCase.BroadcastNewMessage(room, message)
}

func (h *WebSocketHandler) handleMarkRead(client *ws.Client, cmd ws.MarkReadCommand) {
	if client.UserID == 0 {
		h.queueEvent(client, ws.NewErrorEvent("Authentication is required"))
		return
	}

	ctx := context.Background()

	if err := h.chatUseCase.MarkRoomRead(ctx, client.UserID, cmd.ChatRoomID); err != nil {
		h.sendError(client, err)
		return
	}

	h.queueEvent(client, ws.NewMessagesMarkedReadEvent(cmd.ChatRoomID))
}

// sendError translates an internal error into a client-facing error event.
// Only messages written for clients cross the boundary; everything else
// collapses to a generic failure.
func (h *WebSocketHandler) sendError(client *ws.Client, err error) {
	message := "Failed to process message"

	switch e := err.(type) {
	case *errors.AppError:
		message = e.Message
	case *ws.ParseError:
		message = e.Message
	}

	h.queueEvent(client, ws.NewErrorEvent(message))
}

func (h *WebSocketHandler) queueEvent(client *ws.Client, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode websocket event: %v", err)
		return
	}
	client.Queue(payload)
}
