package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleamarket/internal/adapter/api"
	gormrepo "fleamarket/internal/adapter/repository"
	"fleamarket/internal/domain/entity"
	ws "fleamarket/internal/infrastructure/websocket"
	"fleamarket/internal/usecase"
	"fleamarket/pkg/response"
)

type handlerFixture struct {
	e       *echo.Echo
	handler *ChatHandler
	chat    *usecase.ChatUseCase

	buyer   *entity.User
	seller  *entity.User
	product *entity.Product
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	db, err := gormrepo.OpenDB(":memory:")
	require.NoError(t, err)

	userRepo := gormrepo.NewGormUserRepository(db)
	productRepo := gormrepo.NewGormProductRepository(db)
	chatRepo := gormrepo.NewGormChatRepository(db)
	blockRepo := gormrepo.NewGormBlockRepository(db)

	ctx := context.Background()

	buyer := &entity.User{Username: "buyer", Nickname: "Buyer", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, buyer))
	seller := &entity.User{Username: "seller", Nickname: "Seller", Password: "x"}
	require.NoError(t, userRepo.Create(ctx, seller))

	product := &entity.Product{
		Title:       "Lamp",
		Description: "Warm light",
		Price:       12000,
		Status:      entity.ProductStatusOnSale,
		SellerID:    seller.ID,
	}
	require.NoError(t, productRepo.Create(ctx, product))

	chat := usecase.NewChatUseCase(chatRepo, userRepo, productRepo, blockRepo, ws.NewManager())

	e := echo.New()
	e.Validator = api.NewValidator()

	return &handlerFixture{
		e:       e,
		handler: NewChatHandler(chat),
		chat:    chat,
		buyer:   buyer,
		seller:  seller,
		product: product,
	}
}

func (f *handlerFixture) request(method, path, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set("uid", userID)
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func (f *handlerFixture) openRoom(t *testing.T) *entity.ChatRoom {
	t.Helper()

	room, err := f.chat.GetOrCreateRoom(context.Background(), f.buyer.ID, usecase.CreateRoomInput{
		ProductID: f.product.ID,
		SellerID:  f.seller.ID,
	})
	require.NoError(t, err)
	return room
}

func TestCreateChat(t *testing.T) {
	f := newHandlerFixture(t)

	body, _ := json.Marshal(map[string]int64{
		"product_id": f.product.ID,
		"seller_id":  f.seller.ID,
	})
	c, rec := f.request(http.MethodPost, "/v1/chats", string(body), f.buyer.ID)

	require.NoError(t, f.handler.CreateChat(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
}

func TestCreateChatRejectsMissingFields(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/chats", `{"product_id": 1}`, f.buyer.ID)

	require.NoError(t, f.handler.CreateChat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestSendMessageAndPoll(t *testing.T) {
	f := newHandlerFixture(t)
	room := f.openRoom(t)

	c, rec := f.request(http.MethodPost, "/v1/chats/:id/messages", `{"message":"hi there"}`, f.buyer.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(room.ID, 10))

	require.NoError(t, f.handler.SendMessage(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The seller polls from zero and sees it.
	c, rec = f.request(http.MethodGet, "/v1/chats/:id/messages/poll?last_message_id=0", "", f.seller.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(room.ID, 10))

	require.NoError(t, f.handler.PollChatMessages(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hi there")
}

func TestSendMessageToForeignRoomIsForbidden(t *testing.T) {
	f := newHandlerFixture(t)
	room := f.openRoom(t)

	c, rec := f.request(http.MethodPost, "/v1/chats/:id/messages", `{"message":"hi"}`, 9999)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(room.ID, 10))

	require.NoError(t, f.handler.SendMessage(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestSendMessageToUnknownRoomIsNotFound(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/chats/:id/messages", `{"message":"hi"}`, f.buyer.ID)
	c.SetParamNames("id")
	c.SetParamValues("424242")

	require.NoError(t, f.handler.SendMessage(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPollRejectsBadCursor(t *testing.T) {
	f := newHandlerFixture(t)
	room := f.openRoom(t)

	c, rec := f.request(http.MethodGet, "/v1/chats/:id/messages/poll?last_message_id=abc", "", f.buyer.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(room.ID, 10))

	require.NoError(t, f.handler.PollChatMessages(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnreadCountAlwaysSucceeds(t *testing.T) {
	f := newHandlerFixture(t)
	room := f.openRoom(t)

	_, _, err := f.chat.SendMessage(context.Background(), f.buyer.ID, room.ID, "unread")
	require.NoError(t, err)

	c, rec := f.request(http.MethodGet, "/v1/chats/unread", "", f.seller.ID)
	require.NoError(t, f.handler.GetUnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	// A user with no rooms gets a zero, never an error.
	c, rec = f.request(http.MethodGet, "/v1/chats/unread", "", 9999)
	require.NoError(t, f.handler.GetUnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestGetChatByIDRejectsBadID(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.request(http.MethodGet, "/v1/chats/:id", "", f.buyer.ID)
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")

	require.NoError(t, f.handler.GetChatByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
