package usecase

import (
	"context"
	"encoding/json"
	"html"
	"strings"
	"sync"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/internal/domain/service"
	"fleamarket/internal/infrastructure/ratelimit"
	ws "fleamarket/internal/infrastructure/websocket"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	blockRepo   repository.BlockRepository
	access      *service.ChatAccess
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter

	// Serializes the lookup-or-create path so concurrent requests for the
	// same (buyer, seller, product) triple cannot insert duplicate rooms.
	roomMu sync.Mutex
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	blockRepo repository.BlockRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		blockRepo:   blockRepo,
		access:      service.NewChatAccess(blockRepo),
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type CreateRoomInput struct {
	ProductID int64
	SellerID  int64
}

// RoomSummary decorates a room for the room-list view.
type RoomSummary struct {
	*entity.ChatRoom
	OtherUser   *entity.User        `json:"other_user,omitempty"`
	Product     *entity.Product     `json:"product,omitempty"`
	LastMessage *entity.ChatMessage `json:"last_message,omitempty"`
	UnreadCount int64               `json:"unread_count"`
}

// RoomDetail decorates a room for the room-detail view.
type RoomDetail struct {
	*entity.ChatRoom
	Buyer       *entity.User    `json:"buyer,omitempty"`
	Seller      *entity.User    `json:"seller,omitempty"`
	OtherUser   *entity.User    `json:"other_user,omitempty"`
	Product     *entity.Product `json:"product,omitempty"`
	IsBlocked   bool            `json:"is_blocked"`
	IsBlockedBy bool            `json:"is_blocked_by"`
}

// GetOrCreateRoom returns the room for (buyer, seller, product), creating it
// on first contact. The triple lookup is re-checked inside a critical section
// so a concurrent creator observes the first caller's room, never a duplicate.
func (uc *ChatUseCase) GetOrCreateRoom(ctx context.Context, buyerID int64, input CreateRoomInput) (*entity.ChatRoom, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "create_chat")
	if !allowed {
		logger.Warn("GetOrCreateRoom rate limited: user %d must wait %v", buyerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before opening another chat", waitTime)
	}

	if buyerID == input.SellerID {
		return nil, errors.BadRequest("You cannot open a chat with yourself", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Internal("Failed to load product", err)
	}
	if product == nil {
		return nil, errors.BadRequest("Product not found", nil)
	}
	if product.SellerID != input.SellerID {
		return nil, errors.BadRequest("Seller does not match the product", nil)
	}

	uc.roomMu.Lock()
	defer uc.roomMu.Unlock()

	room, err := uc.chatRepo.GetRoomByTriple(ctx, buyerID, input.SellerID, input.ProductID)
	if err != nil {
		return nil, errors.Internal("Failed to look up chat room", err)
	}
	if room != nil {
		return room, nil
	}

	room = &entity.ChatRoom{
		ProductID: input.ProductID,
		BuyerID:   buyerID,
		SellerID:  input.SellerID,
	}
	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, errors.Internal("Failed to create chat room", err)
	}

	logger.Info("Chat room %d created: buyer %d, seller %d, product %d", room.ID, buyerID, input.SellerID, input.ProductID)
	return room, nil
}

// ListUserRooms returns the user's rooms, newest first, decorated with the
// other participant, product, last message and unread count. Rooms whose
// other participant the user has blocked are filtered out.
func (uc *ChatUseCase) ListUserRooms(ctx context.Context, userID int64) ([]*RoomSummary, error) {
	rooms, err := uc.chatRepo.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list chat rooms", err)
	}

	blocks, err := uc.blockRepo.ListByBlocker(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load block list", err)
	}
	blockedIDs := make(map[int64]bool, len(blocks))
	for _, block := range blocks {
		blockedIDs[block.BlockedUserID] = true
	}

	summaries := make([]*RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		otherID := uc.access.OtherParticipant(room, userID)
		if blockedIDs[otherID] {
			continue
		}

		otherUser, err := uc.userRepo.GetByID(ctx, otherID)
		if err != nil {
			return nil, errors.Internal("Failed to load user", err)
		}
		product, err := uc.productRepo.GetByID(ctx, room.ProductID)
		if err != nil {
			return nil, errors.Internal("Failed to load product", err)
		}
		lastMessage, err := uc.chatRepo.LastMessage(ctx, room.ID)
		if err != nil {
			return nil, errors.Internal("Failed to load last message", err)
		}
		unread, err := uc.chatRepo.CountRoomUnread(ctx, room.ID, userID)
		if err != nil {
			return nil, errors.Internal("Failed to count unread messages", err)
		}

		summaries = append(summaries, &RoomSummary{
			ChatRoom:    room,
			OtherUser:   otherUser,
			Product:     product,
			LastMessage: lastMessage,
			UnreadCount: unread,
		})
	}

	return summaries, nil
}

// GetRoomDetail returns one room with participants, product and both
// directions of block state.
func (uc *ChatUseCase) GetRoomDetail(ctx context.Context, userID, roomID int64) (*RoomDetail, error) {
	room, err := uc.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !uc.access.IsParticipant(room, userID) {
		return nil, errors.Forbidden("You do not have access to this chat room", nil)
	}

	otherID := uc.access.OtherParticipant(room, userID)

	buyer, err := uc.userRepo.GetByID(ctx, room.BuyerID)
	if err != nil {
		return nil, errors.Internal("Failed to load user", err)
	}
	seller, err := uc.userRepo.GetByID(ctx, room.SellerID)
	if err != nil {
		return nil, errors.Internal("Failed to load user", err)
	}
	product, err := uc.productRepo.GetByID(ctx, room.ProductID)
	if err != nil {
		return nil, errors.Internal("Failed to load product", err)
	}

	isBlocked, err := uc.blockRepo.IsBlocked(ctx, userID, otherID)
	if err != nil {
		return nil, errors.Internal("Failed to check block status", err)
	}
	isBlockedBy, err := uc.blockRepo.IsBlocked(ctx, otherID, userID)
	if err != nil {
		return nil, errors.Internal("Failed to check block status", err)
	}

	otherUser := seller
	if otherID == room.BuyerID {
		otherUser = buyer
	}

	return &RoomDetail{
		ChatRoom:    room,
		Buyer:       buyer,
		Seller:      seller,
		OtherUser:   otherUser,
		Product:     product,
		IsBlocked:   isBlocked,
		IsBlockedBy: isBlockedBy,
	}, nil
}

// SendMessage validates, sanitizes and persists one message. It does not
// push-deliver; boundary handlers follow up with BroadcastNewMessage so the
// poll channel stays the guaranteed-eventual path either way. The room is
// returned alongside the message so the fan-out needs no second lookup.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, roomID int64, text string) (*entity.ChatMessage, *entity.ChatRoom, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, errors.BadRequest("Message text is required", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("SendMessage rate limited: user %d must wait %v", senderID, waitTime)
		return nil, nil, errors.TooManyRequests("Rate limit exceeded. Please slow down", waitTime)
	}

	room, err := uc.getRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	if err := uc.access.CanSend(ctx, room, senderID); err != nil {
		return nil, nil, err
	}

	message := &entity.ChatMessage{
		ChatRoomID: roomID,
		SenderID:   senderID,
		// Markup metacharacters are escaped before storage so stored text can
		// never replay as executable markup.
		Message: html.EscapeString(text),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, nil, errors.Internal("Failed to save message", err)
	}

	return message, room, nil
}

// BroadcastNewMessage pushes a new_message event to both participants'
// live connections. Best-effort: delivery failures are expected and covered
// by the poll channel.
func (uc *ChatUseCase) BroadcastNewMessage(room *entity.ChatRoom, message *entity.ChatMessage) {
	payload, err := json.Marshal(ws.NewNewMessageEvent(room.ID, message))
	if err != nil {
		logger.Error("Failed to encode new_message event: %v", err)
		return
	}

	uc.wsManager.SendToUser(room.BuyerID, payload)
	uc.wsManager.SendToUser(room.SellerID, payload)
}

// ListRoomMessages returns the full ordered message list of a room and marks
// everything the reader hasn't sent as read.
func (uc *ChatUseCase) ListRoomMessages(ctx context.Context, userID, roomID int64) ([]*entity.ChatMessage, error) {
	room, err := uc.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !uc.access.IsParticipant(room, userID) {
		return nil, errors.Forbidden("You do not have access to this chat room", nil)
	}

	messages, err := uc.chatRepo.ListMessages(ctx, roomID)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}

	if err := uc.chatRepo.MarkRead(ctx, roomID, userID); err != nil {
		return nil, errors.Internal("Failed to mark messages as read", err)
	}

	return messages, nil
}

// PollRoomMessages returns the messages newer than the client's cursor.
// lastMessageID = 0 means from the beginning. When the suffix contains a
// message from the other participant, the whole room is marked read — opening
// or polling a room intentionally clears its unread state.
func (uc *ChatUseCase) PollRoomMessages(ctx context.Context, userID, roomID, lastMessageID int64) ([]*entity.ChatMessage, error) {
	room, err := uc.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !uc.access.IsParticipant(room, userID) {
		return nil, errors.Forbidden("You do not have access to this chat room", nil)
	}

	messages, err := uc.chatRepo.ListMessagesAfter(ctx, roomID, lastMessageID)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}

	for _, message := range messages {
		if message.SenderID != userID {
			if err := uc.chatRepo.MarkRead(ctx, roomID, userID); err != nil {
				return nil, errors.Internal("Failed to mark messages as read", err)
			}
			break
		}
	}

	if messages == nil {
		messages = []*entity.ChatMessage{}
	}
	return messages, nil
}

// MarkRoomRead flips every message in the room not sent by the reader to
// read. Idempotent; racing calls from the push and poll channels converge.
func (uc *ChatUseCase) MarkRoomRead(ctx context.Context, userID, roomID int64) error {
	room, err := uc.getRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !uc.access.IsParticipant(room, userID) {
		return errors.Forbidden("You do not have access to this chat room", nil)
	}

	if err := uc.chatRepo.MarkRead(ctx, roomID, userID); err != nil {
		return errors.Internal("Failed to mark messages as read", err)
	}
	return nil
}

// UnreadCount returns the user's unread total across all rooms. It never
// fails: any internal error degrades to 0 so a broken badge cannot break the
// page.
func (uc *ChatUseCase) UnreadCount(ctx context.Context, userID int64) int64 {
	count, err := uc.chatRepo.CountUnread(ctx, userID)
	if err != nil {
		logger.Error("Failed to count unread messages for user %d: %v", userID, err)
		return 0
	}
	return count
}

func (uc *ChatUseCase) getRoom(ctx context.Context, roomID int64) (*entity.ChatRoom, error) {
	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, errors.Internal("Failed to load chat room", err)
	}
	if room == nil {
		return nil, errors.NotFound("Chat room", nil)
	}
	return room, nil
}
