package repository

import (
	"context"

	"fleamarket/internal/domain/entity"
)

// ChatRepository is the message store: it owns chat room and chat message
// lifetime. Authorization is the caller's job; the store focuses purely on
// persistence and ordering.
type ChatRepository interface {
	// Room methods
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	GetRoom(ctx context.Context, id int64) (*entity.ChatRoom, error)
	GetRoomByTriple(ctx context.Context, buyerID, sellerID, productID int64) (*entity.ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID int64) ([]*entity.ChatRoom, error)

	// Message methods
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	ListMessages(ctx context.Context, roomID int64) ([]*entity.ChatMessage, error)
	ListMessagesAfter(ctx context.Context, roomID, afterID int64) ([]*entity.ChatMessage, error)
	LastMessage(ctx context.Context, roomID int64) (*entity.ChatMessage, error)
	MarkRead(ctx context.Context, roomID, readerID int64) error
	CountRoomUnread(ctx context.Context, roomID, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}
