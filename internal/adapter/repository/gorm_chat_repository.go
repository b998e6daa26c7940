package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
)

type gormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) repository.ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *gormChatRepository) GetRoom(ctx context.Context, id int64) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormChatRepository) GetRoomByTriple(ctx context.Context, buyerID, sellerID, productID int64) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND seller_id = ? AND product_id = ?", buyerID, sellerID, productID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormChatRepository) ListRoomsForUser(ctx context.Context, userID int64) ([]*entity.ChatRoom, error) {
	var rooms []*entity.ChatRoom
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *gormChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	// The autoincrement primary key is the single sequence that makes message
	// ids strictly increasing; the poll cursor depends on it.
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormChatRepository) ListMessages(ctx context.Context, roomID int64) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *gormChatRepository) ListMessagesAfter(ctx context.Context, roomID, afterID int64) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ? AND id > ?", roomID, afterID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *gormChatRepository) LastMessage(ctx context.Context, roomID int64) (*entity.ChatMessage, error) {
	var message entity.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *gormChatRepository) MarkRead(ctx context.Context, roomID, readerID int64) error {
	// Flips every message in the room not sent by the reader. Running it
	// again with no new messages is a no-op, so concurrent calls from the
	// push and poll channels converge to the same state.
	return r.db.WithContext(ctx).
		Model(&entity.ChatMessage{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		Update("is_read", true).Error
}

func (r *gormChatRepository) CountRoomUnread(ctx context.Context, roomID, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ChatMessage{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Count(&count).Error
	return count, err
}

func (r *gormChatRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ChatMessage{}).
		Joins("JOIN chat_rooms ON chat_rooms.id = chat_messages.chat_room_id").
		Where("(chat_rooms.buyer_id = ? OR chat_rooms.seller_id = ?)", userID, userID).
		Where("chat_messages.sender_id <> ? AND chat_messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
