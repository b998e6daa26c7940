package service

import (
	"context"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
)

// ChatAccess decides who may read from and send to a chat room. Every send
// path (REST and websocket) must pass CanSend before a message is persisted,
// and every read path must pass IsParticipant before message contents are
// returned.
type ChatAccess struct {
	blockRepo repository.BlockRepository
}

func NewChatAccess(blockRepo repository.BlockRepository) *ChatAccess {
	return &ChatAccess{blockRepo: blockRepo}
}

func (s *ChatAccess) IsParticipant(room *entity.ChatRoom, userID int64) bool {
	return room.BuyerID == userID || room.SellerID == userID
}

func (s *ChatAccess) OtherParticipant(room *entity.ChatRoom, userID int64) int64 {
	if room.BuyerID == userID {
		return room.SellerID
	}
	return room.BuyerID
}

// CanSend denies with Forbidden when the sender is not a participant, and
// with BlockedByRecipient when the other participant has blocked the sender.
// The block check runs on every send because block state can change while a
// conversation is open. The reverse direction (sender blocked the recipient)
// only hides the recipient's content from the sender's views; it does not
// gate sends.
func (s *ChatAccess) CanSend(ctx context.Context, room *entity.ChatRoom, senderID int64) error {
	if !s.IsParticipant(room, senderID) {
		return errors.Forbidden("You are not allowed to send messages to this chat room", nil)
	}

	recipientID := s.OtherParticipant(room, senderID)
	blocked, err := s.blockRepo.IsBlocked(ctx, recipientID, senderID)
	if err != nil {
		return errors.Internal("Failed to check block status", err)
	}
	if blocked {
		return errors.BlockedByRecipient(nil)
	}

	return nil
}
