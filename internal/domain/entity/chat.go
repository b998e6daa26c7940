package entity

import "time"

// ChatRoom is a conversation scoped to exactly one (buyer, seller, product)
// triple. At most one room exists per triple; the lookup-or-create path in the
// chat use case enforces this under concurrency.
type ChatRoom struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"uniqueIndex:idx_room_triple;not null" json:"product_id"`
	BuyerID   int64     `gorm:"uniqueIndex:idx_room_triple;index;not null" json:"buyer_id"`
	SellerID  int64     `gorm:"uniqueIndex:idx_room_triple;index;not null" json:"seller_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

// ChatMessage ids are assigned by a single autoincrement sequence, so id order
// equals send order and the id doubles as the polling cursor. Messages are
// never edited; the only mutation is flipping IsRead to true.
type ChatMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatRoomID int64     `gorm:"index;not null" json:"chat_room_id"`
	SenderID   int64     `gorm:"index;not null" json:"sender_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
