package entity

import "time"

// Block is a directed relationship: the blocker no longer sees the blocked
// user's rooms, products and comments, and the blocked user cannot send chat
// messages to the blocker.
type Block struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockerID     int64     `gorm:"uniqueIndex:idx_block_pair;index;not null" json:"blocker_id"`
	BlockedUserID int64     `gorm:"uniqueIndex:idx_block_pair;not null" json:"blocked_user_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Block) TableName() string {
	return "blocks"
}
