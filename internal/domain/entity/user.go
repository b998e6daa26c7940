package entity

import "time"

type User struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username         string    `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Nickname         string    `gorm:"size:60;not null" json:"nickname"`
	Password         string    `gorm:"size:255;not null" json:"-"`
	ProfileImage     string    `gorm:"size:512" json:"profile_image,omitempty"`
	Rating           float64   `gorm:"default:0" json:"rating"`
	TransactionCount int       `gorm:"default:0" json:"transaction_count"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
