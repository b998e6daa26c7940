package entity

import "time"

type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_fav_pair;index;not null" json:"user_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_fav_pair;index;not null" json:"product_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
