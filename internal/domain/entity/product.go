package entity

import "time"

const (
	ProductStatusOnSale   = "on_sale"
	ProductStatusReserved = "reserved"
	ProductStatusSold     = "sold"
)

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Status      string    `gorm:"size:20;default:on_sale" json:"status"`
	Category    string    `gorm:"size:60;index" json:"category"`
	Location    string    `gorm:"size:255" json:"location"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	SellerID    int64     `gorm:"index;not null" json:"seller_id"`
	BuyerID     *int64    `json:"buyer_id,omitempty"`
	ViewCount   int64     `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
