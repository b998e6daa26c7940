package entity

import "time"

type Report struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID        int64     `gorm:"index;not null" json:"reporter_id"`
	ReportedUserID    *int64    `json:"reported_user_id,omitempty"`
	ReportedProductID *int64    `json:"reported_product_id,omitempty"`
	Reason            string    `gorm:"size:255;not null" json:"reason"`
	Details           string    `gorm:"type:text" json:"details,omitempty"`
	Status            string    `gorm:"size:20;default:pending" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
