package models

import (
	"time"
)

// Guest là bản ghi tối thiểu cho guest directory.
// Core chỉ giữ tham chiếu, quản lý hồ sơ khách thuộc hệ thống bên ngoài.
type Guest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
