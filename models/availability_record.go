package models

import (
	"time"
)

// AvailabilityRecord là bản ghi ledger theo (room type, ngày).
// Không có bản ghi nghĩa là còn đủ toàn bộ số lượng.
type AvailabilityRecord struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	RoomTypeID        uint      `json:"roomTypeId" gorm:"uniqueIndex:idx_room_type_date"`
	Date              time.Time `json:"date" gorm:"uniqueIndex:idx_room_type_date"`
	AvailableQuantity int       `json:"availableQuantity"`
	Status            int       `json:"status" gorm:"default:0"`
	BlockReason       string    `json:"blockReason"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
