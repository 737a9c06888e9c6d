package models

import (
	"fmt"
	"time"
)

type RoomType struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PropertyID   uint      `json:"propertyId" gorm:"index"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`  // Tổng số phòng mỗi ngày
	BasePrice    int       `json:"basePrice"` // Giá cơ bản mỗi đêm
	MaxOccupancy int       `json:"maxOccupancy"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Property Property         `json:"property" gorm:"foreignKey:PropertyID"`
	Rooms    []IndividualRoom `json:"rooms" gorm:"foreignKey:RoomTypeID"`
}

func (r *RoomType) ValidateQuantity() error {
	if r.Quantity < 1 {
		return fmt.Errorf("invalid quantity: %d, must be at least 1", r.Quantity)
	}
	return nil
}
