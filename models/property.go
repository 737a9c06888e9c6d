package models

import (
	"time"
)

type Property struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Province   string    `json:"province"`
	District   string    `json:"district"`
	Ward       string    `json:"ward"`
	Synced     bool      `json:"synced" gorm:"default:false"` // Được quản lý bởi PMS bên ngoài
	SyncSource string    `json:"syncSource"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	RoomTypes []RoomType `json:"roomTypes" gorm:"foreignKey:PropertyID"`
}
