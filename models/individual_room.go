package models

import (
	"fmt"
	"time"

	"stayhub/constants"
)

type IndividualRoom struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RoomTypeID uint      `json:"roomTypeId" gorm:"index"`
	RoomNumber string    `json:"roomNumber" gorm:"index"` // Duy nhất trong cùng property
	Floor      int       `json:"floor"`
	Status     int       `json:"status" gorm:"default:0"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	RoomType RoomType `json:"roomType" gorm:"foreignKey:RoomTypeID"`
}

func (r *IndividualRoom) ValidateStatus() error {
	if r.Status < constants.RoomStatusClean || r.Status > constants.RoomStatusBlocked {
		return fmt.Errorf("invalid status: %d, must be between 0 and 5", r.Status)
	}
	return nil
}

// Bookable cho biết phòng còn nhận khách được không
func (r *IndividualRoom) Bookable() bool {
	return r.Status != constants.RoomStatusOutOfOrder && r.Status != constants.RoomStatusBlocked
}
