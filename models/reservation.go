package models

import (
	"encoding/json"
	"time"

	"stayhub/constants"
)

type Reservation struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	RoomTypeID       uint            `json:"roomTypeId" gorm:"index"`
	IndividualRoomID *uint           `json:"individualRoomId" gorm:"index"`
	CheckInDate      time.Time       `json:"checkInDate" gorm:"index"`
	CheckOutDate     time.Time       `json:"checkOutDate" gorm:"index"` // exclusive
	Adults           int             `json:"adults"`
	Children         int             `json:"children"`
	Status           int             `json:"status" gorm:"default:0"`
	Price            int             `json:"price"`                        // Tổng giá các đêm
	TotalPrice       int             `json:"totalPrice"`                   // Giá cuối cùng
	Nights           json.RawMessage `json:"nights" gorm:"type:json"`      // Chi tiết giá từng đêm
	GuestRef         string          `json:"guestRef" gorm:"index"`        // ID khách từ guest directory bên ngoài
	GuestName        string          `json:"guestName,omitempty"`
	GuestEmail       string          `json:"guestEmail,omitempty"`
	GuestPhone       string          `json:"guestPhone,omitempty"`
	PaymentStatus    int             `json:"paymentStatus" gorm:"default:0"` // Do collaborator thanh toán cung cấp
	NeedsAssignment  bool            `json:"needsAssignment" gorm:"default:false"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	RoomType       RoomType        `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	IndividualRoom *IndividualRoom `json:"individualRoom" gorm:"foreignKey:IndividualRoomID"`
}

// NightRate là chi tiết giá một đêm trong rate breakdown
type NightRate struct {
	Date   string `json:"date"`
	Price  int    `json:"price"`
	RuleID *uint  `json:"ruleId,omitempty"`
}

// Active cho biết reservation còn chiếm inventory hay không.
// checked_out, cancelled và no_show không giữ phòng.
func (r *Reservation) Active() bool {
	switch r.Status {
	case constants.ReservationStatusTentative,
		constants.ReservationStatusConfirmed,
		constants.ReservationStatusCheckedIn:
		return true
	}
	return false
}

// CoversDate kiểm tra ngày d có nằm trong kỳ lưu trú không (check-out exclusive)
func (r *Reservation) CoversDate(d time.Time) bool {
	return !d.Before(r.CheckInDate) && d.Before(r.CheckOutDate)
}

// Overlaps kiểm tra kỳ lưu trú có giao với [from, to) không
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckInDate.Before(to) && r.CheckOutDate.After(from)
}
