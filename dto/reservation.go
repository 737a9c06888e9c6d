package dto

import (
	"encoding/json"
	"time"
)

// CreateReservationRequest là DTO cho request đặt phòng
type CreateReservationRequest struct {
	RoomTypeID   uint   `json:"roomTypeId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Confirmed    bool   `json:"confirmed"` // true: tạo luôn ở trạng thái confirmed
	GuestName    string `json:"guestName,omitempty"`
	GuestEmail   string `json:"guestEmail,omitempty"`
	GuestPhone   string `json:"guestPhone,omitempty"`
}

// ChangeReservationStatusRequest là DTO cho request đổi trạng thái
type ChangeReservationStatusRequest struct {
	ReservationID uint `json:"reservationId" binding:"required"`
	Status        int  `json:"status"`
}

// MoveReservationRequest là DTO cho request chuyển reservation.
// Truyền roomTypeId để đổi loại phòng, hoặc individualRoomId để đổi phòng vật lý.
type MoveReservationRequest struct {
	ReservationID    uint  `json:"reservationId" binding:"required"`
	RoomTypeID       *uint `json:"roomTypeId"`
	IndividualRoomID *uint `json:"individualRoomId"`
}

// AssignRoomRequest là DTO cho request gán phòng vật lý
type AssignRoomRequest struct {
	ReservationID    uint `json:"reservationId" binding:"required"`
	IndividualRoomID uint `json:"individualRoomId" binding:"required"`
}

// PaymentStatusRequest là DTO cho trạng thái thanh toán do bên ngoài cung cấp
type PaymentStatusRequest struct {
	ReservationID uint `json:"reservationId" binding:"required"`
	PaymentStatus int  `json:"paymentStatus"`
}

// ReservationResponse là DTO cho response reservation
type ReservationResponse struct {
	ID               uint            `json:"id"`
	RoomTypeID       uint            `json:"roomTypeId"`
	IndividualRoomID *uint           `json:"individualRoomId"`
	RoomNumber       string          `json:"roomNumber,omitempty"`
	CheckInDate      string          `json:"checkInDate"`
	CheckOutDate     string          `json:"checkOutDate"`
	Adults           int             `json:"adults"`
	Children         int             `json:"children"`
	Status           int             `json:"status"`
	Price            int             `json:"price"`
	TotalPrice       int             `json:"totalPrice"`
	Nights           json.RawMessage `json:"nights,omitempty"`
	GuestRef         string          `json:"guestRef"`
	PaymentStatus    int             `json:"paymentStatus"`
	NeedsAssignment  bool            `json:"needsAssignment"`
	CreatedAt        time.Time       `json:"createdAt"`
}
