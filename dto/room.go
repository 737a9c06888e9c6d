package dto

import (
	"time"
)

// CreateRoomTypeRequest là DTO cho request tạo room type
type CreateRoomTypeRequest struct {
	PropertyID   uint   `json:"propertyId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	BasePrice    int    `json:"basePrice" binding:"required"`
	MaxOccupancy int    `json:"maxOccupancy"`
	Description  string `json:"description"`
}

// UpdateRoomTypeRequest là DTO cho request cập nhật room type
type UpdateRoomTypeRequest struct {
	ID           uint   `json:"id" binding:"required"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	BasePrice    int    `json:"basePrice"`
	MaxOccupancy int    `json:"maxOccupancy"`
	Description  string `json:"description"`
}

// RoomTypeResponse là DTO cho response room type
type RoomTypeResponse struct {
	ID           uint      `json:"id"`
	PropertyID   uint      `json:"propertyId"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	BasePrice    int       `json:"basePrice"`
	MaxOccupancy int       `json:"maxOccupancy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GenerateRoomsRequest là DTO cho request sinh phòng hàng loạt
type GenerateRoomsRequest struct {
	RoomTypeID  uint   `json:"roomTypeId" binding:"required"`
	Prefix      string `json:"prefix"`
	StartNumber int    `json:"startNumber" binding:"required"`
	Count       int    `json:"count" binding:"required"`
	Floor       int    `json:"floor"`
}

// RoomStatusRequest là DTO cho request cập nhật trạng thái phòng
type RoomStatusRequest struct {
	RoomID uint `json:"roomId" binding:"required"`
	Status int  `json:"status"`
}

// IndividualRoomResponse là DTO cho response phòng vật lý
type IndividualRoomResponse struct {
	ID         uint   `json:"id"`
	RoomTypeID uint   `json:"roomTypeId"`
	RoomNumber string `json:"roomNumber"`
	Floor      int    `json:"floor"`
	Status     int    `json:"status"`
}
