package dto

// InitAvailabilityRequest là DTO cho request khởi tạo ledger theo khoảng ngày
type InitAvailabilityRequest struct {
	RoomTypeID uint   `json:"roomTypeId" binding:"required"`
	FromDate   string `json:"fromDate" binding:"required"`
	ToDate     string `json:"toDate" binding:"required"`
}

// BlockAvailabilityRequest là DTO cho request chặn inventory.
// Maintenance=true đánh dấu chặn để bảo trì thay vì chặn vận hành thường.
type BlockAvailabilityRequest struct {
	RoomTypeID  uint   `json:"roomTypeId" binding:"required"`
	FromDate    string `json:"fromDate" binding:"required"`
	ToDate      string `json:"toDate" binding:"required"`
	Reason      string `json:"reason"`
	Maintenance bool   `json:"maintenance"`
}

// UnblockAvailabilityRequest là DTO cho request gỡ chặn inventory
type UnblockAvailabilityRequest struct {
	RoomTypeID uint   `json:"roomTypeId" binding:"required"`
	FromDate   string `json:"fromDate" binding:"required"`
	ToDate     string `json:"toDate" binding:"required"`
}

// AvailabilityResponse là DTO cho trạng thái ledger một ngày
type AvailabilityResponse struct {
	Date              string `json:"date"`
	AvailableQuantity int    `json:"availableQuantity"`
	Status            int    `json:"status"`
	BlockReason       string `json:"blockReason,omitempty"`
}
