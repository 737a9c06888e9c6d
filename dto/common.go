package dto

// DateRangeRequest là DTO chung cho các thao tác theo khoảng ngày.
// Ngày dùng định dạng dd/mm/yyyy như toàn bộ API.
type DateRangeRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
}
