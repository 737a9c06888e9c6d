package dto

// CreatePricingRuleRequest là DTO cho request tạo pricing rule
type CreatePricingRuleRequest struct {
	RoomTypeID uint   `json:"roomTypeId" binding:"required"`
	FromDate   string `json:"fromDate" binding:"required"`
	ToDate     string `json:"toDate" binding:"required"`
	Price      int    `json:"price" binding:"required"`
	MinStay    int    `json:"minStay"`
	MaxStay    int    `json:"maxStay"`
	Label      string `json:"label"`
	Color      string `json:"color"`
}

// UpdatePricingRuleRequest là DTO cho request cập nhật pricing rule
type UpdatePricingRuleRequest struct {
	ID       uint   `json:"id" binding:"required"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Price    int    `json:"price"`
	MinStay  int    `json:"minStay"`
	MaxStay  int    `json:"maxStay"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Active   *bool  `json:"active"`
}

// ResolvedRateResponse là DTO cho giá hiệu lực của một ngày
type ResolvedRateResponse struct {
	Date    string `json:"date"`
	Price   int    `json:"price"`
	MinStay int    `json:"minStay"`
	MaxStay int    `json:"maxStay"`
	RuleID  *uint  `json:"ruleId,omitempty"`
	Label   string `json:"label,omitempty"`
}

// RuleConflictResponse là DTO cho một cặp rule chồng ngày khác giá
type RuleConflictResponse struct {
	RuleID      uint   `json:"ruleId"`
	OtherRuleID uint   `json:"otherRuleId"`
	FromDate    string `json:"fromDate"`
	ToDate      string `json:"toDate"`
	Price       int    `json:"price"`
	OtherPrice  int    `json:"otherPrice"`
}
