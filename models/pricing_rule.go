package models

import (
	"time"
)

// PricingRule ghi đè giá theo khoảng ngày [FromDate, ToDate] (inclusive).
// CreatedAt dùng làm tie-break khi hai rule có cùng độ dài khoảng.
type PricingRule struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RoomTypeID uint      `json:"roomTypeId" gorm:"index"`
	FromDate   time.Time `json:"fromDate" gorm:"index"`
	ToDate     time.Time `json:"toDate" gorm:"index"`
	Price      int       `json:"price"` // Giá mỗi đêm
	MinStay    int       `json:"minStay"`
	MaxStay    int       `json:"maxStay"` // 0 nghĩa là không giới hạn
	Label      string    `json:"label"`   // Chỉ phục vụ hiển thị
	Color      string    `json:"color"`   // Chỉ phục vụ hiển thị
	Active     bool      `json:"active" gorm:"default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// SpanDays trả về độ dài khoảng ngày của rule, tính theo ngày
func (p *PricingRule) SpanDays() int {
	return int(p.ToDate.Sub(p.FromDate).Hours() / 24)
}

// Covers kiểm tra rule có phủ ngày d không
func (p *PricingRule) Covers(d time.Time) bool {
	return !d.Before(p.FromDate) && !d.After(p.ToDate)
}
