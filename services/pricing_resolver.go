package services

import (
	"time"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"

	"gorm.io/gorm"
)

// ResolvedRate là giá hiệu lực của một đêm sau khi xét các pricing rule
type ResolvedRate struct {
	Date    time.Time
	Price   int
	MinStay int
	MaxStay int
	Rule    *models.PricingRule // nil nếu dùng giá cơ bản
}

// PricingResolver chọn giá hiệu lực mỗi đêm từ các rule chồng ngày.
// Rule có khoảng ngày ngắn nhất thắng, bằng nhau thì rule tạo sau thắng.
type PricingResolver struct {
	db *gorm.DB
}

func NewPricingResolver(db *gorm.DB) *PricingResolver {
	return &PricingResolver{db: db}
}

func (p *PricingResolver) rulesFor(roomTypeID uint) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	if err := p.db.Where("room_type_id = ? AND active = ?", roomTypeID, true).Find(&rules).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc pricing rule", err)
	}
	return rules, nil
}

// pick chọn rule thắng cuộc trong các rule phủ ngày day
func pick(rules []models.PricingRule, day time.Time) *models.PricingRule {
	var winner *models.PricingRule
	for i := range rules {
		rule := &rules[i]
		if !rule.Covers(day) {
			continue
		}
		if winner == nil {
			winner = rule
			continue
		}
		switch {
		case rule.SpanDays() < winner.SpanDays():
			winner = rule
		case rule.SpanDays() == winner.SpanDays() && rule.CreatedAt.After(winner.CreatedAt):
			winner = rule
		}
	}
	return winner
}

// Resolve trả về giá hiệu lực của một đêm cho room type
func (p *PricingResolver) Resolve(roomType *models.RoomType, date time.Time) (*ResolvedRate, error) {
	rules, err := p.rulesFor(roomType.ID)
	if err != nil {
		return nil, err
	}
	return resolveWith(roomType, rules, Day(date)), nil
}

// ResolveRange trả về giá hiệu lực cho từng đêm [from, to), đọc rule một lần
func (p *PricingResolver) ResolveRange(roomType *models.RoomType, from, to time.Time) ([]ResolvedRate, error) {
	rules, err := p.rulesFor(roomType.ID)
	if err != nil {
		return nil, err
	}
	var rates []ResolvedRate
	for _, day := range NightsBetween(from, to) {
		rates = append(rates, *resolveWith(roomType, rules, day))
	}
	return rates, nil
}

func resolveWith(roomType *models.RoomType, rules []models.PricingRule, day time.Time) *ResolvedRate {
	winner := pick(rules, day)
	if winner == nil {
		return &ResolvedRate{
			Date:  day,
			Price: roomType.BasePrice,
		}
	}
	return &ResolvedRate{
		Date:    day,
		Price:   winner.Price,
		MinStay: winner.MinStay,
		MaxStay: winner.MaxStay,
		Rule:    winner,
	}
}

// DetectConflicts quét các cặp rule chồng ngày nhưng khác giá.
// Chỉ mang tính cảnh báo, không chặn đặt phòng.
func (p *PricingResolver) DetectConflicts(roomTypeID uint) ([]dto.RuleConflictResponse, error) {
	rules, err := p.rulesFor(roomTypeID)
	if err != nil {
		return nil, err
	}

	var conflicts []dto.RuleConflictResponse
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			a, b := rules[i], rules[j]
			if a.Price == b.Price {
				continue
			}
			if a.FromDate.After(b.ToDate) || b.FromDate.After(a.ToDate) {
				continue
			}
			conflicts = append(conflicts, dto.RuleConflictResponse{
				RuleID:      a.ID,
				OtherRuleID: b.ID,
				FromDate:    FormatDate(a.FromDate),
				ToDate:      FormatDate(a.ToDate),
				Price:       a.Price,
				OtherPrice:  b.Price,
			})
		}
	}
	return conflicts, nil
}
