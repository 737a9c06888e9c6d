package controllers

import (
	"strconv"

	"stayhub/dto"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"
	"stayhub/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PricingController struct {
	DB       *gorm.DB
	Resolver *services.PricingResolver
	Guard    *services.SyncGuard
}

func NewPricingController(db *gorm.DB) *PricingController {
	return &PricingController{
		DB:       db,
		Resolver: services.NewPricingResolver(db),
		Guard:    services.NewSyncGuard(db),
	}
}

func (ctrl *PricingController) GetRules(c *gin.Context) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return
	}

	var rules []models.PricingRule
	if err := ctrl.DB.Where("room_type_id = ?", roomTypeID).Order("from_date").Find(&rules).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithTotal(c, rules, len(rules))
}

func (ctrl *PricingController) CreateRule(c *gin.Context) {
	var request dto.CreatePricingRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidatePricingRule(&request); err != nil {
		handleServiceError(c, err)
		return
	}
	if err := ctrl.Guard.EnsureWritable(request.RoomTypeID); err != nil {
		handleServiceError(c, err)
		return
	}

	fromDate, err := services.ParseDate(request.FromDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	toDate, err := services.ParseDate(request.ToDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	rule := models.PricingRule{
		RoomTypeID: request.RoomTypeID,
		FromDate:   fromDate,
		ToDate:     toDate,
		Price:      request.Price,
		MinStay:    request.MinStay,
		MaxStay:    request.MaxStay,
		Label:      request.Label,
		Color:      request.Color,
		Active:     true,
	}
	if err := ctrl.DB.Create(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, rule)
}

func (ctrl *PricingController) UpdateRule(c *gin.Context) {
	var request dto.UpdatePricingRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var rule models.PricingRule
	if err := ctrl.DB.First(&rule, request.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if err := ctrl.Guard.EnsureWritable(rule.RoomTypeID); err != nil {
		handleServiceError(c, err)
		return
	}

	if request.FromDate != "" {
		fromDate, err := services.ParseDate(request.FromDate)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		rule.FromDate = fromDate
	}
	if request.ToDate != "" {
		toDate, err := services.ParseDate(request.ToDate)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		rule.ToDate = toDate
	}
	if rule.ToDate.Before(rule.FromDate) {
		response.BadRequest(c, "Ngày kết thúc phải từ ngày bắt đầu trở đi")
		return
	}
	if request.Price > 0 {
		rule.Price = request.Price
	}
	if request.MinStay >= 0 {
		rule.MinStay = request.MinStay
	}
	if request.MaxStay >= 0 {
		rule.MaxStay = request.MaxStay
	}
	if request.Label != "" {
		rule.Label = request.Label
	}
	if request.Color != "" {
		rule.Color = request.Color
	}
	if request.Active != nil {
		rule.Active = *request.Active
	}

	if err := ctrl.DB.Save(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, rule)
}

func (ctrl *PricingController) DeleteRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var rule models.PricingRule
	if err := ctrl.DB.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if err := ctrl.Guard.EnsureWritable(rule.RoomTypeID); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := ctrl.DB.Delete(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// ResolveRate trả về giá hiệu lực từng đêm của một khoảng ngày
func (ctrl *PricingController) ResolveRate(c *gin.Context) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return
	}

	var roomType models.RoomType
	if err := ctrl.DB.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	from, to, err := services.ParseStayRange(c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	rates, err := ctrl.Resolver.ResolveRange(&roomType, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var result []dto.ResolvedRateResponse
	for _, rate := range rates {
		resolved := dto.ResolvedRateResponse{
			Date:    services.FormatDate(rate.Date),
			Price:   rate.Price,
			MinStay: rate.MinStay,
			MaxStay: rate.MaxStay,
		}
		if rate.Rule != nil {
			ruleID := rate.Rule.ID
			resolved.RuleID = &ruleID
			resolved.Label = rate.Rule.Label
		}
		result = append(result, resolved)
	}
	response.SuccessWithTotal(c, result, len(result))
}

// GetRuleConflicts quét cảnh báo các rule chồng ngày khác giá
func (ctrl *PricingController) GetRuleConflicts(c *gin.Context) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return
	}

	conflicts, err := ctrl.Resolver.DetectConflicts(uint(roomTypeID))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithTotal(c, conflicts, len(conflicts))
}
