package controllers

import (
	"strconv"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/response"
	"stayhub/services"

	"github.com/gin-gonic/gin"
)

// AvailabilityController cho admin xem ledger và chặn/gỡ chặn inventory.
// Mọi thao tác ghi đi qua ReservationManager, không gọi thẳng ledger.
type AvailabilityController struct {
	Manager *services.ReservationManager
}

func NewAvailabilityController(manager *services.ReservationManager) *AvailabilityController {
	return &AvailabilityController{Manager: manager}
}

func (ctrl *AvailabilityController) GetAvailability(c *gin.Context) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return
	}

	from, err := services.ParseDate(c.Query("fromDate"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	to, err := services.ParseDate(c.Query("toDate"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "Khoảng ngày không hợp lệ")
		return
	}

	records, err := ctrl.Manager.Ledger().GetRange(uint(roomTypeID), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var result []dto.AvailabilityResponse
	for _, rec := range records {
		result = append(result, dto.AvailabilityResponse{
			Date:              services.FormatDate(rec.Date),
			AvailableQuantity: rec.AvailableQuantity,
			Status:            rec.Status,
			BlockReason:       rec.BlockReason,
		})
	}
	response.SuccessWithTotal(c, result, len(result))
}

func (ctrl *AvailabilityController) InitAvailability(c *gin.Context) {
	var request dto.InitAvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	from, err := services.ParseDate(request.FromDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	to, err := services.ParseDate(request.ToDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "Khoảng ngày không hợp lệ")
		return
	}

	if err := ctrl.Manager.InitializeAvailability(request.RoomTypeID, from, to); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// BlockDates chặn inventory một khoảng ngày, ví dụ bảo trì cả tầng
func (ctrl *AvailabilityController) BlockDates(c *gin.Context) {
	var request dto.BlockAvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	from, err := services.ParseDate(request.FromDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	to, err := services.ParseDate(request.ToDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "Khoảng ngày không hợp lệ")
		return
	}

	status := constants.AvailabilityStatusBlocked
	if request.Maintenance {
		status = constants.AvailabilityStatusMaintenance
	}
	if err := ctrl.Manager.BlockDates(request.RoomTypeID, from, to, request.Reason, status); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// UnblockDates gỡ chặn, số lượng khôi phục có trừ reservation còn hiệu lực
func (ctrl *AvailabilityController) UnblockDates(c *gin.Context) {
	var request dto.UnblockAvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	from, err := services.ParseDate(request.FromDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	to, err := services.ParseDate(request.ToDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "Khoảng ngày không hợp lệ")
		return
	}

	if err := ctrl.Manager.UnblockDates(request.RoomTypeID, from, to); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
