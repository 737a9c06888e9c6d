package controllers

import (
	"strconv"

	"stayhub/dto"
	"stayhub/response"
	"stayhub/services"
	"stayhub/validator"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Manager *services.ReservationManager
}

func NewReservationController(manager *services.ReservationManager) *ReservationController {
	return &ReservationController{Manager: manager}
}

// CreateReservation đặt phòng mới. Giữ chỗ cho cả khoảng ngày là atomic,
// thiếu bất kỳ đêm nào là từ chối toàn bộ.
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var request dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateReservation(&request); err != nil {
		handleServiceError(c, err)
		return
	}

	reservation, err := ctrl.Manager.Create(request)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return
	}

	var status *int
	if statusStr := c.Query("status"); statusStr != "" {
		if parsed, err := strconv.Atoi(statusStr); err == nil {
			status = &parsed
		}
	}

	reservations, err := ctrl.Manager.List(uint(roomTypeID), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]*dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		result = append(result, toReservationResponse(&reservations[i]))
	}
	response.SuccessWithTotal(c, result, len(result))
}

func (ctrl *ReservationController) GetReservationDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.Get(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

// ChangeReservationStatus chuyển trạng thái theo state machine vòng đời
func (ctrl *ReservationController) ChangeReservationStatus(c *gin.Context) {
	var request dto.ChangeReservationStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateReservationStatus(request.Status); err != nil {
		handleServiceError(c, err)
		return
	}

	reservation, err := ctrl.Manager.ChangeStatus(request.ReservationID, request.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

// MoveReservation chuyển sang loại phòng khác hoặc phòng vật lý khác.
// Thất bại ở bất kỳ bước nào thì reservation gốc giữ nguyên.
func (ctrl *ReservationController) MoveReservation(c *gin.Context) {
	var request dto.MoveReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.Move(request)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

func (ctrl *ReservationController) AssignRoom(c *gin.Context) {
	var request dto.AssignRoomRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.Get(request.ReservationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := ctrl.Manager.Assigner().ManualAssign(reservation, request.IndividualRoomID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

func (ctrl *ReservationController) UnassignRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.Get(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := ctrl.Manager.Assigner().Unassign(reservation); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

// AutoAssignRoom gán lại phòng trống đầu tiên cho reservation chờ gán
func (ctrl *ReservationController) AutoAssignRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.Get(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := ctrl.Manager.Assigner().AutoAssign(reservation); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}

// SetPaymentStatus ghi nhận trạng thái thanh toán từ hệ thống ngoài
func (ctrl *ReservationController) SetPaymentStatus(c *gin.Context) {
	var request dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := ctrl.Manager.SetPaymentStatus(request.ReservationID, request.PaymentStatus)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toReservationResponse(reservation))
}
