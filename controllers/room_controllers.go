package controllers

import (
	"strconv"

	"stayhub/dto"
	"stayhub/response"
	"stayhub/services"
	"stayhub/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoomController struct {
	Registry *services.IndividualRoomRegistry
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{Registry: services.NewIndividualRoomRegistry(db)}
}

func (ctrl *RoomController) roomTypeIDFromQuery(c *gin.Context) (uint, bool) {
	roomTypeID, err := strconv.Atoi(c.Query("roomTypeId"))
	if err != nil || roomTypeID <= 0 {
		response.BadRequest(c, "roomTypeId là bắt buộc")
		return 0, false
	}
	return uint(roomTypeID), true
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	roomTypeID, ok := ctrl.roomTypeIDFromQuery(c)
	if !ok {
		return
	}

	rooms, err := ctrl.Registry.List(roomTypeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}

// GenerateRooms sinh hàng loạt phòng vật lý prefix + số zero-padded.
// Trùng số với bất kỳ phòng nào trong property là từ chối toàn bộ.
func (ctrl *RoomController) GenerateRooms(c *gin.Context) {
	var request dto.GenerateRoomsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateGenerateRooms(&request); err != nil {
		handleServiceError(c, err)
		return
	}

	rooms, err := ctrl.Registry.Generate(request.RoomTypeID, request.Prefix, request.StartNumber, request.Count, request.Floor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}

func (ctrl *RoomController) ChangeRoomStatus(c *gin.Context) {
	var request dto.RoomStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	room, err := ctrl.Registry.SetStatus(request.RoomID, request.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := ctrl.Registry.Delete(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetAvailableRooms trả về phòng vật lý còn trống suốt khoảng ngày yêu cầu
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	roomTypeID, ok := ctrl.roomTypeIDFromQuery(c)
	if !ok {
		return
	}

	from, to, err := services.ParseStayRange(c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	rooms, err := ctrl.Registry.FindAvailableForRange(roomTypeID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithTotal(c, rooms, len(rooms))
}
