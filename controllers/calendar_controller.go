package controllers

import (
	"strconv"

	"stayhub/config"
	"stayhub/response"
	"stayhub/services"

	"github.com/gin-gonic/gin"
)

// CalendarController chỉ có đường đọc, mọi mutation đi qua các controller khác
type CalendarController struct {
	Service *services.CalendarService
}

func NewCalendarController(service *services.CalendarService) *CalendarController {
	return &CalendarController{Service: service}
}

func (ctrl *CalendarController) GetCalendar(c *gin.Context) {
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

	calendar, err := ctrl.Service.GetCalendar(config.Ctx, uint(roomTypeID), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, calendar)
}
