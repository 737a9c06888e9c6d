package controllers

import (
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError map AppError sang HTTP response tương ứng
func handleServiceError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound, errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeConflict:
		// Lỗi tranh chấp ghi, client retry với backoff
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c)
	case errors.ErrCodeDBError, errors.ErrCodeLedgerCorrupt:
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

// toReservationResponse chuyển model sang DTO, ngày theo định dạng API
func toReservationResponse(reservation *models.Reservation) *dto.ReservationResponse {
	resp := &dto.ReservationResponse{
		ID:               reservation.ID,
		RoomTypeID:       reservation.RoomTypeID,
		IndividualRoomID: reservation.IndividualRoomID,
		CheckInDate:      services.FormatDate(reservation.CheckInDate),
		CheckOutDate:     services.FormatDate(reservation.CheckOutDate),
		Adults:           reservation.Adults,
		Children:         reservation.Children,
		Status:           reservation.Status,
		Price:            reservation.Price,
		TotalPrice:       reservation.TotalPrice,
		Nights:           reservation.Nights,
		GuestRef:         reservation.GuestRef,
		PaymentStatus:    reservation.PaymentStatus,
		NeedsAssignment:  reservation.NeedsAssignment,
		CreatedAt:        reservation.CreatedAt,
	}
	if reservation.IndividualRoom != nil {
		resp.RoomNumber = reservation.IndividualRoom.RoomNumber
	}
	return resp
}
