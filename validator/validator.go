package validator

import (
	"regexp"
	"time"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
)

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}

func parseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse(constants.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Định dạng ngày không hợp lệ, cần dd/mm/yyyy", err)
	}
	return parsed, nil
}

// ValidateRoomType validate thông tin loại phòng
func ValidateRoomType(req *dto.CreateRoomTypeRequest) error {
	if req.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên loại phòng không được để trống", nil)
	}
	if req.Quantity < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng phòng phải từ 1 trở lên", nil)
	}
	if req.BasePrice < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá không được âm", nil)
	}
	if req.MaxOccupancy < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Sức chứa không được âm", nil)
	}
	return nil
}

// ValidatePricingRule validate thông tin pricing rule
func ValidatePricingRule(req *dto.CreatePricingRuleRequest) error {
	if req.Price < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá không được âm", nil)
	}

	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		return err
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		return err
	}
	if toDate.Before(fromDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày kết thúc phải từ ngày bắt đầu trở đi", nil)
	}

	if req.MinStay < 0 || req.MaxStay < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Ràng buộc số đêm không được âm", nil)
	}
	if req.MaxStay > 0 && req.MinStay > req.MaxStay {
		return errors.NewAppError(errors.ErrCodeValidation, "Số đêm tối thiểu không được lớn hơn tối đa", nil)
	}
	return nil
}

// ValidateGenerateRooms validate request sinh phòng hàng loạt
func ValidateGenerateRooms(req *dto.GenerateRoomsRequest) error {
	if req.Count < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng phòng phải lớn hơn 0", nil)
	}
	if req.StartNumber < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số bắt đầu không được âm", nil)
	}
	return nil
}

// ValidateReservation validate request đặt phòng
func ValidateReservation(req *dto.CreateReservationRequest) error {
	if req.RoomTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID loại phòng không được để trống", nil)
	}

	checkInDate, err := parseDate(req.CheckInDate)
	if err != nil {
		return err
	}
	checkOutDate, err := parseDate(req.CheckOutDate)
	if err != nil {
		return err
	}
	if !checkOutDate.After(checkInDate) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", errors.ErrInvalidDateRange)
	}

	if req.Adults < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Phải có ít nhất 1 người lớn", nil)
	}
	if req.Children < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số trẻ em không được âm", nil)
	}

	if req.GuestEmail != "" && !isValidEmail(req.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email khách không hợp lệ", nil)
	}
	if req.GuestPhone != "" && !isValidPhone(req.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeValidation, "Số điện thoại khách không hợp lệ", nil)
	}
	return nil
}

// ValidateReservationStatus kiểm tra trạng thái đích nằm trong enum
func ValidateReservationStatus(status int) error {
	if status < constants.ReservationStatusTentative || status > constants.ReservationStatusNoShow {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái reservation không hợp lệ", nil)
	}
	return nil
}
