package models

import (
	"stayhub/constants"
	"stayhub/errors"
)

// ReservationState định nghĩa interface cho các trạng thái reservation.
// Chuỗi hợp lệ: tentative → confirmed → checked_in → checked_out;
// cancel/no_show chỉ từ tentative hoặc confirmed.
type ReservationState interface {
	Confirm(r *Reservation) error
	CheckIn(r *Reservation) error
	CheckOut(r *Reservation) error
	Cancel(r *Reservation) error
	NoShow(r *Reservation) error
}

func invalidTransition(message string) error {
	return errors.NewAppError(errors.ErrCodeInvalidTransition, message, errors.ErrInvalidTransition)
}

// TentativeState trạng thái chờ xác nhận
type TentativeState struct{}

func (s *TentativeState) Confirm(r *Reservation) error {
	r.Status = constants.ReservationStatusConfirmed
	return nil
}

func (s *TentativeState) CheckIn(r *Reservation) error {
	return invalidTransition("reservation chưa được xác nhận")
}

func (s *TentativeState) CheckOut(r *Reservation) error {
	return invalidTransition("reservation chưa nhận phòng")
}

func (s *TentativeState) Cancel(r *Reservation) error {
	r.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *TentativeState) NoShow(r *Reservation) error {
	r.Status = constants.ReservationStatusNoShow
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(r *Reservation) error {
	return invalidTransition("reservation đã được xác nhận")
}

func (s *ConfirmedState) CheckIn(r *Reservation) error {
	r.Status = constants.ReservationStatusCheckedIn
	return nil
}

func (s *ConfirmedState) CheckOut(r *Reservation) error {
	return invalidTransition("reservation chưa nhận phòng")
}

func (s *ConfirmedState) Cancel(r *Reservation) error {
	r.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *ConfirmedState) NoShow(r *Reservation) error {
	r.Status = constants.ReservationStatusNoShow
	return nil
}

// CheckedInState trạng thái khách đang lưu trú
type CheckedInState struct{}

func (s *CheckedInState) Confirm(r *Reservation) error {
	return invalidTransition("khách đã nhận phòng")
}

func (s *CheckedInState) CheckIn(r *Reservation) error {
	return invalidTransition("khách đã nhận phòng")
}

func (s *CheckedInState) CheckOut(r *Reservation) error {
	r.Status = constants.ReservationStatusCheckedOut
	return nil
}

func (s *CheckedInState) Cancel(r *Reservation) error {
	return invalidTransition("không thể hủy khi khách đang lưu trú")
}

func (s *CheckedInState) NoShow(r *Reservation) error {
	return invalidTransition("khách đã nhận phòng")
}

// CheckedOutState trạng thái đã trả phòng (terminal)
type CheckedOutState struct{}

func (s *CheckedOutState) Confirm(r *Reservation) error {
	return invalidTransition("reservation đã kết thúc")
}

func (s *CheckedOutState) CheckIn(r *Reservation) error {
	return invalidTransition("reservation đã kết thúc")
}

func (s *CheckedOutState) CheckOut(r *Reservation) error {
	return invalidTransition("reservation đã kết thúc")
}

func (s *CheckedOutState) Cancel(r *Reservation) error {
	return invalidTransition("không thể hủy reservation đã kết thúc")
}

func (s *CheckedOutState) NoShow(r *Reservation) error {
	return invalidTransition("reservation đã kết thúc")
}

// CancelledState trạng thái đã hủy (terminal)
type CancelledState struct{}

func (s *CancelledState) Confirm(r *Reservation) error {
	return invalidTransition("reservation đã bị hủy")
}

func (s *CancelledState) CheckIn(r *Reservation) error {
	return invalidTransition("reservation đã bị hủy")
}

func (s *CancelledState) CheckOut(r *Reservation) error {
	return invalidTransition("reservation đã bị hủy")
}

func (s *CancelledState) Cancel(r *Reservation) error {
	return invalidTransition("reservation đã bị hủy")
}

func (s *CancelledState) NoShow(r *Reservation) error {
	return invalidTransition("reservation đã bị hủy")
}

// NoShowState trạng thái khách không đến (terminal)
type NoShowState struct{}

func (s *NoShowState) Confirm(r *Reservation) error {
	return invalidTransition("khách đã không đến")
}

func (s *NoShowState) CheckIn(r *Reservation) error {
	return invalidTransition("khách đã không đến")
}

func (s *NoShowState) CheckOut(r *Reservation) error {
	return invalidTransition("khách đã không đến")
}

func (s *NoShowState) Cancel(r *Reservation) error {
	return invalidTransition("khách đã không đến")
}

func (s *NoShowState) NoShow(r *Reservation) error {
	return invalidTransition("khách đã không đến")
}

// GetReservationState trả về state tương ứng với trạng thái reservation
func GetReservationState(status int) ReservationState {
	switch status {
	case constants.ReservationStatusTentative:
		return &TentativeState{}
	case constants.ReservationStatusConfirmed:
		return &ConfirmedState{}
	case constants.ReservationStatusCheckedIn:
		return &CheckedInState{}
	case constants.ReservationStatusCheckedOut:
		return &CheckedOutState{}
	case constants.ReservationStatusCancelled:
		return &CancelledState{}
	case constants.ReservationStatusNoShow:
		return &NoShowState{}
	default:
		return &TentativeState{}
	}
}

// ApplyTransition áp dụng chuyển trạng thái theo state machine
func ApplyTransition(r *Reservation, newStatus int) error {
	state := GetReservationState(r.Status)
	switch newStatus {
	case constants.ReservationStatusConfirmed:
		return state.Confirm(r)
	case constants.ReservationStatusCheckedIn:
		return state.CheckIn(r)
	case constants.ReservationStatusCheckedOut:
		return state.CheckOut(r)
	case constants.ReservationStatusCancelled:
		return state.Cancel(r)
	case constants.ReservationStatusNoShow:
		return state.NoShow(r)
	default:
		return invalidTransition("trạng thái đích không hợp lệ")
	}
}
