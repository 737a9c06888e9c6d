package services

import (
	"time"

	"stayhub/constants"
	"stayhub/errors"
)

// Day chuẩn hóa thời gian về 00:00 UTC để làm khóa ngày trong ledger
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween trả về các đêm [from, to), dùng cho kỳ lưu trú
func NightsBetween(from, to time.Time) []time.Time {
	var days []time.Time
	for d := Day(from); d.Before(Day(to)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysInclusive trả về các ngày [from, to], dùng cho block và khởi tạo ledger
func DaysInclusive(from, to time.Time) []time.Time {
	var days []time.Time
	for d := Day(from); !d.After(Day(to)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseDate đọc chuỗi ngày dd/mm/yyyy của API
func ParseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse(constants.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày không hợp lệ, cần định dạng dd/mm/yyyy", err)
	}
	return Day(parsed), nil
}

// ParseStayRange đọc cặp ngày nhận/trả phòng, bắt buộc check-out sau check-in
func ParseStayRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err := ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", errors.ErrInvalidDateRange)
	}
	return checkIn, checkOut, nil
}

// FormatDate xuất ngày theo định dạng API
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
