package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Inventory errors
	ErrCodeInsufficientInventory ErrorCode = "INSUFFICIENT_INVENTORY"
	ErrCodeInvalidDateRange      ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeRoomUnavailable       ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeInvalidTransition     ErrorCode = "INVALID_TRANSITION"
	ErrCodeConflict              ErrorCode = "CONFLICT"
	ErrCodeNotFound              ErrorCode = "NOT_FOUND"
	ErrCodeReadOnlyEntity        ErrorCode = "READ_ONLY_ENTITY"
	ErrCodeMinStay               ErrorCode = "MIN_STAY"
	ErrCodeMaxStay               ErrorCode = "MAX_STAY"
	ErrCodeRoomNumberTaken       ErrorCode = "ROOM_NUMBER_TAKEN"
	ErrCodeLedgerCorrupt         ErrorCode = "LEDGER_CORRUPT"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidEmail  ErrorCode = "INVALID_EMAIL"

	// Business errors
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang ErrorCode tương ứng không
func HasCode(err error, code ErrorCode) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsRetryable trả về true với lỗi tranh chấp ghi, caller nên retry có backoff
func IsRetryable(err error) bool {
	return HasCode(err, ErrCodeConflict)
}

var (
	// Inventory errors
	ErrInsufficientInventory = errors.New("insufficient inventory for requested dates")
	ErrInvalidDateRange      = errors.New("check-out date must be after check-in date")
	ErrRoomUnavailable       = errors.New("room not available for requested dates")
	ErrInvalidTransition     = errors.New("invalid reservation status transition")
	ErrConflict              = errors.New("concurrent modification detected")
	ErrReadOnlyEntity        = errors.New("entity is managed by external sync and is read-only")
	ErrLedgerCorrupt         = errors.New("availability ledger went negative")

	// Not-found errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrRuleNotFound        = errors.New("pricing rule not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
