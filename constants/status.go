package constants

// Reservation status
const (
	ReservationStatusTentative  = 0
	ReservationStatusConfirmed  = 1
	ReservationStatusCheckedIn  = 2
	ReservationStatusCheckedOut = 3
	ReservationStatusCancelled  = 4
	ReservationStatusNoShow     = 5
)

// Individual room status
const (
	RoomStatusClean       = 0
	RoomStatusDirty       = 1
	RoomStatusOccupied    = 2
	RoomStatusMaintenance = 3
	RoomStatusOutOfOrder  = 4
	RoomStatusBlocked     = 5
)

// Availability record status
const (
	AvailabilityStatusAvailable   = 0
	AvailabilityStatusBlocked     = 1
	AvailabilityStatusMaintenance = 2
)

// Payment status, do collaborator bên ngoài cung cấp, core chỉ lưu lại
const (
	PaymentStatusPending  = 0
	PaymentStatusSuccess  = 1
	PaymentStatusFailed   = 2
	PaymentStatusRefunded = 3
)

// DateLayout là định dạng ngày dùng trên toàn bộ API
const DateLayout = "02/01/2006"

// DayLayout là định dạng khóa ngày trong ledger và calendar
const DayLayout = "2006-01-02"
