package services

import (
	"sync"

	"stayhub/errors"
	"stayhub/models"

	"gorm.io/gorm"
)

// RoomAssignmentResolver gán reservation vào một phòng vật lý cụ thể.
// Gán tự động là best-effort: không còn phòng thì reservation vẫn hợp lệ
// ở mức room type và được đánh dấu chờ gán.
// Kiểm tra trống và ghi gán tuần tự hóa theo room type, hai request song song
// không thể cùng giữ một phòng cho khoảng ngày chồng nhau.
type RoomAssignmentResolver struct {
	db       *gorm.DB
	registry *IndividualRoomRegistry
	locks    sync.Map // roomTypeID -> *sync.Mutex
}

func NewRoomAssignmentResolver(db *gorm.DB, registry *IndividualRoomRegistry) *RoomAssignmentResolver {
	return &RoomAssignmentResolver{db: db, registry: registry}
}

func (a *RoomAssignmentResolver) mutexFor(roomTypeID uint) *sync.Mutex {
	mu, _ := a.locks.LoadOrStore(roomTypeID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AutoAssign chọn phòng trống đầu tiên cho reservation. Không còn phòng
// không phải là lỗi của booking: chỉ bật cờ NeedsAssignment.
func (a *RoomAssignmentResolver) AutoAssign(reservation *models.Reservation) error {
	mu := a.mutexFor(reservation.RoomTypeID)
	mu.Lock()
	defer mu.Unlock()

	free, err := a.registry.FindAvailableForRange(reservation.RoomTypeID, reservation.CheckInDate, reservation.CheckOutDate)
	if err != nil {
		return err
	}

	if len(free) == 0 {
		reservation.IndividualRoomID = nil
		reservation.NeedsAssignment = true
		if err := a.db.Save(reservation).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
		}
		return nil
	}

	room := free[0]
	reservation.IndividualRoomID = &room.ID
	reservation.NeedsAssignment = false
	if err := a.db.Save(reservation).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}
	return nil
}

// ManualAssign gán đích danh một phòng, kiểm tra trống y như auto assign
func (a *RoomAssignmentResolver) ManualAssign(reservation *models.Reservation, roomID uint) error {
	mu := a.mutexFor(reservation.RoomTypeID)
	mu.Lock()
	defer mu.Unlock()

	room, err := a.registry.Get(roomID)
	if err != nil {
		return err
	}
	if room.RoomTypeID != reservation.RoomTypeID {
		return errors.NewAppError(errors.ErrCodeInvalidOperation,
			"Phòng không thuộc loại phòng của reservation, dùng thao tác move", nil)
	}
	if err := a.registry.RoomFreeForRange(room, reservation.CheckInDate, reservation.CheckOutDate, reservation.ID); err != nil {
		return err
	}

	reservation.IndividualRoomID = &room.ID
	reservation.NeedsAssignment = false
	if err := a.db.Save(reservation).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}
	return nil
}

// Unassign bỏ gán phòng vật lý, reservation quay về mức room type
func (a *RoomAssignmentResolver) Unassign(reservation *models.Reservation) error {
	reservation.IndividualRoomID = nil
	reservation.NeedsAssignment = true
	if err := a.db.Save(reservation).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}
	return nil
}
