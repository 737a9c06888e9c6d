package services

import (
	"fmt"
	"strings"
	"time"

	"stayhub/constants"
	"stayhub/errors"
	"stayhub/models"

	"gorm.io/gorm"
)

// IndividualRoomRegistry quản lý phòng vật lý: sinh số phòng, trạng thái,
// tìm phòng trống theo khoảng ngày. Số phòng duy nhất trong cùng property.
type IndividualRoomRegistry struct {
	db *gorm.DB
}

func NewIndividualRoomRegistry(db *gorm.DB) *IndividualRoomRegistry {
	return &IndividualRoomRegistry{db: db}
}

// List trả về các phòng vật lý của một room type
func (r *IndividualRoomRegistry) List(roomTypeID uint) ([]models.IndividualRoom, error) {
	var rooms []models.IndividualRoom
	if err := r.db.Where("room_type_id = ?", roomTypeID).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc danh sách phòng", err)
	}
	return rooms, nil
}

// Get trả về một phòng theo id
func (r *IndividualRoomRegistry) Get(roomID uint) (*models.IndividualRoom, error) {
	var room models.IndividualRoom
	if err := r.db.Preload("RoomType").First(&room, roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy phòng", errors.ErrRoomNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc phòng", err)
	}
	return &room, nil
}

// propertyRoomNumbers trả về toàn bộ số phòng đã dùng trong property
func (r *IndividualRoomRegistry) propertyRoomNumbers(propertyID uint) (map[string]bool, error) {
	var numbers []string
	err := r.db.Model(&models.IndividualRoom{}).
		Joins("JOIN room_types ON room_types.id = individual_rooms.room_type_id").
		Where("room_types.property_id = ?", propertyID).
		Pluck("individual_rooms.room_number", &numbers).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc số phòng của property", err)
	}
	used := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		used[n] = true
	}
	return used, nil
}

func padWidth(startNumber, count int) int {
	width := len(fmt.Sprintf("%d", startNumber+count-1))
	if width < 2 {
		width = 2
	}
	return width
}

// FormatRoomNumber dựng số phòng dạng prefix + số zero-padded
func FormatRoomNumber(prefix string, number, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, number)
}

// Generate sinh count phòng liên tiếp prefix + zero-padded(start..start+count-1).
// Chỉ cần một số trùng với phòng đã có ở bất kỳ room type nào trong property
// là toàn bộ thao tác bị từ chối, kèm gợi ý số bắt đầu còn trống.
func (r *IndividualRoomRegistry) Generate(roomTypeID uint, prefix string, startNumber, count, floor int) ([]models.IndividualRoom, error) {
	if count < 1 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng phòng phải lớn hơn 0", nil)
	}
	if startNumber < 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidAmount, "Số bắt đầu không được âm", nil)
	}

	var roomType models.RoomType
	if err := r.db.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc loại phòng", err)
	}

	used, err := r.propertyRoomNumbers(roomType.PropertyID)
	if err != nil {
		return nil, err
	}

	width := padWidth(startNumber, count)
	var conflicts []string
	for i := 0; i < count; i++ {
		number := FormatRoomNumber(prefix, startNumber+i, width)
		if used[number] {
			conflicts = append(conflicts, number)
		}
	}

	if len(conflicts) > 0 {
		suggestion := r.nextFreeStart(used, prefix, startNumber, count, width)
		return nil, errors.NewAppError(errors.ErrCodeRoomNumberTaken,
			fmt.Sprintf("Số phòng đã tồn tại trong property: %s. Số bắt đầu còn trống gần nhất: %d",
				strings.Join(conflicts, ", "), suggestion),
			nil)
	}

	rooms := make([]models.IndividualRoom, 0, count)
	err = r.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			room := models.IndividualRoom{
				RoomTypeID: roomTypeID,
				RoomNumber: FormatRoomNumber(prefix, startNumber+i, width),
				Floor:      floor,
				Status:     constants.RoomStatusClean,
			}
			if err := tx.Create(&room).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể tạo phòng", err)
			}
			rooms = append(rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// nextFreeStart tìm số bắt đầu nhỏ nhất >= startNumber mà cả dải count số đều trống
func (r *IndividualRoomRegistry) nextFreeStart(used map[string]bool, prefix string, startNumber, count, width int) int {
	for start := startNumber; ; start++ {
		free := true
		for i := 0; i < count; i++ {
			if used[FormatRoomNumber(prefix, start+i, width)] {
				free = false
				break
			}
		}
		if free {
			return start
		}
	}
}

// SetStatus cập nhật trạng thái phòng vật lý
func (r *IndividualRoomRegistry) SetStatus(roomID uint, status int) (*models.IndividualRoom, error) {
	room, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	room.Status = status
	if err := room.ValidateStatus(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái phòng không hợp lệ", err)
	}
	if err := r.db.Save(room).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật phòng", err)
	}
	return room, nil
}

// Delete xóa một phòng vật lý. Reservation không bao giờ xóa phòng ngầm.
func (r *IndividualRoomRegistry) Delete(roomID uint) error {
	room, err := r.Get(roomID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(room).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể xóa phòng", err)
	}
	return nil
}

// FindAvailableForRange trả về các phòng nhận khách được (không out_of_order,
// không blocked) và chưa có reservation hiệu lực giao với [from, to)
func (r *IndividualRoomRegistry) FindAvailableForRange(roomTypeID uint, from, to time.Time) ([]models.IndividualRoom, error) {
	var rooms []models.IndividualRoom
	err := r.db.Where("room_type_id = ? AND status NOT IN ?", roomTypeID,
		[]int{constants.RoomStatusOutOfOrder, constants.RoomStatusBlocked}).
		Order("room_number").Find(&rooms).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc danh sách phòng", err)
	}

	var overlapping []models.Reservation
	err = r.db.Where("room_type_id = ? AND individual_room_id IS NOT NULL AND status IN ? AND check_in_date < ? AND check_out_date > ?",
		roomTypeID,
		[]int{constants.ReservationStatusTentative, constants.ReservationStatusConfirmed, constants.ReservationStatusCheckedIn},
		Day(to), Day(from)).
		Find(&overlapping).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc reservation", err)
	}

	taken := make(map[uint]bool, len(overlapping))
	for _, res := range overlapping {
		taken[*res.IndividualRoomID] = true
	}

	var free []models.IndividualRoom
	for _, room := range rooms {
		if !taken[room.ID] {
			free = append(free, room)
		}
	}
	return free, nil
}

// RoomFreeForRange kiểm tra một phòng cụ thể có trống suốt [from, to) không
func (r *IndividualRoomRegistry) RoomFreeForRange(room *models.IndividualRoom, from, to time.Time, excludeReservationID uint) error {
	if !room.Bookable() {
		return errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đang bị khóa hoặc hỏng", errors.ErrRoomUnavailable)
	}

	var count int64
	err := r.db.Model(&models.Reservation{}).
		Where("individual_room_id = ? AND id != ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
			room.ID, excludeReservationID,
			[]int{constants.ReservationStatusTentative, constants.ReservationStatusConfirmed, constants.ReservationStatusCheckedIn},
			Day(to), Day(from)).
		Count(&count).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc reservation", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrCodeRoomUnavailable, "Phòng đã có khách trong khoảng ngày này", errors.ErrRoomUnavailable)
	}
	return nil
}
