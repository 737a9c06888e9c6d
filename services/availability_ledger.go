package services

import (
	"fmt"
	"sync"
	"time"

	"stayhub/constants"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/utils"

	"gorm.io/gorm"
)

// AvailabilityLedger giữ bộ đếm inventory theo (room type, ngày).
// Mọi thao tác ghi trên một khoảng ngày chạy trong một transaction duy nhất,
// tuần tự hóa theo room type, nên không có cửa sổ read-then-write giữa các
// booking tranh nhau đơn vị cuối cùng.
type AvailabilityLedger struct {
	db    *gorm.DB
	locks sync.Map // roomTypeID -> *sync.Mutex
}

func NewAvailabilityLedger(db *gorm.DB) *AvailabilityLedger {
	return &AvailabilityLedger{db: db}
}

func (l *AvailabilityLedger) mutexFor(roomTypeID uint) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(roomTypeID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// unavailableStatus là các trạng thái ngày không bán được: blocked và maintenance
func unavailableStatus(status int) bool {
	return status == constants.AvailabilityStatusBlocked || status == constants.AvailabilityStatusMaintenance
}

func (l *AvailabilityLedger) roomType(tx *gorm.DB, roomTypeID uint) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := tx.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc loại phòng", err)
	}
	return &roomType, nil
}

// record lấy bản ghi ledger của một ngày, tạo mới với đủ số lượng nếu chưa có
func (l *AvailabilityLedger) record(tx *gorm.DB, roomType *models.RoomType, day time.Time) (*models.AvailabilityRecord, error) {
	var rec models.AvailabilityRecord
	err := tx.Where("room_type_id = ? AND date = ?", roomType.ID, day).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.AvailabilityRecord{
			RoomTypeID:        roomType.ID,
			Date:              day,
			AvailableQuantity: roomType.Quantity,
			Status:            constants.AvailabilityStatusAvailable,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể tạo bản ghi ledger", err)
		}
		return &rec, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc bản ghi ledger", err)
	}
	if rec.AvailableQuantity < 0 {
		// Ledger âm là hỏng dữ liệu, không phải lỗi người dùng
		utils.LogError("ledger âm: room_type=%d date=%s quantity=%d", roomType.ID, day.Format(constants.DayLayout), rec.AvailableQuantity)
		return nil, errors.NewAppError(errors.ErrCodeLedgerCorrupt, "Ledger không hợp lệ, cần can thiệp vận hành", errors.ErrLedgerCorrupt)
	}
	return &rec, nil
}

// Initialize tạo sẵn bản ghi ledger cho khoảng ngày [from, to], idempotent theo ngày
func (l *AvailabilityLedger) Initialize(roomTypeID uint, from, to time.Time) error {
	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		for _, day := range DaysInclusive(from, to) {
			if _, err := l.record(tx, roomType, day); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAvailability trả về số lượng còn lại và trạng thái của một ngày.
// Ngày chưa có bản ghi được coi là còn đủ toàn bộ số lượng.
func (l *AvailabilityLedger) GetAvailability(roomTypeID uint, date time.Time) (*models.AvailabilityRecord, error) {
	roomType, err := l.roomType(l.db, roomTypeID)
	if err != nil {
		return nil, err
	}
	day := Day(date)

	var rec models.AvailabilityRecord
	err = l.db.Where("room_type_id = ? AND date = ?", roomTypeID, day).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return &models.AvailabilityRecord{
			RoomTypeID:        roomTypeID,
			Date:              day,
			AvailableQuantity: roomType.Quantity,
			Status:            constants.AvailabilityStatusAvailable,
		}, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc bản ghi ledger", err)
	}
	return &rec, nil
}

// GetRange trả về ledger của khoảng ngày [from, to], kể cả ngày chưa có bản ghi
func (l *AvailabilityLedger) GetRange(roomTypeID uint, from, to time.Time) ([]models.AvailabilityRecord, error) {
	roomType, err := l.roomType(l.db, roomTypeID)
	if err != nil {
		return nil, err
	}

	var stored []models.AvailabilityRecord
	if err := l.db.Where("room_type_id = ? AND date >= ? AND date <= ?", roomTypeID, Day(from), Day(to)).
		Order("date").Find(&stored).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc ledger", err)
	}

	byDate := make(map[string]models.AvailabilityRecord, len(stored))
	for _, rec := range stored {
		byDate[rec.Date.Format(constants.DayLayout)] = rec
	}

	var records []models.AvailabilityRecord
	for _, day := range DaysInclusive(from, to) {
		if rec, ok := byDate[day.Format(constants.DayLayout)]; ok {
			records = append(records, rec)
			continue
		}
		records = append(records, models.AvailabilityRecord{
			RoomTypeID:        roomTypeID,
			Date:              day,
			AvailableQuantity: roomType.Quantity,
			Status:            constants.AvailabilityStatusAvailable,
		})
	}
	return records, nil
}

// Reserve trừ count đơn vị cho mọi đêm [from, to). Chỉ cần một đêm thiếu
// là toàn bộ thao tác rollback, không có mutation dở dang.
func (l *AvailabilityLedger) Reserve(roomTypeID uint, from, to time.Time, count int) error {
	if count < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng đặt phải lớn hơn 0", nil)
	}

	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		for _, day := range NightsBetween(from, to) {
			rec, err := l.record(tx, roomType, day)
			if err != nil {
				return err
			}
			if rec.Status != constants.AvailabilityStatusAvailable || rec.AvailableQuantity < count {
				return errors.NewAppError(errors.ErrCodeInsufficientInventory,
					fmt.Sprintf("Không đủ phòng ngày %s", day.Format(constants.DayLayout)),
					errors.ErrInsufficientInventory)
			}
			rec.AvailableQuantity -= count
			if err := tx.Save(rec).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật ledger", err)
			}
		}
		return nil
	})
}

// Release cộng trả count đơn vị cho mọi đêm [from, to). Ledger không tự chống
// double release, caller phải đảm bảo mỗi reservation chỉ release một lần
// thông qua state machine.
func (l *AvailabilityLedger) Release(roomTypeID uint, from, to time.Time, count int) error {
	if count < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng trả phải lớn hơn 0", nil)
	}

	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		for _, day := range NightsBetween(from, to) {
			rec, err := l.record(tx, roomType, day)
			if err != nil {
				return err
			}
			if unavailableStatus(rec.Status) {
				// Ngày đang bị chặn giữ nguyên 0, Unblock sẽ tính lại
				continue
			}
			rec.AvailableQuantity += count
			if rec.AvailableQuantity > roomType.Quantity {
				rec.AvailableQuantity = roomType.Quantity
			}
			if err := tx.Save(rec).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật ledger", err)
			}
		}
		return nil
	})
}

// Block chặn toàn bộ inventory các ngày [from, to], bất kể reservation hiện có.
// status là blocked hoặc maintenance, chỉ khác nhau về hiển thị.
func (l *AvailabilityLedger) Block(roomTypeID uint, from, to time.Time, reason string, status int) error {
	if !unavailableStatus(status) {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái chặn phải là blocked hoặc maintenance", nil)
	}

	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		for _, day := range DaysInclusive(from, to) {
			rec, err := l.record(tx, roomType, day)
			if err != nil {
				return err
			}
			rec.Status = status
			rec.AvailableQuantity = 0
			rec.BlockReason = reason
			if err := tx.Save(rec).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật ledger", err)
			}
		}
		return nil
	})
}

// Unblock gỡ chặn các ngày [from, to]. Số lượng khôi phục là
// quantity − reservation đang hiệu lực trên từng ngày, không reset về full.
func (l *AvailabilityLedger) Unblock(roomTypeID uint, from, to time.Time) error {
	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		for _, day := range DaysInclusive(from, to) {
			var rec models.AvailabilityRecord
			err := tx.Where("room_type_id = ? AND date = ?", roomTypeID, day).First(&rec).Error
			if err == gorm.ErrRecordNotFound {
				continue
			}
			if err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc bản ghi ledger", err)
			}
			if !unavailableStatus(rec.Status) {
				continue
			}

			active, err := l.activeReservations(tx, roomTypeID, day)
			if err != nil {
				return err
			}
			restored := roomType.Quantity - active
			if restored < 0 {
				utils.LogError("ledger âm sau unblock: room_type=%d date=%s active=%d quantity=%d",
					roomTypeID, day.Format(constants.DayLayout), active, roomType.Quantity)
				return errors.NewAppError(errors.ErrCodeLedgerCorrupt, "Ledger không hợp lệ, cần can thiệp vận hành", errors.ErrLedgerCorrupt)
			}

			rec.Status = constants.AvailabilityStatusAvailable
			rec.AvailableQuantity = restored
			rec.BlockReason = ""
			if err := tx.Save(&rec).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật ledger", err)
			}
		}
		return nil
	})
}

// AdjustQuantity đổi tổng số phòng của loại phòng và dồn chênh lệch vào mọi
// bản ghi ledger đã tồn tại. Giảm xuống dưới mức đang dùng của bất kỳ ngày nào
// thì từ chối toàn bộ, không để ledger âm.
func (l *AvailabilityLedger) AdjustQuantity(roomTypeID uint, newQuantity int) error {
	if newQuantity < 1 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số lượng phòng phải lớn hơn 0", nil)
	}

	mu := l.mutexFor(roomTypeID)
	mu.Lock()
	defer mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		roomType, err := l.roomType(tx, roomTypeID)
		if err != nil {
			return err
		}
		delta := newQuantity - roomType.Quantity
		if delta != 0 {
			var stored []models.AvailabilityRecord
			if err := tx.Where("room_type_id = ?", roomTypeID).Order("date").Find(&stored).Error; err != nil {
				return errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc ledger", err)
			}
			for i := range stored {
				rec := &stored[i]
				active, err := l.activeReservations(tx, roomTypeID, rec.Date)
				if err != nil {
					return err
				}
				if active > newQuantity {
					return errors.NewAppError(errors.ErrCodeValidation,
						fmt.Sprintf("Ngày %s đang có %d reservation, không thể giảm xuống %d phòng",
							rec.Date.Format(constants.DayLayout), active, newQuantity), nil)
				}
				if unavailableStatus(rec.Status) {
					// Ngày bị chặn giữ 0, Unblock sẽ tính lại theo quantity mới
					continue
				}
				next := rec.AvailableQuantity + delta
				if next < 0 {
					return errors.NewAppError(errors.ErrCodeValidation,
						fmt.Sprintf("Ngày %s không đủ phòng trống để giảm xuống %d phòng",
							rec.Date.Format(constants.DayLayout), newQuantity), nil)
				}
				rec.AvailableQuantity = next
				if err := tx.Save(rec).Error; err != nil {
					return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật ledger", err)
				}
			}
		}
		roomType.Quantity = newQuantity
		if err := tx.Save(roomType).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật loại phòng", err)
		}
		return nil
	})
}

// activeReservations đếm reservation còn giữ phòng phủ ngày day
func (l *AvailabilityLedger) activeReservations(tx *gorm.DB, roomTypeID uint, day time.Time) (int, error) {
	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("room_type_id = ? AND status IN ? AND check_in_date <= ? AND check_out_date > ?",
			roomTypeID,
			[]int{constants.ReservationStatusTentative, constants.ReservationStatusConfirmed, constants.ReservationStatusCheckedIn},
			day, day).
		Count(&count).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không thể đếm reservation", err)
	}
	return int(count), nil
}

// VerifyInvariant kiểm tra available = quantity − reservation hiệu lực − phần bị
// chặn cho từng ngày [from, to]. Dùng cho vận hành và test.
func (l *AvailabilityLedger) VerifyInvariant(roomTypeID uint, from, to time.Time) error {
	roomType, err := l.roomType(l.db, roomTypeID)
	if err != nil {
		return err
	}
	for _, day := range DaysInclusive(from, to) {
		rec, err := l.GetAvailability(roomTypeID, day)
		if err != nil {
			return err
		}
		if rec.AvailableQuantity < 0 {
			return errors.NewAppError(errors.ErrCodeLedgerCorrupt,
				fmt.Sprintf("Ledger âm ngày %s", day.Format(constants.DayLayout)), errors.ErrLedgerCorrupt)
		}
		if unavailableStatus(rec.Status) {
			if rec.AvailableQuantity != 0 {
				return errors.NewAppError(errors.ErrCodeLedgerCorrupt,
					fmt.Sprintf("Ngày bị chặn %s phải có số lượng 0", day.Format(constants.DayLayout)), errors.ErrLedgerCorrupt)
			}
			continue
		}
		active, err := l.activeReservations(l.db, roomTypeID, day)
		if err != nil {
			return err
		}
		if rec.AvailableQuantity != roomType.Quantity-active {
			return errors.NewAppError(errors.ErrCodeLedgerCorrupt,
				fmt.Sprintf("Ledger lệch ngày %s: còn %d, kỳ vọng %d",
					day.Format(constants.DayLayout), rec.AvailableQuantity, roomType.Quantity-active),
				errors.ErrLedgerCorrupt)
		}
	}
	return nil
}
