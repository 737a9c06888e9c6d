package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/notification"
	"stayhub/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReservationManager điều phối toàn bộ vòng đời đặt phòng: tính giá qua
// PricingResolver, giữ chỗ qua AvailabilityLedger, gán phòng vật lý qua
// RoomAssignmentResolver. Đây là component duy nhất được gọi các thao tác
// ghi của ledger.
type ReservationManager struct {
	db       *gorm.DB
	ledger   *AvailabilityLedger
	pricing  *PricingResolver
	registry *IndividualRoomRegistry
	assigner *RoomAssignmentResolver
	guests   GuestDirectory
	notifier notification.Service
	guard    *SyncGuard
	rdb      *redis.Client
}

// ReservationManagerOptions gom dependency khi khởi tạo manager
type ReservationManagerOptions struct {
	DB       *gorm.DB
	Guests   GuestDirectory
	Notifier notification.Service
	Redis    *redis.Client
}

func NewReservationManager(opts ReservationManagerOptions) *ReservationManager {
	registry := NewIndividualRoomRegistry(opts.DB)
	notifier := opts.Notifier
	if notifier == nil {
		notifier = &notification.LogService{}
	}
	guests := opts.Guests
	if guests == nil {
		guests = NewDBGuestDirectory(opts.DB)
	}
	return &ReservationManager{
		db:       opts.DB,
		ledger:   NewAvailabilityLedger(opts.DB),
		pricing:  NewPricingResolver(opts.DB),
		registry: registry,
		assigner: NewRoomAssignmentResolver(opts.DB, registry),
		guests:   guests,
		notifier: notifier,
		guard:    NewSyncGuard(opts.DB),
		rdb:      opts.Redis,
	}
}

// Ledger cho các component khác đọc availability, không ghi
func (m *ReservationManager) Ledger() *AvailabilityLedger {
	return m.ledger
}

// Registry trả về registry phòng vật lý dùng chung
func (m *ReservationManager) Registry() *IndividualRoomRegistry {
	return m.registry
}

// Assigner trả về resolver gán phòng dùng chung
func (m *ReservationManager) Assigner() *RoomAssignmentResolver {
	return m.assigner
}

// bumpCalendar vô hiệu cache calendar của room type sau mỗi mutation inventory
func (m *ReservationManager) bumpCalendar(roomTypeID uint) {
	BumpCalendarVersion(context.Background(), m.rdb, roomTypeID)
}

func (m *ReservationManager) notify(eventType string, res *models.Reservation) {
	message := notification.BuildEvent(eventType, res.ID, res.RoomTypeID, res.Status)
	if err := m.notifier.SendMessage(message); err != nil {
		// Gửi thông báo là best-effort, không ảnh hưởng reservation
		utils.LogError("không gửi được thông báo %s cho reservation %d: %v", eventType, res.ID, err)
	}
}

func (m *ReservationManager) roomType(roomTypeID uint) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := m.db.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc loại phòng", err)
	}
	return &roomType, nil
}

// priceStay tính rate breakdown cho kỳ lưu trú và kiểm tra ràng buộc min/max stay
func (m *ReservationManager) priceStay(roomType *models.RoomType, checkIn, checkOut time.Time) (json.RawMessage, int, error) {
	rates, err := m.pricing.ResolveRange(roomType, checkIn, checkOut)
	if err != nil {
		return nil, 0, err
	}

	nights := len(rates)
	total := 0
	breakdown := make([]models.NightRate, 0, nights)
	for _, rate := range rates {
		if rate.MinStay > 0 && nights < rate.MinStay {
			return nil, 0, errors.NewAppError(errors.ErrCodeMinStay,
				fmt.Sprintf("Đêm %s yêu cầu ở tối thiểu %d đêm", rate.Date.Format(constants.DayLayout), rate.MinStay), nil)
		}
		if rate.MaxStay > 0 && nights > rate.MaxStay {
			return nil, 0, errors.NewAppError(errors.ErrCodeMaxStay,
				fmt.Sprintf("Đêm %s chỉ cho ở tối đa %d đêm", rate.Date.Format(constants.DayLayout), rate.MaxStay), nil)
		}
		night := models.NightRate{
			Date:  rate.Date.Format(constants.DayLayout),
			Price: rate.Price,
		}
		if rate.Rule != nil {
			ruleID := rate.Rule.ID
			night.RuleID = &ruleID
		}
		total += rate.Price
		breakdown = append(breakdown, night)
	}

	raw, err := json.Marshal(breakdown)
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrCodeInvalidFormat, "Không thể tạo rate breakdown", err)
	}
	return raw, total, nil
}

// Create đặt phòng mới. Giữ chỗ trên ledger là một bước atomic cho cả khoảng
// ngày: thiếu phòng ở bất kỳ đêm nào thì không có gì được tạo.
func (m *ReservationManager) Create(req dto.CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := ParseStayRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if err := m.guard.EnsureWritable(req.RoomTypeID); err != nil {
		return nil, err
	}

	roomType, err := m.roomType(req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	if req.Adults < 1 {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Phải có ít nhất 1 người lớn", nil)
	}
	if roomType.MaxOccupancy > 0 && req.Adults+req.Children > roomType.MaxOccupancy {
		return nil, errors.NewAppError(errors.ErrCodeValidation,
			fmt.Sprintf("Loại phòng này chứa tối đa %d khách", roomType.MaxOccupancy), nil)
	}

	nightsRaw, total, err := m.priceStay(roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	guestRef := ""
	if req.GuestEmail != "" {
		guestRef, err = m.guests.FindOrCreateGuest(req.GuestEmail, req.GuestName, req.GuestPhone)
		if err != nil {
			return nil, err
		}
	}

	if err := m.ledger.Reserve(req.RoomTypeID, checkIn, checkOut, 1); err != nil {
		return nil, err
	}

	status := constants.ReservationStatusTentative
	if req.Confirmed {
		status = constants.ReservationStatusConfirmed
	}

	reservation := models.Reservation{
		RoomTypeID:   req.RoomTypeID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       req.Adults,
		Children:     req.Children,
		Status:       status,
		Price:        total,
		TotalPrice:   total,
		Nights:       nightsRaw,
		GuestRef:     guestRef,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		GuestPhone:   req.GuestPhone,
	}

	if err := m.db.Create(&reservation).Error; err != nil {
		// Trả lại chỗ vừa giữ để ledger không lệch
		if releaseErr := m.ledger.Release(req.RoomTypeID, checkIn, checkOut, 1); releaseErr != nil {
			utils.LogError("không trả lại được chỗ sau khi tạo reservation thất bại: %v", releaseErr)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể tạo reservation", err)
	}

	// Gán phòng vật lý là best-effort, thiếu phòng không làm hỏng booking
	if err := m.assigner.AutoAssign(&reservation); err != nil {
		utils.LogError("auto assign thất bại cho reservation %d: %v", reservation.ID, err)
	}

	m.bumpCalendar(reservation.RoomTypeID)
	m.notify("reservation.created", &reservation)
	return &reservation, nil
}

// Get trả về reservation theo id
func (m *ReservationManager) Get(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := m.db.Preload("RoomType").Preload("IndividualRoom").First(&reservation, reservationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy reservation", errors.ErrReservationNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc reservation", err)
	}
	return &reservation, nil
}

// List trả về reservation theo room type, lọc theo trạng thái nếu cần
func (m *ReservationManager) List(roomTypeID uint, status *int) ([]models.Reservation, error) {
	tx := m.db.Preload("IndividualRoom").Where("room_type_id = ?", roomTypeID)
	if status != nil {
		tx = tx.Where("status = ?", *status)
	}
	var reservations []models.Reservation
	if err := tx.Order("check_in_date").Find(&reservations).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc danh sách reservation", err)
	}
	return reservations, nil
}

// ChangeStatus chuyển trạng thái theo state machine. Vào cancelled/no_show
// release ledger đúng một lần; các bước confirmed → checked_in → checked_out
// không đụng ledger vì chỗ đã trừ lúc tạo.
func (m *ReservationManager) ChangeStatus(reservationID uint, newStatus int) (*models.Reservation, error) {
	reservation, err := m.Get(reservationID)
	if err != nil {
		return nil, err
	}

	// Đổi sang chính trạng thái hiện tại là no-op, tránh double release
	if reservation.Status == newStatus {
		return reservation, nil
	}

	if err := models.ApplyTransition(reservation, newStatus); err != nil {
		return nil, err
	}

	released := newStatus == constants.ReservationStatusCancelled || newStatus == constants.ReservationStatusNoShow
	if released {
		// State machine chỉ cho cancel/no_show từ tentative/confirmed,
		// hai trạng thái đang giữ chỗ, nên release đúng một lần ở đây
		if err := m.ledger.Release(reservation.RoomTypeID, reservation.CheckInDate, reservation.CheckOutDate, 1); err != nil {
			return nil, err
		}
	}

	if err := m.db.Save(reservation).Error; err != nil {
		if released {
			if reserveErr := m.ledger.Reserve(reservation.RoomTypeID, reservation.CheckInDate, reservation.CheckOutDate, 1); reserveErr != nil {
				utils.LogError("không giữ lại được chỗ sau khi đổi trạng thái thất bại: %v", reserveErr)
			}
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}

	// Cập nhật trạng thái buồng phòng theo vòng đời lưu trú
	if reservation.IndividualRoomID != nil {
		switch newStatus {
		case constants.ReservationStatusCheckedIn:
			if _, err := m.registry.SetStatus(*reservation.IndividualRoomID, constants.RoomStatusOccupied); err != nil {
				utils.LogError("không cập nhật được trạng thái phòng %d: %v", *reservation.IndividualRoomID, err)
			}
		case constants.ReservationStatusCheckedOut:
			if _, err := m.registry.SetStatus(*reservation.IndividualRoomID, constants.RoomStatusDirty); err != nil {
				utils.LogError("không cập nhật được trạng thái phòng %d: %v", *reservation.IndividualRoomID, err)
			}
		}
	}

	m.bumpCalendar(reservation.RoomTypeID)
	m.notify("reservation.status_changed", reservation)
	return reservation, nil
}

// SetPaymentStatus lưu trạng thái thanh toán do collaborator bên ngoài đưa về.
// Core không tự tính hay xác thực thanh toán.
func (m *ReservationManager) SetPaymentStatus(reservationID uint, paymentStatus int) (*models.Reservation, error) {
	reservation, err := m.Get(reservationID)
	if err != nil {
		return nil, err
	}
	reservation.PaymentStatus = paymentStatus
	if err := m.db.Save(reservation).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}
	return reservation, nil
}

// Move chuyển reservation sang room type khác hoặc phòng vật lý khác.
// Validate toàn bộ kỳ lưu trú trước, chỉ cần một đêm không trống là
// reservation gốc giữ nguyên.
func (m *ReservationManager) Move(req dto.MoveReservationRequest) (*models.Reservation, error) {
	reservation, err := m.Get(req.ReservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.Active() {
		return nil, errors.NewAppError(errors.ErrCodeInvalidOperation, "Chỉ chuyển được reservation còn hiệu lực", nil)
	}

	switch {
	case req.IndividualRoomID != nil:
		return m.moveToRoom(reservation, *req.IndividualRoomID)
	case req.RoomTypeID != nil:
		return m.moveToRoomType(reservation, *req.RoomTypeID)
	default:
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Cần chỉ định phòng hoặc loại phòng đích", nil)
	}
}

func (m *ReservationManager) moveToRoom(reservation *models.Reservation, roomID uint) (*models.Reservation, error) {
	room, err := m.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	if room.RoomTypeID != reservation.RoomTypeID {
		// Kiểm tra sơ bộ trước khi đụng ledger, bước gán bên dưới mới quyết định
		if err := m.registry.RoomFreeForRange(room, reservation.CheckInDate, reservation.CheckOutDate, reservation.ID); err != nil {
			return nil, err
		}
		oldRoomTypeID := reservation.RoomTypeID
		moved, err := m.switchRoomType(reservation, room.RoomTypeID)
		if err != nil {
			return nil, err
		}
		if err := m.db.Save(moved).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
		}
		m.bumpCalendar(oldRoomTypeID)
		reservation = moved
	}

	// ManualAssign kiểm tra trống và ghi gán dưới lock theo room type,
	// hai request song song không thể cùng giữ một phòng
	if err := m.assigner.ManualAssign(reservation, room.ID); err != nil {
		return nil, err
	}
	m.bumpCalendar(reservation.RoomTypeID)
	m.notify("reservation.moved", reservation)
	return reservation, nil
}

func (m *ReservationManager) moveToRoomType(reservation *models.Reservation, roomTypeID uint) (*models.Reservation, error) {
	if roomTypeID == reservation.RoomTypeID {
		return reservation, nil
	}
	oldRoomTypeID := reservation.RoomTypeID
	moved, err := m.switchRoomType(reservation, roomTypeID)
	if err != nil {
		return nil, err
	}
	if err := m.db.Save(moved).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật reservation", err)
	}
	// Sang loại phòng mới thì gán phòng cũ không còn ý nghĩa
	if err := m.assigner.AutoAssign(moved); err != nil {
		utils.LogError("auto assign thất bại cho reservation %d: %v", moved.ID, err)
	}
	m.bumpCalendar(oldRoomTypeID)
	m.bumpCalendar(moved.RoomTypeID)
	m.notify("reservation.moved", moved)
	return moved, nil
}

// switchRoomType giữ chỗ ở loại phòng đích trước rồi mới trả chỗ cũ.
// Reserve là atomic nên thất bại ở bất kỳ đêm nào cũng không để lại mutation.
func (m *ReservationManager) switchRoomType(reservation *models.Reservation, targetRoomTypeID uint) (*models.Reservation, error) {
	if err := m.guard.EnsureWritable(targetRoomTypeID); err != nil {
		return nil, err
	}
	targetType, err := m.roomType(targetRoomTypeID)
	if err != nil {
		return nil, err
	}
	if targetType.MaxOccupancy > 0 && reservation.Adults+reservation.Children > targetType.MaxOccupancy {
		return nil, errors.NewAppError(errors.ErrCodeValidation,
			fmt.Sprintf("Loại phòng đích chỉ chứa tối đa %d khách", targetType.MaxOccupancy), nil)
	}

	nightsRaw, total, err := m.priceStay(targetType, reservation.CheckInDate, reservation.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if err := m.ledger.Reserve(targetRoomTypeID, reservation.CheckInDate, reservation.CheckOutDate, 1); err != nil {
		return nil, err
	}
	if err := m.ledger.Release(reservation.RoomTypeID, reservation.CheckInDate, reservation.CheckOutDate, 1); err != nil {
		// Trả lại chỗ vừa giữ ở đích để không rò rỉ inventory
		if undoErr := m.ledger.Release(targetRoomTypeID, reservation.CheckInDate, reservation.CheckOutDate, 1); undoErr != nil {
			utils.LogError("không hoàn tác được reserve khi move thất bại: %v", undoErr)
		}
		return nil, err
	}

	reservation.RoomTypeID = targetRoomTypeID
	reservation.IndividualRoomID = nil
	reservation.NeedsAssignment = true
	reservation.Nights = nightsRaw
	reservation.Price = total
	reservation.TotalPrice = total
	return reservation, nil
}

// InitializeAvailability tạo sẵn ledger cho khoảng ngày, idempotent
func (m *ReservationManager) InitializeAvailability(roomTypeID uint, from, to time.Time) error {
	if err := m.guard.EnsureWritable(roomTypeID); err != nil {
		return err
	}
	return m.ledger.Initialize(roomTypeID, from, to)
}

// BlockDates chặn inventory một khoảng ngày, độc lập với reservation hiện có.
// status phân biệt chặn vận hành (blocked) và bảo trì (maintenance).
func (m *ReservationManager) BlockDates(roomTypeID uint, from, to time.Time, reason string, status int) error {
	if err := m.guard.EnsureWritable(roomTypeID); err != nil {
		return err
	}
	if err := m.ledger.Block(roomTypeID, from, to, reason, status); err != nil {
		return err
	}
	m.bumpCalendar(roomTypeID)
	return nil
}

// UnblockDates gỡ chặn, khôi phục theo số reservation còn hiệu lực từng ngày
func (m *ReservationManager) UnblockDates(roomTypeID uint, from, to time.Time) error {
	if err := m.guard.EnsureWritable(roomTypeID); err != nil {
		return err
	}
	if err := m.ledger.Unblock(roomTypeID, from, to); err != nil {
		return err
	}
	m.bumpCalendar(roomTypeID)
	return nil
}

// ChangeQuantity đổi tổng số phòng của loại phòng, ledger các ngày đã có
// bản ghi được dồn chênh lệch ngay trong cùng transaction
func (m *ReservationManager) ChangeQuantity(roomTypeID uint, quantity int) error {
	if err := m.guard.EnsureWritable(roomTypeID); err != nil {
		return err
	}
	if err := m.ledger.AdjustQuantity(roomTypeID, quantity); err != nil {
		return err
	}
	m.bumpCalendar(roomTypeID)
	return nil
}

// RefreshCalendars đẩy version cache calendar của mọi room type, chạy từ
// cron job hằng giờ để client lấy dữ liệu mới
func (m *ReservationManager) RefreshCalendars() (int, error) {
	var roomTypeIDs []uint
	if err := m.db.Model(&models.RoomType{}).Pluck("id", &roomTypeIDs).Error; err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc danh sách loại phòng", err)
	}
	for _, id := range roomTypeIDs {
		m.bumpCalendar(id)
	}
	return len(roomTypeIDs), nil
}

// MarkNoShows chuyển các reservation tentative đã qua ngày nhận phòng sang
// no_show, chạy từ cron job hằng ngày
func (m *ReservationManager) MarkNoShows(now time.Time) (int, error) {
	var stale []models.Reservation
	err := m.db.Where("status = ? AND check_in_date < ?", constants.ReservationStatusTentative, Day(now)).
		Find(&stale).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc reservation quá hạn", err)
	}

	marked := 0
	for _, reservation := range stale {
		if _, err := m.ChangeStatus(reservation.ID, constants.ReservationStatusNoShow); err != nil {
			utils.LogError("không đánh dấu no_show được reservation %d: %v", reservation.ID, err)
			continue
		}
		marked++
	}
	return marked, nil
}
