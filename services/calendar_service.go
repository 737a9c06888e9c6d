package services

import (
	"context"
	"fmt"
	"time"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CalendarService dựng contract read-only cho calendar view từ ledger,
// reservation và SpanCalculator. Không có đường ghi nào đi qua đây.
// Cửa sổ ngày là tham số của từng lời gọi, không phải state dùng chung.
type CalendarService struct {
	db      *gorm.DB
	manager *ReservationManager
	spans   *SpanCalculator
	rdb     *redis.Client
}

func NewCalendarService(db *gorm.DB, manager *ReservationManager, rdb *redis.Client) *CalendarService {
	return &CalendarService{
		db:      db,
		manager: manager,
		spans:   NewSpanCalculator(),
		rdb:     rdb,
	}
}

func calendarCacheKey(roomTypeID uint, version int64, from, to time.Time) string {
	return fmt.Sprintf("calendar:%d:v%d:%s:%s", roomTypeID, version,
		from.Format(constants.DayLayout), to.Format(constants.DayLayout))
}

// GetCalendar trả về trục ngày, ledger tổng hợp và các hàng phòng kèm span
// cho cửa sổ [from, to]
func (c *CalendarService) GetCalendar(ctx context.Context, roomTypeID uint, from, to time.Time) (*dto.CalendarResponse, error) {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Khoảng ngày hiển thị không hợp lệ", errors.ErrInvalidDateRange)
	}

	cacheKey := calendarCacheKey(roomTypeID, calendarVersion(ctx, c.rdb, roomTypeID), from, to)
	if c.rdb != nil {
		var cached dto.CalendarResponse
		if err := GetFromRedis(ctx, c.rdb, cacheKey, &cached); err == nil && len(cached.Dates) > 0 {
			return &cached, nil
		}
	}

	records, err := c.manager.Ledger().GetRange(roomTypeID, from, to)
	if err != nil {
		return nil, err
	}
	summary := make([]dto.CalendarCell, 0, len(records))
	for _, rec := range records {
		summary = append(summary, dto.CalendarCell{
			Date:              FormatDate(rec.Date),
			AvailableQuantity: rec.AvailableQuantity,
			Status:            rec.Status,
		})
	}

	// Reservation hiệu lực chạm vào cửa sổ, kể cả tràn ra ngoài hai đầu
	var reservations []models.Reservation
	err = c.db.Where("room_type_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
		roomTypeID,
		[]int{constants.ReservationStatusTentative, constants.ReservationStatusConfirmed, constants.ReservationStatusCheckedIn},
		to.AddDate(0, 0, 1), from).
		Find(&reservations).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể đọc reservation", err)
	}

	byRoom := make(map[uint][]models.Reservation)
	var unassigned []models.Reservation
	for _, res := range reservations {
		if res.IndividualRoomID == nil {
			unassigned = append(unassigned, res)
			continue
		}
		byRoom[*res.IndividualRoomID] = append(byRoom[*res.IndividualRoomID], res)
	}

	rooms, err := c.manager.Registry().List(roomTypeID)
	if err != nil {
		return nil, err
	}

	response := &dto.CalendarResponse{
		RoomTypeID: roomTypeID,
		Dates:      c.spans.DateAxis(from, to),
		Summary:    summary,
	}

	for _, room := range rooms {
		response.Rows = append(response.Rows, dto.CalendarRow{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Cells:      c.roomCells(&room, byRoom[room.ID], from, to),
			Spans:      c.spans.CalculateSpans(from, to, byRoom[room.ID]),
		})
	}

	// Reservation chưa gán phòng: mỗi cái một hàng riêng để span không
	// bao giờ phải cắt lẫn nhau
	for _, res := range unassigned {
		response.Rows = append(response.Rows, dto.CalendarRow{
			Spans: c.spans.CalculateSpans(from, to, []models.Reservation{res}),
		})
	}

	if c.rdb != nil {
		if err := SetToRedis(ctx, c.rdb, cacheKey, response, 5*time.Minute); err != nil {
			utils.LogError("không lưu được calendar vào Redis: %v", err)
		}
	}
	return response, nil
}

// roomCells dựng ô theo ngày cho một phòng vật lý: 1 nếu đêm đó trống
func (c *CalendarService) roomCells(room *models.IndividualRoom, reservations []models.Reservation, from, to time.Time) []dto.CalendarCell {
	cells := make([]dto.CalendarCell, 0)
	for _, day := range DaysInclusive(from, to) {
		available := 1
		if !room.Bookable() {
			available = 0
		}
		for _, res := range reservations {
			if res.CoversDate(day) {
				available = 0
				break
			}
		}
		cells = append(cells, dto.CalendarCell{
			Date:              FormatDate(day),
			AvailableQuantity: available,
			Status:            room.Status,
		})
	}
	return cells
}
