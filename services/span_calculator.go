package services

import (
	"sort"
	"time"

	"stayhub/dto"
	"stayhub/models"
)

// SpanCalculator nén các đêm lưu trú thành dải ô liền nhau cho calendar.
// Thuần tính toán, không truy cập database.
type SpanCalculator struct{}

func NewSpanCalculator() *SpanCalculator {
	return &SpanCalculator{}
}

// CalculateSpans trả về các span của một hàng calendar (một phòng vật lý
// hoặc một room type quantity=1) trong cửa sổ [windowStart, windowEnd].
// Reservation tràn ra ngoài cửa sổ vẫn hiển thị, colspan bị cắt theo phần
// nhìn thấy. Hai span của cùng một hàng không bao giờ chồng ngày.
func (s *SpanCalculator) CalculateSpans(windowStart, windowEnd time.Time, reservations []models.Reservation) []dto.Span {
	windowStart = Day(windowStart)
	windowEnd = Day(windowEnd)
	if windowEnd.Before(windowStart) {
		return nil
	}
	axisLen := daysApart(windowStart, windowEnd) + 1

	visible := make([]models.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if !res.Active() {
			continue
		}
		// Cửa sổ tính theo ngày inclusive, kỳ lưu trú check-out exclusive
		if res.Overlaps(windowStart, windowEnd.AddDate(0, 0, 1)) {
			visible = append(visible, res)
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		if !visible[i].CheckInDate.Equal(visible[j].CheckInDate) {
			return visible[i].CheckInDate.Before(visible[j].CheckInDate)
		}
		return visible[i].ID < visible[j].ID
	})

	spans := make([]dto.Span, 0, len(visible))
	prevEnd := -1
	for _, res := range visible {
		startIdx := daysApart(windowStart, Day(res.CheckInDate))
		if startIdx < 0 {
			startIdx = 0
		}
		// Đêm cuối là check-out − 1
		endIdx := daysApart(windowStart, Day(res.CheckOutDate).AddDate(0, 0, -1))
		if endIdx > axisLen-1 {
			endIdx = axisLen - 1
		}
		// Dữ liệu hợp lệ không có hai reservation chồng đêm trên cùng một
		// phòng, nhưng nếu có thì cắt thay vì vẽ chồng ô
		if startIdx <= prevEnd {
			startIdx = prevEnd + 1
		}
		if startIdx > endIdx {
			continue
		}
		spans = append(spans, dto.Span{
			ReservationID: res.ID,
			StartIndex:    startIdx,
			EndIndex:      endIdx,
			Colspan:       endIdx - startIdx + 1,
			Status:        res.Status,
		})
		prevEnd = endIdx
	}
	return spans
}

// DateAxis trả về trục ngày hiển thị của cửa sổ, theo định dạng API
func (s *SpanCalculator) DateAxis(windowStart, windowEnd time.Time) []string {
	var dates []string
	for _, day := range DaysInclusive(windowStart, windowEnd) {
		dates = append(dates, FormatDate(day))
	}
	return dates
}

func daysApart(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
