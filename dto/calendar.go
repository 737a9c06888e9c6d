package dto

// Span là một dải ô liền nhau trên calendar ứng với một reservation.
// StartIndex/EndIndex là chỉ số trong trục ngày đang hiển thị, EndIndex inclusive.
type Span struct {
	ReservationID uint `json:"reservationId"`
	StartIndex    int  `json:"startIndex"`
	EndIndex      int  `json:"endIndex"`
	Colspan       int  `json:"colspan"`
	Status        int  `json:"status"`
}

// CalendarCell là một ô (phòng hoặc room type, ngày)
type CalendarCell struct {
	Date              string `json:"date"`
	AvailableQuantity int    `json:"availableQuantity"`
	Status            int    `json:"status"`
}

// CalendarRow là một hàng calendar cho một phòng vật lý
type CalendarRow struct {
	RoomID     uint           `json:"roomId,omitempty"`
	RoomNumber string         `json:"roomNumber,omitempty"`
	Cells      []CalendarCell `json:"cells"`
	Spans      []Span         `json:"spans"`
}

// CalendarResponse là contract read-only cho calendar view
type CalendarResponse struct {
	RoomTypeID uint           `json:"roomTypeId"`
	Dates      []string       `json:"dates"`
	Summary    []CalendarCell `json:"summary"` // Ledger tổng hợp theo ngày
	Rows       []CalendarRow  `json:"rows"`
}
