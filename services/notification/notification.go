package notification

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/olahol/melody"
)

// Service gửi sự kiện reservation/calendar cho client đang theo dõi.
// Gửi thất bại chỉ được log, không bao giờ rollback thao tác đặt phòng.
type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// LogService là fallback khi không có websocket, ví dụ trong test
type LogService struct{}

func (s *LogService) SendMessage(message string) error {
	log.Println("notification:", message)
	return nil
}

// Event là payload chung cho các sự kiện gửi đi
type Event struct {
	Type          string `json:"type"`
	ReservationID uint   `json:"reservationId,omitempty"`
	RoomTypeID    uint   `json:"roomTypeId,omitempty"`
	Status        int    `json:"status,omitempty"`
}

// BuildEvent dựng message JSON cho một sự kiện
func BuildEvent(eventType string, reservationID, roomTypeID uint, status int) string {
	payload, err := json.Marshal(Event{
		Type:          eventType,
		ReservationID: reservationID,
		RoomTypeID:    roomTypeID,
		Status:        status,
	})
	if err != nil {
		return fmt.Sprintf(`{"type":%q}`, eventType)
	}
	return string(payload)
}
