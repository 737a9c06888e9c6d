package jobs

import (
	"log"
	"time"

	"stayhub/services/notification"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// NoShowMarker định nghĩa interface cho việc quét reservation quá hạn nhận phòng
type NoShowMarker interface {
	MarkNoShows(now time.Time) (int, error)
}

var noShowMarker NoShowMarker

// SetNoShowMarker thiết lập implementation cho NoShowMarker
func SetNoShowMarker(marker NoShowMarker) {
	noShowMarker = marker
}

// CalendarRefresher định nghĩa interface cho việc làm mới cache calendar
type CalendarRefresher interface {
	RefreshCalendars() (int, error)
}

var calendarRefresher CalendarRefresher

// SetCalendarRefresher thiết lập implementation cho CalendarRefresher
func SetCalendarRefresher(refresher CalendarRefresher) {
	calendarRefresher = refresher
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Cron job chạy lúc 0h mỗi ngày: tentative quá ngày nhận phòng thành no_show
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang quét reservation quá hạn nhận phòng lúc: %v", now)
		if noShowMarker == nil {
			log.Printf("Lỗi: NoShowMarker chưa được thiết lập")
			return
		}
		marked, err := noShowMarker.MarkNoShows(now)
		if err != nil {
			log.Printf("Lỗi khi quét no-show: %v", err)
			return
		}
		if marked > 0 {
			log.Printf("Đã đánh dấu %d reservation no_show", marked)
			if m != nil {
				event := notification.BuildEvent("calendar.refresh", 0, 0, 0)
				if err := m.Broadcast([]byte(event)); err != nil {
					log.Printf("Lỗi khi broadcast calendar.refresh: %v", err)
				}
			}
		}
	})
	if err != nil {
		return err
	}

	// Cron job chạy mỗi giờ: làm mới cache calendar và báo client tải lại
	_, err = c.AddFunc("0 * * * *", func() {
		if calendarRefresher == nil {
			log.Printf("Lỗi: CalendarRefresher chưa được thiết lập")
			return
		}
		refreshed, err := calendarRefresher.RefreshCalendars()
		if err != nil {
			log.Printf("Lỗi khi làm mới cache calendar: %v", err)
			return
		}
		log.Printf("Đã làm mới cache calendar cho %d loại phòng", refreshed)
		if m != nil {
			event := notification.BuildEvent("calendar.refresh", 0, 0, 0)
			if err := m.Broadcast([]byte(event)); err != nil {
				log.Printf("Lỗi khi broadcast calendar.refresh: %v", err)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
