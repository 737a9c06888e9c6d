package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stayhub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB mở một database sqlite in-memory riêng cho từng test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Một connection duy nhất để in-memory database sống suốt test
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.RoomType{},
		&models.IndividualRoom{},
		&models.AvailabilityRecord{},
		&models.Reservation{},
		&models.PricingRule{},
		&models.Guest{},
	))
	return db
}

func createProperty(t *testing.T, db *gorm.DB, synced bool) *models.Property {
	t.Helper()
	property := models.Property{Name: "Khách sạn Hoa Sen", Synced: synced}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

func createRoomType(t *testing.T, db *gorm.DB, propertyID uint, quantity, basePrice int) *models.RoomType {
	t.Helper()
	roomType := models.RoomType{
		PropertyID:   propertyID,
		Name:         "Phòng Deluxe",
		Quantity:     quantity,
		BasePrice:    basePrice,
		MaxOccupancy: 4,
	}
	require.NoError(t, db.Create(&roomType).Error)
	return &roomType
}

func mustDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := ParseDate(dateStr)
	require.NoError(t, err)
	return parsed
}

func newTestManager(db *gorm.DB) *ReservationManager {
	return NewReservationManager(ReservationManagerOptions{DB: db})
}
