package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ctrlTestDBCounter int64

func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ctrl_test_%d?mode=memory&cache=shared", atomic.AddInt64(&ctrlTestDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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

func setupRoomTypeRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *services.ReservationManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := services.NewReservationManager(services.ReservationManagerOptions{DB: db})
	ctrl := NewRoomTypeController(db, nil, manager)

	router := gin.New()
	router.GET("/roomTypes", ctrl.GetRoomTypes)
	router.PUT("/roomTypeUpdate", ctrl.UpdateRoomType)
	return router, manager
}

func createTestRoomType(t *testing.T, db *gorm.DB, propertyID uint, name string, quantity int) *models.RoomType {
	t.Helper()
	roomType := models.RoomType{
		PropertyID:   propertyID,
		Name:         name,
		Quantity:     quantity,
		BasePrice:    100,
		MaxOccupancy: 4,
	}
	require.NoError(t, db.Create(&roomType).Error)
	return &roomType
}

func TestGetRoomTypes_FiltersByProperty(t *testing.T) {
	db := setupControllerDB(t)
	router, _ := setupRoomTypeRouter(t, db)

	propertyA := models.Property{Name: "Khách sạn Hoa Sen"}
	require.NoError(t, db.Create(&propertyA).Error)
	propertyB := models.Property{Name: "Homestay Đà Lạt"}
	require.NoError(t, db.Create(&propertyB).Error)

	createTestRoomType(t, db, propertyA.ID, "Phòng Deluxe", 3)
	createTestRoomType(t, db, propertyA.ID, "Phòng Standard", 5)
	createTestRoomType(t, db, propertyB.ID, "Bungalow", 2)

	// Query không lọc trả về tất cả
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/roomTypes", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var all struct {
		Data  []models.RoomType `json:"data"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Equal(t, 3, all.Total)

	// Query lọc theo property chỉ trả về loại phòng của property đó
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/roomTypes?propertyId=%d", propertyB.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var filtered struct {
		Data  []models.RoomType `json:"data"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, propertyB.ID, filtered.Data[0].PropertyID)
	assert.Equal(t, "Bungalow", filtered.Data[0].Name)
}

func TestUpdateRoomType_QuantityKeepsLedgerConsistent(t *testing.T) {
	db := setupControllerDB(t)
	router, manager := setupRoomTypeRouter(t, db)

	property := models.Property{Name: "Khách sạn Hoa Sen"}
	require.NoError(t, db.Create(&property).Error)
	roomType := createTestRoomType(t, db, property.ID, "Phòng Deluxe", 5)

	// 3 reservation hiệu lực cùng đêm
	for i := 0; i < 3; i++ {
		_, err := manager.Create(dto.CreateReservationRequest{
			RoomTypeID:   roomType.ID,
			CheckInDate:  "10/01/2026",
			CheckOutDate: "11/01/2026",
			Adults:       2,
		})
		require.NoError(t, err)
	}

	doUpdate := func(quantity int) *httptest.ResponseRecorder {
		body, err := json.Marshal(dto.UpdateRoomTypeRequest{ID: roomType.ID, Quantity: quantity})
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/roomTypeUpdate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	// Giảm xuống dưới 3 reservation đang giữ phải bị từ chối
	w := doUpdate(2)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.RoomType
	require.NoError(t, db.First(&unchanged, roomType.ID).Error)
	assert.Equal(t, 5, unchanged.Quantity)

	// Giảm hợp lệ: quantity và ledger cùng được cập nhật, invariant giữ nguyên
	w = doUpdate(3)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.RoomType
	require.NoError(t, db.First(&updated, roomType.ID).Error)
	assert.Equal(t, 3, updated.Quantity)

	day, err := services.ParseDate("10/01/2026")
	require.NoError(t, err)
	require.NoError(t, manager.Ledger().VerifyInvariant(roomType.ID, day, day))

	rec, err := manager.Ledger().GetAvailability(roomType.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.AvailableQuantity)

	// Hết phòng thật sự: booking thêm bị từ chối thay vì oversell
	_, err = manager.Create(dto.CreateReservationRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "11/01/2026",
		Adults:       2,
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))
}
