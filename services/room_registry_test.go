package services

import (
	"testing"

	"stayhub/constants"
	"stayhub/errors"
	"stayhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GenerateZeroPaddedNumbers(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 5, 100)
	registry := NewIndividualRoomRegistry(db)

	rooms, err := registry.Generate(roomType.ID, "2", 1, 5, 2)
	require.NoError(t, err)
	require.Len(t, rooms, 5)
	assert.Equal(t, "201", rooms[0].RoomNumber)
	assert.Equal(t, "205", rooms[4].RoomNumber)
	for _, room := range rooms {
		assert.Equal(t, constants.RoomStatusClean, room.Status)
		assert.Equal(t, 2, room.Floor)
	}
}

func TestRegistry_GenerateRejectsPropertyWideCollision(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomTypeA := createRoomType(t, db, property.ID, 5, 100)
	roomTypeB := createRoomType(t, db, property.ID, 5, 120)
	registry := NewIndividualRoomRegistry(db)

	// Phòng 203 đã tồn tại ở một room type khác cùng property
	existing := models.IndividualRoom{RoomTypeID: roomTypeB.ID, RoomNumber: "203"}
	require.NoError(t, db.Create(&existing).Error)

	rooms, err := registry.Generate(roomTypeA.ID, "2", 1, 5, 2)
	require.Error(t, err)
	assert.Nil(t, rooms)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRoomNumberTaken))
	appErr := errors.GetAppError(err)
	assert.Contains(t, appErr.Message, "203")
	// Gợi ý số bắt đầu: 4, vì dải 04..08 không đụng 203
	assert.Contains(t, appErr.Message, "4")

	// Từ chối toàn bộ, không tạo phòng nào
	var count int64
	require.NoError(t, db.Model(&models.IndividualRoom{}).Where("room_type_id = ?", roomTypeA.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegistry_GenerateAllowsSameNumberAcrossProperties(t *testing.T) {
	db := setupTestDB(t)
	propertyA := createProperty(t, db, false)
	propertyB := createProperty(t, db, false)
	roomTypeA := createRoomType(t, db, propertyA.ID, 3, 100)
	roomTypeB := createRoomType(t, db, propertyB.ID, 3, 100)
	registry := NewIndividualRoomRegistry(db)

	_, err := registry.Generate(roomTypeA.ID, "1", 1, 3, 1)
	require.NoError(t, err)
	// Cùng dải số ở property khác không tính là trùng
	_, err = registry.Generate(roomTypeB.ID, "1", 1, 3, 1)
	require.NoError(t, err)
}

func TestRegistry_PadWidthFollowsLargestNumber(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 20, 100)
	registry := NewIndividualRoomRegistry(db)

	rooms, err := registry.Generate(roomType.ID, "A", 95, 10, 9)
	require.NoError(t, err)
	require.Len(t, rooms, 10)
	assert.Equal(t, "A095", rooms[0].RoomNumber)
	assert.Equal(t, "A104", rooms[9].RoomNumber)
}

func TestRegistry_FindAvailableForRange(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 3, 100)
	registry := NewIndividualRoomRegistry(db)

	rooms, err := registry.Generate(roomType.ID, "1", 1, 3, 1)
	require.NoError(t, err)

	// Phòng 101 có khách trong khoảng, phòng 103 hỏng
	reservation := models.Reservation{
		RoomTypeID:       roomType.ID,
		IndividualRoomID: &rooms[0].ID,
		CheckInDate:      mustDate(t, "10/01/2026"),
		CheckOutDate:     mustDate(t, "12/01/2026"),
		Status:           constants.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(&reservation).Error)
	_, err = registry.SetStatus(rooms[2].ID, constants.RoomStatusOutOfOrder)
	require.NoError(t, err)

	free, err := registry.FindAvailableForRange(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "12/01/2026"))
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "102", free[0].RoomNumber)

	// Khoảng không giao với kỳ lưu trú thì phòng 101 trống trở lại
	free, err = registry.FindAvailableForRange(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "14/01/2026"))
	require.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestRegistry_RoomFreeForRangeExcludesOwnReservation(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	registry := NewIndividualRoomRegistry(db)

	rooms, err := registry.Generate(roomType.ID, "3", 1, 1, 3)
	require.NoError(t, err)
	room := &rooms[0]

	reservation := models.Reservation{
		RoomTypeID:       roomType.ID,
		IndividualRoomID: &room.ID,
		CheckInDate:      mustDate(t, "01/02/2026"),
		CheckOutDate:     mustDate(t, "05/02/2026"),
		Status:           constants.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(&reservation).Error)

	// Chính reservation đang giữ phòng không tự chặn mình
	assert.NoError(t, registry.RoomFreeForRange(room, reservation.CheckInDate, reservation.CheckOutDate, reservation.ID))

	err = registry.RoomFreeForRange(room, reservation.CheckInDate, reservation.CheckOutDate, 0)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRoomUnavailable))
}

func TestRegistry_SetStatusValidates(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	registry := NewIndividualRoomRegistry(db)

	rooms, err := registry.Generate(roomType.ID, "5", 1, 1, 5)
	require.NoError(t, err)

	_, err = registry.SetStatus(rooms[0].ID, 9)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidStatus))

	room, err := registry.SetStatus(rooms[0].ID, constants.RoomStatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusMaintenance, room.Status)
	assert.True(t, room.Bookable())
}
