package services

import (
	"sync"
	"testing"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignment_ManualAssignChecksRange(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	rooms, err := manager.Registry().Generate(roomType.ID, "1", 1, 1, 1)
	require.NoError(t, err)

	first, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "12/01/2026"))
	require.NoError(t, err)
	require.NotNil(t, first.IndividualRoomID)

	// Phòng duy nhất đã có khách trùng đêm
	second, err := manager.Create(createRequest(roomType.ID, "11/01/2026", "13/01/2026"))
	require.NoError(t, err)
	assert.True(t, second.NeedsAssignment)

	err = manager.Assigner().ManualAssign(second, rooms[0].ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRoomUnavailable))
}

func TestAssignment_ManualAssignRejectsOtherRoomType(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomTypeA := createRoomType(t, db, property.ID, 1, 100)
	roomTypeB := createRoomType(t, db, property.ID, 1, 120)
	manager := newTestManager(db)

	roomsB, err := manager.Registry().Generate(roomTypeB.ID, "2", 1, 1, 2)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomTypeA.ID, "10/01/2026", "11/01/2026"))
	require.NoError(t, err)

	err = manager.Assigner().ManualAssign(reservation, roomsB[0].ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidOperation))
}

func TestAssignment_UnassignThenAutoAssign(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	_, err := manager.Registry().Generate(roomType.ID, "3", 1, 1, 3)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/02/2026", "11/02/2026"))
	require.NoError(t, err)
	require.NotNil(t, reservation.IndividualRoomID)

	require.NoError(t, manager.Assigner().Unassign(reservation))
	assert.Nil(t, reservation.IndividualRoomID)
	assert.True(t, reservation.NeedsAssignment)

	require.NoError(t, manager.Assigner().AutoAssign(reservation))
	assert.NotNil(t, reservation.IndividualRoomID)
	assert.False(t, reservation.NeedsAssignment)
}

func TestAssignment_AutoAssignSkipsUnbookableRooms(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	rooms, err := manager.Registry().Generate(roomType.ID, "4", 1, 2, 4)
	require.NoError(t, err)
	_, err = manager.Registry().SetStatus(rooms[0].ID, constants.RoomStatusOutOfOrder)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/03/2026", "11/03/2026"))
	require.NoError(t, err)
	require.NotNil(t, reservation.IndividualRoomID)
	assert.Equal(t, rooms[1].ID, *reservation.IndividualRoomID)
}

func TestAssignment_ConcurrentManualAssignSameRoom(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	rooms, err := manager.Registry().Generate(roomType.ID, "5", 1, 1, 5)
	require.NoError(t, err)

	first, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "12/01/2026"))
	require.NoError(t, err)
	second, err := manager.Create(createRequest(roomType.ID, "11/01/2026", "13/01/2026"))
	require.NoError(t, err)

	// Cả hai đang giữ phòng duy nhất sau auto assign, gỡ ra để tranh nhau gán tay
	require.NoError(t, manager.Assigner().Unassign(first))
	require.NoError(t, manager.Assigner().Unassign(second))

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = manager.Assigner().ManualAssign(first, rooms[0].ID)
	}()
	go func() {
		defer wg.Done()
		results[1] = manager.Assigner().ManualAssign(second, rooms[0].ID)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.HasCode(err, errors.ErrCodeRoomUnavailable))
		}
	}
	assert.Equal(t, 1, succeeded, "đúng một reservation được giữ phòng cho khoảng đêm chồng nhau")
}

func TestAssignment_ConcurrentAutoAssignLastRoom(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	_, err := manager.Registry().Generate(roomType.ID, "6", 1, 1, 6)
	require.NoError(t, err)

	first, err := manager.Create(createRequest(roomType.ID, "10/02/2026", "12/02/2026"))
	require.NoError(t, err)
	second, err := manager.Create(createRequest(roomType.ID, "11/02/2026", "13/02/2026"))
	require.NoError(t, err)
	require.NoError(t, manager.Assigner().Unassign(first))
	require.NoError(t, manager.Assigner().Unassign(second))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, manager.Assigner().AutoAssign(first))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, manager.Assigner().AutoAssign(second))
	}()
	wg.Wait()

	// Auto assign không lỗi khi hết phòng, nhưng không được gán trùng
	assigned := 0
	if first.IndividualRoomID != nil {
		assigned++
	}
	if second.IndividualRoomID != nil {
		assigned++
	}
	assert.Equal(t, 1, assigned, "phòng cuối cùng chỉ về tay một reservation")
}

func TestAssignment_MoveMissingTarget(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/04/2026", "11/04/2026"))
	require.NoError(t, err)

	_, err = manager.Move(dto.MoveReservationRequest{ReservationID: reservation.ID})
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
}
