package services

import (
	"testing"
	"time"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(roomTypeID uint, checkIn, checkOut string) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RoomTypeID:   roomTypeID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       2,
	}
}

func TestManager_CreateReservesWholeStay(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "13/01/2026"))
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusTentative, reservation.Status)
	assert.Equal(t, 300, reservation.TotalPrice)
	assert.NotEmpty(t, reservation.Nights)

	require.NoError(t, manager.Ledger().VerifyInvariant(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "12/01/2026")))
}

func TestManager_TwoBookingsFitThirdRejected(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	_, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "12/01/2026"))
	require.NoError(t, err)
	_, err = manager.Create(createRequest(roomType.ID, "11/01/2026", "13/01/2026"))
	require.NoError(t, err)

	// Đêm 11 đã hết cả hai đơn vị
	_, err = manager.Create(createRequest(roomType.ID, "11/01/2026", "12/01/2026"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))

	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "11/01/2026"))
	require.NoError(t, err)
	assert.Equal(t, 0, rec.AvailableQuantity)
	require.NoError(t, manager.Ledger().VerifyInvariant(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "12/01/2026")))
}

func TestManager_CreateConfirmedDirectly(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	req := createRequest(roomType.ID, "05/02/2026", "07/02/2026")
	req.Confirmed = true
	reservation, err := manager.Create(req)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusConfirmed, reservation.Status)
}

func TestManager_CreateAutoAssignsWhenRoomExists(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	rooms, err := manager.Registry().Generate(roomType.ID, "1", 1, 1, 1)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/02/2026", "11/02/2026"))
	require.NoError(t, err)
	require.NotNil(t, reservation.IndividualRoomID)
	assert.Equal(t, rooms[0].ID, *reservation.IndividualRoomID)
	assert.False(t, reservation.NeedsAssignment)
}

func TestManager_CreateWithoutRoomsFlagsNeedsAssignment(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/02/2026", "11/02/2026"))
	require.NoError(t, err)
	assert.Nil(t, reservation.IndividualRoomID)
	assert.True(t, reservation.NeedsAssignment)
}

func TestManager_CreateRejectsOverOccupancy(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	req := createRequest(roomType.ID, "10/02/2026", "11/02/2026")
	req.Adults = 3
	req.Children = 2
	_, err := manager.Create(req)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestManager_CreateRejectsSyncedProperty(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, true)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	_, err := manager.Create(createRequest(roomType.ID, "10/02/2026", "11/02/2026"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeReadOnlyEntity))
}

func TestManager_CreateEnforcesMinStay(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	rule := models.PricingRule{
		RoomTypeID: roomType.ID,
		FromDate:   mustDate(t, "01/03/2026"),
		ToDate:     mustDate(t, "31/03/2026"),
		Price:      150,
		MinStay:    3,
		Active:     true,
	}
	require.NoError(t, db.Create(&rule).Error)

	_, err := manager.Create(createRequest(roomType.ID, "10/03/2026", "12/03/2026"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeMinStay))

	_, err = manager.Create(createRequest(roomType.ID, "10/03/2026", "13/03/2026"))
	require.NoError(t, err)
}

func TestManager_LifecycleTransitions(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/03/2026", "12/03/2026"))
	require.NoError(t, err)

	// tentative không cho check-in thẳng
	_, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCheckedIn)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	reservation, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusConfirmed)
	require.NoError(t, err)
	reservation, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCheckedIn)
	require.NoError(t, err)

	// Đang lưu trú thì không hủy được
	_, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCancelled)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))

	reservation, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusCheckedOut, reservation.Status)

	// Check-out không trả chỗ về ledger, kỳ lưu trú đã tiêu thụ
	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/03/2026"))
	require.NoError(t, err)
	assert.Equal(t, 0, rec.AvailableQuantity)
}

func TestManager_CancelReleasesExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/03/2026", "12/03/2026"))
	require.NoError(t, err)

	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/03/2026"))
	require.NoError(t, err)
	assert.Equal(t, 0, rec.AvailableQuantity)

	_, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCancelled)
	require.NoError(t, err)

	rec, err = manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/03/2026"))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.AvailableQuantity)

	// Hủy lần hai là no-op, không cộng chỗ lần nữa
	_, err = manager.ChangeStatus(reservation.ID, constants.ReservationStatusCancelled)
	require.NoError(t, err)
	rec, err = manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/03/2026"))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.AvailableQuantity)
}

func TestManager_MoveFailureLeavesOriginalUntouched(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomTypeA := createRoomType(t, db, property.ID, 1, 100)
	roomTypeB := createRoomType(t, db, property.ID, 1, 200)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomTypeA.ID, "10/04/2026", "13/04/2026"))
	require.NoError(t, err)

	// Chiếm đêm giữa ở loại phòng đích
	_, err = manager.Create(createRequest(roomTypeB.ID, "11/04/2026", "12/04/2026"))
	require.NoError(t, err)

	_, err = manager.Move(dto.MoveReservationRequest{ReservationID: reservation.ID, RoomTypeID: &roomTypeB.ID})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))

	// Reservation gốc giữ nguyên room type, ledger hai bên không đổi
	unchanged, err := manager.Get(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, roomTypeA.ID, unchanged.RoomTypeID)

	recA, err := manager.Ledger().GetAvailability(roomTypeA.ID, mustDate(t, "10/04/2026"))
	require.NoError(t, err)
	assert.Equal(t, 0, recA.AvailableQuantity)
	recB, err := manager.Ledger().GetAvailability(roomTypeB.ID, mustDate(t, "10/04/2026"))
	require.NoError(t, err)
	assert.Equal(t, 1, recB.AvailableQuantity)
}

func TestManager_MoveToRoomTypeRepricesAndSwapsLedger(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomTypeA := createRoomType(t, db, property.ID, 1, 100)
	roomTypeB := createRoomType(t, db, property.ID, 1, 200)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomTypeA.ID, "10/04/2026", "12/04/2026"))
	require.NoError(t, err)
	assert.Equal(t, 200, reservation.TotalPrice)

	moved, err := manager.Move(dto.MoveReservationRequest{ReservationID: reservation.ID, RoomTypeID: &roomTypeB.ID})
	require.NoError(t, err)
	assert.Equal(t, roomTypeB.ID, moved.RoomTypeID)
	assert.Equal(t, 400, moved.TotalPrice)

	recA, err := manager.Ledger().GetAvailability(roomTypeA.ID, mustDate(t, "10/04/2026"))
	require.NoError(t, err)
	assert.Equal(t, 1, recA.AvailableQuantity)
	recB, err := manager.Ledger().GetAvailability(roomTypeB.ID, mustDate(t, "10/04/2026"))
	require.NoError(t, err)
	assert.Equal(t, 0, recB.AvailableQuantity)
}

func TestManager_MoveToRoomSameType(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	rooms, err := manager.Registry().Generate(roomType.ID, "1", 1, 2, 1)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/05/2026", "12/05/2026"))
	require.NoError(t, err)
	require.NotNil(t, reservation.IndividualRoomID)

	target := rooms[1].ID
	if *reservation.IndividualRoomID == target {
		target = rooms[0].ID
	}

	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/05/2026"))
	require.NoError(t, err)
	before := rec.AvailableQuantity

	moved, err := manager.Move(dto.MoveReservationRequest{ReservationID: reservation.ID, IndividualRoomID: &target})
	require.NoError(t, err)
	assert.Equal(t, target, *moved.IndividualRoomID)

	// Cùng room type: ledger không thay đổi
	rec, err = manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/05/2026"))
	require.NoError(t, err)
	assert.Equal(t, before, rec.AvailableQuantity)
}

func TestManager_GuestDirectoryIdempotent(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 3, 100)
	manager := newTestManager(db)

	req := createRequest(roomType.ID, "10/06/2026", "11/06/2026")
	req.GuestEmail = "an.nguyen@example.com"
	req.GuestName = "Nguyễn Văn An"
	first, err := manager.Create(req)
	require.NoError(t, err)
	require.NotEmpty(t, first.GuestRef)

	req2 := createRequest(roomType.ID, "12/06/2026", "13/06/2026")
	req2.GuestEmail = "an.nguyen@example.com"
	second, err := manager.Create(req2)
	require.NoError(t, err)
	assert.Equal(t, first.GuestRef, second.GuestRef)

	var count int64
	require.NoError(t, db.Model(&models.Guest{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestManager_MarkNoShows(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	stale, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "12/01/2026"))
	require.NoError(t, err)
	upcoming, err := manager.Create(createRequest(roomType.ID, "10/01/2027", "12/01/2027"))
	require.NoError(t, err)

	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	marked, err := manager.MarkNoShows(now)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	staleAfter, err := manager.Get(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusNoShow, staleAfter.Status)
	upcomingAfter, err := manager.Get(upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusTentative, upcomingAfter.Status)

	// No-show trả lại chỗ
	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/01/2026"))
	require.NoError(t, err)
	assert.Equal(t, 2, rec.AvailableQuantity)
}

func TestManager_SetPaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	reservation, err := manager.Create(createRequest(roomType.ID, "10/07/2026", "11/07/2026"))
	require.NoError(t, err)

	updated, err := manager.SetPaymentStatus(reservation.ID, constants.PaymentStatusSuccess)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentStatusSuccess, updated.PaymentStatus)
}

func TestManager_BlockedDatesRejectBooking(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	require.NoError(t, manager.BlockDates(roomType.ID, mustDate(t, "10/08/2026"), mustDate(t, "12/08/2026"), "khử trùng", constants.AvailabilityStatusBlocked))

	_, err := manager.Create(createRequest(roomType.ID, "11/08/2026", "13/08/2026"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))

	require.NoError(t, manager.UnblockDates(roomType.ID, mustDate(t, "10/08/2026"), mustDate(t, "12/08/2026")))
	_, err = manager.Create(createRequest(roomType.ID, "11/08/2026", "13/08/2026"))
	require.NoError(t, err)
}

func TestManager_MaintenanceDatesRejectBooking(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)

	require.NoError(t, manager.BlockDates(roomType.ID, mustDate(t, "10/08/2026"), mustDate(t, "11/08/2026"), "thay thảm", constants.AvailabilityStatusMaintenance))

	_, err := manager.Create(createRequest(roomType.ID, "10/08/2026", "11/08/2026"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))

	rec, err := manager.Ledger().GetAvailability(roomType.ID, mustDate(t, "10/08/2026"))
	require.NoError(t, err)
	assert.Equal(t, constants.AvailabilityStatusMaintenance, rec.Status)
}

func TestManager_ChangeQuantityReconcilesLedger(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 5, 100)
	manager := newTestManager(db)

	for i := 0; i < 3; i++ {
		_, err := manager.Create(createRequest(roomType.ID, "10/01/2026", "11/01/2026"))
		require.NoError(t, err)
	}

	// Giảm xuống dưới 3 reservation đang giữ phải bị từ chối
	err := manager.ChangeQuantity(roomType.ID, 2)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	require.NoError(t, manager.Ledger().VerifyInvariant(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "10/01/2026")))

	// Giảm hợp lệ: ledger được dồn chênh lệch, không oversell được
	require.NoError(t, manager.ChangeQuantity(roomType.ID, 3))
	require.NoError(t, manager.Ledger().VerifyInvariant(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "10/01/2026")))

	_, err = manager.Create(createRequest(roomType.ID, "10/01/2026", "11/01/2026"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInsufficientInventory))
}

func TestManager_ChangeQuantityRejectsSyncedProperty(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, true)
	roomType := createRoomType(t, db, property.ID, 5, 100)
	manager := newTestManager(db)

	err := manager.ChangeQuantity(roomType.ID, 3)
	assert.True(t, errors.HasCode(err, errors.ErrCodeReadOnlyEntity))
}
