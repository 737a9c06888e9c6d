package services

import (
	"context"
	"testing"

	"stayhub/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_SummaryRowsAndSpans(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)
	calendar := NewCalendarService(db, manager, nil)

	_, err := manager.Registry().Generate(roomType.ID, "1", 1, 2, 1)
	require.NoError(t, err)

	reservation, err := manager.Create(createRequest(roomType.ID, "11/01/2026", "13/01/2026"))
	require.NoError(t, err)
	require.NotNil(t, reservation.IndividualRoomID)

	resp, err := calendar.GetCalendar(context.Background(), roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "14/01/2026"))
	require.NoError(t, err)

	require.Len(t, resp.Dates, 5)
	assert.Equal(t, "10/01/2026", resp.Dates[0])

	require.Len(t, resp.Summary, 5)
	assert.Equal(t, 2, resp.Summary[0].AvailableQuantity)
	assert.Equal(t, 1, resp.Summary[1].AvailableQuantity)
	assert.Equal(t, 1, resp.Summary[2].AvailableQuantity)
	assert.Equal(t, 2, resp.Summary[3].AvailableQuantity)

	require.Len(t, resp.Rows, 2)
	var occupied, empty int
	for _, row := range resp.Rows {
		require.Len(t, row.Cells, 5)
		if len(row.Spans) == 1 {
			occupied++
			assert.Equal(t, reservation.ID, row.Spans[0].ReservationID)
			assert.Equal(t, 1, row.Spans[0].StartIndex)
			assert.Equal(t, 2, row.Spans[0].EndIndex)
			assert.Equal(t, 0, row.Cells[1].AvailableQuantity)
			assert.Equal(t, 1, row.Cells[3].AvailableQuantity)
		} else {
			empty++
			assert.Empty(t, row.Spans)
		}
	}
	assert.Equal(t, 1, occupied)
	assert.Equal(t, 1, empty)
}

func TestCalendar_UnassignedReservationGetsOwnRow(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 2, 100)
	manager := newTestManager(db)
	calendar := NewCalendarService(db, manager, nil)

	// Không có phòng vật lý nào, reservation ở mức room type
	reservation, err := manager.Create(createRequest(roomType.ID, "11/02/2026", "12/02/2026"))
	require.NoError(t, err)
	assert.True(t, reservation.NeedsAssignment)

	resp, err := calendar.GetCalendar(context.Background(), roomType.ID, mustDate(t, "10/02/2026"), mustDate(t, "13/02/2026"))
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Zero(t, resp.Rows[0].RoomID)
	require.Len(t, resp.Rows[0].Spans, 1)
	assert.Equal(t, reservation.ID, resp.Rows[0].Spans[0].ReservationID)
}

func TestCalendar_BlockedDayInSummary(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 3, 100)
	manager := newTestManager(db)
	calendar := NewCalendarService(db, manager, nil)

	require.NoError(t, manager.BlockDates(roomType.ID, mustDate(t, "11/03/2026"), mustDate(t, "11/03/2026"), "bảo trì", constants.AvailabilityStatusBlocked))

	resp, err := calendar.GetCalendar(context.Background(), roomType.ID, mustDate(t, "10/03/2026"), mustDate(t, "12/03/2026"))
	require.NoError(t, err)
	require.Len(t, resp.Summary, 3)
	assert.Equal(t, constants.AvailabilityStatusBlocked, resp.Summary[1].Status)
	assert.Equal(t, 0, resp.Summary[1].AvailableQuantity)
}

func TestCalendar_CacheKeyChangesWithVersion(t *testing.T) {
	from := mustDate(t, "10/03/2026")
	to := mustDate(t, "12/03/2026")

	// Version nằm trong key nên bump version là key cũ thành rác
	v0 := calendarCacheKey(7, 0, from, to)
	v1 := calendarCacheKey(7, 1, from, to)
	assert.NotEqual(t, v0, v1)
	assert.Equal(t, v0, calendarCacheKey(7, 0, from, to))
}

func TestCalendar_VersionWithoutRedisIsZero(t *testing.T) {
	assert.Equal(t, int64(0), calendarVersion(context.Background(), nil, 7))
	// Bump không có Redis là no-op, không panic
	BumpCalendarVersion(context.Background(), nil, 7)
}

func TestManager_RefreshCalendarsCountsRoomTypes(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	createRoomType(t, db, property.ID, 2, 100)
	createRoomType(t, db, property.ID, 3, 150)
	manager := newTestManager(db)

	refreshed, err := manager.RefreshCalendars()
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed)
}

func TestCalendar_InvalidWindow(t *testing.T) {
	db := setupTestDB(t)
	property := createProperty(t, db, false)
	roomType := createRoomType(t, db, property.ID, 1, 100)
	manager := newTestManager(db)
	calendar := NewCalendarService(db, manager, nil)

	_, err := calendar.GetCalendar(context.Background(), roomType.ID, mustDate(t, "12/03/2026"), mustDate(t, "10/03/2026"))
	require.Error(t, err)
}
