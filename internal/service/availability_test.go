package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultServiceWindowSlots(t *testing.T) {
	w := DefaultServiceWindow(time.UTC)
	slots := w.SlotsOn(date(2026, time.November, 15))

	require.Len(t, slots, 10)
	assert.Equal(t, "17:00", slots[0].Format("15:04"))
	assert.Equal(t, "17:30", slots[1].Format("15:04"))
	assert.Equal(t, "21:30", slots[9].Format("15:04"))
	for _, s := range slots {
		assert.Equal(t, 15, s.Day())
	}
}

func TestServiceWindowRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	w := DefaultServiceWindow(loc)
	slots := w.SlotsOn(time.Date(2026, time.November, 15, 0, 0, 0, 0, loc))

	require.Len(t, slots, 10)
	// 17:00 local is 15:00 UTC in a +02:00 zone.
	assert.Equal(t, 15, slots[0].UTC().Hour())
}

func TestSlotsFullWindowAlwaysReturned(t *testing.T) {
	e := newEnv(
		table(1, "T1", 2, model.TableAvailable),
		table(2, "T2", 6, model.TableAvailable),
	)
	slots, err := e.engine.Slots(context.Background(), date(2026, time.November, 15), 4)
	require.NoError(t, err)

	require.Len(t, slots, 10)
	assert.Equal(t, "17:00", slots[0].Time)
	assert.Equal(t, "21:30", slots[9].Time)
	for _, s := range slots {
		// Only T2 seats a party of 4.
		assert.True(t, s.IsAvailable)
		require.Len(t, s.AvailableTables, 1)
		assert.Equal(t, "T2", s.AvailableTables[0].TableNumber)
	}
}

func TestSlotsExcludeNonBookableTables(t *testing.T) {
	e := newEnv(
		table(1, "T1", 4, model.TableMaintenance),
		table(2, "T2", 4, model.TableOccupied),
	)
	slots, err := e.engine.Slots(context.Background(), date(2026, time.November, 15), 2)
	require.NoError(t, err)

	require.Len(t, slots, 10)
	for _, s := range slots {
		assert.False(t, s.IsAvailable)
		assert.Empty(t, s.AvailableTables)
	}
}

func TestSlotsReflectLiveReservations(t *testing.T) {
	e := newEnv(table(1, "T1", 4, model.TableAvailable))
	ctx := context.Background()
	tableID := uint64(1)

	at := time.Date(2026, time.November, 15, 19, 0, 0, 0, time.UTC)
	_, err := e.svc.Create(ctx, CreateRequest{
		Guest:      &GuestDetails{FullName: "John Smith", Email: "john@example.com"},
		TableID:    &tableID,
		PartySize:  2,
		ReservedAt: at,
	})
	require.NoError(t, err)

	slots, err := e.engine.Slots(ctx, date(2026, time.November, 15), 2)
	require.NoError(t, err)
	require.Len(t, slots, 10)
	for _, s := range slots {
		if s.Time == "19:00" {
			// A PENDING reservation blocks the slot just like CONFIRMED.
			assert.False(t, s.IsAvailable)
		} else {
			assert.True(t, s.IsAvailable, "slot %s", s.Time)
		}
	}
}

func TestSlotsFreedByCancellation(t *testing.T) {
	e := newEnv(table(1, "T1", 4, model.TableAvailable))
	ctx := context.Background()
	tableID := uint64(1)

	at := time.Date(2026, time.November, 15, 19, 0, 0, 0, time.UTC)
	view, err := e.svc.Create(ctx, CreateRequest{
		Guest:      &GuestDetails{FullName: "John Smith", Email: "john@example.com"},
		TableID:    &tableID,
		PartySize:  2,
		ReservedAt: at,
	})
	require.NoError(t, err)

	booked, err := e.engine.AvailableTables(ctx, at, 2)
	require.NoError(t, err)
	assert.Empty(t, booked)

	_, err = e.svc.Cancel(ctx, view.ID)
	require.NoError(t, err)

	free, err := e.engine.AvailableTables(ctx, at, 2)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "T1", free[0].TableNumber)
}

func TestAvailabilityRejectsZeroPartySize(t *testing.T) {
	e := newEnv(table(1, "T1", 4, model.TableAvailable))
	ctx := context.Background()

	_, err := e.engine.Slots(ctx, date(2026, time.November, 15), 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.engine.AvailableTables(ctx, time.Now(), 0)
	assert.ErrorIs(t, err, ErrValidation)
}
