package service

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ServiceWindow describes the bookable evening: first slot, last slot
// (inclusive) and granularity, all in the restaurant's timezone. It is
// configuration rather than a constant baked into the engine, so deployments
// can adjust hours without touching scheduling logic.
type ServiceWindow struct {
	Open     time.Duration  // offset of the first slot from local midnight
	Close    time.Duration  // offset of the last slot (inclusive)
	SlotSize time.Duration  // granularity between slots
	Location *time.Location // restaurant timezone
}

// DefaultServiceWindow is dinner service 17:00–21:30 at 30-minute steps,
// which yields exactly 10 slots.
func DefaultServiceWindow(loc *time.Location) ServiceWindow {
	return ServiceWindow{
		Open:     17 * time.Hour,
		Close:    21*time.Hour + 30*time.Minute,
		SlotSize: 30 * time.Minute,
		Location: loc,
	}
}

// SlotsOn materializes the window's slot instants for a calendar date. The
// returned times are offset-qualified in the window's location, so slots
// stay aligned no matter what timezone the caller or the store uses.
func (w ServiceWindow) SlotsOn(date time.Time) []time.Time {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	var slots []time.Time
	for offset := w.Open; offset <= w.Close; offset += w.SlotSize {
		slots = append(slots, midnight.Add(offset))
	}
	return slots
}

// DayBounds returns the [midnight, next midnight) range of a calendar date
// in the window's location, for by-date reservation listings.
func (w ServiceWindow) DayBounds(date time.Time) (time.Time, time.Time) {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return day, day.Add(24 * time.Hour)
}

// AvailabilityEngine generates the bookable schedule for a date and party
// size. It scans the table catalog once per query and reuses the conflict
// checker per table and slot.
type AvailabilityEngine struct {
	tables    TableStore
	conflicts *ConflictChecker
	window    ServiceWindow
}

// NewAvailabilityEngine returns an AvailabilityEngine over the given catalog
// and conflict checker.
func NewAvailabilityEngine(tables TableStore, conflicts *ConflictChecker, window ServiceWindow) *AvailabilityEngine {
	return &AvailabilityEngine{tables: tables, conflicts: conflicts, window: window}
}

// Slots returns one descriptor per slot across the whole service window,
// in order, regardless of availability, so callers can render a complete
// schedule. A slot is available when at least one table seats the party,
// is operationally AVAILABLE and has no live reservation at that instant.
func (e *AvailabilityEngine) Slots(ctx context.Context, date time.Time, partySize uint32) ([]model.TimeSlot, error) {
	if partySize < 1 {
		return nil, validationf("party size must be at least 1")
	}
	tables, err := e.tables.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]model.TimeSlot, 0, 10)
	for _, at := range e.window.SlotsOn(date) {
		free, err := e.tablesFor(ctx, tables, at, partySize)
		if err != nil {
			return nil, err
		}
		slots = append(slots, model.TimeSlot{
			Time:            at.Format("15:04"),
			IsAvailable:     len(free) > 0,
			AvailableTables: free,
		})
	}
	return slots, nil
}

// AvailableTables is the single-instant companion query: the filtered table
// list for one explicit date-time, under the same rules as Slots.
func (e *AvailabilityEngine) AvailableTables(ctx context.Context, at time.Time, partySize uint32) ([]model.TableView, error) {
	if partySize < 1 {
		return nil, validationf("party size must be at least 1")
	}
	tables, err := e.tables.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return e.tablesFor(ctx, tables, at, partySize)
}

// tablesFor filters the catalog for one instant: capacity fits the party,
// operational status is AVAILABLE (OCCUPIED and MAINTENANCE tables are never
// offered, independent of bookings), and no live reservation conflicts.
func (e *AvailabilityEngine) tablesFor(ctx context.Context, tables []model.RestaurantTable, at time.Time, partySize uint32) ([]model.TableView, error) {
	free := make([]model.TableView, 0)
	for _, t := range tables {
		if t.Capacity < partySize || !t.Bookable() {
			continue
		}
		booked, err := e.conflicts.IsTableBooked(ctx, t.ID, at)
		if err != nil {
			return nil, err
		}
		if !booked {
			free = append(free, model.ViewOfTable(t))
		}
	}
	return free, nil
}
