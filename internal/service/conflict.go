package service

import (
	"context"
	"time"
)

// ConflictChecker answers whether a table is already committed at an exact
// instant. It is a pure query and never mutates state; the store-level
// unique index remains the authoritative guard for the narrow window where
// two creations both observe "no conflict".
type ConflictChecker struct {
	reservations ReservationStore
}

// NewConflictChecker returns a ConflictChecker over the given store.
func NewConflictChecker(reservations ReservationStore) *ConflictChecker {
	return &ConflictChecker{reservations: reservations}
}

// IsTableBooked reports whether any live reservation holds the table at the
// given date-time. PENDING blocks the slot just like CONFIRMED: a pending
// hold provisionally occupies the table to avoid double-confirmation races.
// Instants are compared exactly; slot generation quantizes to fixed
// boundaries, so there is no tolerance window.
func (c *ConflictChecker) IsTableBooked(ctx context.Context, tableID uint64, at time.Time) (bool, error) {
	existing, err := c.reservations.FindByTableAndDateTime(ctx, tableID, at.UTC())
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.Live() {
			return true, nil
		}
	}
	return false, nil
}
