// Package repository implements data access over MySQL. Sentinel errors
// defined here let the service layer distinguish failure scenarios without
// inspecting driver-specific errors: not-found sentinels replace raw
// sql.ErrNoRows at the repository boundary, and ErrSlotTaken surfaces the
// unique-index rejection that guards a table/time slot.
package repository

import "errors"

// ErrAccountNotFound is returned when an account lookup yields no rows.
var ErrAccountNotFound = errors.New("account not found")

// ErrTableNotFound is returned when a table lookup yields no rows.
var ErrTableNotFound = errors.New("table not found")

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEmailExists is returned when an account insert collides with an
// existing email. The resolver checks by email first, so hitting this means
// two requests raced on the same address; callers should re-read.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotTaken is returned when a reservation insert loses the race for a
// (table, date-time) slot: the generated unique index on live reservations
// rejects the second writer even when both passed the conflict pre-check.
var ErrSlotTaken = errors.New("table already reserved for this time")
