package model

import "time"

// Reservation statuses. PENDING is the only state approval or denial may
// start from; CANCELLED and DENIED are terminal. A reservation in any status
// other than CANCELLED or DENIED is "live" and keeps its table/time slot
// claimed.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusDenied    = "DENIED"
	StatusSeated    = "SEATED"
	StatusCompleted = "COMPLETED"
	StatusNoShow    = "NO_SHOW"
)

// Reservation records a party's claim on a table at a single combined
// date-and-time instant. TableID stays nil until a table is requested by the
// customer or assigned by staff.
//
// Fields:
//  ID              – primary key identifier.
//  AccountID       – account the reservation is booked under.
//  TableID         – assigned table (nullable until assignment).
//  ReservedAt      – combined reservation date and time, stored in UTC.
//  PartySize       – number of guests (>= 1).
//  Status          – current state, see status constants above.
//  SpecialRequests – free-text requests from the party.
//  RejectionReason – reason recorded on DENIED (and optionally CANCELLED).
//  DecidedBy       – staff account that approved or denied, nullable.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    // reservations.id
	AccountID       uint64    // reservations.account_id
	TableID         *uint64   // reservations.table_id (nullable)
	ReservedAt      time.Time // reservations.reserved_at
	PartySize       uint32    // reservations.party_size
	Status          string    // reservations.status
	SpecialRequests *string   // reservations.special_requests (nullable)
	RejectionReason *string   // reservations.rejection_reason (nullable)
	DecidedBy       *uint64   // reservations.decided_by (nullable)
	CreatedAt       time.Time // reservations.created_at
	UpdatedAt       time.Time // reservations.updated_at
}

// Live reports whether the reservation still occupies its table/time slot.
func (r *Reservation) Live() bool {
	return LiveStatus(r.Status)
}

// LiveStatus reports whether a status counts against a table's availability.
// PENDING blocks a slot just like CONFIRMED so that two pending requests can
// never both be confirmed for the same table and instant.
func LiveStatus(status string) bool {
	return status != StatusCancelled && status != StatusDenied
}

// transitions is the closed set of legal status moves. Everything absent is
// forbidden; terminal states have no outgoing edges.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusDenied},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted},
}

// CanTransition reports whether moving a reservation from one status to
// another is legal. Transitions are validated here as pure functions; the
// store enforces the same precondition atomically with a conditional update.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
