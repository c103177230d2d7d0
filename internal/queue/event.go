// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair for reservation lifecycle events.
package queue

// ReservationConfirmedEvent is published when a manager approves a
// reservation. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	AccountID     uint64  `json:"account_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	TableNumber   *string `json:"table_number,omitempty"`
	ReservedAt    string  `json:"reserved_at"`
	PartySize     uint32  `json:"party_size"`
	ApprovedBy    uint64  `json:"approved_by"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
