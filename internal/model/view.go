package model

import "time"

// ReservationView is the presentation projection of a reservation: the row
// itself plus denormalized customer and table display fields so callers can
// render a listing without extra lookups. Table fields are nil while no
// table has been assigned.
type ReservationView struct {
	ID              uint64    `json:"id"`
	Status          string    `json:"status"`
	ReservedAt      time.Time `json:"reserved_at"`
	PartySize       uint32    `json:"party_size"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	DecidedBy       *uint64   `json:"decided_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	AccountID     uint64  `json:"account_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	TableID       *uint64 `json:"table_id,omitempty"`
	TableNumber   *string `json:"table_number,omitempty"`
	TableLocation *string `json:"table_location,omitempty"`
}

// TableView is the response projection of a restaurant table.
type TableView struct {
	ID          uint64 `json:"id"`
	TableNumber string `json:"table_number"`
	Capacity    uint32 `json:"capacity"`
	Status      string `json:"status"`
	Location    string `json:"location"`
}

// ViewOfTable projects a catalog table into its response shape.
func ViewOfTable(t RestaurantTable) TableView {
	return TableView{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		Capacity:    t.Capacity,
		Status:      t.Status,
		Location:    t.Location,
	}
}

// TimeSlot is one bookable point in the service window. The full window is
// always returned so callers can render a complete schedule; unavailable
// slots carry an empty table list.
type TimeSlot struct {
	Time            string      `json:"time"`
	IsAvailable     bool        `json:"is_available"`
	AvailableTables []TableView `json:"available_tables"`
}
