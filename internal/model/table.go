package model

import "time"

// Operational table statuses. These reflect floor management, not bookings:
// the reservation core only reads them and never flips a table's status as a
// side effect of booking.
const (
	TableAvailable   = "AVAILABLE"
	TableOccupied    = "OCCUPIED"
	TableReserved    = "RESERVED"
	TableMaintenance = "MAINTENANCE"
)

// RestaurantTable describes a physical table in the dining room. Tables are
// reference data owned by the table catalog; the reservation core consumes
// capacity and status read-only.
//
// Fields:
//  ID          – primary key identifier.
//  TableNumber – human-readable table number shown to guests and staff.
//  Capacity    – seating capacity (>= 1).
//  Status      – AVAILABLE, OCCUPIED, RESERVED or MAINTENANCE.
//  Location    – free-text location description (e.g. "patio", "window").
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type RestaurantTable struct {
	ID          uint64    // restaurant_tables.id
	TableNumber string    // restaurant_tables.table_number
	Capacity    uint32    // restaurant_tables.capacity
	Status      string    // restaurant_tables.status
	Location    string    // restaurant_tables.location
	CreatedAt   time.Time // restaurant_tables.created_at
	UpdatedAt   time.Time // restaurant_tables.updated_at
}

// Bookable reports whether the table may be offered at all, independent of
// reservation conflicts. OCCUPIED and MAINTENANCE tables are never offered.
func (t *RestaurantTable) Bookable() bool {
	return t.Status == TableAvailable
}
