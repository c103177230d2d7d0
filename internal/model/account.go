package model

import "time"

// Account roles as stored in the accounts.role column.
const (
	RoleCustomer = "CUSTOMER"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

// Account origins. A reservation made from free-text guest input creates an
// ordinary account with OriginGuest so the reservation's account reference is
// uniform regardless of how the party arrived.
const (
	OriginRegistered = "REGISTERED"
	OriginGuest      = "GUEST"
)

// GuestPasswordSentinel is stored in password_hash for guest-originated
// accounts. It is not a valid bcrypt hash, so such accounts can never log in.
const GuestPasswordSentinel = "!guest"

// Account represents a row in the `accounts` table. Both registered users
// and walk-in guests live here; guests are distinguished by Origin and the
// sentinel password hash.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique contact email.
//  FirstName    – given name.
//  LastName     – family name (empty string, never null, for single-token names).
//  Phone        – optional phone number.
//  Role         – CUSTOMER, MANAGER or ADMIN.
//  Origin       – REGISTERED or GUEST.
//  PasswordHash – bcrypt hash, or GuestPasswordSentinel for guests.
//  IsActive     – whether the account may be used.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Account struct {
	ID           uint64    // accounts.id
	Email        string    // accounts.email
	FirstName    string    // accounts.first_name
	LastName     string    // accounts.last_name
	Phone        *string   // accounts.phone (nullable)
	Role         string    // accounts.role
	Origin       string    // accounts.origin
	PasswordHash string    // accounts.password_hash
	IsActive     bool      // accounts.is_active
	CreatedAt    time.Time // accounts.created_at
	UpdatedAt    time.Time // accounts.updated_at
}
