package service

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AccountStore is the slice of the account collaborator the core consumes.
// Missing rows are reported as repository.ErrAccountNotFound.
type AccountStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(ctx context.Context, a *model.Account) error
}

// TableStore is the read-only view of the physical table catalog.
type TableStore interface {
	FindByID(ctx context.Context, id uint64) (*model.RestaurantTable, error)
	FindAll(ctx context.Context) ([]model.RestaurantTable, error)
}

// ReservationStore persists reservations. Transition and CancelFromActive
// re-check the current status inside the same write that sets the new one
// and report whether this caller won; Create rejects the loser of a
// same-slot race with repository.ErrSlotTaken.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	FindByID(ctx context.Context, id uint64) (*model.Reservation, error)
	FindByTableAndDateTime(ctx context.Context, tableID uint64, at time.Time) ([]model.Reservation, error)
	Transition(ctx context.Context, id uint64, from, to string, decidedBy *uint64, reason *string) (bool, error)
	CancelFromActive(ctx context.Context, id uint64) (bool, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error

	ViewByID(ctx context.Context, id uint64) (*model.ReservationView, error)
	ListAll(ctx context.Context) ([]model.ReservationView, error)
	ListByStatus(ctx context.Context, status string) ([]model.ReservationView, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.ReservationView, error)
	ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error)
}
