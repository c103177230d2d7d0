package queue

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Notifier adapts the broker publisher to the service layer's
// ConfirmationNotifier port. Publishing is fire-and-forget from the
// service's perspective.
type Notifier struct{}

// ReservationConfirmed builds the broker event from a reservation view and
// publishes it. Errors are already logged by the publisher and dropped here.
func (Notifier) ReservationConfirmed(ctx context.Context, v model.ReservationView) {
	ev := ReservationConfirmedEvent{
		ReservationID: v.ID,
		AccountID:     v.AccountID,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		TableNumber:   v.TableNumber,
		ReservedAt:    v.ReservedAt.UTC().Format(time.RFC3339),
		PartySize:     v.PartySize,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if v.DecidedBy != nil {
		ev.ApprovedBy = *v.DecidedBy
	}
	_ = PublishReservationConfirmed(ctx, ev)
}
