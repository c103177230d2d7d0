package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// ConfirmationNotifier receives lifecycle notifications after a reservation
// is confirmed. Publishing is best-effort: failures are the notifier's
// problem and never roll back the transition.
type ConfirmationNotifier interface {
	ReservationConfirmed(ctx context.Context, v model.ReservationView)
}

// CreateRequest carries everything needed to make a reservation. Exactly one
// of AccountID (non-zero) or Guest identifies the party. TableID is optional;
// without it the reservation is persisted unassigned for staff to place
// later.
type CreateRequest struct {
	AccountID       uint64
	Guest           *GuestDetails
	TableID         *uint64
	PartySize       uint32
	ReservedAt      time.Time
	SpecialRequests string
}

// ReservationService owns the reservation state machine: creation, customer
// cancellation, manager approval/denial and the seated/completed/no-show
// tail. Every transition re-checks the current status inside the store write
// itself, so when two staff decisions race exactly one wins and the loser
// fails with a conflict.
type ReservationService struct {
	resolver     *PartyResolver
	conflicts    *ConflictChecker
	accounts     AccountStore
	tables       TableStore
	reservations ReservationStore
	window       ServiceWindow
	notifier     ConfirmationNotifier
}

// NewReservationService wires the lifecycle manager. notifier may be nil.
func NewReservationService(
	resolver *PartyResolver,
	conflicts *ConflictChecker,
	accounts AccountStore,
	tables TableStore,
	reservations ReservationStore,
	window ServiceWindow,
	notifier ConfirmationNotifier,
) *ReservationService {
	return &ReservationService{
		resolver:     resolver,
		conflicts:    conflicts,
		accounts:     accounts,
		tables:       tables,
		reservations: reservations,
		window:       window,
		notifier:     notifier,
	}
}

// Create resolves the party, validates the requested table (capacity and
// conflicts) when one was requested, and persists a PENDING reservation.
// Side effects: one reservation row, and at most one account row via the
// party resolver.
func (s *ReservationService) Create(ctx context.Context, req CreateRequest) (*model.ReservationView, error) {
	if req.PartySize < 1 {
		return nil, validationf("party size must be at least 1")
	}
	if req.ReservedAt.IsZero() {
		return nil, validationf("reservation date-time is required")
	}

	account, err := s.resolver.Resolve(ctx, req.AccountID, req.Guest)
	if err != nil {
		return nil, err
	}

	if req.TableID != nil {
		table, err := s.tables.FindByID(ctx, *req.TableID)
		if err != nil {
			if errors.Is(err, repository.ErrTableNotFound) {
				return nil, notFoundf("table %d", *req.TableID)
			}
			return nil, err
		}
		if table.Capacity < req.PartySize {
			return nil, validationf("party size %d exceeds table capacity %d", req.PartySize, table.Capacity)
		}
		booked, err := s.conflicts.IsTableBooked(ctx, table.ID, req.ReservedAt)
		if err != nil {
			return nil, err
		}
		if booked {
			return nil, conflictf("table %s already reserved for this time", table.TableNumber)
		}
	}

	res := &model.Reservation{
		AccountID:  account.ID,
		TableID:    req.TableID,
		ReservedAt: req.ReservedAt.UTC(),
		PartySize:  req.PartySize,
		Status:     model.StatusPending,
	}
	if req.SpecialRequests != "" {
		requests := req.SpecialRequests
		res.SpecialRequests = &requests
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// A concurrent creation slipped past the pre-check; the unique
			// index rejected this one. Surface as "slot no longer available".
			return nil, conflictf("slot no longer available")
		}
		return nil, err
	}
	return s.reservations.ViewByID(ctx, res.ID)
}

// Approve confirms a PENDING reservation on behalf of a staff account. The
// approver is recorded on the reservation. If another approval or denial
// completed first, this call observes the post-transition state and fails
// with a conflict rather than silently succeeding.
func (s *ReservationService) Approve(ctx context.Context, id, approverID uint64) (*model.ReservationView, error) {
	if _, err := s.loadPending(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, approverID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, notFoundf("approver account %d", approverID)
		}
		return nil, err
	}
	won, err := s.reservations.Transition(ctx, id, model.StatusPending, model.StatusConfirmed, &approverID, nil)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, conflictf("reservation %d is not PENDING", id)
	}
	view, err := s.reservations.ViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ReservationConfirmed(ctx, *view)
	}
	return view, nil
}

// Deny rejects a PENDING reservation with an optional reason. A staff
// negative decision maps to DENIED; customer withdrawal is Cancel.
func (s *ReservationService) Deny(ctx context.Context, id uint64, reason string, deciderID uint64) (*model.ReservationView, error) {
	if _, err := s.loadPending(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, deciderID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, notFoundf("decider account %d", deciderID)
		}
		return nil, err
	}
	var why *string
	if reason != "" {
		why = &reason
	}
	won, err := s.reservations.Transition(ctx, id, model.StatusPending, model.StatusDenied, &deciderID, why)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, conflictf("reservation %d is not PENDING", id)
	}
	return s.reservations.ViewByID(ctx, id)
}

// Cancel is the customer-initiated withdrawal, allowed only while the
// reservation is PENDING or CONFIRMED.
func (s *ReservationService) Cancel(ctx context.Context, id uint64) (*model.ReservationView, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	won, err := s.reservations.CancelFromActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !won {
		if res.Status == model.StatusCompleted {
			return nil, conflictf("cannot cancel a completed reservation")
		}
		return nil, conflictf("reservation %d cannot be cancelled from %s", id, res.Status)
	}
	return s.reservations.ViewByID(ctx, id)
}

// Seat marks a confirmed party as arrived and seated.
func (s *ReservationService) Seat(ctx context.Context, id uint64) (*model.ReservationView, error) {
	return s.advance(ctx, id, model.StatusConfirmed, model.StatusSeated)
}

// Complete closes out a seated visit.
func (s *ReservationService) Complete(ctx context.Context, id uint64) (*model.ReservationView, error) {
	return s.advance(ctx, id, model.StatusSeated, model.StatusCompleted)
}

// MarkNoShow records that a confirmed party never arrived.
func (s *ReservationService) MarkNoShow(ctx context.Context, id uint64) (*model.ReservationView, error) {
	return s.advance(ctx, id, model.StatusConfirmed, model.StatusNoShow)
}

func (s *ReservationService) advance(ctx context.Context, id uint64, from, to string) (*model.ReservationView, error) {
	if !model.CanTransition(from, to) {
		return nil, conflictf("transition %s -> %s is not allowed", from, to)
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	won, err := s.reservations.Transition(ctx, id, from, to, nil, nil)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, conflictf("reservation %d is not %s", id, from)
	}
	return s.reservations.ViewByID(ctx, id)
}

// Get returns a single reservation projection.
func (s *ReservationService) Get(ctx context.Context, id uint64) (*model.ReservationView, error) {
	view, err := s.reservations.ViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, notFoundf("reservation %d", id)
		}
		return nil, err
	}
	return view, nil
}

// List returns every reservation, newest first.
func (s *ReservationService) List(ctx context.Context) ([]model.ReservationView, error) {
	return s.reservations.ListAll(ctx)
}

// ListByStatus returns reservations in one status.
func (s *ReservationService) ListByStatus(ctx context.Context, status string) ([]model.ReservationView, error) {
	switch status {
	case model.StatusPending, model.StatusConfirmed, model.StatusCancelled,
		model.StatusDenied, model.StatusSeated, model.StatusCompleted, model.StatusNoShow:
		return s.reservations.ListByStatus(ctx, status)
	}
	return nil, validationf("unknown status %q", status)
}

// ListByDate returns reservations on a calendar date in the restaurant's
// timezone, ordered by reservation time.
func (s *ReservationService) ListByDate(ctx context.Context, date time.Time) ([]model.ReservationView, error) {
	from, to := s.window.DayBounds(date)
	return s.reservations.ListBetween(ctx, from, to)
}

// ListByAccount returns one customer's reservations, newest first.
func (s *ReservationService) ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error) {
	return s.reservations.ListByAccount(ctx, accountID)
}

// Delete physically removes a reservation. Administrative override only;
// normal disposal is a terminal status transition.
func (s *ReservationService) Delete(ctx context.Context, id uint64) error {
	exists, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundf("reservation %d", id)
	}
	return s.reservations.DeleteByID(ctx, id)
}

func (s *ReservationService) load(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, notFoundf("reservation %d", id)
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) loadPending(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusPending {
		return nil, conflictf("reservation %d is not PENDING", id)
	}
	return res, nil
}
