package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// In-memory store fakes backing the service tests. They reproduce the
// repository contracts the core depends on: sentinel errors for missing
// rows, ErrEmailExists / ErrSlotTaken on uniqueness violations, and
// conditional transitions that re-check the current status under a lock.

type memAccounts struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{rows: map[uint64]*model.Account{}}
}

// add seeds an account directly, bypassing Create's uniqueness check.
func (m *memAccounts) add(a model.Account) *model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	cp := a
	m.rows[a.ID] = &cp
	return &a
}

func (m *memAccounts) FindByID(_ context.Context, id uint64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range m.rows {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == a.Email {
			return repository.ErrEmailExists
		}
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

type memTables struct {
	rows []model.RestaurantTable
}

func (m *memTables) FindByID(_ context.Context, id uint64) (*model.RestaurantTable, error) {
	for _, t := range m.rows {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrTableNotFound
}

func (m *memTables) FindAll(_ context.Context) ([]model.RestaurantTable, error) {
	return append([]model.RestaurantTable(nil), m.rows...), nil
}

type memReservations struct {
	mu       sync.Mutex
	nextID   uint64
	rows     map[uint64]*model.Reservation
	accounts *memAccounts
	tables   *memTables
}

func newMemReservations(accounts *memAccounts, tables *memTables) *memReservations {
	return &memReservations{
		rows:     map[uint64]*model.Reservation{},
		accounts: accounts,
		tables:   tables,
	}
}

func (m *memReservations) Create(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.TableID != nil && model.LiveStatus(r.Status) {
		for _, row := range m.rows {
			if row.TableID != nil && *row.TableID == *r.TableID &&
				row.ReservedAt.Equal(r.ReservedAt) && row.Live() {
				return repository.ErrSlotTaken
			}
		}
	}
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReservations) FindByID(_ context.Context, id uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReservations) FindByTableAndDateTime(_ context.Context, tableID uint64, at time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Reservation
	for _, r := range m.rows {
		if r.TableID != nil && *r.TableID == tableID && r.ReservedAt.Equal(at) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReservations) Transition(_ context.Context, id uint64, from, to string, decidedBy *uint64, reason *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	if decidedBy != nil {
		r.DecidedBy = decidedBy
	}
	if reason != nil {
		r.RejectionReason = reason
	}
	r.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memReservations) CancelFromActive(_ context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || (r.Status != model.StatusPending && r.Status != model.StatusConfirmed) {
		return false, nil
	}
	r.Status = model.StatusCancelled
	r.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memReservations) ExistsByID(_ context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memReservations) DeleteByID(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memReservations) ViewByID(ctx context.Context, id uint64) (*model.ReservationView, error) {
	m.mu.Lock()
	r, ok := m.rows[id]
	if !ok {
		m.mu.Unlock()
		return nil, repository.ErrReservationNotFound
	}
	cp := *r
	m.mu.Unlock()
	v := m.view(ctx, &cp)
	return &v, nil
}

func (m *memReservations) view(ctx context.Context, r *model.Reservation) model.ReservationView {
	v := model.ReservationView{
		ID:              r.ID,
		Status:          r.Status,
		ReservedAt:      r.ReservedAt,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
		RejectionReason: r.RejectionReason,
		DecidedBy:       r.DecidedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		AccountID:       r.AccountID,
		TableID:         r.TableID,
	}
	if a, err := m.accounts.FindByID(ctx, r.AccountID); err == nil {
		v.CustomerName = strings.TrimSpace(a.FirstName + " " + a.LastName)
		v.CustomerEmail = a.Email
	}
	if r.TableID != nil {
		if t, err := m.tables.FindByID(ctx, *r.TableID); err == nil {
			v.TableNumber = &t.TableNumber
			v.TableLocation = &t.Location
		}
	}
	return v
}

func (m *memReservations) snapshot() []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Reservation, 0, len(m.rows))
	for id := uint64(1); id <= m.nextID; id++ {
		if r, ok := m.rows[id]; ok {
			out = append(out, *r)
		}
	}
	return out
}

func (m *memReservations) ListAll(ctx context.Context) ([]model.ReservationView, error) {
	rows := m.snapshot()
	views := make([]model.ReservationView, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		views = append(views, m.view(ctx, &rows[i]))
	}
	return views, nil
}

func (m *memReservations) ListByStatus(ctx context.Context, status string) ([]model.ReservationView, error) {
	views := make([]model.ReservationView, 0)
	for _, r := range m.snapshot() {
		if r.Status == status {
			views = append(views, m.view(ctx, &r))
		}
	}
	return views, nil
}

func (m *memReservations) ListBetween(ctx context.Context, from, to time.Time) ([]model.ReservationView, error) {
	views := make([]model.ReservationView, 0)
	for _, r := range m.snapshot() {
		if !r.ReservedAt.Before(from) && r.ReservedAt.Before(to) {
			views = append(views, m.view(ctx, &r))
		}
	}
	return views, nil
}

func (m *memReservations) ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error) {
	views := make([]model.ReservationView, 0)
	for _, r := range m.snapshot() {
		if r.AccountID == accountID {
			views = append(views, m.view(ctx, &r))
		}
	}
	return views, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	views []model.ReservationView
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, v model.ReservationView) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, v)
}

func (n *recordingNotifier) confirmed() []model.ReservationView {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.ReservationView(nil), n.views...)
}

// env bundles a fully wired service stack over the fakes.
type env struct {
	accounts     *memAccounts
	tables       *memTables
	reservations *memReservations
	notifier     *recordingNotifier
	svc          *ReservationService
	engine       *AvailabilityEngine
	window       ServiceWindow
}

func newEnv(tables ...model.RestaurantTable) *env {
	accounts := newMemAccounts()
	tbl := &memTables{rows: tables}
	reservations := newMemReservations(accounts, tbl)
	notifier := &recordingNotifier{}
	window := DefaultServiceWindow(time.UTC)

	resolver := NewPartyResolver(accounts)
	conflicts := NewConflictChecker(reservations)
	return &env{
		accounts:     accounts,
		tables:       tbl,
		reservations: reservations,
		notifier:     notifier,
		window:       window,
		engine:       NewAvailabilityEngine(tbl, conflicts, window),
		svc: NewReservationService(
			resolver, conflicts, accounts, tbl, reservations, window, notifier),
	}
}

func table(id uint64, number string, capacity uint32, status string) model.RestaurantTable {
	return model.RestaurantTable{
		ID:          id,
		TableNumber: number,
		Capacity:    capacity,
		Status:      status,
		Location:    "main",
	}
}
