package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD and state-transition operations for
// reservations. All timestamps are stored in UTC. Status transitions are
// written with conditional updates ("... WHERE id = ? AND status = ?") so
// that the first writer wins and every later writer observes zero affected
// rows; no application-level lock is needed.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, account_id, table_id, reserved_at, party_size, status, special_requests, rejection_reason, decided_by, created_at, updated_at`

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
	var r model.Reservation
	var tableID sql.NullInt64
	var requests, reason sql.NullString
	var decidedBy sql.NullInt64
	err := scan(&r.ID, &r.AccountID, &tableID, &r.ReservedAt, &r.PartySize, &r.Status,
		&requests, &reason, &decidedBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tableID.Valid {
		id := uint64(tableID.Int64)
		r.TableID = &id
	}
	if requests.Valid {
		s := requests.String
		r.SpecialRequests = &s
	}
	if reason.Valid {
		s := reason.String
		r.RejectionReason = &s
	}
	if decidedBy.Valid {
		id := uint64(decidedBy.Int64)
		r.DecidedBy = &id
	}
	return &r, nil
}

// Create inserts a new reservation and populates its ID and timestamps.
// The reservations table carries a unique index over a generated column that
// is non-NULL only while a table is assigned and the status is live, so a
// concurrent insert for the same (table, date-time) slot fails with MySQL
// error 1062; that loss is surfaced as ErrSlotTaken.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (account_id, table_id, reserved_at, party_size, status, special_requests)
	           VALUES (?, ?, ?, ?, ?, ?)`
	var tableID interface{}
	if res.TableID != nil {
		tableID = *res.TableID
	}
	var requests interface{}
	if res.SpecialRequests != nil {
		requests = *res.SpecialRequests
	}
	result, err := r.db.ExecContext(ctx, q,
		res.AccountID, tableID, res.ReservedAt.UTC(), res.PartySize, res.Status, requests)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// FindByID retrieves a reservation row by id.
func (r *ReservationRepo) FindByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// FindByTableAndDateTime returns every reservation recorded for the exact
// table id and the exact combined instant. Date and time are compared as a
// single value with no tolerance window; slot generation quantizes requests
// to fixed boundaries so equal instants are the only possible collisions.
func (r *ReservationRepo) FindByTableAndDateTime(ctx context.Context, tableID uint64, at time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE table_id = ? AND reserved_at = ?`
	rows, err := r.db.QueryContext(ctx, q, tableID, at.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Transition moves a reservation from one exact status to another, recording
// the deciding staff account and an optional reason. It returns true when
// this caller won the write; false means the reservation was no longer in
// the expected state (or does not exist) and the caller must re-read to
// classify the failure. The status re-check happens inside the UPDATE
// itself, which is what gives at-most-one-writer-wins semantics.
func (r *ReservationRepo) Transition(ctx context.Context, id uint64, from, to string, decidedBy *uint64, reason *string) (bool, error) {
	const q = `UPDATE reservations
	           SET status = ?,
	               decided_by = COALESCE(?, decided_by),
	               rejection_reason = COALESCE(?, rejection_reason),
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	var decider interface{}
	if decidedBy != nil {
		decider = *decidedBy
	}
	var why interface{}
	if reason != nil {
		why = *reason
	}
	res, err := r.db.ExecContext(ctx, q, to, decider, why, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CancelFromActive sets a reservation to CANCELLED if it is currently
// PENDING or CONFIRMED. Returns true when the cancel won.
func (r *ReservationRepo) CancelFromActive(ctx context.Context, id uint64) (bool, error) {
	const q = `UPDATE reservations
	           SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status IN (?, ?)`
	res, err := r.db.ExecContext(ctx, q, model.StatusCancelled, id, model.StatusPending, model.StatusConfirmed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ExistsByID reports whether a reservation row exists.
func (r *ReservationRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM reservations WHERE id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByID physically removes a reservation. Normal flow never deletes;
// this exists for administrative override only.
func (r *ReservationRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

const viewSelect = `SELECT r.id, r.status, r.reserved_at, r.party_size, r.special_requests,
                           r.rejection_reason, r.decided_by, r.created_at, r.updated_at,
                           a.id, CONCAT(a.first_name, IF(a.last_name = '', '', CONCAT(' ', a.last_name))), a.email,
                           t.id, t.table_number, t.location
                    FROM reservations r
                    JOIN accounts a ON a.id = r.account_id
                    LEFT JOIN restaurant_tables t ON t.id = r.table_id`

func scanView(scan func(dest ...interface{}) error) (*model.ReservationView, error) {
	var v model.ReservationView
	var requests, reason sql.NullString
	var decidedBy sql.NullInt64
	var tableID sql.NullInt64
	var tableNumber, tableLocation sql.NullString
	err := scan(&v.ID, &v.Status, &v.ReservedAt, &v.PartySize, &requests,
		&reason, &decidedBy, &v.CreatedAt, &v.UpdatedAt,
		&v.AccountID, &v.CustomerName, &v.CustomerEmail,
		&tableID, &tableNumber, &tableLocation)
	if err != nil {
		return nil, err
	}
	if requests.Valid {
		s := requests.String
		v.SpecialRequests = &s
	}
	if reason.Valid {
		s := reason.String
		v.RejectionReason = &s
	}
	if decidedBy.Valid {
		id := uint64(decidedBy.Int64)
		v.DecidedBy = &id
	}
	if tableID.Valid {
		id := uint64(tableID.Int64)
		v.TableID = &id
	}
	if tableNumber.Valid {
		s := tableNumber.String
		v.TableNumber = &s
	}
	if tableLocation.Valid {
		s := tableLocation.String
		v.TableLocation = &s
	}
	return &v, nil
}

// ViewByID returns the presentation projection of a single reservation.
func (r *ReservationRepo) ViewByID(ctx context.Context, id uint64) (*model.ReservationView, error) {
	const q = viewSelect + ` WHERE r.id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	v, err := scanView(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *ReservationRepo) listViews(ctx context.Context, q string, args ...interface{}) ([]model.ReservationView, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]model.ReservationView, 0)
	for rows.Next() {
		v, err := scanView(rows.Scan)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListAll returns every reservation, newest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.ReservationView, error) {
	return r.listViews(ctx, viewSelect+` ORDER BY r.created_at DESC`)
}

// ListByStatus returns reservations in the given status, newest first.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status string) ([]model.ReservationView, error) {
	return r.listViews(ctx, viewSelect+` WHERE r.status = ? ORDER BY r.created_at DESC`, status)
}

// ListBetween returns reservations with reserved_at in [from, to), ordered
// by reservation time. The service layer computes day boundaries in the
// restaurant's timezone and passes them here in UTC.
func (r *ReservationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.ReservationView, error) {
	return r.listViews(ctx,
		viewSelect+` WHERE r.reserved_at >= ? AND r.reserved_at < ? ORDER BY r.reserved_at`,
		from.UTC(), to.UTC())
}

// ListByAccount returns the calling customer's reservations, newest first.
func (r *ReservationRepo) ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error) {
	return r.listViews(ctx, viewSelect+` WHERE r.account_id = ? ORDER BY r.created_at DESC`, accountID)
}
