package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AccountRepo provides access to the accounts table. Emails are normalized
// (lower-cased, trimmed) on every write and lookup so that repeat guests are
// matched regardless of input casing.
type AccountRepo struct{ db *sql.DB }

// NewAccountRepo returns an AccountRepo bound to the given database.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

const accountColumns = `id, email, first_name, last_name, phone, role, origin, password_hash, is_active, created_at, updated_at`

func scanAccount(row *sql.Row) (*model.Account, error) {
	var a model.Account
	var phone sql.NullString
	err := row.Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &phone,
		&a.Role, &a.Origin, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		a.Phone = &p
	}
	return &a, nil
}

// FindByID fetches an account by id. Returns ErrAccountNotFound when absent.
func (r *AccountRepo) FindByID(ctx context.Context, id uint64) (*model.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ? LIMIT 1`
	return scanAccount(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches an account by normalized email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE email = ? LIMIT 1`
	return scanAccount(r.db.QueryRowContext(ctx, q, email))
}

// Create inserts an account and populates its ID and timestamps. A duplicate
// email maps to ErrEmailExists (MySQL error 1062 on the unique index).
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	const q = `INSERT INTO accounts (email, first_name, last_name, phone, role, origin, password_hash, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var phone interface{}
	if a.Phone != nil {
		phone = *a.Phone
	}
	res, err := r.db.ExecContext(ctx, q,
		a.Email, a.FirstName, a.LastName, phone, a.Role, a.Origin, a.PasswordHash, a.IsActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query back timestamps set by column defaults.
	const sel = `SELECT created_at, updated_at FROM accounts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}
