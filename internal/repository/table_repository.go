package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo is the read-only adapter over the restaurant_tables catalog.
// Tables are reference data owned by floor management; the reservation core
// reads capacity, status and location but never mutates them as a side
// effect of booking.
type TableRepo struct{ db *sql.DB }

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, table_number, capacity, status, location, created_at, updated_at`

// FindByID retrieves a table by its id. Returns ErrTableNotFound when absent.
func (r *TableRepo) FindByID(ctx context.Context, id uint64) (*model.RestaurantTable, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	var t model.RestaurantTable
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.TableNumber, &t.Capacity, &t.Status, &t.Location, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll retrieves every table ordered by table number for deterministic
// availability scans.
func (r *TableRepo) FindAll(ctx context.Context) ([]model.RestaurantTable, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RestaurantTable
	for rows.Next() {
		var t model.RestaurantTable
		if err := rows.Scan(
			&t.ID, &t.TableNumber, &t.Capacity, &t.Status, &t.Location, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
