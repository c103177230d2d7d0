package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate bootstraps the schema. Statements are idempotent so the server can
// run them on every startup.
//
// The reservations table carries a STORED generated column, slot_claim, that
// is non-NULL only while a table is assigned and the status is live (not
// CANCELLED or DENIED). The unique index over it is the store-level guard
// from the concurrency model: two creations that both pass the read-side
// conflict check cannot both commit a live row for the same table and
// instant. The second insert fails with a duplicate key, which the
// repository maps to ErrSlotTaken.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(32) NULL,
		role ENUM('CUSTOMER','MANAGER','ADMIN') NOT NULL DEFAULT 'CUSTOMER',
		origin ENUM('REGISTERED','GUEST') NOT NULL DEFAULT 'REGISTERED',
		password_hash VARCHAR(255) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_accounts_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		table_number VARCHAR(32) NOT NULL,
		capacity INT UNSIGNED NOT NULL,
		status ENUM('AVAILABLE','OCCUPIED','RESERVED','MAINTENANCE') NOT NULL DEFAULT 'AVAILABLE',
		location VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_tables_number (table_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		account_id BIGINT UNSIGNED NOT NULL,
		table_id BIGINT UNSIGNED NULL,
		reserved_at DATETIME NOT NULL,
		party_size INT UNSIGNED NOT NULL,
		status ENUM('PENDING','CONFIRMED','CANCELLED','DENIED','SEATED','COMPLETED','NO_SHOW')
			NOT NULL DEFAULT 'PENDING',
		special_requests TEXT NULL,
		rejection_reason VARCHAR(500) NULL,
		decided_by BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		slot_claim VARCHAR(64) GENERATED ALWAYS AS (
			CASE WHEN table_id IS NOT NULL AND status NOT IN ('CANCELLED','DENIED')
			     THEN CONCAT(table_id, '@', DATE_FORMAT(reserved_at, '%Y-%m-%d %H:%i:%s'))
			END
		) STORED,
		UNIQUE KEY uq_reservations_live_slot (slot_claim),
		KEY idx_reservations_status (status),
		KEY idx_reservations_reserved_at (reserved_at),
		KEY idx_reservations_account (account_id),
		CONSTRAINT fk_reservations_account FOREIGN KEY (account_id) REFERENCES accounts (id),
		CONSTRAINT fk_reservations_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id),
		CONSTRAINT fk_reservations_decider FOREIGN KEY (decided_by) REFERENCES accounts (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the bootstrap statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
