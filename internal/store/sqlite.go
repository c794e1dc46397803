// Package store provides the sqlite-backed transaction store behind the
// ingestion pipeline's storage interface.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
)

// Timestamps are stored as unix seconds; amounts as their fixed two-decimal
// string form, so the exact-amount dedup query is plain equality.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id               TEXT PRIMARY KEY,
	scope            TEXT NOT NULL,
	amount           TEXT NOT NULL,
	direction        TEXT NOT NULL,
	account_suffix   TEXT NOT NULL DEFAULT '',
	reference        TEXT NOT NULL DEFAULT '',
	merchant         TEXT NOT NULL DEFAULT '',
	user_description TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL,
	category_id      TEXT NOT NULL DEFAULT '',
	group_id         TEXT NOT NULL DEFAULT '',
	is_split         INTEGER NOT NULL DEFAULT 0,
	is_deleted       INTEGER NOT NULL DEFAULT 0,
	deleted_at       INTEGER,
	occurred_at      INTEGER NOT NULL,
	created_at       INTEGER NOT NULL,
	updated_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_dedup
	ON transactions(scope, amount, direction, occurred_at);
CREATE INDEX IF NOT EXISTS idx_transactions_reference
	ON transactions(reference);
`

// TransactionStore persists transactions in a sqlite database.
type TransactionStore struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (creating if needed) the sqlite database at path and applies the
// schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string, logger logging.Logger) (*TransactionStore, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.WithField("path", path).Debug("Opened transaction store")
	return &TransactionStore{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (s *TransactionStore) Close() error {
	return s.db.Close()
}

// CreateTransaction inserts a new transaction row.
func (s *TransactionStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	var deletedAt *int64
	if tx.DeletedAt != nil {
		u := tx.DeletedAt.Unix()
		deletedAt = &u
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, scope, amount, direction, account_suffix, reference, merchant,
			user_description, source, category_id, group_id, is_split,
			is_deleted, deleted_at, occurred_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Scope, tx.Amount.StringFixed(2), string(tx.Direction),
		tx.AccountSuffix, tx.Reference, tx.Merchant, tx.UserDescription,
		string(tx.Source), tx.CategoryID, tx.GroupID, tx.IsSplit,
		tx.IsDeleted, deletedAt, tx.OccurredAt.Unix(), tx.CreatedAt.Unix(), tx.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
	}
	return nil
}

// FindCandidateDuplicates returns the non-deleted transactions of the scope
// with the exact amount and direction whose source timestamp lies in
// [from, to]. The dedup index makes this the cheap query the gate relies on.
func (s *TransactionStore) FindCandidateDuplicates(ctx context.Context, scope string, amount decimal.Decimal, direction models.Direction, from, to time.Time) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE scope = ? AND amount = ? AND direction = ?
			AND occurred_at >= ? AND occurred_at <= ?
			AND is_deleted = 0
		ORDER BY occurred_at`,
		scope, amount.StringFixed(2), string(direction), from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate candidates: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByScope returns all non-deleted transactions of a scope, newest first.
func (s *TransactionStore) ListByScope(ctx context.Context, scope string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE scope = ? AND is_deleted = 0
		ORDER BY occurred_at DESC`,
		scope,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for scope %q: %w", scope, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const txColumns = `id, scope, amount, direction, account_suffix, reference,
	merchant, user_description, source, category_id, group_id, is_split,
	is_deleted, deleted_at, occurred_at, created_at, updated_at`

// scanTransactions reads all rows into transaction models.
func scanTransactions(rows *sql.Rows) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	for rows.Next() {
		var (
			tx         models.Transaction
			amount     string
			direction  string
			source     string
			deletedAt  sql.NullInt64
			occurredAt int64
			createdAt  int64
			updatedAt  int64
		)
		if err := rows.Scan(
			&tx.ID, &tx.Scope, &amount, &direction, &tx.AccountSuffix,
			&tx.Reference, &tx.Merchant, &tx.UserDescription, &source,
			&tx.CategoryID, &tx.GroupID, &tx.IsSplit, &tx.IsDeleted,
			&deletedAt, &occurredAt, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}

		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q is not a decimal: %w", amount, err)
		}
		tx.Amount = dec
		tx.Direction = models.Direction(direction)
		tx.Source = models.TransactionSource(source)
		tx.OccurredAt = time.Unix(occurredAt, 0).UTC()
		tx.CreatedAt = time.Unix(createdAt, 0).UTC()
		tx.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		if deletedAt.Valid {
			t := time.Unix(deletedAt.Int64, 0).UTC()
			tx.DeletedAt = &t
		}
		txs = append(txs, &tx)
	}
	return txs, rows.Err()
}
