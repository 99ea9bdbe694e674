/*
Package sqlite provides a SQLite-backed implementation of generic.TxStore.

PURPOSE:
  Keeps the food journal in SQLite so a run's stock movements can be
  queried with SQL afterwards. The zoo never reloads a journal: every run
  starts from the food records it is given.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on food_transactions
  - No DELETE statements on food_transactions

KEY TABLES:
  food_transactions: immutable journal of deliveries and feedings

CONCURRENCY:
  One open connection. ":memory:" databases are per-connection in SQLite,
  so a pool would hand out empty databases.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      return err
  }
  defer store.Close()

  ledger := generic.NewFoodLedger(store)

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/zoo-engine/generic"
)

// Store implements generic.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS food_transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		delta_value TEXT NOT NULL,
		tx_type TEXT NOT NULL,
		reference_id TEXT,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_food_transactions_category
		ON food_transactions(category, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// =============================================================================
// TRANSACTION STORE (generic.Store interface)
// =============================================================================

// Append adds a transaction to the journal.
func (s *Store) Append(ctx context.Context, tx generic.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return appendTx(ctx, s.db, tx)
}

// AppendBatch adds multiple transactions in one database transaction.
func (s *Store) AppendBatch(ctx context.Context, txs []generic.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, tx := range txs {
		if err := appendTx(ctx, sqlTx, tx); err != nil {
			return err
		}
	}
	return sqlTx.Commit()
}

func appendTx(ctx context.Context, db execer, tx generic.Transaction) error {
	query := `
		INSERT INTO food_transactions
		(id, category, delta_value, tx_type, reference_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, query,
		string(tx.ID),
		string(tx.Category),
		tx.Delta.String(),
		string(tx.Type),
		nullString(tx.Reference),
		nullString(tx.Reason),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return generic.ErrDuplicateTransaction
		}
		return fmt.Errorf("%w: %v", generic.ErrTransactionFailed, err)
	}
	return nil
}

// Load returns all transactions for a category in append order.
func (s *Store) Load(ctx context.Context, category generic.Category) ([]generic.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return loadTxs(ctx, s.db, category)
}

func loadTxs(ctx context.Context, db querier, category generic.Category) ([]generic.Transaction, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, category, delta_value, tx_type, reference_id, reason, created_at
		FROM food_transactions
		WHERE category = ?
		ORDER BY seq
	`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []generic.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func scanTransaction(rows *sql.Rows) (generic.Transaction, error) {
	var (
		id, category, delta, txType, createdAt string
		reference, reason                      sql.NullString
	)
	if err := rows.Scan(&id, &category, &delta, &txType, &reference, &reason, &createdAt); err != nil {
		return generic.Transaction{}, err
	}

	value, err := decimal.NewFromString(delta)
	if err != nil {
		return generic.Transaction{}, fmt.Errorf("corrupt delta %q on %s: %w", delta, id, err)
	}
	at, _ := time.Parse(time.RFC3339Nano, createdAt)

	return generic.Transaction{
		ID:        generic.TransactionID(id),
		Category:  generic.Category(category),
		Delta:     value,
		Type:      generic.TransactionType(txType),
		Reference: reference.String,
		Reason:    reason.String,
		CreatedAt: at,
	}, nil
}

// Categories returns each category in the order it first appeared.
func (s *Store) Categories(ctx context.Context) ([]generic.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return loadCategories(ctx, s.db)
}

func loadCategories(ctx context.Context, db querier) ([]generic.Category, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT category FROM food_transactions
		GROUP BY category
		ORDER BY MIN(seq)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []generic.Category
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, generic.Category(c))
	}
	return result, rows.Err()
}

// Count returns the number of journal entries of the given type.
func (s *Store) Count(ctx context.Context, txType generic.TransactionType) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM food_transactions WHERE tx_type = ?`, string(txType)).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// =============================================================================
// TRANSACTIONAL STORE (generic.TxStore interface)
// =============================================================================

// WithTx runs fn inside a database transaction. Everything fn reads and
// writes goes through the transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store generic.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) Append(ctx context.Context, tx generic.Transaction) error {
	return appendTx(ctx, ts.tx, tx)
}

func (ts *txStore) AppendBatch(ctx context.Context, txs []generic.Transaction) error {
	for _, tx := range txs {
		if err := appendTx(ctx, ts.tx, tx); err != nil {
			return err
		}
	}
	return nil
}

func (ts *txStore) Load(ctx context.Context, category generic.Category) ([]generic.Transaction, error) {
	return loadTxs(ctx, ts.tx, category)
}

func (ts *txStore) Categories(ctx context.Context) ([]generic.Category, error) {
	return loadCategories(ctx, ts.tx)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
