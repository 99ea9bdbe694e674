/*
store.go - Persistence interface for ledger transactions

PURPOSE:
  Defines the boundary between the ledger and whatever holds its journal.
  The Store is append-only: there is no Update and no Delete.

IMPLEMENTATIONS:
  - generic/store/memory.go: in-memory, the default
  - store/sqlite/sqlite.go: SQLite journal (in-memory database by default)

ATOMIC BATCHES:
  AppendBatch() is all-or-nothing. A chimpanzee feeding writes a Meat and
  a Plant consumption; either both land or neither does.
*/
package generic

import "context"

// Store handles persistence of transactions.
type Store interface {
	// Append persists a single transaction.
	Append(ctx context.Context, tx Transaction) error

	// AppendBatch persists multiple transactions atomically.
	AppendBatch(ctx context.Context, txs []Transaction) error

	// Load returns all transactions for a category in append order.
	Load(ctx context.Context, category Category) ([]Transaction, error)

	// Categories returns every category that has at least one transaction.
	Categories(ctx context.Context) ([]Category, error)
}

// TxStore wraps Store with transaction support.
// If fn returns an error nothing it wrote is kept.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
