// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/zoo-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (default backend)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	transactions map[generic.Category][]generic.Transaction
	order        []generic.Category
	ids          map[generic.TransactionID]bool
}

func NewMemory() *Memory {
	return &Memory{
		transactions: make(map[generic.Category][]generic.Transaction),
		ids:          make(map[generic.TransactionID]bool),
	}
}

// Append adds a single transaction. Append-only.
func (m *Memory) Append(_ context.Context, tx generic.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx.ID != "" && m.ids[tx.ID] {
		return generic.ErrDuplicateTransaction
	}
	m.appendLocked(tx)
	return nil
}

// AppendBatch adds multiple transactions atomically.
func (m *Memory) AppendBatch(_ context.Context, txs []generic.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendBatchLocked(txs)
}

func (m *Memory) appendBatchLocked(txs []generic.Transaction) error {
	// Check all IDs first (atomic check)
	batch := make(map[generic.TransactionID]bool, len(txs))
	for _, tx := range txs {
		if tx.ID == "" {
			continue
		}
		if m.ids[tx.ID] || batch[tx.ID] {
			return generic.ErrDuplicateTransaction
		}
		batch[tx.ID] = true
	}

	for _, tx := range txs {
		m.appendLocked(tx)
	}
	return nil
}

func (m *Memory) appendLocked(tx generic.Transaction) {
	if _, ok := m.transactions[tx.Category]; !ok {
		m.order = append(m.order, tx.Category)
	}
	m.transactions[tx.Category] = append(m.transactions[tx.Category], tx)
	if tx.ID != "" {
		m.ids[tx.ID] = true
	}
}

func (m *Memory) Load(_ context.Context, category generic.Category) ([]generic.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadLocked(category), nil
}

func (m *Memory) loadLocked(category generic.Category) []generic.Transaction {
	result := make([]generic.Transaction, len(m.transactions[category]))
	copy(result, m.transactions[category])
	return result
}

func (m *Memory) Categories(_ context.Context) ([]generic.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]generic.Category{}, m.order...), nil
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

// WithTx executes fn within a transaction.
// For memory store, this is simulated with a snapshot + rollback on error.
func (tm *TxMemory) WithTx(_ context.Context, fn func(generic.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := tm.snapshot()
	if err := fn(&txMemoryView{parent: tm}); err != nil {
		tm.restore(snapshot)
		return err
	}
	return nil
}

func (tm *TxMemory) snapshot() memorySnapshot {
	txsCopy := make(map[generic.Category][]generic.Transaction, len(tm.transactions))
	for k, v := range tm.transactions {
		txsCopy[k] = append([]generic.Transaction{}, v...)
	}
	idsCopy := make(map[generic.TransactionID]bool, len(tm.ids))
	for k, v := range tm.ids {
		idsCopy[k] = v
	}
	return memorySnapshot{
		transactions: txsCopy,
		order:        append([]generic.Category{}, tm.order...),
		ids:          idsCopy,
	}
}

func (tm *TxMemory) restore(s memorySnapshot) {
	tm.transactions = s.transactions
	tm.order = s.order
	tm.ids = s.ids
}

type memorySnapshot struct {
	transactions map[generic.Category][]generic.Transaction
	order        []generic.Category
	ids          map[generic.TransactionID]bool
}

// txMemoryView operates on the parent while WithTx holds its lock.
type txMemoryView struct {
	parent *TxMemory
}

func (tv *txMemoryView) Append(_ context.Context, tx generic.Transaction) error {
	return tv.parent.appendBatchLocked([]generic.Transaction{tx})
}

func (tv *txMemoryView) AppendBatch(_ context.Context, txs []generic.Transaction) error {
	return tv.parent.appendBatchLocked(txs)
}

func (tv *txMemoryView) Load(_ context.Context, category generic.Category) ([]generic.Transaction, error) {
	return tv.parent.loadLocked(category), nil
}

func (tv *txMemoryView) Categories(_ context.Context) ([]generic.Category, error) {
	return append([]generic.Category{}, tv.parent.order...), nil
}
