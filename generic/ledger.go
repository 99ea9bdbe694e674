/*
ledger.go - The shared food inventory

PURPOSE:
  FoodLedger is the single source of truth for what is in stock. Every
  delivery and every feeding is a Transaction in the Store; the quantity
  on hand is always computed by replaying them.

CRITICAL INVARIANTS:
  1. NON-NEGATIVE: no category ever goes below zero
  2. ALL-OR-NOTHING: a set of portions is consumed entirely or not at all
  3. APPEND-ONLY: stock changes are recorded, never edited

TWO-PHASE CONSUMPTION:
  ConsumeAll is CanAfford followed by Commit, under one lock:

    CanAfford  reads every category involved, fails on the first short one
    Commit     appends every consumption as a single batch

  When the Store supports transactions, both phases run inside WithTx so
  the check and the writes see the same state.

EXAMPLE FLOW (Chimpanzee, 6 kg meal):
  Meat 10, Plant 2
  ConsumeAll([Meat 3, Plant 3])
    -> CanAfford: Meat ok, Plant short
    -> InsufficientStockError{Plant}, nothing written
  Meat 10, Plant 2 (unchanged)
*/
package generic

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// FOOD LEDGER
// =============================================================================

type FoodLedger struct {
	Store Store

	mu  sync.Mutex
	now func() time.Time
}

func NewFoodLedger(store Store) *FoodLedger {
	return &FoodLedger{Store: store, now: time.Now}
}

// Add records a delivery of amount to category.
func (l *FoodLedger) Add(ctx context.Context, category Category, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("add %s %s: %w", FormatAmount(amount), category, ErrNegativeAmount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.Store.Append(ctx, Transaction{
		ID:        newTransactionID(),
		Category:  category,
		Delta:     amount,
		Type:      TxStock,
		Reference: "stock:" + string(category),
		CreatedAt: l.clock().UTC(),
	})
}

// Available returns the quantity on hand for category. Unknown categories
// have zero stock.
func (l *FoodLedger) Available(ctx context.Context, category Category) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return available(ctx, l.Store, category)
}

// Consume takes amount of a single category. See ConsumeAll.
func (l *FoodLedger) Consume(ctx context.Context, category Category, amount decimal.Decimal, reference string) error {
	return l.ConsumeAll(ctx, []Portion{{Category: category, Amount: amount}}, reference)
}

// ConsumeAll takes every portion or none of them.
func (l *FoodLedger) ConsumeAll(ctx context.Context, portions []Portion, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	apply := func(store Store) error {
		if err := canAfford(ctx, store, portions); err != nil {
			return err
		}
		return l.commit(ctx, store, portions, reference)
	}

	if txStore, ok := l.Store.(TxStore); ok {
		return txStore.WithTx(ctx, apply)
	}
	return apply(l.Store)
}

// CanAfford checks portions against current stock without writing anything.
// Portions for the same category are summed before the check. The first
// short category, in portion order, is reported.
func (l *FoodLedger) CanAfford(ctx context.Context, portions []Portion) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return canAfford(ctx, l.Store, portions)
}

// Commit appends the consumption transactions for portions as one batch.
// It does not check stock; callers that need the non-negative guarantee
// use ConsumeAll.
func (l *FoodLedger) Commit(ctx context.Context, portions []Portion, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, l.Store, portions, reference)
}

func (l *FoodLedger) commit(ctx context.Context, store Store, portions []Portion, reference string) error {
	now := l.clock().UTC()
	txs := make([]Transaction, 0, len(portions))
	for _, p := range portions {
		txs = append(txs, Transaction{
			ID:        newTransactionID(),
			Category:  p.Category,
			Delta:     p.Amount.Neg(),
			Type:      TxConsumption,
			Reference: reference,
			CreatedAt: now,
		})
	}
	if err := store.AppendBatch(ctx, txs); err != nil {
		return fmt.Errorf("commit %s: %w", reference, err)
	}
	return nil
}

func canAfford(ctx context.Context, store Store, portions []Portion) error {
	requested := make(map[Category]decimal.Decimal, len(portions))
	var order []Category
	for _, p := range portions {
		if p.Amount.IsNegative() {
			return fmt.Errorf("consume %s %s: %w", FormatAmount(p.Amount), p.Category, ErrNegativeAmount)
		}
		if _, seen := requested[p.Category]; !seen {
			order = append(order, p.Category)
			requested[p.Category] = decimal.Zero
		}
		requested[p.Category] = requested[p.Category].Add(p.Amount)
	}

	for _, category := range order {
		have, err := available(ctx, store, category)
		if err != nil {
			return err
		}
		if have.LessThan(requested[category]) {
			return &InsufficientStockError{
				Category:  category,
				Available: have,
				Requested: requested[category],
			}
		}
	}
	return nil
}

func available(ctx context.Context, store Store, category Category) (decimal.Decimal, error) {
	txs, err := store.Load(ctx, category)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load %s: %w", category, err)
	}
	return Balance(txs), nil
}

func (l *FoodLedger) clock() time.Time {
	if l.now == nil {
		return time.Now()
	}
	return l.now()
}

func newTransactionID() TransactionID {
	return TransactionID(uuid.NewString())
}

// =============================================================================
// SNAPSHOT - Point-in-time stock report
// =============================================================================

type StockLevel struct {
	Category Category
	Amount   decimal.Decimal
}

type Snapshot struct {
	Levels []StockLevel
}

// Get returns the level for category, zero if absent.
func (s Snapshot) Get(category Category) decimal.Decimal {
	for _, level := range s.Levels {
		if level.Category == category {
			return level.Amount
		}
	}
	return decimal.Zero
}

// Snapshot reports the canonical categories first, then every other
// category seen by the store in lexical order.
func (l *FoodLedger) Snapshot(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen, err := l.Store.Categories(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list categories: %w", err)
	}

	var extra []Category
	for _, c := range seen {
		if !c.IsCanonical() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	categories := append(append([]Category{}, CanonicalCategories...), extra...)
	snap := Snapshot{Levels: make([]StockLevel, 0, len(categories))}
	for _, c := range categories {
		amount, err := available(ctx, l.Store, c)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Levels = append(snap.Levels, StockLevel{Category: c, Amount: amount})
	}
	return snap, nil
}
