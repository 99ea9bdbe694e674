/*
Package generic provides the quantity ledger the zoo runs on.

PURPOSE:
  This package knows nothing about lions or visitors. It tracks decimal
  quantities per category (kilograms of Meat, Plant, Fish, or anything a
  loader invents) as an append-only journal of transactions, and answers
  "how much is left?" by replaying that journal.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: an open-ended food type key ("Meat", "Krill", ...)
  - Portion: a requested quantity of one category
  - Transaction: an immutable journal entry recording a stock change

DESIGN PRINCIPLES:
  1. Immutability: transactions are never modified, never deleted
  2. Precision: decimal.Decimal everywhere, output fixed at 3 fractional digits
  3. Atomicity: a set of portions is consumed entirely or not at all

USAGE:
  ledger := generic.NewFoodLedger(store.NewMemory())
  _ = ledger.Add(ctx, "Meat", decimal.NewFromInt(30))
  err := ledger.ConsumeAll(ctx, []generic.Portion{
      {Category: "Meat", Amount: decimal.NewFromInt(5)},
      {Category: "Plant", Amount: decimal.NewFromInt(5)},
  }, "feed:Koko")

SEE ALSO:
  - ledger.go: FoodLedger and the CanAfford/Commit contract
  - store.go: persistence interfaces
  - errors.go: InsufficientStockError and friends
*/
package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY
// =============================================================================

// Category is a food type key. The set is open: any name a loader or an
// animal diet uses is a legal category.
type Category string

const (
	CategoryPlant Category = "Plant"
	CategoryFish  Category = "Fish"
	CategoryMeat  Category = "Meat"
)

// CanonicalCategories are always reported by a snapshot, in this order,
// even when nothing was ever stocked.
var CanonicalCategories = []Category{CategoryPlant, CategoryFish, CategoryMeat}

func (c Category) String() string { return string(c) }

// IsCanonical reports whether c is one of the always-reported categories.
func (c Category) IsCanonical() bool {
	for _, canonical := range CanonicalCategories {
		if c == canonical {
			return true
		}
	}
	return false
}

// =============================================================================
// AMOUNTS
// =============================================================================

// Precision is the number of fractional digits used when rendering amounts.
const Precision = 3

// FormatAmount renders d with exactly three fractional digits and a dot
// separator, independent of host locale. Ties round to even.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixedBank(Precision)
}

// ParseAmount parses a decimal quantity such as "30" or "12.5".
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Portion is a quantity of a single category.
type Portion struct {
	Category Category
	Amount   decimal.Decimal
}

// SplitEvenly divides total across categories in equal shares.
func SplitEvenly(total decimal.Decimal, categories ...Category) []Portion {
	if len(categories) == 0 {
		return nil
	}
	share := total.Div(decimal.NewFromInt(int64(len(categories))))
	portions := make([]Portion, len(categories))
	for i, c := range categories {
		portions[i] = Portion{Category: c, Amount: share}
	}
	return portions
}

// =============================================================================
// TRANSACTION - Immutable change to a category's stock
// =============================================================================

type TransactionID string

type TransactionType string

const (
	TxStock       TransactionType = "stock"       // Delivery added to inventory
	TxConsumption TransactionType = "consumption" // Food handed out at a feeding
)

type Transaction struct {
	ID        TransactionID
	Category  Category
	Delta     decimal.Decimal // positive for stock, negative for consumption
	Type      TransactionType
	Reference string // e.g. "feed:Leo", "stock:Meat"
	Reason    string
	CreatedAt time.Time
}

// Balance replays txs and returns the resulting quantity.
func Balance(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Delta)
	}
	return total
}
