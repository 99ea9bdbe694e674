/*
errors.go - Centralized error types for the ledger

PURPOSE:
  All ledger error types in one place. The zoo package wraps or passes
  these through unchanged; the dispatcher only needs their messages.

USAGE:
  if errors.Is(err, generic.ErrInsufficientStock) {
      var short *generic.InsufficientStockError
      errors.As(err, &short)
      fmt.Println(short.Category)
  }
*/
package generic

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientStock is returned when a consumption exceeds what is left.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNegativeAmount is returned when adding or consuming a negative quantity.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrTransactionFailed is returned when a transaction cannot be persisted.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrDuplicateTransaction is returned when a transaction ID is reused.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError names the first category that could not cover a
// request. Its message is the one written to the activity log.
type InsufficientStockError struct {
	Category  Category
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough %s", e.Category)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Shortfall is how much more stock the request needed.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// IsClientError returns true if the error is due to a request the ledger
// refused, as opposed to a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrNegativeAmount)
}
