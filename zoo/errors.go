package zoo

import (
	"errors"
	"fmt"

	"github.com/warp/zoo-engine/generic"
)

var (
	// ErrEntityNotFound is returned when a command names an unknown person or animal.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrUnauthorized is returned when a visitor tries to feed an animal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidNumber is returned for a malformed meal count, age or amount.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrMalformedCommand is returned when a command line lacks required fields.
	ErrMalformedCommand = errors.New("malformed command")

	// ErrMalformedRecord is returned when a load record lacks required fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownSpecies and ErrUnknownRole mark records the loaders skip.
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownRole    = errors.New("unknown role")
)

// EntityKind says which registry a lookup missed.
type EntityKind string

const (
	KindPerson EntityKind = "person"
	KindAnimal EntityKind = "animal"
)

type EntityNotFoundError struct {
	Kind EntityKind
	Key  string
}

func (e *EntityNotFoundError) Error() string {
	if e.Kind == KindPerson {
		return "There are no visitors or personnel with the id " + e.Key
	}
	return "There are no animals with the name " + e.Key + "."
}

func (e *EntityNotFoundError) Unwrap() error { return ErrEntityNotFound }

// UnauthorizedError is returned when a visitor tries to feed an animal.
type UnauthorizedError struct {
	PersonID string
}

func (e *UnauthorizedError) Error() string {
	return "Visitors do not have the authority to feed animals."
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

type InvalidNumberError struct {
	Field string
	Value string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number %q for %s", e.Value, e.Field)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }

type MalformedCommandError struct {
	Kind   string
	Fields int
	Want   int
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("%s expects %d fields, got %d", e.Kind, e.Want, e.Fields)
}

func (e *MalformedCommandError) Unwrap() error { return ErrMalformedCommand }

// Reason maps an error to a short label for metrics.
func Reason(err error) string {
	var notFound *EntityNotFoundError
	switch {
	case errors.As(err, &notFound):
		return string(notFound.Kind) + "_not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, generic.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, ErrMalformedCommand):
		return "malformed_command"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	default:
		return "internal"
	}
}

// IsNotFound returns true if the error indicates a missing person or animal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}
