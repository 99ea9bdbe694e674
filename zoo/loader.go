/*
loader.go - Record loaders for animals, people and food

PURPOSE:
  Turns the three comma-separated record streams into registry entries
  and ledger deliveries, writing one activity log line per record.

RECORD SHAPES:
  animals:  species,name,age     Lion,Leo,5
  persons:  role,name,id         Personnel,Ada,P1
  foods:    category,amount      Meat,30.0

TOLERANCE:
  Unrecognized species and roles are skipped silently. A malformed record
  (missing field, bad number) is skipped with a warning in lenient mode
  and stops the load in strict mode. Blank lines are ignored.
*/
package zoo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/warp/zoo-engine/generic"
)

// Record kinds, used in logs and metrics.
const (
	RecordAnimal = "animal"
	RecordPerson = "person"
	RecordFood   = "food"
)

// Loader fills a Registry and FoodLedger from record streams.
type Loader struct {
	Registry *Registry
	Ledger   *generic.FoodLedger
	Journal  *Journal
	Logger   *slog.Logger
	Recorder Recorder

	// Strict aborts a load on the first malformed record.
	Strict bool
}

func (l *Loader) LoadAnimals(ctx context.Context, r io.Reader) error {
	l.Journal.Section("Initializing Animal information")
	return l.eachRecord(r, RecordAnimal, func(fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("want species,name,age: %w", ErrMalformedRecord)
		}
		species, err := ParseSpecies(fields[0])
		if err != nil {
			return err
		}
		age, err := strconv.Atoi(fields[2])
		if err != nil {
			return &InvalidNumberError{Field: "age", Value: fields[2]}
		}
		animal, err := NewAnimal(species, fields[1], age)
		if err != nil {
			return err
		}
		l.Registry.AddAnimal(animal)
		l.Journal.Printf("Added new %s with name %s aged %d.", animal.Species, animal.Name, animal.Age)
		return nil
	})
}

func (l *Loader) LoadPersons(ctx context.Context, r io.Reader) error {
	l.Journal.Section("Initializing Visitor and Personnel information")
	return l.eachRecord(r, RecordPerson, func(fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("want role,name,id: %w", ErrMalformedRecord)
		}
		role, err := ParseRole(fields[0])
		if err != nil {
			return err
		}
		person := Person{Role: role, Name: fields[1], ID: fields[2]}
		l.Registry.AddPerson(person)
		l.Journal.Printf("Added new %s with id %s and name %s.", person.Role, person.ID, person.Name)
		return nil
	})
}

func (l *Loader) LoadFoods(ctx context.Context, r io.Reader) error {
	l.Journal.Section("Initializing Food Stock")
	return l.eachRecord(r, RecordFood, func(fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("want category,amount: %w", ErrMalformedRecord)
		}
		amount, err := generic.ParseAmount(fields[1])
		if err != nil {
			return &InvalidNumberError{Field: "amount", Value: fields[1]}
		}
		category := generic.Category(fields[0])
		if err := l.Ledger.Add(ctx, category, amount); err != nil {
			if errors.Is(err, generic.ErrNegativeAmount) {
				return &InvalidNumberError{Field: "amount", Value: fields[1]}
			}
			return err
		}
		l.Journal.Printf("There are %s kg of %s in stock", generic.FormatAmount(amount), category)
		return nil
	})
}

// eachRecord feeds every non-blank line to fn and applies the tolerance
// rules to what fn returns.
func (l *Loader) eachRecord(r io.Reader, kind string, fn func([]string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := fn(SplitFields(line))
		switch {
		case err == nil:
			l.recorder().RecordLoaded(kind)
		case errors.Is(err, ErrUnknownSpecies), errors.Is(err, ErrUnknownRole):
			l.recorder().RecordSkipped(kind)
			l.logger().Debug("record skipped", "kind", kind, "line", lineNo, "reason", err)
		case errors.Is(err, ErrInvalidNumber), errors.Is(err, ErrMalformedRecord):
			l.recorder().RecordSkipped(kind)
			if l.Strict {
				return fmt.Errorf("%s record on line %d: %w", kind, lineNo, err)
			}
			l.logger().Warn("malformed record skipped", "kind", kind, "line", lineNo, "error", err)
		default:
			return fmt.Errorf("%s record on line %d: %w", kind, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s records: %w", kind, err)
	}
	return nil
}

func (l *Loader) logger() *slog.Logger { return discardLogger(l.Logger) }

func (l *Loader) recorder() Recorder { return recorderOrNop(l.Recorder) }

// SplitFields splits a comma-separated line and trims each field.
func SplitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
