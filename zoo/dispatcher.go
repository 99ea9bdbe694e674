/*
dispatcher.go - Command replay against the registries and the ledger

PURPOSE:
  Reads the command stream one line at a time and routes each line to the
  behavior it names. Every command gets its own section in the activity
  log, and every failure stays inside that section.

COMMANDS:
  List Food Stock
  Animal Visitation,<personId>,<animalName>
  Feed Animal,<personId>,<animalName>,<mealCount>
  anything else -> "Unknown command."

FAILURE ISOLATION:
  Execute returns the command's error after logging it; Run keeps going.
  A failed feeding leaves the ledger exactly as it was (ConsumeAll is
  all-or-nothing), so nothing needs undoing at the command boundary.

SEQUENCE (Feed Animal):
  1. resolve person          -> EntityNotFoundError{person}
  2. resolve animal          -> EntityNotFoundError{animal}
  3. parse meal count        -> InvalidNumberError
  4. visitor pre-notice
  5. person.Feed             -> UnauthorizedError | InsufficientStockError
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

// Command kinds, the first field of a command line.
const (
	CmdListFoodStock    = "List Food Stock"
	CmdAnimalVisitation = "Animal Visitation"
	CmdFeedAnimal       = "Feed Animal"
)

type Dispatcher struct {
	Registry *Registry
	Ledger   *generic.FoodLedger
	Journal  *Journal
	Logger   *slog.Logger
	Recorder Recorder
}

// Run executes every non-blank line of r in order. Command failures are
// logged and skipped; only a read error on r is returned.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		_ = d.Execute(ctx, line)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read commands: %w", err)
	}
	return n, nil
}

// Execute runs a single command line and writes its section to the journal.
// The returned error has already been logged.
func (d *Dispatcher) Execute(ctx context.Context, line string) error {
	d.Journal.Section("Processing new Command")

	fields := SplitFields(line)
	kind := fields[0]

	var err error
	switch kind {
	case CmdListFoodStock:
		err = d.listFoodStock(ctx)
	case CmdAnimalVisitation:
		err = d.animalVisitation(fields)
	case CmdFeedAnimal:
		err = d.feedAnimal(ctx, fields)
	default:
		d.Journal.Println("Unknown command.")
		d.recorder().CommandProcessed("unknown", OutcomeUnknown)
		d.logger().Debug("unknown command", "line", line)
		return nil
	}

	if err != nil {
		d.logError(line, err)
		d.recorder().CommandProcessed(kind, OutcomeError)
		d.recorder().CommandFailed(Reason(err))
		d.logger().Warn("command failed", "command", kind, "reason", Reason(err), "error", err)
		return err
	}
	d.recorder().CommandProcessed(kind, OutcomeOK)
	d.logger().Debug("command processed", "command", kind)
	return nil
}

func (d *Dispatcher) logError(line string, err error) {
	if errors.Is(err, ErrInvalidNumber) {
		d.Journal.Println("Error processing command: " + line)
		d.Journal.Println("Error:" + err.Error())
		return
	}
	d.Journal.Println("Error: " + err.Error())
}

func (d *Dispatcher) listFoodStock(ctx context.Context) error {
	snap, err := d.Ledger.Snapshot(ctx)
	if err != nil {
		return err
	}
	d.Journal.Lines(StockReport(snap))
	return nil
}

// StockReport renders a snapshot the way List Food Stock prints it.
func StockReport(snap generic.Snapshot) []string {
	lines := make([]string, 0, len(snap.Levels)+1)
	lines = append(lines, "Listing available Food Stock:")
	for _, level := range snap.Levels {
		lines = append(lines, fmt.Sprintf("%s: %s kgs", level.Category, generic.FormatAmount(level.Amount)))
	}
	return lines
}

func (d *Dispatcher) animalVisitation(fields []string) error {
	if len(fields) < 3 {
		return &MalformedCommandError{Kind: CmdAnimalVisitation, Fields: len(fields), Want: 3}
	}
	person, err := d.Registry.Person(fields[1])
	if err != nil {
		return err
	}
	animalName := fields[2]
	if person.Role == Visitor {
		d.Journal.Println(person.Name + " tried  to register for a visit to " + animalName + ".")
	} else {
		d.Journal.Println(person.Name + " attempts to clean " + animalName + "'s habitat.")
	}

	animal, err := d.Registry.Animal(animalName)
	if err != nil {
		return err
	}
	d.Journal.Lines(person.Visit(animal))
	return nil
}

func (d *Dispatcher) feedAnimal(ctx context.Context, fields []string) error {
	if len(fields) < 4 {
		return &MalformedCommandError{Kind: CmdFeedAnimal, Fields: len(fields), Want: 4}
	}
	person, err := d.Registry.Person(fields[1])
	if err != nil {
		return err
	}
	animal, err := d.Registry.Animal(fields[2])
	if err != nil {
		return err
	}
	meals, err := ParseMealCount(fields[3])
	if err != nil {
		return err
	}

	if person.Role == Visitor {
		d.Journal.Println(person.Name + " tried to feed " + animal.Name)
	}
	lines, err := person.Feed(ctx, animal, meals, d.Ledger)
	d.Journal.Lines(lines)
	return err
}

// ParseMealCount accepts positive integers only.
func ParseMealCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &InvalidNumberError{Field: "meal count", Value: s}
	}
	return n, nil
}

func (d *Dispatcher) logger() *slog.Logger { return discardLogger(d.Logger) }

func (d *Dispatcher) recorder() Recorder { return recorderOrNop(d.Recorder) }
