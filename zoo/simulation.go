package zoo

import (
	"context"
	"io"
	"log/slog"

	"github.com/warp/zoo-engine/generic"
)

// Inputs are the four record streams of a run.
type Inputs struct {
	Animals  io.Reader
	Persons  io.Reader
	Foods    io.Reader
	Commands io.Reader
}

// Simulation wires a Loader and a Dispatcher over one Registry, one
// FoodLedger and one Journal.
type Simulation struct {
	Registry *Registry
	Ledger   *generic.FoodLedger
	Journal  *Journal
	Logger   *slog.Logger
	Recorder Recorder
	Strict   bool
}

func NewSimulation(ledger *generic.FoodLedger, journal *Journal) *Simulation {
	return &Simulation{
		Registry: NewRegistry(),
		Ledger:   ledger,
		Journal:  journal,
		Logger:   discardLogger(nil),
		Recorder: nopRecorder{},
	}
}

// Run loads animals, people and food, then replays the commands.
// It returns early only on a read failure or a strict-mode load error.
func (s *Simulation) Run(ctx context.Context, in Inputs) error {
	loader := &Loader{
		Registry: s.Registry,
		Ledger:   s.Ledger,
		Journal:  s.Journal,
		Logger:   s.Logger,
		Recorder: s.Recorder,
		Strict:   s.Strict,
	}
	if err := loader.LoadAnimals(ctx, in.Animals); err != nil {
		return err
	}
	if err := loader.LoadPersons(ctx, in.Persons); err != nil {
		return err
	}
	if err := loader.LoadFoods(ctx, in.Foods); err != nil {
		return err
	}

	dispatcher := &Dispatcher{
		Registry: s.Registry,
		Ledger:   s.Ledger,
		Journal:  s.Journal,
		Logger:   s.Logger,
		Recorder: s.Recorder,
	}
	n, err := dispatcher.Run(ctx, in.Commands)
	if err != nil {
		return err
	}

	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return err
	}
	for _, level := range snap.Levels {
		kg, _ := level.Amount.Float64()
		recorderOrNop(s.Recorder).StockLevel(string(level.Category), kg)
	}

	discardLogger(s.Logger).Info("run complete",
		"animals", len(s.Registry.Animals()),
		"people", len(s.Registry.People()),
		"commands", n,
		"log_lines", s.Journal.Count())
	return s.Journal.Err()
}

func discardLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
