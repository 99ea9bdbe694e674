/*
main.go - Command-line entry point

PURPOSE:
  Replays one day at the zoo: loads animals, people and food, runs the
  command file and writes the activity log.

USAGE:
  zoo <animals.txt> <persons.txt> <foods.txt> <commands.txt> <output.txt>

STARTUP SEQUENCE:
  1. Check the five positional arguments (usage and exit otherwise)
  2. Load configuration from the environment
  3. Open the four inputs, then create the output
  4. Build the ledger on the configured store
  5. Run the simulation, close the log, write metrics

Any failure to open or create a file aborts before anything is processed.

ENVIRONMENT:
  ZOO_LEDGER_STORE   memory (default) or sqlite
  ZOO_SQLITE_PATH    sqlite database path (default ":memory:")
  ZOO_LOG_LEVEL      debug, info, warn, error (default info)
  ZOO_METRICS_FILE   write Prometheus textfile metrics here when set
  ZOO_STRICT_LOAD    abort on the first malformed load record

SEE ALSO:
  - zoo/simulation.go: the run itself
  - config/config.go: environment settings
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/warp/zoo-engine/config"
	"github.com/warp/zoo-engine/generic"
	"github.com/warp/zoo-engine/generic/store"
	"github.com/warp/zoo-engine/metrics"
	"github.com/warp/zoo-engine/store/sqlite"
	"github.com/warp/zoo-engine/zoo"
)

const usage = "Usage: zoo <animals.txt> <persons.txt> <foods.txt> <commands.txt> <output.txt>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 5 {
		fmt.Fprintln(stdout, usage)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	inputs, closeInputs, err := openInputs(args[:4])
	if err != nil {
		fmt.Fprintf(stdout, "IO Error: %v\n", err)
		return 1
	}
	defer closeInputs()

	out, err := os.Create(args[4])
	if err != nil {
		fmt.Fprintf(stdout, "IO Error: %v\n", err)
		return 1
	}
	journal := zoo.NewJournal(out)

	ledgerStore, closeStore, err := openStore(cfg)
	if err != nil {
		journal.Close()
		logger.Error("ledger store unavailable", "store", cfg.LedgerStore, "error", err)
		return 1
	}
	defer closeStore()

	m := metrics.New()
	sim := zoo.NewSimulation(generic.NewFoodLedger(ledgerStore), journal)
	sim.Logger = logger
	sim.Recorder = m
	sim.Strict = cfg.StrictLoad

	runErr := sim.Run(context.Background(), inputs)
	closeErr := journal.Close()

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics not written", "path", cfg.MetricsFile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run aborted", "error", runErr)
		return 1
	}
	if closeErr != nil {
		fmt.Fprintf(stdout, "IO Error: %v\n", closeErr)
		return 1
	}
	return 0
}

// openInputs opens animals, persons, foods and commands in that order.
func openInputs(paths []string) (zoo.Inputs, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return zoo.Inputs{}, nil, err
		}
		files = append(files, f)
	}
	return zoo.Inputs{
		Animals:  files[0],
		Persons:  files[1],
		Foods:    files[2],
		Commands: files[3],
	}, closeAll, nil
}

func openStore(cfg config.Config) (generic.Store, func(), error) {
	switch cfg.LedgerStore {
	case config.StoreSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewTxMemory(), func() {}, nil
	}
}
