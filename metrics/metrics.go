// Package metrics counts what a zoo run did, on a private Prometheus
// registry that can be dumped as a node-exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements zoo.Recorder.
type Metrics struct {
	Registry *prometheus.Registry

	CommandsTotal  *prometheus.CounterVec
	CommandErrors  *prometheus.CounterVec
	RecordsLoaded  *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec
	FoodStock      *prometheus.GaugeVec
}

// New creates a Metrics instance with all zoo metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zoo_commands_total",
			Help: "Commands processed, by kind and outcome",
		}, []string{"kind", "outcome"}),
		CommandErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zoo_command_errors_total",
			Help: "Failed commands, by failure reason",
		}, []string{"reason"}),
		RecordsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zoo_records_loaded_total",
			Help: "Load records accepted, by record kind",
		}, []string{"kind"}),
		RecordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zoo_records_skipped_total",
			Help: "Load records skipped, by record kind",
		}, []string{"kind"}),
		FoodStock: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zoo_food_stock_kg",
			Help: "Food on hand at the end of the run, in kilograms",
		}, []string{"category"}),
	}
}

func (m *Metrics) CommandProcessed(kind, outcome string) {
	m.CommandsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) CommandFailed(reason string) {
	m.CommandErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordLoaded(kind string) {
	m.RecordsLoaded.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordSkipped(kind string) {
	m.RecordsSkipped.WithLabelValues(kind).Inc()
}

func (m *Metrics) StockLevel(category string, kg float64) {
	m.FoodStock.WithLabelValues(category).Set(kg)
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
