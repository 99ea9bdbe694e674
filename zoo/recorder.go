package zoo

// Recorder receives counters about a run. metrics.Metrics implements it.
type Recorder interface {
	CommandProcessed(kind, outcome string)
	CommandFailed(reason string)
	RecordLoaded(kind string)
	RecordSkipped(kind string)
	StockLevel(category string, kg float64)
}

// Command outcomes reported to a Recorder.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeUnknown = "unknown"
)

type nopRecorder struct{}

func (nopRecorder) CommandProcessed(string, string) {}
func (nopRecorder) CommandFailed(string)            {}
func (nopRecorder) RecordLoaded(string)             {}
func (nopRecorder) RecordSkipped(string)            {}
func (nopRecorder) StockLevel(string, float64)      {}
