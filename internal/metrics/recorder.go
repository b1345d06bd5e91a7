package metrics

import "time"

// ResultLabel enumerates run result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// WriteLabel classifies what happened to one output file.
type WriteLabel string

const (
	WriteWritten   WriteLabel = "written"
	WriteUnchanged WriteLabel = "unchanged"
	WriteRemoved   WriteLabel = "removed"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	// IncDirective counts one directive resolution for a language.
	IncDirective(language, outcome string)
	IncDocument(language string, result WriteLabel)
	IncExport(language, kind string)
	ObserveRunDuration(command string, d time.Duration)
	IncRunOutcome(command string, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDirective(string, string)              {}
func (NoopRecorder) IncDocument(string, WriteLabel)           {}
func (NoopRecorder) IncExport(string, string)                 {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string, ResultLabel)        {}
