// file: internal/report/report.go
// version: 1.0.0
// guid: 3f8a1c2d-9b4e-4a7f-8c1d-2e5b6a9f0c3d

package report

import "fmt"

// Outcome classifies what happened to a single item during a run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns the display name for an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the processing outcome for one item. Reason is empty for
// successes and explains skips and failures otherwise.
type Result struct {
	Name    string
	Outcome Outcome
	Reason  string
}

// Success returns a successful result for name.
func Success(name string) Result {
	return Result{Name: name, Outcome: OutcomeSuccess}
}

// Skipped returns a skipped result with a reason.
func Skipped(name, reason string) Result {
	return Result{Name: name, Outcome: OutcomeSkipped, Reason: reason}
}

// Failed returns a failed result with a reason.
func Failed(name, reason string) Result {
	return Result{Name: name, Outcome: OutcomeFailed, Reason: reason}
}

// Failedf returns a failed result with a formatted reason.
func Failedf(name, format string, args ...interface{}) Result {
	return Failed(name, fmt.Sprintf(format, args...))
}

// Stats aggregates results for a single invocation. Counters are scoped to
// one run and never persisted.
type Stats struct {
	Processed int
	Succeeded int
	Skipped   int
	Failed    int

	// BySource counts successes per origin, e.g. cover downloads per
	// provider name.
	BySource map[string]int
}

// Record folds one result into the counters.
func (s *Stats) Record(r Result) {
	s.Processed++
	switch r.Outcome {
	case OutcomeSuccess:
		s.Succeeded++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// RecordSource increments the per-source success counter.
func (s *Stats) RecordSource(source string) {
	if s.BySource == nil {
		s.BySource = make(map[string]int)
	}
	s.BySource[source]++
}
