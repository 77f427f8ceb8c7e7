package model

import (
	"time"
)

const (
	// StatusSuccess marks a property whose evaluation succeeded.
	StatusSuccess = "success"
	// StatusStatic marks a property without a script; its value was kept.
	StatusStatic = "static"
	// StatusFailed marks a property whose evaluation failed.
	StatusFailed = "failed"
)

// Outcome captures the result of evaluating a single property inside a
// collection.
type Outcome struct {
	Name      string
	Kind      string
	Status    string
	Result    EvaluationResult
	Timestamp time.Time
}

// Failed reports whether the property evaluation was unsuccessful.
func (o Outcome) Failed() bool { return o.Status == StatusFailed }

// Summary aggregates outcomes from one evaluation pass.
type Summary struct {
	Outcomes  []Outcome
	Succeeded int
	Static    int
	Failed    int
	Duration  time.Duration
}

// NewSummary tallies the supplied outcomes.
func NewSummary(outcomes []Outcome, duration time.Duration) *Summary {
	s := &Summary{Outcomes: outcomes, Duration: duration}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusStatic:
			s.Static++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// ExitCode returns 0 when every property evaluated cleanly and 1 otherwise.
func (s *Summary) ExitCode() int {
	if s == nil || s.Failed == 0 {
		return 0
	}
	return 1
}
