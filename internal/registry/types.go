package registry

import (
	"time"

	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

const resultCacheVersion = "1.0"

// CachedResult is the persisted status of one property's last evaluation.
type CachedResult struct {
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Successful  bool      `json:"successful"`
	Message     string    `json:"message,omitempty"`
	Failure     string    `json:"failure,omitempty"`
	Value       string    `json:"value,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// ResultCacheFile is the on-disk layout of a ResultCache.
type ResultCacheFile struct {
	Version string                  `json:"version"`
	Sheet   string                  `json:"sheet,omitempty"`
	Results map[string]CachedResult `json:"results"`
}

// CachedResultFromOutcome converts an outcome for persistence. value is the
// rendered property value after evaluation.
func CachedResultFromOutcome(o model.Outcome, value string) CachedResult {
	return CachedResult{
		Kind:        o.Kind,
		Status:      o.Status,
		Successful:  o.Result.Successful,
		Message:     o.Result.ErrorMessage,
		Failure:     string(o.Result.Failure),
		Value:       value,
		DurationMs:  o.Result.Duration.Milliseconds(),
		EvaluatedAt: o.Timestamp,
	}
}
