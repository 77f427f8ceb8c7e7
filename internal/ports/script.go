package ports

import (
	"context"

	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

// ScriptEvaluator executes embedded script source and reports a loosely typed
// result. Implementations are shared between many properties; unless an
// implementation documents otherwise, callers must not run Execute
// concurrently on the same instance.
//
// Failures are reported as data in the returned EvaluationResult, never as
// panics. Whether the produced value fits a property's kind is the property's
// concern, not the evaluator's.
type ScriptEvaluator interface {
	// Execute runs source to completion and returns its result.
	Execute(ctx context.Context, source string) model.EvaluationResult

	// LastResult returns the result of the most recent Execute call, or the
	// zero result if nothing has run yet.
	LastResult() model.EvaluationResult
}

