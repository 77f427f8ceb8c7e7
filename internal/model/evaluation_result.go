package model

import "time"

// FailureKind classifies why an evaluation was unsuccessful.
type FailureKind string

const (
	// FailureNone marks a successful evaluation.
	FailureNone FailureKind = ""
	// FailureEvaluator means the script failed to compile or raised an error.
	FailureEvaluator FailureKind = "evaluator_failure"
	// FailureTypeMismatch means the script ran but returned the wrong kind of
	// value for the property that evaluated it.
	FailureTypeMismatch FailureKind = "type_mismatch"
)

// EvaluationResult is the outcome of one script evaluation attempt. It is
// produced by a ScriptEvaluator and may be downgraded by the property that
// requested the evaluation.
type EvaluationResult struct {
	// Successful is true when the script ran and, if a property inspected the
	// value, the value matched the property's kind.
	Successful bool

	// Value is the loosely typed value produced by the script. Properties
	// convert it to their own kind at a single checkpoint.
	Value any

	// ErrorMessage is non-empty iff Successful is false.
	ErrorMessage string

	// Failure classifies unsuccessful results.
	Failure FailureKind

	// Err carries the typed cause for unsuccessful results.
	Err error

	// Duration is the wall time spent executing the script.
	Duration time.Duration
}

// Success builds a successful result holding v.
func Success(v any) EvaluationResult {
	return EvaluationResult{Successful: true, Value: v}
}

// EvaluatorFailed builds an unsuccessful result for a script that could not
// be run to completion.
func EvaluatorFailed(message string, err error) EvaluationResult {
	if message == "" && err != nil {
		message = err.Error()
	}
	return EvaluationResult{
		Successful:   false,
		ErrorMessage: message,
		Failure:      FailureEvaluator,
		Err:          err,
	}
}

// Mismatched returns a copy of r downgraded to a type mismatch. The value is
// kept for diagnostics; r itself is not modified.
func (r EvaluationResult) Mismatched(message string, err error) EvaluationResult {
	r.Successful = false
	r.ErrorMessage = message
	r.Failure = FailureTypeMismatch
	r.Err = err
	return r
}
