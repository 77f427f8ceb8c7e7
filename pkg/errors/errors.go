package errors

import (
	"fmt"
)

// ParseError represents a style sheet parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures style sheet and collection validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ScriptError reports that a script failed to compile or raised an error
// while running inside the evaluator.
type ScriptError struct {
	Script  string
	Message string
	Err     error
}

// NewScriptError constructs a ScriptError for the named script.
func NewScriptError(script string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ScriptError{Script: script, Message: message, Err: err}
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	if e.Script != "" {
		return fmt.Sprintf("script error [%s]: %s", e.Script, e.Message)
	}
	return fmt.Sprintf("script error: %s", e.Message)
}

// Unwrap exposes the root error.
func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TypeMismatchError indicates a script ran but returned a value of the wrong
// kind for the property that evaluated it.
type TypeMismatchError struct {
	Property string
	Expected string
	Actual   string
	Hint     string
}

// NewTypeMismatchError constructs a TypeMismatchError.
func NewTypeMismatchError(property, expected, actual, hint string) error {
	return &TypeMismatchError{Property: property, Expected: expected, Actual: actual, Hint: hint}
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	if e.Property != "" {
		msg = fmt.Sprintf("type mismatch [%s]: expected %s, got %s", e.Property, e.Expected, e.Actual)
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// ResolveError reports a reference to a named resource, such as a style,
// that does not exist.
type ResolveError struct {
	Kind string
	Name string
}

// NewResolveError constructs a ResolveError.
func NewResolveError(kind, name string) error {
	return &ResolveError{Kind: kind, Name: name}
}

func (e *ResolveError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}
