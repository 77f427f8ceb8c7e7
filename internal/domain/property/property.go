package property

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
)

// Kind identifies the type of value a property holds.
type Kind string

const (
	KindStyle   Kind = "style"
	KindColor   Kind = "color"
	KindNumber  Kind = "number"
	KindText    Kind = "text"
	KindBoolean Kind = "boolean"
)

var validKinds = []Kind{KindStyle, KindColor, KindNumber, KindText, KindBoolean}

// Kinds lists every supported kind.
func Kinds() []Kind {
	return append([]Kind(nil), validKinds...)
}

// ParseKind converts a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range validKinds {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown property kind %q (want one of %v)", s, validKinds)
}

// Property is a named value slot whose value may be computed by an embedded
// script. A property is either static (no script) or script driven; setting
// a non-empty script switches it to script driven and clearing the script
// switches it back.
//
// Properties carry no synchronization. Owners that share a property between
// goroutines must lock around it.
type Property interface {
	Name() string
	SetName(name string)
	Usage() string
	SetUsage(usage string)
	Kind() Kind

	Script() string
	SetScript(source string)
	IsScriptDriven() bool

	// ReturnHint is the corrective text appended to type mismatch messages.
	ReturnHint() string
	SetReturnHint(hint string)

	// Evaluate recomputes the value of a script driven property. Static
	// properties return the evaluator's last result untouched. The value is
	// only replaced when the script succeeds and returns the right kind.
	Evaluate(ctx context.Context, evaluator ports.ScriptEvaluator) model.EvaluationResult

	// Clone returns an independent copy of the same concrete kind.
	Clone() Property

	// Raw returns the current value without conversion.
	Raw() any
}

// Option customises a property at construction time.
type Option func(*meta)

// WithName sets the display label. Empty names are ignored.
func WithName(name string) Option {
	return func(m *meta) { m.setName(name) }
}

// WithUsage sets the usage annotation.
func WithUsage(usage string) Option {
	return func(m *meta) { m.usage = usage }
}

// WithScript attaches script source.
func WithScript(source string) Option {
	return func(m *meta) { m.script = source }
}

// WithReturnHint overrides the kind's default corrective message.
func WithReturnHint(hint string) Option {
	return func(m *meta) { m.setHint(hint) }
}

// New builds an empty property of the given kind.
func New(kind Kind, opts ...Option) (Property, error) {
	switch kind {
	case KindStyle:
		return NewStyleProperty(opts...), nil
	case KindColor:
		return NewColorProperty(opts...), nil
	case KindNumber:
		return NewNumberProperty(opts...), nil
	case KindText:
		return NewTextProperty(opts...), nil
	case KindBoolean:
		return NewBooleanProperty(opts...), nil
	default:
		return nil, fmt.Errorf("unknown property kind %q", kind)
	}
}
