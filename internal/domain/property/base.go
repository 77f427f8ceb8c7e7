package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

var errNoEvaluator = errors.New("no script evaluator configured")

// meta holds the kind-independent fields shared by every property.
type meta struct {
	name   string
	usage  string
	script string
	hint   string
}

func (m *meta) setName(name string) {
	if strings.TrimSpace(name) != "" {
		m.name = name
	}
}

func (m *meta) setHint(hint string) {
	if strings.TrimSpace(hint) != "" {
		m.hint = hint
	}
}

// kindSpec describes how one kind recognises, copies and describes values.
type kindSpec[T any] struct {
	kind        Kind
	noun        string
	defaultName string
	defaultHint string
	// accept is the only place an untyped script value is converted into T.
	accept func(v any) (T, bool)
	clone  func(v T) T
}

// base implements Property for any value type; concrete kinds embed it and
// add typed accessors.
type base[T any] struct {
	meta
	spec  *kindSpec[T]
	value T
}

func newBase[T any](spec *kindSpec[T], value T, opts []Option) base[T] {
	b := base[T]{
		meta:  meta{name: spec.defaultName, hint: spec.defaultHint},
		spec:  spec,
		value: value,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&b.meta)
		}
	}
	return b
}

func (b *base[T]) Name() string          { return b.name }
func (b *base[T]) SetName(name string)   { b.setName(name) }
func (b *base[T]) Usage() string         { return b.usage }
func (b *base[T]) SetUsage(usage string) { b.usage = usage }
func (b *base[T]) Kind() Kind            { return b.spec.kind }
func (b *base[T]) Script() string        { return b.script }
func (b *base[T]) SetScript(src string)  { b.script = src }
func (b *base[T]) ReturnHint() string    { return b.hint }
func (b *base[T]) SetReturnHint(h string) {
	b.setHint(h)
}

func (b *base[T]) IsScriptDriven() bool {
	return strings.TrimSpace(b.script) != ""
}

func (b *base[T]) Raw() any { return b.value }

func (b *base[T]) Evaluate(ctx context.Context, evaluator ports.ScriptEvaluator) model.EvaluationResult {
	if !b.IsScriptDriven() {
		if evaluator == nil {
			return model.EvaluationResult{}
		}
		return evaluator.LastResult()
	}
	if evaluator == nil {
		return model.EvaluatorFailed("", stylekiterrors.NewScriptError(b.name, errNoEvaluator))
	}

	result := evaluator.Execute(ctx, b.script)
	if !result.Successful {
		return result
	}

	v, ok := b.spec.accept(result.Value)
	if !ok {
		msg := fmt.Sprintf("Error: Script did not return a %s. %s", b.spec.noun, b.hint)
		err := stylekiterrors.NewTypeMismatchError(b.name, string(b.spec.kind), describe(result.Value), b.hint)
		return result.Mismatched(msg, err)
	}

	b.value = b.spec.clone(v)
	return result
}

// copyBase duplicates the shared fields and deep-copies the value.
func (b *base[T]) copyBase() base[T] {
	return base[T]{
		meta:  b.meta,
		spec:  b.spec,
		value: b.spec.clone(b.value),
	}
}

func identity[T any](v T) T { return v }

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}

var (
	_ Property = (*StyleProperty)(nil)
	_ Property = (*ColorProperty)(nil)
	_ Property = (*NumberProperty)(nil)
	_ Property = (*TextProperty)(nil)
	_ Property = (*BooleanProperty)(nil)
)
