package script

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
)

const returnKey = "stylekit.return"

var errNoResolver = errors.New("no style library configured")

// returned records the tagged value of the most recent Return.* call on a
// thread.
type returned struct {
	value any
}

// newReturnModule builds the Return module that scripts use to hand a typed
// value back to the property that runs them.
func newReturnModule(resolver StyleResolver) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "Return",
		Members: starlark.StringDict{
			"Style":  starlark.NewBuiltin("Return.Style", returnStyle(resolver)),
			"Color":  starlark.NewBuiltin("Return.Color", returnColor),
			"Number": starlark.NewBuiltin("Return.Number", returnNumber),
			"Text":   starlark.NewBuiltin("Return.Text", returnText),
			"Bool":   starlark.NewBuiltin("Return.Bool", returnBool),
		},
	}
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func record(thread *starlark.Thread, v any) (starlark.Value, error) {
	ret, ok := thread.Local(returnKey).(*returned)
	if !ok {
		return nil, errors.New("return slot missing: Return used outside a property script")
	}
	ret.value = v
	return starlark.None, nil
}

func returnStyle(resolver StyleResolver) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		if resolver == nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), errNoResolver)
		}
		s, err := resolver.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return record(thread, s)
	}
}

// returnColor accepts either a colour string (Return.Color("#ff0000")) or
// channel values (Return.Color(255, 0, 0) / Return.Color(255, 0, 0, 128)).
func returnColor(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	switch len(args) {
	case 1:
		spec, ok := starlark.AsString(args[0])
		if !ok {
			return nil, fmt.Errorf("%s: want color string, got %s", b.Name(), args[0].Type())
		}
		c, err := style.ParseColor(spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return record(thread, c)
	case 3, 4:
		channels := [4]uint8{0, 0, 0, 255}
		for i, arg := range args {
			n, err := starlark.AsInt32(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: channel %d: %w", b.Name(), i, err)
			}
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("%s: channel %d out of range [0, 255]: %d", b.Name(), i, n)
			}
			channels[i] = uint8(n)
		}
		return record(thread, style.Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]})
	default:
		return nil, fmt.Errorf("%s: want 1, 3 or 4 arguments, got %d", b.Name(), len(args))
	}
}

func returnNumber(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	switch v := x.(type) {
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return record(thread, i)
		}
		f, _ := starlark.AsFloat(v)
		return record(thread, f)
	case starlark.Float:
		return record(thread, float64(v))
	default:
		return nil, fmt.Errorf("%s: want int or float, got %s", b.Name(), x.Type())
	}
}

func returnText(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	return record(thread, s)
}

func returnBool(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v bool
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	return record(thread, v)
}
