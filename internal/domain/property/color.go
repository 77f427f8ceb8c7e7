package property

import (
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
)

var colorSpec = &kindSpec[style.Color]{
	kind:        KindColor,
	noun:        "color",
	defaultName: "Color Property",
	defaultHint: "Call `Return.Color(\"#rrggbb\");` to return the required value.",
	accept: func(v any) (style.Color, bool) {
		switch c := v.(type) {
		case style.Color:
			return c, true
		case *style.Color:
			if c == nil {
				return style.Color{}, false
			}
			return *c, true
		default:
			return style.Color{}, false
		}
	},
	clone: identity[style.Color],
}

// ColorProperty is a property holding an RGBA colour.
type ColorProperty struct {
	base[style.Color]
}

// NewColorProperty creates a colour property initialised to black.
func NewColorProperty(opts ...Option) *ColorProperty {
	return &ColorProperty{base: newBase(colorSpec, style.Black, opts)}
}

func (p *ColorProperty) Value() style.Color     { return p.value }
func (p *ColorProperty) SetValue(c style.Color) { p.value = c }
func (p *ColorProperty) ToColor() style.Color   { return p.value }

func (p *ColorProperty) Clone() Property {
	return &ColorProperty{base: p.copyBase()}
}
