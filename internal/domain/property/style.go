package property

import (
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
)

var styleSpec = &kindSpec[*style.Style]{
	kind:        KindStyle,
	noun:        "named style",
	defaultName: "Style Property",
	defaultHint: "Call `Return.Style(\"name\");` to return the required value.",
	accept: func(v any) (*style.Style, bool) {
		switch s := v.(type) {
		case *style.Style:
			return s, s != nil
		case style.Style:
			return &s, true
		default:
			return nil, false
		}
	},
	clone: (*style.Style).Clone,
}

// StyleProperty is a property holding a drawing style.
type StyleProperty struct {
	base[*style.Style]
}

// NewStyleProperty creates a style property holding a default style.
func NewStyleProperty(opts ...Option) *StyleProperty {
	return &StyleProperty{base: newBase(styleSpec, style.New(""), opts)}
}

// Value returns the current style.
func (p *StyleProperty) Value() *style.Style { return p.value }

// SetValue assigns s directly. A nil style resets to the default style.
func (p *StyleProperty) SetValue(s *style.Style) {
	if s == nil {
		s = style.New("")
	}
	p.value = s
}

// ToStyle returns the current style unmodified.
func (p *StyleProperty) ToStyle() *style.Style { return p.value }

// Clone returns an independent copy, including a deep copy of the style.
func (p *StyleProperty) Clone() Property {
	return &StyleProperty{base: p.copyBase()}
}
