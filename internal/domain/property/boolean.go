package property

var booleanSpec = &kindSpec[bool]{
	kind:        KindBoolean,
	noun:        "boolean",
	defaultName: "Boolean Property",
	defaultHint: "Call `Return.Bool(value);` to return the required value.",
	accept: func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	},
	clone: identity[bool],
}

// BooleanProperty is a property holding a flag.
type BooleanProperty struct {
	base[bool]
}

// NewBooleanProperty creates a boolean property initialised to false.
func NewBooleanProperty(opts ...Option) *BooleanProperty {
	return &BooleanProperty{base: newBase(booleanSpec, false, opts)}
}

func (p *BooleanProperty) Value() bool     { return p.value }
func (p *BooleanProperty) SetValue(v bool) { p.value = v }
func (p *BooleanProperty) ToBool() bool    { return p.value }

func (p *BooleanProperty) Clone() Property {
	return &BooleanProperty{base: p.copyBase()}
}
