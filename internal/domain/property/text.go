package property

var textSpec = &kindSpec[string]{
	kind:        KindText,
	noun:        "text value",
	defaultName: "Text Property",
	defaultHint: "Call `Return.Text(\"value\");` to return the required value.",
	accept: func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	},
	clone: identity[string],
}

// TextProperty is a property holding a string.
type TextProperty struct {
	base[string]
}

// NewTextProperty creates an empty text property.
func NewTextProperty(opts ...Option) *TextProperty {
	return &TextProperty{base: newBase(textSpec, "", opts)}
}

func (p *TextProperty) Value() string     { return p.value }
func (p *TextProperty) SetValue(v string) { p.value = v }
func (p *TextProperty) ToText() string    { return p.value }

func (p *TextProperty) Clone() Property {
	return &TextProperty{base: p.copyBase()}
}
