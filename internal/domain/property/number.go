package property

var numberSpec = &kindSpec[float64]{
	kind:        KindNumber,
	noun:        "number",
	defaultName: "Number Property",
	defaultHint: "Call `Return.Number(value);` to return the required value.",
	accept:      toFloat,
	clone:       identity[float64],
}

// NumberProperty is a property holding a floating point number.
type NumberProperty struct {
	base[float64]
}

// NewNumberProperty creates a number property initialised to zero.
func NewNumberProperty(opts ...Option) *NumberProperty {
	return &NumberProperty{base: newBase(numberSpec, 0, opts)}
}

func (p *NumberProperty) Value() float64     { return p.value }
func (p *NumberProperty) SetValue(v float64) { p.value = v }
func (p *NumberProperty) ToNumber() float64  { return p.value }

func (p *NumberProperty) Clone() Property {
	return &NumberProperty{base: p.copyBase()}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
