package style

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FillRule selects how the interior of a self-intersecting path is decided.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// LineCap is the shape drawn at open stroke ends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape drawn where stroke segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

var (
	fillRuleNames = []string{"nonzero", "evenodd"}
	lineCapNames  = []string{"butt", "round", "square"}
	lineJoinNames = []string{"miter", "round", "bevel"}
)

func (r FillRule) String() string { return enumName(fillRuleNames, int(r)) }
func (c LineCap) String() string  { return enumName(lineCapNames, int(c)) }
func (j LineJoin) String() string { return enumName(lineJoinNames, int(j)) }

// ParseFillRule parses "nonzero" or "evenodd". Empty input yields NonZero.
func ParseFillRule(s string) (FillRule, error) {
	i, err := parseEnum("fill rule", fillRuleNames, s)
	return FillRule(i), err
}

// ParseLineCap parses "butt", "round" or "square". Empty input yields CapButt.
func ParseLineCap(s string) (LineCap, error) {
	i, err := parseEnum("line cap", lineCapNames, s)
	return LineCap(i), err
}

// ParseLineJoin parses "miter", "round" or "bevel". Empty input yields JoinMiter.
func ParseLineJoin(s string) (LineJoin, error) {
	i, err := parseEnum("line join", lineJoinNames, s)
	return LineJoin(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(what string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	if i := slices.Index(names, s); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", what, s, strings.Join(names, ", "))
}

// Fill describes how shape interiors are painted.
type Fill struct {
	Color   Color
	Rule    FillRule
	Enabled bool
}

// Stroke describes how shape outlines are painted.
type Stroke struct {
	Color      Color
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	Enabled    bool
}

// Font describes text rendering attributes.
type Font struct {
	Family    string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
}

// Shadow is an optional drop shadow.
type Shadow struct {
	Color   Color
	OffsetX float64
	OffsetY float64
	Blur    float64
}

// Style bundles the drawing attributes applied to a shape or text run.
type Style struct {
	Name       string
	Fill       Fill
	Stroke     Stroke
	Font       Font
	Shadow     *Shadow
	Opacity    float64
	Attributes map[string]string
}

// New returns a style with the toolkit defaults: white fill, one unit black
// stroke and a 12pt sans-serif font.
func New(name string) *Style {
	return &Style{
		Name: name,
		Fill: Fill{Color: White, Enabled: true},
		Stroke: Stroke{
			Color:      Black,
			Width:      1,
			MiterLimit: 4,
			Enabled:    true,
		},
		Font:    Font{Family: "sans-serif", Size: 12},
		Opacity: 1,
	}
}

// Clone returns a structurally independent copy: every nested slice, map and
// pointer is freshly allocated. A nil receiver clones to nil.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	out := *s
	if s.Stroke.Dash != nil {
		out.Stroke.Dash = slices.Clone(s.Stroke.Dash)
	}
	if s.Shadow != nil {
		shadow := *s.Shadow
		out.Shadow = &shadow
	}
	if s.Attributes != nil {
		out.Attributes = maps.Clone(s.Attributes)
	}
	return &out
}

// Equal reports whether two styles carry the same attributes. Nil and empty
// dash patterns and attribute maps compare equal.
func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Name != other.Name || s.Fill != other.Fill || s.Font != other.Font || s.Opacity != other.Opacity {
		return false
	}
	a, b := s.Stroke, other.Stroke
	if a.Color != b.Color || a.Width != b.Width || a.Cap != b.Cap || a.Join != b.Join ||
		a.MiterLimit != b.MiterLimit || a.Enabled != b.Enabled || !slices.Equal(a.Dash, b.Dash) {
		return false
	}
	switch {
	case s.Shadow == nil && other.Shadow == nil:
	case s.Shadow == nil || other.Shadow == nil:
		return false
	case *s.Shadow != *other.Shadow:
		return false
	}
	return maps.Equal(s.Attributes, other.Attributes)
}

// SetAttribute stores a free-form attribute, allocating the map on first use.
func (s *Style) SetAttribute(key, value string) {
	if s.Attributes == nil {
		s.Attributes = make(map[string]string)
	}
	s.Attributes[key] = value
}

// String gives a compact one-line summary, mainly for logs.
func (s *Style) String() string {
	if s == nil {
		return "<nil style>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s{", s.Name)
	if s.Fill.Enabled {
		fmt.Fprintf(&b, "fill=%s ", s.Fill.Color)
	}
	if s.Stroke.Enabled {
		fmt.Fprintf(&b, "stroke=%s/%g ", s.Stroke.Color, s.Stroke.Width)
	}
	fmt.Fprintf(&b, "font=%s/%g", s.Font.Family, s.Font.Size)
	b.WriteString("}")
	return b.String()
}
