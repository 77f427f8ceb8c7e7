package config

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
)

// FromStyle converts a style back into its sheet definition. Every block is
// written out so two renderings can be compared line by line.
func FromStyle(s *style.Style) StyleDef {
	if s == nil {
		return StyleDef{}
	}

	width := s.Stroke.Width
	miter := s.Stroke.MiterLimit
	size := s.Font.Size
	opacity := s.Opacity

	def := StyleDef{
		Name: s.Name,
		Fill: &FillDef{
			Color:   s.Fill.Color.Hex(),
			Rule:    s.Fill.Rule.String(),
			Enabled: s.Fill.Enabled,
		},
		Stroke: &StrokeDef{
			Color:      s.Stroke.Color.Hex(),
			Width:      &width,
			Cap:        s.Stroke.Cap.String(),
			Join:       s.Stroke.Join.String(),
			MiterLimit: &miter,
			Dash:       append([]float64(nil), s.Stroke.Dash...),
			Enabled:    s.Stroke.Enabled,
		},
		Font: &FontDef{
			Family:    s.Font.Family,
			Size:      &size,
			Bold:      s.Font.Bold,
			Italic:    s.Font.Italic,
			Underline: s.Font.Underline,
		},
		Opacity: &opacity,
	}
	if s.Shadow != nil {
		def.Shadow = &ShadowDef{
			Color:   s.Shadow.Color.Hex(),
			OffsetX: s.Shadow.OffsetX,
			OffsetY: s.Shadow.OffsetY,
			Blur:    s.Shadow.Blur,
		}
	}
	if len(s.Attributes) > 0 {
		def.Attributes = make(map[string]string, len(s.Attributes))
		for k, v := range s.Attributes {
			def.Attributes[k] = v
		}
	}
	return def
}

// RenderValue renders the current value of p as YAML text. Styles are
// rendered as full definitions; scalar kinds as a single line.
func RenderValue(p property.Property) (string, error) {
	switch typed := p.(type) {
	case *property.StyleProperty:
		data, err := yaml.Marshal(renderedStyle(FromStyle(typed.ToStyle())))
		if err != nil {
			return "", err
		}
		return string(data), nil
	case *property.ColorProperty:
		return typed.ToColor().Hex() + "\n", nil
	case *property.NumberProperty:
		return strconv.FormatFloat(typed.ToNumber(), 'g', -1, 64) + "\n", nil
	case *property.TextProperty:
		return typed.ToText() + "\n", nil
	case *property.BooleanProperty:
		return strconv.FormatBool(typed.ToBool()) + "\n", nil
	default:
		data, err := yaml.Marshal(p.Raw())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// renderedStyle marshals enabled flags explicitly; the sheet form omits them
// because they default to true on input.
type renderedStyle StyleDef

func (r renderedStyle) MarshalYAML() (any, error) {
	type fill struct {
		Color   string `yaml:"color"`
		Rule    string `yaml:"rule"`
		Enabled bool   `yaml:"enabled"`
	}
	type stroke struct {
		Color      string    `yaml:"color"`
		Width      float64   `yaml:"width"`
		Cap        string    `yaml:"cap"`
		Join       string    `yaml:"join"`
		MiterLimit float64   `yaml:"miter_limit"`
		Dash       []float64 `yaml:"dash,omitempty,flow"`
		Enabled    bool      `yaml:"enabled"`
	}
	type out struct {
		Name       string            `yaml:"name"`
		Fill       fill              `yaml:"fill"`
		Stroke     stroke            `yaml:"stroke"`
		Font       *FontDef          `yaml:"font"`
		Shadow     *ShadowDef        `yaml:"shadow,omitempty"`
		Opacity    float64           `yaml:"opacity"`
		Attributes map[string]string `yaml:"attributes,omitempty"`
	}

	o := out{
		Name:       r.Name,
		Font:       r.Font,
		Shadow:     r.Shadow,
		Attributes: r.Attributes,
	}
	if r.Fill != nil {
		o.Fill = fill{Color: r.Fill.Color, Rule: r.Fill.Rule, Enabled: r.Fill.Enabled}
	}
	if r.Stroke != nil {
		o.Stroke = stroke{
			Color:   r.Stroke.Color,
			Cap:     r.Stroke.Cap,
			Join:    r.Stroke.Join,
			Dash:    r.Stroke.Dash,
			Enabled: r.Stroke.Enabled,
		}
		if r.Stroke.Width != nil {
			o.Stroke.Width = *r.Stroke.Width
		}
		if r.Stroke.MiterLimit != nil {
			o.Stroke.MiterLimit = *r.Stroke.MiterLimit
		}
	}
	if r.Opacity != nil {
		o.Opacity = *r.Opacity
	}
	return o, nil
}
