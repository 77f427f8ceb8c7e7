package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sheet is the full style sheet document: a style library plus the
// properties that use it.
type Sheet struct {
	Version     string        `yaml:"version" validate:"required,semver"`
	Name        string        `yaml:"name" validate:"required,min=1,max=100"`
	Description string        `yaml:"description,omitempty"`
	Settings    Settings      `yaml:"settings,omitempty"`
	Styles      []StyleDef    `yaml:"styles,omitempty" validate:"omitempty,dive"`
	Properties  []PropertyDef `yaml:"properties" validate:"required,min=1,dive"`
}

// Settings holds evaluator parameters.
type Settings struct {
	MaxSteps  uint64        `yaml:"max_steps,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	CacheSize int           `yaml:"cache_size,omitempty" validate:"omitempty,min=-1,max=65536"`
	FailFast  bool          `yaml:"fail_fast,omitempty"`
}

// StyleDef declares a named style.
type StyleDef struct {
	Name       string            `yaml:"name" validate:"required,property_name,max=100"`
	Fill       *FillDef          `yaml:"fill,omitempty"`
	Stroke     *StrokeDef        `yaml:"stroke,omitempty"`
	Font       *FontDef          `yaml:"font,omitempty"`
	Shadow     *ShadowDef        `yaml:"shadow,omitempty"`
	Opacity    *float64          `yaml:"opacity,omitempty" validate:"omitempty,min=0,max=1"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// FillDef configures a style's fill. Enabled defaults to true when the block
// is present.
type FillDef struct {
	Color   string `yaml:"color,omitempty" validate:"omitempty,color"`
	Rule    string `yaml:"rule,omitempty" validate:"omitempty,oneof=nonzero evenodd"`
	Enabled bool   `yaml:"enabled,omitempty"`
}

// UnmarshalYAML applies the enabled default for fills.
func (f *FillDef) UnmarshalYAML(value *yaml.Node) error {
	type rawFill FillDef
	var temp rawFill
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*f = FillDef(temp)
	if !hasYAMLKey(value, "enabled") {
		f.Enabled = true
	}
	return nil
}

// StrokeDef configures a style's outline. Enabled defaults to true when the
// block is present.
type StrokeDef struct {
	Color      string    `yaml:"color,omitempty" validate:"omitempty,color"`
	Width      *float64  `yaml:"width,omitempty" validate:"omitempty,min=0"`
	Cap        string    `yaml:"cap,omitempty" validate:"omitempty,oneof=butt round square"`
	Join       string    `yaml:"join,omitempty" validate:"omitempty,oneof=miter round bevel"`
	MiterLimit *float64  `yaml:"miter_limit,omitempty" validate:"omitempty,min=1"`
	Dash       []float64 `yaml:"dash,omitempty" validate:"omitempty,dive,min=0"`
	Enabled    bool      `yaml:"enabled,omitempty"`
}

// UnmarshalYAML applies the enabled default for strokes.
func (s *StrokeDef) UnmarshalYAML(value *yaml.Node) error {
	type rawStroke StrokeDef
	var temp rawStroke
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*s = StrokeDef(temp)
	if !hasYAMLKey(value, "enabled") {
		s.Enabled = true
	}
	return nil
}

// FontDef configures text attributes.
type FontDef struct {
	Family    string   `yaml:"family,omitempty" validate:"omitempty,max=200"`
	Size      *float64 `yaml:"size,omitempty" validate:"omitempty,gt=0,max=1000"`
	Bold      bool     `yaml:"bold,omitempty"`
	Italic    bool     `yaml:"italic,omitempty"`
	Underline bool     `yaml:"underline,omitempty"`
}

// ShadowDef configures a drop shadow.
type ShadowDef struct {
	Color   string  `yaml:"color,omitempty" validate:"omitempty,color"`
	OffsetX float64 `yaml:"offset_x,omitempty" validate:"min=-1000,max=1000"`
	OffsetY float64 `yaml:"offset_y,omitempty" validate:"min=-1000,max=1000"`
	Blur    float64 `yaml:"blur,omitempty" validate:"omitempty,min=0"`
}

// PropertyDef declares one property. Value is decoded according to Kind:
// a style name for style, a colour string for color, a number, a string or
// a boolean.
type PropertyDef struct {
	Name   string    `yaml:"name" validate:"required,property_name,max=100"`
	Usage  string    `yaml:"usage,omitempty" validate:"omitempty,max=500"`
	Kind   string    `yaml:"kind" validate:"required,oneof=style color number text boolean"`
	Value  yaml.Node `yaml:"value,omitempty"`
	Script string    `yaml:"script,omitempty"`
	Hint   string    `yaml:"hint,omitempty"`
}

// HasValue reports whether a static value was declared.
func (p PropertyDef) HasValue() bool {
	return p.Value.Kind != 0
}

func hasYAMLKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if strings.EqualFold(k.Value, key) {
			return true
		}
	}
	return false
}
