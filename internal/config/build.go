package config

import (
	"fmt"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	"github.com/alexisbeaulieu97/stylekit/internal/registry"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// Document is a sheet converted into domain objects.
type Document struct {
	Name       string
	Settings   Settings
	Library    *style.Library
	Properties *registry.Collection
}

// Build converts a validated sheet into a style library and a property
// collection. Static style values are resolved against the library.
func Build(sheet *Sheet) (*Document, error) {
	if sheet == nil {
		return nil, stylekiterrors.NewValidationError("sheet", "sheet is nil", nil)
	}

	library := style.NewLibrary()
	for i, def := range sheet.Styles {
		s, err := ToStyle(def)
		if err != nil {
			return nil, stylekiterrors.NewValidationError(fieldForStyle(i, "name"), err.Error(), err)
		}
		if err := library.Add(s); err != nil {
			return nil, err
		}
	}

	collection := registry.NewCollection()
	for i, def := range sheet.Properties {
		p, err := buildProperty(def, library)
		if err != nil {
			return nil, stylekiterrors.NewValidationError(fieldForProperty(i, "value"), err.Error(), err)
		}
		if err := collection.Add(p); err != nil {
			return nil, err
		}
	}

	return &Document{
		Name:       sheet.Name,
		Settings:   sheet.Settings,
		Library:    library,
		Properties: collection,
	}, nil
}

// ToStyle converts a style definition. Blocks that are absent keep the
// defaults of style.New.
func ToStyle(def StyleDef) (*style.Style, error) {
	s := style.New(def.Name)

	if def.Fill != nil {
		if err := applyFill(&s.Fill, def.Fill); err != nil {
			return nil, err
		}
	}
	if def.Stroke != nil {
		if err := applyStroke(&s.Stroke, def.Stroke); err != nil {
			return nil, err
		}
	}
	if def.Font != nil {
		applyFont(&s.Font, def.Font)
	}
	if def.Shadow != nil {
		shadow := &style.Shadow{
			Color:   style.Black,
			OffsetX: def.Shadow.OffsetX,
			OffsetY: def.Shadow.OffsetY,
			Blur:    def.Shadow.Blur,
		}
		if def.Shadow.Color != "" {
			c, err := style.ParseColor(def.Shadow.Color)
			if err != nil {
				return nil, fmt.Errorf("shadow: %w", err)
			}
			shadow.Color = c
		}
		s.Shadow = shadow
	}
	if def.Opacity != nil {
		s.Opacity = *def.Opacity
	}
	for k, v := range def.Attributes {
		s.SetAttribute(k, v)
	}

	return s, nil
}

func applyFill(fill *style.Fill, def *FillDef) error {
	fill.Enabled = def.Enabled
	if def.Color != "" {
		c, err := style.ParseColor(def.Color)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		fill.Color = c
	}
	rule, err := style.ParseFillRule(def.Rule)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	fill.Rule = rule
	return nil
}

func applyStroke(stroke *style.Stroke, def *StrokeDef) error {
	stroke.Enabled = def.Enabled
	if def.Color != "" {
		c, err := style.ParseColor(def.Color)
		if err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
		stroke.Color = c
	}
	if def.Width != nil {
		stroke.Width = *def.Width
	}
	if def.MiterLimit != nil {
		stroke.MiterLimit = *def.MiterLimit
	}

	lineCap, err := style.ParseLineCap(def.Cap)
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	join, err := style.ParseLineJoin(def.Join)
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	stroke.Cap = lineCap
	stroke.Join = join
	if len(def.Dash) > 0 {
		stroke.Dash = append([]float64(nil), def.Dash...)
	}
	return nil
}

func applyFont(font *style.Font, def *FontDef) {
	if def.Family != "" {
		font.Family = def.Family
	}
	if def.Size != nil {
		font.Size = *def.Size
	}
	font.Bold = def.Bold
	font.Italic = def.Italic
	font.Underline = def.Underline
}

func buildProperty(def PropertyDef, library *style.Library) (property.Property, error) {
	kind, err := property.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	p, err := property.New(kind,
		property.WithName(def.Name),
		property.WithUsage(def.Usage),
		property.WithScript(def.Script),
		property.WithReturnHint(def.Hint),
	)
	if err != nil {
		return nil, err
	}

	if !def.HasValue() {
		return p, nil
	}

	value, err := decodeValue(def)
	if err != nil {
		return nil, err
	}

	switch typed := p.(type) {
	case *property.StyleProperty:
		s, err := library.Lookup(value.(string))
		if err != nil {
			return nil, err
		}
		typed.SetValue(s)
	case *property.ColorProperty:
		typed.SetValue(value.(style.Color))
	case *property.NumberProperty:
		typed.SetValue(value.(float64))
	case *property.TextProperty:
		typed.SetValue(value.(string))
	case *property.BooleanProperty:
		typed.SetValue(value.(bool))
	}

	return p, nil
}

// decodeValue decodes a static value into the Go type its kind expects:
// a style name, a style.Color, a float64, a string or a bool.
func decodeValue(def PropertyDef) (any, error) {
	switch def.Kind {
	case "style", "text":
		var s string
		if err := def.Value.Decode(&s); err != nil {
			return nil, fmt.Errorf("%s value: %w", def.Kind, err)
		}
		return s, nil
	case "color":
		var s string
		if err := def.Value.Decode(&s); err != nil {
			return nil, fmt.Errorf("color value: %w", err)
		}
		return style.ParseColor(s)
	case "number":
		var f float64
		if err := def.Value.Decode(&f); err != nil {
			return nil, fmt.Errorf("number value: %w", err)
		}
		return f, nil
	case "boolean":
		var b bool
		if err := def.Value.Decode(&b); err != nil {
			return nil, fmt.Errorf("boolean value: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown property kind %q", def.Kind)
	}
}
