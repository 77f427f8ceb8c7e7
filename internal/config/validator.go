package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern       = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	propertyNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("property_name", func(fl validator.FieldLevel) bool {
			return propertyNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := style.ParseColor(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateSheet performs schema and cross-field validation on a sheet:
// unique style and property names, known style references and static values
// that match their property kind.
func ValidateSheet(sheet *Sheet) error {
	if sheet == nil {
		return stylekiterrors.NewValidationError("sheet", "sheet is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(sheet); err != nil {
		return convertValidationError(err)
	}

	styles := make(map[string]struct{}, len(sheet.Styles))
	for i, def := range sheet.Styles {
		if _, exists := styles[def.Name]; exists {
			return stylekiterrors.NewValidationError(fieldForStyle(i, "name"), fmt.Sprintf("duplicate style name %q", def.Name), nil)
		}
		styles[def.Name] = struct{}{}
	}

	names := make(map[string]struct{}, len(sheet.Properties))
	for i, def := range sheet.Properties {
		if _, exists := names[def.Name]; exists {
			return stylekiterrors.NewValidationError(fieldForProperty(i, "name"), fmt.Sprintf("duplicate property name %q", def.Name), nil)
		}
		names[def.Name] = struct{}{}

		if err := validateProperty(def, i, styles); err != nil {
			return err
		}
	}

	return nil
}

func validateProperty(def PropertyDef, index int, styles map[string]struct{}) error {
	if !def.HasValue() {
		return nil
	}

	value, err := decodeValue(def)
	if err != nil {
		return stylekiterrors.NewValidationError(fieldForProperty(index, "value"), err.Error(), err)
	}

	if name, ok := value.(string); ok && def.Kind == "style" {
		if _, known := styles[name]; !known {
			return stylekiterrors.NewValidationError(fieldForProperty(index, "value"), fmt.Sprintf("references unknown style %q", name), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return stylekiterrors.NewValidationError(field, msg, err)
	}

	return stylekiterrors.NewValidationError("sheet", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForStyle(index int, field string) string {
	return fmt.Sprintf("styles[%d].%s", index, field)
}

func fieldForProperty(index int, field string) string {
	return fmt.Sprintf("properties[%d].%s", index, field)
}
