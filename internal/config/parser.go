package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseSheet loads a style sheet from disk, validates it, and returns the
// resulting document.
func ParseSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stylekiterrors.NewParseError(path, 0, err)
	}
	return ParseSheetBytes(path, data)
}

// ParseSheetBytes decodes and validates an in-memory style sheet; path is
// only used in error messages.
func ParseSheetBytes(path string, data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, stylekiterrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateSheet(&sheet); err != nil {
		return nil, err
	}

	return &sheet, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
