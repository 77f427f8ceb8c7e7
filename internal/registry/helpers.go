package registry

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	sheetIDMaxLength = 64
	stateFileSuffix  = ".state.json"
)

var nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)

// SheetID converts a sheet path into a sanitized identifier used to name its
// state file.
func SheetID(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	id := SanitizeFilename(base)
	if id == "" {
		id = "sheet-" + uuid.NewString()[:8]
	}

	return id
}

// StatePath returns the default state file for a sheet: next to the sheet,
// named after its identifier.
func StatePath(sheetPath string) string {
	return filepath.Join(filepath.Dir(sheetPath), "."+SheetID(sheetPath)+stateFileSuffix)
}

// SanitizeFilename normalizes a filename into an identifier-friendly format.
func SanitizeFilename(name string) string {
	lowered := strings.ToLower(name)
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	sanitized = strings.Trim(sanitized, "-")

	if len(sanitized) > sheetIDMaxLength {
		sanitized = strings.Trim(sanitized[:sheetIDMaxLength], "-")
	}

	return sanitized
}
