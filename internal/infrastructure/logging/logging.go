package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexisbeaulieu97/stylekit/internal/ports"
)

const (
	// FormatText writes human readable lines through charmbracelet/log.
	FormatText = "text"
	// FormatJSON writes one JSON object per line through zerolog.
	FormatJSON = "json"
)

// Options configures a logger adapter.
type Options struct {
	Writer io.Writer
	Format string
	Level  string
	// TimeFormat enables timestamps when non-empty.
	TimeFormat   string
	ReportCaller bool
	Layer        string
	Component    string
	Fields       map[string]interface{}
}

// New returns the adapter selected by opts.Format; text is the default.
func New(opts Options) (ports.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Layer == "" {
		opts.Layer = "infrastructure"
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return newConsoleLogger(opts)
	case FormatJSON:
		return newJSONLogger(opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", opts.Format, FormatText, FormatJSON)
	}
}

func baseFields(opts Options) []interface{} {
	fields := mapToFields(opts.Fields)
	if opts.Component != "" {
		fields = append(fields, "component", opts.Component)
	}
	return fields
}
