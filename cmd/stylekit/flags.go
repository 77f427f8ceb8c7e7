package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/logging"
)

func validateSheetPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("sheet file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve sheet path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("sheet file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("sheet path %s is a directory", abs)
	}

	return nil
}

func validateLogFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown log format %q (want %s or %s)", format, logging.FormatText, logging.FormatJSON)
	}
}
