package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	cfgpkg "github.com/alexisbeaulieu97/stylekit/internal/config"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// YAMLLoader reads style sheets from disk and builds them into documents.
type YAMLLoader struct {
	logger ports.Logger
}

// NewYAMLLoader creates a loader. A nil logger disables logging.
func NewYAMLLoader(logger ports.Logger) *YAMLLoader {
	return &YAMLLoader{logger: logger}
}

// Load parses, validates and builds the sheet at path.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*cfgpkg.Document, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	l.logDebug(ctx, "loading style sheet", map[string]interface{}{"path": path})

	sheet, err := cfgpkg.ParseSheet(path)
	if err != nil {
		l.logError(ctx, "failed to parse style sheet", err, map[string]interface{}{"path": path})
		return nil, err
	}

	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	doc, err := cfgpkg.Build(sheet)
	if err != nil {
		l.logError(ctx, "style sheet failed to build", err, map[string]interface{}{"path": path})
		return nil, err
	}

	l.logInfo(ctx, "style sheet loaded", map[string]interface{}{
		"path":       path,
		"styles":     doc.Library.Len(),
		"properties": doc.Properties.Len(),
	})
	return doc, nil
}

// Validate checks that path names a YAML file holding a valid sheet.
func (l *YAMLLoader) Validate(ctx context.Context, path string) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		l.logError(ctx, "style sheet stat failed", err, map[string]interface{}{"path": path})
		return stylekiterrors.NewParseError(path, 0, err)
	}
	if info.IsDir() {
		return stylekiterrors.NewValidationError("path", fmt.Sprintf("%s is a directory", path), nil)
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml":
		l.logDebug(ctx, "validating style sheet", map[string]interface{}{"path": path})
		_, err = l.Load(ctx, path)
	default:
		err = stylekiterrors.NewValidationError("path", fmt.Sprintf("unsupported style sheet extension %q", ext), nil)
	}

	return err
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	return nil
}

func (l *YAMLLoader) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	l.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
