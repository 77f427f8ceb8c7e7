package logging

import (
	"context"
	"fmt"
	"strings"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/stylekit/internal/ports"
)

// ConsoleLogger implements ports.Logger using charmbracelet/log.
type ConsoleLogger struct {
	logger *cblog.Logger
	fields []interface{}
	layer  string
}

func newConsoleLogger(opts Options) (*ConsoleLogger, error) {
	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	base := cblog.NewWithOptions(opts.Writer, cblog.Options{
		Level:           level,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: opts.TimeFormat != "",
		ReportCaller:    opts.ReportCaller,
	})

	return &ConsoleLogger{logger: base, fields: baseFields(opts), layer: opts.Layer}, nil
}

func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.DebugLevel, msg, fields...)
}

func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.InfoLevel, msg, fields...)
}

func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.WarnLevel, msg, fields...)
}

func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, cblog.ErrorLevel, msg, fields...)
}

// With derives a logger with persistent fields.
func (l *ConsoleLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return Discard()
	}
	return &ConsoleLogger{logger: l.logger, fields: appendFields(l.fields, fields), layer: l.layer}
}

func (l *ConsoleLogger) log(ctx context.Context, level cblog.Level, msg string, fields ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	payload := mergeFields(l.fields, fields, contextExtras(ctx, l.layer))
	l.logger.Log(level, msg, payload...)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
