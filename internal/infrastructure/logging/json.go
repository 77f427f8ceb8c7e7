package logging

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/stylekit/internal/ports"
)

// JSONLogger implements ports.Logger using zerolog, one JSON object per line.
type JSONLogger struct {
	base   zerolog.Logger
	fields []interface{}
	layer  string
}

func newJSONLogger(opts Options) (*JSONLogger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	ctx := zerolog.New(opts.Writer).Level(level).With()
	if opts.TimeFormat != "" {
		ctx = ctx.Timestamp()
	}
	if opts.ReportCaller {
		ctx = ctx.Caller()
	}

	return &JSONLogger{base: ctx.Logger(), fields: baseFields(opts), layer: opts.Layer}, nil
}

func (l *JSONLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.DebugLevel, msg, fields...)
}

func (l *JSONLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.InfoLevel, msg, fields...)
}

func (l *JSONLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.WarnLevel, msg, fields...)
}

func (l *JSONLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.ErrorLevel, msg, fields...)
}

// With derives a logger with persistent fields.
func (l *JSONLogger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return Discard()
	}
	return &JSONLogger{base: l.base, fields: appendFields(l.fields, fields), layer: l.layer}
}

func (l *JSONLogger) log(ctx context.Context, level zerolog.Level, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}
	payload := mergeFields(l.fields, fields, contextExtras(ctx, l.layer))
	for i := 0; i+1 < len(payload); i += 2 {
		key := payload[i].(string)
		if err, ok := payload[i+1].(error); ok {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, payload[i+1])
	}
	event.Msg(msg)
}

// Discard returns a logger that drops every entry before fields are merged.
func Discard() ports.Logger {
	return &JSONLogger{base: zerolog.Nop()}
}

var _ ports.Logger = (*JSONLogger)(nil)
