package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/app/sheet"
	infraconfig "github.com/alexisbeaulieu97/stylekit/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
)

// appContext bundles what every command needs: a correlated context, a
// logger writing to the command's stderr and the sheet service.
type appContext struct {
	ctx     context.Context
	logger  ports.Logger
	service *sheet.Service
}

func newAppContext(cmd *cobra.Command, root *rootFlags, operation string) (*appContext, error) {
	level := "warn"
	if root.verbose {
		level = "debug"
	}

	log, err := logging.New(logging.Options{
		Writer:    cmd.ErrOrStderr(),
		Format:    root.logFormat,
		Level:     level,
		Layer:     "cli",
		Component: operation,
	})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Use --log-format text or --log-format json.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())

	return &appContext{
		ctx:     ctx,
		logger:  log,
		service: sheet.NewService(infraconfig.NewYAMLLoader(log), log),
	}, nil
}
