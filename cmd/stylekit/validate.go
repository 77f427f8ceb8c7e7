package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <sheet-file>",
		Short: "Parse and validate a style sheet without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLogFormat(root.logFormat); err != nil {
				return newCommandError("validate", "checking flags", err, "")
			}

			app, err := newAppContext(cmd, root, "validate")
			if err != nil {
				return err
			}

			if err := app.service.Validate(app.ctx, args[0]); err != nil {
				return newCommandError("validate", args[0], err, "Fix the reported field and run validate again.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}
