package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/config"
	"github.com/alexisbeaulieu97/stylekit/internal/ui/render"
)

type showOptions struct {
	SheetPath string
	NoSwatch  bool
}

func newShowCmd(root *rootFlags) *cobra.Command {
	opts := showOptions{}

	cmd := &cobra.Command{
		Use:   "show <sheet-file>",
		Short: "List the properties of a sheet and preview its styles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SheetPath = args[0]
			return runShow(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoSwatch, "no-swatch", false, "Skip the style previews")

	return cmd
}

func runShow(cmd *cobra.Command, root *rootFlags, opts showOptions) error {
	if err := validateLogFormat(root.logFormat); err != nil {
		return newCommandError("show", "checking flags", err, "")
	}
	if err := validateSheetPath(opts.SheetPath); err != nil {
		return newCommandError("show", "locating sheet", err, "Pass the path to a YAML style sheet.")
	}

	app, err := newAppContext(cmd, root, "show")
	if err != nil {
		return err
	}

	doc, err := app.service.Load(app.ctx, opts.SheetPath)
	if err != nil {
		return newCommandError("show", "loading sheet", err, "Run 'stylekit validate' to check the sheet.")
	}

	out := cmd.OutOrStdout()
	r := render.New(out)

	rows := make([]render.PropertyRow, 0, doc.Properties.Len())
	for _, p := range doc.Properties.Properties() {
		value, err := config.RenderValue(p)
		if err != nil {
			return newCommandError("show", fmt.Sprintf("rendering %q", p.Name()), err, "")
		}
		rows = append(rows, render.PropertyRow{Property: p, Value: value})
	}

	fmt.Fprintln(out, r.Title(doc.Name))
	fmt.Fprintln(out, r.Properties(rows))

	if opts.NoSwatch || doc.Library.Len() == 0 {
		return nil
	}

	fmt.Fprintln(out, r.Section("Styles"))
	for _, name := range doc.Library.Names() {
		s, err := doc.Library.Lookup(name)
		if err != nil {
			return newCommandError("show", fmt.Sprintf("looking up style %q", name), err, "")
		}
		fmt.Fprintln(out, r.Swatch(s))
	}
	return nil
}
