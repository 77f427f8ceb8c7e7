package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stylekit/internal/app/sheet"
	"github.com/alexisbeaulieu97/stylekit/internal/registry"
	"github.com/alexisbeaulieu97/stylekit/internal/ui/render"
)

type evaluateOptions struct {
	SheetPath string
	JSON      bool
	Diff      bool
	StatePath string
	SaveState bool
	FailFast  bool
	MaxSteps  uint64
	Timeout   time.Duration
}

var evaluateCmdRunner = runEvaluate

func newEvaluateCmd(root *rootFlags) *cobra.Command {
	opts := evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate <sheet-file>",
		Short: "Evaluate every property in a style sheet",
		Long: `Evaluate runs the script of every script-driven property through a shared
evaluator and reports the outcome. Static properties keep their value.
Returns exit code 0 when every script succeeded, 1 when any property failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SheetPath = args[0]
			return evaluateCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Show a unified diff of every value changed by evaluation")
	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Persist results to this state file")
	cmd.Flags().BoolVar(&opts.SaveState, "save-state", false, "Persist results next to the sheet")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first failed property")
	cmd.Flags().Uint64Var(&opts.MaxSteps, "max-steps", 0, "Override the per-script execution step budget")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Override the per-script timeout (e.g. 2s)")

	return cmd
}

func runEvaluate(cmd *cobra.Command, root *rootFlags, opts evaluateOptions) error {
	if err := validateLogFormat(root.logFormat); err != nil {
		return newCommandError("evaluate", "checking flags", err, "")
	}
	if err := validateSheetPath(opts.SheetPath); err != nil {
		return newCommandError("evaluate", "locating sheet", err, "Pass the path to a YAML style sheet.")
	}

	app, err := newAppContext(cmd, root, "evaluate")
	if err != nil {
		return err
	}

	statePath := opts.StatePath
	if statePath == "" && opts.SaveState {
		statePath = registry.StatePath(opts.SheetPath)
	}

	outcome, err := app.service.Evaluate(app.ctx, sheet.EvaluateRequest{
		Path:      opts.SheetPath,
		StatePath: statePath,
		FailFast:  opts.FailFast,
		MaxSteps:  opts.MaxSteps,
		Timeout:   opts.Timeout,
	})
	if err != nil {
		return newCommandError("evaluate", "evaluating sheet", err, "Run 'stylekit validate' to check the sheet.")
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		if err := printEvaluateJSON(out, opts.SheetPath, outcome, opts.Diff); err != nil {
			return err
		}
	} else {
		printEvaluateTable(out, outcome, opts.Diff)
	}

	if code := outcome.Summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func printEvaluateTable(w io.Writer, outcome *sheet.EvaluateOutcome, showDiff bool) {
	r := render.New(w)

	fmt.Fprintln(w, r.Title(outcome.Document.Name))
	fmt.Fprintln(w, r.Outcomes(outcome.Summary.Outcomes))
	fmt.Fprintln(w, r.Summary(outcome.Summary))

	if !showDiff {
		return
	}

	printed := false
	for _, change := range outcome.Changes {
		if !change.Changed() {
			continue
		}
		if !printed {
			fmt.Fprintln(w, r.Section("Changed values"))
			printed = true
		}
		fmt.Fprint(w, change.Diff())
	}
	if !printed {
		fmt.Fprintln(w, r.Muted("No values changed."))
	}
}

type evaluateJSONResult struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Status     string  `json:"status"`
	Successful bool    `json:"successful"`
	Failure    string  `json:"failure,omitempty"`
	Message    string  `json:"message,omitempty"`
	Value      string  `json:"value"`
	Duration   float64 `json:"duration_seconds"`
	Timestamp  string  `json:"timestamp"`
	Diff       string  `json:"diff,omitempty"`
}

type evaluateJSONSummary struct {
	Succeeded int     `json:"succeeded"`
	Static    int     `json:"static"`
	Failed    int     `json:"failed"`
	Duration  float64 `json:"duration_seconds"`
}

type evaluateJSONOutput struct {
	SheetFile string               `json:"sheet_file"`
	Sheet     string               `json:"sheet"`
	Summary   evaluateJSONSummary  `json:"summary"`
	Results   []evaluateJSONResult `json:"results"`
}

func printEvaluateJSON(w io.Writer, path string, outcome *sheet.EvaluateOutcome, withDiff bool) error {
	changes := make(map[string]sheet.ValueChange, len(outcome.Changes))
	for _, c := range outcome.Changes {
		changes[c.Name] = c
	}

	summary := outcome.Summary
	payload := evaluateJSONOutput{
		SheetFile: path,
		Sheet:     outcome.Document.Name,
		Summary: evaluateJSONSummary{
			Succeeded: summary.Succeeded,
			Static:    summary.Static,
			Failed:    summary.Failed,
			Duration:  summary.Duration.Seconds(),
		},
		Results: make([]evaluateJSONResult, len(summary.Outcomes)),
	}

	for i, o := range summary.Outcomes {
		change := changes[o.Name]
		result := evaluateJSONResult{
			Name:       o.Name,
			Kind:       o.Kind,
			Status:     o.Status,
			Successful: o.Result.Successful,
			Failure:    string(o.Result.Failure),
			Message:    o.Result.ErrorMessage,
			Value:      change.After,
			Duration:   o.Result.Duration.Seconds(),
			Timestamp:  o.Timestamp.Format(time.RFC3339),
		}
		if withDiff {
			result.Diff = change.Diff()
		}
		payload.Results[i] = result
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
