package sheet

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/stylekit/internal/config"
	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/script"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
	"github.com/alexisbeaulieu97/stylekit/internal/registry"
	"github.com/alexisbeaulieu97/stylekit/pkg/diff"
)

// Loader loads style sheets into documents.
type Loader interface {
	Load(ctx context.Context, path string) (*config.Document, error)
	Validate(ctx context.Context, path string) error
}

// Service coordinates sheet level operations for the CLI.
type Service struct {
	loader Loader
	logger ports.Logger
}

// NewService constructs a sheet service. A nil logger disables logging.
func NewService(loader Loader, logger ports.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{loader: loader, logger: logger}
}

// Load returns the built document for path.
func (s *Service) Load(ctx context.Context, path string) (*config.Document, error) {
	return s.loader.Load(ctx, path)
}

// Validate parses and validates path without evaluating anything.
func (s *Service) Validate(ctx context.Context, path string) error {
	return s.loader.Validate(ctx, path)
}

// EvaluateRequest configures an evaluation run. Zero overrides keep the
// sheet's settings.
type EvaluateRequest struct {
	Path      string
	StatePath string
	FailFast  bool
	MaxSteps  uint64
	Timeout   time.Duration
	OnOutcome func(model.Outcome)
}

// ValueChange is the rendered value of one property before and after the
// run.
type ValueChange struct {
	Name   string
	Before string
	After  string
}

// Changed reports whether evaluation replaced the value.
func (c ValueChange) Changed() bool { return c.Before != c.After }

// Diff renders the change as a unified diff; empty when unchanged.
func (c ValueChange) Diff() string {
	return diff.Unified([]byte(c.Before), []byte(c.After), c.Name+" (before)", c.Name+" (after)")
}

// EvaluateOutcome captures an evaluation run.
type EvaluateOutcome struct {
	Document *config.Document
	Summary  *model.Summary
	Changes  []ValueChange
}

// Evaluate loads the sheet at req.Path, evaluates every property through a
// single shared evaluator and optionally persists the results. The returned
// error covers load and persistence failures only; property failures are
// reported in the summary.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateOutcome, error) {
	doc, err := s.loader.Load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	settings := doc.Settings
	if req.MaxSteps > 0 {
		settings.MaxSteps = req.MaxSteps
	}
	if req.Timeout > 0 {
		settings.Timeout = req.Timeout
	}
	failFast := settings.FailFast || req.FailFast

	evaluator := script.NewEvaluator(script.Options{
		Resolver:  doc.Library,
		Logger:    s.logger,
		MaxSteps:  settings.MaxSteps,
		Timeout:   settings.Timeout,
		CacheSize: settings.CacheSize,
	})

	before, err := renderAll(doc.Properties)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "evaluating style sheet", "sheet", doc.Name, "properties", doc.Properties.Len(), "fail_fast", failFast)

	start := time.Now()
	outcomes := doc.Properties.EvaluateAll(ctx, evaluator,
		registry.WithFailFast(failFast),
		registry.WithLogger(s.logger),
	)
	summary := model.NewSummary(outcomes, time.Since(start))

	if req.OnOutcome != nil {
		for _, o := range outcomes {
			req.OnOutcome(o)
		}
	}

	after, err := renderAll(doc.Properties)
	if err != nil {
		return nil, err
	}

	changes := make([]ValueChange, 0, len(after))
	for _, name := range doc.Properties.Names() {
		changes = append(changes, ValueChange{Name: name, Before: before[name], After: after[name]})
	}

	s.logger.Info(ctx, "style sheet evaluated",
		"sheet", doc.Name,
		"succeeded", summary.Succeeded,
		"static", summary.Static,
		"failed", summary.Failed,
		"duration_ms", summary.Duration.Milliseconds(),
	)

	if req.StatePath != "" {
		if err := s.persist(ctx, req.StatePath, doc, outcomes, after); err != nil {
			return nil, err
		}
	}

	return &EvaluateOutcome{Document: doc, Summary: summary, Changes: changes}, nil
}

func (s *Service) persist(ctx context.Context, path string, doc *config.Document, outcomes []model.Outcome, values map[string]string) error {
	cache, err := registry.NewResultCache(path)
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}

	cache.SetSheet(doc.Name)
	visited := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		visited[o.Name] = struct{}{}
		cache.Set(o.Name, registry.CachedResultFromOutcome(o, values[o.Name]))
	}
	// Properties skipped by fail-fast keep no result from an earlier run.
	for _, name := range doc.Properties.Names() {
		if _, ok := visited[name]; !ok {
			cache.Invalidate(name)
		}
	}
	if removed := cache.Prune(doc.Properties.Names()); removed > 0 {
		s.logger.Debug(ctx, "pruned stale state entries", "removed", removed)
	}

	if err := cache.Save(); err != nil {
		return fmt.Errorf("save state file: %w", err)
	}
	s.logger.Debug(ctx, "state saved", "path", path)
	return nil
}

func renderAll(c *registry.Collection) (map[string]string, error) {
	out := make(map[string]string, c.Len())
	for _, p := range c.Properties() {
		rendered, err := config.RenderValue(p)
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", p.Name(), err)
		}
		out[p.Name()] = rendered
	}
	return out, nil
}
