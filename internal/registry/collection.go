package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// Collection is an ordered set of properties keyed by name. It is the owner
// that shares one script evaluator between its properties, so evaluation
// passes hold the collection lock and never overlap.
type Collection struct {
	mu    sync.RWMutex
	props map[string]property.Property
	order []string
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{props: make(map[string]property.Property)}
}

// Add appends p. Names must be unique.
func (c *Collection) Add(p property.Property) error {
	if p == nil {
		return stylekiterrors.NewValidationError("property", "property is nil", nil)
	}

	name := p.Name()
	if strings.TrimSpace(name) == "" {
		return stylekiterrors.NewValidationError("property.name", "name cannot be empty", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.props[name]; exists {
		return stylekiterrors.NewValidationError("property.name", fmt.Sprintf("duplicate property name %q", name), nil)
	}

	c.props[name] = p
	c.order = append(c.order, name)
	return nil
}

// Get returns the property registered under name.
func (c *Collection) Get(name string) (property.Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.props[name]
	return p, ok
}

// Remove deletes the property registered under name and reports whether it
// existed.
func (c *Collection) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.props[name]; !ok {
		return false
	}

	delete(c.props, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns property names in insertion order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}

// Len returns the number of properties.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// Properties returns the properties in insertion order. The slice is a copy
// but the properties are shared.
func (c *Collection) Properties() []property.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]property.Property, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.props[name])
	}
	return out
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	clone := &Collection{
		props: make(map[string]property.Property, len(c.props)),
		order: append([]string(nil), c.order...),
	}
	for name, p := range c.props {
		clone.props[name] = p.Clone()
	}
	return clone
}

// EvaluateOption tunes an evaluation pass.
type EvaluateOption func(*evaluateConfig)

type evaluateConfig struct {
	failFast bool
	logger   ports.Logger
}

// WithFailFast stops the pass at the first failed property.
func WithFailFast(enabled bool) EvaluateOption {
	return func(cfg *evaluateConfig) { cfg.failFast = enabled }
}

// WithLogger reports per-property progress to log.
func WithLogger(log ports.Logger) EvaluateOption {
	return func(cfg *evaluateConfig) { cfg.logger = log }
}

// EvaluateAll evaluates every property in order and returns one outcome per
// property. Static properties are reported with StatusStatic and a clean
// result holding their own value; they are never counted as failures. When
// ctx is cancelled mid-pass, every remaining property is reported as failed
// with the context error as its cause.
func (c *Collection) EvaluateAll(ctx context.Context, evaluator ports.ScriptEvaluator, opts ...EvaluateOption) []model.Outcome {
	cfg := evaluateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	outcomes := make([]model.Outcome, 0, len(c.order))
	for _, name := range c.order {
		p := c.props[name]
		outcome := model.Outcome{
			Name:      name,
			Kind:      string(p.Kind()),
			Timestamp: time.Now(),
		}

		if err := ctx.Err(); err != nil {
			outcome.Status = model.StatusFailed
			outcome.Result = model.EvaluatorFailed("", stylekiterrors.NewScriptError("", err))
			outcomes = append(outcomes, outcome)
			if cfg.failFast {
				break
			}
			continue
		}

		result := p.Evaluate(ctx, evaluator)
		switch {
		case !p.IsScriptDriven():
			// Evaluate passes the evaluator's last result through; it belongs
			// to whichever script ran before.
			outcome.Status = model.StatusStatic
			outcome.Result = model.Success(p.Raw())
		case result.Successful:
			outcome.Status = model.StatusSuccess
			outcome.Result = result
		default:
			outcome.Status = model.StatusFailed
			outcome.Result = result
		}

		if cfg.logger != nil {
			if outcome.Failed() {
				cfg.logger.Warn(ctx, "property evaluation failed", "property", name, "failure", string(result.Failure), "error", result.ErrorMessage)
			} else {
				cfg.logger.Debug(ctx, "property evaluated", "property", name, "status", outcome.Status)
			}
		}

		outcomes = append(outcomes, outcome)
		if outcome.Failed() && cfg.failFast {
			break
		}
	}

	return outcomes
}
