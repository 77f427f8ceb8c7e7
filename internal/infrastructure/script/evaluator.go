package script

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/ports"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

const (
	defaultCacheSize = 256
	threadName       = "stylekit"
	scriptFilename   = "property.star"
)

// fileOptions lets scripts branch and loop at top level so a property can
// pick its value without wrapping the body in a function. The step budget
// still bounds while loops.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// StyleResolver looks up named styles for Return.Style. Implementations must
// return copies the caller may keep.
type StyleResolver interface {
	Lookup(name string) (*style.Style, error)
}

// Options configures an Evaluator.
type Options struct {
	// Resolver backs Return.Style. Without one, Return.Style always fails.
	Resolver StyleResolver
	Logger   ports.Logger
	// MaxSteps bounds the Starlark execution steps per script; zero means
	// unbounded.
	MaxSteps uint64
	// Timeout bounds wall time per script; zero means no limit beyond ctx.
	Timeout time.Duration
	// CacheSize bounds the number of compiled programs kept; zero selects
	// the default, negative disables caching.
	CacheSize int
}

// Evaluator runs property scripts on a Starlark interpreter. Scripts report
// their value through the predeclared Return module, e.g.
//
//	Return.Style("BoldRed")
//
// Execute calls are serialised: one script runs at a time per Evaluator, so
// a single instance can be shared by every property of a collection.
type Evaluator struct {
	opts Options
	log  ports.Logger

	predeclared starlark.StringDict

	mu       sync.Mutex
	last     model.EvaluationResult
	programs map[string]*starlark.Program
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts Options) *Evaluator {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = defaultCacheSize
	}
	predeclared := starlark.StringDict{"Return": newReturnModule(opts.Resolver)}
	predeclared.Freeze()
	return &Evaluator{
		opts:        opts,
		log:         log.With("component", "evaluator"),
		predeclared: predeclared,
		programs:    make(map[string]*starlark.Program),
	}
}

// Execute compiles (or reuses) and runs source, returning the value recorded
// by the last Return.* call. A script that never calls Return succeeds with a
// nil value.
func (e *Evaluator) Execute(ctx context.Context, source string) model.EvaluationResult {
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	result := e.run(ctx, source)
	result.Duration = time.Since(start)
	e.last = result

	if result.Successful {
		e.log.Debug(ctx, "script evaluated", "duration_ms", result.Duration.Milliseconds(), "value_type", fmt.Sprintf("%T", result.Value))
	} else {
		e.log.Warn(ctx, "script evaluation failed", "duration_ms", result.Duration.Milliseconds(), "error", result.ErrorMessage)
	}
	return result
}

// LastResult returns the result of the most recent Execute call.
func (e *Evaluator) LastResult() model.EvaluationResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// CachedPrograms reports how many compiled programs are cached.
func (e *Evaluator) CachedPrograms() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.programs)
}

func (e *Evaluator) run(ctx context.Context, source string) model.EvaluationResult {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	program, err := e.compile(source)
	if err != nil {
		return failed(err)
	}

	thread := &starlark.Thread{
		Name: threadName,
		Print: func(_ *starlark.Thread, msg string) {
			e.log.Debug(ctx, "script print", "message", msg)
		},
	}
	ret := &returned{}
	thread.SetLocal(returnKey, ret)
	if e.opts.MaxSteps > 0 {
		thread.SetMaxExecutionSteps(e.opts.MaxSteps)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	if _, err := program.Init(thread, e.predeclared); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			e.log.Debug(ctx, "script backtrace", "backtrace", evalErr.Backtrace())
		}
		return failed(err)
	}

	return model.Success(ret.value)
}

// compile returns the cached program for source or compiles a new one.
func (e *Evaluator) compile(source string) (*starlark.Program, error) {
	key := cacheKey(source)
	if program, ok := e.programs[key]; ok {
		return program, nil
	}

	_, program, err := starlark.SourceProgramOptions(fileOptions, scriptFilename, source, e.predeclared.Has)
	if err != nil {
		return nil, err
	}

	if e.opts.CacheSize > 0 {
		if len(e.programs) >= e.opts.CacheSize {
			clear(e.programs)
		}
		e.programs[key] = program
	}
	return program, nil
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func failed(err error) model.EvaluationResult {
	return model.EvaluatorFailed("", stylekiterrors.NewScriptError("", err))
}

var _ ports.ScriptEvaluator = (*Evaluator)(nil)
