package cyoa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rockysnow7/cyoa/internal/logging"
	"github.com/rockysnow7/cyoa/internal/runtime"
	"github.com/rockysnow7/cyoa/internal/script"
	"github.com/rockysnow7/cyoa/pkg/adapters/memory"
	"github.com/rockysnow7/cyoa/pkg/session"
	"github.com/rockysnow7/cyoa/pkg/story"
)

// Version is the engine version reported by the CLI.
const Version = "0.1.0"

// Engine is the high-level entry point for the cyoa library. It owns the
// loaded story, the runtime and a session manager, and provides a simplified
// API for consumers like the HTTP adapter and the play loop.
type Engine struct {
	story    *story.Story
	runtime  *runtime.Engine
	sessions *session.Manager
	store    session.Store
	logger   *slog.Logger
	strict   bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine and its session manager.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects a session store, replacing the default in-memory one.
func WithStore(store session.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithStrict promotes reference-lint findings (undeclared variables,
// non-number ordered comparisons) to fatal load errors.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New loads and validates raw story text and builds an engine over it.
// A story that fails validation is never served: every load error is
// reported, and no sessions can be created against the broken graph.
func New(source string, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	st, err := script.Load(source)
	if err != nil {
		return nil, err
	}
	if e.strict {
		if findings := script.CheckReferences(st); len(findings) > 0 {
			return nil, errors.Join(findings...)
		}
	}

	if e.store == nil {
		e.store = memory.NewStore()
	}

	e.story = st
	e.runtime = runtime.NewEngine(st, runtime.WithLogger(e.logger))
	e.sessions = session.NewManager(e.runtime, e.store, session.WithLogger(e.logger))
	return e, nil
}

// Story returns the loaded immutable story graph.
func (e *Engine) Story() *story.Story { return e.story }

// Create starts a new reader session at the entry scene.
func (e *Engine) Create(ctx context.Context) (string, error) {
	return e.sessions.Create(ctx)
}

// Current returns the session's view of its current scene.
func (e *Engine) Current(ctx context.Context, id string) (story.View, error) {
	return e.sessions.Current(ctx, id)
}

// Choose advances the session through the identified choice and returns the
// view of the new state.
func (e *Engine) Choose(ctx context.Context, id, choiceID string) (story.View, error) {
	return e.sessions.Choose(ctx, id, choiceID)
}

// Sweep removes sessions idle longer than timeout and reports how many.
func (e *Engine) Sweep(ctx context.Context, timeout time.Duration, now time.Time) (int, error) {
	return e.sessions.Sweep(ctx, timeout, now)
}
