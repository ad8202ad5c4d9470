// Package discovery decides who may see which content and ranks content and
// people for feeds, trending, explore, suggestions and search.
//
// Every exported operation reads through one repositories.Store snapshot, so
// the graph, profiles and content it observes belong to the same point in time.
package discovery

import (
	"context"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
	"github.com/anonto42/nano-midea/discovery/pkg/logging"
	"github.com/rs/zerolog"
)

// Clock supplies the current time in milliseconds since epoch
type Clock interface {
	NowMs() int64
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) NowMs() int64 { return time.Now().UnixMilli() }

// Engine runs discovery operations against a Store
type Engine struct {
	store  repositories.Store
	clock  Clock
	logger zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the wall clock, mostly for tests
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger operations report to
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine over store
func NewEngine(store repositories.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		clock:  SystemClock{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// view runs fn inside one store snapshot and records the outcome
func (e *Engine) view(ctx context.Context, op string, fn func(ctx context.Context, r repositories.Reader) error) error {
	start := time.Now()
	err := e.store.View(ctx, fn)
	e.finish(ctx, op, start, err)
	return err
}

// finish records metrics and logs for an operation that may have failed before
// reaching the store
func (e *Engine) finish(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	result := outcome(err)
	metrics.RecordOperation(op, result, elapsed)

	logger := logging.FromContext(ctx, e.logger)
	if result == "error" {
		logger.Error().Err(err).Str("operation", op).Dur("elapsed", elapsed).Msg("discovery operation failed")
		return
	}
	logger.Debug().Str("operation", op).Str("outcome", result).Dur("elapsed", elapsed).Send()
}
