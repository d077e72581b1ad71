package shipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaxLap/indonesia-calc/internal/logging"
)

// Sentinel errors returned by the shipping package.
var (
	// ErrNilTopology indicates that a nil *topology.Topology was supplied.
	ErrNilTopology = errors.New("shipping: topology is nil")

	// ErrNilContext indicates that Search was called without a SearchContext.
	ErrNilContext = errors.New("shipping: search context is nil")

	// ErrSourceNotFound indicates the requested supply source does not exist.
	ErrSourceNotFound = errors.New("shipping: source not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("shipping: invalid option supplied")

	// ErrExpansionLimit is returned, together with the partial Result, when
	// MaxExpansions states were expanded before the frontier was exhausted.
	ErrExpansionLimit = errors.New("shipping: expansion limit reached")
)

// Recorder receives one observation per finished search.
type Recorder interface {
	ObserveSearch(outcome string, elapsed time.Duration, expanded, shipped int)
}

// Options configures Search.
type Options struct {
	// Ctx allows cancellation; it is checked between expansions.
	Ctx context.Context

	// Logger receives a debug line per cost advance and an info summary.
	Logger logging.Logger

	// Recorder, when non-nil, observes the finished search.
	Recorder Recorder

	// MaxExpansions, if > 0, bounds the number of expanded states.
	MaxExpansions int

	// OnExpand is called with every state right before it is expanded.
	OnExpand func(*State)

	// internal error recorded during option parsing
	err error
}

// Option configures Search via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with a background context, a noop logger,
// no recorder, no expansion limit and a no-op OnExpand hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Logger:   logging.Noop(),
		OnExpand: func(*State) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger used by Search.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Options) { o.Recorder = r }
}

// WithMaxExpansions bounds the search.
//
//	n > 0: stop after n expansions with ErrExpansionLimit
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithOnExpand registers a callback run right before each expansion.
func WithOnExpand(fn func(*State)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// Result is the outcome of Search.
type Result struct {
	// Solutions holds the idle states of maximum delivery in discovery order.
	// Empty when nothing could be shipped.
	Solutions []*State

	// Shipped is the unit count shared by every entry of Solutions.
	Shipped int

	// MaxDeliverable is the precomputed upper bound for the source.
	MaxDeliverable int

	// Expanded counts states whose successors were generated.
	Expanded int

	// Generated counts successors that were not already visited when produced.
	Generated int

	// Visited is the size of the visited set when the search stopped.
	Visited int
}

// Best returns the first-discovered state of maximum delivery.
func (r *Result) Best() (*State, bool) {
	if r == nil || len(r.Solutions) == 0 {
		return nil, false
	}

	return r.Solutions[0], true
}
