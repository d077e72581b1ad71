package shipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MaxLap/indonesia-calc/internal/logging"
	"github.com/MaxLap/indonesia-calc/internal/observability"
)

const tracerName = "github.com/MaxLap/indonesia-calc/shipping"

// cancelCheckInterval is how many expansions pass between context checks.
const cancelCheckInterval = 256

// Search explores every State reachable from sc.Initial() in order of
// non-decreasing cost and returns the States of maximum delivery.
//
// Implementation:
//   - Stage 1: Seed the current-cost bucket with the initial State.
//   - Stage 2: Pop (LIFO) from the current bucket; when it is empty, promote
//     the cost+1 bucket and advance the cost by exactly one.
//   - Stage 3: Record idle States as goals, mark visited, expand, and route
//     each unvisited successor by its cost.
//
// Returns:
//   - *Result: always non-nil unless sc is nil or an option is invalid. On
//     cancellation or ErrExpansionLimit it holds the best found so far.
//   - error: ErrNilContext, ErrOptionViolation, ErrExpansionLimit or the
//     wrapped context error.
//
// Complexity:
//   - Time O(V * b) where V is the number of distinct States reached and b the
//     branching factor; Space O(V) for the visited set.
func Search(sc *SearchContext, opts ...Option) (*Result, error) {
	if sc == nil {
		return nil, ErrNilContext
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	ctx, span := otel.Tracer(tracerName).Start(cfg.Ctx, "shipping.Search", trace.WithAttributes(
		attribute.String("source", sc.source.Name),
		attribute.String("owner", sc.source.Owner),
		attribute.Int("max_deliverable", sc.maxDeliverable),
	))
	defer span.End()

	log := cfg.Logger.With(logging.String("source", sc.source.Name))
	r := &runner{
		sc:      sc,
		cfg:     cfg,
		log:     log,
		visited: make(map[string]struct{}),
	}

	start := time.Now()
	err := r.run(ctx)
	elapsed := time.Since(start)
	res := r.result()

	outcome := observability.OutcomeSolved
	switch {
	case errors.Is(err, ErrExpansionLimit):
		outcome = observability.OutcomeLimit
	case err != nil:
		outcome = observability.OutcomeCancelled
	case len(res.Solutions) == 0:
		outcome = observability.OutcomeNoSolution
	}
	if cfg.Recorder != nil {
		cfg.Recorder.ObserveSearch(outcome, elapsed, res.Expanded, res.Shipped)
	}

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("shipped", res.Shipped),
		attribute.Int("expanded", res.Expanded),
		attribute.Int("visited", res.Visited),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	log.Info(ctx, "search finished",
		logging.String("outcome", outcome),
		logging.Int("shipped", res.Shipped),
		logging.Int("max_deliverable", res.MaxDeliverable),
		logging.Int("solutions", len(res.Solutions)),
		logging.Int("expanded", res.Expanded),
		logging.Int("visited", res.Visited),
		logging.Any("elapsed", elapsed),
	)

	return res, err
}

// runner holds the mutable state of one Search call.
type runner struct {
	sc  *SearchContext
	cfg Options
	log logging.Logger

	current []*State // states at cost
	next    []*State // states at cost+1
	cost    int

	visited map[string]struct{}

	best        []*State
	bestShipped int

	expanded  int
	generated int
}

func (r *runner) run(ctx context.Context) error {
	r.current = append(r.current, r.sc.Initial())

	for len(r.current) > 0 || len(r.next) > 0 {
		if len(r.current) == 0 {
			r.current, r.next = r.next, r.current[:0]
			r.cost++
			r.log.Debug(ctx, "cost advanced",
				logging.Int("cost", r.cost),
				logging.Int("frontier", len(r.current)),
				logging.Int("visited", len(r.visited)),
			)
		}

		if r.expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("shipping: search interrupted: %w", err)
			}
		}

		s := r.pop()
		// a state can be queued several times before its first expansion
		if _, seen := r.visited[s.key]; seen {
			continue
		}

		if s.Idle() {
			r.offerGoal(s)
		}
		r.visited[s.key] = struct{}{}

		if r.cfg.MaxExpansions > 0 && r.expanded >= r.cfg.MaxExpansions {
			return fmt.Errorf("%w: %d", ErrExpansionLimit, r.cfg.MaxExpansions)
		}
		r.expanded++
		r.cfg.OnExpand(s)

		for _, succ := range Successors(r.sc, s) {
			if _, seen := r.visited[succ.key]; seen {
				continue
			}
			r.generated++
			if succ.cost == s.cost {
				r.current = append(r.current, succ)
			} else {
				r.next = append(r.next, succ)
			}
		}
	}

	return nil
}

func (r *runner) pop() *State {
	n := len(r.current) - 1
	s := r.current[n]
	r.current[n] = nil
	r.current = r.current[:n]

	return s
}

// offerGoal records an idle state if it ships at least as much as the best.
// Zero-unit states never count, so a source that ships nothing has no goal.
func (r *runner) offerGoal(s *State) {
	switch {
	case s.shipped == 0:
	case s.shipped > r.bestShipped:
		r.bestShipped = s.shipped
		r.best = []*State{s}
	case s.shipped == r.bestShipped:
		r.best = append(r.best, s)
	}
}

func (r *runner) result() *Result {
	return &Result{
		Solutions:      r.best,
		Shipped:        r.bestShipped,
		MaxDeliverable: r.sc.maxDeliverable,
		Expanded:       r.expanded,
		Generated:      r.generated,
		Visited:        len(r.visited),
	}
}
