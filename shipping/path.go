package shipping

import (
	"fmt"
	"slices"

	"github.com/MaxLap/indonesia-calc/topology"
)

// Path returns the States from the initial State to terminal, inclusive.
// It is pure: calling it twice on the same State yields equal slices.
// A nil terminal yields nil.
//
// Complexity: O(L) time and space for a chain of length L.
func Path(terminal *State) []*State {
	if terminal == nil {
		return nil
	}
	var path []*State
	for s := terminal; s != nil; s = s.prev {
		path = append(path, s)
	}
	slices.Reverse(path)

	return path
}

// Plan is the presentation-ready summary of one terminal State.
type Plan struct {
	Source         string
	Owner          string
	Shipped        int
	Cost           int
	MaxDeliverable int
	InitialSupply  int

	// States runs from the initial State to the terminal one.
	States []*State
}

// Leftover is the supply that the plan does not ship.
func (p *Plan) Leftover() int { return p.InitialSupply - p.Shipped }

// Deliveries counts units delivered per sink along the plan.
func (p *Plan) Deliveries() map[topology.SinkID]int {
	out := make(map[topology.SinkID]int)
	for _, s := range p.States {
		if s.move.Kind == MoveDeliver {
			out[s.move.Sink]++
		}
	}

	return out
}

// NewPlan summarises the path ending at terminal.
func NewPlan(sc *SearchContext, terminal *State) *Plan {
	return &Plan{
		Source:         sc.source.Name,
		Owner:          sc.source.Owner,
		Shipped:        terminal.shipped,
		Cost:           terminal.cost,
		MaxDeliverable: sc.maxDeliverable,
		InitialSupply:  sc.initialSupply,
		States:         Path(terminal),
	}
}

// Solve searches from the source named sourceName and returns the plan of
// the first-discovered best State. The plan is nil when nothing could be
// shipped; the Result is returned in every case where the search ran.
//
// Errors:
//   - ErrNilTopology, ErrSourceNotFound, and every error of Search.
func Solve(topo *topology.Topology, sourceName string, opts ...Option) (*Plan, *Result, error) {
	if topo == nil {
		return nil, nil, ErrNilTopology
	}
	src, ok := topo.SourceByName(sourceName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrSourceNotFound, sourceName)
	}
	sc, err := NewSearchContext(topo, src)
	if err != nil {
		return nil, nil, err
	}

	res, err := Search(sc, opts...)
	if res == nil {
		return nil, nil, err
	}
	best, ok := res.Best()
	if !ok {
		return nil, res, err
	}

	return NewPlan(sc, best), res, err
}
