package shipping

import (
	"fmt"

	"github.com/MaxLap/indonesia-calc/topology"
)

// SearchContext carries everything a search over one source needs: the
// topology, the source and its owner, the supply-vector layout and the
// precomputed bounds. It is built once per search and never mutated.
type SearchContext struct {
	topo   *topology.Topology
	source topology.Source

	// nodes[i] is the supply node stored at supply[i] of every State.
	nodes []topology.SupplyNodeID

	initialSupply  int
	maxDeliverable int
}

// NewSearchContext prepares a search from src over topo.
//
// Errors:
//   - ErrNilTopology if topo is nil.
//   - ErrSourceNotFound if src is not a source of topo.
//
// Complexity: O(N + C + S) for the reachable-sink bound.
func NewSearchContext(topo *topology.Topology, src topology.SourceID) (*SearchContext, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	maxDeliverable, err := topo.MaxDeliverable(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	source, _ := topo.Source(src)

	sc := &SearchContext{
		topo:           topo,
		source:         source,
		nodes:          topo.SourceNodes(src),
		maxDeliverable: maxDeliverable,
	}
	for _, n := range sc.nodes {
		node, _ := topo.SupplyNode(n)
		sc.initialSupply += node.Production
	}

	return sc, nil
}

// Topology returns the topology being searched.
func (sc *SearchContext) Topology() *topology.Topology { return sc.topo }

// Source returns the source shipped from.
func (sc *SearchContext) Source() topology.Source { return sc.source }

// Owner returns the owner of the source; carriers of other owners cost 1 per hop.
func (sc *SearchContext) Owner() string { return sc.source.Owner }

// SupplyNodes returns the supply-vector layout: index i holds nodes[i].
func (sc *SearchContext) SupplyNodes() []topology.SupplyNodeID { return sc.nodes }

// InitialSupply is the total production of the source.
func (sc *SearchContext) InitialSupply() int { return sc.initialSupply }

// MaxDeliverable is the sum of demand over every sink reachable from the source.
func (sc *SearchContext) MaxDeliverable() int { return sc.maxDeliverable }

// Initial builds the starting State: the source's production, every
// carrier's capacity and every sink's demand, nothing in transit, cost 0.
func (sc *SearchContext) Initial() *State {
	supply := make([]int, len(sc.nodes))
	for i, n := range sc.nodes {
		node, _ := sc.topo.SupplyNode(n)
		supply[i] = node.Production
	}
	capacity := make([]int, sc.topo.NumCarriers())
	for _, c := range sc.topo.Carriers() {
		net, _ := sc.topo.Network(c.Network)
		capacity[c.ID] = net.Capacity
	}
	demand := make([]int, sc.topo.NumSinks())
	for _, s := range sc.topo.Sinks() {
		demand[s.ID] = s.Demand
	}

	return newState(demand, capacity, supply, topology.NoCarrier, nil, 0, 0, Move{
		Kind:       MoveStart,
		SupplyNode: -1,
		Carrier:    topology.NoCarrier,
		Sink:       -1,
	})
}

// charge is the cost of landing a unit on c.
func (sc *SearchContext) charge(c topology.CarrierID) int {
	if sc.topo.CarrierOwner(c) != sc.source.Owner {
		return 1
	}

	return 0
}
