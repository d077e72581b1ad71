package shipping

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/MaxLap/indonesia-calc/topology"
)

// MoveKind names the transition that produced a State.
type MoveKind uint8

const (
	// MoveStart marks the initial State.
	MoveStart MoveKind = iota

	// MoveExtract loads a unit from a supply node onto a carrier.
	MoveExtract

	// MoveCarry hands the in-transit unit to a linked carrier.
	MoveCarry

	// MoveDeliver drops the in-transit unit at a sink, ending the leg.
	MoveDeliver
)

// String returns the lower-case name of the move kind.
func (k MoveKind) String() string {
	switch k {
	case MoveStart:
		return "start"
	case MoveExtract:
		return "extract"
	case MoveCarry:
		return "carry"
	case MoveDeliver:
		return "deliver"
	default:
		return fmt.Sprintf("move(%d)", uint8(k))
	}
}

// Move describes a transition. Fields that do not apply to Kind are -1.
type Move struct {
	Kind MoveKind

	// SupplyNode is the node a unit was taken from (MoveExtract).
	SupplyNode topology.SupplyNodeID

	// Carrier is the carrier the unit landed on (MoveExtract, MoveCarry) or
	// was delivered from (MoveDeliver).
	Carrier topology.CarrierID

	// Sink is the sink the unit was delivered to (MoveDeliver).
	Sink topology.SinkID
}

// State is one node of the search space. It is immutable once built.
//
// Equality covers remaining demand, capacity and supply plus the carrier
// holding the unit. Predecessor, cost and move annotation are excluded.
type State struct {
	demand    []int // by SinkID
	capacity  []int // by CarrierID
	supply    []int // by SearchContext.SupplyNodes index
	carriedAt topology.CarrierID

	prev    *State
	cost    int
	shipped int
	move    Move

	key string
}

// newState assembles a State. Vectors are taken by reference; callers pass
// fresh copies for every vector they modified.
func newState(demand, capacity, supply []int, at topology.CarrierID, prev *State, cost, shipped int, mv Move) *State {
	s := &State{
		demand:    demand,
		capacity:  capacity,
		supply:    supply,
		carriedAt: at,
		prev:      prev,
		cost:      cost,
		shipped:   shipped,
		move:      mv,
	}
	s.key = s.encodeKey()

	return s
}

// encodeKey serialises the equality-relevant fields. Vector lengths are
// fixed within one search, so plain concatenation is unambiguous.
func (s *State) encodeKey() string {
	buf := make([]byte, 0, binary.MaxVarintLen32*(1+len(s.demand)+len(s.capacity)+len(s.supply)))
	buf = binary.AppendUvarint(buf, uint64(s.carriedAt+1))
	for _, v := range s.demand {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	for _, v := range s.capacity {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	for _, v := range s.supply {
		buf = binary.AppendUvarint(buf, uint64(v))
	}

	return string(buf)
}

// Key identifies the State for de-duplication: two States have the same Key
// iff they are Equal.
func (s *State) Key() string { return s.key }

// Equal reports whether s and o describe the same point of the search
// space, ignoring predecessor, cost and move.
func (s *State) Equal(o *State) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}

	return s.carriedAt == o.carriedAt &&
		slices.Equal(s.demand, o.demand) &&
		slices.Equal(s.capacity, o.capacity) &&
		slices.Equal(s.supply, o.supply)
}

// CarriedAt returns the carrier holding the in-transit unit.
func (s *State) CarriedAt() (topology.CarrierID, bool) {
	return s.carriedAt, s.carriedAt != topology.NoCarrier
}

// Idle reports whether no unit is in transit.
func (s *State) Idle() bool { return s.carriedAt == topology.NoCarrier }

// Predecessor returns the State this one was derived from, or nil.
func (s *State) Predecessor() *State { return s.prev }

// Cost is the accumulated number of foreign-carrier hops.
func (s *State) Cost() int { return s.cost }

// Shipped is initial supply minus remaining supply. At an idle State it
// equals the number of deliveries on the path; while a unit is in transit
// it counts that unit too.
func (s *State) Shipped() int { return s.shipped }

// Move returns the transition that produced s.
func (s *State) Move() Move { return s.move }

// DemandRemaining returns the outstanding demand of sink k.
func (s *State) DemandRemaining(k topology.SinkID) int { return s.demand[k] }

// CapacityRemaining returns the remaining capacity of carrier c.
func (s *State) CapacityRemaining(c topology.CarrierID) int { return s.capacity[c] }

// SupplyRemaining returns the remaining supply at index i of the
// SearchContext.SupplyNodes layout.
func (s *State) SupplyRemaining(i int) int { return s.supply[i] }

// Demand returns a copy of the remaining-demand vector.
func (s *State) Demand() []int { return slices.Clone(s.demand) }

// Capacity returns a copy of the remaining-capacity vector.
func (s *State) Capacity() []int { return slices.Clone(s.capacity) }

// Supply returns a copy of the remaining-supply vector.
func (s *State) Supply() []int { return slices.Clone(s.supply) }

// String is a compact debugging form.
func (s *State) String() string {
	return fmt.Sprintf("State{at=%d demand=%v capacity=%v supply=%v cost=%d shipped=%d}",
		s.carriedAt, s.demand, s.capacity, s.supply, s.cost, s.shipped)
}

// extract loads a unit from supply index i onto carrier c.
func (s *State) extract(sc *SearchContext, i int, c topology.CarrierID) *State {
	supply := slices.Clone(s.supply)
	supply[i]--
	capacity := slices.Clone(s.capacity)
	capacity[c]--

	return newState(s.demand, capacity, supply, c, s, s.cost+sc.charge(c), s.shipped+1, Move{
		Kind:       MoveExtract,
		SupplyNode: sc.nodes[i],
		Carrier:    c,
		Sink:       -1,
	})
}

// carry hands the in-transit unit to carrier c.
func (s *State) carry(sc *SearchContext, c topology.CarrierID) *State {
	capacity := slices.Clone(s.capacity)
	capacity[c]--

	return newState(s.demand, capacity, s.supply, c, s, s.cost+sc.charge(c), s.shipped, Move{
		Kind:       MoveCarry,
		SupplyNode: -1,
		Carrier:    c,
		Sink:       -1,
	})
}

// deliver drops the in-transit unit at sink k.
func (s *State) deliver(k topology.SinkID) *State {
	demand := slices.Clone(s.demand)
	demand[k]--

	return newState(demand, s.capacity, s.supply, topology.NoCarrier, s, s.cost, s.shipped, Move{
		Kind:       MoveDeliver,
		SupplyNode: -1,
		Carrier:    s.carriedAt,
		Sink:       k,
	})
}
