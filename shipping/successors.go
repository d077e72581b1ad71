package shipping

import "github.com/MaxLap/indonesia-calc/topology"

// Successors returns the legal next States of s, in generation order.
//
// Idle s:
//
//   - Nothing when s already shipped sc.MaxDeliverable() units.
//   - Otherwise, for each supply node with supply left, for each of its hubs,
//     for each carrier at that hub with capacity left: extract one unit onto
//     that carrier.
//
// In-transit s:
//
//   - Every carrier that held the unit earlier in this leg, plus every carrier
//     and sink linked to one of those, is forbidden.
//   - Carry to each non-forbidden carrier linked to the current one with
//     capacity left, then deliver to each non-forbidden linked sink with
//     demand left.
//
// Complexity:
//   - Idle: O(sum over supply nodes of carriers at their hubs) states, each O(C + N) to copy.
//   - In transit: O(L * deg) for the forbidden set, L the leg length.
func Successors(sc *SearchContext, s *State) []*State {
	if s.Idle() {
		return extractions(sc, s)
	}

	return transfers(sc, s)
}

func extractions(sc *SearchContext, s *State) []*State {
	// every reachable sink is already satisfied
	if s.shipped >= sc.maxDeliverable {
		return nil
	}

	topo := sc.topo
	var out []*State
	for i, n := range sc.nodes {
		if s.supply[i] <= 0 {
			continue
		}
		for _, h := range topo.SupplyNodeHubs(n) {
			for _, c := range topo.HubCarriers(h) {
				if s.capacity[c] <= 0 {
					continue
				}
				out = append(out, s.extract(sc, i, c))
			}
		}
	}

	return out
}

func transfers(sc *SearchContext, s *State) []*State {
	topo := sc.topo
	blockedCarriers, blockedSinks := legForbidden(topo, s)

	var out []*State
	for _, c := range topo.CarrierLinks(s.carriedAt) {
		if _, ok := blockedCarriers[c]; ok || s.capacity[c] <= 0 {
			continue
		}
		out = append(out, s.carry(sc, c))
	}
	for _, k := range topo.CarrierSinks(s.carriedAt) {
		if _, ok := blockedSinks[k]; ok || s.demand[k] <= 0 {
			continue
		}
		out = append(out, s.deliver(k))
	}

	return out
}

// legForbidden collects the points a unit must not go back to: every carrier
// that held it before the current one during this leg, and everything linked
// to those carriers.
func legForbidden(topo *topology.Topology, s *State) (map[topology.CarrierID]struct{}, map[topology.SinkID]struct{}) {
	carriers := make(map[topology.CarrierID]struct{})
	sinks := make(map[topology.SinkID]struct{})

	for p := s.prev; p != nil && !p.Idle(); p = p.prev {
		carriers[p.carriedAt] = struct{}{}
		for _, c := range topo.CarrierLinks(p.carriedAt) {
			carriers[c] = struct{}{}
		}
		for _, k := range topo.CarrierSinks(p.carriedAt) {
			sinks[k] = struct{}{}
		}
	}

	return carriers, sinks
}
