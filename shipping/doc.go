// Package shipping searches for the best sequence of single-unit shipments
// from one supply source ("farm") over a topology.Topology.
//
// Overview:
//
//   - A State is an immutable snapshot of a partial plan: remaining demand per
//     sink, remaining capacity per carrier, remaining supply per supply node,
//     the carrier currently holding the in-transit unit (if any), the
//     accumulated cost and a link to the preceding State.
//   - Successors expands a State. An idle State starts a new leg by loading a
//     unit from a supply node onto a carrier at one of its hubs. An in-transit
//     State moves the unit to a linked carrier or delivers it to a linked sink.
//     Points already passed during the current leg, and everything one hop
//     from them, are never offered again.
//   - Search runs a 0/1 best-first traversal: every transition costs 0 or 1
//     (1 whenever the unit lands on a carrier whose network owner differs from
//     the source owner). Two buckets hold the states at the current cost and
//     at cost+1; a visited set keyed by State equality removes duplicates.
//   - Path walks predecessor links of a terminal State and returns the plan
//     from the initial State onward.
//
// Goal handling:
//
//   - Every idle State that shipped at least one unit is a candidate goal.
//     A candidate shipping strictly more units than the best so far replaces
//     the best set; a tie is appended. Result.Solutions[0] is therefore the
//     first-discovered State of maximum delivery.
//   - An empty Result.Solutions means nothing could be shipped. It is data,
//     not an error.
//
// Costs are charged per hop: a multi-hop leg over foreign carriers pays once
// for each foreign carrier it lands on.
//
// Search context:
//
//	sc, err := shipping.NewSearchContext(topo, src)
//	res, err := shipping.Search(sc, shipping.WithMaxExpansions(1_000_000))
//	if best, ok := res.Best(); ok {
//	    for _, st := range shipping.Path(best) { ... }
//	}
//
// Thread safety:
//
//   - A SearchContext and every State are immutable and may be shared.
//   - One Search call owns its frontier and visited set; it runs synchronously
//     on the calling goroutine.
package shipping
