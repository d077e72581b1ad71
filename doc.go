// Package indonesiacalc plans shipments across an archipelago: given islands
// (hubs), boat lines (carrier networks), cities with demand (sinks) and a
// farm with production (source), it finds the plans that deliver the most
// units, cheapest first, where every hop on someone else's boat costs one.
//
// Under the hood, everything is organized under these subpackages:
//
//	topology/       - arena-owned hubs, networks, carriers, sinks and sources
//	shipping/       - immutable search states, successors, 0/1 best-first search, plans
//	scenario/       - YAML and legacy text scenario files → topology
//	render/         - text and JSON plan output
//	internal/cli    - the indonesia command (solve, solve-legacy, inspect)
//	internal/config - YAML + environment settings
//
// Quick ASCII example:
//
//	Java ── Bali ── Lombok
//	 farm   Denpasar Mataram
//
// One ferry line calling at all three islands carries the farm's goods to
// both cities at no cost when the farm owns it, and at one per hop otherwise.
//
//	go run ./cmd/indonesia solve examples/moluccas.yaml
package indonesiacalc
