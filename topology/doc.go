// SPDX-License-Identifier: MIT

// Package topology defines the read-only transport graph consumed by the
// shipment search: transfer hubs, carrier networks and their carrier nodes,
// demand sinks, and supply sources ("farms") with their supply nodes.
//
// Ownership model:
//
//   - The Topology owns every node in an arena; nodes are addressed by stable
//     integer handles (HubID, NetworkID, CarrierID, SinkID, SourceID,
//     SupplyNodeID) that double as vector positions for search state.
//   - Adjacency is stored as handle lists. All adjacency is symmetric.
//   - A Builder performs every mutation. Build seals it; the returned
//     Topology is immutable and safe to share between goroutines.
//
// Derived adjacency:
//
//   - Two carriers are linked iff they belong to the same network and sit at
//     hubs that are directly linked (one hop). Carriers of one network at the
//     same hub are not linked to each other.
//   - A carrier is linked to every sink attached to its hub.
//
// Both rules are applied by the Builder as soon as the relevant pieces exist,
// in whichever order hubs, carriers and sinks are attached.
//
// Quick ASCII example (network "ferry" owned by "ann"):
//
//	    [farm]
//	      │
//	    Java ──── Bali ──── (Denpasar)
//	   ferry@Java ── ferry@Bali ── Denpasar
//
// Errors:
//
//	ErrEmptyName          - an entity name is empty.
//	ErrDuplicateName      - a name is already used for this kind of entity.
//	ErrNegativeCount      - capacity, demand or production below zero.
//	ErrHubNotFound        - unknown HubID.
//	ErrNetworkNotFound    - unknown NetworkID.
//	ErrSinkNotFound       - unknown SinkID.
//	ErrSourceNotFound     - unknown SourceID.
//	ErrSupplyNodeNotFound - unknown SupplyNodeID.
//	ErrSelfLink           - a hub linked to itself.
//	ErrDuplicateCarrier   - a network already has a carrier at that hub.
//	ErrSealed             - the Builder was already sealed by Build.
package topology
