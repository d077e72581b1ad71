// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Handles, entity types and sentinel errors of the transport graph.
// Policy:
//   - Entities are plain values; adjacency lists are unexported and exposed
//     read-only through methods.
//   - Handles are dense indices assigned in creation order.

package topology

import "errors"

// Sentinel errors for topology construction and lookup.
var (
	// ErrEmptyName indicates that an entity was created with an empty name.
	ErrEmptyName = errors.New("topology: name is empty")

	// ErrDuplicateName indicates that a name is already taken within its kind.
	ErrDuplicateName = errors.New("topology: duplicate name")

	// ErrNegativeCount indicates a capacity, demand or production below zero.
	ErrNegativeCount = errors.New("topology: count must be non-negative")

	// ErrHubNotFound indicates an operation referenced an unknown hub.
	ErrHubNotFound = errors.New("topology: hub not found")

	// ErrNetworkNotFound indicates an operation referenced an unknown carrier network.
	ErrNetworkNotFound = errors.New("topology: network not found")

	// ErrSinkNotFound indicates an operation referenced an unknown demand sink.
	ErrSinkNotFound = errors.New("topology: sink not found")

	// ErrSourceNotFound indicates an operation referenced an unknown supply source.
	ErrSourceNotFound = errors.New("topology: source not found")

	// ErrSupplyNodeNotFound indicates an operation referenced an unknown supply node.
	ErrSupplyNodeNotFound = errors.New("topology: supply node not found")

	// ErrSelfLink indicates an attempt to link a hub to itself.
	ErrSelfLink = errors.New("topology: hub cannot be linked to itself")

	// ErrDuplicateCarrier indicates a network already has a carrier at the hub.
	ErrDuplicateCarrier = errors.New("topology: network already has a carrier at hub")

	// ErrSealed indicates the Builder was already sealed by Build.
	ErrSealed = errors.New("topology: builder is sealed")
)

// HubID addresses a transfer hub.
type HubID int

// NetworkID addresses a carrier network.
type NetworkID int

// CarrierID addresses a carrier node. It is also the index of the carrier
// in capacity vectors.
type CarrierID int

// SinkID addresses a demand sink. It is also the index of the sink in
// demand vectors.
type SinkID int

// SourceID addresses a supply source (a "farm").
type SourceID int

// SupplyNodeID addresses a supply node across all sources.
type SupplyNodeID int

// NoCarrier is the zero-location sentinel: no carrier holds a unit.
const NoCarrier CarrierID = -1

// Hub is a transfer point connecting carriers, sinks and supply nodes.
type Hub struct {
	ID   HubID
	Name string

	hubs     []HubID     // directly linked hubs
	sinks    []SinkID    // sinks reachable from this hub
	carriers []CarrierID // carriers sitting at this hub
}

// Network is an owned set of capacity-limited carriers.
//
// Capacity applies to each carrier node separately; it is never pooled
// across the network.
type Network struct {
	ID       NetworkID
	Owner    string
	Name     string
	Capacity int

	carriers []CarrierID // in attach order
}

// Carrier is one node of a Network sitting at exactly one Hub.
type Carrier struct {
	ID      CarrierID
	Network NetworkID
	Hub     HubID

	links []CarrierID // co-network carriers at adjacent hubs
	sinks []SinkID    // sinks attached to Hub
}

// Sink is a consumer of shipped units (a "city").
type Sink struct {
	ID     SinkID
	Name   string
	Demand int

	hubs []HubID
}

// Source is a producer of shippable units (a "farm") with an owner.
type Source struct {
	ID    SourceID
	Owner string
	Name  string

	nodes []SupplyNodeID // in creation order
}

// SupplyNode is a single production point of a Source.
type SupplyNode struct {
	ID         SupplyNodeID
	Source     SourceID
	Name       string
	Production int

	hubs []HubID
}

// Stats is a read-only summary of a Topology.
type Stats struct {
	Hubs          int
	HubLinks      int // undirected, counted once
	Networks      int
	Carriers      int
	CarrierLinks  int // undirected, counted once
	Sinks         int
	Sources       int
	SupplyNodes   int
	TotalDemand   int
	TotalCapacity int
}
