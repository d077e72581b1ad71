// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: The only mutating surface of the package. Every Attach/Link call
//       applies its cascading adjacency immediately so the graph is always
//       symmetric and order-independent.
// Policy:
//   - Validate handles and counts before touching any list.
//   - Never mutate after Build.

package topology

import (
	"fmt"
	"slices"
)

// Builder assembles a Topology. It is not safe for concurrent use.
type Builder struct {
	t      *Topology
	sealed bool
}

// NewBuilder returns an empty Builder.
// Complexity: O(1)
func NewBuilder() *Builder {
	return &Builder{t: newTopology()}
}

// AddHub creates a hub with a unique name.
//
// Errors:
//   - ErrSealed, ErrEmptyName, ErrDuplicateName.
//
// Complexity: O(1)
func (b *Builder) AddHub(name string) (HubID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if _, ok := b.t.hubByName[name]; ok {
		return 0, fmt.Errorf("%w: hub %q", ErrDuplicateName, name)
	}

	return b.addHub(name), nil
}

// EnsureHub returns the hub named name, creating it when absent.
//
// Errors:
//   - ErrSealed, ErrEmptyName.
//
// Complexity: O(1)
func (b *Builder) EnsureHub(name string) (HubID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if id, ok := b.t.hubByName[name]; ok {
		return id, nil
	}

	return b.addHub(name), nil
}

func (b *Builder) addHub(name string) HubID {
	id := HubID(len(b.t.hubs))
	b.t.hubs = append(b.t.hubs, Hub{ID: id, Name: name})
	b.t.hubByName[name] = id

	return id
}

// LinkHubs makes hubs u and v mutually adjacent. Linking an already linked
// pair is a no-op.
//
// Implementation:
//   - Stage 1: Validate both handles and reject self-links.
//   - Stage 2: Append each hub to the other's neighbor list.
//   - Stage 3: Pair every co-network carrier sitting at u with those at v.
//
// Errors:
//   - ErrSealed, ErrHubNotFound, ErrSelfLink.
//
// Complexity:
//   - Time O(deg(u) + Cu*Cv) where Cu, Cv are the carrier counts at u and v.
func (b *Builder) LinkHubs(u, v HubID) error {
	if b.sealed {
		return ErrSealed
	}
	if err := b.checkHub(u); err != nil {
		return err
	}
	if err := b.checkHub(v); err != nil {
		return err
	}
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLink, b.t.hubs[u].Name)
	}

	hu, hv := &b.t.hubs[u], &b.t.hubs[v]
	if slices.Contains(hu.hubs, v) {
		return nil
	}
	hu.hubs = append(hu.hubs, v)
	hv.hubs = append(hv.hubs, u)

	// Carriers attached before this link was known become linked now.
	var x, y CarrierID
	for _, x = range hu.carriers {
		for _, y = range hv.carriers {
			if b.t.carriers[x].Network == b.t.carriers[y].Network {
				b.linkCarriers(x, y)
			}
		}
	}

	return nil
}

// AddNetwork creates a carrier network. capacity is the per-carrier limit.
//
// Errors:
//   - ErrSealed, ErrEmptyName, ErrDuplicateName, ErrNegativeCount.
//
// Complexity: O(1)
func (b *Builder) AddNetwork(owner, name string, capacity int) (NetworkID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if _, ok := b.t.networkByName[name]; ok {
		return 0, fmt.Errorf("%w: network %q", ErrDuplicateName, name)
	}
	if capacity < 0 {
		return 0, fmt.Errorf("%w: network %q capacity %d", ErrNegativeCount, name, capacity)
	}

	id := NetworkID(len(b.t.networks))
	b.t.networks = append(b.t.networks, Network{ID: id, Owner: owner, Name: name, Capacity: capacity})
	b.t.networkByName[name] = id

	return id, nil
}

// AttachCarrier places a new carrier of network at hub.
//
// Implementation:
//   - Stage 1: Validate handles; one carrier per (network, hub).
//   - Stage 2: Link the carrier with every co-network carrier at each hub
//     directly adjacent to hub (one hop, not transitive).
//   - Stage 3: Inherit the sinks already attached to hub.
//
// Errors:
//   - ErrSealed, ErrNetworkNotFound, ErrHubNotFound, ErrDuplicateCarrier.
//
// Complexity:
//   - Time O(sum of carrier counts over neighbors of hub).
func (b *Builder) AttachCarrier(network NetworkID, hub HubID) (CarrierID, error) {
	if b.sealed {
		return 0, ErrSealed
	}
	if err := b.checkNetwork(network); err != nil {
		return 0, err
	}
	if err := b.checkHub(hub); err != nil {
		return 0, err
	}
	h := &b.t.hubs[hub]
	var other CarrierID
	for _, other = range h.carriers {
		if b.t.carriers[other].Network == network {
			return 0, fmt.Errorf("%w: %q at %q", ErrDuplicateCarrier, b.t.networks[network].Name, h.Name)
		}
	}

	id := CarrierID(len(b.t.carriers))
	b.t.carriers = append(b.t.carriers, Carrier{
		ID:      id,
		Network: network,
		Hub:     hub,
		sinks:   slices.Clone(h.sinks),
	})

	var n HubID
	for _, n = range h.hubs {
		for _, other = range b.t.hubs[n].carriers {
			if b.t.carriers[other].Network == network {
				b.linkCarriers(id, other)
			}
		}
	}

	h.carriers = append(h.carriers, id)
	net := &b.t.networks[network]
	net.carriers = append(net.carriers, id)

	return id, nil
}

// AddSink creates a demand sink.
//
// Errors:
//   - ErrSealed, ErrEmptyName, ErrDuplicateName, ErrNegativeCount.
//
// Complexity: O(1)
func (b *Builder) AddSink(name string, demand int) (SinkID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if _, ok := b.t.sinkByName[name]; ok {
		return 0, fmt.Errorf("%w: sink %q", ErrDuplicateName, name)
	}
	if demand < 0 {
		return 0, fmt.Errorf("%w: sink %q demand %d", ErrNegativeCount, name, demand)
	}

	id := SinkID(len(b.t.sinks))
	b.t.sinks = append(b.t.sinks, Sink{ID: id, Name: name, Demand: demand})
	b.t.sinkByName[name] = id

	return id, nil
}

// AttachSink makes sink reachable from hub and from every carrier at hub.
// Attaching twice is a no-op.
//
// Errors:
//   - ErrSealed, ErrHubNotFound, ErrSinkNotFound.
//
// Complexity: O(deg(hub) + carriers at hub)
func (b *Builder) AttachSink(hub HubID, sink SinkID) error {
	if b.sealed {
		return ErrSealed
	}
	if err := b.checkHub(hub); err != nil {
		return err
	}
	if err := b.checkSink(sink); err != nil {
		return err
	}

	h := &b.t.hubs[hub]
	if slices.Contains(h.sinks, sink) {
		return nil
	}
	h.sinks = append(h.sinks, sink)
	s := &b.t.sinks[sink]
	s.hubs = append(s.hubs, hub)

	var c CarrierID
	for _, c = range h.carriers {
		if !slices.Contains(b.t.carriers[c].sinks, sink) {
			b.t.carriers[c].sinks = append(b.t.carriers[c].sinks, sink)
		}
	}

	return nil
}

// AddSource creates a supply source owned by owner.
//
// Errors:
//   - ErrSealed, ErrEmptyName, ErrDuplicateName.
//
// Complexity: O(1)
func (b *Builder) AddSource(owner, name string) (SourceID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if _, ok := b.t.sourceByName[name]; ok {
		return 0, fmt.Errorf("%w: source %q", ErrDuplicateName, name)
	}

	id := SourceID(len(b.t.sources))
	b.t.sources = append(b.t.sources, Source{ID: id, Owner: owner, Name: name})
	b.t.sourceByName[name] = id

	return id, nil
}

// AddSupplyNode appends a supply node producing production units to source.
// Names are unique within one source.
//
// Errors:
//   - ErrSealed, ErrEmptyName, ErrSourceNotFound, ErrDuplicateName, ErrNegativeCount.
//
// Complexity: O(nodes of source)
func (b *Builder) AddSupplyNode(source SourceID, name string, production int) (SupplyNodeID, error) {
	if err := b.checkName(name); err != nil {
		return 0, err
	}
	if err := b.checkSource(source); err != nil {
		return 0, err
	}
	src := &b.t.sources[source]
	var n SupplyNodeID
	for _, n = range src.nodes {
		if b.t.supplyNodes[n].Name == name {
			return 0, fmt.Errorf("%w: supply node %q in %q", ErrDuplicateName, name, src.Name)
		}
	}
	if production < 0 {
		return 0, fmt.Errorf("%w: supply node %q production %d", ErrNegativeCount, name, production)
	}

	id := SupplyNodeID(len(b.t.supplyNodes))
	b.t.supplyNodes = append(b.t.supplyNodes, SupplyNode{ID: id, Source: source, Name: name, Production: production})
	src.nodes = append(src.nodes, id)

	return id, nil
}

// AttachSupplyNode lets node inject units at hub. Attaching twice is a no-op.
//
// Errors:
//   - ErrSealed, ErrHubNotFound, ErrSupplyNodeNotFound.
//
// Complexity: O(hubs of node)
func (b *Builder) AttachSupplyNode(hub HubID, node SupplyNodeID) error {
	if b.sealed {
		return ErrSealed
	}
	if err := b.checkHub(hub); err != nil {
		return err
	}
	if node < 0 || int(node) >= len(b.t.supplyNodes) {
		return fmt.Errorf("%w: %d", ErrSupplyNodeNotFound, node)
	}

	sn := &b.t.supplyNodes[node]
	if !slices.Contains(sn.hubs, hub) {
		sn.hubs = append(sn.hubs, hub)
	}

	return nil
}

// Build seals the Builder and returns the finished Topology. The Builder
// rejects every later call with ErrSealed.
//
// Complexity: O(1)
func (b *Builder) Build() (*Topology, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true

	return b.t, nil
}

func (b *Builder) linkCarriers(x, y CarrierID) {
	cx, cy := &b.t.carriers[x], &b.t.carriers[y]
	if slices.Contains(cx.links, y) {
		return
	}
	cx.links = append(cx.links, y)
	cy.links = append(cy.links, x)
}

func (b *Builder) checkName(name string) error {
	if b.sealed {
		return ErrSealed
	}
	if name == "" {
		return ErrEmptyName
	}

	return nil
}

func (b *Builder) checkHub(id HubID) error {
	if id < 0 || int(id) >= len(b.t.hubs) {
		return fmt.Errorf("%w: %d", ErrHubNotFound, id)
	}

	return nil
}

func (b *Builder) checkNetwork(id NetworkID) error {
	if id < 0 || int(id) >= len(b.t.networks) {
		return fmt.Errorf("%w: %d", ErrNetworkNotFound, id)
	}

	return nil
}

func (b *Builder) checkSink(id SinkID) error {
	if id < 0 || int(id) >= len(b.t.sinks) {
		return fmt.Errorf("%w: %d", ErrSinkNotFound, id)
	}

	return nil
}

func (b *Builder) checkSource(id SourceID) error {
	if id < 0 || int(id) >= len(b.t.sources) {
		return fmt.Errorf("%w: %d", ErrSourceNotFound, id)
	}

	return nil
}
