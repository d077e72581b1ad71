// SPDX-License-Identifier: MIT
//
// File: topology.go
// Role: Read-only query surface of a sealed transport graph.
// Policy:
//   - Returned handle slices are shared with the Topology and must not be
//     modified by callers.
//   - Lookups by handle panic-free: unknown handles report ok=false or
//     return a wrapped sentinel error.

package topology

import (
	"fmt"
	"slices"
)

// Topology is the immutable transport graph produced by Builder.Build.
// It is safe for concurrent readers.
type Topology struct {
	hubs        []Hub
	networks    []Network
	carriers    []Carrier
	sinks       []Sink
	sources     []Source
	supplyNodes []SupplyNode

	hubByName     map[string]HubID
	networkByName map[string]NetworkID
	sinkByName    map[string]SinkID
	sourceByName  map[string]SourceID
}

func newTopology() *Topology {
	return &Topology{
		hubByName:     make(map[string]HubID),
		networkByName: make(map[string]NetworkID),
		sinkByName:    make(map[string]SinkID),
		sourceByName:  make(map[string]SourceID),
	}
}

// NumHubs returns the number of hubs.
func (t *Topology) NumHubs() int { return len(t.hubs) }

// NumNetworks returns the number of carrier networks.
func (t *Topology) NumNetworks() int { return len(t.networks) }

// NumCarriers returns the number of carrier nodes; capacity vectors have this length.
func (t *Topology) NumCarriers() int { return len(t.carriers) }

// NumSinks returns the number of demand sinks; demand vectors have this length.
func (t *Topology) NumSinks() int { return len(t.sinks) }

// NumSources returns the number of supply sources.
func (t *Topology) NumSources() int { return len(t.sources) }

// Hub returns the hub with the given handle.
func (t *Topology) Hub(id HubID) (Hub, bool) {
	if id < 0 || int(id) >= len(t.hubs) {
		return Hub{}, false
	}

	return t.hubs[id], true
}

// Network returns the network with the given handle.
func (t *Topology) Network(id NetworkID) (Network, bool) {
	if id < 0 || int(id) >= len(t.networks) {
		return Network{}, false
	}

	return t.networks[id], true
}

// Carrier returns the carrier with the given handle.
func (t *Topology) Carrier(id CarrierID) (Carrier, bool) {
	if id < 0 || int(id) >= len(t.carriers) {
		return Carrier{}, false
	}

	return t.carriers[id], true
}

// Sink returns the sink with the given handle.
func (t *Topology) Sink(id SinkID) (Sink, bool) {
	if id < 0 || int(id) >= len(t.sinks) {
		return Sink{}, false
	}

	return t.sinks[id], true
}

// Source returns the supply source with the given handle.
func (t *Topology) Source(id SourceID) (Source, bool) {
	if id < 0 || int(id) >= len(t.sources) {
		return Source{}, false
	}

	return t.sources[id], true
}

// SupplyNode returns the supply node with the given handle.
func (t *Topology) SupplyNode(id SupplyNodeID) (SupplyNode, bool) {
	if id < 0 || int(id) >= len(t.supplyNodes) {
		return SupplyNode{}, false
	}

	return t.supplyNodes[id], true
}

// HubByName looks a hub up by name.
func (t *Topology) HubByName(name string) (HubID, bool) {
	id, ok := t.hubByName[name]
	return id, ok
}

// NetworkByName looks a network up by name.
func (t *Topology) NetworkByName(name string) (NetworkID, bool) {
	id, ok := t.networkByName[name]
	return id, ok
}

// SinkByName looks a sink up by name.
func (t *Topology) SinkByName(name string) (SinkID, bool) {
	id, ok := t.sinkByName[name]
	return id, ok
}

// SourceByName looks a supply source up by name.
func (t *Topology) SourceByName(name string) (SourceID, bool) {
	id, ok := t.sourceByName[name]
	return id, ok
}

// Sources returns every supply source in creation order.
func (t *Topology) Sources() []Source { return slices.Clone(t.sources) }

// Sinks returns every demand sink in creation order.
func (t *Topology) Sinks() []Sink { return slices.Clone(t.sinks) }

// Carriers returns every carrier node in creation order.
func (t *Topology) Carriers() []Carrier { return slices.Clone(t.carriers) }

// HubNeighbors returns the hubs directly linked to h.
func (t *Topology) HubNeighbors(h HubID) []HubID { return t.hubs[h].hubs }

// HubSinks returns the sinks attached to h.
func (t *Topology) HubSinks(h HubID) []SinkID { return t.hubs[h].sinks }

// HubCarriers returns the carriers sitting at h, in attach order.
func (t *Topology) HubCarriers(h HubID) []CarrierID { return t.hubs[h].carriers }

// NetworkCarriers returns the carriers of n, in attach order.
func (t *Topology) NetworkCarriers(n NetworkID) []CarrierID { return t.networks[n].carriers }

// CarrierLinks returns the carriers that can take a unit directly from c.
func (t *Topology) CarrierLinks(c CarrierID) []CarrierID { return t.carriers[c].links }

// CarrierSinks returns the sinks c can deliver to.
func (t *Topology) CarrierSinks(c CarrierID) []SinkID { return t.carriers[c].sinks }

// CarrierOwner returns the owner of the network c belongs to.
func (t *Topology) CarrierOwner(c CarrierID) string {
	return t.networks[t.carriers[c].Network].Owner
}

// SinkHubs returns the hubs s is attached to.
func (t *Topology) SinkHubs(s SinkID) []HubID { return t.sinks[s].hubs }

// SourceNodes returns the supply nodes of src in creation order.
func (t *Topology) SourceNodes(src SourceID) []SupplyNodeID { return t.sources[src].nodes }

// SupplyNodeHubs returns the hubs n can inject units into.
func (t *Topology) SupplyNodeHubs(n SupplyNodeID) []HubID { return t.supplyNodes[n].hubs }

// CarrierLabel renders a carrier as "network@hub".
func (t *Topology) CarrierLabel(c CarrierID) string {
	if c < 0 || int(c) >= len(t.carriers) {
		return fmt.Sprintf("carrier#%d", c)
	}
	car := t.carriers[c]

	return t.networks[car.Network].Name + "@" + t.hubs[car.Hub].Name
}

// ReachableSinks returns the sinks a unit from src could ever reach,
// ordered by SinkID.
//
// Implementation:
//   - Stage 1: Collect the networks of every carrier at a hub of any supply node of src.
//   - Stage 2: Union the sinks linked to any carrier of those networks.
//
// Errors:
//   - ErrSourceNotFound.
//
// Complexity:
//   - Time O(N + C + S) over supply-node hubs, carriers and sinks.
func (t *Topology) ReachableSinks(src SourceID) ([]SinkID, error) {
	if src < 0 || int(src) >= len(t.sources) {
		return nil, fmt.Errorf("%w: %d", ErrSourceNotFound, src)
	}

	networks := make([]bool, len(t.networks))
	var n SupplyNodeID
	var h HubID
	var c CarrierID
	for _, n = range t.sources[src].nodes {
		for _, h = range t.supplyNodes[n].hubs {
			for _, c = range t.hubs[h].carriers {
				networks[t.carriers[c].Network] = true
			}
		}
	}

	seen := make([]bool, len(t.sinks))
	for i := range t.carriers {
		if !networks[t.carriers[i].Network] {
			continue
		}
		for _, s := range t.carriers[i].sinks {
			seen[s] = true
		}
	}

	out := make([]SinkID, 0, len(t.sinks))
	for i, ok := range seen {
		if ok {
			out = append(out, SinkID(i))
		}
	}

	return out, nil
}

// MaxDeliverable is the sum of demand over ReachableSinks(src): an upper
// bound on what any plan from src can deliver.
//
// Errors:
//   - ErrSourceNotFound.
func (t *Topology) MaxDeliverable(src SourceID) (int, error) {
	sinks, err := t.ReachableSinks(src)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, s := range sinks {
		total += t.sinks[s].Demand
	}

	return total, nil
}

// Stats returns a summary of counts and totals.
// Complexity: O(H + C + S)
func (t *Topology) Stats() Stats {
	st := Stats{
		Hubs:        len(t.hubs),
		Networks:    len(t.networks),
		Carriers:    len(t.carriers),
		Sinks:       len(t.sinks),
		Sources:     len(t.sources),
		SupplyNodes: len(t.supplyNodes),
	}
	for i := range t.hubs {
		st.HubLinks += len(t.hubs[i].hubs)
	}
	st.HubLinks /= 2
	for i := range t.carriers {
		st.CarrierLinks += len(t.carriers[i].links)
		st.TotalCapacity += t.networks[t.carriers[i].Network].Capacity
	}
	st.CarrierLinks /= 2
	for i := range t.sinks {
		st.TotalDemand += t.sinks[i].Demand
	}

	return st
}
