package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MaxLap/indonesia-calc/topology"
)

// Parse decodes a YAML scenario from r and validates it.
func Parse(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("scenario: failed to parse YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Load reads and parses the YAML scenario at path.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: failed to read file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Validate checks names, counts and every hub reference. It stops at the
// first problem found.
func (s *Scenario) Validate() error {
	hubs := make(map[string]bool)
	for _, h := range s.Hubs {
		if h.Name == "" {
			return fmt.Errorf("%w: hub missing name", ErrInvalid)
		}
		hubs[h.Name] = true
		for _, l := range h.Links {
			if l == "" {
				return fmt.Errorf("%w: hub %q has an empty link", ErrInvalid, h.Name)
			}
			if l == h.Name {
				return fmt.Errorf("%w: hub %q is linked to itself", ErrInvalid, h.Name)
			}
			hubs[l] = true
		}
	}
	checkHubs := func(kind, name string, refs []string) error {
		for _, r := range refs {
			if !hubs[r] {
				return fmt.Errorf("%w: %q referenced by %s %q", ErrUnknownHub, r, kind, name)
			}
		}
		return nil
	}

	names := make(map[string]bool)
	for _, n := range s.Networks {
		if err := checkEntity("network", n.Name, n.Capacity, names); err != nil {
			return err
		}
		if err := checkHubs("network", n.Name, n.Hubs); err != nil {
			return err
		}
	}

	names = make(map[string]bool)
	for _, k := range s.Sinks {
		if err := checkEntity("sink", k.Name, k.Demand, names); err != nil {
			return err
		}
		if err := checkHubs("sink", k.Name, k.Hubs); err != nil {
			return err
		}
	}

	names = make(map[string]bool)
	for _, src := range s.Sources {
		if err := checkEntity("source", src.Name, 0, names); err != nil {
			return err
		}
		nodes := make(map[string]bool)
		for _, n := range src.Nodes {
			if err := checkEntity("supply node", n.Name, n.Production, nodes); err != nil {
				return err
			}
			if err := checkHubs("supply node", n.Name, n.Hubs); err != nil {
				return err
			}
		}
	}

	if s.Shipment != "" && !names[s.Shipment] {
		return fmt.Errorf("%w: %q", ErrUnknownSource, s.Shipment)
	}

	return nil
}

func checkEntity(kind, name string, count int, seen map[string]bool) error {
	if name == "" {
		return fmt.Errorf("%w: %s missing name", ErrInvalid, kind)
	}
	if seen[name] {
		return fmt.Errorf("%w: duplicate %s %q", ErrInvalid, kind, name)
	}
	seen[name] = true
	if count < 0 {
		return fmt.Errorf("%w: %s %q has negative count %d", ErrInvalid, kind, name, count)
	}

	return nil
}

// DefaultSource returns the source to ship from when none is requested:
// the shipment if set, otherwise the only source.
func (s *Scenario) DefaultSource() (string, error) {
	if s.Shipment != "" {
		return s.Shipment, nil
	}
	if len(s.Sources) == 1 {
		return s.Sources[0].Name, nil
	}

	return "", fmt.Errorf("%w: no shipment set and %d sources declared", ErrUnknownSource, len(s.Sources))
}

// Build validates s and assembles its Topology. Hubs come first, then
// sources, networks and sinks.
func (s *Scenario) Build() (*topology.Topology, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := topology.NewBuilder()
	for _, h := range s.Hubs {
		id, err := b.EnsureHub(h.Name)
		if err != nil {
			return nil, wrapBuild(err)
		}
		for _, l := range h.Links {
			other, err := b.EnsureHub(l)
			if err != nil {
				return nil, wrapBuild(err)
			}
			if err := b.LinkHubs(id, other); err != nil {
				return nil, wrapBuild(err)
			}
		}
	}

	hub := func(name string) topology.HubID {
		id, _ := b.EnsureHub(name) // declared, checked by Validate
		return id
	}

	for _, src := range s.Sources {
		sid, err := b.AddSource(src.Owner, src.Name)
		if err != nil {
			return nil, wrapBuild(err)
		}
		for _, n := range src.Nodes {
			nid, err := b.AddSupplyNode(sid, n.Name, n.Production)
			if err != nil {
				return nil, wrapBuild(err)
			}
			for _, h := range n.Hubs {
				if err := b.AttachSupplyNode(hub(h), nid); err != nil {
					return nil, wrapBuild(err)
				}
			}
		}
	}

	for _, n := range s.Networks {
		nid, err := b.AddNetwork(n.Owner, n.Name, n.Capacity)
		if err != nil {
			return nil, wrapBuild(err)
		}
		for _, h := range n.Hubs {
			if _, err := b.AttachCarrier(nid, hub(h)); err != nil {
				return nil, wrapBuild(err)
			}
		}
	}

	for _, k := range s.Sinks {
		kid, err := b.AddSink(k.Name, k.Demand)
		if err != nil {
			return nil, wrapBuild(err)
		}
		for _, h := range k.Hubs {
			if err := b.AttachSink(hub(h), kid); err != nil {
				return nil, wrapBuild(err)
			}
		}
	}

	return b.Build()
}

func wrapBuild(err error) error {
	return fmt.Errorf("scenario: build: %w", err)
}
