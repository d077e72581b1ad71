package scenario

import "errors"

// Sentinel errors returned by the scenario package.
var (
	// ErrUnknownHub indicates a reference to a hub that was never declared.
	ErrUnknownHub = errors.New("scenario: unknown hub")

	// ErrUnknownSource indicates the shipment names no declared source.
	ErrUnknownSource = errors.New("scenario: unknown source")

	// ErrMalformedLine indicates a legacy line that does not match its section.
	ErrMalformedLine = errors.New("scenario: malformed line")

	// ErrInvalid indicates any other validation failure.
	ErrInvalid = errors.New("scenario: invalid scenario")
)

// Scenario is the serialisable description of a topology and of the source
// to ship from.
type Scenario struct {
	Hubs     []HubSpec     `yaml:"hubs" json:"hubs"`
	Networks []NetworkSpec `yaml:"networks" json:"networks"`
	Sinks    []SinkSpec    `yaml:"sinks" json:"sinks"`
	Sources  []SourceSpec  `yaml:"sources" json:"sources"`

	// Shipment names the source to ship from. Optional in YAML.
	Shipment string `yaml:"shipment,omitempty" json:"shipment,omitempty"`
}

// HubSpec declares a hub and the hubs it is linked to. Linked hubs that are
// not declared elsewhere are created.
type HubSpec struct {
	Name  string   `yaml:"name" json:"name"`
	Links []string `yaml:"links,omitempty" json:"links,omitempty"`
}

// NetworkSpec declares a carrier network with one carrier at each listed hub.
type NetworkSpec struct {
	Owner    string   `yaml:"owner" json:"owner"`
	Name     string   `yaml:"name" json:"name"`
	Capacity int      `yaml:"capacity" json:"capacity"`
	Hubs     []string `yaml:"hubs" json:"hubs"`
}

// SinkSpec declares a demand sink.
type SinkSpec struct {
	Name   string   `yaml:"name" json:"name"`
	Demand int      `yaml:"demand" json:"demand"`
	Hubs   []string `yaml:"hubs" json:"hubs"`
}

// SourceSpec declares a supply source and its nodes.
type SourceSpec struct {
	Owner string     `yaml:"owner" json:"owner"`
	Name  string     `yaml:"name" json:"name"`
	Nodes []NodeSpec `yaml:"nodes" json:"nodes"`
}

// NodeSpec declares one supply node of a source.
type NodeSpec struct {
	Name       string   `yaml:"name" json:"name"`
	Production int      `yaml:"production" json:"production"`
	Hubs       []string `yaml:"hubs" json:"hubs"`
}
