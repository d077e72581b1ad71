// Package render prints shipping plans for people and for programs.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MaxLap/indonesia-calc/shipping"
	"github.com/MaxLap/indonesia-calc/topology"
)

// NoSolution is printed when nothing can be shipped.
const NoSolution = "No solution can ship anything"

// Step is one transition of a plan in display form.
type Step struct {
	Move string `json:"move"`
	From string `json:"from"`
	To   string `json:"to"`
	Cost int    `json:"cost"`
}

// Document is the JSON form of a plan.
type Document struct {
	Solved         bool           `json:"solved"`
	Message        string         `json:"message,omitempty"`
	Source         string         `json:"source,omitempty"`
	Owner          string         `json:"owner,omitempty"`
	Shipped        int            `json:"shipped"`
	InitialSupply  int            `json:"initial_supply"`
	MaxDeliverable int            `json:"max_deliverable"`
	Cost           int            `json:"cost"`
	Deliveries     map[string]int `json:"deliveries,omitempty"`
	Steps          []Step         `json:"steps,omitempty"`
}

// Steps names every transition of plan after the initial state.
func Steps(topo *topology.Topology, plan *shipping.Plan) []Step {
	if plan == nil || len(plan.States) < 2 {
		return nil
	}
	out := make([]Step, 0, len(plan.States)-1)
	for _, s := range plan.States[1:] {
		mv := s.Move()
		step := Step{Move: mv.Kind.String(), Cost: s.Cost()}
		switch mv.Kind {
		case shipping.MoveExtract:
			node, _ := topo.SupplyNode(mv.SupplyNode)
			step.From = node.Name
			step.To = topo.CarrierLabel(mv.Carrier)
		case shipping.MoveCarry:
			from, _ := s.Predecessor().CarriedAt()
			step.From = topo.CarrierLabel(from)
			step.To = topo.CarrierLabel(mv.Carrier)
		case shipping.MoveDeliver:
			sink, _ := topo.Sink(mv.Sink)
			step.From = topo.CarrierLabel(mv.Carrier)
			step.To = sink.Name
		}
		out = append(out, step)
	}

	return out
}

// Text writes a human-readable plan. A nil plan prints NoSolution.
func Text(w io.Writer, topo *topology.Topology, plan *shipping.Plan) error {
	if plan == nil {
		_, err := fmt.Fprintln(w, NoSolution)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source %s (owner %s)\n", plan.Source, plan.Owner)
	fmt.Fprintf(&sb, "Shipped %d of %d (max deliverable %d) at cost %d\n",
		plan.Shipped, plan.InitialSupply, plan.MaxDeliverable, plan.Cost)
	for i, st := range Steps(topo, plan) {
		fmt.Fprintf(&sb, "%3d. %-7s %s -> %s [cost %d]\n", i+1, st.Move, st.From, st.To, st.Cost)
	}
	_, err := io.WriteString(w, sb.String())

	return err
}

// JSON writes plan as an indented Document.
func JSON(w io.Writer, topo *topology.Topology, plan *shipping.Plan) error {
	doc := Document{Message: NoSolution}
	if plan != nil {
		doc = Document{
			Solved:         true,
			Source:         plan.Source,
			Owner:          plan.Owner,
			Shipped:        plan.Shipped,
			InitialSupply:  plan.InitialSupply,
			MaxDeliverable: plan.MaxDeliverable,
			Cost:           plan.Cost,
			Deliveries:     make(map[string]int),
			Steps:          Steps(topo, plan),
		}
		for id, n := range plan.Deliveries() {
			sink, _ := topo.Sink(id)
			doc.Deliveries[sink.Name] = n
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
