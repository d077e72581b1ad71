package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MaxLap/indonesia-calc/scenario"
	"github.com/MaxLap/indonesia-calc/topology"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario.yaml>",
	Short: "Print topology statistics and the reach of every farm",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	topo, err := sc.Build()
	if err != nil {
		return err
	}

	var sb strings.Builder
	st := topo.Stats()
	fmt.Fprintf(&sb, "hubs: %d (%d links)\n", st.Hubs, st.HubLinks)
	fmt.Fprintf(&sb, "networks: %d, carriers: %d (%d links), total capacity %d\n",
		st.Networks, st.Carriers, st.CarrierLinks, st.TotalCapacity)
	fmt.Fprintf(&sb, "sinks: %d, total demand %d\n", st.Sinks, st.TotalDemand)
	fmt.Fprintf(&sb, "sources: %d, supply nodes: %d\n", st.Sources, st.SupplyNodes)

	for _, src := range topo.Sources() {
		if err := describeSource(&sb, topo, src); err != nil {
			return err
		}
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}

func describeSource(sb *strings.Builder, topo *topology.Topology, src topology.Source) error {
	sinks, err := topo.ReachableSinks(src.ID)
	if err != nil {
		return err
	}
	limit, err := topo.MaxDeliverable(src.ID)
	if err != nil {
		return err
	}

	supply := 0
	for _, n := range topo.SourceNodes(src.ID) {
		node, _ := topo.SupplyNode(n)
		supply += node.Production
	}
	names := make([]string, 0, len(sinks))
	for _, k := range sinks {
		sink, _ := topo.Sink(k)
		names = append(names, sink.Name)
	}
	reach := "nothing"
	if len(names) > 0 {
		reach = strings.Join(names, ", ")
	}

	fmt.Fprintf(sb, "source %s (owner %s): supply %d, max deliverable %d, reaches %s\n",
		src.Name, src.Owner, supply, limit, reach)

	return nil
}
