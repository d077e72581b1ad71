// SPDX-License-Identifier: MIT
package topology_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxLap/indonesia-calc/topology"
)

// archipelago builds:
//
//	Java ── Bali ── Lombok      Sumatra (isolated)
//
// ferry (ann, cap 2) at Java, Bali, Lombok; barge (bob, cap 1) at Sumatra.
// Denpasar@Bali (4), Mataram@Lombok (2), Medan@Sumatra (5).
// farm "ricefield" (ann) injects at Java.
func archipelago(t *testing.T) *topology.Topology {
	t.Helper()
	b := topology.NewBuilder()
	must := func(err error) { require.NoError(t, err) }

	java, _ := b.EnsureHub(HubJava)
	bali, _ := b.EnsureHub(HubBali)
	lombok, _ := b.EnsureHub(HubLombok)
	sumatra, _ := b.EnsureHub("Sumatra")
	must(b.LinkHubs(java, bali))
	must(b.LinkHubs(bali, lombok))

	ferry, err := b.AddNetwork(OwnerAnn, NetFerry, 2)
	must(err)
	for _, h := range []topology.HubID{java, bali, lombok} {
		_, err = b.AttachCarrier(ferry, h)
		must(err)
	}
	barge, err := b.AddNetwork(OwnerBob, NetBarge, 1)
	must(err)
	_, err = b.AttachCarrier(barge, sumatra)
	must(err)

	for _, sk := range []struct {
		name   string
		demand int
		hub    topology.HubID
	}{{SinkDenpasar, 4, bali}, {SinkMataram, 2, lombok}, {"Medan", 5, sumatra}} {
		id, err := b.AddSink(sk.name, sk.demand)
		must(err)
		must(b.AttachSink(sk.hub, id))
	}

	src, err := b.AddSource(OwnerAnn, "ricefield")
	must(err)
	n, err := b.AddSupplyNode(src, "paddy", 3)
	must(err)
	must(b.AttachSupplyNode(java, n))

	topo, err := b.Build()
	must(err)

	return topo
}

func TestReachableSinksAndMaxDeliverable(t *testing.T) {
	topo := archipelago(t)
	src, ok := topo.SourceByName("ricefield")
	require.True(t, ok)

	sinks, err := topo.ReachableSinks(src)
	require.NoError(t, err)
	den, _ := topo.SinkByName(SinkDenpasar)
	mat, _ := topo.SinkByName(SinkMataram)
	require.Equal(t, []topology.SinkID{den, mat}, sinks)

	limit, err := topo.MaxDeliverable(src)
	require.NoError(t, err)
	require.Equal(t, 6, limit)

	_, err = topo.ReachableSinks(99)
	require.ErrorIs(t, err, topology.ErrSourceNotFound)
	_, err = topo.MaxDeliverable(-1)
	require.ErrorIs(t, err, topology.ErrSourceNotFound)
}

func TestStats(t *testing.T) {
	st := archipelago(t).Stats()
	assert.Equal(t, 4, st.Hubs)
	assert.Equal(t, 2, st.HubLinks)
	assert.Equal(t, 2, st.Networks)
	assert.Equal(t, 4, st.Carriers)
	assert.Equal(t, 2, st.CarrierLinks)
	assert.Equal(t, 3, st.Sinks)
	assert.Equal(t, 1, st.Sources)
	assert.Equal(t, 1, st.SupplyNodes)
	assert.Equal(t, 11, st.TotalDemand)
	assert.Equal(t, 7, st.TotalCapacity)
}

func TestLookupsAndLabels(t *testing.T) {
	topo := archipelago(t)

	bali, ok := topo.HubByName(HubBali)
	require.True(t, ok)
	cs := topo.HubCarriers(bali)
	require.Len(t, cs, 1)
	require.Equal(t, "ferry@Bali", topo.CarrierLabel(cs[0]))
	require.Equal(t, OwnerAnn, topo.CarrierOwner(cs[0]))
	require.Equal(t, "carrier#-1", topo.CarrierLabel(topology.NoCarrier))

	_, ok = topo.Hub(-1)
	require.False(t, ok)
	_, ok = topo.Carrier(100)
	require.False(t, ok)
	_, ok = topo.NetworkByName("zeppelin")
	require.False(t, ok)

	net, ok := topo.NetworkByName(NetFerry)
	require.True(t, ok)
	require.Len(t, topo.NetworkCarriers(net), 3)
}

// TestAdjacencySymmetry builds random topologies in random order and checks
// that every derived link is mirrored and respects the one-hop rule.
func TestAdjacencySymmetry(t *testing.T) {
	const (
		nHubs     = 12
		nNetworks = 3
		nLinks    = 20
		nSinks    = 6
		rounds    = 25
	)
	for round := 0; round < rounds; round++ {
		rng := rand.New(rand.NewSource(int64(round)))
		b := topology.NewBuilder()
		hubs := make([]topology.HubID, nHubs)
		for i := range hubs {
			hubs[i], _ = b.EnsureHub(fmt.Sprintf("H%d", i))
		}
		nets := make([]topology.NetworkID, nNetworks)
		for i := range nets {
			nets[i], _ = b.AddNetwork(fmt.Sprintf("o%d", i%2), fmt.Sprintf("N%d", i), 1)
		}
		sinks := make([]topology.SinkID, nSinks)
		for i := range sinks {
			sinks[i], _ = b.AddSink(fmt.Sprintf("S%d", i), 1)
		}

		// interleave every kind of operation so cascades are exercised
		for step := 0; step < 3*nLinks; step++ {
			switch rng.Intn(3) {
			case 0:
				u, v := hubs[rng.Intn(nHubs)], hubs[rng.Intn(nHubs)]
				if u != v {
					require.NoError(t, b.LinkHubs(u, v))
				}
			case 1:
				_, _ = b.AttachCarrier(nets[rng.Intn(nNetworks)], hubs[rng.Intn(nHubs)])
			case 2:
				require.NoError(t, b.AttachSink(hubs[rng.Intn(nHubs)], sinks[rng.Intn(nSinks)]))
			}
		}
		topo, err := b.Build()
		require.NoError(t, err)

		for _, c := range topo.Carriers() {
			for _, other := range topo.CarrierLinks(c.ID) {
				oc, _ := topo.Carrier(other)
				require.Contains(t, topo.CarrierLinks(other), c.ID, "carrier link not mirrored")
				require.Equal(t, c.Network, oc.Network)
				require.True(t, slices.Contains(topo.HubNeighbors(c.Hub), oc.Hub), "carrier link skips a hub hop")
			}
			// every co-network carrier one hop away must be linked
			for _, n := range topo.HubNeighbors(c.Hub) {
				for _, other := range topo.HubCarriers(n) {
					oc, _ := topo.Carrier(other)
					if oc.Network == c.Network {
						require.Contains(t, topo.CarrierLinks(c.ID), other)
					}
				}
			}
			require.ElementsMatch(t, topo.HubSinks(c.Hub), topo.CarrierSinks(c.ID))
		}
		for i := 0; i < nHubs; i++ {
			for _, n := range topo.HubNeighbors(topology.HubID(i)) {
				require.Contains(t, topo.HubNeighbors(n), topology.HubID(i))
			}
			for _, s := range topo.HubSinks(topology.HubID(i)) {
				require.Contains(t, topo.SinkHubs(s), topology.HubID(i))
			}
		}
	}
}
