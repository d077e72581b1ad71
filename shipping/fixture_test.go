package shipping_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MaxLap/indonesia-calc/topology"
)

// Common owners and names used across shipping tests.
const (
	OwnerAnn = "ann"
	OwnerBob = "bob"

	FarmName = "ricefield"
)

// fixture is a terse topology builder that fails the test on any error.
type fixture struct {
	t *testing.T
	b *topology.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, b: topology.NewBuilder()}
}

func (f *fixture) hub(name string) topology.HubID {
	f.t.Helper()
	id, err := f.b.EnsureHub(name)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) link(a, b string) {
	f.t.Helper()
	require.NoError(f.t, f.b.LinkHubs(f.hub(a), f.hub(b)))
}

func (f *fixture) network(owner, name string, capacity int, hubs ...string) []topology.CarrierID {
	f.t.Helper()
	net, err := f.b.AddNetwork(owner, name, capacity)
	require.NoError(f.t, err)
	out := make([]topology.CarrierID, 0, len(hubs))
	for _, h := range hubs {
		c, err := f.b.AttachCarrier(net, f.hub(h))
		require.NoError(f.t, err)
		out = append(out, c)
	}
	return out
}

func (f *fixture) sink(name string, demand int, hubs ...string) topology.SinkID {
	f.t.Helper()
	id, err := f.b.AddSink(name, demand)
	require.NoError(f.t, err)
	for _, h := range hubs {
		require.NoError(f.t, f.b.AttachSink(f.hub(h), id))
	}
	return id
}

func (f *fixture) farm(owner, name string) topology.SourceID {
	f.t.Helper()
	id, err := f.b.AddSource(owner, name)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) node(src topology.SourceID, name string, production int, hubs ...string) topology.SupplyNodeID {
	f.t.Helper()
	id, err := f.b.AddSupplyNode(src, name, production)
	require.NoError(f.t, err)
	for _, h := range hubs {
		require.NoError(f.t, f.b.AttachSupplyNode(f.hub(h), id))
	}
	return id
}

func (f *fixture) build() *topology.Topology {
	f.t.Helper()
	topo, err := f.b.Build()
	require.NoError(f.t, err)
	return topo
}

// singleHub is one hub holding a farm node, one carrier and one sink.
func singleHub(t *testing.T, carrierOwner string, production, capacity, demand int) *topology.Topology {
	t.Helper()
	f := newFixture(t)
	f.network(carrierOwner, "ferry", capacity, "Java")
	f.sink("Jakarta", demand, "Java")
	src := f.farm(OwnerAnn, FarmName)
	f.node(src, "paddy", production, "Java")
	return f.build()
}

// chain is Java ── Bali ── Lombok served by one network owned by carrierOwner,
// with Denpasar@Bali and Mataram@Lombok.
func chain(t *testing.T, carrierOwner string, production, capacity, denpasar, mataram int) *topology.Topology {
	t.Helper()
	f := newFixture(t)
	f.link("Java", "Bali")
	f.link("Bali", "Lombok")
	f.network(carrierOwner, "ferry", capacity, "Java", "Bali", "Lombok")
	f.sink("Denpasar", denpasar, "Bali")
	f.sink("Mataram", mataram, "Lombok")
	src := f.farm(OwnerAnn, FarmName)
	f.node(src, "paddy", production, "Java")
	return f.build()
}

// randomArchipelago builds a small random topology with an own and a
// foreign network so that every transition kind and cost appears.
func randomArchipelago(t *testing.T, seed int64) *topology.Topology {
	t.Helper()
	const nHubs = 5
	rng := rand.New(rand.NewSource(seed))
	f := newFixture(t)

	names := make([]string, nHubs)
	for i := range names {
		names[i] = fmt.Sprintf("H%d", i)
		f.hub(names[i])
	}
	for i := 1; i < nHubs; i++ {
		f.link(names[i-1], names[i])
	}
	// one chord so that some legs have a choice of route
	a := rng.Intn(nHubs)
	f.link(names[a], names[(a+2)%nHubs])

	pick := func(k int) []string {
		perm := rng.Perm(nHubs)
		out := make([]string, 0, k)
		for _, p := range perm[:k] {
			out = append(out, names[p])
		}
		return out
	}
	f.network(OwnerAnn, "own", 1+rng.Intn(2), pick(3)...)
	f.network(OwnerBob, "foreign", 1+rng.Intn(2), pick(3)...)
	f.sink("S0", rng.Intn(3), pick(1)...)
	f.sink("S1", 1+rng.Intn(2), pick(1)...)

	src := f.farm(OwnerAnn, FarmName)
	f.node(src, "n0", 1+rng.Intn(2), pick(1)...)
	f.node(src, "n1", rng.Intn(3), pick(2)...)

	return f.build()
}
