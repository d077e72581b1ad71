package shipping_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/MaxLap/indonesia-calc/internal/logging"
	"github.com/MaxLap/indonesia-calc/internal/observability"
	"github.com/MaxLap/indonesia-calc/shipping"
	"github.com/MaxLap/indonesia-calc/topology"
)

// ------------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------------

func searchContext(t *testing.T, topo *topology.Topology) *shipping.SearchContext {
	t.Helper()
	src, ok := topo.SourceByName(FarmName)
	require.True(t, ok)
	sc, err := shipping.NewSearchContext(topo, src)
	require.NoError(t, err)
	return sc
}

type observation struct {
	outcome  string
	expanded int
	shipped  int
}

type fakeRecorder struct{ calls []observation }

func (f *fakeRecorder) ObserveSearch(outcome string, _ time.Duration, expanded, shipped int) {
	f.calls = append(f.calls, observation{outcome: outcome, expanded: expanded, shipped: shipped})
}

// ------------------------------------------------------------------------
// 1. Reference scenarios
// ------------------------------------------------------------------------

type ScenarioSuite struct {
	suite.Suite
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) search(topo *topology.Topology, opts ...shipping.Option) *shipping.Result {
	res, err := shipping.Search(searchContext(s.T(), topo), opts...)
	s.Require().NoError(err)
	s.Require().NotNil(res)
	return res
}

// Own carrier, capacity 2 against supply 3 and demand 5.
func (s *ScenarioSuite) TestOwnCarrierShipsCapacityAtNoCost() {
	res := s.search(singleHub(s.T(), OwnerAnn, 3, 2, 5))

	best, ok := res.Best()
	s.Require().True(ok)
	s.Equal(2, res.Shipped)
	s.Equal(5, res.MaxDeliverable)
	s.Equal(2, best.Shipped())
	s.Equal(0, best.Cost())
	s.True(best.Idle())
	s.Len(res.Solutions, 1)
}

// Same layout, but the carrier belongs to someone else.
func (s *ScenarioSuite) TestForeignCarrierCostsOnePerHop() {
	res := s.search(singleHub(s.T(), OwnerBob, 3, 2, 5))

	best, ok := res.Best()
	s.Require().True(ok)
	s.Equal(2, best.Shipped())
	s.Equal(2, best.Cost())
}

// Nothing is wanted: the initial state is not a solution.
func (s *ScenarioSuite) TestZeroDemandHasNoSolution() {
	res := s.search(singleHub(s.T(), OwnerAnn, 3, 2, 0))

	_, ok := res.Best()
	s.False(ok)
	s.Empty(res.Solutions)
	s.Equal(0, res.Shipped)
	s.Equal(0, res.MaxDeliverable)
	s.Equal(1, res.Expanded)
}

func (s *ScenarioSuite) TestMultiHopDeliversAlongTheChain() {
	topo := chain(s.T(), OwnerAnn, 3, 2, 1, 1)
	plan, res, err := shipping.Solve(topo, FarmName)
	s.Require().NoError(err)
	s.Require().NotNil(plan)

	s.Equal(2, res.Shipped)
	s.Equal(0, plan.Cost)
	s.Equal(1, plan.Leftover())

	denpasar, _ := topo.SinkByName("Denpasar")
	mataram, _ := topo.SinkByName("Mataram")
	s.Equal(map[topology.SinkID]int{denpasar: 1, mataram: 1}, plan.Deliveries())
}

func (s *ScenarioSuite) TestForeignChainChargesEveryHop() {
	// Java -> Bali -> Lombok -> Mataram: three foreign carriers.
	res := s.search(chain(s.T(), OwnerBob, 1, 1, 0, 1))

	best, ok := res.Best()
	s.Require().True(ok)
	s.Equal(1, best.Shipped())
	s.Equal(3, best.Cost())
}

func (s *ScenarioSuite) TestTiesAreAllReported() {
	// The single unit of ferry@Java capacity can go either way.
	res := s.search(chain(s.T(), OwnerAnn, 3, 1, 1, 1))

	s.Equal(1, res.Shipped)
	s.Len(res.Solutions, 2)
	for _, sol := range res.Solutions {
		s.Equal(1, sol.Shipped())
		s.Equal(0, sol.Cost())
	}
}

func (s *ScenarioSuite) TestCheapestSolutionIsDiscoveredFirst() {
	f := newFixture(s.T())
	f.link("Java", "Bali")
	f.network(OwnerAnn, "ferry", 1, "Java", "Bali")
	f.network(OwnerBob, "barge", 1, "Java", "Bali")
	f.sink("Denpasar", 1, "Bali")
	src := f.farm(OwnerAnn, FarmName)
	f.node(src, "paddy", 1, "Java")

	res := s.search(f.build())

	s.Require().Len(res.Solutions, 2)
	s.Equal(0, res.Solutions[0].Cost())
	s.Equal(2, res.Solutions[1].Cost())
}

func (s *ScenarioSuite) TestUnreachableSinkIsIgnored() {
	f := newFixture(s.T())
	f.network(OwnerAnn, "ferry", 5, "Java")
	f.network(OwnerAnn, "barge", 5, "Sumatra")
	f.sink("Jakarta", 1, "Java")
	f.sink("Medan", 9, "Sumatra")
	src := f.farm(OwnerAnn, FarmName)
	f.node(src, "paddy", 4, "Java")

	res := s.search(f.build())

	s.Equal(1, res.MaxDeliverable)
	s.Equal(1, res.Shipped)
}

// ------------------------------------------------------------------------
// 2. Invariants over every expanded state
// ------------------------------------------------------------------------

func TestSearch_InvariantsHoldOnRandomArchipelagos(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		topo := randomArchipelago(t, seed)
		sc := searchContext(t, topo)
		initial := sc.Initial()

		var expanded []*shipping.State
		res, err := shipping.Search(sc, shipping.WithOnExpand(func(s *shipping.State) {
			expanded = append(expanded, s)
		}))
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, expanded, res.Expanded)

		keys := make(map[string]struct{}, len(expanded))
		lastCost := 0
		for _, s := range expanded {
			// best-first: expansion order never goes back to a cheaper cost
			require.GreaterOrEqual(t, s.Cost(), lastCost, "seed %d", seed)
			lastCost = s.Cost()

			_, dup := keys[s.Key()]
			require.False(t, dup, "seed %d: state expanded twice: %v", seed, s)
			keys[s.Key()] = struct{}{}

			checkState(t, sc, initial, s)
		}

		require.LessOrEqual(t, res.Shipped, res.MaxDeliverable)
		require.LessOrEqual(t, res.Shipped, sc.InitialSupply())
		for _, sol := range res.Solutions {
			require.True(t, sol.Idle())
			require.Equal(t, res.Shipped, sol.Shipped())
		}
	}
}

// checkState verifies resource bounds, cost steps, shipment conservation and
// the leg pruning rule along the path ending at s: within one leg no carrier
// holds the unit twice, and nothing linked to an earlier carrier of the leg is
// visited.
func checkState(t *testing.T, sc *shipping.SearchContext, initial, s *shipping.State) {
	t.Helper()

	for _, v := range s.Demand() {
		require.GreaterOrEqual(t, v, 0)
	}
	for _, v := range s.Capacity() {
		require.GreaterOrEqual(t, v, 0)
	}
	for _, v := range s.Supply() {
		require.GreaterOrEqual(t, v, 0)
	}
	require.LessOrEqual(t, s.Shipped(), sc.MaxDeliverable())

	path := shipping.Path(s)
	require.True(t, path[0].Equal(initial))

	topo := sc.Topology()
	delivered := 0
	used := make([]int, len(initial.Capacity()))
	var leg []topology.CarrierID // carriers that held the unit, current last
	for i, p := range path {
		mv := p.Move()
		switch mv.Kind {
		case shipping.MoveExtract:
			used[mv.Carrier]++
			leg = []topology.CarrierID{mv.Carrier}
		case shipping.MoveCarry:
			used[mv.Carrier]++
			require.NotContains(t, leg, mv.Carrier, "carrier %d revisited within one leg", mv.Carrier)
			for _, earlier := range leg[:len(leg)-1] {
				require.NotContains(t, topo.CarrierLinks(earlier), mv.Carrier,
					"carry to %d, linked to earlier carrier %d of the leg", mv.Carrier, earlier)
			}
			leg = append(leg, mv.Carrier)
		case shipping.MoveDeliver:
			delivered++
			for _, earlier := range leg[:len(leg)-1] {
				require.NotContains(t, topo.CarrierSinks(earlier), mv.Sink,
					"delivery to %d, linked to earlier carrier %d of the leg", mv.Sink, earlier)
			}
			leg = nil
		}
		if i > 0 {
			step := p.Cost() - path[i-1].Cost()
			require.Contains(t, []int{0, 1}, step)
		}
	}

	if s.Idle() {
		require.Equal(t, delivered, s.Shipped())
	} else {
		require.Equal(t, delivered+1, s.Shipped())
	}

	capacity := s.Capacity()
	for c, start := range initial.Capacity() {
		require.Equal(t, start-used[c], capacity[c])
	}
}

// ------------------------------------------------------------------------
// 3. Errors, limits and hooks
// ------------------------------------------------------------------------

func TestSearch_Errors(t *testing.T) {
	_, err := shipping.Search(nil)
	assert.ErrorIs(t, err, shipping.ErrNilContext)

	sc := searchContext(t, singleHub(t, OwnerAnn, 1, 1, 1))
	res, err := shipping.Search(sc, shipping.WithMaxExpansions(-1))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, shipping.ErrOptionViolation)

	_, err = shipping.NewSearchContext(nil, 0)
	assert.ErrorIs(t, err, shipping.ErrNilTopology)

	_, err = shipping.NewSearchContext(singleHub(t, OwnerAnn, 1, 1, 1), 7)
	assert.ErrorIs(t, err, shipping.ErrSourceNotFound)
	assert.ErrorIs(t, err, topology.ErrSourceNotFound)

	_, err = shipping.NewSearchContext(singleHub(t, OwnerAnn, 1, 1, 1), -1)
	assert.ErrorIs(t, err, topology.ErrSourceNotFound)

	_, _, err = shipping.Solve(singleHub(t, OwnerAnn, 1, 1, 1), "nowhere")
	assert.ErrorIs(t, err, shipping.ErrSourceNotFound)

	_, _, err = shipping.Solve(nil, FarmName)
	assert.ErrorIs(t, err, shipping.ErrNilTopology)
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &fakeRecorder{}
	res, err := shipping.Search(searchContext(t, chain(t, OwnerAnn, 3, 2, 1, 1)),
		shipping.WithContext(ctx), shipping.WithRecorder(rec))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Expanded)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, observability.OutcomeCancelled, rec.calls[0].outcome)
}

func TestSearch_ExpansionLimit(t *testing.T) {
	rec := &fakeRecorder{}
	res, err := shipping.Search(searchContext(t, chain(t, OwnerAnn, 3, 2, 1, 1)),
		shipping.WithMaxExpansions(1), shipping.WithRecorder(rec))

	require.ErrorIs(t, err, shipping.ErrExpansionLimit)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Expanded)
	assert.Empty(t, res.Solutions)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, observability.OutcomeLimit, rec.calls[0].outcome)
}

func TestSearch_RecorderOutcomes(t *testing.T) {
	rec := &fakeRecorder{}

	_, err := shipping.Search(searchContext(t, singleHub(t, OwnerAnn, 3, 2, 5)), shipping.WithRecorder(rec))
	require.NoError(t, err)
	_, err = shipping.Search(searchContext(t, singleHub(t, OwnerAnn, 3, 2, 0)), shipping.WithRecorder(rec))
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, observation{outcome: observability.OutcomeSolved, expanded: rec.calls[0].expanded, shipped: 2}, rec.calls[0])
	assert.Equal(t, observability.OutcomeNoSolution, rec.calls[1].outcome)
	assert.Equal(t, 0, rec.calls[1].shipped)
}

func TestSearch_LogsSummary(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: &buf})

	_, err := shipping.Search(searchContext(t, chain(t, OwnerBob, 1, 1, 0, 1)), shipping.WithLogger(log))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"search finished"`)
	assert.Contains(t, out, `"source":"ricefield"`)
	assert.Contains(t, out, `"msg":"cost advanced"`)
}

func TestSearch_Deterministic(t *testing.T) {
	topo := randomArchipelago(t, 42)
	a, err := shipping.Search(searchContext(t, topo))
	require.NoError(t, err)
	b, err := shipping.Search(searchContext(t, topo))
	require.NoError(t, err)

	require.Equal(t, len(a.Solutions), len(b.Solutions))
	for i := range a.Solutions {
		assert.Equal(t, a.Solutions[i].Key(), b.Solutions[i].Key())
		assert.Equal(t, a.Solutions[i].Cost(), b.Solutions[i].Cost())
	}
	assert.Equal(t, a.Expanded, b.Expanded)
}
