package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tapnverify/builder"
	"github.com/katalvlaran/tapnverify/marking"
	"github.com/katalvlaran/tapnverify/query"
	"github.com/katalvlaran/tapnverify/search"
	"github.com/katalvlaran/tapnverify/succ"
	"github.com/katalvlaran/tapnverify/tapn"
)

func TestChainRejectsTooFewElements(t *testing.T) {
	_, err := builder.BuildTAPN(nil, builder.Chain(1))
	require.Error(t, err)
}

func TestChainProducesNPlacesAndNMinusOneTransitions(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.Chain(4))
	require.NoError(t, err)
	assert.Equal(t, 4, net.NumPlaces())
	assert.Equal(t, 3, net.NumTransitions())
	assert.True(t, net.Frozen())
}

func TestChainFiresEndToEnd(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.Chain(3))
	require.NoError(t, err)

	m0 := marking.New(net.NumPlaces()).Add(0, 0, 1)
	q := query.Query{Quantifier: query.EF, Body: query.Atomic(2, query.Ge, 1)}
	eng, err := search.New(net, m0, q)
	require.NoError(t, err)
	res := eng.Run(context.Background())
	assert.Equal(t, search.Holds, res.Verdict)
}

func TestSelfLoopIsUnboundedlyEnabled(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.SelfLoop())
	require.NoError(t, err)
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 1)
	assert.True(t, succ.Enabled(net, m0, 0))
}

func TestWorkflowRejectsTooFewBranches(t *testing.T) {
	_, err := builder.BuildTAPN(nil, builder.Workflow(0))
	require.Error(t, err)
}

func TestWorkflowHasExactlyOneSourceAndSink(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.Workflow(3))
	require.NoError(t, err)
	assert.Equal(t, search.MTAWFN, search.ClassifyWorkflow(net))
}

func TestWorkflowJoinRequiresEveryBranch(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.Workflow(2))
	require.NoError(t, err)

	// source=0 sink=1 fork=t0 join=t1 branch0=2 branch1=3, per construction order.
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 1)
	forked := succ.Successors(net, m0, 0)
	require.Len(t, forked, 1)
	// Join is not yet enabled before fork fires.
	assert.False(t, succ.Enabled(net, m0, 1))
	assert.True(t, succ.Enabled(net, forked[0], 1))
}

func TestFanOutRejectsTooFewElements(t *testing.T) {
	_, err := builder.BuildTAPN(nil, builder.FanOut(0, 1))
	require.Error(t, err)
}

func TestFanOutProducesMultTokensInEverySink(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.FanOut(2, 3))
	require.NoError(t, err)
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 3)
	results := succ.Successors(net, m0, 0)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Count(1))
	assert.Equal(t, 3, results[0].Count(2))
}

func TestFanOutWithSeedJittersBranchMultiplicityWithinBounds(t *testing.T) {
	net, err := builder.BuildTAPN([]builder.BuilderOption{
		builder.WithSeed(7),
	}, builder.FanOut(5, 3))
	require.NoError(t, err)
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 3)
	results := succ.Successors(net, m0, 0)
	require.Len(t, results, 1)
	for sink := 1; sink <= 5; sink++ {
		count := results[0].Count(sink)
		assert.GreaterOrEqual(t, count, 1)
		assert.LessOrEqual(t, count, 4) // mult=3, jitter in {-1,0,+1}, clamped >= 1
	}
}

func TestInhibitedSelfLoopBlocksWhenGuardHolds(t *testing.T) {
	net, err := builder.BuildTAPN(nil, builder.InhibitedSelfLoop(1))
	require.NoError(t, err)
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 1).Add(1, 0, 1)
	assert.False(t, succ.Enabled(net, m0, 0))
}

func TestWithIntervalOverridesDefaultArcWindow(t *testing.T) {
	net, err := builder.BuildTAPN([]builder.BuilderOption{
		builder.WithInterval(tapn.Interval{Lo: 2, Hi: 2}),
	}, builder.Chain(2))
	require.NoError(t, err)
	m0 := marking.New(net.NumPlaces()).Add(0, 0, 1)
	assert.False(t, succ.Enabled(net, m0, 0))
}

func TestWithDistOverridesTransitionFiringDistribution(t *testing.T) {
	net, err := builder.BuildTAPN([]builder.BuilderOption{
		builder.WithDist(tapn.FiringDist{Kind: tapn.DistExponential, A: 2}),
	}, builder.SelfLoop())
	require.NoError(t, err)
	tr, err := net.Transition(0)
	require.NoError(t, err)
	assert.Equal(t, tapn.DistExponential, tr.Dist.Kind)
}
