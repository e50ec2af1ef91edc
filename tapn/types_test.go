package tapn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tapnverify/tapn"
)

// buildProducerConsumer builds a minimal two-place, one-transition net:
// Source --t--> Sink, with input interval [0,5] and mult 1.
func buildProducerConsumer(t *testing.T) (*tapn.TAPN, int, int, int) {
	t.Helper()
	net := tapn.New()
	src, err := net.AddPlace("Source", tapn.InfInvariant)
	require.NoError(t, err)
	sink, err := net.AddPlace("Sink", tapn.InfInvariant)
	require.NoError(t, err)
	tr, err := net.AddTransition("t")
	require.NoError(t, err)
	require.NoError(t, net.AddInputArc(src, tr, tapn.Interval{Lo: 0, Hi: 5}, 1))
	require.NoError(t, net.AddOutputArc(tr, sink, 1))
	return net, src, sink, tr
}

func TestAddPlaceAndTransition(t *testing.T) {
	net, src, sink, tr := buildProducerConsumer(t)
	assert.Equal(t, 2, net.NumPlaces())
	assert.Equal(t, 1, net.NumTransitions())

	p, err := net.Place(src)
	require.NoError(t, err)
	assert.Equal(t, "Source", p.Name)

	_, err = net.Place(sink + 99)
	assert.ErrorIs(t, err, tapn.ErrUnknownPlace)

	_, err = net.Transition(tr + 99)
	assert.ErrorIs(t, err, tapn.ErrUnknownTransition)
}

func TestFreezeRejectsMutation(t *testing.T) {
	net, src, _, tr := buildProducerConsumer(t)
	net.Freeze()
	assert.True(t, net.Frozen())

	_, err := net.AddPlace("Extra", tapn.InfInvariant)
	assert.ErrorIs(t, err, tapn.ErrFrozen)

	err = net.AddInhibitorArc(src, tr, 1)
	assert.ErrorIs(t, err, tapn.ErrFrozen)
}

func TestAddInputArcRejectsBadInterval(t *testing.T) {
	net := tapn.New()
	p, _ := net.AddPlace("P", tapn.InfInvariant)
	tr, _ := net.AddTransition("t")
	err := net.AddInputArc(p, tr, tapn.Interval{Lo: 5, Hi: 2}, 1)
	assert.ErrorIs(t, err, tapn.ErrBadInterval)
}

func TestAddArcRejectsBadMultiplicity(t *testing.T) {
	net := tapn.New()
	p, _ := net.AddPlace("P", tapn.InfInvariant)
	tr, _ := net.AddTransition("t")
	err := net.AddInputArc(p, tr, tapn.Unbounded, 0)
	assert.ErrorIs(t, err, tapn.ErrBadMultiplicity)
}

func TestInvariantHoldsAndMaxAge(t *testing.T) {
	strict := tapn.Invariant{Bound: 3, Strict: true}
	assert.True(t, strict.Holds(2))
	assert.False(t, strict.Holds(3))
	assert.Equal(t, 2, strict.MaxAge())

	nonStrict := tapn.Invariant{Bound: 3}
	assert.True(t, nonStrict.Holds(3))
	assert.Equal(t, 3, nonStrict.MaxAge())

	assert.True(t, tapn.InfInvariant.Holds(1<<30))
}

func TestIntervalContains(t *testing.T) {
	iv := tapn.Interval{Lo: 2, Hi: 4}
	assert.False(t, iv.Contains(1))
	assert.True(t, iv.Contains(2))
	assert.True(t, iv.Contains(4))
	assert.False(t, iv.Contains(5))
	assert.True(t, tapn.Unbounded.Contains(1000))
}

func TestCloneRetypedDoesNotMutateReceiver(t *testing.T) {
	net := tapn.New()
	p, _ := net.AddPlace("P", tapn.InfInvariant)
	_, _ = net.AddTransition("t")
	require.NoError(t, net.RetypePlace(p, tapn.Standard))

	clone := net.CloneRetyped(tapn.Standard, tapn.Dead)
	require.NotNil(t, clone)

	orig, err := net.Place(p)
	require.NoError(t, err)
	assert.Equal(t, tapn.Standard, orig.Kind)

	cloned, err := clone.Place(p)
	require.NoError(t, err)
	assert.Equal(t, tapn.Dead, cloned.Kind)
	assert.True(t, clone.Frozen())
}
