package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Has47Counties(t *testing.T) {
	assert.Equal(t, 47, Default().Len())
	assert.Len(t, Default().Counties(), 47)
}

func TestLookup_NairobiCity(t *testing.T) {
	c, ok := Default().Lookup("nairobi city")
	require.True(t, ok)
	assert.Equal(t, Coordinate{Lat: -1.286389, Lon: 36.817223}, c)
}

func TestLookup_NormalizesInput(t *testing.T) {
	c, ok := Default().Lookup("  Nairobi City ")
	require.True(t, ok)
	assert.Equal(t, -1.286389, c.Lat)
}

func TestLookup_Miss(t *testing.T) {
	_, ok := Default().Lookup("neverland")
	assert.False(t, ok)
}

func TestNormalizeName_Idempotent(t *testing.T) {
	for _, in := range []string{" Nairobi City ", "MOMBASA", "tana river", "\tKisumu\n", ""} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestCounties_SortedCopy(t *testing.T) {
	cs := Default().Counties()
	for i := 1; i < len(cs); i++ {
		assert.Less(t, cs[i-1].Name, cs[i].Name)
	}

	cs[0].Name = "mutated"
	assert.Equal(t, "baringo", Default().Counties()[0].Name)
}

func TestNearest(t *testing.T) {
	c, km, ok := Default().Nearest(-4.05, 39.67)
	require.True(t, ok)
	assert.Equal(t, "mombasa", c.Name)
	assert.Less(t, km, 2.0)
}

func TestNearest_DistanceAtCentroidIsZero(t *testing.T) {
	c, km, ok := Default().Nearest(-1.286389, 36.817223)
	require.True(t, ok)
	assert.Equal(t, "nairobi city", c.Name)
	assert.InDelta(t, 0, km, 1e-6)
}

func TestNearest_EmptyIndex(t *testing.T) {
	_, _, ok := New(nil).Nearest(0, 0)
	assert.False(t, ok)
}

func TestNew_NormalizesAndDedupes(t *testing.T) {
	idx := New([]County{
		{Name: " Foo ", Coord: Coordinate{1, 1}},
		{Name: "FOO", Coord: Coordinate{2, 2}},
	})
	assert.Equal(t, 1, idx.Len())
	c, ok := idx.Lookup("foo")
	require.True(t, ok)
	assert.Equal(t, Coordinate{2, 2}, c)
}
