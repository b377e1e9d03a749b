package conflate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"geoconflate/lib/feature"
)

func TestMatchesTracksTopEntry(t *testing.T) {
	schema := newTestSchema(t)
	a := newTestFeature(t, schema, "a")
	b := newTestFeature(t, schema, "b")
	c := newTestFeature(t, schema, "c")

	m := NewMatches(schema)
	require.True(t, m.IsEmpty())
	require.Nil(t, m.Top())

	m.Add(a, 0.5)
	require.Same(t, a, m.Top())
	require.Equal(t, 0.5, m.TopScore())

	m.Add(b, 0.9)
	require.Same(t, b, m.Top())
	require.Equal(t, 0.9, m.TopScore())

	// Tie: the entry added first stays on top.
	m.Add(c, 0.9)
	require.Same(t, b, m.Top())

	require.Equal(t, 3, m.Len())
	require.Same(t, a, m.Get(0).Feature)
}

func TestMatchMapPreservesInsertionOrder(t *testing.T) {
	schema := newTestSchema(t)
	a := newTestFeature(t, schema, "a")
	b := newTestFeature(t, schema, "b")

	mm := NewMatchMap()
	mm.Put(a, NewMatches(schema))
	mm.Put(b, NewMatches(schema))
	require.Equal(t, []*feature.Feature{a, b}, mm.Features())

	// Re-putting keeps the original position.
	replacement := NewMatches(schema)
	replacement.Add(b, 1)
	mm.Put(a, replacement)
	require.Equal(t, []*feature.Feature{a, b}, mm.Features())

	got, ok := mm.Get(a)
	require.True(t, ok)
	require.Same(t, replacement, got)
}

func TestBlankMatchMapIsTotalAndEmpty(t *testing.T) {
	targetSchema := newTestSchema(t)
	candidateSchema := newTestSchema(t)

	targets := feature.NewCollection(targetSchema)
	for _, name := range []string{"a", "b", "c"} {
		targets.Add(newTestFeature(t, targetSchema, name))
	}

	blank := BlankMatchMap(targets, candidateSchema)
	require.Equal(t, targets.Features(), blank.Features())
	for _, f := range blank.Features() {
		matches, ok := blank.Get(f)
		require.True(t, ok)
		require.True(t, matches.IsEmpty())
		require.Same(t, candidateSchema, matches.Schema())
	}
}
