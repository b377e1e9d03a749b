package attrmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"geoconflate/lib/conflate"
	"geoconflate/lib/feature"
)

func newCollection(t *testing.T, names []string) *feature.Collection {
	t.Helper()
	schema := feature.NewSchema()
	schema.AddAttribute("name", feature.TypeString)
	c := feature.NewCollection(schema)
	for _, name := range names {
		f := feature.New(schema)
		require.NoError(t, f.SetAttribute("name", name))
		c.Add(f)
	}
	return c
}

func TestExactNameMatchScoresOne(t *testing.T) {
	targets := newCollection(t, []string{"Main Street Depot"})
	candidates := newCollection(t, []string{"main  street depot", "Other Place"})

	m := New(Options{NameAttrs: []string{"name"}})
	result, err := m.Match(context.Background(), targets, candidates, conflate.NullMonitor{})
	require.NoError(t, err)

	matches, ok := result.Get(targets.Features()[0])
	require.True(t, ok)
	require.False(t, matches.IsEmpty())
	require.Same(t, candidates.Features()[0], matches.Top())
	require.Equal(t, 1.0, matches.TopScore())
}

func TestThresholdDropsWeakCandidates(t *testing.T) {
	targets := newCollection(t, []string{"Fire Station 12"})
	candidates := newCollection(t, []string{"Completely Unrelated"})

	m := New(Options{NameAttrs: []string{"name"}, Threshold: 0.9})
	result, err := m.Match(context.Background(), targets, candidates, conflate.NullMonitor{})
	require.NoError(t, err)

	matches, ok := result.Get(targets.Features()[0])
	require.True(t, ok)
	require.True(t, matches.IsEmpty())
}

func TestMatchesSortedDescending(t *testing.T) {
	targets := newCollection(t, []string{"Harbor View Cafe"})
	candidates := newCollection(t, []string{
		"Harbor View",
		"Harbor View Cafe",
		"Harborview Cafeteria",
	})

	m := New(Options{NameAttrs: []string{"name"}, Threshold: 0.5})
	result, err := m.Match(context.Background(), targets, candidates, conflate.NullMonitor{})
	require.NoError(t, err)

	matches, ok := result.Get(targets.Features()[0])
	require.True(t, ok)
	require.GreaterOrEqual(t, matches.Len(), 2)

	entries := matches.Entries()
	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}
	require.Same(t, candidates.Features()[1], matches.Top())
	require.Equal(t, 1.0, matches.TopScore())
}

func TestDistanceDampsScore(t *testing.T) {
	schema := feature.NewSchema()
	schema.AddAttribute("name", feature.TypeString)

	newPlaced := func(c *feature.Collection, name string, lon, lat float64) *feature.Feature {
		f := feature.New(schema)
		require.NoError(t, f.SetAttribute("name", name))
		f.SetGeometry(feature.PointGeometry(lon, lat))
		c.Add(f)
		return f
	}

	targets := feature.NewCollection(schema)
	target := newPlaced(targets, "Water Tower", -123.0, 48.0)

	candidates := feature.NewCollection(schema)
	near := newPlaced(candidates, "Water Tower", -123.0, 48.0)
	// Roughly 111km north, far past the distance cutoff.
	newPlaced(candidates, "Water Tower", -123.0, 49.0)

	m := New(Options{NameAttrs: []string{"name"}})
	result, err := m.Match(context.Background(), targets, candidates, conflate.NullMonitor{})
	require.NoError(t, err)

	matches, ok := result.Get(target)
	require.True(t, ok)
	require.Equal(t, 1, matches.Len())
	require.Same(t, near, matches.Top())
	require.Equal(t, 1.0, matches.TopScore())
}

func TestCancellationStopsScoring(t *testing.T) {
	targets := newCollection(t, []string{"A", "B", "C"})
	candidates := newCollection(t, []string{"A", "B", "C"})

	m := New(Options{NameAttrs: []string{"name"}})
	monitor := &cancelledMonitor{}
	result, err := m.Match(context.Background(), targets, candidates, monitor)
	require.NoError(t, err)
	require.Equal(t, 0, result.Len())
}

type cancelledMonitor struct {
	conflate.NullMonitor
}

func (cancelledMonitor) IsCancelRequested() bool { return true }
