package conflate

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"geoconflate/lib/feature"
)

var tracer = otel.Tracer("lib/conflate")

// ErrScoreMismatch reports a forward/reverse top pair whose scores disagree.
// The same (target, candidate) pair must carry one score no matter which
// direction it was derived from; a mismatch means the upstream scorer is
// inconsistent and the run must abort rather than silently pick a side.
var ErrScoreMismatch = errors.New("forward and reverse top-match scores disagree")

// TopFilter reduces every non-empty Matches list of the input to its single
// top entry. Keys with empty lists are dropped. The monitor is polled
// before each key; on cancellation the partial map built so far is
// returned.
func TopFilter(m *MatchMap, monitor Monitor) *MatchMap {
	out := NewMatchMap()
	if m.Len() == 0 {
		return out
	}

	total := m.Len()
	processed := 0
	for _, f := range m.Features() {
		if monitor.IsCancelRequested() {
			break
		}
		processed++
		monitor.ReportProgress(processed, total, "features filtered")

		old, _ := m.Get(f)
		if old.IsEmpty() {
			continue
		}
		top := NewMatches(old.Schema())
		top.Add(old.Top(), old.TopScore())
		out.Put(f, top)
	}
	return out
}

// Invert flips a mapping from set A to set B into the mapping from set B to
// set A, carrying every score across. A B-feature that no A-feature listed
// never appears as a key. The inverted Matches lists are built by
// appending, so they are not score-sorted; their tracked top entry is still
// the highest-scored one. Polls the monitor per input key.
func Invert(m *MatchMap, monitor Monitor) *MatchMap {
	out := NewMatchMap()
	if m.Len() == 0 {
		return out
	}

	type builder struct {
		schema  *feature.Schema
		entries []Match
	}
	builders := map[*feature.Feature]*builder{}
	var order []*feature.Feature

	total := m.Len()
	processed := 0
	for _, oldKey := range m.Features() {
		if monitor.IsCancelRequested() {
			break
		}
		processed++
		monitor.ReportProgress(processed, total, "features inverted")

		oldMatches, _ := m.Get(oldKey)
		for _, entry := range oldMatches.Entries() {
			b, ok := builders[entry.Feature]
			if !ok {
				b = &builder{schema: oldKey.Schema()}
				builders[entry.Feature] = b
				order = append(order, entry.Feature)
			}
			b.entries = append(b.entries, Match{Feature: oldKey, Score: entry.Score})
		}
	}

	for _, newKey := range order {
		b := builders[newKey]
		matches := NewMatches(b.schema)
		for _, e := range b.entries {
			matches.Add(e.Feature, e.Score)
		}
		out.Put(newKey, matches)
	}
	return out
}

// TopMatchDisambiguator wraps a MatchFinder and enforces a one-to-one
// relationship between targets and candidates in its result: a pair
// survives only when each side is the other's top match. Conservative on
// purpose; a target whose best candidate prefers another target ends up
// unmatched rather than matched to its runner-up.
type TopMatchDisambiguator struct {
	finder MatchFinder
}

func NewTopMatchDisambiguator(finder MatchFinder) *TopMatchDisambiguator {
	return &TopMatchDisambiguator{finder: finder}
}

// Match runs the wrapped finder, keeps only mutually-best pairs and restores
// totality over the target collection: the result has one entry per target,
// empty Matches for every target without a reciprocated top match.
// Cancellation through the monitor returns the best-effort result built so
// far with a nil error.
func (d *TopMatchDisambiguator) Match(
	ctx context.Context,
	targets *feature.Collection,
	candidates *feature.Collection,
	monitor Monitor,
) (*MatchMap, error) {
	ctx, span := tracer.Start(ctx, "TopMatchDisambiguator.Match")
	defer span.End()
	span.SetAttributes(
		attribute.Int("targets", targets.Len()),
		attribute.Int("candidates", candidates.Len()),
	)

	full, err := d.finder.Match(ctx, targets, candidates, monitor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	monitor.AllowCancellationRequests()

	monitor.Report("finding best forward matches")
	bestForward := TopFilter(full, monitor)

	monitor.Report("finding best reverse matches")
	bestReverse := TopFilter(Invert(full, monitor), monitor)

	monitor.Report("finding common best matches")
	// A pair survives only when it is best in both directions. Anything
	// weaker lets one strong candidate claim several targets.
	common, err := commonMatches(bestForward, Invert(bestReverse, monitor), monitor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Put back the targets that were filtered out, with empty matches.
	result := BlankMatchMap(targets, candidates.Schema())
	result.PutAll(common)

	span.SetAttributes(attribute.Int("matched", common.Len()))
	return result, nil
}

// commonMatches keeps the keys of map1 whose top match is identical (same
// feature, pointer-wise) in map2, carrying map1's single-entry Matches
// through. Identical top features with differing scores violate the
// one-score-per-pair contract and abort with ErrScoreMismatch.
func commonMatches(map1, map2 *MatchMap, monitor Monitor) (*MatchMap, error) {
	out := NewMatchMap()
	total := map1.Len()
	processed := 0
	for _, key := range map1.Features() {
		if monitor.IsCancelRequested() {
			break
		}
		processed++
		monitor.ReportProgress(processed, total, "features")

		matches2, ok := map2.Get(key)
		if !ok {
			continue
		}
		matches1, _ := map1.Get(key)
		if matches1.Top() != matches2.Top() {
			continue
		}
		if matches1.TopScore() != matches2.TopScore() {
			return nil, fmt.Errorf(
				"forward score %v != reverse score %v: %w",
				matches1.TopScore(), matches2.TopScore(), ErrScoreMismatch,
			)
		}
		out.Put(key, matches1)
	}
	return out, nil
}
