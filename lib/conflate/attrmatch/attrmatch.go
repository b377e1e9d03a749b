// Package attrmatch is a reference match provider for the conflation
// pipeline. It scores every (target, candidate) pair by string similarity
// over configured name attributes, damped by centroid distance when both
// features carry geometry.
package attrmatch

import (
	"context"
	"sort"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"geoconflate/lib/conflate"
	"geoconflate/lib/feature"
	"geoconflate/lib/textutil"
)

var tracer = otel.Tracer("lib/conflate/attrmatch")

type Options struct {
	// NameAttrs are the attributes compared by similarity; a pair's name
	// score is the best similarity across them.
	NameAttrs []string
	// Threshold drops candidate entries scoring below it.
	Threshold float64
	// MaxDistanceMeters is where the distance damping reaches zero.
	// Features further apart than this never match.
	MaxDistanceMeters float64
}

const (
	DefaultThreshold         = 0.75
	DefaultMaxDistanceMeters = 500
)

type Matcher struct {
	opts Options
}

func New(opts Options) *Matcher {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxDistanceMeters == 0 {
		opts.MaxDistanceMeters = DefaultMaxDistanceMeters
	}
	return &Matcher{opts: opts}
}

// Match scores every candidate for every target and returns per-target
// Matches in descending score order. Targets without a scoring candidate
// are included with empty Matches. Polls the monitor between targets.
func (m *Matcher) Match(
	ctx context.Context,
	targets *feature.Collection,
	candidates *feature.Collection,
	monitor conflate.Monitor,
) (*conflate.MatchMap, error) {
	_, span := tracer.Start(ctx, "Match")
	defer span.End()
	span.SetAttributes(
		attribute.Int("targets", targets.Len()),
		attribute.Int("candidates", candidates.Len()),
	)

	out := conflate.NewMatchMap()
	total := targets.Len()
	for i, target := range targets.Features() {
		if monitor.IsCancelRequested() {
			break
		}
		monitor.ReportProgress(i+1, total, "features scored")

		scored := make([]conflate.Match, 0, candidates.Len())
		for _, candidate := range candidates.Features() {
			score := m.score(target, candidate)
			if score >= m.opts.Threshold {
				scored = append(scored, conflate.Match{Feature: candidate, Score: score})
			}
		}
		sortByScore(scored)

		matches := conflate.NewMatches(candidates.Schema())
		for _, s := range scored {
			matches.Add(s.Feature, s.Score)
		}
		out.Put(target, matches)
	}
	return out, nil
}

func (m *Matcher) score(target, candidate *feature.Feature) float64 {
	score := m.nameScore(target, candidate)
	if score == 0 {
		return 0
	}
	return score * m.distanceFactor(target, candidate)
}

func (m *Matcher) nameScore(target, candidate *feature.Feature) float64 {
	var best float64
	for _, attr := range m.opts.NameAttrs {
		left := textutil.NormalizeName(target.StringAttribute(attr))
		right := textutil.NormalizeName(candidate.StringAttribute(attr))
		if left == "" || right == "" {
			continue
		}
		similarity := matchr.JaroWinkler(left, right, false)
		if similarity > best {
			best = similarity
		}
	}
	return best
}

// distanceFactor falls off linearly from 1 at zero distance to 0 at
// MaxDistanceMeters. Pairs where either side has no geometry keep their
// name score untouched.
func (m *Matcher) distanceFactor(target, candidate *feature.Feature) float64 {
	if target.Geometry() == nil || candidate.Geometry() == nil {
		return 1
	}
	d := feature.DistanceMeters(
		target.Geometry().Centroid(),
		candidate.Geometry().Centroid(),
	)
	if d >= m.opts.MaxDistanceMeters {
		return 0
	}
	return 1 - d/m.opts.MaxDistanceMeters
}

// sortByScore orders descending, keeping candidate-collection order among
// equal scores.
func sortByScore(entries []conflate.Match) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
