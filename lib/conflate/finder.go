package conflate

import (
	"context"

	"geoconflate/lib/feature"
)

// MatchFinder produces a scored target-to-candidates mapping. A target with
// zero candidates may be omitted from the result or included with empty
// Matches; consumers accept both. Implementations poll the monitor between
// targets.
type MatchFinder interface {
	Match(
		ctx context.Context,
		targets *feature.Collection,
		candidates *feature.Collection,
		monitor Monitor,
	) (*MatchMap, error)
}
