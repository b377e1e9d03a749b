// Package conflator runs the conflation pipeline over named collection
// pairs and persists run records and manual link overrides. An override is
// an operator-asserted (target, candidate) link that supersedes whatever
// the algorithm computed for either side of the pair.
package conflator

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"geoconflate/lib/conflate"
	"geoconflate/lib/feature"
	"geoconflate/lib/textutil"
	"geoconflate/services/conflator/db"
)

var tracer = otel.Tracer("services/conflator")

// OverrideScore is the score recorded for manually asserted links.
const OverrideScore = 1

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

type RunParams struct {
	// TargetSet and CandidateSet name the collection pair; overrides and
	// run records are keyed by them.
	TargetSet    string
	CandidateSet string
	// KeyAttr is the attribute identifying features across runs.
	KeyAttr    string
	Targets    *feature.Collection
	Candidates *feature.Collection
	Finder     conflate.MatchFinder
	Monitor    conflate.Monitor
}

// Run executes the one-to-one disambiguation pipeline, applies stored
// overrides on top of the computed result and records the run. The
// returned mapping is total over the target collection.
func (s Service) Run(ctx context.Context, params RunParams) (*conflate.MatchMap, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("targetset", params.TargetSet),
		attribute.String("candidateset", params.CandidateSet),
	)

	startedAt := time.Now()

	disambiguator := conflate.NewTopMatchDisambiguator(params.Finder)
	result, err := disambiguator.Match(ctx, params.Targets, params.Candidates, params.Monitor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	overrides, err := s.qry.GetLinkOverrides(ctx, db.GetLinkOverridesParams{
		Targetset:    params.TargetSet,
		Candidateset: params.CandidateSet,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	applyOverrides(result, overrides, params)

	matched := 0
	for _, t := range result.Features() {
		matches, _ := result.Get(t)
		if !matches.IsEmpty() {
			matched++
		}
	}

	id, err := random.String(16)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	err = s.qry.CreateRun(ctx, db.CreateRunParams{
		ID:           id,
		Targetset:    params.TargetSet,
		Candidateset: params.CandidateSet,
		Startedat:    startedAt.Unix(),
		Matched:      int64(matched),
		Unmatched:    int64(result.Len() - matched),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("record run: %w", err)
	}

	slog.InfoContext(
		ctx, "conflation run complete",
		"run", id,
		"matched", matched,
		"unmatched", result.Len()-matched,
		"overrides", len(overrides),
	)
	return result, nil
}

// applyOverrides rewrites the computed result so that every stored override
// holds: the override's target maps to its candidate, and any other target
// the algorithm had given that candidate to is blanked out to keep the
// mapping one-to-one. Overrides whose keys match no loaded feature are
// skipped.
func applyOverrides(result *conflate.MatchMap, overrides []db.LinkOverride, params RunParams) {
	if len(overrides) == 0 {
		return
	}
	targetsByKey := featuresByKey(params.Targets, params.KeyAttr)
	candidatesByKey := featuresByKey(params.Candidates, params.KeyAttr)

	for _, o := range overrides {
		target, ok := targetsByKey[textutil.NormalizeName(o.Targetkey)]
		if !ok {
			slog.Warn("override target not in collection", "key", o.Targetkey)
			continue
		}
		candidate, ok := candidatesByKey[textutil.NormalizeName(o.Candidatekey)]
		if !ok {
			slog.Warn("override candidate not in collection", "key", o.Candidatekey)
			continue
		}

		for _, t := range result.Features() {
			matches, _ := result.Get(t)
			if !matches.IsEmpty() && matches.Top() == candidate && t != target {
				result.Put(t, conflate.NewMatches(params.Candidates.Schema()))
			}
		}

		forced := conflate.NewMatches(params.Candidates.Schema())
		forced.Add(candidate, OverrideScore)
		result.Put(target, forced)
	}
}

func featuresByKey(c *feature.Collection, keyAttr string) map[string]*feature.Feature {
	out := map[string]*feature.Feature{}
	for _, f := range c.Features() {
		key := textutil.NormalizeName(f.StringAttribute(keyAttr))
		if key == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = f
		}
	}
	return out
}

func (s Service) AddOverride(ctx context.Context, targetSet, targetKey, candidateSet, candidateKey string) error {
	ctx, span := tracer.Start(ctx, "AddOverride")
	defer span.End()

	err := s.qry.CreateLinkOverride(ctx, db.CreateLinkOverrideParams{
		Targetset:    targetSet,
		Targetkey:    targetKey,
		Candidateset: candidateSet,
		Candidatekey: candidateKey,
		Createdat:    time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s Service) DeleteOverride(ctx context.Context, targetSet, targetKey, candidateSet string) error {
	ctx, span := tracer.Start(ctx, "DeleteOverride")
	defer span.End()

	err := s.qry.DeleteLinkOverride(ctx, db.DeleteLinkOverrideParams{
		Targetset:    targetSet,
		Targetkey:    targetKey,
		Candidateset: candidateSet,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s Service) ListOverrides(ctx context.Context, targetSet, candidateSet string) ([]db.LinkOverride, error) {
	ctx, span := tracer.Start(ctx, "ListOverrides")
	defer span.End()

	overrides, err := s.qry.GetLinkOverrides(ctx, db.GetLinkOverridesParams{
		Targetset:    targetSet,
		Candidateset: candidateSet,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return overrides, nil
}

func (s Service) ListRuns(ctx context.Context) ([]db.ConflationRun, error) {
	ctx, span := tracer.Start(ctx, "ListRuns")
	defer span.End()

	runs, err := s.qry.ListRuns(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return runs, nil
}
