// Package conflate reduces many-to-many scored matches between two feature
// collections to a one-to-one mapping, keeping only pairs that are
// mutually the best match for each other.
package conflate

import (
	"geoconflate/lib/feature"
)

// Match is a single scored candidate entry.
type Match struct {
	Feature *feature.Feature
	Score   float64
}

// Matches is a list of scored matches to features of one collection. The
// top match is tracked as entries are added: on a score tie the entry added
// first stays on top. Entries keep their insertion order; upstream match
// providers add entries in descending score order, inversion does not.
type Matches struct {
	schema   *feature.Schema
	entries  []Match
	topIdx   int
	topScore float64
}

// NewMatches makes an empty list. The schema is the one of the collection
// the entries point into, kept so empty lists can still be constructed for
// it.
func NewMatches(schema *feature.Schema) *Matches {
	return &Matches{schema: schema, topIdx: -1}
}

func (m *Matches) Schema() *feature.Schema {
	return m.schema
}

func (m *Matches) Add(f *feature.Feature, score float64) {
	if m.topIdx < 0 || score > m.topScore {
		m.topIdx = len(m.entries)
		m.topScore = score
	}
	m.entries = append(m.entries, Match{Feature: f, Score: score})
}

func (m *Matches) Len() int {
	return len(m.entries)
}

func (m *Matches) IsEmpty() bool {
	return len(m.entries) == 0
}

func (m *Matches) Get(i int) Match {
	return m.entries[i]
}

// Entries returns the backing slice; callers must treat it as read-only.
func (m *Matches) Entries() []Match {
	return m.entries
}

// Top returns the highest-scored feature, or nil when the list is empty.
func (m *Matches) Top() *feature.Feature {
	if m.topIdx < 0 {
		return nil
	}
	return m.entries[m.topIdx].Feature
}

// TopScore is only meaningful when the list is non-empty.
func (m *Matches) TopScore() float64 {
	if m.topIdx < 0 {
		return 0
	}
	return m.topScore
}

// MatchMap maps features of one collection to their scored matches in the
// other. Iteration order is insertion order, so passes over a map built
// from an ordered collection stay deterministic, tie-breaks included.
type MatchMap struct {
	order   []*feature.Feature
	entries map[*feature.Feature]*Matches
}

func NewMatchMap() *MatchMap {
	return &MatchMap{entries: map[*feature.Feature]*Matches{}}
}

// Put sets the matches for a feature. A feature that is already present
// keeps its original position in the iteration order.
func (mm *MatchMap) Put(f *feature.Feature, matches *Matches) {
	_, exists := mm.entries[f]
	if !exists {
		mm.order = append(mm.order, f)
	}
	mm.entries[f] = matches
}

func (mm *MatchMap) Get(f *feature.Feature) (*Matches, bool) {
	m, ok := mm.entries[f]
	return m, ok
}

func (mm *MatchMap) Has(f *feature.Feature) bool {
	_, ok := mm.entries[f]
	return ok
}

func (mm *MatchMap) Len() int {
	return len(mm.order)
}

// Features returns the keys in iteration order; callers must treat the
// slice as read-only.
func (mm *MatchMap) Features() []*feature.Feature {
	return mm.order
}

// PutAll overlays every entry of other onto mm.
func (mm *MatchMap) PutAll(other *MatchMap) {
	for _, f := range other.Features() {
		matches, _ := other.Get(f)
		mm.Put(f, matches)
	}
}

// BlankMatchMap maps every feature of the target collection to a fresh
// empty Matches over the candidate schema. It seeds the total result: every
// target is guaranteed an entry even when nothing matched it.
func BlankMatchMap(targets *feature.Collection, candidateSchema *feature.Schema) *MatchMap {
	out := NewMatchMap()
	for _, f := range targets.Features() {
		out.Put(f, NewMatches(candidateSchema))
	}
	return out
}
