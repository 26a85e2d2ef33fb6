// Package ranges stores Range entities and implements the grid editor used
// to paint them.
package ranges

import (
	"sort"

	"github.com/google/uuid"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/persist"
)

// Default actions seeded into every new chart.
var defaultActions = []struct{ name, color string }{
	{"Call", "#22c55e"},
	{"Raise", "#ef4444"},
}

// NewID returns a fresh range id.
func NewID() string {
	return "range-" + uuid.NewString()
}

// NewRange builds an empty range with the default call/raise palette.
func NewRange(id, name string, game domain.GameType) domain.Range {
	if game == "" {
		game = domain.Classic
	}
	r := domain.Range{ID: id, Name: name, Type: game, Hands: map[string]string{}}
	for _, a := range defaultActions {
		r.Actions = append(r.Actions, domain.Action{ID: uuid.NewString(), Name: a.name, Color: a.color})
	}
	return r
}

// Store is the keyed collection of ranges. It performs no validation.
type Store struct {
	store  persist.Store
	ranges map[string]domain.Range
}

// NewStore loads the ranges namespace from store. A nil store keeps
// everything in memory.
func NewStore(store persist.Store) *Store {
	s := &Store{store: store, ranges: map[string]domain.Range{}}
	if persist.Load(store, persist.Ranges, &s.ranges) && s.ranges == nil {
		s.ranges = map[string]domain.Range{}
	}
	return s
}

// Get returns a copy of the range with the given id.
func (s *Store) Get(id string) (domain.Range, bool) {
	r, ok := s.ranges[id]
	if !ok {
		return domain.Range{}, false
	}
	return r.Clone(), true
}

// Save inserts or replaces a range by its id.
func (s *Store) Save(r domain.Range) {
	s.ranges[r.ID] = r.Clone()
	s.persist()
}

// Delete removes a range. Missing ids are ignored.
func (s *Store) Delete(id string) {
	if _, ok := s.ranges[id]; !ok {
		return
	}
	delete(s.ranges, id)
	s.persist()
}

// Duplicate deep-copies the range stored under oldID to newID and reports
// whether oldID existed.
func (s *Store) Duplicate(oldID, newID string) bool {
	src, ok := s.ranges[oldID]
	if !ok {
		return false
	}
	dup := src.Clone()
	dup.ID = newID
	s.ranges[newID] = dup
	s.persist()
	return true
}

// IDs returns every stored range id, sorted.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.ranges))
	for id := range s.ranges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) persist() {
	persist.Save(s.store, persist.Ranges, s.ranges)
}
