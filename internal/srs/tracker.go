package srs

import (
	"log/slog"
	"time"

	"github.com/conorfennell/preflopdrill/internal/persist"
)

// Tracker keeps the card state of every reviewed (chart, hand) pair and
// writes the whole set through to the srs namespace after each change.
type Tracker struct {
	store persist.Store
	data  map[string]map[string]CardState // chart id -> hand -> state
}

// NewTracker loads previously stored states from store. A nil store keeps
// everything in memory.
func NewTracker(store persist.Store) *Tracker {
	t := &Tracker{store: store, data: map[string]map[string]CardState{}}
	if persist.Load(store, persist.SRS, &t.data) && t.data == nil {
		t.data = map[string]map[string]CardState{}
	}
	return t
}

// Get returns the stored state for a pair, or nil if it was never reviewed.
func (t *Tracker) Get(chartID, hand string) *CardState {
	s, ok := t.data[chartID][hand]
	if !ok {
		return nil
	}
	return &s
}

// Record applies one review outcome and persists it.
func (t *Tracker) Record(chartID, hand string, correct bool, now time.Time) CardState {
	next := NextState(t.Get(chartID, hand), correct, now)
	if t.data[chartID] == nil {
		t.data[chartID] = map[string]CardState{}
	}
	t.data[chartID][hand] = next
	slog.Debug("Recorded review", "chart", chartID, "hand", hand, "correct", correct, "interval", next.Interval)
	persist.Save(t.store, persist.SRS, t.data)
	return next
}

// DueHands returns the hands of a chart whose review time has passed.
// Hands without a stored state are new, never due.
func (t *Tracker) DueHands(chartID string, now time.Time) map[string]bool {
	due := map[string]bool{}
	for hand, s := range t.data[chartID] {
		if s.IsDue(now) {
			due[hand] = true
		}
	}
	return due
}

// Stats summarizes the stored state of one chart.
type Stats struct {
	Reviewed int
	Due      int
	Lapses   int
	MeanEase float64
}

// Stats reports review counts for a chart.
func (t *Tracker) Stats(chartID string, now time.Time) Stats {
	var st Stats
	var easeSum float64
	for _, s := range t.data[chartID] {
		st.Reviewed++
		st.Lapses += s.Lapses
		easeSum += s.Ease
		if s.IsDue(now) {
			st.Due++
		}
	}
	if st.Reviewed > 0 {
		st.MeanEase = easeSum / float64(st.Reviewed)
	}
	return st
}

// Clear drops every stored state.
func (t *Tracker) Clear() {
	t.data = map[string]map[string]CardState{}
	persist.Save(t.store, persist.SRS, t.data)
}
