package srs

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestNextStateNewCard(t *testing.T) {
	ms := t0.UnixMilli()

	t.Run("correct", func(t *testing.T) {
		s := NextState(nil, true, t0)
		if s.Interval != 10 || s.Ease != 2.5 || s.Lapses != 0 {
			t.Errorf("Unexpected state %+v", s)
		}
		if s.Due != ms+600000 || s.LastReview != ms {
			t.Errorf("Expected due %d, but got %d", ms+600000, s.Due)
		}
	})

	t.Run("incorrect", func(t *testing.T) {
		s := NextState(nil, false, t0)
		if s.Interval != 1 || s.Ease != 2.5 || s.Lapses != 1 {
			t.Errorf("Unexpected state %+v", s)
		}
		if s.Due != ms+60000 {
			t.Errorf("Expected due %d, but got %d", ms+60000, s.Due)
		}
	})
}

func TestLadder(t *testing.T) {
	var s *CardState
	want := []int{10, 60, 1440, 3600}
	now := t0
	for i, w := range want {
		next := NextState(s, true, now)
		if next.Interval != w {
			t.Fatalf("Step %d: expected interval %d, but got %d", i, w, next.Interval)
		}
		if next.Due != next.LastReview+int64(next.Interval)*60000 {
			t.Errorf("Step %d: due is not lastReview + interval", i)
		}
		if next.Ease != 2.5 {
			t.Errorf("Step %d: ease changed on success to %v", i, next.Ease)
		}
		s = &next
		now = now.Add(time.Hour)
	}
}

func TestLadderBranches(t *testing.T) {
	cases := []struct {
		interval int
		want     int
	}{
		{0, 1},
		{1, 10},
		{10, 60},
		{59, 60},
		{60, 1440},
		{1439, 1440},
		{1440, 3600},
		{5, 13}, // between 1 and 10 grows by ease
	}
	for _, tc := range cases {
		s := NextState(&CardState{Interval: tc.interval, Ease: 2.5}, true, t0)
		if s.Interval != tc.want {
			t.Errorf("interval %d: expected %d, but got %d", tc.interval, tc.want, s.Interval)
		}
	}
}

func TestLapse(t *testing.T) {
	s := CardState{Interval: 1440, Ease: 2.5, Lapses: 2}
	next := NextState(&s, false, t0)
	if next.Interval != 1 {
		t.Errorf("Expected interval reset to 1, but got %d", next.Interval)
	}
	if math.Abs(next.Ease-2.3) > 1e-9 {
		t.Errorf("Expected ease 2.3, but got %v", next.Ease)
	}
	if next.Lapses != 3 {
		t.Errorf("Expected 3 lapses, but got %d", next.Lapses)
	}

	floor := NextState(&CardState{Interval: 10, Ease: 1.4}, false, t0)
	if floor.Ease != MinEase {
		t.Errorf("Expected ease floored at %v, but got %v", MinEase, floor.Ease)
	}
	again := NextState(&floor, false, t0)
	if again.Ease != MinEase {
		t.Errorf("Expected ease to stay at %v, but got %v", MinEase, again.Ease)
	}
}

func TestIsDue(t *testing.T) {
	s := NextState(nil, true, t0)
	if s.IsDue(t0) {
		t.Error("Card should not be due right after review")
	}
	if !s.IsDue(t0.Add(10 * time.Minute)) {
		t.Error("Card should be due exactly at its due time")
	}
	if !s.DueAt().Equal(t0.Add(10 * time.Minute)) {
		t.Errorf("Unexpected DueAt %v", s.DueAt())
	}
}

func TestLongStreakIsCapped(t *testing.T) {
	var s *CardState
	prev := 0
	for i := range 60 {
		next := NextState(s, true, t0)
		if next.Interval < prev {
			t.Fatalf("Step %d: interval shrank from %d to %d", i, prev, next.Interval)
		}
		if next.Interval > MaxInterval {
			t.Fatalf("Step %d: expected interval at most %d, but got %d", i, MaxInterval, next.Interval)
		}
		if next.Due <= next.LastReview {
			t.Fatalf("Step %d: expected due after last review, but got due=%d lastReview=%d", i, next.Due, next.LastReview)
		}
		if next.Due != next.LastReview+int64(next.Interval)*60000 {
			t.Fatalf("Step %d: due is not lastReview + interval", i)
		}
		prev = next.Interval
		s = &next
	}
	if s.Interval != MaxInterval {
		t.Errorf("Expected interval to settle at %d, but got %d", MaxInterval, s.Interval)
	}
	if s.IsDue(t0.Add(365 * 24 * time.Hour)) {
		t.Error("Card with a capped interval should not be due a year later")
	}
}
