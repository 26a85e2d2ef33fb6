// Package srs implements the simplified SM-2 scheduler used by drills: a
// binary pass/fail review moves a card up a fixed ladder of intervals and
// grows exponentially once it passes one day.
package srs

import (
	"math"
	"time"
)

const (
	InitialEase = 2.5
	MinEase     = 1.3
	EasePenalty = 0.2

	// MaxInterval caps growth at roughly a century, in minutes.
	MaxInterval = 100 * 365 * dayMins

	minuteMs = int64(time.Minute / time.Millisecond)
	dayMins  = 24 * 60
)

// CardState holds the memory state of one (chart, hand) pair.
// Timestamps are unix milliseconds; Interval is in minutes.
type CardState struct {
	Interval   int     `json:"interval"`
	Ease       float64 `json:"ease"`
	Due        int64   `json:"due"`
	Lapses     int     `json:"lapses"`
	LastReview int64   `json:"lastReview"`
}

// DueAt returns Due as a time.
func (c CardState) DueAt() time.Time {
	return time.UnixMilli(c.Due)
}

// IsDue reports whether the card should be reviewed at now.
func (c CardState) IsDue(now time.Time) bool {
	return c.Due <= now.UnixMilli()
}

// NextState calculates the state after a review. current is nil for a card
// that has never been answered.
func NextState(current *CardState, correct bool, now time.Time) CardState {
	if current == nil {
		if correct {
			return schedule(10, InitialEase, 0, now)
		}
		return schedule(1, InitialEase, 1, now)
	}

	interval, ease, lapses := current.Interval, current.Ease, current.Lapses
	if !correct {
		return schedule(1, math.Max(MinEase, ease-EasePenalty), lapses+1, now)
	}

	switch {
	case interval < 1:
		interval = 1
	case interval == 1:
		interval = 10
	case interval >= 10 && interval < 60:
		interval = 60
	case interval >= 60 && interval < dayMins:
		interval = dayMins
	default:
		interval = int(math.Min(math.Round(float64(interval)*ease), MaxInterval))
	}
	return schedule(interval, ease, lapses, now)
}

func schedule(interval int, ease float64, lapses int, now time.Time) CardState {
	ms := now.UnixMilli()
	return CardState{
		Interval:   interval,
		Ease:       ease,
		Due:        ms + int64(interval)*minuteMs,
		Lapses:     lapses,
		LastReview: ms,
	}
}
