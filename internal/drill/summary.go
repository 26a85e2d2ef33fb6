package drill

import (
	"sort"

	"github.com/conorfennell/preflopdrill/internal/domain"
)

// ProblemHand is a hand answered wrongly at least once.
type ProblemHand struct {
	Hand   string
	Errors int
}

// ActionStat is the accuracy of answers that picked one action.
type ActionStat struct {
	Action   string
	Attempts int
	Correct  int
	Accuracy int
}

// Summary is the report of a completed run.
type Summary struct {
	Answered      int
	Score         int
	Accuracy      int
	LongestStreak int
	ProblemHands  []ProblemHand
	Actions       []ActionStat
	Tier          string
}

const maxProblemHands = 5

// Summarize builds the report for a history of answers.
func Summarize(history []domain.Answer) Summary {
	sum := Summary{Answered: len(history)}

	streak := 0
	errs := map[string]int{}
	stats := map[string]*ActionStat{}
	for _, a := range history {
		st := stats[a.Action]
		if st == nil {
			st = &ActionStat{Action: a.Action}
			stats[a.Action] = st
		}
		st.Attempts++
		if a.Correct {
			sum.Score++
			st.Correct++
			streak++
			sum.LongestStreak = max(sum.LongestStreak, streak)
		} else {
			errs[a.Hand]++
			streak = 0
		}
	}
	sum.Accuracy = percent(sum.Score, sum.Answered, 100)
	sum.Tier = Tier(sum.Accuracy)

	for h, n := range errs {
		sum.ProblemHands = append(sum.ProblemHands, ProblemHand{Hand: h, Errors: n})
	}
	sort.Slice(sum.ProblemHands, func(i, j int) bool {
		a, b := sum.ProblemHands[i], sum.ProblemHands[j]
		if a.Errors != b.Errors {
			return a.Errors > b.Errors
		}
		return a.Hand < b.Hand
	})
	if len(sum.ProblemHands) > maxProblemHands {
		sum.ProblemHands = sum.ProblemHands[:maxProblemHands]
	}

	for _, st := range stats {
		st.Accuracy = percent(st.Correct, st.Attempts, 0)
		sum.Actions = append(sum.Actions, *st)
	}
	sort.Slice(sum.Actions, func(i, j int) bool {
		a, b := sum.Actions[i], sum.Actions[j]
		if a.Attempts != b.Attempts {
			return a.Attempts > b.Attempts
		}
		return a.Action < b.Action
	})
	return sum
}

// Tier names the performance band of an accuracy percentage.
func Tier(accuracy int) string {
	switch {
	case accuracy >= 95:
		return "Perfect"
	case accuracy >= 85:
		return "Excellent"
	case accuracy >= 70:
		return "Good job"
	case accuracy >= 50:
		return "Keep practicing"
	}
	return "Needs work"
}
