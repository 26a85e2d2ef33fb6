package drill

import (
	"testing"

	"github.com/conorfennell/preflopdrill/internal/domain"
)

func TestSummarize(t *testing.T) {
	history := []domain.Answer{
		{Hand: "AA", Correct: true, Action: "Raise"},
		{Hand: "KK", Correct: true, Action: "Raise"},
		{Hand: "72o", Correct: false, Action: "Call"},
		{Hand: "QQ", Correct: true, Action: "Raise"},
		{Hand: "JJ", Correct: true, Action: "Raise"},
		{Hand: "TT", Correct: true, Action: "Raise"},
		{Hand: "72o", Correct: false, Action: "Raise"},
		{Hand: "A5s", Correct: false, Action: "Call"},
		{Hand: "K2o", Correct: true, Action: "Fold"},
	}
	sum := Summarize(history)

	if sum.Answered != 9 || sum.Score != 6 {
		t.Errorf("Expected 6/9, but got %d/%d", sum.Score, sum.Answered)
	}
	if sum.Accuracy != 67 {
		t.Errorf("Expected accuracy 67, but got %d", sum.Accuracy)
	}
	if sum.LongestStreak != 3 {
		t.Errorf("Expected longest streak 3, but got %d", sum.LongestStreak)
	}
	if sum.Tier != "Keep practicing" {
		t.Errorf("Unexpected tier %q", sum.Tier)
	}

	wantProblems := []ProblemHand{{"72o", 2}, {"A5s", 1}}
	if len(sum.ProblemHands) != len(wantProblems) {
		t.Fatalf("Expected %d problem hands, but got %v", len(wantProblems), sum.ProblemHands)
	}
	for i, p := range wantProblems {
		if sum.ProblemHands[i] != p {
			t.Errorf("Problem %d: expected %+v, but got %+v", i, p, sum.ProblemHands[i])
		}
	}

	wantActions := []ActionStat{
		{Action: "Raise", Attempts: 6, Correct: 5, Accuracy: 83},
		{Action: "Call", Attempts: 2, Correct: 0, Accuracy: 0},
		{Action: "Fold", Attempts: 1, Correct: 1, Accuracy: 100},
	}
	if len(sum.Actions) != len(wantActions) {
		t.Fatalf("Expected %d actions, but got %v", len(wantActions), sum.Actions)
	}
	for i, a := range wantActions {
		if sum.Actions[i] != a {
			t.Errorf("Action %d: expected %+v, but got %+v", i, a, sum.Actions[i])
		}
	}
}

func TestProblemHandsCapped(t *testing.T) {
	var history []domain.Answer
	for _, h := range []string{"QQ", "AA", "KK", "JJ", "TT", "99", "88"} {
		history = append(history, domain.Answer{Hand: h, Action: "Call"})
	}
	history = append(history, domain.Answer{Hand: "88", Action: "Call"})
	sum := Summarize(history)

	if len(sum.ProblemHands) != 5 {
		t.Fatalf("Expected 5 problem hands, but got %d", len(sum.ProblemHands))
	}
	want := []string{"88", "99", "AA", "JJ", "KK"}
	for i, h := range want {
		if sum.ProblemHands[i].Hand != h {
			t.Errorf("Position %d: expected %s, but got %s", i, h, sum.ProblemHands[i].Hand)
		}
	}
	if sum.LongestStreak != 0 || sum.Tier != "Needs work" {
		t.Errorf("Unexpected summary %+v", sum)
	}
}

func TestTier(t *testing.T) {
	cases := map[int]string{100: "Perfect", 95: "Perfect", 94: "Excellent", 85: "Excellent", 70: "Good job", 50: "Keep practicing", 49: "Needs work"}
	for acc, want := range cases {
		if got := Tier(acc); got != want {
			t.Errorf("Tier(%d): expected %q, but got %q", acc, want, got)
		}
	}
}
