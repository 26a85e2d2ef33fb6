package drill

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/conorfennell/preflopdrill/internal/domain"
)

// Source is one chart fed into a session. Context is the library path of
// the chart, e.g. "Spin / HU; SB / 25bb".
type Source struct {
	ChartID string
	Range   domain.Range
	Context string
}

type scenario struct {
	hand domain.TrainingHand
	ref  *domain.Range // nil for demo scenarios
}

var demoScenarios = []domain.TrainingHand{
	{Hand: "K2o", CorrectAction: "Fold", ActionColor: "#ef4444", Position: "SB", StackSize: "10bb", Situation: "spin / HU; SB"},
	{Hand: "K8s", CorrectAction: "Raise/shove/call", ActionColor: "#3b82f6", Position: "SB", StackSize: "9bb", Situation: "spin / HU; SB"},
	{Hand: "KJo", CorrectAction: "Call", ActionColor: "#22c55e", Position: "BB", StackSize: "15bb", Situation: "spin / HU; BB vs OS"},
	{Hand: "T8s", CorrectAction: "Call", ActionColor: "#22c55e", Position: "BB", StackSize: "8bb", Situation: "spin / HU; BB vs OS"},
	{Hand: "94s", CorrectAction: "Raise AI", ActionColor: "#8b5cf6", Position: "SB", StackSize: "20bb", Situation: "spin / HU; SB"},
	{Hand: "A5s", CorrectAction: "3bet AI", ActionColor: "#f97316", Position: "BB", StackSize: "15bb", Situation: "spin / HU; BB vs Minr"},
}

// DemoScenarios returns the built-in fallback set used when no chart yields
// a scenario.
func DemoScenarios() []domain.TrainingHand {
	return append([]domain.TrainingHand(nil), demoScenarios...)
}

// demoOptions is the answer palette of the demo set, in first-seen order.
func demoOptions() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range demoScenarios {
		if !seen[s.CorrectAction] {
			seen[s.CorrectAction] = true
			out = append(out, s.CorrectAction)
		}
	}
	return out
}

// ParseContext splits a chart path into situation and stack size. Paths
// with at least three segments use the last one as the stack.
func ParseContext(label, rangeName string) (situation, stack string) {
	if strings.TrimSpace(label) == "" {
		return rangeName, ""
	}
	parts := strings.Split(label, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 3 {
		return strings.Join(parts[:len(parts)-1], " / "), parts[len(parts)-1]
	}
	return strings.TrimSpace(label), ""
}

// Scenarios flattens a source into training hands, ordered by hand label.
// Painted hands whose color matches no action are skipped.
func Scenarios(src Source) []domain.TrainingHand {
	situation, stack := ParseContext(src.Context, src.Range.Name)
	labels := make([]string, 0, len(src.Range.Hands))
	for h := range src.Range.Hands {
		labels = append(labels, h)
	}
	sort.Strings(labels)

	var out []domain.TrainingHand
	for _, h := range labels {
		color := src.Range.Hands[h]
		action, ok := src.Range.ActionByColor(color)
		if !ok {
			continue
		}
		out = append(out, domain.TrainingHand{
			ChartID:       src.ChartID,
			Hand:          h,
			CorrectAction: action.Name,
			ActionColor:   color,
			Position:      src.Range.Name,
			StackSize:     stack,
			Situation:     situation,
		})
	}
	return out
}

// buildQueue returns due scenarios before new ones, each group shuffled.
func buildQueue(sources []Source, tracker Tracker, now time.Time, rng *rand.Rand) []scenario {
	var due, fresh []scenario
	for i := range sources {
		src := &sources[i]
		var dueHands map[string]bool
		if tracker != nil && src.ChartID != "" {
			dueHands = tracker.DueHands(src.ChartID, now)
		}
		for _, h := range Scenarios(*src) {
			sc := scenario{hand: h, ref: &src.Range}
			if dueHands[h.Hand] {
				due = append(due, sc)
			} else {
				fresh = append(fresh, sc)
			}
		}
	}
	shuffle(rng, due)
	shuffle(rng, fresh)
	return append(due, fresh...)
}

func shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
