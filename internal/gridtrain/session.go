// Package gridtrain implements the grid drill: the user repaints a chart
// from memory on an empty grid and checks it against the stored one.
package gridtrain

import (
	"fmt"
	"math"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/hands"
	"github.com/conorfennell/preflopdrill/internal/ranges"
)

// Result is the outcome of a Verify.
type Result struct {
	Correct   int
	Incorrect int
	Missed    int
	// Total is the number of hands painted in the reference.
	Total    int
	Accuracy int

	CorrectCells   []string
	IncorrectCells []string
	MissedCells    []string
}

// Session is one grid drill over a reference chart.
type Session struct {
	ref      domain.Range
	user     *ranges.Editor
	revealed bool
}

// New starts a drill with an empty grid that shares the reference palette.
func New(reference domain.Range) *Session {
	ref := reference.Clone()
	blank := ref.Clone()
	blank.Hands = map[string]string{}
	return &Session{ref: ref, user: ranges.NewEditor(blank)}
}

// Actions returns the palette the user paints with.
func (s *Session) Actions() []domain.Action {
	return append([]domain.Action(nil), s.ref.Actions...)
}

func (s *Session) SelectAction(id string) error { return s.user.SelectAction(id) }
func (s *Session) Selected() (domain.Action, bool) { return s.user.Selected() }
func (s *Session) ActionByName(n string) (domain.Action, bool) { return s.user.ActionByName(n) }
func (s *Session) Press(label string) error { return s.user.Press(label) }
func (s *Session) Enter(label string) error { return s.user.Enter(label) }
func (s *Session) Release() { s.user.Release() }
func (s *Session) Toggle(label string) error { return s.user.Toggle(label) }
func (s *Session) Stroke(labels ...string) error { return s.user.Stroke(labels...) }
func (s *Session) ApplyGroup(name string) error { return s.user.ApplyGroup(name) }
func (s *Session) Clear() { s.user.Clear() }

// UserHands returns a copy of what the user painted.
func (s *Session) UserHands() map[string]string {
	return s.user.Range().Hands
}

// Verify compares the user's grid with the reference. Reference cells whose
// color matches no action have no correct answer and are not scored.
func (s *Session) Verify() Result {
	user := s.user.Range().Hands
	var res Result
	for _, h := range hands.All() {
		want, inRef := s.ref.Hands[h]
		if inRef {
			if _, ok := s.ref.ActionByColor(want); !ok {
				inRef = false
			}
		}
		if inRef {
			res.Total++
		}
		got, painted := user[h]
		switch {
		case painted && inRef && got == want:
			res.Correct++
			res.CorrectCells = append(res.CorrectCells, h)
		case painted:
			res.Incorrect++
			res.IncorrectCells = append(res.IncorrectCells, h)
		case inRef:
			res.Missed++
			res.MissedCells = append(res.MissedCells, h)
		}
	}
	if res.Total > 0 {
		res.Accuracy = int(math.Round(float64(res.Correct) / float64(res.Total) * 100))
	}
	return res
}

// ToggleReference overlays or hides the reference colors. The user's paint
// is kept either way.
func (s *Session) ToggleReference() { s.revealed = !s.revealed }

func (s *Session) Revealed() bool { return s.revealed }

// Cell returns the color shown for label: the reference color while it is
// revealed, otherwise the user's.
func (s *Session) Cell(label string) string {
	if s.revealed {
		return s.ref.Hands[label]
	}
	return s.user.Range().Hands[label]
}

func (s *Session) render(hm map[string]string) string {
	var b strings.Builder
	for _, h := range hands.All() {
		c, ok := hm[h]
		if !ok {
			continue
		}
		name := c
		if a, ok := s.ref.ActionByColor(c); ok {
			name = a.Name
		}
		fmt.Fprintf(&b, "%-4s %s\n", h, name)
	}
	return b.String()
}

// TextDiff lists the painted hands of both grids line by line: "-" lines
// are only in the reference, "+" lines only in the user's grid.
func (s *Session) TextDiff() string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(s.render(s.ref.Hands), s.render(s.user.Range().Hands))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				out.WriteString(prefix + line)
			}
		}
	}
	return out.String()
}
