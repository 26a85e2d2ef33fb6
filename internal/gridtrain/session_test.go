package gridtrain

import (
	"errors"
	"strings"
	"testing"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/ranges"
)

func reference() domain.Range {
	return domain.Range{
		ID:   "range-1",
		Name: "SB",
		Type: domain.Classic,
		Actions: []domain.Action{
			{ID: "raise", Name: "Raise", Color: "#f00"},
			{ID: "call", Name: "Call", Color: "#0f0"},
			{ID: "limp", Name: "Limp", Color: "#00f"},
		},
		Hands: map[string]string{"AA": "#f00", "KK": "#0f0"},
	}
}

func paint(t *testing.T, s *Session, action string, labels ...string) {
	t.Helper()
	if err := s.SelectAction(action); err != nil {
		t.Fatal(err)
	}
	for _, l := range labels {
		if err := s.Toggle(l); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewStartsEmpty(t *testing.T) {
	s := New(reference())
	if len(s.UserHands()) != 0 {
		t.Error("Expected an empty user grid")
	}
	if a, ok := s.Selected(); !ok || a.ID != "raise" {
		t.Errorf("Expected the first action selected, but got %+v", a)
	}
}

func TestVerify(t *testing.T) {
	s := New(reference())
	paint(t, s, "raise", "AA")
	paint(t, s, "limp", "QQ")

	res := s.Verify()
	if res.Correct != 1 || res.Missed != 1 || res.Incorrect != 1 || res.Total != 2 {
		t.Errorf("Unexpected counts %+v", res)
	}
	if res.Accuracy != 50 {
		t.Errorf("Expected accuracy 50, but got %d", res.Accuracy)
	}
	if res.CorrectCells[0] != "AA" || res.MissedCells[0] != "KK" || res.IncorrectCells[0] != "QQ" {
		t.Errorf("Unexpected cells %+v", res)
	}

	t.Run("wrong color counts as incorrect", func(t *testing.T) {
		paint(t, s, "raise", "KK")
		res := s.Verify()
		if res.Incorrect != 2 || res.Missed != 0 {
			t.Errorf("Unexpected counts %+v", res)
		}
	})

	t.Run("empty reference", func(t *testing.T) {
		r := reference()
		r.Hands = map[string]string{}
		s := New(r)
		paint(t, s, "raise", "AA")
		res := s.Verify()
		if res.Accuracy != 0 || res.Incorrect != 1 {
			t.Errorf("Expected 0%% with one incorrect, but got %+v", res)
		}
	})

	t.Run("unmatched reference color is not scored", func(t *testing.T) {
		r := reference()
		r.Hands = map[string]string{"AA": "#f00", "KK": "#123456"}
		s := New(r)
		paint(t, s, "raise", "AA")
		res := s.Verify()
		if res.Correct != 1 || res.Missed != 0 || res.Total != 1 {
			t.Errorf("Unexpected counts %+v", res)
		}
		if res.Accuracy != 100 {
			t.Errorf("Expected accuracy 100, but got %d", res.Accuracy)
		}
	})
}

func TestDragAndGroups(t *testing.T) {
	s := New(reference())
	if err := s.Stroke("AKs", "AQs", "AJs"); err != nil {
		t.Fatal(err)
	}
	if len(s.UserHands()) != 3 {
		t.Errorf("Expected 3 painted hands, but got %d", len(s.UserHands()))
	}
	// Starting on a painted cell erases along the drag.
	s.Press("AKs")
	s.Enter("AQs")
	s.Enter("KQs")
	s.Release()
	s.Enter("AJs")
	if got := s.UserHands(); len(got) != 1 || got["AJs"] != "#f00" {
		t.Errorf("Unexpected grid after erase drag %v", got)
	}

	if err := s.ApplyGroup("Pocket pairs"); err != nil {
		t.Fatal(err)
	}
	if len(s.UserHands()) != 14 {
		t.Errorf("Expected 14 painted hands, but got %d", len(s.UserHands()))
	}
	if err := s.ApplyGroup("Nope"); !errors.Is(err, ranges.ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup, but got %v", err)
	}
	if err := s.Press("XYZ"); !errors.Is(err, ranges.ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand, but got %v", err)
	}
	s.Clear()
	if len(s.UserHands()) != 0 {
		t.Error("Expected Clear to empty the grid")
	}
}

func TestReferenceOverlay(t *testing.T) {
	s := New(reference())
	paint(t, s, "limp", "QQ")

	s.ToggleReference()
	if !s.Revealed() || s.Cell("KK") != "#0f0" || s.Cell("QQ") != "" {
		t.Error("Expected reference colors while revealed")
	}
	s.ToggleReference()
	if s.Cell("QQ") != "#00f" || s.Cell("KK") != "" {
		t.Error("Expected the user's paint back after hiding the reference")
	}
}

func TestReferenceIsolated(t *testing.T) {
	ref := reference()
	s := New(ref)
	paint(t, s, "raise", "22")
	ref.Hands["AA"] = "#0f0"
	if res := s.Verify(); res.MissedCells[0] != "AA" {
		t.Error("Expected the session to keep its own copy of the reference")
	}
}

func TestTextDiff(t *testing.T) {
	s := New(reference())
	paint(t, s, "raise", "AA")
	paint(t, s, "limp", "QQ")

	diff := s.TextDiff()
	for _, want := range []string{"  AA   Raise\n", "- KK   Call\n", "+ QQ   Limp\n"} {
		if !strings.Contains(diff, want) {
			t.Errorf("Expected diff to contain %q, but got:\n%s", want, diff)
		}
	}
}
