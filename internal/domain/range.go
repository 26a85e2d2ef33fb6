package domain

import "slices"

// GameType selects which of the 169 starting hands a range may contain.
type GameType string

const (
	Classic   GameType = "classic"
	ShortDeck GameType = "shortdeck"
)

// Action is a named, colored decision a range partitions hands into.
// The color identifies the action within one range.
type Action struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// Range maps hand labels (e.g. "AKs", "77", "T9o") to action colors.
// Hands missing from the map have no action.
type Range struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Type    GameType          `json:"type"`
	Hands   map[string]string `json:"hands"`
	Actions []Action          `json:"actions"`
}

// ActionByColor returns the action painted with color.
func (r Range) ActionByColor(color string) (Action, bool) {
	for _, a := range r.Actions {
		if a.Color == color {
			return a, true
		}
	}
	return Action{}, false
}

// ActionByID returns the action with the given id.
func (r Range) ActionByID(id string) (Action, bool) {
	for _, a := range r.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Clone returns a deep copy of the range.
func (r Range) Clone() Range {
	out := r
	out.Hands = make(map[string]string, len(r.Hands))
	for h, c := range r.Hands {
		out.Hands[h] = c
	}
	out.Actions = slices.Clone(r.Actions)
	return out
}
