package ranges

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/hands"
)

var (
	ErrInvalidHand     = errors.New("invalid hand")
	ErrUnknownAction   = errors.New("unknown action")
	ErrNoActionChosen  = errors.New("no action selected")
	ErrDuplicateColor  = errors.New("color already used by another action")
	ErrInvalidAction   = errors.New("invalid action")
	ErrUnknownGroup    = errors.New("unknown quick-select group")
	ErrUnknownGameType = errors.New("unknown game type")
)

var validate = validator.New()

// Cell normalizes label and checks it belongs to the game type's grid.
func Cell(label string, game domain.GameType) (string, error) {
	l, err := hands.Normalize(label)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHand, err)
	}
	if !hands.Valid(l, game) {
		return "", fmt.Errorf("%w: %s is not part of a %s deck", ErrInvalidHand, l, game)
	}
	return l, nil
}

// Editor holds a working copy of a range. Changes become visible to the
// store only on Save.
type Editor struct {
	r        domain.Range
	selected string
	brush    Brush
}

// NewEditor starts editing a copy of r with its first action selected.
func NewEditor(r domain.Range) *Editor {
	e := &Editor{r: r.Clone()}
	if e.r.Type == "" {
		e.r.Type = domain.Classic
	}
	if len(e.r.Actions) > 0 {
		e.selected = e.r.Actions[0].ID
	}
	return e
}

// Range returns a copy of the working range.
func (e *Editor) Range() domain.Range {
	return e.r.Clone()
}

// Save writes the working range to the store.
func (e *Editor) Save(s *Store) {
	s.Save(e.r)
}

// SetName renames the range.
func (e *Editor) SetName(name string) {
	e.r.Name = name
}

// SetGameType switches the grid and drops hands the new game does not have.
func (e *Editor) SetGameType(game domain.GameType) error {
	if game != domain.Classic && game != domain.ShortDeck {
		return fmt.Errorf("%w: %q", ErrUnknownGameType, game)
	}
	e.r.Type = game
	for h := range e.r.Hands {
		if !hands.Valid(h, game) {
			delete(e.r.Hands, h)
		}
	}
	return nil
}

// SelectAction chooses the action painted by subsequent strokes.
func (e *Editor) SelectAction(id string) error {
	if _, ok := e.r.ActionByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	e.selected = id
	return nil
}

// Selected returns the action currently used for painting.
func (e *Editor) Selected() (domain.Action, bool) {
	return e.r.ActionByID(e.selected)
}

// ActionByName finds an action case-insensitively.
func (e *Editor) ActionByName(name string) (domain.Action, bool) {
	for _, a := range e.r.Actions {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return domain.Action{}, false
}

func (e *Editor) stroke(label string) (string, string, error) {
	a, ok := e.Selected()
	if !ok {
		return "", "", ErrNoActionChosen
	}
	cell, err := Cell(label, e.r.Type)
	if err != nil {
		return "", "", err
	}
	return cell, a.Color, nil
}

// Press begins a drag on label.
func (e *Editor) Press(label string) error {
	cell, color, err := e.stroke(label)
	if err != nil {
		return err
	}
	e.brush.Press(e.r.Hands, cell, color)
	return nil
}

// Enter continues a drag over label. It does nothing outside a drag.
func (e *Editor) Enter(label string) error {
	if !e.brush.Dragging() {
		return nil
	}
	cell, color, err := e.stroke(label)
	if err != nil {
		return err
	}
	e.brush.Enter(e.r.Hands, cell, color)
	return nil
}

// Release ends a drag.
func (e *Editor) Release() {
	e.brush.Release()
}

// Toggle paints label with the selected action, or clears it if it already
// carries that action.
func (e *Editor) Toggle(label string) error {
	defer e.Release()
	return e.Press(label)
}

// Stroke drags across labels in order: the first fixes the mode.
func (e *Editor) Stroke(labels ...string) error {
	defer e.Release()
	for i, l := range labels {
		var err error
		if i == 0 {
			err = e.Press(l)
		} else {
			err = e.Enter(l)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyGroup paints every hand of a quick-select group with the selected action.
func (e *Editor) ApplyGroup(name string) error {
	a, ok := e.Selected()
	if !ok {
		return ErrNoActionChosen
	}
	group, ok := hands.Group(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	for _, h := range group {
		if hands.Valid(h, e.r.Type) {
			e.r.Hands[h] = a.Color
		}
	}
	return nil
}

// Clear removes every painted hand.
func (e *Editor) Clear() {
	e.r.Hands = map[string]string{}
}

func (e *Editor) colorTaken(color, exceptID string) bool {
	for _, a := range e.r.Actions {
		if a.ID != exceptID && strings.EqualFold(a.Color, color) {
			return true
		}
	}
	return false
}

// AddAction appends a new action to the palette.
func (e *Editor) AddAction(name, color string) (domain.Action, error) {
	a := domain.Action{ID: uuid.NewString(), Name: name, Color: strings.ToLower(color)}
	if err := validate.Struct(a); err != nil {
		return domain.Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	if e.colorTaken(a.Color, "") {
		return domain.Action{}, fmt.Errorf("%w: %s", ErrDuplicateColor, a.Color)
	}
	e.r.Actions = append(e.r.Actions, a)
	if e.selected == "" {
		e.selected = a.ID
	}
	return a, nil
}

func (e *Editor) actionIndex(id string) (int, error) {
	for i, a := range e.r.Actions {
		if a.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownAction, id)
}

// RenameAction changes an action's name.
func (e *Editor) RenameAction(id, name string) error {
	i, err := e.actionIndex(id)
	if err != nil {
		return err
	}
	if err := validate.Var(name, "required"); err != nil {
		return fmt.Errorf("%w: name %v", ErrInvalidAction, err)
	}
	e.r.Actions[i].Name = name
	return nil
}

// RecolorAction changes an action's color and repaints its hands.
func (e *Editor) RecolorAction(id, color string) error {
	i, err := e.actionIndex(id)
	if err != nil {
		return err
	}
	color = strings.ToLower(color)
	if err := validate.Var(color, "required,hexcolor"); err != nil {
		return fmt.Errorf("%w: color %v", ErrInvalidAction, err)
	}
	if e.colorTaken(color, id) {
		return fmt.Errorf("%w: %s", ErrDuplicateColor, color)
	}
	old := e.r.Actions[i].Color
	e.r.Actions[i].Color = color
	for h, c := range e.r.Hands {
		if c == old {
			e.r.Hands[h] = color
		}
	}
	return nil
}

// DeleteAction removes an action and every hand painted with its color.
func (e *Editor) DeleteAction(id string) error {
	i, err := e.actionIndex(id)
	if err != nil {
		return err
	}
	color := e.r.Actions[i].Color
	e.r.Actions = append(e.r.Actions[:i], e.r.Actions[i+1:]...)
	for h, c := range e.r.Hands {
		if c == color {
			delete(e.r.Hands, h)
		}
	}
	if e.selected == id {
		e.selected = ""
		if len(e.r.Actions) > 0 {
			e.selected = e.r.Actions[0].ID
		}
	}
	return nil
}

// Counts returns how many hands each action color holds and the total
// number of painted hands that map to an action.
func Counts(r domain.Range) (map[string]int, int) {
	counts := make(map[string]int, len(r.Actions))
	total := 0
	for _, a := range r.Actions {
		counts[a.Color] = 0
	}
	for _, c := range r.Hands {
		if _, ok := counts[c]; ok {
			counts[c]++
			total++
		}
	}
	return counts, total
}
