// Package library maintains the Format → Scenario → Stack → Chart tree.
//
// Nodes live in a flat table keyed by id with ordered child id lists. Every
// mutation is written through to the library namespace. Lookups hand out
// deep snapshots so callers never alias tree state.
package library

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/persist"
	"github.com/conorfennell/preflopdrill/internal/ranges"
)

var (
	ErrNotFound         = errors.New("node not found")
	ErrInvalidHierarchy = errors.New("node type not allowed here")
	ErrEmptyClipboard   = errors.New("clipboard is empty")
)

// CopySuffix is appended to the title of a cloned node.
const CopySuffix = " (copy)"

// Direction of a Move.
type Direction int

const (
	Up Direction = iota
	Down
)

// RangeStore is the range persistence the tree needs when charts are
// created or duplicated.
type RangeStore interface {
	Save(r domain.Range)
	Duplicate(oldID, newID string) bool
}

type entry struct {
	id        string
	title     string
	typ       domain.NodeType
	createdAt time.Time
	rangeID   string
	parent    string // empty for roots
	children  []string
}

// Tree is the library aggregate.
type Tree struct {
	store  persist.Store
	ranges RangeStore
	game   domain.GameType
	now    func() time.Time

	nodes map[string]*entry
	roots []string

	expanded  map[string]bool
	selected  string
	clipboard *domain.Node
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(t *Tree) { t.now = now }
}

// WithGameType sets the game type of ranges seeded for new charts.
func WithGameType(g domain.GameType) Option {
	return func(t *Tree) { t.game = g }
}

// New loads the library from store. rs receives the ranges of new and
// duplicated charts.
func New(store persist.Store, rs RangeStore, opts ...Option) *Tree {
	t := &Tree{
		store:    store,
		ranges:   rs,
		game:     domain.Classic,
		now:      time.Now,
		nodes:    map[string]*entry{},
		expanded: map[string]bool{},
	}
	for _, opt := range opts {
		opt(t)
	}
	var forest []domain.Node
	if persist.Load(store, persist.Library, &forest) {
		for _, n := range forest {
			t.load(n, "")
		}
	}
	return t
}

// load inserts a stored subtree, skipping anything that breaks the hierarchy.
func (t *Tree) load(n domain.Node, parent string) {
	want, ok := t.AllowedChildType(parent)
	if !ok || n.Type != want || n.ID == "" || t.nodes[n.ID] != nil {
		slog.Warn("Skipping invalid library node", "id", n.ID, "type", n.Type, "parent", parent)
		return
	}
	e := &entry{id: n.ID, title: n.Title, typ: n.Type, createdAt: n.CreatedAt, parent: parent}
	if n.Type == domain.Chart {
		e.rangeID = n.RangeID
	}
	t.nodes[e.id] = e
	t.appendChild(parent, e.id)
	for _, c := range n.Children {
		t.load(c, e.id)
	}
}

func (t *Tree) save() {
	persist.Save(t.store, persist.Library, t.Roots())
}

func (t *Tree) newID(typ domain.NodeType) string {
	return typ.String() + "-" + uuid.NewString()
}

// siblings returns the child list that contains the given parent's children.
func (t *Tree) siblings(parent string) *[]string {
	if parent == "" {
		return &t.roots
	}
	return &t.nodes[parent].children
}

func (t *Tree) appendChild(parent, id string) {
	s := t.siblings(parent)
	*s = append(*s, id)
}

func (t *Tree) insertAfter(parent, after, id string) {
	s := t.siblings(parent)
	for i, sib := range *s {
		if sib == after {
			*s = append((*s)[:i+1], append([]string{id}, (*s)[i+1:]...)...)
			return
		}
	}
	*s = append(*s, id)
}

func (t *Tree) create(typ domain.NodeType, title, parent string) *entry {
	e := &entry{id: t.newID(typ), title: title, typ: typ, createdAt: t.now(), parent: parent}
	if typ == domain.Chart {
		e.rangeID = ranges.NewID()
		if t.ranges != nil {
			t.ranges.Save(ranges.NewRange(e.rangeID, title, t.game))
		}
	}
	t.nodes[e.id] = e
	return e
}

// AddRoot creates a new Format at the end of the root list.
func (t *Tree) AddRoot(title string) string {
	e := t.create(domain.Format, title, "")
	t.appendChild("", e.id)
	t.expanded[e.id] = true
	t.save()
	return e.id
}

// AllowedChildType returns the type AddChild would create under id.
// An empty id stands for the root level.
func (t *Tree) AllowedChildType(id string) (domain.NodeType, bool) {
	if id == "" {
		return domain.Format, true
	}
	e, ok := t.nodes[id]
	if !ok {
		return 0, false
	}
	return e.typ.AllowedChild()
}

// AddChild creates the next level below parentID. Charts get a freshly
// seeded range.
func (t *Tree) AddChild(parentID, title string) (string, error) {
	p, ok := t.nodes[parentID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, parentID)
	}
	typ, ok := p.typ.AllowedChild()
	if !ok {
		return "", fmt.Errorf("%w: %s cannot have children", ErrInvalidHierarchy, p.typ)
	}
	e := t.create(typ, title, parentID)
	t.appendChild(parentID, e.id)
	t.expanded[parentID] = true
	t.save()
	return e.id, nil
}

// Rename changes a node title. Unknown ids are ignored.
func (t *Tree) Rename(id, title string) {
	e, ok := t.nodes[id]
	if !ok {
		return
	}
	e.title = title
	t.save()
}

// Delete removes a node and its subtree. Range data of removed charts is
// left in the range store.
func (t *Tree) Delete(id string) {
	e, ok := t.nodes[id]
	if !ok {
		return
	}
	s := t.siblings(e.parent)
	for i, sib := range *s {
		if sib == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			break
		}
	}
	t.forget(id)
	t.save()
}

func (t *Tree) forget(id string) {
	e := t.nodes[id]
	for _, c := range e.children {
		t.forget(c)
	}
	delete(t.nodes, id)
	delete(t.expanded, id)
	if t.selected == id {
		t.selected = ""
	}
}

// Move swaps a node with its neighbour. Moving past either end does nothing.
func (t *Tree) Move(id string, dir Direction) {
	e, ok := t.nodes[id]
	if !ok {
		return
	}
	s := *t.siblings(e.parent)
	for i, sib := range s {
		if sib != id {
			continue
		}
		j := i - 1
		if dir == Down {
			j = i + 1
		}
		if j < 0 || j >= len(s) {
			return
		}
		s[i], s[j] = s[j], s[i]
		t.save()
		return
	}
}

// Clone duplicates a subtree, with new ids and ranges, right after the original.
func (t *Tree) Clone(id string) (string, error) {
	e, ok := t.nodes[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snap := t.snapshot(e)
	snap.Title += CopySuffix
	root := t.duplicate(snap, e.parent)
	t.insertAfter(e.parent, id, root)
	t.save()
	return root, nil
}

// duplicate recreates n under parent without linking the root into the
// parent's child list. Child links are made as it goes.
func (t *Tree) duplicate(n domain.Node, parent string) string {
	e := &entry{id: t.newID(n.Type), title: n.Title, typ: n.Type, createdAt: t.now(), parent: parent}
	if n.Type == domain.Chart {
		e.rangeID = ranges.NewID()
		if t.ranges != nil && !t.ranges.Duplicate(n.RangeID, e.rangeID) {
			t.ranges.Save(ranges.NewRange(e.rangeID, n.Title, t.game))
		}
	}
	t.nodes[e.id] = e
	for _, c := range n.Children {
		e.children = append(e.children, t.duplicate(c, e.id))
	}
	return e.id
}

// Copy puts a snapshot of the subtree in the clipboard.
func (t *Tree) Copy(id string) error {
	e, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snap := t.snapshot(e)
	t.clipboard = &snap
	return nil
}

// Clipboard returns the copied node, if any.
func (t *Tree) Clipboard() (domain.Node, bool) {
	if t.clipboard == nil {
		return domain.Node{}, false
	}
	return *t.clipboard, true
}

// CanPaste reports whether the clipboard fits under the target. An empty
// target stands for the root level, which only takes formats.
func (t *Tree) CanPaste(targetID string) bool {
	if t.clipboard == nil {
		return false
	}
	typ, ok := t.AllowedChildType(targetID)
	return ok && typ == t.clipboard.Type
}

// Paste duplicates the clipboard as the last child of the target.
func (t *Tree) Paste(targetID string) (string, error) {
	if t.clipboard == nil {
		return "", ErrEmptyClipboard
	}
	if targetID != "" && t.nodes[targetID] == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, targetID)
	}
	if !t.CanPaste(targetID) {
		return "", fmt.Errorf("%w: cannot paste %s here", ErrInvalidHierarchy, t.clipboard.Type)
	}
	root := t.duplicate(*t.clipboard, targetID)
	t.appendChild(targetID, root)
	if targetID != "" {
		t.expanded[targetID] = true
	}
	t.save()
	return root, nil
}

// ToggleExpand flips the expanded state of a node.
func (t *Tree) ToggleExpand(id string) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	if t.expanded[id] {
		delete(t.expanded, id)
	} else {
		t.expanded[id] = true
	}
}

// IsExpanded reports whether a node is expanded.
func (t *Tree) IsExpanded(id string) bool { return t.expanded[id] }

// ExpandAll expands every node.
func (t *Tree) ExpandAll() {
	for id := range t.nodes {
		t.expanded[id] = true
	}
}

// CollapseAll collapses every node.
func (t *Tree) CollapseAll() {
	t.expanded = map[string]bool{}
}

// Select marks a node as selected. An unknown id clears the selection.
func (t *Tree) Select(id string) {
	if _, ok := t.nodes[id]; !ok {
		id = ""
	}
	t.selected = id
}

// Selected returns the selected node id, or "" if none.
func (t *Tree) Selected() string { return t.selected }

// Clear removes every node.
func (t *Tree) Clear() {
	t.nodes = map[string]*entry{}
	t.roots = nil
	t.expanded = map[string]bool{}
	t.selected = ""
	t.save()
}

func (t *Tree) snapshot(e *entry) domain.Node {
	n := domain.Node{
		ID:        e.id,
		Title:     e.title,
		Type:      e.typ,
		CreatedAt: e.createdAt,
		RangeID:   e.rangeID,
	}
	if !e.typ.IsLeaf() {
		n.Children = make([]domain.Node, 0, len(e.children))
		for _, c := range e.children {
			n.Children = append(n.Children, t.snapshot(t.nodes[c]))
		}
	}
	return n
}

// FindByID returns a snapshot of the node and its subtree.
func (t *Tree) FindByID(id string) (domain.Node, bool) {
	e, ok := t.nodes[id]
	if !ok {
		return domain.Node{}, false
	}
	return t.snapshot(e), true
}

// Roots returns a snapshot of the whole forest.
func (t *Tree) Roots() []domain.Node {
	out := make([]domain.Node, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.snapshot(t.nodes[id]))
	}
	return out
}

// Parent returns the parent id of a node; roots have "".
func (t *Tree) Parent(id string) (string, bool) {
	e, ok := t.nodes[id]
	if !ok {
		return "", false
	}
	return e.parent, true
}

// Path joins the titles from the root down to id with " / ".
func (t *Tree) Path(id string) string {
	var titles []string
	for e, ok := t.nodes[id]; ok; e, ok = t.nodes[e.parent] {
		titles = append([]string{e.title}, titles...)
	}
	return strings.Join(titles, " / ")
}

// Charts returns every chart in the subtree of id in display order,
// including id itself when it is a chart.
func (t *Tree) Charts(id string) []domain.Node {
	e, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []domain.Node
	var walk func(*entry)
	walk = func(e *entry) {
		if e.typ == domain.Chart {
			out = append(out, t.snapshot(e))
			return
		}
		for _, c := range e.children {
			walk(t.nodes[c])
		}
	}
	walk(e)
	return out
}

// FindChild returns the first child of parent with the given title.
// An empty parent searches the roots.
func (t *Tree) FindChild(parent, title string) (string, bool) {
	if parent != "" && t.nodes[parent] == nil {
		return "", false
	}
	for _, id := range *t.siblings(parent) {
		if t.nodes[id].title == title {
			return id, true
		}
	}
	return "", false
}
