package domain

import (
	"fmt"
	"time"
)

// NodeType is the level of a node in the library hierarchy.
type NodeType int

const (
	Format NodeType = iota
	Scenario
	Stack
	Chart
)

// AllowedChild returns the only node type that may be created under t.
// Chart is the leaf and has no allowed child.
func (t NodeType) AllowedChild() (NodeType, bool) {
	switch t {
	case Format:
		return Scenario, true
	case Scenario:
		return Stack, true
	case Stack:
		return Chart, true
	case Chart:
		return 0, false
	}
	return 0, false
}

// IsLeaf reports whether nodes of this type carry range data instead of children.
func (t NodeType) IsLeaf() bool {
	_, ok := t.AllowedChild()
	return !ok
}

func (t NodeType) String() string {
	switch t {
	case Format:
		return "format"
	case Scenario:
		return "scenario"
	case Stack:
		return "stack"
	case Chart:
		return "chart"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// ParseNodeType is the inverse of NodeType.String.
func ParseNodeType(s string) (NodeType, error) {
	switch s {
	case "format":
		return Format, nil
	case "scenario":
		return Scenario, nil
	case "stack":
		return Stack, nil
	case "chart":
		return Chart, nil
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *NodeType) UnmarshalText(b []byte) error {
	parsed, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Node is one entry of the library tree. Values handed out by the library
// are deep snapshots; editing them does not change the tree.
type Node struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      NodeType  `json:"type"`
	Children  []Node    `json:"children,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	RangeID   string    `json:"rangeId,omitempty"`
}
