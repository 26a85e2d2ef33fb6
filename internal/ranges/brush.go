package ranges

// Mode is what a drag does to the cells it touches.
type Mode int

const (
	Add Mode = iota
	Remove
)

// Brush implements click-and-drag painting over a hand map. The first cell
// pressed fixes the mode for the whole drag: pressing a cell that already
// carries the color removes it, anything else adds it.
type Brush struct {
	dragging bool
	mode     Mode
}

// Press starts a drag on label and applies it.
func (b *Brush) Press(hands map[string]string, label, color string) {
	b.mode = Add
	if hands[label] == color {
		b.mode = Remove
	}
	b.dragging = true
	b.apply(hands, label, color)
}

// Enter applies the drag mode to label if a drag is in progress.
func (b *Brush) Enter(hands map[string]string, label, color string) {
	if !b.dragging {
		return
	}
	b.apply(hands, label, color)
}

// Release ends the drag.
func (b *Brush) Release() {
	b.dragging = false
}

// Dragging reports whether a drag is in progress.
func (b *Brush) Dragging() bool { return b.dragging }

// Mode returns the mode of the current or last drag.
func (b *Brush) Mode() Mode { return b.mode }

func (b *Brush) apply(hands map[string]string, label, color string) {
	switch b.mode {
	case Add:
		hands[label] = color
	case Remove:
		if hands[label] == color {
			delete(hands, label)
		}
	}
}
