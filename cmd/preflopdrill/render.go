package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/hands"
	"github.com/conorfennell/preflopdrill/internal/ranges"
)

// parseHex reads "#rgb" or "#rrggbb".
func parseHex(color string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(color, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", color)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", color, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func swatch(color, text string) string {
	r, g, b, err := parseHex(color)
	if err != nil {
		return text
	}
	return pterm.NewRGB(r, g, b, true).Sprint(text)
}

// renderGrid draws the 13x13 hand grid. cell returns the color of a label
// or "" when it is unpainted.
func renderGrid(game domain.GameType, cell func(label string) string) string {
	var b strings.Builder
	for row := 0; row < hands.Size; row++ {
		for col := 0; col < hands.Size; col++ {
			l := hands.Label(row, col)
			text := fmt.Sprintf(" %-3s", l)
			switch c := cell(l); {
			case !hands.Valid(l, game):
				b.WriteString(pterm.FgDarkGray.Sprint("  · "))
			case c != "":
				b.WriteString(swatch(c, text))
			default:
				b.WriteString(pterm.FgGray.Sprint(text))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRange draws a range grid followed by its action legend.
func renderRange(r domain.Range) string {
	grid := renderGrid(r.Type, func(l string) string { return r.Hands[l] })
	return grid + "\n" + renderLegend(r)
}

func renderLegend(r domain.Range) string {
	counts, total := ranges.Counts(r)
	data := pterm.TableData{{"Action", "Color", "Hands"}}
	for _, a := range r.Actions {
		data = append(data, []string{swatch(a.Color, " "+a.Name+" "), a.Color, strconv.Itoa(counts[a.Color])})
	}
	data = append(data, []string{"Total", "", fmt.Sprintf("%d / %d", total, len(hands.ForGame(r.Type)))})
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return s
}

// renderTree draws the library as a tree with node ids. Children of
// collapsed nodes are hidden and counted instead.
func renderTree(roots []domain.Node, expanded func(id string) bool, selected string) (string, error) {
	if len(roots) == 0 {
		return "Library is empty. Add a format with: library add-format <title>\n", nil
	}
	var list pterm.LeveledList
	var walk func(ns []domain.Node, level int)
	walk = func(ns []domain.Node, level int) {
		for _, n := range ns {
			title := n.Title
			if n.ID == selected {
				title = pterm.Bold.Sprint("> " + title)
			}
			text := fmt.Sprintf("%s %s", title, pterm.FgDarkGray.Sprint("["+n.ID+"]"))
			open := expanded(n.ID)
			if !open && len(n.Children) > 0 {
				text += pterm.FgDarkGray.Sprintf(" (+%d)", len(n.Children))
			}
			list = append(list, pterm.LeveledListItem{Level: level, Text: text})
			if open {
				walk(n.Children, level+1)
			}
		}
	}
	walk(roots, 0)
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
}
