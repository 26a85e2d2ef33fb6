// Package hands knows the 169 canonical two-card starting hands laid out on
// the usual 13x13 grid: pairs on the diagonal, suited hands above it and
// offsuit hands below it.
package hands

import (
	"fmt"
	"strings"

	"github.com/conorfennell/preflopdrill/internal/domain"
)

// Ranks in grid order, highest first.
const Ranks = "AKQJT98765432"

// Size is the number of rows and columns of the grid.
const Size = len(Ranks)

var (
	grid   [Size][Size]string
	labels []string
	index  = make(map[string][2]int, Size*Size)
)

func init() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			l := labelAt(row, col)
			grid[row][col] = l
			labels = append(labels, l)
			index[l] = [2]int{row, col}
		}
	}
}

func labelAt(row, col int) string {
	switch {
	case row == col:
		return string([]byte{Ranks[row], Ranks[col]})
	case row < col:
		return string([]byte{Ranks[row], Ranks[col], 's'})
	default:
		return string([]byte{Ranks[col], Ranks[row], 'o'})
	}
}

// Label returns the hand at the given grid cell.
func Label(row, col int) string {
	return grid[row][col]
}

// Position returns the grid cell of a canonical label.
func Position(label string) (row, col int, ok bool) {
	p, ok := index[label]
	return p[0], p[1], ok
}

// All returns every canonical label in row-major grid order.
func All() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// ForGame returns the labels playable in the given game type, in grid order.
func ForGame(t domain.GameType) []string {
	var out []string
	for _, l := range labels {
		if Valid(l, t) {
			out = append(out, l)
		}
	}
	return out
}

// Valid reports whether label is a canonical hand for the game type.
// Short deck drops every hand containing a rank from 2 through 6.
func Valid(label string, t domain.GameType) bool {
	if _, ok := index[label]; !ok {
		return false
	}
	if t == domain.ShortDeck {
		return !strings.ContainsAny(label[:2], "23456")
	}
	return true
}

// Normalize turns loosely written input such as "kas", "Tt" or "10Jo" into
// the canonical label ("AKs", "TT", "JTo").
func Normalize(input string) (string, error) {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, "10", "T")
	if len(s) < 2 || len(s) > 3 {
		return "", fmt.Errorf("invalid hand %q", input)
	}
	r1 := strings.ToUpper(s[:1])
	r2 := strings.ToUpper(s[1:2])
	i1 := strings.Index(Ranks, r1)
	i2 := strings.Index(Ranks, r2)
	if i1 < 0 || i2 < 0 {
		return "", fmt.Errorf("invalid hand %q: unknown rank", input)
	}
	if i1 > i2 {
		r1, r2 = r2, r1
	}
	var suffix string
	if len(s) == 3 {
		suffix = strings.ToLower(s[2:])
	}
	switch {
	case i1 == i2 && suffix != "":
		return "", fmt.Errorf("invalid hand %q: pairs take no suffix", input)
	case i1 != i2 && suffix != "s" && suffix != "o":
		return "", fmt.Errorf("invalid hand %q: expected s or o suffix", input)
	}
	return r1 + r2 + suffix, nil
}

// IsPair, IsSuited and IsOffsuit classify a canonical label.
func IsPair(label string) bool    { return len(label) == 2 }
func IsSuited(label string) bool  { return len(label) == 3 && label[2] == 's' }
func IsOffsuit(label string) bool { return len(label) == 3 && label[2] == 'o' }

// RankIndex is the grid index of a rank character (A=0 ... 2=12).
func RankIndex(r byte) int {
	return strings.IndexByte(Ranks, r)
}
