// Package parser reads chart packs: plain-text range files with one action
// per line.
//
//	# comment
//	name: SB open
//	type: classic
//	Raise #ef4444: 22+, A2s+, KTo+
//	Call #22c55e: KK-TT, A5s-A2s
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/hands"
)

// ErrSyntax is returned for any malformed line.
var ErrSyntax = errors.New("syntax error")

const (
	namePrefix = "name:"
	typePrefix = "type:"
	comment    = "#"
)

var validate = validator.New()

// ParseFile reads a range file from the given path.
func ParseFile(path string) (domain.Range, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Range{}, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a range from r. The returned range has no id.
func Parse(r io.Reader) (domain.Range, error) {
	scanner := bufio.NewScanner(r)
	rng := domain.Range{Type: domain.Classic, Hands: map[string]string{}}
	lineNo := 0

	syntax := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrSyntax, lineNo, fmt.Sprintf(format, args...))
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(line)

		switch {
		case line == "" || strings.HasPrefix(line, comment):
			continue
		case strings.HasPrefix(lower, namePrefix):
			rng.Name = strings.TrimSpace(line[len(namePrefix):])
			continue
		case strings.HasPrefix(lower, typePrefix):
			switch t := domain.GameType(strings.TrimSpace(lower[len(typePrefix):])); t {
			case domain.Classic, domain.ShortDeck:
				rng.Type = t
			default:
				return domain.Range{}, syntax("unknown game type %q", t)
			}
			continue
		}

		head, body, ok := strings.Cut(line, ":")
		if !ok {
			return domain.Range{}, syntax("expected 'Name #color: hands'")
		}
		hash := strings.LastIndex(head, comment)
		if hash < 0 {
			return domain.Range{}, syntax("missing action color")
		}
		action := domain.Action{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(head[:hash]),
			Color: strings.ToLower(strings.TrimSpace(head[hash:])),
		}
		if err := validate.Struct(action); err != nil {
			return domain.Range{}, syntax("invalid action %q: %v", head, err)
		}
		if _, dup := rng.ActionByColor(action.Color); dup {
			return domain.Range{}, syntax("color %s used twice", action.Color)
		}
		rng.Actions = append(rng.Actions, action)

		for _, item := range strings.Split(body, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			labels, err := Expand(item)
			if err != nil {
				return domain.Range{}, syntax("%v", err)
			}
			for _, l := range labels {
				if prev, taken := rng.Hands[l]; taken && prev != action.Color {
					return domain.Range{}, syntax("%s assigned to more than one action", l)
				}
				rng.Hands[l] = action.Color
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return domain.Range{}, err
	}

	for h := range rng.Hands {
		if !hands.Valid(h, rng.Type) {
			return domain.Range{}, fmt.Errorf("%w: %s is not part of a %s deck", ErrSyntax, h, rng.Type)
		}
	}
	return rng, nil
}

// Expand turns one item of range notation into canonical labels.
func Expand(item string) ([]string, error) {
	if lo, hi, ok := strings.Cut(item, "-"); ok {
		return expandDash(lo, hi)
	}
	if base, ok := strings.CutSuffix(item, "+"); ok {
		return expandPlus(base)
	}
	l, err := hands.Normalize(item)
	if err != nil {
		return nil, err
	}
	return []string{l}, nil
}

// expandPlus handles "77+" (up to aces) and "A2s+"/"KTo+" (kicker up to one
// below the top card).
func expandPlus(base string) ([]string, error) {
	l, err := hands.Normalize(base)
	if err != nil {
		return nil, err
	}
	if hands.IsPair(l) {
		return pairs(hands.RankIndex(l[0]), 0), nil
	}
	top := hands.RankIndex(l[0])
	return kickers(l[0], l[2], hands.RankIndex(l[1]), top+1), nil
}

// expandDash handles "KK-TT" and "A5s-A2s" in either order.
func expandDash(lo, hi string) ([]string, error) {
	a, err := hands.Normalize(strings.TrimSpace(lo))
	if err != nil {
		return nil, err
	}
	b, err := hands.Normalize(strings.TrimSpace(hi))
	if err != nil {
		return nil, err
	}
	switch {
	case hands.IsPair(a) && hands.IsPair(b):
		return pairs(hands.RankIndex(a[0]), hands.RankIndex(b[0])), nil
	case hands.IsPair(a) || hands.IsPair(b) || a[0] != b[0] || a[2] != b[2]:
		return nil, fmt.Errorf("%s-%s does not share a top card and suitedness", a, b)
	}
	return kickers(a[0], a[2], hands.RankIndex(a[1]), hands.RankIndex(b[1])), nil
}

// pairs lists pocket pairs between two grid indexes, inclusive.
func pairs(from, to int) []string {
	if from < to {
		from, to = to, from
	}
	var out []string
	for i := from; i >= to; i-- {
		out = append(out, hands.Label(i, i))
	}
	return out
}

// kickers lists top+kicker+suffix for kicker indexes between from and to,
// inclusive.
func kickers(top, suffix byte, from, to int) []string {
	if from < to {
		from, to = to, from
	}
	var out []string
	for i := from; i >= to; i-- {
		out = append(out, string([]byte{top, hands.Ranks[i], suffix}))
	}
	return out
}

// Format writes r back in range notation, hands in grid order.
func Format(r domain.Range) string {
	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "name: %s\n", r.Name)
	}
	fmt.Fprintf(&b, "type: %s\n", r.Type)
	all := hands.All()
	for _, a := range r.Actions {
		var labels []string
		for _, h := range all {
			if r.Hands[h] == a.Color {
				labels = append(labels, h)
			}
		}
		fmt.Fprintf(&b, "%s %s: %s\n", a.Name, a.Color, strings.Join(labels, ", "))
	}
	return b.String()
}
