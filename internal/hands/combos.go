package hands

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/paulhankin/poker"
)

// Combo is one concrete two-card holding of a hand class.
type Combo struct {
	Cards [2]poker.Card
}

// String renders the holding as rank then lower-case suit, e.g. "Ah Kh".
func (c Combo) String() string {
	return cardText(c.Cards[0]) + " " + cardText(c.Cards[1])
}

func cardText(c poker.Card) string {
	return c.Rank().String() + strings.ToLower(c.Suit().String())
}

// ofRank returns the deck's cards of rank r, in suit order.
func ofRank(r byte) []poker.Card {
	var out []poker.Card
	for _, c := range poker.Cards {
		if c.Rank().String() == string(r) {
			out = append(out, c)
		}
	}
	return out
}

// Combos enumerates every concrete holding of a canonical label:
// 6 for pairs, 4 for suited hands and 12 for offsuit hands.
func Combos(label string) ([]Combo, error) {
	if _, ok := index[label]; !ok {
		return nil, fmt.Errorf("invalid hand %q", label)
	}
	first, second := ofRank(label[0]), ofRank(label[1])
	var out []Combo
	for i, c1 := range first {
		for j, c2 := range second {
			switch {
			case IsPair(label) && j <= i:
				continue
			case IsSuited(label) && c1.Suit() != c2.Suit():
				continue
			case IsOffsuit(label) && c1.Suit() == c2.Suit():
				continue
			}
			out = append(out, Combo{Cards: [2]poker.Card{c1, c2}})
		}
	}
	return out, nil
}

// Deal picks one concrete holding of label at random.
func Deal(label string, rng *rand.Rand) (Combo, error) {
	combos, err := Combos(label)
	if err != nil {
		return Combo{}, err
	}
	return combos[rng.IntN(len(combos))], nil
}
