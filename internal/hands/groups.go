package hands

// Quick-select groups offered by the grid editor and the grid drill.
var groups = []struct {
	name  string
	hands []string
}{
	{"Pocket pairs", []string{"AA", "KK", "QQ", "JJ", "TT", "99", "88", "77", "66", "55", "44", "33", "22"}},
	{"Suited Aces", []string{"AKs", "AQs", "AJs", "ATs", "A9s", "A8s", "A7s", "A6s", "A5s", "A4s", "A3s", "A2s"}},
	{"Off-Suited Aces", []string{"AKo", "AQo", "AJo", "ATo", "A9o", "A8o", "A7o", "A6o", "A5o", "A4o", "A3o", "A2o"}},
	{"Suited Broadway", []string{"AKs", "AQs", "AJs", "ATs", "KQs", "KJs", "KTs", "QJs", "QTs", "JTs"}},
	{"Off-Suited Broadway", []string{"AKo", "AQo", "AJo", "ATo", "KQo", "KJo", "KTo", "QJo", "QTo", "JTo"}},
}

// GroupNames lists the quick-select groups in display order.
func GroupNames() []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
	}
	return names
}

// Group returns the hands of a named group.
func Group(name string) ([]string, bool) {
	for _, g := range groups {
		if g.name == name {
			out := make([]string, len(g.hands))
			copy(out, g.hands)
			return out, true
		}
	}
	return nil, false
}
