package domain

// TrainingHand is one quiz item of a drill session.
type TrainingHand struct {
	ChartID       string
	Hand          string
	CorrectAction string
	ActionColor   string
	Position      string
	StackSize     string
	Situation     string
	// Combo is a concrete deal of Hand, e.g. "Ah Kh".
	Combo string
}

// Answer records a single submitted answer.
// Action is what the user chose, Expected is what the range says.
type Answer struct {
	Hand     string
	Correct  bool
	Action   string
	Expected string
}
