// Package drill runs the flash-card quiz over the hands of one or more
// charts, surfacing spaced-repetition reviews before new hands.
package drill

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/conorfennell/preflopdrill/internal/domain"
	"github.com/conorfennell/preflopdrill/internal/hands"
	"github.com/conorfennell/preflopdrill/internal/srs"
)

var (
	ErrNotRunning      = errors.New("session is not running")
	ErrAwaitingAdvance = errors.New("answer already submitted, waiting for next")
	ErrNotAnswered     = errors.New("current scenario has not been answered")
)

// DefaultAutoAdvance is the pause after a correct answer.
const DefaultAutoAdvance = time.Second

// State of a session.
type State int

const (
	Idle State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Tracker is the spaced-repetition store a session reads due hands from
// and records outcomes to.
type Tracker interface {
	DueHands(chartID string, now time.Time) map[string]bool
	Record(chartID, hand string, correct bool, now time.Time) srs.CardState
}

// Option configures a Session.
type Option func(*Session)

func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithAutoAdvance(d time.Duration) Option { return func(s *Session) { s.delay = d } }

// WithRevealOnMiss shows the reference chart after every wrong answer.
func WithRevealOnMiss(on bool) Option { return func(s *Session) { s.revealOnMiss = on } }

// WithOnChange registers a callback run after an automatic advance. It is
// called from the timer goroutine without the session lock held.
func WithOnChange(f func()) Option { return func(s *Session) { s.onChange = f } }

// Session is a single drill run. It is safe for concurrent use; the only
// concurrent caller in practice is the auto-advance timer.
type Session struct {
	mu sync.Mutex

	tracker      Tracker
	clock        Clock
	rng          *rand.Rand
	delay        time.Duration
	revealOnMiss bool
	onChange     func()

	sources   []Source
	state     State
	queue     []scenario
	index     int
	score     int
	history   []domain.Answer
	feedback  *domain.Answer
	reference bool
	timer     Timer
	gen       uint64
}

// New creates an idle session. tracker may be nil, in which case nothing
// is scheduled and no hand is ever due.
func New(tracker Tracker, opts ...Option) *Session {
	s := &Session{
		tracker: tracker,
		clock:   realClock{},
		delay:   DefaultAutoAdvance,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>7))
	}
	return s
}

// Start begins a run over the given charts. With no usable hand the demo
// scenarios are drilled instead.
func (s *Session) Start(sources []Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = make([]Source, len(sources))
	for i, src := range sources {
		src.Range = src.Range.Clone()
		s.sources[i] = src
	}
	s.begin()
}

// Restart begins a fresh run over the charts of the last Start.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begin()
}

func (s *Session) begin() {
	s.cancelTimer()
	s.queue = buildQueue(s.sources, s.tracker, s.clock.Now(), s.rng)
	if len(s.queue) == 0 {
		slog.Info("No scenarios in selected charts, using demo set")
		for _, h := range demoScenarios {
			s.queue = append(s.queue, scenario{hand: h})
		}
	}
	for i := range s.queue {
		h := &s.queue[i].hand
		combo, err := hands.Deal(h.Hand, s.rng)
		if err != nil {
			slog.Warn("Failed to deal combo", "hand", h.Hand, "error", err)
			continue
		}
		h.Combo = combo.String()
	}
	s.state = Running
	s.index = 0
	s.score = 0
	s.history = nil
	s.feedback = nil
	s.reference = false
	slog.Debug("Drill started", "scenarios", len(s.queue))
}

// Submit answers the current scenario. A correct answer advances on its own
// after the auto-advance delay; a wrong one waits for Next.
func (s *Session) Submit(action string) (domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return domain.Answer{}, ErrNotRunning
	}
	if s.feedback != nil {
		return domain.Answer{}, ErrAwaitingAdvance
	}
	cur := s.queue[s.index].hand
	ans := domain.Answer{
		Hand:     cur.Hand,
		Correct:  action == cur.CorrectAction,
		Action:   action,
		Expected: cur.CorrectAction,
	}
	s.history = append(s.history, ans)
	if ans.Correct {
		s.score++
	}
	if s.tracker != nil && cur.ChartID != "" {
		s.tracker.Record(cur.ChartID, cur.Hand, ans.Correct, s.clock.Now())
	}
	s.feedback = &ans

	if ans.Correct {
		s.gen++
		gen := s.gen
		s.timer = s.clock.AfterFunc(s.delay, func() { s.autoAdvance(gen) })
	} else if s.revealOnMiss {
		s.reference = true
	}
	return ans, nil
}

func (s *Session) autoAdvance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state != Running {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.advance()
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Next moves past an answered scenario, canceling any pending auto-advance.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return ErrNotRunning
	}
	if s.feedback == nil {
		return ErrNotAnswered
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	s.cancelTimer()
	s.feedback = nil
	s.reference = false
	s.index++
	if s.index >= len(s.queue) {
		s.index = len(s.queue)
		s.state = Complete
		slog.Debug("Drill complete", "answered", len(s.history), "score", s.score)
	}
}

// Stop ends the run without a summary.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimer()
	s.state = Idle
	s.feedback = nil
	s.reference = false
}

// cancelTimer stops the pending advance and invalidates any callback that
// already escaped Stop.
func (s *Session) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// ToggleReference shows or hides the chart of the current scenario.
func (s *Session) ToggleReference() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reference = !s.reference
}

// Reference returns the chart of the current scenario when it is revealed.
func (s *Session) Reference() (domain.Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reference || s.state != Running || s.queue[s.index].ref == nil {
		return domain.Range{}, false
	}
	return s.queue[s.index].ref.Clone(), true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the scenario being asked.
func (s *Session) Current() (domain.TrainingHand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return domain.TrainingHand{}, false
	}
	return s.queue[s.index].hand, true
}

// Options lists the answers offered for the current scenario.
func (s *Session) Options() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return nil
	}
	ref := s.queue[s.index].ref
	if ref == nil {
		return demoOptions()
	}
	out := make([]string, 0, len(ref.Actions))
	for _, a := range ref.Actions {
		out = append(out, a.Name)
	}
	return out
}

// Accuracy is the rounded percentage of correct answers so far, 100 before
// the first answer.
func (s *Session) Accuracy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return percent(s.score, len(s.history), 100)
}

// Progress is the fraction of scenarios already passed.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return 0
	}
	return float64(s.index) / float64(len(s.queue))
}

// Position returns the current index and the queue length.
func (s *Session) Position() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, len(s.queue)
}

// Feedback returns the last answer while it is on display.
func (s *Session) Feedback() (domain.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedback == nil {
		return domain.Answer{}, false
	}
	return *s.feedback, true
}

func (s *Session) History() []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Answer(nil), s.history...)
}

// Summary reports the finished run. Stopped runs have none.
func (s *Session) Summary() (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Complete {
		return Summary{}, false
	}
	return Summarize(s.history), true
}

func percent(n, d, empty int) int {
	if d == 0 {
		return empty
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
