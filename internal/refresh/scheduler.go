package refresh

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// TimerKind names one of the two refresh cadences.
type TimerKind int

const (
	// TimerCurrent refreshes current results and pauses while hidden.
	TimerCurrent TimerKind = iota
	// TimerFull refreshes every region and never pauses.
	TimerFull
)

func (k TimerKind) String() string {
	if k == TimerCurrent {
		return "current"
	}
	return "full"
}

// TickMsg is delivered when a timer fires. Gen identifies the handle that
// armed it; ticks from a cancelled handle are ignored.
type TickMsg struct {
	Kind TimerKind
	Gen  uint64
	At   time.Time
}

// Scheduler owns the periodic timers. It is driven from the Bubble Tea
// update loop and is not safe for concurrent use.
type Scheduler struct {
	currentEvery time.Duration
	fullEvery    time.Duration

	next    uint64
	fast    uint64 // 0 when no handle is held
	full    uint64
	started bool
	hidden  bool
}

// NewScheduler creates a scheduler; non-positive intervals use the defaults.
func NewScheduler(currentEvery, fullEvery time.Duration) *Scheduler {
	if currentEvery <= 0 {
		currentEvery = model.DefaultCurrentInterval
	}
	if fullEvery <= 0 {
		fullEvery = model.DefaultFullInterval
	}
	return &Scheduler{currentEvery: currentEvery, fullEvery: fullEvery}
}

// Start arms both timers. The current-results timer stays unarmed while
// hidden; Show arms it. Calling Start again re-arms the timers and
// invalidates the previous handles.
func (s *Scheduler) Start() tea.Cmd {
	s.started = true
	if s.hidden {
		s.fast = 0
		return s.arm(TimerFull)
	}
	return tea.Batch(s.arm(TimerCurrent), s.arm(TimerFull))
}

// Accept validates a tick. It returns the command that re-arms the timer and
// true when the tick belongs to a live handle.
func (s *Scheduler) Accept(msg TickMsg) (tea.Cmd, bool) {
	if !s.started || msg.Gen == 0 || msg.Gen != s.handle(msg.Kind) {
		return nil, false
	}
	return s.arm(msg.Kind), true
}

// Hide cancels the current-results timer. The full timer keeps running.
func (s *Scheduler) Hide() {
	s.hidden = true
	s.fast = 0
}

// Show re-arms the current-results timer when it was cancelled. resume is
// true when the caller should fetch current results immediately.
func (s *Scheduler) Show() (resume bool, cmd tea.Cmd) {
	s.hidden = false
	if !s.started || s.fast != 0 {
		return false, nil
	}
	return true, s.arm(TimerCurrent)
}

// Stop drops every handle. Pending ticks are ignored afterwards.
func (s *Scheduler) Stop() {
	s.fast, s.full = 0, 0
	s.started = false
}

// Active reports whether kind currently holds a handle.
func (s *Scheduler) Active(kind TimerKind) bool {
	return s.handle(kind) != 0
}

// Interval returns the cadence of kind.
func (s *Scheduler) Interval(kind TimerKind) time.Duration {
	if kind == TimerCurrent {
		return s.currentEvery
	}
	return s.fullEvery
}

func (s *Scheduler) handle(kind TimerKind) uint64 {
	if kind == TimerCurrent {
		return s.fast
	}
	return s.full
}

func (s *Scheduler) arm(kind TimerKind) tea.Cmd {
	s.next++
	gen := s.next
	if kind == TimerCurrent {
		s.fast = gen
	} else {
		s.full = gen
	}
	return tea.Tick(s.Interval(kind), func(t time.Time) tea.Msg {
		return TickMsg{Kind: kind, Gen: gen, At: t}
	})
}
