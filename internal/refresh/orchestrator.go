// Package refresh drives when each dashboard region is fetched and how the
// results reach its surface.
package refresh

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/reveal"
	"github.com/tinytelemetry/quiniela/internal/surface"
)

// RegionDataMsg carries the outcome of one region fetch back to the
// update loop.
type RegionDataMsg struct {
	Region  model.Region
	Seq     uint64
	Data    any
	Err     error
	Elapsed time.Duration
}

type regionState struct {
	inFlight          int
	issued            uint64
	applied           uint64
	lastRenderedAt    time.Time
	lastErr           error
	consecutiveErrors int
}

// Orchestrator owns the region surfaces and decides when they are
// refreshed. Every method runs on the update loop; only the fetch commands
// it returns execute elsewhere.
type Orchestrator struct {
	querier   model.DrawQuerier
	scheduler *Scheduler
	metrics   *Metrics
	board     *StatusBoard
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	surfaces [3]*surface.Surface
	states   [3]regionState
	visible  bool
	stopped  bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records refresh metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithStatusBoard publishes status snapshots to b.
func WithStatusBoard(b *StatusBoard) Option {
	return func(o *Orchestrator) { o.board = b }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOrchestrator wires the querier, the surfaces and the scheduler.
func NewOrchestrator(q model.DrawQuerier, animator *reveal.Animator, sched *Scheduler, opts ...Option) *Orchestrator {
	if sched == nil {
		sched = NewScheduler(0, 0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		querier:   q,
		scheduler: sched,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		visible:   true,
	}
	for _, r := range model.Regions {
		o.surfaces[r] = surface.New(r, animator)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Init performs the startup refresh of every region and starts the timers.
func (o *Orchestrator) Init() tea.Cmd {
	return tea.Batch(o.FullRefresh(), o.scheduler.Start())
}

// Surface returns the surface of region.
func (o *Orchestrator) Surface(r model.Region) *surface.Surface { return o.surfaces[r] }

// Scheduler returns the timer owner.
func (o *Orchestrator) Scheduler() *Scheduler { return o.scheduler }

// InFlight reports whether region has an outstanding fetch.
func (o *Orchestrator) InFlight(r model.Region) bool { return o.states[r].inFlight > 0 }

// LastRenderedAt is the time region last rendered fresh content.
func (o *Orchestrator) LastRenderedAt(r model.Region) time.Time { return o.states[r].lastRenderedAt }

// LastError is the error of the last completed fetch for region, if any.
func (o *Orchestrator) LastError(r model.Region) error { return o.states[r].lastErr }

// Visible reports whether the dashboard is currently shown.
func (o *Orchestrator) Visible() bool { return o.visible }

// Loading reports whether any region has a fetch outstanding.
func (o *Orchestrator) Loading() bool {
	for _, r := range model.Regions {
		if o.InFlight(r) {
			return true
		}
	}
	return false
}

// RefreshCurrent fetches current results unless a fetch is already in
// flight, in which case it returns nil and leaves the surface untouched.
func (o *Orchestrator) RefreshCurrent() tea.Cmd {
	if o.stopped {
		return nil
	}
	if o.states[model.RegionCurrent].inFlight > 0 {
		o.metrics.RecordSkipped(model.RegionCurrent)
		return nil
	}
	return o.issue(model.RegionCurrent)
}

// FullRefresh fetches every region concurrently. Current results go through
// the overlap guard; the other regions are always issued.
func (o *Orchestrator) FullRefresh() tea.Cmd {
	if o.stopped {
		return nil
	}
	return tea.Batch(
		o.RefreshCurrent(),
		o.issue(model.RegionMonthly),
		o.issue(model.RegionRecommendations),
	)
}

// Hide pauses the current-results timer.
func (o *Orchestrator) Hide() {
	o.visible = false
	o.scheduler.Hide()
	o.publish()
}

// Show resumes the current-results timer with an immediate fetch when it was
// paused.
func (o *Orchestrator) Show() tea.Cmd {
	o.visible = true
	defer o.publish()
	if o.stopped {
		return nil
	}
	resume, arm := o.scheduler.Show()
	if !resume {
		return nil
	}
	return tea.Batch(o.RefreshCurrent(), arm)
}

// Shutdown stops the timers and cancels outstanding requests. Results that
// arrive afterwards are ignored.
func (o *Orchestrator) Shutdown() {
	if o.stopped {
		return
	}
	o.stopped = true
	o.scheduler.Stop()
	o.cancel()
	o.publish()
}

// Update handles the messages the orchestrator owns. handled is false for
// any other message.
func (o *Orchestrator) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case RegionDataMsg:
		o.apply(msg)
		return nil, true
	case TickMsg:
		return o.tick(msg), true
	}
	return nil, false
}

func (o *Orchestrator) tick(msg TickMsg) tea.Cmd {
	if o.stopped {
		return nil
	}
	rearm, ok := o.scheduler.Accept(msg)
	if !ok {
		return nil
	}
	if msg.Kind == TimerCurrent {
		return tea.Batch(o.RefreshCurrent(), rearm)
	}
	return tea.Batch(o.FullRefresh(), rearm)
}

func (o *Orchestrator) issue(r model.Region) tea.Cmd {
	st := &o.states[r]
	st.issued++
	st.inFlight++
	o.surfaces[r].EnterLoading()
	o.metrics.UpdateInFlight(r, st.inFlight)
	o.publish()
	return fetchCmd(o.ctx, o.querier, r, st.issued)
}

// fetchCmd runs the request off the update loop. It always yields a
// RegionDataMsg, converting a panic into an error.
func fetchCmd(ctx context.Context, q model.DrawQuerier, r model.Region, seq uint64) tea.Cmd {
	return func() (msg tea.Msg) {
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				log.Printf("refresh: %s fetch panicked: %v", r, p)
				msg = RegionDataMsg{Region: r, Seq: seq, Err: fmt.Errorf("%s fetch panicked: %v", r, p), Elapsed: time.Since(start)}
			}
		}()

		var (
			data any
			err  error
		)
		switch r {
		case model.RegionCurrent:
			data, err = q.CurrentResults(ctx)
		case model.RegionMonthly:
			data, err = q.MonthlyStats(ctx)
		case model.RegionRecommendations:
			data, err = q.Recommendations(ctx)
		default:
			err = fmt.Errorf("unknown region %d", r)
		}
		return RegionDataMsg{Region: r, Seq: seq, Data: data, Err: err, Elapsed: time.Since(start)}
	}
}

func (o *Orchestrator) apply(msg RegionDataMsg) {
	if int(msg.Region) < 0 || int(msg.Region) >= len(o.states) {
		return
	}
	st := &o.states[msg.Region]
	if st.inFlight > 0 {
		st.inFlight--
	}
	o.metrics.UpdateInFlight(msg.Region, st.inFlight)
	if o.stopped {
		return
	}
	o.metrics.RecordFetch(msg.Region, msg.Err, msg.Elapsed)

	if msg.Seq <= st.applied {
		o.metrics.RecordStale(msg.Region)
		log.Printf("refresh: dropping stale %s response (seq %d, applied %d)", msg.Region, msg.Seq, st.applied)
		return
	}
	st.applied = msg.Seq

	o.surfaces[msg.Region].Apply(msg.Data, msg.Err)
	if msg.Err != nil {
		st.lastErr = msg.Err
		st.consecutiveErrors++
	} else {
		st.lastErr = nil
		st.consecutiveErrors = 0
		st.lastRenderedAt = o.now()
		o.metrics.MarkRendered(msg.Region, st.lastRenderedAt)
	}
	o.publish()
}

// Status builds the current snapshot.
func (o *Orchestrator) Status() Status {
	s := Status{
		Visible:      o.visible,
		CurrentTimer: o.scheduler.Active(TimerCurrent),
		FullTimer:    o.scheduler.Active(TimerFull),
		UpdatedAt:    o.now(),
	}
	for _, r := range model.Regions {
		st := o.states[r]
		rs := RegionStatus{
			Region:            r.String(),
			State:             o.surfaces[r].State().String(),
			InFlight:          st.inFlight,
			LastRenderedAt:    st.lastRenderedAt,
			ConsecutiveErrors: st.consecutiveErrors,
		}
		if st.lastErr != nil {
			rs.LastError = st.lastErr.Error()
		}
		s.Regions = append(s.Regions, rs)
	}
	return s
}

func (o *Orchestrator) publish() {
	if o.board == nil {
		return
	}
	o.board.Publish(o.Status())
}
