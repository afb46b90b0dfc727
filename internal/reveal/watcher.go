package reveal

import (
	"sort"
	"sync"
	"time"
)

// DefaultThreshold is the visible fraction of a node that triggers its reveal.
const DefaultThreshold = 0.15

// Span is the vertical extent of a node within the scrollable page.
type Span struct {
	ID     string
	Top    int
	Height int
}

// Hit is a watched node that crossed the visibility threshold.
type Hit struct {
	ID    string
	Delay time.Duration
}

// Watcher observes node visibility against a viewport. A node is reported
// at most once and then dropped.
type Watcher struct {
	mu        sync.Mutex
	threshold float64
	watched   map[string]time.Duration
}

// NewWatcher creates a watcher; a threshold outside (0, 1] uses the default.
func NewWatcher(threshold float64) *Watcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Watcher{threshold: threshold, watched: make(map[string]time.Duration)}
}

// Observe starts watching id. Observing an already watched id is a no-op.
func (w *Watcher) Observe(id string, delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[id]; ok {
		return
	}
	w.watched[id] = delay
}

// Release stops watching the given ids.
func (w *Watcher) Release(ids ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range ids {
		delete(w.watched, id)
	}
}

// Watching reports whether id is still waiting to become visible.
func (w *Watcher) Watching(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[id]
	return ok
}

// Len returns the number of watched nodes.
func (w *Watcher) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

// Check reports every watched span whose visible rows within
// [viewTop, viewTop+viewHeight) reach the threshold, and unobserves it.
// Hits are ordered by their position on the page.
func (w *Watcher) Check(spans []Span, viewTop, viewHeight int) []Hit {
	if viewHeight <= 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var hits []Hit
	seen := make(map[string]bool, len(spans))
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Top < ordered[j].Top })

	for _, s := range ordered {
		delay, ok := w.watched[s.ID]
		if !ok || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		if visibleFraction(s, viewTop, viewHeight) < w.threshold {
			continue
		}
		delete(w.watched, s.ID)
		hits = append(hits, Hit{ID: s.ID, Delay: delay})
	}
	return hits
}

func visibleFraction(s Span, viewTop, viewHeight int) float64 {
	if s.Height <= 0 {
		// zero-height nodes count as visible when their row is on screen
		if s.Top >= viewTop && s.Top < viewTop+viewHeight {
			return 1
		}
		return 0
	}
	top := max(s.Top, viewTop)
	bottom := min(s.Top+s.Height, viewTop+viewHeight)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(s.Height)
}
