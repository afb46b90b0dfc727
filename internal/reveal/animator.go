// Package reveal staggers the appearance of freshly rendered nodes as they
// scroll into view.
package reveal

import (
	"time"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// Node is the reveal state of one rendered child of a section.
type Node struct {
	ID       string
	Delay    time.Duration
	Revealed bool
	Tagged   bool
}

// Config controls staggering.
type Config struct {
	ReduceMotion bool
	Step         time.Duration
	Max          time.Duration
}

// DefaultConfig returns the standard 60ms step capped at 360ms.
func DefaultConfig() Config {
	return Config{Step: model.DefaultRevealStep, Max: model.DefaultRevealMax}
}

// Animator tags nodes for reveal and hands them to the shared watcher.
type Animator struct {
	cfg     Config
	watcher *Watcher
}

// NewAnimator creates an animator bound to w. A nil watcher is allowed
// only with reduced motion.
func NewAnimator(cfg Config, w *Watcher) *Animator {
	if cfg.Step <= 0 {
		cfg.Step = model.DefaultRevealStep
	}
	if cfg.Max <= 0 {
		cfg.Max = model.DefaultRevealMax
	}
	return &Animator{cfg: cfg, watcher: w}
}

// ReduceMotion reports whether staggering is disabled.
func (a *Animator) ReduceMotion() bool { return a.cfg.ReduceMotion }

// StaggerDelay is the transition delay of the i-th child of a container.
func (a *Animator) StaggerDelay(i int) time.Duration {
	if i < 0 {
		i = 0
	}
	d := time.Duration(i) * a.cfg.Step
	if d > a.cfg.Max {
		return a.cfg.Max
	}
	return d
}

// Stage tags the children of one container. Under reduced motion every
// child is revealed immediately and nothing is watched.
func (a *Animator) Stage(nodes []*Node) {
	for i, n := range nodes {
		if n == nil {
			continue
		}
		n.Tagged = true
		if a.cfg.ReduceMotion {
			n.Delay = 0
			n.Revealed = true
			continue
		}
		n.Delay = a.StaggerDelay(i)
		if !n.Revealed && a.watcher != nil {
			a.watcher.Observe(n.ID, n.Delay)
		}
	}
}

// Release stops watching nodes that are no longer rendered.
func (a *Animator) Release(nodes []*Node) {
	if a.watcher == nil || len(nodes) == 0 {
		return
	}
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			ids = append(ids, n.ID)
		}
	}
	a.watcher.Release(ids...)
}
