package notify

import (
	"sync"
	"time"
)

// ProgressBar derives the visual progress fraction from a countdown timer.
// It holds no time state of its own: the timer is the single writer of the
// remaining time, the bar only reads it, so pause, reset, resume, and
// duration changes are reflected without extra synchronization.
//
// Optionally the bar can run a push interval that reports the current
// fraction at a fixed cadence, for hosts whose client has no clock of its
// own. Cleanup stops the interval; repeated mount/unmount cycles leak no
// timers.
type ProgressBar struct {
	timer *CountdownTimer
	show  bool

	clock    Clock
	interval time.Duration
	onTick   func(fraction float64)

	mu      sync.Mutex
	handle  TimerHandle
	running bool
}

// NewProgressBar creates a progress bar over timer. show mirrors the
// host's showProgressBar flag; onTick may be nil if the host computes the
// animation itself.
func NewProgressBar(clock Clock, timer *CountdownTimer, show bool, interval time.Duration, onTick func(float64)) *ProgressBar {
	return &ProgressBar{
		timer:    timer,
		show:     show,
		clock:    clock,
		interval: interval,
		onTick:   onTick,
	}
}

// Visible reports whether the bar should be rendered: exactly
// showProgressBar && duration > 0. A zero or negative duration hides the
// bar regardless of the flag.
func (p *ProgressBar) Visible() bool {
	return p.show && p.timer.Duration() > 0
}

// Fraction returns remaining/duration clamped to [0, 1]. While the timer
// is paused under PauseResume the fraction freezes; under ResetRestart it
// reads full again, matching the countdown that will restart on resume.
func (p *ProgressBar) Fraction() float64 {
	d := p.timer.Duration()
	if d <= 0 {
		return 0
	}

	f := float64(p.timer.Remaining()) / float64(d)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Start begins the push interval. No-op when the bar is not visible or no
// tick callback is configured.
func (p *ProgressBar) Start() {
	if !p.Visible() || p.onTick == nil || p.interval <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.handle = p.clock.AfterFunc(p.interval, p.tick)
}

// tick reports the current fraction and re-arms itself while running.
func (p *ProgressBar) tick() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.handle = p.clock.AfterFunc(p.interval, p.tick)
	p.mu.Unlock()

	p.onTick(p.Fraction())
}

// Cleanup stops the push interval. Idempotent; safe before Start. After
// Cleanup no tick can fire.
func (p *ProgressBar) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	if p.handle != nil {
		p.handle.Stop()
		p.handle = nil
	}
}
