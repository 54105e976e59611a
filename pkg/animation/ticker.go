// Package animation provides the timing primitives behind scene
// transitions.
//
//   - [AnimationController] moves a value from 0 to 1 over a duration,
//     shaped by an easing curve such as [EaseCubicOut].
//   - [Tween] maps that progress onto positions or opacities.
//   - [Ticker] is the frame callback a controller registers; nothing moves
//     until the host calls [StepTickers], usually once per rendered frame.
//   - [SetClock] swaps the time source so tests can advance time by hand.
//
// Everything runs on the caller's goroutine. StepTickers only locks the
// registry while copying it, so callbacks may start or stop tickers.
package animation

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// registry is the set of running tickers.
type registry struct {
	mu      sync.Mutex
	tickers map[*Ticker]struct{}
}

var running = registry{tickers: make(map[*Ticker]struct{})}

func (r *registry) add(t *Ticker) {
	r.mu.Lock()
	r.tickers[t] = struct{}{}
	r.mu.Unlock()
}

func (r *registry) remove(t *Ticker) {
	r.mu.Lock()
	delete(r.tickers, t)
	r.mu.Unlock()
}

func (r *registry) snapshot() []*Ticker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Ticker, 0, len(r.tickers))
	for t := range r.tickers {
		out = append(out, t)
	}
	// Start order keeps frames deterministic.
	slices.SortFunc(out, func(a, b *Ticker) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

var tickerSeq atomic.Uint64

// Ticker invokes its callback with the time since Start on every
// [StepTickers] while active.
type Ticker struct {
	callback func(elapsed time.Duration)
	active   bool
	start    time.Time
	seq      uint64
}

// NewTicker returns an inactive ticker.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start registers the ticker and stamps its start time. Starting an
// active ticker does nothing.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.start = Now()
	t.seq = tickerSeq.Add(1)
	running.add(t)
}

// Stop unregisters the ticker.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	running.remove(t)
}

func (t *Ticker) IsActive() bool { return t.active }

// Elapsed is the time since Start, or 0 when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.active {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers runs every active ticker once against the current clock.
func StepTickers() {
	now := Now()
	for _, t := range running.snapshot() {
		// An earlier callback may have stopped it.
		if t.active && t.callback != nil {
			t.callback(now.Sub(t.start))
		}
	}
}

// ActiveTickers returns the number of running tickers.
func ActiveTickers() int {
	running.mu.Lock()
	defer running.mu.Unlock()
	return len(running.tickers)
}

// StopAllTickers stops every running ticker. Tests call it between cases so
// leftover transitions do not leak across them.
func StopAllTickers() {
	for _, t := range running.snapshot() {
		t.Stop()
	}
}
