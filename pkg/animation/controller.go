package animation

import (
	"fmt"
	"time"
)

// AnimationStatus is where a controller is in its run.
type AnimationStatus int

const (
	// AnimationDismissed is at rest at 0.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward is running toward 1.
	AnimationForward
	// AnimationReverse is running toward 0.
	AnimationReverse
	// AnimationCompleted is at rest at 1.
	AnimationCompleted
)

var statusNames = [...]string{"dismissed", "forward", "reverse", "completed"}

func (s AnimationStatus) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("AnimationStatus(%d)", int(s))
}

// AnimationController drives Value between 0 and 1 over Duration. Value
// only changes inside [StepTickers], on the goroutine that calls it.
//
// Dispose stops the ticker and drops every listener.
type AnimationController struct {
	Value    float64
	Duration time.Duration
	// Curve shapes progress; nil is linear.
	Curve func(float64) float64

	status    AnimationStatus
	ticker    *Ticker
	from, to  float64
	listeners []*listener
}

type listener struct {
	value  func()
	status func(AnimationStatus)
}

// NewAnimationController returns a dismissed controller.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration}
}

// Forward runs from the current value to 1.
func (c *AnimationController) Forward() { c.animateTo(1, AnimationForward) }

// Reverse runs from the current value to 0.
func (c *AnimationController) Reverse() { c.animateTo(0, AnimationReverse) }

func (c *AnimationController) animateTo(target float64, status AnimationStatus) {
	c.Stop()
	c.from, c.to = c.Value, target
	c.setStatus(status)
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	t := 1.0
	if c.Duration > 0 {
		t = min(float64(elapsed)/float64(c.Duration), 1)
	}
	eased := t
	if c.Curve != nil {
		eased = c.Curve(t)
	}
	c.Value = LerpFloat64(c.from, c.to, eased)
	c.each(func(l *listener) {
		if l.value != nil {
			l.value()
		}
	})
	if t < 1 {
		return
	}
	c.Stop()
	if c.to == 0 {
		c.setStatus(AnimationDismissed)
	} else {
		c.setStatus(AnimationCompleted)
	}
}

// Stop freezes Value where it is. The status is left unchanged.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *AnimationController) Status() AnimationStatus { return c.status }

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil && c.ticker.IsActive()
}

// AddListener calls fn after every value change. The returned func
// removes it.
func (c *AnimationController) AddListener(fn func()) func() {
	return c.add(&listener{value: fn})
}

// AddStatusListener calls fn on every status change. The returned func
// removes it.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	return c.add(&listener{status: fn})
}

func (c *AnimationController) add(l *listener) func() {
	c.listeners = append(c.listeners, l)
	return func() {
		for i, x := range c.listeners {
			if x == l {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// each visits a snapshot so listeners may remove themselves.
func (c *AnimationController) each(fn func(*listener)) {
	for _, l := range append([]*listener(nil), c.listeners...) {
		fn(l)
	}
}

func (c *AnimationController) setStatus(s AnimationStatus) {
	if c.status == s {
		return
	}
	c.status = s
	c.each(func(l *listener) {
		if l.status != nil {
			l.status(s)
		}
	})
}

// Dispose stops the controller and releases its listeners.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.listeners = nil
}
