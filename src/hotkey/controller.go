package hotkey

import (
	"log"
	"sync"

	"radial-switch/src/logutil"
)

// EventKind distinguishes key presses from releases.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
)

// KeyEvent is one keyboard event from a Source.
type KeyEvent struct {
	Kind   EventKind
	Key    KeyCode
	Mods   Modifier
	Repeat bool
}

// Decision tells the Source what to do with an event.
type Decision int

const (
	PassThrough Decision = iota
	Consume
)

// State of the controller.
type State int

const (
	Idle State = iota
	Held
)

func (s State) String() string {
	if s == Held {
		return "held"
	}
	return "idle"
}

// Poster defers work to the event loop. Post must not block and reports
// whether the task was queued.
type Poster interface {
	Post(fn func()) bool
}

// Controller turns the raw key stream into open and close requests. Key
// callbacks only flip state and post; the requests run later on the loop.
type Controller struct {
	mu      sync.Mutex
	spec    Spec
	state   State
	heldKey KeyCode

	poster  Poster
	onOpen  func()
	onClose func()
}

// NewController creates an idle controller for spec.
func NewController(spec Spec, poster Poster, onOpen, onClose func()) *Controller {
	return &Controller{
		spec:    spec,
		heldKey: KeyNone,
		poster:  poster,
		onOpen:  onOpen,
		onClose: onClose,
	}
}

// SetSpec replaces the hotkey. A held menu still closes on release of the key
// that opened it.
func (c *Controller) SetSpec(spec Spec) {
	c.mu.Lock()
	c.spec = spec
	c.mu.Unlock()
	log.Printf("hotkey: now %q (valid=%v)", spec.Raw, spec.Valid())
}

// Spec returns the active hotkey.
func (c *Controller) Spec() Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleKey is the Source callback.
func (c *Controller) HandleKey(ev KeyEvent) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case KeyDown:
		if c.state == Held {
			if ev.Key == c.heldKey || c.spec.Matches(ev.Mods, ev.Key) {
				return Consume
			}
			return PassThrough
		}
		if !c.spec.Matches(ev.Mods, ev.Key) {
			return PassThrough
		}
		if !c.poster.Post(c.onOpen) {
			log.Printf("hotkey: open request dropped, loop queue full")
			return Consume
		}
		c.state = Held
		c.heldKey = ev.Key
		logutil.Debugf("hotkey: %q pressed, open requested", c.spec.Raw)
		return Consume

	case KeyUp:
		if c.state != Held || ev.Key != c.heldKey {
			return PassThrough
		}
		c.state = Idle
		c.heldKey = KeyNone
		if !c.poster.Post(c.onClose) {
			log.Printf("hotkey: close request dropped, loop queue full")
		}
		logutil.Debugf("hotkey: %q released, close requested", c.spec.Raw)
		return Consume
	}
	return PassThrough
}
