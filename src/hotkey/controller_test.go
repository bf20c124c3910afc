package hotkey

import "testing"

type queue struct {
	tasks []func()
	full  bool
}

func (q *queue) Post(fn func()) bool {
	if q.full {
		return false
	}
	q.tasks = append(q.tasks, fn)
	return true
}

func (q *queue) drain() {
	tasks := q.tasks
	q.tasks = nil
	for _, fn := range tasks {
		fn()
	}
}

type recorder struct {
	opens, closes int
}

func newController(q *queue, r *recorder) *Controller {
	return NewController(ParseSpec("Command+Shift+A"), q, func() { r.opens++ }, func() { r.closes++ })
}

var (
	hotkeyDown = KeyEvent{Kind: KeyDown, Key: KeyA, Mods: ModCommand | ModShift}
	hotkeyUp   = KeyEvent{Kind: KeyUp, Key: KeyA}
)

func TestControllerPressRelease(t *testing.T) {
	q := &queue{}
	r := &recorder{}
	c := newController(q, r)

	if d := c.HandleKey(hotkeyDown); d != Consume {
		t.Fatalf("hotkey press: decision %v, expected Consume", d)
	}
	if c.State() != Held {
		t.Fatalf("expected Held, got %s", c.State())
	}
	if r.opens != 0 {
		t.Fatal("open must be deferred to the loop, not run in the key callback")
	}
	q.drain()
	if r.opens != 1 {
		t.Fatalf("expected one open after drain, got %d", r.opens)
	}

	if d := c.HandleKey(hotkeyUp); d != Consume {
		t.Fatalf("hotkey release: decision %v, expected Consume", d)
	}
	if c.State() != Idle {
		t.Fatalf("expected Idle, got %s", c.State())
	}
	q.drain()
	if r.closes != 1 {
		t.Fatalf("expected one close after drain, got %d", r.closes)
	}
}

func TestControllerEvents(t *testing.T) {
	tests := []struct {
		name      string
		events    []KeyEvent
		decisions []Decision
		opens     int
		closes    int
		final     State
	}{
		{
			name:      "unrelated key passes through",
			events:    []KeyEvent{{Kind: KeyDown, Key: KeyS, Mods: ModCommand | ModShift}},
			decisions: []Decision{PassThrough},
			final:     Idle,
		},
		{
			name:      "missing modifier passes through",
			events:    []KeyEvent{{Kind: KeyDown, Key: KeyA, Mods: ModCommand}},
			decisions: []Decision{PassThrough},
			final:     Idle,
		},
		{
			name:      "extra modifier still opens",
			events:    []KeyEvent{{Kind: KeyDown, Key: KeyA, Mods: ModCommand | ModShift | ModOption}},
			decisions: []Decision{Consume},
			opens:     1,
			final:     Held,
		},
		{
			name: "auto-repeat while held is consumed without reopening",
			events: []KeyEvent{
				hotkeyDown,
				{Kind: KeyDown, Key: KeyA, Mods: ModCommand | ModShift, Repeat: true},
				{Kind: KeyDown, Key: KeyA, Mods: ModCommand | ModShift, Repeat: true},
			},
			decisions: []Decision{Consume, Consume, Consume},
			opens:     1,
			final:     Held,
		},
		{
			name: "repeat after modifiers released is still consumed",
			events: []KeyEvent{
				hotkeyDown,
				{Kind: KeyDown, Key: KeyA, Repeat: true},
			},
			decisions: []Decision{Consume, Consume},
			opens:     1,
			final:     Held,
		},
		{
			name: "other keys pass through while held",
			events: []KeyEvent{
				hotkeyDown,
				{Kind: KeyDown, Key: KeyR},
				{Kind: KeyUp, Key: KeyR},
			},
			decisions: []Decision{Consume, PassThrough, PassThrough},
			opens:     1,
			final:     Held,
		},
		{
			name:      "release while idle passes through",
			events:    []KeyEvent{hotkeyUp},
			decisions: []Decision{PassThrough},
			final:     Idle,
		},
		{
			name: "two full cycles",
			events: []KeyEvent{
				hotkeyDown, hotkeyUp,
				hotkeyDown, hotkeyUp,
			},
			decisions: []Decision{Consume, Consume, Consume, Consume},
			opens:     2,
			closes:    2,
			final:     Idle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &queue{}
			r := &recorder{}
			c := newController(q, r)
			for i, ev := range tt.events {
				if d := c.HandleKey(ev); d != tt.decisions[i] {
					t.Errorf("event %d: decision %v, expected %v", i, d, tt.decisions[i])
				}
			}
			q.drain()
			if r.opens != tt.opens || r.closes != tt.closes {
				t.Errorf("opens=%d closes=%d, expected %d/%d", r.opens, r.closes, tt.opens, tt.closes)
			}
			if c.State() != tt.final {
				t.Errorf("final state %s, expected %s", c.State(), tt.final)
			}
		})
	}
}

func TestControllerSetSpec(t *testing.T) {
	q := &queue{}
	r := &recorder{}
	c := newController(q, r)

	c.HandleKey(hotkeyDown)
	c.SetSpec(ParseSpec("Command+Option+S"))
	// The key that opened the menu still closes it.
	if d := c.HandleKey(hotkeyUp); d != Consume {
		t.Errorf("release after spec change: decision %v, expected Consume", d)
	}

	if d := c.HandleKey(hotkeyDown); d != PassThrough {
		t.Errorf("old hotkey: decision %v, expected PassThrough", d)
	}
	if d := c.HandleKey(KeyEvent{Kind: KeyDown, Key: KeyS, Mods: ModCommand | ModOption}); d != Consume {
		t.Errorf("new hotkey: decision %v, expected Consume", d)
	}
	q.drain()
	if r.opens != 2 || r.closes != 1 {
		t.Errorf("opens=%d closes=%d, expected 2/1", r.opens, r.closes)
	}
}

func TestControllerInertSpec(t *testing.T) {
	q := &queue{}
	c := NewController(ParseSpec("Command+Shift+Q"), q, func() {}, func() {})
	for _, key := range []KeyCode{KeyA, KeyS, KeyR} {
		if d := c.HandleKey(KeyEvent{Kind: KeyDown, Key: key, Mods: ModCommand | ModShift}); d != PassThrough {
			t.Errorf("key %d: inert spec must pass everything through", key)
		}
	}
	if len(q.tasks) != 0 {
		t.Errorf("inert spec posted %d tasks", len(q.tasks))
	}
}

func TestControllerQueueFull(t *testing.T) {
	q := &queue{full: true}
	r := &recorder{}
	c := newController(q, r)

	c.HandleKey(hotkeyDown)
	if c.State() != Idle {
		t.Errorf("expected Idle when the open request was dropped, got %s", c.State())
	}
}
