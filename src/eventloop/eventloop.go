package eventloop

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"

	"radial-switch/src/config"
	"radial-switch/src/geometry"
	"radial-switch/src/logutil"
	"radial-switch/src/registry"
)

const defaultQueueSize = 64

// Menu is the overlay as seen by the loop.
type Menu interface {
	Open(bounds image.Rectangle, candidates []registry.Candidate) error
	PointerMoved(p geometry.Point)
	Close() (registry.Handle, bool)
	IsOpen() bool
}

// Options wires the loop's collaborators.
type Options struct {
	Registry  registry.Registry
	Menu      Menu
	Bounds    func() (image.Rectangle, error)
	Store     config.PreferenceStore
	Settings  config.Settings
	QueueSize int
}

// Loop is the single goroutine that owns the menu session. Everything else
// hands it work through Post.
type Loop struct {
	tasks    chan func()
	reg      registry.Registry
	menu     Menu
	bounds   func() (image.Rectangle, error)
	store    config.PreferenceStore
	settings config.Settings

	listenersMu sync.Mutex
	listeners   []func(config.Settings)

	pointerMu      sync.Mutex
	pointer        geometry.Point
	pointerPending bool
}

// New creates a loop. Run must be called for posted work to execute.
func New(opts Options) *Loop {
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Loop{
		tasks:    make(chan func(), size),
		reg:      opts.Registry,
		menu:     opts.Menu,
		bounds:   opts.Bounds,
		store:    opts.Store,
		settings: opts.Settings,
	}
}

// Post queues fn without blocking. It reports false and drops fn when the
// queue is full.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	default:
		log.Printf("eventloop: queue full, dropping task")
		return false
	}
}

// Run executes posted tasks until ctx is cancelled. An open menu is closed
// without activation on the way out.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		if l.menu != nil && l.menu.IsOpen() {
			l.menu.Close()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.runTask(fn)
		}
	}
}

func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in event loop task: %v", r)
		}
	}()
	fn()
}

// OnSettings registers a callback run on the loop after settings change.
func (l *Loop) OnSettings(fn func(config.Settings)) {
	l.listenersMu.Lock()
	l.listeners = append(l.listeners, fn)
	l.listenersMu.Unlock()
}

// Settings returns the active settings. Loop goroutine only.
func (l *Loop) Settings() config.Settings { return l.settings }

// OpenMenu snapshots running applications and shows the menu over the main
// display. Loop goroutine only.
func (l *Loop) OpenMenu() {
	if l.menu.IsOpen() {
		return
	}
	bounds, err := l.bounds()
	if err != nil {
		log.Printf("eventloop: no display bounds, menu not opened: %v", err)
		return
	}
	candidates, err := l.reg.Snapshot()
	if err != nil {
		log.Printf("eventloop: application snapshot failed, opening empty menu: %v", err)
		candidates = nil
	}
	if err := l.menu.Open(bounds, candidates); err != nil {
		log.Printf("eventloop: open menu: %v", err)
	}
}

// CloseMenu closes the menu and activates the committed application. Closing
// without an open menu does nothing. Loop goroutine only.
func (l *Loop) CloseMenu() {
	h, ok := l.menu.Close()
	if !ok {
		return
	}
	if err := l.reg.Activate(h); err != nil {
		if errors.Is(err, registry.ErrNotRunning) {
			log.Printf("eventloop: selected application quit before activation: %v", err)
			return
		}
		log.Printf("eventloop: activation failed: %v", err)
	}
}

// PointerMoved forwards a pointer position. Loop goroutine only.
func (l *Loop) PointerMoved(p geometry.Point) {
	logutil.Debugf("eventloop: pointer %.0f,%.0f", p.X, p.Y)
	l.menu.PointerMoved(p)
}

// PostPointer may be called from any goroutine. Bursts of moves collapse to
// the latest position so the queue never fills with stale pointer events.
func (l *Loop) PostPointer(p geometry.Point) {
	l.pointerMu.Lock()
	l.pointer = p
	if l.pointerPending {
		l.pointerMu.Unlock()
		return
	}
	l.pointerPending = true
	l.pointerMu.Unlock()

	if !l.Post(l.flushPointer) {
		l.pointerMu.Lock()
		l.pointerPending = false
		l.pointerMu.Unlock()
	}
}

func (l *Loop) flushPointer() {
	l.pointerMu.Lock()
	p := l.pointer
	l.pointerPending = false
	l.pointerMu.Unlock()
	l.PointerMoved(p)
}

// ApplySettings makes s active, persists it and notifies listeners. Loop
// goroutine only.
func (l *Loop) ApplySettings(s config.Settings) {
	if s == l.settings {
		return
	}
	l.settings = s
	log.Printf("eventloop: settings changed: hotkey=%q menubarTitle=%q", s.Hotkey, s.MenubarTitle)

	if l.store != nil {
		if err := config.SaveSettings(l.store, s); err != nil {
			log.Printf("eventloop: settings not persisted: %v", err)
		}
	}

	l.listenersMu.Lock()
	listeners := append([]func(config.Settings){}, l.listeners...)
	l.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}
