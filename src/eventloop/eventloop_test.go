package eventloop

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"radial-switch/src/config"
	"radial-switch/src/geometry"
	"radial-switch/src/registry"
)

type fakeRegistry struct {
	apps        []registry.Candidate
	snapErr     error
	activateErr error
	activated   []registry.Handle
}

func (f *fakeRegistry) Snapshot() ([]registry.Candidate, error) {
	return f.apps, f.snapErr
}

func (f *fakeRegistry) Activate(h registry.Handle) error {
	f.activated = append(f.activated, h)
	return f.activateErr
}

type fakeMenu struct {
	open       bool
	opened     [][]registry.Candidate
	pointers   []geometry.Point
	commit     registry.Handle
	hasCommit  bool
	closeCalls int
}

func (m *fakeMenu) Open(bounds image.Rectangle, c []registry.Candidate) error {
	m.open = true
	m.opened = append(m.opened, c)
	return nil
}

func (m *fakeMenu) PointerMoved(p geometry.Point) { m.pointers = append(m.pointers, p) }

func (m *fakeMenu) Close() (registry.Handle, bool) {
	m.closeCalls++
	if !m.open {
		return 0, false
	}
	m.open = false
	return m.commit, m.hasCommit
}

func (m *fakeMenu) IsOpen() bool { return m.open }

type memStore struct {
	recs    map[string]config.Record
	flushes int
}

func (s *memStore) Get(key string) (config.Record, bool) { r, ok := s.recs[key]; return r, ok }
func (s *memStore) Set(key string, r config.Record)      { s.recs[key] = r }
func (s *memStore) Flush() error                         { s.flushes++; return nil }

func screen() (image.Rectangle, error) { return image.Rect(0, 0, 1440, 900), nil }

func newLoop(reg *fakeRegistry, menu *fakeMenu) *Loop {
	return New(Options{
		Registry: reg,
		Menu:     menu,
		Bounds:   screen,
		Store:    &memStore{recs: map[string]config.Record{}},
		Settings: config.DefaultSettings(),
	})
}

// drain runs every queued task on the calling goroutine.
func drain(l *Loop) {
	for {
		select {
		case fn := <-l.tasks:
			l.runTask(fn)
		default:
			return
		}
	}
}

func TestOpenCloseActivates(t *testing.T) {
	reg := &fakeRegistry{apps: []registry.Candidate{{Name: "Mail", Handle: 7}}}
	menu := &fakeMenu{commit: 7, hasCommit: true}
	l := newLoop(reg, menu)

	l.OpenMenu()
	if !menu.open || len(menu.opened) != 1 || len(menu.opened[0]) != 1 {
		t.Fatalf("expected menu open with one candidate, got %+v", menu.opened)
	}
	l.CloseMenu()
	if len(reg.activated) != 1 || reg.activated[0] != 7 {
		t.Fatalf("expected activation of 7, got %v", reg.activated)
	}
}

func TestCloseMenu(t *testing.T) {
	tests := []struct {
		name        string
		openFirst   bool
		hasCommit   bool
		activateErr error
		activations int
	}{
		{"close without open", false, false, nil, 0},
		{"empty session", true, false, nil, 0},
		{"application quit", true, true, registry.ErrNotRunning, 1},
		{"activation refused", true, true, errors.New("refused"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &fakeRegistry{activateErr: tt.activateErr}
			menu := &fakeMenu{commit: 3, hasCommit: tt.hasCommit}
			l := newLoop(reg, menu)
			if tt.openFirst {
				l.OpenMenu()
			}
			l.CloseMenu()
			l.CloseMenu()
			if len(reg.activated) != tt.activations {
				t.Errorf("activations = %d, expected %d", len(reg.activated), tt.activations)
			}
		})
	}
}

func TestOpenMenuFailures(t *testing.T) {
	t.Run("snapshot error opens empty menu", func(t *testing.T) {
		reg := &fakeRegistry{snapErr: registry.ErrUnsupported}
		menu := &fakeMenu{}
		l := newLoop(reg, menu)
		l.OpenMenu()
		if !menu.open || len(menu.opened[0]) != 0 {
			t.Errorf("expected an empty menu, got %+v", menu.opened)
		}
	})
	t.Run("no display leaves menu closed", func(t *testing.T) {
		menu := &fakeMenu{}
		l := New(Options{
			Registry: &fakeRegistry{},
			Menu:     menu,
			Bounds:   func() (image.Rectangle, error) { return image.Rectangle{}, errors.New("no display") },
		})
		l.OpenMenu()
		if menu.open {
			t.Error("menu opened without display bounds")
		}
	})
	t.Run("second open while open is ignored", func(t *testing.T) {
		menu := &fakeMenu{}
		l := newLoop(&fakeRegistry{}, menu)
		l.OpenMenu()
		l.OpenMenu()
		if len(menu.opened) != 1 {
			t.Errorf("expected one open, got %d", len(menu.opened))
		}
	})
}

func TestPostDropsWhenFull(t *testing.T) {
	l := New(Options{QueueSize: 1})
	if !l.Post(func() {}) {
		t.Fatal("first post should fit")
	}
	if l.Post(func() {}) {
		t.Fatal("second post should be dropped")
	}
	if l.Post(nil) {
		t.Fatal("nil task must be rejected")
	}
}

func TestPostPointerCoalesces(t *testing.T) {
	menu := &fakeMenu{}
	l := newLoop(&fakeRegistry{}, menu)

	l.PostPointer(geometry.Point{X: 1, Y: 1})
	l.PostPointer(geometry.Point{X: 2, Y: 2})
	l.PostPointer(geometry.Point{X: 3, Y: 3})
	if n := len(l.tasks); n != 1 {
		t.Fatalf("expected one queued pointer task, got %d", n)
	}
	drain(l)
	if len(menu.pointers) != 1 || menu.pointers[0] != (geometry.Point{X: 3, Y: 3}) {
		t.Fatalf("expected only the latest pointer, got %v", menu.pointers)
	}

	l.PostPointer(geometry.Point{X: 4, Y: 4})
	drain(l)
	if len(menu.pointers) != 2 {
		t.Errorf("expected a new task after flush, got %v", menu.pointers)
	}
}

func TestApplySettings(t *testing.T) {
	store := &memStore{recs: map[string]config.Record{}}
	l := New(Options{Store: store, Settings: config.DefaultSettings()})

	var seen []config.Settings
	l.OnSettings(func(s config.Settings) { seen = append(seen, s) })

	next := config.Settings{Hotkey: "Command+Option+S", MenubarTitle: config.TitleCircle}
	l.ApplySettings(next)
	l.ApplySettings(next)

	if len(seen) != 1 || seen[0] != next {
		t.Fatalf("expected one notification with %+v, got %+v", next, seen)
	}
	if store.flushes != 1 {
		t.Errorf("expected one flush, got %d", store.flushes)
	}
	if got := config.LoadSettings(store); got != next {
		t.Errorf("persisted %+v, expected %+v", got, next)
	}
	if l.Settings() != next {
		t.Errorf("Settings() = %+v", l.Settings())
	}
}

func TestRunExecutesAndStops(t *testing.T) {
	menu := &fakeMenu{}
	l := newLoop(&fakeRegistry{}, menu)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ran := make(chan struct{})
	l.Post(func() { panic("task failure") })
	l.Post(l.OpenMenu)
	l.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	if menu.open {
		t.Error("menu left open after Run returned")
	}
}
