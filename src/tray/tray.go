package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"

	"radial-switch/src/config"
)

const tooltip = "Radial App Switcher"

// Config wires the menu bar to the rest of the app.
type Config struct {
	Settings config.Settings
	// OnReady runs once the menu bar exists, on a systray goroutine.
	OnReady func()
	// OnSettings receives settings picked from the menus.
	OnSettings func(config.Settings)
	// OnQuit runs when the Quit item is chosen, before systray exits.
	OnQuit func()
	// OnExit runs after the systray loop ends.
	OnExit func()
}

// Tray is the menu bar item with the hotkey and title submenus.
type Tray struct {
	cfg Config

	mu       sync.Mutex
	settings config.Settings
	icon     []byte
	blank    []byte
	hotkeys  []*systray.MenuItem
	titles   []*systray.MenuItem
}

func New(cfg Config) (*Tray, error) {
	icon, err := Icon()
	if err != nil {
		return nil, err
	}
	blank, err := blankIcon()
	if err != nil {
		return nil, err
	}
	return &Tray{cfg: cfg, settings: cfg.Settings, icon: icon, blank: blank}, nil
}

// Run blocks in the systray loop. It must be called from the main goroutine
// with the OS thread locked.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {
		if t.cfg.OnExit != nil {
			t.cfg.OnExit()
		}
	})
}

// Quit ends the systray loop.
func (t *Tray) Quit() { systray.Quit() }

func (t *Tray) onReady() {
	systray.SetTooltip(tooltip)

	hotkeyMenu := systray.AddMenuItem("Change Hotkey", "Hotkey that opens the radial menu")
	hotkeys := make([]*systray.MenuItem, len(config.HotkeyOptions))
	for i, opt := range config.HotkeyOptions {
		hotkeys[i] = hotkeyMenu.AddSubMenuItem(opt, "")
	}

	titleMenu := systray.AddMenuItem("Change Menubar Title", "What the menu bar shows")
	titles := make([]*systray.MenuItem, len(config.MenubarTitleOptions))
	for i, opt := range config.MenubarTitleOptions {
		titles[i] = titleMenu.AddSubMenuItem(opt, "")
	}

	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Quit the app switcher")

	t.mu.Lock()
	t.hotkeys = hotkeys
	t.titles = titles
	s := t.settings
	t.mu.Unlock()
	t.Apply(s)

	for i, item := range hotkeys {
		go t.watch(item.ClickedCh, func(s config.Settings) config.Settings {
			s.Hotkey = config.HotkeyOptions[i]
			return s
		})
	}
	for i, item := range titles {
		go t.watch(item.ClickedCh, func(s config.Settings) config.Settings {
			s.MenubarTitle = config.MenubarTitleOptions[i]
			return s
		})
	}
	go func() {
		<-quit.ClickedCh
		log.Printf("tray: quit requested")
		if t.cfg.OnQuit != nil {
			t.cfg.OnQuit()
		}
		systray.Quit()
	}()

	if t.cfg.OnReady != nil {
		t.cfg.OnReady()
	}
}

func (t *Tray) watch(ch <-chan struct{}, change func(config.Settings) config.Settings) {
	for range ch {
		t.mu.Lock()
		next := change(t.settings)
		t.mu.Unlock()
		if t.cfg.OnSettings != nil {
			t.cfg.OnSettings(next)
		}
	}
}

// Apply shows s: the label, and check marks on the active options.
func (t *Tray) Apply(s config.Settings) {
	t.mu.Lock()
	t.settings = s
	hotkeys, titles := t.hotkeys, t.titles
	t.mu.Unlock()

	label := LabelFor(s.MenubarTitle)
	if label.UseIcon {
		systray.SetTitle("")
		systray.SetTemplateIcon(t.icon, t.icon)
	} else {
		systray.SetIcon(t.blank)
		systray.SetTitle(label.Title)
	}

	setChecks(hotkeys, checkedIndex(config.HotkeyOptions, s.Hotkey))
	setChecks(titles, checkedIndex(config.MenubarTitleOptions, s.MenubarTitle))
}

// checkedIndex returns the option equal to value, or -1.
func checkedIndex(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return -1
}

func setChecks(items []*systray.MenuItem, checked int) {
	for i, item := range items {
		if i == checked {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}
