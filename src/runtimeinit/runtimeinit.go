package runtimeinit

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"radial-switch/src/config"
	"radial-switch/src/singleinstance"
)

const lockFileName = "radial-switch.lock"

type Options struct {
	LoadOptions  config.LoadOptions
	SetupLogging func(*config.Config) io.Closer
}

// Runtime is everything main needs before wiring the UI.
type Runtime struct {
	Config   *config.Config
	Store    *config.FileStore
	Settings config.Settings

	lock      *singleinstance.Lock
	logCloser io.Closer
}

// Bootstrap loads configuration, sets up logging, takes the instance lock and
// loads the saved settings. When another instance owns the lock the error
// wraps singleinstance.ErrAlreadyRunning.
func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	rt := &Runtime{Config: cfg}
	if opts.SetupLogging != nil {
		rt.logCloser = opts.SetupLogging(cfg)
	}

	lockPath := filepath.Join(filepath.Dir(cfg.PreferencesPath), lockFileName)
	lock, err := singleinstance.Acquire(lockPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("instance lock %s: %w", lockPath, err)
	}
	rt.lock = lock
	log.Printf("Instance lock: %s", lock.Path())

	store, err := config.OpenFileStore(cfg.PreferencesPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	rt.Store = store
	rt.Settings = config.LoadSettings(store)
	log.Printf("Preferences: %s (hotkey=%q, menubarTitle=%q)", store.Path(), rt.Settings.Hotkey, rt.Settings.MenubarTitle)

	return rt, nil
}

// Close flushes preferences and releases the lock and log file.
func (rt *Runtime) Close() {
	if rt.Store != nil {
		if err := rt.Store.Flush(); err != nil {
			log.Printf("runtimeinit: flush preferences: %v", err)
		}
	}
	if err := rt.lock.Release(); err != nil {
		log.Printf("runtimeinit: release lock: %v", err)
	}
	rt.lock = nil
	if rt.logCloser != nil {
		_ = rt.logCloser.Close()
		rt.logCloser = nil
	}
}
