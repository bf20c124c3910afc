package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"radial-switch/src/config"
	"radial-switch/src/display"
	"radial-switch/src/eventloop"
	"radial-switch/src/geometry"
	"radial-switch/src/hotkey"
	"radial-switch/src/logutil"
	"radial-switch/src/notification"
	"radial-switch/src/overlay"
	"radial-switch/src/registry"
	"radial-switch/src/runtimeinit"
	"radial-switch/src/singleinstance"
	"radial-switch/src/tray"
)

const appName = "Radial App Switcher"

func main() {
	// AppKit and the systray loop need the main OS thread.
	runtime.LockOSThread()

	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{SetupLogging: setupLogging})
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		log.Printf("%s is already running, exiting", appName)
		os.Exit(0)
	}
	if err != nil {
		fatal("Startup failed", err)
	}

	reg, err := registry.New()
	if err != nil {
		fatal("Unsupported platform", err)
	}

	var loop *eventloop.Loop
	surface, err := overlay.NewSurface(func(p geometry.Point) { loop.PostPointer(p) })
	if err != nil {
		fatal("Unsupported platform", err)
	}
	menu, err := overlay.New(surface)
	if err != nil {
		fatal("Startup failed", err)
	}

	loop = eventloop.New(eventloop.Options{
		Registry: reg,
		Menu:     menu,
		Bounds:   display.MainBounds,
		Store:    rt.Store,
		Settings: rt.Settings,
	})
	controller := hotkey.NewController(hotkey.ParseSpec(rt.Settings.Hotkey), loop, loop.OpenMenu, loop.CloseMenu)
	source := hotkey.NewSource()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On darwin systray terminates the process right after OnExit; the call
	// after Run covers the other platforms.
	shutdown := shutdownOnce(source.Stop, cancel, rt.Close, func() {
		log.Printf("%s exited", appName)
	})

	trayIcon, err := tray.New(tray.Config{
		Settings: rt.Settings,
		OnReady: func() {
			if err := source.Start(controller.HandleKey); err != nil {
				fatal("Accessibility permission required", err)
			}
			log.Printf("%s ready, hotkey %s", appName, controller.Spec())
		},
		OnSettings: func(s config.Settings) {
			loop.Post(func() { loop.ApplySettings(s) })
		},
		OnQuit: cancel,
		OnExit: shutdown,
	})
	if err != nil {
		fatal("Startup failed", err)
	}
	loop.OnSettings(func(s config.Settings) {
		controller.SetSpec(hotkey.ParseSpec(s.Hotkey))
		trayIcon.Apply(s)
	})

	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("event loop stopped: %v", err)
		}
	}()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			log.Printf("signal received, quitting")
			trayIcon.Quit()
		case <-ctx.Done():
		}
	}()

	trayIcon.Run()
	shutdown()
}

// shutdownOnce returns a function that runs steps in order on its first call
// and does nothing afterwards.
func shutdownOnce(steps ...func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, step := range steps {
				step()
			}
		})
	}
}

func setupLogging(cfg *config.Config) io.Closer {
	return logutil.Setup(logutil.Options{
		EnableFileLogging: cfg.EnableFileLogging,
		File:              cfg.LogFile,
		Debug:             cfg.Debug,
	})
}

// fatal reports an unrecoverable startup failure and exits with status 1.
func fatal(title string, err error) {
	msg := err.Error()
	if errors.Is(err, hotkey.ErrPermissionDenied) {
		msg = fmt.Sprintf("%v\n\nAfter granting access, start %s again.", err, appName)
	}
	notification.ShowBlockingError(title, msg)
	os.Exit(1)
}
