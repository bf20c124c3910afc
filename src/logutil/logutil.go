package logutil

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName = "radial_switch.log"
	maxSizeMB   = 10
	maxArchives = 3
)

var debugEnabled atomic.Bool

// Options controls where logs go.
type Options struct {
	EnableFileLogging bool
	File              string // defaults to logFileName under DefaultDir
	Debug             bool
}

// Setup routes the standard logger. With file logging enabled logs are written
// to a rotating file (10MB, max 3 archives); otherwise they go to stderr.
// The returned closer releases the log file.
func Setup(opts Options) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	SetDebug(opts.Debug)

	if !opts.EnableFileLogging {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	path := opts.File
	if path == "" {
		path = filepath.Join(DefaultDir(), logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("logutil: cannot create log directory, logging to stderr: %v", err)
		return nopCloser{}
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxArchives,
	}
	log.SetOutput(w)
	log.Printf("logutil: logging to %s", path)
	return w
}

// DefaultDir is the directory for the log file: ~/Library/Logs/RadialSwitch on
// macOS, the user cache directory elsewhere.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil && runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "RadialSwitch")
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "radial-switch")
	}
	return "."
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetDebug toggles Debugf output.
func SetDebug(on bool) {
	debugEnabled.Store(on)
	if on {
		log.Printf("[DEBUG] debug logging enabled")
	}
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf logs per-event detail such as pointer moves when debugging is on.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}
