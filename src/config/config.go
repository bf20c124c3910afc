package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPathVar         = "RADIAL_SWITCH_ENV"
	PreferencesPathVar = "PREFERENCES_PATH"

	appDirName          = "RadialSwitch"
	preferencesFileName = "preferences.yaml"
)

type LoadOptions struct {
	PreferencesPathOverride string
}

// Config is the process environment. User-facing settings live in the
// preference store, not here.
type Config struct {
	EnableFileLogging bool
	LogFile           string
	Debug             bool
	PreferencesPath   string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use RADIAL_SWITCH_ENV as a path to a config file
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		EnableFileLogging: envBool("ENABLE_FILE_LOGGING"),
		LogFile:           strings.TrimSpace(os.Getenv("LOG_FILE")),
		Debug:             envBool("DEBUG"),
		PreferencesPath:   resolvePreferencesPath(opts),
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func resolvePreferencesPath(opts LoadOptions) string {
	if override := strings.TrimSpace(opts.PreferencesPathOverride); override != "" {
		return override
	}
	if p := strings.TrimSpace(os.Getenv(PreferencesPathVar)); p != "" {
		return p
	}
	return DefaultPreferencesPath()
}

// DefaultPreferencesPath is ~/Library/Application Support/RadialSwitch on
// macOS and the XDG config directory elsewhere.
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return preferencesFileName
	}
	return filepath.Join(dir, appDirName, preferencesFileName)
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
