package config

import "log"

// SettingsKey is the preference record holding Settings.
const SettingsKey = "RadialMenuSettings"

const (
	DefaultHotkey       = "Command+Shift+A"
	DefaultMenubarTitle = "RadialAS"

	TitleRadialAS = "RadialAS"
	TitleRAS      = "RAS"
	TitleCircle   = "Circle"
	TitleCircle2  = "Circle 2"
	TitleAppIcon  = "App icon"
)

// HotkeyOptions are the hotkeys offered in the menu bar.
var HotkeyOptions = []string{
	"Command+Shift+A",
	"Command+Option+A",
	"Command+Shift+S",
	"Command+Option+S",
	"Command+Shift+R",
	"Command+Option+R",
}

// MenubarTitleOptions are the menu bar label choices.
var MenubarTitleOptions = []string{
	TitleRadialAS,
	TitleRAS,
	TitleCircle,
	TitleCircle2,
	TitleAppIcon,
}

// Settings is the user-chosen configuration. Values outside the option sets
// are kept as-is; consumers fall back to safe behavior.
type Settings struct {
	Hotkey       string `yaml:"hotkey"`
	MenubarTitle string `yaml:"menubarTitle"`
}

func DefaultSettings() Settings {
	return Settings{Hotkey: DefaultHotkey, MenubarTitle: DefaultMenubarTitle}
}

// LoadSettings reads the settings record, filling missing fields with
// defaults.
func LoadSettings(store PreferenceStore) Settings {
	s := DefaultSettings()
	rec, ok := store.Get(SettingsKey)
	if !ok {
		return s
	}
	if v := rec["hotkey"]; v != "" {
		s.Hotkey = v
	}
	if v := rec["menubarTitle"]; v != "" {
		s.MenubarTitle = v
	}
	return s
}

// SaveSettings writes the settings record and flushes the store.
func SaveSettings(store PreferenceStore, s Settings) error {
	store.Set(SettingsKey, Record{
		"hotkey":       s.Hotkey,
		"menubarTitle": s.MenubarTitle,
	})
	if err := store.Flush(); err != nil {
		log.Printf("config: failed to persist settings: %v", err)
		return err
	}
	return nil
}
