package hotkey

import (
	"log"
	"strings"
)

// Modifier is a bit set of held modifier keys. The bit values are the macOS
// event flag masks so darwin events need no translation.
type Modifier uint64

const (
	ModShift   Modifier = 1 << 17
	ModOption  Modifier = 1 << 19
	ModCommand Modifier = 1 << 20
)

// KeyCode is a macOS virtual key code.
type KeyCode int

const (
	// KeyNone marks a spec whose key letter was not recognized; it never matches.
	KeyNone KeyCode = -1

	KeyA KeyCode = 0
	KeyS KeyCode = 1
	KeyR KeyCode = 15
)

// Spec is a parsed hotkey: every modifier in Mods plus exactly Key.
type Spec struct {
	Raw  string
	Mods Modifier
	Key  KeyCode
}

// ParseSpec parses strings like "Command+Shift+A". Only A, S and R are
// supported as keys; any other key leaves the spec inert (Key == KeyNone).
// Unknown modifier names are logged and ignored.
func ParseSpec(s string) Spec {
	spec := Spec{Raw: s, Key: KeyNone}
	keys := parseHotkey(s)
	if len(keys) == 0 {
		log.Printf("hotkey: empty hotkey %q, nothing will match", s)
		return spec
	}

	for _, name := range keys[:len(keys)-1] {
		mod, ok := modifierByName(name)
		if !ok {
			log.Printf("hotkey: unknown modifier %q in %q, ignoring it", name, s)
			continue
		}
		spec.Mods |= mod
	}

	spec.Key = keyNameToCode(keys[len(keys)-1])
	if spec.Key == KeyNone {
		log.Printf("hotkey: unsupported key in %q, hotkey is inert until changed", s)
	}
	return spec
}

// Valid reports whether the spec can ever match.
func (s Spec) Valid() bool { return s.Key != KeyNone }

// Matches reports whether an event with the given modifiers and key triggers
// the hotkey. Extra held modifiers do not prevent a match.
func (s Spec) Matches(mods Modifier, key KeyCode) bool {
	if s.Key == KeyNone || key != s.Key {
		return false
	}
	return mods&s.Mods == s.Mods
}

func (s Spec) String() string { return s.Raw }

// parseHotkey splits a hotkey string like "Command+Shift+A" into normalized
// lowercase key names.
func parseHotkey(hotkeyConfig string) []string {
	parts := strings.Split(strings.ToLower(hotkeyConfig), "+")
	var keys []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "command", "cmd", "super", "win":
			keys = append(keys, "cmd")
		case "option", "opt", "alt":
			keys = append(keys, "alt")
		case "shift":
			keys = append(keys, "shift")
		default:
			keys = append(keys, part)
		}
	}

	return keys
}

func modifierByName(name string) (Modifier, bool) {
	switch name {
	case "cmd":
		return ModCommand, true
	case "alt":
		return ModOption, true
	case "shift":
		return ModShift, true
	default:
		return 0, false
	}
}

// keyNameToCode maps a key name to its virtual key code.
func keyNameToCode(keyName string) KeyCode {
	switch strings.ToLower(strings.TrimSpace(keyName)) {
	case "a":
		return KeyA
	case "s":
		return KeyS
	case "r":
		return KeyR
	default:
		return KeyNone
	}
}
