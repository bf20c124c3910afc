package tray

import "radial-switch/src/config"

// Label is what the menu bar shows: a text title or the app icon.
type Label struct {
	Title   string
	UseIcon bool
}

// LabelFor maps a menu bar title choice to its label. Unknown choices show
// the icon.
func LabelFor(choice string) Label {
	switch choice {
	case config.TitleRadialAS:
		return Label{Title: "RadialAS"}
	case config.TitleRAS:
		return Label{Title: "RAS"}
	case config.TitleCircle:
		return Label{Title: "●"}
	case config.TitleCircle2:
		return Label{Title: "⦾"}
	default:
		return Label{UseIcon: true}
	}
}
