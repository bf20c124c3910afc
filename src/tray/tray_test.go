package tray

import (
	"bytes"
	"image/png"
	"testing"

	"radial-switch/src/config"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		choice string
		want   Label
	}{
		{config.TitleRadialAS, Label{Title: "RadialAS"}},
		{config.TitleRAS, Label{Title: "RAS"}},
		{config.TitleCircle, Label{Title: "●"}},
		{config.TitleCircle2, Label{Title: "⦾"}},
		{config.TitleAppIcon, Label{UseIcon: true}},
		{"Sparkles", Label{UseIcon: true}},
		{"", Label{UseIcon: true}},
	}
	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			if got := LabelFor(tt.choice); got != tt.want {
				t.Errorf("LabelFor(%q) = %+v, expected %+v", tt.choice, got, tt.want)
			}
		})
	}
}

func TestIcon(t *testing.T) {
	data, err := Icon()
	if err != nil {
		t.Fatalf("Icon failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
		t.Fatalf("icon size %v", b)
	}
	// Center of the ring is a hole.
	if _, _, _, a := img.At(iconSize/2, iconSize/2).RGBA(); a != 0 {
		t.Errorf("expected a transparent center, alpha %d", a)
	}
	// Upper right wedge is opaque, lower left is faded.
	_, _, _, strong := img.At(iconSize*3/4, iconSize/4).RGBA()
	_, _, _, faded := img.At(iconSize/4, iconSize*3/4).RGBA()
	if strong <= faded || faded == 0 {
		t.Errorf("expected highlighted wedge (alpha %d) over faded (alpha %d)", strong, faded)
	}
}

func TestCheckedIndex(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		value   string
		want    int
	}{
		{"default hotkey", config.HotkeyOptions, config.DefaultHotkey, 0},
		{"last hotkey", config.HotkeyOptions, "Command+Option+R", 5},
		{"unknown hotkey", config.HotkeyOptions, "Command+Shift+Q", -1},
		{"title", config.MenubarTitleOptions, config.TitleCircle2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkedIndex(tt.options, tt.value); got != tt.want {
				t.Errorf("checkedIndex(%q) = %d, expected %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Settings: config.DefaultSettings()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(tr.icon) == 0 || len(tr.blank) == 0 {
		t.Error("expected generated icons")
	}
}
