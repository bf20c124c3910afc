package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"radial-switch/src/config"
)

type prefsOptions struct {
	path   string
	hotkey string
	title  string
}

func main() {
	if err := runWithArgs(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithArgs(args []string, out io.Writer) error {
	if len(args) == 0 {
		args = []string{"radial-prefs"}
	}
	cmd := newRootCmd(&prefsOptions{})
	cmd.SetArgs(args[1:])
	cmd.SetOut(out)
	return cmd.Execute()
}

func newRootCmd(opts *prefsOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "radial-prefs",
		Short:         "Inspect and edit the radial switcher preferences (takes effect on next launch)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.path, "prefs", "", "Preferences file (default: PREFERENCES_PATH or the user config dir)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.path)
			if err != nil {
				return err
			}
			s := config.LoadSettings(store)
			fmt.Fprintf(cmd.OutOrStdout(), "file:         %s\nhotkey:       %s\nmenubarTitle: %s\n", store.Path(), s.Hotkey, s.MenubarTitle)
			return nil
		},
	}

	options := &cobra.Command{
		Use:   "options",
		Short: "List the supported hotkeys and menu bar titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "hotkeys:")
			for _, h := range config.HotkeyOptions {
				fmt.Fprintf(w, "  %s\n", h)
			}
			fmt.Fprintln(w, "menubar titles:")
			for _, t := range config.MenubarTitleOptions {
				fmt.Fprintf(w, "  %s\n", t)
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change the hotkey and/or menu bar title",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.hotkey == "" && opts.title == "" {
				return fmt.Errorf("nothing to set: use --hotkey and/or --title")
			}
			store, err := openStore(opts.path)
			if err != nil {
				return err
			}
			s := config.LoadSettings(store)
			if opts.hotkey != "" {
				v, err := pick(config.HotkeyOptions, opts.hotkey, "hotkey")
				if err != nil {
					return err
				}
				s.Hotkey = v
			}
			if opts.title != "" {
				v, err := pick(config.MenubarTitleOptions, opts.title, "menubar title")
				if err != nil {
					return err
				}
				s.MenubarTitle = v
			}
			if err := config.SaveSettings(store, s); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved hotkey=%q menubarTitle=%q to %s\n", s.Hotkey, s.MenubarTitle, store.Path())
			return nil
		},
	}
	set.Flags().StringVar(&opts.hotkey, "hotkey", "", "Hotkey, e.g. Command+Shift+A")
	set.Flags().StringVar(&opts.title, "title", "", "Menu bar title, e.g. RAS")

	root.AddCommand(show, options, set)
	return root
}

func openStore(path string) (*config.FileStore, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{PreferencesPathOverride: path})
	if err != nil {
		return nil, err
	}
	return config.OpenFileStore(cfg.PreferencesPath)
}

// pick matches value against options case-insensitively and returns the
// canonical spelling.
func pick(options []string, value, what string) (string, error) {
	for _, opt := range options {
		if strings.EqualFold(opt, strings.TrimSpace(value)) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unsupported %s %q (see `radial-prefs options`)", what, value)
}
