package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/text"
	"github.com/mrnavastar/mclauncher/services"
	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

type setting struct {
	set   func(s *util.LauncherSettings, value string) error
	unset func(s *util.LauncherSettings)
	show  func(s util.LauncherSettings) string
}

func boolSetting(field func(s *util.LauncherSettings) *bool) setting {
	return setting{
		set: func(s *util.LauncherSettings, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", util.ErrInvalidArgument, value)
			}
			*field(s) = b
			return nil
		},
		unset: func(s *util.LauncherSettings) { *field(s) = false },
		show:  func(s util.LauncherSettings) string { return strconv.FormatBool(*field(&s)) },
	}
}

func intSetting(field func(s *util.LauncherSettings) **int) setting {
	return setting{
		set: func(s *util.LauncherSettings, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", util.ErrInvalidArgument, value)
			}
			*field(s) = &n
			return nil
		},
		unset: func(s *util.LauncherSettings) { *field(s) = nil },
		show: func(s util.LauncherSettings) string {
			if v := *field(&s); v != nil {
				return strconv.Itoa(*v)
			}
			return "(default)"
		},
	}
}

var settingKeys = map[string]setting{
	"gameDirectory": {
		set:   func(s *util.LauncherSettings, value string) error { s.GameDirectory = value; return nil },
		unset: func(s *util.LauncherSettings) { s.GameDirectory = "" },
		show: func(s util.LauncherSettings) string {
			if s.GameDirectory == "" {
				return "(default) " + util.MinecraftDirectory()
			}
			return s.GameDirectory
		},
	},
	"jvmArguments": {
		set:   func(s *util.LauncherSettings, value string) error { s.JVMArguments = &value; return nil },
		unset: func(s *util.LauncherSettings) { s.JVMArguments = nil },
		show: func(s util.LauncherSettings) string {
			if s.JVMArguments == nil {
				return "(none)"
			}
			return *s.JVMArguments
		},
	},
	"allocatedRAM":      intSetting(func(s *util.LauncherSettings) **int { return &s.AllocatedRAM }),
	"resolutionWidth":   intSetting(func(s *util.LauncherSettings) **int { return &s.ResolutionWidth }),
	"resolutionHeight":  intSetting(func(s *util.LauncherSettings) **int { return &s.ResolutionHeight }),
	"showAlpha":         boolSetting(func(s *util.LauncherSettings) *bool { return &s.ShowAlpha }),
	"showBeta":          boolSetting(func(s *util.LauncherSettings) *bool { return &s.ShowBeta }),
	"showSnapshots":     boolSetting(func(s *util.LauncherSettings) *bool { return &s.ShowSnapshots }),
	"showOldVersions":   boolSetting(func(s *util.LauncherSettings) *bool { return &s.ShowOldVersions }),
	"showOnlyInstalled": boolSetting(func(s *util.LauncherSettings) *bool { return &s.ShowOnlyInstalled }),
}

// applySetting changes one key on a copy of the settings.
func applySetting(current util.LauncherSettings, key, value string, unset bool) (util.LauncherSettings, error) {
	def, ok := settingKeys[key]
	if !ok {
		return current, fmt.Errorf("%w: unknown setting %q", util.ErrInvalidArgument, key)
	}
	next := current.Clone()
	if unset {
		def.unset(&next)
		return next, nil
	}
	if err := def.set(&next, value); err != nil {
		return current, err
	}
	return next, nil
}

func changeSetting(c *cli.Context, key, value string, unset bool) error {
	l, err := open(c)
	if err != nil {
		return err
	}
	next, err := applySetting(l.settings.Load(), key, value, unset)
	if err != nil {
		return err
	}

	if key == "allocatedRAM" && next.AllocatedRAM != nil {
		if total, err := services.TotalRAM(); err == nil && uint64(*next.AllocatedRAM) > total {
			pterm.Warning.Printfln("%d MB is more than the %d MB installed", *next.AllocatedRAM, total)
		}
	}

	if err := l.settings.Save(next); err != nil {
		return err
	}
	printSettings(l.settings.Current())
	return nil
}

func printSettings(s util.LauncherSettings) {
	keys := make([]string, 0, len(settingKeys))
	width := 0
	for key := range settingKeys {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)

	fmt.Println()
	for _, key := range keys {
		fmt.Println(text.AlignDefault.Apply(text.Bold.Sprint(key), width+2) + settingKeys[key].show(s))
	}
	fmt.Println()
}
