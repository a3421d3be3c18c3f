package util

import "fmt"

// ResolveSettings fills every field the backing store left out. Booleans default
// to false, the game directory to "" (platform default) and optional numbers
// stay unset.
func ResolveSettings(raw RawSettings) LauncherSettings {
	s := LauncherSettings{
		AllocatedRAM:      copyInt(raw.AllocatedRAM),
		JVMArguments:      copyString(raw.JVMArguments),
		ShowAlpha:         boolOr(raw.ShowAlpha, false),
		ShowBeta:          boolOr(raw.ShowBeta, false),
		ShowSnapshots:     boolOr(raw.ShowSnapshots, false),
		ShowOldVersions:   boolOr(raw.ShowOldVersions, false),
		ShowOnlyInstalled: boolOr(raw.ShowOnlyInstalled, false),
		ResolutionWidth:   copyInt(raw.ResolutionWidth),
		ResolutionHeight:  copyInt(raw.ResolutionHeight),
	}
	if raw.GameDirectory != nil {
		s.GameDirectory = *raw.GameDirectory
	}
	return s
}

func (s LauncherSettings) Clone() LauncherSettings {
	c := s
	c.AllocatedRAM = copyInt(s.AllocatedRAM)
	c.JVMArguments = copyString(s.JVMArguments)
	c.ResolutionWidth = copyInt(s.ResolutionWidth)
	c.ResolutionHeight = copyInt(s.ResolutionHeight)
	return c
}

func (s LauncherSettings) Validate() error {
	if s.AllocatedRAM != nil && *s.AllocatedRAM <= 0 {
		return fmt.Errorf("%w: allocated RAM must be positive, got %d", ErrInvalidArgument, *s.AllocatedRAM)
	}
	// width and height are stored independently; a custom resolution is only
	// used once both are set
	if s.ResolutionWidth != nil && *s.ResolutionWidth <= 0 {
		return fmt.Errorf("%w: resolution width must be positive, got %d", ErrInvalidArgument, *s.ResolutionWidth)
	}
	if s.ResolutionHeight != nil && *s.ResolutionHeight <= 0 {
		return fmt.Errorf("%w: resolution height must be positive, got %d", ErrInvalidArgument, *s.ResolutionHeight)
	}
	return nil
}

// Directory is the game directory, falling back to the platform default.
func (s LauncherSettings) Directory() string {
	if s.GameDirectory != "" {
		return s.GameDirectory
	}
	return MinecraftDirectory()
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
