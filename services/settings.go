package services

import (
	"sync"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

// SettingsStore holds the launcher preferences. There is no partial update:
// callers read, modify and Save the whole value.
type SettingsStore struct {
	store  Persistence
	logger *pterm.Logger

	mu      sync.Mutex
	current util.LauncherSettings
}

func NewSettingsStore(store Persistence, logger *pterm.Logger) *SettingsStore {
	return &SettingsStore{store: store, logger: loggerOrDefault(logger)}
}

// Load never fails. Unreadable settings are logged and replaced by defaults.
func (s *SettingsStore) Load() util.LauncherSettings {
	raw, err := s.store.ReadSettings()
	if err != nil {
		s.logger.Warn("Could not read launcher settings, using defaults", s.logger.Args("error", err))
		raw = util.RawSettings{}
	}
	settings := util.ResolveSettings(raw)

	s.mu.Lock()
	s.current = settings.Clone()
	s.mu.Unlock()
	return settings
}

// Save replaces the stored settings. On error the previous value stays current.
func (s *SettingsStore) Save(settings util.LauncherSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.WriteSettings(settings.Clone()); err != nil {
		return wrapPersistence(err)
	}

	s.mu.Lock()
	s.current = settings.Clone()
	s.mu.Unlock()
	return nil
}

func (s *SettingsStore) Current() util.LauncherSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}
