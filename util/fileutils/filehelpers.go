package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "mclauncher"
	keyringDirKey  = "launcher_dir"
)

// Setup remembers dir as the launcher directory and prepares its state file.
func Setup(dir string) (*Store, error) {
	if dir == "" {
		def, err := DefaultLauncherDir()
		if err != nil {
			return nil, err
		}
		dir = def
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := keyring.Set(keyringService, keyringDirKey, dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	store := NewStore(dir)
	if _, err := MigrateLegacy(dir); err != nil {
		return nil, err
	}
	if err := EnsureFileExists(store.Path(), []byte("{}")); err != nil {
		return nil, err
	}
	return store, nil
}

// LauncherDir resolves the launcher directory: the explicit override, then the
// keyring entry written by Setup, then the user config directory.
func LauncherDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := keyring.Get(keyringService, keyringDirKey)
	if err == nil && dir != "" {
		return dir, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", err
	}
	return DefaultLauncherDir()
}

func DefaultLauncherDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mclauncher"), nil
}

func EnsureFileExists(path string, initial []byte) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return os.WriteFile(path, initial, 0600)
	}
	return err
}

// GetInstalledVersions lists versions/<id>/<id>.json under the game directory,
// newest first. Entries that fail to parse are skipped.
func GetInstalledVersions(gameDir string) ([]util.VersionInfo, error) {
	entries, err := os.ReadDir(filepath.Join(gameDir, "versions"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var versions []util.VersionInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(gameDir, "versions", entry.Name(), entry.Name()+".json"))
		if err != nil {
			continue
		}
		v, err := util.ParseVersionInfo(data)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].ReleaseTime.After(versions[j].ReleaseTime)
	})
	return versions, nil
}
