package fileutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/mclauncher/util"
	"golang.org/x/mod/semver"
)

const (
	StateFileName = "launcher.json"
	FormatVersion = "v1.0.0"
)

// Store keeps accounts, settings and the last played version in one JSON file.
// Each write replaces only its own subtree so accounts and settings never
// clobber each other.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, StateFileName)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) ReadAccounts() (util.AccountsSnapshot, error) {
	data, err := s.read()
	if err != nil {
		return util.AccountsSnapshot{}, err
	}
	snapshot, err := util.ParseSnapshot(data)
	if err != nil {
		return util.AccountsSnapshot{}, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	return snapshot, nil
}

func (s *Store) WriteAccounts(snapshot util.AccountsSnapshot) error {
	return s.update(func(data []byte) ([]byte, error) {
		accounts := snapshot.Accounts
		if accounts == nil {
			accounts = []util.Account{}
		}
		encoded, err := json.Marshal(accounts)
		if err != nil {
			return nil, err
		}
		data, err = jsonparser.Set(data, encoded, "accounts")
		if err != nil {
			return nil, err
		}

		if snapshot.SelectedAccount == "" {
			return jsonparser.Delete(data, "selectedAccount"), nil
		}
		selected, err := json.Marshal(snapshot.SelectedAccount)
		if err != nil {
			return nil, err
		}
		return jsonparser.Set(data, selected, "selectedAccount")
	})
}

// ReadSettings returns only what is on disk; defaults are applied by the caller.
func (s *Store) ReadSettings() (util.RawSettings, error) {
	data, err := s.read()
	if err != nil {
		return util.RawSettings{}, err
	}
	section, dataType, _, err := jsonparser.Get(data, "settings")
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return util.RawSettings{}, nil
	}
	if err != nil {
		return util.RawSettings{}, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	raw, err := util.ParseRawSettings(section)
	if err != nil {
		return util.RawSettings{}, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	return raw, nil
}

func (s *Store) WriteSettings(settings util.LauncherSettings) error {
	return s.update(func(data []byte) ([]byte, error) {
		encoded, err := json.Marshal(settings)
		if err != nil {
			return nil, err
		}
		return jsonparser.Set(data, encoded, "settings")
	})
}

// ReadLastPlayed returns nil when no version was ever started.
func (s *Store) ReadLastPlayed() (*util.VersionInfo, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	section, dataType, _, err := jsonparser.Get(data, "last_played_version")
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	v, err := util.ParseVersionInfo(section)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	return &v, nil
}

func (s *Store) WriteLastPlayed(version util.VersionInfo) error {
	return s.update(func(data []byte) ([]byte, error) {
		encoded, err := json.Marshal(version)
		if err != nil {
			return nil, err
		}
		return jsonparser.Set(data, encoded, "last_played_version")
	})
}

// read returns "{}" for a missing or blank state file.
func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}
	if err := checkFormat(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	return data, nil
}

func (s *Store) update(change func([]byte) ([]byte, error)) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	data, err = change(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	data, err = jsonparser.Set(data, []byte(`"`+FormatVersion+`"`), "format")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", util.ErrPersistence, s.path, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}
	return nil
}

// checkFormat refuses files written by a newer launcher.
func checkFormat(data []byte) error {
	format, err := jsonparser.GetString(data, "format")
	if err == jsonparser.KeyPathNotFoundError {
		return nil
	}
	if err != nil {
		return err
	}
	if !semver.IsValid(format) {
		return fmt.Errorf("invalid state format %q", format)
	}
	if semver.Compare(format, FormatVersion) > 0 {
		return fmt.Errorf("state format %s is newer than supported %s", format, FormatVersion)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
