package fileutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/mclauncher/util"
)

const LegacyStateFileName = "launcherCache.json"

// MigrateLegacy converts launcherCache.json from older launcher builds into the
// current state file. It does nothing when the state file already exists or
// there is no legacy file. The legacy file is kept as launcherCache.json.bak.
func MigrateLegacy(dir string) (bool, error) {
	statePath := filepath.Join(dir, StateFileName)
	if _, err := os.Stat(statePath); err == nil {
		return false, nil
	}

	legacyPath := filepath.Join(dir, LegacyStateFileName)
	data, err := os.ReadFile(legacyPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	if _, err := util.ParseSnapshot(data); err != nil {
		return false, fmt.Errorf("%w: legacy accounts: %v", util.ErrPersistence, err)
	}
	if settings, dataType, _, err := jsonparser.Get(data, "settings"); err == nil && dataType == jsonparser.Object {
		if _, err := util.ParseRawSettings(settings); err != nil {
			return false, fmt.Errorf("%w: legacy settings: %v", util.ErrPersistence, err)
		}
	}

	data, err = jsonparser.Set(data, []byte(`"`+FormatVersion+`"`), "format")
	if err != nil {
		return false, err
	}
	if err := writeFileAtomic(statePath, data); err != nil {
		return false, err
	}
	return true, os.Rename(legacyPath, legacyPath+".bak")
}
