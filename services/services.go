package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

// Persistence is the backing store for accounts and settings.
type Persistence interface {
	ReadAccounts() (util.AccountsSnapshot, error)
	WriteAccounts(util.AccountsSnapshot) error
	ReadSettings() (util.RawSettings, error)
	WriteSettings(util.LauncherSettings) error
}

// AuthProvider creates and refreshes accounts. CreateAuthenticated may block for
// as long as the user takes to sign in.
type AuthProvider interface {
	CreateOffline(ctx context.Context, username string) (util.Account, error)
	CreateAuthenticated(ctx context.Context) (util.Account, error)
	Refresh(ctx context.Context, account util.Account) (util.Account, error)
}

func loggerOrDefault(logger *pterm.Logger) *pterm.Logger {
	if logger != nil {
		return logger
	}
	return &pterm.DefaultLogger
}

func wrapPersistence(err error) error {
	if errors.Is(err, util.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", util.ErrPersistence, err)
}
