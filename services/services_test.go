package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

var errDiskGone = errors.New("disk gone")

// memStore is an in-memory Persistence with switchable failures.
type memStore struct {
	mu       sync.Mutex
	accounts util.AccountsSnapshot
	settings *util.LauncherSettings
	last     *util.VersionInfo

	failRead  bool
	failWrite bool
	writes    int
}

func (m *memStore) ReadAccounts() (util.AccountsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead {
		return util.AccountsSnapshot{}, errDiskGone
	}
	return m.accounts.Clone(), nil
}

func (m *memStore) WriteAccounts(s util.AccountsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errDiskGone
	}
	m.writes++
	m.accounts = s.Clone()
	return nil
}

func (m *memStore) ReadSettings() (util.RawSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead {
		return util.RawSettings{}, errDiskGone
	}
	if m.settings == nil {
		return util.RawSettings{}, nil
	}
	s := m.settings.Clone()
	return util.RawSettings{
		GameDirectory:     &s.GameDirectory,
		AllocatedRAM:      s.AllocatedRAM,
		JVMArguments:      s.JVMArguments,
		ShowAlpha:         &s.ShowAlpha,
		ShowBeta:          &s.ShowBeta,
		ShowSnapshots:     &s.ShowSnapshots,
		ShowOldVersions:   &s.ShowOldVersions,
		ShowOnlyInstalled: &s.ShowOnlyInstalled,
		ResolutionWidth:   s.ResolutionWidth,
		ResolutionHeight:  s.ResolutionHeight,
	}, nil
}

func (m *memStore) WriteSettings(s util.LauncherSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errDiskGone
	}
	m.writes++
	c := s.Clone()
	m.settings = &c
	return nil
}

func (m *memStore) ReadLastPlayed() (*util.VersionInfo, error) {
	if m.failRead {
		return nil, errDiskGone
	}
	return m.last, nil
}

func (m *memStore) WriteLastPlayed(v util.VersionInfo) error {
	if m.failWrite {
		return errDiskGone
	}
	m.last = &v
	return nil
}

// fakeProvider scripts the authentication provider.
type fakeProvider struct {
	offline       func(username string) (util.Account, error)
	authenticated func(ctx context.Context) (util.Account, error)
	refresh       func(account util.Account) (util.Account, error)
}

func (f *fakeProvider) CreateOffline(_ context.Context, username string) (util.Account, error) {
	if f.offline == nil {
		return util.Account{Id: "offline-" + username, Name: username, Type: util.AccountOffline, Skins: []util.Skin{}, Capes: []util.Cape{}}, nil
	}
	return f.offline(username)
}

func (f *fakeProvider) CreateAuthenticated(ctx context.Context) (util.Account, error) {
	return f.authenticated(ctx)
}

func (f *fakeProvider) Refresh(_ context.Context, account util.Account) (util.Account, error) {
	return f.refresh(account)
}

func quietLogger() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard)
}

func seeded(accounts ...util.Account) *memStore {
	return &memStore{accounts: util.AccountsSnapshot{Accounts: accounts}}
}
