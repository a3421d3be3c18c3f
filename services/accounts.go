package services

import (
	"fmt"
	"sync"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

// Registry owns the set of known accounts and the selection. Callers get
// copies; every change goes through Select, Delete or the Session.
//
// Mutating calls must not overlap. The mutex only keeps memory consistent if
// they do, the persisted result is then whichever write landed last.
type Registry struct {
	store  Persistence
	logger *pterm.Logger

	mu       sync.Mutex
	snapshot util.AccountsSnapshot
}

func NewRegistry(store Persistence, logger *pterm.Logger) *Registry {
	return &Registry{store: store, logger: loggerOrDefault(logger)}
}

// Load re-reads accounts from the store. On failure the returned snapshot is
// empty and the error wraps util.ErrPersistence.
func (r *Registry) Load() (util.AccountsSnapshot, error) {
	snapshot, err := r.store.ReadAccounts()
	if err != nil {
		return util.AccountsSnapshot{}, wrapPersistence(err)
	}

	r.mu.Lock()
	r.snapshot = snapshot.Clone()
	r.mu.Unlock()
	return snapshot.Clone(), nil
}

// LoadOrEmpty is Load for presentation code: a failure is logged and shown as
// an empty registry.
func (r *Registry) LoadOrEmpty() util.AccountsSnapshot {
	snapshot, err := r.Load()
	if err != nil {
		r.logger.Warn("Could not load accounts", r.logger.Args("error", err))
		return util.AccountsSnapshot{}
	}
	return snapshot
}

// Snapshot returns the last state read or written without touching the store.
func (r *Registry) Snapshot() util.AccountsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot.Clone()
}

func (r *Registry) Select(id string) (util.AccountsSnapshot, error) {
	return r.mutate(func(s *util.AccountsSnapshot) error {
		if _, ok := s.Get(id); !ok {
			return fmt.Errorf("%w: %s", util.ErrNotFound, id)
		}
		s.SelectedAccount = id
		return nil
	})
}

// Delete removes the account and clears the selection if it pointed at it.
func (r *Registry) Delete(id string) (util.AccountsSnapshot, error) {
	return r.mutate(func(s *util.AccountsSnapshot) error {
		kept := make([]util.Account, 0, len(s.Accounts))
		for _, acc := range s.Accounts {
			if acc.Id != id {
				kept = append(kept, acc)
			}
		}
		if len(kept) == len(s.Accounts) {
			return fmt.Errorf("%w: %s", util.ErrNotFound, id)
		}
		s.Accounts = kept
		if s.SelectedAccount == id {
			s.SelectedAccount = ""
		}
		return nil
	})
}

// Find resolves an id or a case-insensitive name against the stored accounts.
func (r *Registry) Find(ref string) (util.Account, error) {
	snapshot, err := r.Load()
	if err != nil {
		return util.Account{}, err
	}
	acc, ok := snapshot.Find(ref)
	if !ok {
		return util.Account{}, fmt.Errorf("%w: %s", util.ErrNotFound, ref)
	}
	return acc, nil
}

func (r *Registry) insert(account util.Account) error {
	_, err := r.mutate(func(s *util.AccountsSnapshot) error {
		if _, ok := s.Get(account.Id); ok {
			return fmt.Errorf("%w: %s (%s)", util.ErrAccountExists, account.Name, account.Id)
		}
		s.Accounts = append(s.Accounts, account.Clone())
		return nil
	})
	return err
}

func (r *Registry) replace(account util.Account) error {
	_, err := r.mutate(func(s *util.AccountsSnapshot) error {
		for i, acc := range s.Accounts {
			if acc.Id == account.Id {
				s.Accounts[i] = account.Clone()
				return nil
			}
		}
		return fmt.Errorf("%w: %s", util.ErrNotFound, account.Id)
	})
	return err
}

// mutate applies change to a fresh read of the store and persists it. Memory is
// only updated once the write succeeded.
func (r *Registry) mutate(change func(*util.AccountsSnapshot) error) (util.AccountsSnapshot, error) {
	current, err := r.store.ReadAccounts()
	if err != nil {
		return util.AccountsSnapshot{}, wrapPersistence(err)
	}

	next := current.Clone()
	if err := change(&next); err != nil {
		return util.AccountsSnapshot{}, err
	}
	if err := r.store.WriteAccounts(next); err != nil {
		return util.AccountsSnapshot{}, wrapPersistence(err)
	}

	r.mu.Lock()
	r.snapshot = next.Clone()
	r.mu.Unlock()
	return next, nil
}
