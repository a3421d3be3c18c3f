package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

const refreshFailed = "RefreshFailed"

// Session turns user intent into provider calls and always finishes with a
// full registry reload, so callers see the stored state rather than whatever
// the provider echoed back.
type Session struct {
	registry *Registry
	provider AuthProvider
	logger   *pterm.Logger
}

func NewSession(registry *Registry, provider AuthProvider, logger *pterm.Logger) *Session {
	return &Session{registry: registry, provider: provider, logger: loggerOrDefault(logger)}
}

func (s *Session) AddOfflineAccount(ctx context.Context, username string) (util.AccountsSnapshot, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return util.AccountsSnapshot{}, fmt.Errorf("%w: username is required", util.ErrInvalidArgument)
	}

	account, err := s.provider.CreateOffline(ctx, username)
	if err != nil {
		return util.AccountsSnapshot{}, authError(err)
	}
	return s.commit(account)
}

// AddAuthenticatedAccount runs the interactive sign in. Cancelling ctx or
// declining in the browser yields util.ErrAuthenticationCancelled and leaves
// the registry untouched.
func (s *Session) AddAuthenticatedAccount(ctx context.Context) (util.AccountsSnapshot, error) {
	account, err := s.provider.CreateAuthenticated(ctx)
	if err != nil {
		return util.AccountsSnapshot{}, authError(err)
	}
	return s.commit(account)
}

// RefreshAccount renews an account's tokens and profile. A provider failure is
// recorded on the account so it stops being launch eligible, and is returned.
func (s *Session) RefreshAccount(ctx context.Context, id string) (util.AccountsSnapshot, error) {
	current, err := s.registry.Load()
	if err != nil {
		return util.AccountsSnapshot{}, err
	}
	account, ok := current.Get(id)
	if !ok {
		return util.AccountsSnapshot{}, fmt.Errorf("%w: %s", util.ErrNotFound, id)
	}

	refreshed, refreshErr := s.provider.Refresh(ctx, account)
	if refreshErr != nil {
		if errors.Is(refreshErr, util.ErrAuthenticationCancelled) {
			return util.AccountsSnapshot{}, refreshErr
		}
		s.logger.Warn("Account refresh failed", s.logger.Args("account", account.Name, "error", refreshErr))
		degraded := account.Clone()
		degraded.Error = refreshFailed
		degraded.ErrorMessage = refreshErr.Error()
		if err := s.registry.replace(degraded); err != nil {
			return util.AccountsSnapshot{}, err
		}
		if _, err := s.registry.Load(); err != nil {
			return util.AccountsSnapshot{}, err
		}
		return util.AccountsSnapshot{}, authError(refreshErr)
	}

	// the provider may not echo the id for an unchanged profile
	refreshed.Id = account.Id
	refreshed.Error = ""
	refreshed.ErrorMessage = ""
	if err := s.registry.replace(refreshed); err != nil {
		return util.AccountsSnapshot{}, err
	}
	return s.registry.Load()
}

func (s *Session) commit(account util.Account) (util.AccountsSnapshot, error) {
	if account.Id == "" {
		return util.AccountsSnapshot{}, fmt.Errorf("%w: provider returned an account without id", util.ErrAuthentication)
	}
	if err := s.registry.insert(account); err != nil {
		if errors.Is(err, util.ErrAccountExists) {
			return util.AccountsSnapshot{}, fmt.Errorf("%w: %w", util.ErrAuthentication, err)
		}
		return util.AccountsSnapshot{}, err
	}
	s.logger.Info("Account added", s.logger.Args("name", account.Name, "type", account.Type))
	return s.registry.Load()
}

func authError(err error) error {
	if errors.Is(err, util.ErrAuthentication) || errors.Is(err, util.ErrAuthenticationCancelled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", util.ErrAuthenticationCancelled, err)
	}
	return fmt.Errorf("%w: %v", util.ErrAuthentication, err)
}
