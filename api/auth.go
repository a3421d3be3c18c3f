package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/pterm/pterm"
)

// Authenticator creates offline accounts locally and Microsoft accounts through
// the device code flow.
type Authenticator struct {
	ClientID string
	// Prompt shows the device code to the user. Defaults to an info line.
	Prompt func(DeviceCode)
}

func NewAuthenticator(clientID string) *Authenticator {
	return &Authenticator{ClientID: clientID}
}

func (a *Authenticator) CreateOffline(_ context.Context, username string) (util.Account, error) {
	return NewOfflineAccount(username)
}

// CreateAuthenticated blocks until the user signs in, declines, or ctx is
// cancelled.
func (a *Authenticator) CreateAuthenticated(ctx context.Context) (util.Account, error) {
	if a.ClientID == "" {
		return util.Account{}, fmt.Errorf("%w: no Microsoft client id configured", util.ErrAuthentication)
	}

	code, err := requestDeviceCode(ctx, a.ClientID)
	if err != nil {
		return util.Account{}, classify(ctx, err)
	}
	a.prompt(*code)

	token, err := pollToken(ctx, a.ClientID, code)
	if err != nil {
		return util.Account{}, classify(ctx, err)
	}
	account, err := completeLogin(ctx, token)
	if err != nil {
		return util.Account{}, classify(ctx, err)
	}
	return account, nil
}

// Refresh renews the tokens and profile of a Microsoft account. Offline
// accounts are returned unchanged.
func (a *Authenticator) Refresh(ctx context.Context, account util.Account) (util.Account, error) {
	if account.Type != util.AccountMicrosoft {
		return account, nil
	}
	if account.RefreshToken == "" {
		return util.Account{}, fmt.Errorf("%w: account %s has no refresh token", util.ErrAuthentication, account.Name)
	}

	token, err := refreshToken(ctx, a.ClientID, account.RefreshToken)
	if err != nil {
		return util.Account{}, classify(ctx, err)
	}
	if token.RefreshToken == "" {
		token.RefreshToken = account.RefreshToken
	}
	refreshed, err := completeLogin(ctx, token)
	if err != nil {
		return util.Account{}, classify(ctx, err)
	}
	return refreshed, nil
}

func (a *Authenticator) prompt(code DeviceCode) {
	if a.Prompt != nil {
		a.Prompt(code)
		return
	}
	if code.Message != "" {
		pterm.Info.Println(code.Message)
		return
	}
	pterm.Info.Printfln("Open %s and enter the code %s", code.VerificationURI, code.UserCode)
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, util.ErrAuthenticationCancelled) {
		return err
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return fmt.Errorf("%w: %v", util.ErrAuthenticationCancelled, err)
	}
	return fmt.Errorf("%w: %v", util.ErrAuthentication, err)
}
