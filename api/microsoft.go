package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/tidwall/gjson"
)

var (
	MICROSOFT_DEVICE_CODE_URL = "https://login.microsoftonline.com/consumers/oauth2/v2.0/devicecode"
	MICROSOFT_TOKEN_URL       = "https://login.microsoftonline.com/consumers/oauth2/v2.0/token"
	XBL_AUTH_URL              = "https://user.auth.xboxlive.com/user/authenticate"
	XSTS_AUTH_URL             = "https://xsts.auth.xboxlive.com/xsts/authorize"
	MINECRAFT_LOGIN_URL       = "https://api.minecraftservices.com/authentication/login_with_xbox"
	MINECRAFT_PROFILE_URL     = "https://api.minecraftservices.com/minecraft/profile"
)

const scope = "XboxLive.signin offline_access"

// pollUnit scales the polling interval the device code endpoint asks for.
var pollUnit = time.Second

// DeviceCode is what the user needs to finish signing in on another device.
type DeviceCode struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
	Message         string `json:"message"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type xboxToken struct {
	Token    string
	UserHash string
}

func requestDeviceCode(ctx context.Context, clientID string) (*DeviceCode, error) {
	var code DeviceCode
	resp, err := client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id": clientID,
			"scope":     scope,
		}).
		SetResult(&code).
		Post(MICROSOFT_DEVICE_CODE_URL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("device code: %s: %s", resp.Status(), gjson.GetBytes(resp.Body(), "error_description").String())
	}
	if code.DeviceCode == "" {
		return nil, errors.New("device code: empty response")
	}
	return &code, nil
}

// pollToken waits until the user finishes signing in, declines, or the code
// expires.
func pollToken(ctx context.Context, clientID string, code *DeviceCode) (*tokenResponse, error) {
	interval := code.Interval
	if interval <= 0 {
		interval = 5
	}

	for {
		timer := time.NewTimer(time.Duration(interval) * pollUnit)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		// pending and declined sign ins come back as 400 with an error body
		var token tokenResponse
		resp, err := client.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"client_id":   clientID,
				"grant_type":  "urn:ietf:params:oauth:grant-type:device_code",
				"device_code": code.DeviceCode,
			}).
			SetResult(&token).
			SetError(&token).
			Post(MICROSOFT_TOKEN_URL)
		if err != nil {
			return nil, err
		}

		switch token.Error {
		case "":
			if resp.IsError() {
				return nil, fmt.Errorf("token: %s", resp.Status())
			}
			if token.AccessToken == "" {
				return nil, errors.New("token: empty access token")
			}
			return &token, nil
		case "authorization_pending":
		case "slow_down":
			interval += 5
		case "authorization_declined":
			return nil, util.ErrAuthenticationCancelled
		case "expired_token":
			return nil, errors.New("device code expired before sign in finished")
		default:
			return nil, fmt.Errorf("token: %s: %s", token.Error, token.ErrorDescription)
		}
	}
}

func refreshToken(ctx context.Context, clientID, refresh string) (*tokenResponse, error) {
	var token tokenResponse
	resp, err := client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     clientID,
			"scope":         scope,
			"grant_type":    "refresh_token",
			"refresh_token": refresh,
		}).
		SetResult(&token).
		SetError(&token).
		Post(MICROSOFT_TOKEN_URL)
	if err != nil {
		return nil, err
	}
	if token.Error != "" {
		return nil, fmt.Errorf("refresh: %s: %s", token.Error, token.ErrorDescription)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("refresh: %s", resp.Status())
	}
	if token.AccessToken == "" {
		return nil, errors.New("refresh: empty access token")
	}
	return &token, nil
}

func authenticateWithXBL(ctx context.Context, accessToken string) (*xboxToken, error) {
	body := map[string]any{
		"Properties": map[string]any{
			"AuthMethod": "RPS",
			"SiteName":   "user.auth.xboxlive.com",
			"RpsTicket":  "d=" + accessToken,
		},
		"RelyingParty": "http://auth.xboxlive.com",
		"TokenType":    "JWT",
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(XBL_AUTH_URL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("xbox live: %s", resp.Status())
	}

	token := gjson.GetBytes(resp.Body(), "Token").String()
	hash := gjson.GetBytes(resp.Body(), "DisplayClaims.xui.0.uhs").String()
	if token == "" || hash == "" {
		return nil, errors.New("xbox live: incomplete response")
	}
	return &xboxToken{Token: token, UserHash: hash}, nil
}

func authenticateWithXSTS(ctx context.Context, xblToken string) (*xboxToken, error) {
	body := map[string]any{
		"Properties": map[string]any{
			"SandboxId":  "RETAIL",
			"UserTokens": []string{xblToken},
		},
		"RelyingParty": "rp://api.minecraftservices.com/",
		"TokenType":    "JWT",
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(XSTS_AUTH_URL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if xerr := gjson.GetBytes(resp.Body(), "XErr"); xerr.Exists() {
			return nil, fmt.Errorf("xsts: %s (XErr %d)", xstsReason(xerr.Int()), xerr.Int())
		}
		return nil, fmt.Errorf("xsts: %s", resp.Status())
	}

	token := gjson.GetBytes(resp.Body(), "Token").String()
	hash := gjson.GetBytes(resp.Body(), "DisplayClaims.xui.0.uhs").String()
	if token == "" || hash == "" {
		return nil, errors.New("xsts: incomplete response")
	}
	return &xboxToken{Token: token, UserHash: hash}, nil
}

func xstsReason(code int64) string {
	switch code {
	case 2148916233:
		return "the account has no Xbox profile"
	case 2148916235:
		return "Xbox Live is not available in the account's country"
	case 2148916238:
		return "the account belongs to a child and must be added to a family"
	default:
		return "authorization refused"
	}
}

func authenticateWithMinecraft(ctx context.Context, userHash, xstsToken string) (string, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"identityToken": "XBL3.0 x=" + userHash + ";" + xstsToken,
		}).
		Post(MINECRAFT_LOGIN_URL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("minecraft login: %s", resp.Status())
	}

	token := gjson.GetBytes(resp.Body(), "access_token").String()
	if token == "" {
		return "", errors.New("AzureAppNotPermitted")
	}
	return token, nil
}

// getProfile fetches the Minecraft profile; skins and capes are validated with
// the same parser used for stored accounts.
func getProfile(ctx context.Context, accessToken string) (util.Account, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get(MINECRAFT_PROFILE_URL)
	if err != nil {
		return util.Account{}, err
	}
	if gjson.GetBytes(resp.Body(), "error").String() == "NOT_FOUND" || resp.StatusCode() == 404 {
		return util.Account{}, errors.New("AccountNotOwnMinecraft")
	}
	if resp.IsError() {
		return util.Account{}, fmt.Errorf("profile: %s", resp.Status())
	}

	account, err := util.ParseAccount(resp.Body())
	if err != nil {
		return util.Account{}, fmt.Errorf("profile: %v", err)
	}
	return account, nil
}

// completeLogin turns a Microsoft token into a Minecraft account.
func completeLogin(ctx context.Context, token *tokenResponse) (util.Account, error) {
	xbl, err := authenticateWithXBL(ctx, token.AccessToken)
	if err != nil {
		return util.Account{}, err
	}
	xsts, err := authenticateWithXSTS(ctx, xbl.Token)
	if err != nil {
		return util.Account{}, err
	}
	mcToken, err := authenticateWithMinecraft(ctx, xsts.UserHash, xsts.Token)
	if err != nil {
		return util.Account{}, err
	}
	account, err := getProfile(ctx, mcToken)
	if err != nil {
		return util.Account{}, err
	}

	account.Type = util.AccountMicrosoft
	account.AccessToken = mcToken
	account.RefreshToken = token.RefreshToken
	account.Error = ""
	account.ErrorMessage = ""
	return account, nil
}
