package util

import (
	"strings"
	"time"
)

const (
	AccountOffline   = "offline"
	AccountMicrosoft = "microsoft"
)

type Skin struct {
	Id         string `json:"id"`
	State      string `json:"state"`
	Url        string `json:"url"`
	Variant    string `json:"variant"`
	TextureKey string `json:"textureKey,omitempty"`
}

type Cape struct {
	Id    string `json:"id"`
	State string `json:"state"`
	Url   string `json:"url"`
	Alias string `json:"alias"`
}

// Account is one usable game identity. An empty Error means the account is
// healthy; empty tokens mean it was never authenticated.
type Account struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Skins        []Skin `json:"skins"`
	Capes        []Cape `json:"capes"`
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage"`

	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Eligible reports whether the account may be used to start the game.
func (a Account) Eligible() bool {
	return a.Id != "" && a.Error == ""
}

func (a Account) Clone() Account {
	c := a
	if a.Skins != nil {
		c.Skins = append([]Skin{}, a.Skins...)
	}
	if a.Capes != nil {
		c.Capes = append([]Cape{}, a.Capes...)
	}
	return c
}

// AccountsSnapshot is a point-in-time read of the account registry.
// An empty SelectedAccount means nothing is selected.
type AccountsSnapshot struct {
	SelectedAccount string    `json:"selectedAccount,omitempty"`
	Accounts        []Account `json:"accounts,omitempty"`
}

// Selected returns the selected account. A selection that does not reference a
// known account is treated as absent.
func (s AccountsSnapshot) Selected() (Account, bool) {
	if s.SelectedAccount == "" {
		return Account{}, false
	}
	return s.Get(s.SelectedAccount)
}

func (s AccountsSnapshot) Get(id string) (Account, bool) {
	for _, acc := range s.Accounts {
		if acc.Id == id {
			return acc, true
		}
	}
	return Account{}, false
}

// Find looks an account up by id, then by name ignoring case.
func (s AccountsSnapshot) Find(ref string) (Account, bool) {
	if acc, ok := s.Get(ref); ok {
		return acc, true
	}
	for _, acc := range s.Accounts {
		if strings.EqualFold(acc.Name, ref) {
			return acc, true
		}
	}
	return Account{}, false
}

func (s AccountsSnapshot) Clone() AccountsSnapshot {
	c := AccountsSnapshot{SelectedAccount: s.SelectedAccount}
	if s.Accounts != nil {
		c.Accounts = make([]Account, 0, len(s.Accounts))
		for _, acc := range s.Accounts {
			c.Accounts = append(c.Accounts, acc.Clone())
		}
	}
	return c
}

// LauncherSettings is the fully resolved set of user preferences. Optional
// numeric and string fields are nil when unset.
type LauncherSettings struct {
	GameDirectory     string  `json:"gameDirectory"`
	AllocatedRAM      *int    `json:"allocatedRAM,omitempty"`
	JVMArguments      *string `json:"jvmArguments,omitempty"`
	ShowAlpha         bool    `json:"showAlpha"`
	ShowBeta          bool    `json:"showBeta"`
	ShowSnapshots     bool    `json:"showSnapshots"`
	ShowOldVersions   bool    `json:"showOldVersions"`
	ShowOnlyInstalled bool    `json:"showOnlyInstalled"`
	ResolutionWidth   *int    `json:"resolutionWidth,omitempty"`
	ResolutionHeight  *int    `json:"resolutionHeight,omitempty"`
}

// RawSettings is whatever the backing store had. Every field may be missing.
type RawSettings struct {
	GameDirectory     *string
	AllocatedRAM      *int
	JVMArguments      *string
	ShowAlpha         *bool
	ShowBeta          *bool
	ShowSnapshots     *bool
	ShowOldVersions   *bool
	ShowOnlyInstalled *bool
	ResolutionWidth   *int
	ResolutionHeight  *int
}

type VersionType string

const (
	VersionRelease  VersionType = "release"
	VersionSnapshot VersionType = "snapshot"
	VersionOldBeta  VersionType = "old_beta"
	VersionOldAlpha VersionType = "old_alpha"
)

type VersionInfo struct {
	Id              string      `json:"id"`
	Type            VersionType `json:"type"`
	ReleaseTime     time.Time   `json:"releaseTime"`
	ComplianceLevel int         `json:"complianceLevel"`
}

// StartOptions is handed to the launch collaborator. A nil Version is not
// launchable.
type StartOptions struct {
	Version *VersionInfo `json:"version"`
}

// LaunchOptions is everything the game process needs from the launcher state.
type LaunchOptions struct {
	Version          VersionInfo `json:"version"`
	Username         string      `json:"username"`
	Uuid             string      `json:"uuid"`
	Token            string      `json:"token"`
	GameDirectory    string      `json:"gameDirectory"`
	JvmArguments     []string    `json:"jvmArguments,omitempty"`
	CustomResolution bool        `json:"customResolution,omitempty"`
	ResolutionWidth  string      `json:"resolutionWidth,omitempty"`
	ResolutionHeight string      `json:"resolutionHeight,omitempty"`
}
