package util

import (
	"bytes"
	"fmt"
	"time"

	"github.com/buger/jsonparser"
)

// The Parse* functions turn untyped JSON into validated values. Missing optional
// fields take their zero value, sequences default to empty, and any field of the
// wrong type is reported as ErrInvalidArgument.

func ParseSkin(data []byte) (Skin, error) {
	if err := expectObject(data, "skin"); err != nil {
		return Skin{}, err
	}
	var s Skin
	var err error
	if s.Id, err = stringField(data, "id"); err != nil {
		return Skin{}, err
	}
	if s.State, err = stringField(data, "state"); err != nil {
		return Skin{}, err
	}
	if s.Url, err = stringField(data, "url"); err != nil {
		return Skin{}, err
	}
	if s.Variant, err = stringField(data, "variant"); err != nil {
		return Skin{}, err
	}
	if s.TextureKey, err = stringField(data, "textureKey"); err != nil {
		return Skin{}, err
	}
	return s, nil
}

func ParseCape(data []byte) (Cape, error) {
	if err := expectObject(data, "cape"); err != nil {
		return Cape{}, err
	}
	var c Cape
	var err error
	if c.Id, err = stringField(data, "id"); err != nil {
		return Cape{}, err
	}
	if c.State, err = stringField(data, "state"); err != nil {
		return Cape{}, err
	}
	if c.Url, err = stringField(data, "url"); err != nil {
		return Cape{}, err
	}
	if c.Alias, err = stringField(data, "alias"); err != nil {
		return Cape{}, err
	}
	return c, nil
}

func ParseAccount(data []byte) (Account, error) {
	if err := expectObject(data, "account"); err != nil {
		return Account{}, err
	}

	var a Account
	fields := []struct {
		key string
		dst *string
	}{
		{"id", &a.Id},
		{"name", &a.Name},
		{"type", &a.Type},
		{"error", &a.Error},
		{"errorMessage", &a.ErrorMessage},
		{"access_token", &a.AccessToken},
		{"refresh_token", &a.RefreshToken},
	}
	for _, f := range fields {
		v, err := stringField(data, f.key)
		if err != nil {
			return Account{}, err
		}
		*f.dst = v
	}
	if a.Id == "" {
		return Account{}, fmt.Errorf("%w: account id is empty", ErrInvalidArgument)
	}

	skins, err := parseArray(data, "skins", ParseSkin)
	if err != nil {
		return Account{}, err
	}
	capes, err := parseArray(data, "capes", ParseCape)
	if err != nil {
		return Account{}, err
	}
	a.Skins = skins
	a.Capes = capes
	return a, nil
}

// ParseSnapshot also checks that account ids are unique. A selection pointing at
// an unknown account is kept; consumers treat it as absent.
func ParseSnapshot(data []byte) (AccountsSnapshot, error) {
	if err := expectObject(data, "accounts"); err != nil {
		return AccountsSnapshot{}, err
	}
	selected, err := stringField(data, "selectedAccount")
	if err != nil {
		return AccountsSnapshot{}, err
	}
	accounts, err := parseArray(data, "accounts", ParseAccount)
	if err != nil {
		return AccountsSnapshot{}, err
	}

	seen := make(map[string]struct{}, len(accounts))
	for _, acc := range accounts {
		if _, dup := seen[acc.Id]; dup {
			return AccountsSnapshot{}, fmt.Errorf("%w: duplicate account id %s", ErrInvalidArgument, acc.Id)
		}
		seen[acc.Id] = struct{}{}
	}
	return AccountsSnapshot{SelectedAccount: selected, Accounts: accounts}, nil
}

func ParseRawSettings(data []byte) (RawSettings, error) {
	if err := expectObject(data, "settings"); err != nil {
		return RawSettings{}, err
	}

	var r RawSettings
	var err error
	if r.GameDirectory, err = optString(data, "gameDirectory"); err != nil {
		return RawSettings{}, err
	}
	if r.JVMArguments, err = optString(data, "jvmArguments"); err != nil {
		return RawSettings{}, err
	}

	ints := []struct {
		key string
		dst **int
	}{
		{"allocatedRAM", &r.AllocatedRAM},
		{"resolutionWidth", &r.ResolutionWidth},
		{"resolutionHeight", &r.ResolutionHeight},
	}
	for _, f := range ints {
		if *f.dst, err = optInt(data, f.key); err != nil {
			return RawSettings{}, err
		}
	}

	bools := []struct {
		key string
		dst **bool
	}{
		{"showAlpha", &r.ShowAlpha},
		{"showBeta", &r.ShowBeta},
		{"showSnapshots", &r.ShowSnapshots},
		{"showOldVersions", &r.ShowOldVersions},
		{"showOnlyInstalled", &r.ShowOnlyInstalled},
	}
	for _, f := range bools {
		if *f.dst, err = optBool(data, f.key); err != nil {
			return RawSettings{}, err
		}
	}
	return r, nil
}

func ParseVersionInfo(data []byte) (VersionInfo, error) {
	if err := expectObject(data, "version"); err != nil {
		return VersionInfo{}, err
	}

	var v VersionInfo
	id, err := stringField(data, "id")
	if err != nil {
		return VersionInfo{}, err
	}
	if id == "" {
		return VersionInfo{}, fmt.Errorf("%w: version id is empty", ErrInvalidArgument)
	}
	v.Id = id

	kind, err := stringField(data, "type")
	if err != nil {
		return VersionInfo{}, err
	}
	v.Type = VersionType(kind)

	released, err := stringField(data, "releaseTime")
	if err != nil {
		return VersionInfo{}, err
	}
	if released != "" {
		t, err := time.Parse(time.RFC3339, released)
		if err != nil {
			return VersionInfo{}, fmt.Errorf("%w: releaseTime %q: %v", ErrInvalidArgument, released, err)
		}
		v.ReleaseTime = t
	}

	level, err := optInt(data, "complianceLevel")
	if err != nil {
		return VersionInfo{}, err
	}
	if level != nil {
		v.ComplianceLevel = *level
	}
	return v, nil
}

func expectObject(data []byte, what string) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidArgument, what)
	}
	return nil
}

// lookup returns nil when the key is missing or null.
func lookup(data []byte, key string, want jsonparser.ValueType, kind string) ([]byte, error) {
	value, dataType, _, err := jsonparser.Get(data, key)
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.NotExist || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
	}
	if dataType != want {
		return nil, fmt.Errorf("%w: %s must be %s", ErrInvalidArgument, key, kind)
	}
	return value, nil
}

func stringField(data []byte, key string) (string, error) {
	v, err := optString(data, key)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func optString(data []byte, key string) (*string, error) {
	raw, err := lookup(data, key, jsonparser.String, "a string")
	if err != nil || raw == nil {
		return nil, err
	}
	s, err := jsonparser.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
	}
	return &s, nil
}

func optInt(data []byte, key string) (*int, error) {
	raw, err := lookup(data, key, jsonparser.Number, "a number")
	if err != nil || raw == nil {
		return nil, err
	}
	n, err := jsonparser.ParseInt(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
	}
	i := int(n)
	return &i, nil
}

func optBool(data []byte, key string) (*bool, error) {
	raw, err := lookup(data, key, jsonparser.Boolean, "a boolean")
	if err != nil || raw == nil {
		return nil, err
	}
	b, err := jsonparser.ParseBoolean(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
	}
	return &b, nil
}

func parseArray[T any](data []byte, key string, parse func([]byte) (T, error)) ([]T, error) {
	out := []T{}
	raw, err := lookup(data, key, jsonparser.Array, "an array")
	if err != nil || raw == nil {
		return out, err
	}

	var itemErr error
	_, err = jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if itemErr != nil {
			return
		}
		if dataType != jsonparser.Object {
			itemErr = fmt.Errorf("%w: %s entries must be objects", ErrInvalidArgument, key)
			return
		}
		item, err := parse(value)
		if err != nil {
			itemErr = err
			return
		}
		out = append(out, item)
	})
	if itemErr != nil {
		return nil, itemErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
	}
	return out, nil
}
