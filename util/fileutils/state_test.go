package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mrnavastar/mclauncher/util"
)

func TestReadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	snapshot, err := store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if len(snapshot.Accounts) != 0 || snapshot.SelectedAccount != "" {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}

	raw, err := store.ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings: %v", err)
	}
	if diff := cmp.Diff(util.RawSettings{}, raw); diff != "" {
		t.Fatalf("expected empty raw settings:\n%s", diff)
	}

	last, err := store.ReadLastPlayed()
	if err != nil || last != nil {
		t.Fatalf("expected no last played version, got %v, %v", last, err)
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	want := util.AccountsSnapshot{
		SelectedAccount: "a",
		Accounts: []util.Account{
			{Id: "a", Name: "Alex", Type: util.AccountOffline, Skins: []util.Skin{}, Capes: []util.Cape{}},
			{
				Id: "b", Name: "Steve", Type: util.AccountMicrosoft,
				Skins:       []util.Skin{{Id: "s", State: "ACTIVE", Url: "http://x/s", Variant: "SLIM"}},
				Capes:       []util.Cape{},
				AccessToken: "token", RefreshToken: "refresh",
			},
		},
	}
	if err := store.WriteAccounts(want); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}
	got, err := store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	want.SelectedAccount = ""
	if err := store.WriteAccounts(want); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}
	got, err = store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if got.SelectedAccount != "" {
		t.Fatalf("expected selection cleared, got %q", got.SelectedAccount)
	}
}

func TestSettingsWriteKeepsAccounts(t *testing.T) {
	store := NewStore(t.TempDir())
	accounts := util.AccountsSnapshot{Accounts: []util.Account{{Id: "a", Name: "Alex", Skins: []util.Skin{}, Capes: []util.Cape{}}}}
	if err := store.WriteAccounts(accounts); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}

	settings := util.LauncherSettings{GameDirectory: "/games", AllocatedRAM: util.IntPtr(3072), ShowBeta: true}
	if err := store.WriteSettings(settings); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}

	got, err := store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if diff := cmp.Diff(accounts, got); diff != "" {
		t.Fatalf("accounts changed by settings write:\n%s", diff)
	}

	raw, err := store.ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings: %v", err)
	}
	if diff := cmp.Diff(settings, util.ResolveSettings(raw)); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsWriteReplacesWholeValue(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.WriteSettings(util.LauncherSettings{AllocatedRAM: util.IntPtr(4096), JVMArguments: util.StringPtr("-XX:+UseG1GC")}); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	if err := store.WriteSettings(util.LauncherSettings{ShowAlpha: true}); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	raw, err := store.ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings: %v", err)
	}
	if raw.AllocatedRAM != nil || raw.JVMArguments != nil {
		t.Fatalf("stale fields resurrected: %+v", raw)
	}
}

func TestLastPlayedRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	v := util.VersionInfo{Id: "1.21", Type: util.VersionRelease, ReleaseTime: time.Date(2024, 6, 13, 8, 24, 3, 0, time.UTC), ComplianceLevel: 1}
	if err := store.WriteLastPlayed(v); err != nil {
		t.Fatalf("WriteLastPlayed: %v", err)
	}
	got, err := store.ReadLastPlayed()
	if err != nil {
		t.Fatalf("ReadLastPlayed: %v", err)
	}
	if got == nil || got.Id != v.Id || !got.ReleaseTime.Equal(v.ReleaseTime) {
		t.Fatalf("unexpected last played %+v", got)
	}
}

func TestBlankFileIsEmptyState(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StateFileName), []byte("  \n\t"), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewStore(dir)

	snapshot, err := store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if len(snapshot.Accounts) != 0 {
		t.Fatalf("expected no accounts, got %+v", snapshot)
	}

	want := util.AccountsSnapshot{SelectedAccount: "a", Accounts: []util.Account{{Id: "a", Name: "Alex", Skins: []util.Skin{}, Capes: []util.Cape{}}}}
	if err := store.WriteAccounts(want); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}
	got, err := store.ReadAccounts()
	if err != nil {
		t.Fatalf("ReadAccounts: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StateFileName), []byte(`{"accounts": "nope"}`), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewStore(dir)
	if _, err := store.ReadAccounts(); !errors.Is(err, util.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestNewerFormatRefused(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StateFileName), []byte(`{"format": "v2.0.0", "accounts": []}`), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewStore(dir)
	if _, err := store.ReadAccounts(); !errors.Is(err, util.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if err := store.WriteSettings(util.LauncherSettings{}); !errors.Is(err, util.ErrPersistence) {
		t.Fatalf("expected write to be refused, got %v", err)
	}
}

func TestWriteStampsFormat(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.WriteSettings(util.LauncherSettings{}); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if err := checkFormat(data); err != nil {
		t.Fatalf("checkFormat: %v", err)
	}
}
