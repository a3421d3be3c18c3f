package util

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseAccountFull(t *testing.T) {
	data := []byte(`{
		"id": "069a79f444e94726a5befca90e38aaf5",
		"name": "Notch",
		"type": "microsoft",
		"skins": [{"id": "s1", "state": "ACTIVE", "url": "http://textures/s1", "variant": "CLASSIC"}],
		"capes": [{"id": "c1", "state": "INACTIVE", "url": "http://textures/c1", "alias": "Migrator"}],
		"error": "",
		"errorMessage": "",
		"access_token": "mc-token",
		"refresh_token": "ms-refresh"
	}`)

	got, err := ParseAccount(data)
	if err != nil {
		t.Fatalf("ParseAccount: %v", err)
	}
	want := Account{
		Id:           "069a79f444e94726a5befca90e38aaf5",
		Name:         "Notch",
		Type:         AccountMicrosoft,
		Skins:        []Skin{{Id: "s1", State: "ACTIVE", Url: "http://textures/s1", Variant: "CLASSIC"}},
		Capes:        []Cape{{Id: "c1", State: "INACTIVE", Url: "http://textures/c1", Alias: "Migrator"}},
		AccessToken:  "mc-token",
		RefreshToken: "ms-refresh",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("account mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAccountDefaults(t *testing.T) {
	got, err := ParseAccount([]byte(`{"id": "abc", "name": "Steve"}`))
	if err != nil {
		t.Fatalf("ParseAccount: %v", err)
	}
	if got.Skins == nil || got.Capes == nil {
		t.Fatalf("expected empty, non-nil sequences, got skins=%v capes=%v", got.Skins, got.Capes)
	}
	if got.Error != "" || got.AccessToken != "" {
		t.Fatalf("expected empty error and token, got %+v", got)
	}
}

func TestParseAccountRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not an object":  `["abc"]`,
		"missing id":     `{"name": "Steve"}`,
		"id wrong type":  `{"id": 12}`,
		"skins not list": `{"id": "a", "skins": {"id": "s"}}`,
		"skin not obj":   `{"id": "a", "skins": ["s"]}`,
		"nested type":    `{"id": "a", "capes": [{"id": 5}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccount([]byte(data))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestParseSnapshot(t *testing.T) {
	data := []byte(`{"selectedAccount": "b", "accounts": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}]}`)
	got, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if got.SelectedAccount != "b" || len(got.Accounts) != 2 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	selected, ok := got.Selected()
	if !ok || selected.Name != "B" {
		t.Fatalf("expected B selected, got %+v %v", selected, ok)
	}
}

func TestParseSnapshotRejectsDuplicateIds(t *testing.T) {
	data := []byte(`{"accounts": [{"id": "a"}, {"id": "a"}]}`)
	if _, err := ParseSnapshot(data); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseSnapshotEmpty(t *testing.T) {
	got, err := ParseSnapshot([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if got.SelectedAccount != "" || len(got.Accounts) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}

func TestParseRawSettingsPartial(t *testing.T) {
	raw, err := ParseRawSettings([]byte(`{"allocatedRAM": 4096, "showBeta": true, "jvmArguments": null}`))
	if err != nil {
		t.Fatalf("ParseRawSettings: %v", err)
	}
	if raw.AllocatedRAM == nil || *raw.AllocatedRAM != 4096 {
		t.Fatalf("expected allocatedRAM 4096, got %v", raw.AllocatedRAM)
	}
	if raw.ShowBeta == nil || !*raw.ShowBeta {
		t.Fatalf("expected showBeta true")
	}
	if raw.ShowAlpha != nil || raw.JVMArguments != nil || raw.GameDirectory != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", raw)
	}
}

func TestParseRawSettingsWrongType(t *testing.T) {
	if _, err := ParseRawSettings([]byte(`{"showAlpha": "yes"}`)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseRawSettings([]byte(`{"allocatedRAM": 1.5}`)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for fractional RAM, got %v", err)
	}
}

func TestParseVersionInfo(t *testing.T) {
	got, err := ParseVersionInfo([]byte(`{"id": "1.20.4", "type": "release", "releaseTime": "2023-12-07T12:56:20+00:00", "complianceLevel": 1, "mainClass": "net.minecraft.client.main.Main"}`))
	if err != nil {
		t.Fatalf("ParseVersionInfo: %v", err)
	}
	want := VersionInfo{
		Id:              "1.20.4",
		Type:            VersionRelease,
		ReleaseTime:     time.Date(2023, 12, 7, 12, 56, 20, 0, time.UTC),
		ComplianceLevel: 1,
	}
	if !got.ReleaseTime.Equal(want.ReleaseTime) {
		t.Fatalf("release time %v, want %v", got.ReleaseTime, want.ReleaseTime)
	}
	got.ReleaseTime = want.ReleaseTime
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("version mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVersionInfoBadTime(t *testing.T) {
	if _, err := ParseVersionInfo([]byte(`{"id": "x", "releaseTime": "yesterday"}`)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
