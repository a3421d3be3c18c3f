package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrnavastar/mclauncher/util"
)

var MOJANG_MANIFEST_URL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

type manifestVersion struct {
	Id              string    `json:"id"`
	Type            string    `json:"type"`
	Url             string    `json:"url"`
	Time            time.Time `json:"time"`
	ReleaseTime     time.Time `json:"releaseTime"`
	Sha1            string    `json:"sha1"`
	ComplianceLevel int       `json:"complianceLevel"`
}

type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []manifestVersion `json:"versions"`
}

func GetVersionManifest(ctx context.Context) (*VersionManifest, error) {
	var manifest VersionManifest
	resp, err := client.R().SetContext(ctx).SetResult(&manifest).Get(MOJANG_MANIFEST_URL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("version manifest: %s", resp.Status())
	}
	return &manifest, nil
}

// GetVersionList returns every build in the manifest, newest first.
func GetVersionList(ctx context.Context) ([]util.VersionInfo, error) {
	manifest, err := GetVersionManifest(ctx)
	if err != nil {
		return nil, err
	}

	versions := make([]util.VersionInfo, 0, len(manifest.Versions))
	for _, v := range manifest.Versions {
		versions = append(versions, util.VersionInfo{
			Id:              v.Id,
			Type:            util.VersionType(v.Type),
			ReleaseTime:     v.ReleaseTime,
			ComplianceLevel: v.ComplianceLevel,
		})
	}
	return versions, nil
}

// GetLatestRelease returns the version the manifest marks as the latest release.
func GetLatestRelease(ctx context.Context) (util.VersionInfo, error) {
	manifest, err := GetVersionManifest(ctx)
	if err != nil {
		return util.VersionInfo{}, err
	}
	for _, v := range manifest.Versions {
		if v.Id == manifest.Latest.Release {
			return util.VersionInfo{
				Id:              v.Id,
				Type:            util.VersionType(v.Type),
				ReleaseTime:     v.ReleaseTime,
				ComplianceLevel: v.ComplianceLevel,
			}, nil
		}
	}
	return util.VersionInfo{}, errors.New("latest release missing from manifest")
}

// Catalog adapts the manifest functions for callers that take a catalog value.
type Catalog struct{}

func (Catalog) Versions(ctx context.Context) ([]util.VersionInfo, error) {
	return GetVersionList(ctx)
}

func (Catalog) LatestRelease(ctx context.Context) (util.VersionInfo, error) {
	return GetLatestRelease(ctx)
}
