package services

import "github.com/mrnavastar/mclauncher/util"

// FilterVersions applies the catalog visibility settings. Releases with
// compliance level 0 predate the current launcher feature set and count as old
// versions.
func FilterVersions(versions []util.VersionInfo, settings util.LauncherSettings, installed []util.VersionInfo) []util.VersionInfo {
	local := make(map[string]struct{}, len(installed))
	for _, v := range installed {
		local[v.Id] = struct{}{}
	}

	out := []util.VersionInfo{}
	for _, v := range versions {
		if settings.ShowOnlyInstalled {
			if _, ok := local[v.Id]; !ok {
				continue
			}
		}
		if visible(v, settings) {
			out = append(out, v)
		}
	}
	return out
}

func visible(v util.VersionInfo, settings util.LauncherSettings) bool {
	switch v.Type {
	case util.VersionSnapshot:
		return settings.ShowSnapshots
	case util.VersionOldBeta:
		return settings.ShowBeta
	case util.VersionOldAlpha:
		return settings.ShowAlpha
	case util.VersionRelease:
		return v.ComplianceLevel > 0 || settings.ShowOldVersions
	default:
		// modded or custom builds only exist locally
		return true
	}
}

// MergeInstalled adds locally installed builds the remote catalog does not know
// about, such as mod loader profiles.
func MergeInstalled(versions []util.VersionInfo, installed []util.VersionInfo) []util.VersionInfo {
	known := make(map[string]struct{}, len(versions))
	out := make([]util.VersionInfo, 0, len(versions)+len(installed))
	for _, v := range versions {
		known[v.Id] = struct{}{}
		out = append(out, v)
	}
	for _, v := range installed {
		if _, ok := known[v.Id]; !ok {
			out = append(out, v)
		}
	}
	return out
}
