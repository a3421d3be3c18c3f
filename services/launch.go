package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrnavastar/mclauncher/util"
	"github.com/shirou/gopsutil/v3/mem"
)

// Resolve builds the StartOptions for the selected version. It has no side
// effects; a nil version gives options the launcher must refuse to start.
func Resolve(selected *util.VersionInfo) util.StartOptions {
	if selected == nil {
		return util.StartOptions{}
	}
	v := *selected
	return util.StartOptions{Version: &v}
}

// BuildLaunchOptions combines the start options with the current settings and
// the selected account into what the game process is started with.
func BuildLaunchOptions(opts util.StartOptions, settings util.LauncherSettings, accounts util.AccountsSnapshot) (util.LaunchOptions, error) {
	if opts.Version == nil {
		return util.LaunchOptions{}, fmt.Errorf("%w: no version selected", util.ErrNotLaunchable)
	}
	account, ok := accounts.Selected()
	if !ok {
		return util.LaunchOptions{}, fmt.Errorf("%w: no account selected", util.ErrNotLaunchable)
	}
	if !account.Eligible() {
		return util.LaunchOptions{}, fmt.Errorf("%w: account %s needs attention: %s", util.ErrNotLaunchable, account.Name, account.ErrorMessage)
	}

	launch := util.LaunchOptions{
		Version:       *opts.Version,
		Username:      account.Name,
		Uuid:          account.Id,
		Token:         account.AccessToken,
		GameDirectory: settings.Directory(),
	}

	if settings.ResolutionWidth != nil && settings.ResolutionHeight != nil &&
		*settings.ResolutionWidth > 0 && *settings.ResolutionHeight > 0 {
		launch.CustomResolution = true
		launch.ResolutionWidth = strconv.Itoa(*settings.ResolutionWidth)
		launch.ResolutionHeight = strconv.Itoa(*settings.ResolutionHeight)
	}

	var jvmArgs []string
	if settings.AllocatedRAM != nil && *settings.AllocatedRAM > 0 {
		jvmArgs = append(jvmArgs, fmt.Sprintf("-Xmx%dM", *settings.AllocatedRAM))
	}
	if settings.JVMArguments != nil {
		jvmArgs = append(jvmArgs, strings.Fields(*settings.JVMArguments)...)
	}
	if len(jvmArgs) > 0 {
		launch.JvmArguments = jvmArgs
	}
	return launch, nil
}

type LastPlayedStore interface {
	ReadLastPlayed() (*util.VersionInfo, error)
	WriteLastPlayed(util.VersionInfo) error
}

type Catalog interface {
	Versions(ctx context.Context) ([]util.VersionInfo, error)
	LatestRelease(ctx context.Context) (util.VersionInfo, error)
}

// LastPlayed returns the last started version, or the latest release when
// nothing was started yet.
func LastPlayed(ctx context.Context, store LastPlayedStore, catalog Catalog) (*util.VersionInfo, error) {
	last, err := store.ReadLastPlayed()
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if last != nil {
		return last, nil
	}
	latest, err := catalog.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	return &latest, nil
}

// RecordLaunch remembers the version handed to the launch collaborator.
func RecordLaunch(store LastPlayedStore, opts util.StartOptions) error {
	if opts.Version == nil {
		return fmt.Errorf("%w: no version selected", util.ErrNotLaunchable)
	}
	if err := store.WriteLastPlayed(*opts.Version); err != nil {
		return wrapPersistence(err)
	}
	return nil
}

// TotalRAM is the installed memory in megabytes.
func TotalRAM() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Total / 1024 / 1024, nil
}
