package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/jedib0t/go-pretty/text"
	"github.com/joho/godotenv"
	"github.com/mattn/go-runewidth"
	"github.com/mrnavastar/mclauncher/api"
	"github.com/mrnavastar/mclauncher/services"
	"github.com/mrnavastar/mclauncher/util"
	"github.com/mrnavastar/mclauncher/util/fileutils"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

type launcher struct {
	store    *fileutils.Store
	registry *services.Registry
	session  *services.Session
	settings *services.SettingsStore
}

func open(c *cli.Context) (*launcher, error) {
	dir, err := fileutils.LauncherDir(c.String("dir"))
	if err != nil {
		return nil, err
	}
	if _, err := fileutils.MigrateLegacy(dir); err != nil {
		return nil, err
	}

	store := fileutils.NewStore(dir)
	auth := api.NewAuthenticator(c.String("client-id"))
	auth.Prompt = func(code api.DeviceCode) {
		pterm.Info.Printfln("Open %s and enter the code %s", code.VerificationURI, pterm.Bold.Sprint(code.UserCode))
	}

	registry := services.NewRegistry(store, nil)
	return &launcher{
		store:    store,
		registry: registry,
		session:  services.NewSession(registry, auth, nil),
		settings: services.NewSettingsStore(store, nil),
	}, nil
}

func main() {
	_ = godotenv.Load(".env")

	app := &cli.App{
		Name:  "mclauncher",
		Usage: "Manage Minecraft accounts and launch settings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "launcher data directory",
				EnvVars: []string{"MCLAUNCHER_DIR"},
			},
			&cli.StringFlag{
				Name:    "client-id",
				Usage:   "Azure application id used for Microsoft sign in",
				EnvVars: []string{"MICROSOFT_CLIENT_ID"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Setup the launcher data directory",
				Action: func(c *cli.Context) error {
					store, err := fileutils.Setup(c.Args().Get(0))
					util.Fatal(err)
					pterm.Success.Println("Launcher state at " + store.Path())
					return nil
				},
			},
			{
				Name:    "ls",
				Aliases: []string{"accounts"},
				Usage:   "List accounts",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					printAccounts(l.registry.LoadOrEmpty())
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Add an offline account",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					snapshot, err := l.session.AddOfflineAccount(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					printAccounts(snapshot)
					return nil
				},
			},
			{
				Name:  "login",
				Usage: "Add a Microsoft account",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
					defer stop()

					snapshot, err := l.session.AddAuthenticatedAccount(ctx)
					if errors.Is(err, util.ErrAuthenticationCancelled) {
						pterm.Warning.Println("Sign in cancelled")
						return nil
					}
					if err != nil {
						return err
					}
					printAccounts(snapshot)
					return nil
				},
			},
			{
				Name:      "select",
				Usage:     "Select the account to play with",
				ArgsUsage: "<id or name>",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					acc, err := l.registry.Find(c.Args().Get(0))
					if err != nil {
						return staleHint(err)
					}
					snapshot, err := l.registry.Select(acc.Id)
					if err != nil {
						return staleHint(err)
					}
					printAccounts(snapshot)
					return nil
				},
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "Remove an account",
				ArgsUsage: "<id or name>",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					acc, err := l.registry.Find(c.Args().Get(0))
					if err != nil {
						return staleHint(err)
					}
					if _, err := l.registry.Delete(acc.Id); err != nil {
						return staleHint(err)
					}
					pterm.Success.Println("Removed " + acc.Name)
					return nil
				},
			},
			{
				Name:      "refresh",
				Usage:     "Refresh the tokens of a Microsoft account",
				ArgsUsage: "<id or name>",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					acc, err := l.registry.Find(c.Args().Get(0))
					if err != nil {
						return staleHint(err)
					}
					snapshot, err := l.session.RefreshAccount(c.Context, acc.Id)
					if err != nil {
						return err
					}
					printAccounts(snapshot)
					return nil
				},
			},
			{
				Name:  "settings",
				Usage: "Show or change launcher settings",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					printSettings(l.settings.Load())
					return nil
				},
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Change one setting",
						ArgsUsage: "<key> <value>",
						Action: func(c *cli.Context) error {
							return changeSetting(c, c.Args().Get(0), c.Args().Get(1), false)
						},
					},
					{
						Name:      "unset",
						Usage:     "Reset one setting to its default",
						ArgsUsage: "<key>",
						Action: func(c *cli.Context) error {
							return changeSetting(c, c.Args().Get(0), "", true)
						},
					},
				},
			},
			{
				Name:  "versions",
				Usage: "List game versions visible with the current settings",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}
					settings := l.settings.Load()
					installed, err := fileutils.GetInstalledVersions(settings.Directory())
					if err != nil {
						return err
					}
					remote, err := api.GetVersionList(c.Context)
					if err != nil {
						pterm.Warning.Println("Version manifest unavailable, showing installed versions only")
					}
					versions := services.FilterVersions(services.MergeInstalled(remote, installed), settings, installed)
					printVersions(versions, installed)
					return nil
				},
			},
			{
				Name:      "start",
				Usage:     "Resolve launch options for a version",
				ArgsUsage: "[version]",
				Action: func(c *cli.Context) error {
					l, err := open(c)
					if err != nil {
						return err
					}

					var selected *util.VersionInfo
					if id := c.Args().Get(0); id != "" {
						selected, err = findVersion(c, l, id)
					} else {
						selected, err = services.LastPlayed(c.Context, l.store, api.Catalog{})
					}
					if err != nil {
						return err
					}

					opts := services.Resolve(selected)
					launch, err := services.BuildLaunchOptions(opts, l.settings.Load(), l.registry.LoadOrEmpty())
					if err != nil {
						return err
					}
					if err := services.RecordLaunch(l.store, opts); err != nil {
						return err
					}

					launch.Token = redact(launch.Token)
					out, err := json.MarshalIndent(launch, "", " ")
					if err != nil {
						return err
					}
					fmt.Println(string(out))
					return nil
				},
			},
			{
				Name:  "ram",
				Usage: "Show installed memory",
				Action: func(c *cli.Context) error {
					total, err := services.TotalRAM()
					if err != nil {
						return err
					}
					fmt.Printf("%d MB\n", total)
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func staleHint(err error) error {
	if errors.Is(err, util.ErrNotFound) {
		return fmt.Errorf("%w (run `mclauncher ls` to see current accounts)", err)
	}
	return err
}

func findVersion(c *cli.Context, l *launcher, id string) (*util.VersionInfo, error) {
	installed, err := fileutils.GetInstalledVersions(l.settings.Load().Directory())
	if err != nil {
		return nil, err
	}
	for _, v := range installed {
		if v.Id == id {
			v := v
			return &v, nil
		}
	}

	remote, err := api.GetVersionList(c.Context)
	if err != nil {
		return nil, err
	}
	for _, v := range remote {
		if v.Id == id {
			v := v
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown version %s", util.ErrNotLaunchable, id)
}

func redact(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:4] + "…" + token[len(token)-4:]
}

func printAccounts(snapshot util.AccountsSnapshot) {
	if len(snapshot.Accounts) == 0 {
		pterm.Info.Println("No accounts yet")
		return
	}

	selected, _ := snapshot.Selected()
	lname := runewidth.StringWidth("NAME:")
	ltype := runewidth.StringWidth("TYPE:")
	for _, acc := range snapshot.Accounts {
		if w := runewidth.StringWidth(acc.Name); w > lname {
			lname = w
		}
		if w := runewidth.StringWidth(acc.Type); w > ltype {
			ltype = w
		}
	}

	fmt.Println()
	fmt.Println("  " + text.AlignDefault.Apply("NAME:", lname+2) + text.AlignDefault.Apply("TYPE:", ltype+2) + "ID:")
	for _, acc := range snapshot.Accounts {
		marker := "  "
		if acc.Id == selected.Id {
			marker = "* "
		}
		line := marker + text.AlignDefault.Apply(text.Bold.Sprint(acc.Name), lname+2) + text.AlignDefault.Apply(acc.Type, ltype+2) + acc.Id
		if !acc.Eligible() {
			line += " " + text.FgRed.Sprint(acc.Error)
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printVersions(versions []util.VersionInfo, installed []util.VersionInfo) {
	local := make(map[string]bool, len(installed))
	for _, v := range installed {
		local[v.Id] = true
	}

	lid := runewidth.StringWidth("VERSION:")
	for _, v := range versions {
		if w := runewidth.StringWidth(v.Id); w > lid {
			lid = w
		}
	}

	fmt.Println()
	fmt.Println(text.AlignDefault.Apply("VERSION:", lid+2) + text.AlignDefault.Apply("TYPE:", 12) + "RELEASED:")
	for _, v := range versions {
		id := v.Id
		if local[v.Id] {
			id = text.Bold.Sprint(v.Id)
		}
		released := ""
		if !v.ReleaseTime.IsZero() {
			released = v.ReleaseTime.Format("2006-01-02")
		}
		fmt.Println(text.AlignDefault.Apply(id, lid+2) + text.AlignDefault.Apply(string(v.Type), 12) + released)
	}
	fmt.Println()
}
