package util

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pterm/pterm"
)

func Fatal(err error) {
	if err != nil {
		pterm.Fatal.Println(err)
	}
}

// MinecraftDirectory is the platform default game directory.
func MinecraftDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

func IntPtr(v int) *int {
	return &v
}

func StringPtr(v string) *string {
	return &v
}
