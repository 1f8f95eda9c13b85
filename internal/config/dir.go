package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the daybook configuration directory.
//
// Resolution:
//   - $DAYBOOK_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/daybook if set (respects XDG on any platform)
//   - %AppData%/daybook on Windows
//   - ~/.config/daybook on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("DAYBOOK_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "daybook")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "daybook")
		}
	}

	// macOS and Linux: ~/.config/daybook
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "daybook")
}
