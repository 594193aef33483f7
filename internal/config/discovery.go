package config

import (
	"os"
	"path/filepath"
)

// DiscoverConfigFile looks for the user config file in the platform config
// directory (e.g. ~/.config/ty/config.yaml). The second return is false when
// no file exists; that is not an error, the built-in defaults apply.
func DiscoverConfigFile() (string, bool) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(base, "ty", "config.yaml")
	if !fileExists(path) {
		return "", false
	}
	return path, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
