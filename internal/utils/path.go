package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// appName is the directory name used under the platform config root.
const appName = "anafind"

// wordListCandidates are system locations checked when the configured word
// list does not exist.
var wordListCandidates = []string{
	"/usr/share/dict/words",
	"/usr/dict/words",
	"/usr/share/dict/web2",
}

// ConfigDir returns the platform specific config directory for anafind,
// falling back to the temp dir when no home directory is known.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && runtime.GOOS != "windows" {
		return filepath.Join(xdg, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		return filepath.Join(os.TempDir(), appName)
	}
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		return filepath.Join(homeDir, ".config", appName)
	}
}

// ResolveWordList returns preferred when it exists, otherwise the first
// existing system word list. When nothing is found preferred is returned so
// the caller reports the path the user asked for.
func ResolveWordList(preferred string) string {
	if preferred != "" && FileExists(preferred) {
		return preferred
	}
	for _, candidate := range wordListCandidates {
		if candidate == preferred {
			continue
		}
		if FileExists(candidate) {
			log.Debugf("Word list %q not found, using %s", preferred, candidate)
			return candidate
		}
	}
	return preferred
}
