package node

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// DefaultDataDir is the default data directory to use for the state database.
func DefaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "NFTVault")
	case "windows":
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			return filepath.Join(appdata, "NFTVault")
		}
		return filepath.Join(home, "AppData", "Local", "NFTVault")
	default:
		return filepath.Join(home, ".nftvault")
	}
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
