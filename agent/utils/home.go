package utils

import (
	"os"
	"os/user"
	"path/filepath"
)

// HomeDir returns the home of the current user.
func HomeDir() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	currentUser, err := user.Current()
	if err != nil {
		panic(err)
	}
	return currentUser.HomeDir
}

// BaseDir is the bridge's own folder next to libindy's wallets.
func BaseDir() string {
	return filepath.Join(HomeDir(), ".indy_client", "bridge")
}
