package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir    string
	DataDir    string
	LogFile    string
	ConfigFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = newPaths(homeDir)

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func newPaths(homeDir string) *Paths {
	dataDir := filepath.Join(homeDir, ".autocomplete")
	return &Paths{
		HomeDir:    homeDir,
		DataDir:    dataDir,
		LogFile:    filepath.Join(dataDir, "autocomplete.log"),
		ConfigFile: filepath.Join(dataDir, "config.yaml"),
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
