// Package paths provides a single source of truth for apidoc file paths.
// All path helpers honor environment variable overrides for isolated testing.
//
// Config file resolution precedence:
//  1. The --config flag (handled by the caller)
//  2. APIDOC_CONFIG
//  3. The first default config file name found in the working directory
package paths

import (
	"os"
	"path/filepath"
)

// Environment variable names for path overrides.
const (
	// EnvDir is the base directory override (e.g., /tmp/apidoc-e2e).
	// When set, the default log path derives from this directory.
	EnvDir = "APIDOC_DIR"

	// EnvConfig names the config file to load when --config is not given.
	EnvConfig = "APIDOC_CONFIG"
)

// DefaultConfigNames are searched in order when no config file is named.
var DefaultConfigNames = []string{
	"apidoc.toml",
	"apidoc.yaml",
	"apidoc.yml",
	"apidoc.json",
	"apidoc.hcl",
}

// BaseDir returns the apidoc base directory (~/.apidoc by default).
// Honors APIDOC_DIR environment variable.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".apidoc"), nil
}

// LogPath returns the default log file path (~/.apidoc/apidoc.log).
func LogPath() string {
	base, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "apidoc.log")
	}
	return filepath.Join(base, "apidoc.log")
}

// EnvConfigPath returns the config file named by APIDOC_CONFIG, if any.
func EnvConfigPath() string {
	return os.Getenv(EnvConfig)
}

// FindConfig returns the first default config file present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range DefaultConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
