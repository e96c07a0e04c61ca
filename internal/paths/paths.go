// Package paths resolves the configuration directory and the location of
// the live store file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative defaults. The store filename matches the legacy installs so
// an existing collection is picked up in place.
const (
	DefaultConfigDirName = ".unitracker"
	DefaultDBFileName    = "UnitrackerGames.sqlite"
)

// Environment variable overrides.
const (
	EnvConfigDir = "UNITRACKER_CONFIG_DIR"
	EnvDBPath    = "UNITRACKER_DB"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/unitracker (fallback ~/.config/unitracker)
// macOS:   ~/Library/Application Support/unitracker
// Windows: %APPDATA%/unitracker
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "unitracker"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "unitracker"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "unitracker"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > UNITRACKER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the live store file path following the precedence
// chain: flag > config.yaml db_path value > UNITRACKER_DB env > CWD default.
//
// The CWD-relative default keeps the store next to where the tracker is run,
// matching how existing installations lay their files out.
func ResolveDBPath(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDBFileName), nil
}
