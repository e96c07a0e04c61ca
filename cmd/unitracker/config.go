// Config loading for the unitracker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// cfgKeyDBPath optionally pins the store file location.
	cfgKeyDBPath = "db_path"
)

// configHeader introduces the generated default config.yaml.
const configHeader = `# Unitracker configuration.
#
# db_path pins the store file location; when unset the --db flag, the
# UNITRACKER_DB environment variable, and finally $(CWD)/` + "UnitrackerGames.sqlite" + `
# apply, in that order.

`

// loadConfig reads config.yaml from the config directory, returning the
// normalized preferences and the configured db_path (empty when unset). The
// directory and a default config.yaml are created on first run; a missing
// or partially malformed file falls back key by key, never fatally.
func loadConfig(configDir string) (types.Preferences, string, error) {
	prefs := types.DefaultPreferences()

	if err := ensureConfigDir(configDir); err != nil {
		return prefs, "", fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return prefs, "", fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return prefs, "", nil
		}
		// An unreadable file falls back to defaults rather than blocking
		// the tracker.
		logger.Warnw("config unreadable, using defaults", "dir", configDir, "error", err)
		return prefs, "", nil
	}

	if err := v.Unmarshal(&prefs); err != nil {
		logger.Warnw("config malformed, using defaults", "dir", configDir, "error", err)
		prefs = types.DefaultPreferences()
	}
	prefs.Normalize()
	return prefs, v.GetString(cfgKeyDBPath), nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes a default config.yaml, generated from the
// documented preference defaults, if none exists yet.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	body, err := yaml.Marshal(types.DefaultPreferences())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), body...), 0o644)
}
