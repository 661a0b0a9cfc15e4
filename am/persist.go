package am

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	// .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// Save writes c to configPath as TOML, keeping up to three backups of the previous content
func Save(c *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", configPath)
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(c.Settings())
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", configPath)
	}
	return nil
}

// Settings mirrors the file layout of Config, leaving out empty settings
func (c *Config) Settings() map[string]any {
	m := make(map[string]any)
	put := func(dst map[string]any, key string, value string) {
		if value != "" {
			dst[key] = value
		}
	}

	put(m, "module", c.Module)
	put(m, "table", c.Table)
	put(m, "format", c.Format)
	put(m, "type", c.Type)
	put(m, "metavar", c.Metavar)
	if len(c.Names) > 0 {
		m["names"] = c.Names
	}
	if len(c.Families) > 0 {
		m["families"] = c.Families
	}
	if len(c.Defaults) > 0 {
		m["defaults"] = c.Defaults
	}

	keys := make(map[string]any)
	for kind, e := range map[string]EndpointKeys{"env": c.Keys.Env, "var": c.Keys.Var, "opt": c.Keys.Opt} {
		section := make(map[string]any)
		put(section, "prefix", e.Prefix)
		put(section, "suffix", e.Suffix)
		put(section, "transform", e.Transform)
		if len(section) > 0 {
			keys[kind] = section
		}
	}
	if c.Keys.OptPrefix != nil {
		keys["opt_prefix"] = *c.Keys.OptPrefix
	}
	put(keys, "opt_name_prefix", c.Keys.OptNamePrefix)
	put(keys, "opt_name_suffix", c.Keys.OptNameSuffix)
	put(keys, "option_transform", c.Keys.OptionTransform)
	if len(keys) > 0 {
		m["keys"] = keys
	}

	m["log"] = map[string]any{"json": c.Log.JSON, "verbosity": c.Log.Verbosity}
	m["watch"] = map[string]any{"debounce_ms": c.Watch.DebounceMS}
	return m
}

// Starter returns the configuration written by 'commonargs am init'
func Starter(module string) *Config {
	if module == "" {
		module = DefaultModule
	}
	return &Config{
		Module: module,
		Format: DefaultFormat,
		Type:   "string",
		Watch:  WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}

// BackupPath returns the path of the n-th backup of configPath
func BackupPath(configPath string, n int) string {
	return fmt.Sprintf("%s.back%d", configPath, n)
}
