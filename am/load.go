package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

var globalConfig *Config
var viperInstance *viper.Viper
var loadedFiles []string

// ConfigSources records, for every key read from a config file, the file it came from.
// Filled by Load; later files overwrite earlier entries.
var ConfigSources = map[string]SourceInfo{}

// Load reads the commonargs configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()
	config, err := unmarshal(v, loadedFiles)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var files []string
	if used := v.ConfigFileUsed(); used != "" {
		files = append(files, used)
	}
	return unmarshal(v, files)
}

// LoadFromFile loads configuration from a specific file path on top of the defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only, no environment for an explicit file
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	loadedFiles = nil
	ConfigSources = map[string]SourceInfo{}
}

// unmarshal decodes v strictly: keys that match no Config field are errors.
// Viper lowercases keys, so the [defaults] table is re-read from the files
// to keep argument names such as CC intact.
func unmarshal(v *viper.Viper, files []string) (*Config, error) {
	var config Config
	if err := v.UnmarshalExact(&config); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "failed to unmarshal config"),
			"run 'commonargs am show' to see the keys commonargs understands")
	}

	if len(files) > 0 {
		defaults := make(map[string]any)
		for _, path := range files {
			table, err := readDefaultsTable(path)
			if err != nil {
				return nil, err
			}
			for k, val := range table {
				defaults[k] = val
			}
		}
		if len(defaults) > 0 {
			config.Defaults = defaults
		}
	}

	config.Sources = files
	return &config, nil
}

func readDefaultsTable(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	var doc struct {
		Defaults map[string]any `toml:"defaults"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse [defaults] in %s", path)
	}
	return doc.Defaults, nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	loadedFiles = mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig searches for commonargs.toml by walking up the directory tree.
// Returns the path to the first file found, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// UserConfigPath returns the per-user config file, or "" when the config directory is unknown
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "commonargs", ProjectConfigName)
}

// mergeConfigFiles merges configuration files into v's config layer so that
// environment variables still take precedence.
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) []string {
	candidates := []struct {
		path   string
		source ConfigSource
	}{
		{"/etc/commonargs/" + ProjectConfigName, SourceSystem},
		{UserConfigPath(), SourceUser},
		{findProjectConfig(), SourceProject},
	}

	var merged []string
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if _, err := os.Stat(c.path); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(c.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			logger.Warnw("Skipping unreadable config file",
				logger.FieldFile, c.path,
				logger.FieldError, err)
			continue
		}
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			logger.Warnw("Failed to merge config file",
				logger.FieldFile, c.path,
				logger.FieldError, err)
			continue
		}

		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: c.source, Path: c.path}
		}
		merged = append(merged, c.path)
		logger.Debugw("Merged config file", logger.FieldFile, c.path, logger.FieldSource, string(c.source))
	}
	return merged
}
