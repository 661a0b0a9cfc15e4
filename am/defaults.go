package am

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultModule     = "cc"
	DefaultFormat     = "table"
	DefaultDebounceMS = 300
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("module", DefaultModule)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("type", "string")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

// BindEnvVars binds settings whose environment names do not follow the
// COMMONARGS_SECTION_KEY pattern
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("table", "COMMONARGS_TABLE", "COMMONARGS_TABLE_FILE")
	v.BindEnv("log.json", "COMMONARGS_LOG_JSON", "COMMONARGS_JSON")
}
