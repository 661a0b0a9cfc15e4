// Package am loads commonargs settings from defaults, config files and
// COMMONARGS_* environment variables.
package am

// ProjectConfigName is the project config file looked up from the working directory upwards
const ProjectConfigName = "commonargs.toml"

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "COMMONARGS"

// Config represents the commonargs configuration
type Config struct {
	Module   string          `mapstructure:"module"`   // Built-in module name (cc, ar, gnudirs)
	Table    string          `mapstructure:"table"`    // Table file path or URL; takes precedence over Module
	Format   string          `mapstructure:"format"`   // Output format: json, yaml, toml, table, sh
	Type     string          `mapstructure:"type"`     // Declared value kind (default: string)
	Metavar  string          `mapstructure:"metavar"`  // Overrides the inferred metavar of every argument
	Names    []string        `mapstructure:"names"`    // Name filter; empty keeps all
	Families map[string]bool `mapstructure:"families"` // Family switches, e.g. flags = false
	Defaults map[string]any  `mapstructure:"defaults"` // Per-argument default overrides (case preserved, see Load)
	Keys     KeysConfig      `mapstructure:"keys"`
	Log      LogConfig       `mapstructure:"log"`
	Watch    WatchConfig     `mapstructure:"watch"`

	// Sources lists the config files merged into this configuration, lowest precedence first
	Sources []string `mapstructure:"-"`
}

// KeysConfig configures endpoint name conversion
type KeysConfig struct {
	Env EndpointKeys `mapstructure:"env"` // Store (construction environment) keys
	Var EndpointKeys `mapstructure:"var"` // Command-line variable keys
	Opt EndpointKeys `mapstructure:"opt"` // Option destination keys

	OptPrefix       *string `mapstructure:"opt_prefix"`       // Option marker: nil = "--"
	OptNamePrefix   string  `mapstructure:"opt_name_prefix"`  // Inserted after the marker
	OptNameSuffix   string  `mapstructure:"opt_name_suffix"`  // Appended to the option name
	OptionTransform string  `mapstructure:"option_transform"` // Named transform for rendered options
}

// EndpointKeys configures one endpoint kind
type EndpointKeys struct {
	Prefix    string `mapstructure:"prefix"`
	Suffix    string `mapstructure:"suffix"`
	Transform string `mapstructure:"transform"` // Transform name; empty = default
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json"`      // Structured JSON logs on stderr
	Verbosity int  `mapstructure:"verbosity"` // Same scale as repeated -v flags
}

// WatchConfig configures declare --watch
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"` // Quiet period before regenerating (default: 300)
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
