// Package commands implements the commonargs command line.
package commands

import (
	"context"
	"maps"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/commonargs/am"
	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/common"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
	"github.com/teranos/commonargs/tables"
)

// InitLogger configures the global logger from -v/--log-json, falling back to the config file
func InitLogger(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")

	if verbosity == 0 || !jsonLogs {
		if cfg, err := loadConfig(cmd); err == nil {
			if verbosity == 0 {
				verbosity = cfg.Log.Verbosity
			}
			jsonLogs = jsonLogs || cfg.Log.JSON
		}
	}

	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// loadConfig loads --config when given, the cascaded configuration otherwise
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return am.LoadFromFile(path)
	}
	return am.Load()
}

// selection holds the flags that pick a table and shape its declarations.
// Every flag overrides the matching config setting only when given.
type selection struct {
	module    string
	table     string
	format    string
	typ       string
	metavar   string
	names     []string
	without   []string
	defaults  []string
	envPrefix string
	varPrefix string
	optPrefix string
	optTrans  string
}

func (s *selection) register(fs *pflag.FlagSet) {
	fs.StringVarP(&s.module, "module", "m", "", "Built-in module: cc, ar, gnudirs")
	fs.StringVarP(&s.table, "table", "t", "", "Table file path or URL (overrides --module)")
	fs.StringVarP(&s.format, "format", "f", "", "Output format: json, yaml, toml, table, sh")
	fs.StringVar(&s.typ, "type", "", "Declared value kind")
	fs.StringVar(&s.metavar, "metavar", "", "Metavar for every argument (default: inferred from the name)")
	fs.StringSliceVarP(&s.names, "names", "n", nil, "Only these argument names (comma separated)")
	fs.StringSliceVar(&s.without, "without", nil, "Families to leave out, e.g. flags")
	fs.StringArrayVarP(&s.defaults, "default", "D", nil, "Default override NAME=VALUE (repeatable)")
	fs.StringVar(&s.envPrefix, "env-prefix", "", "Prefix for construction environment keys")
	fs.StringVar(&s.varPrefix, "var-prefix", "", "Prefix for command-line variable keys")
	fs.StringVar(&s.optPrefix, "opt-name-prefix", "", "Prefix inserted after the option marker, e.g. with-")
	fs.StringVar(&s.optTrans, "option-transform", "", "Transform applied to rendered option names")
}

// apply layers explicitly given flags over cfg
func (s *selection) apply(cfg *am.Config, fs *pflag.FlagSet) error {
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("module") {
		cfg.Module = s.module
		cfg.Table = ""
	}
	if changed("table") {
		cfg.Table = s.table
	}
	if changed("format") {
		cfg.Format = s.format
	}
	if changed("type") {
		cfg.Type = s.typ
	}
	if changed("metavar") {
		cfg.Metavar = s.metavar
	}
	if changed("names") {
		cfg.Names = s.names
	}
	if changed("without") {
		if cfg.Families == nil {
			cfg.Families = make(map[string]bool)
		}
		for _, family := range s.without {
			cfg.Families[family] = false
		}
	}
	if changed("default") {
		if cfg.Defaults == nil {
			cfg.Defaults = make(map[string]any)
		}
		for _, kv := range s.defaults {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || name == "" {
				return errors.WithHint(errors.Newf("invalid --default %q", kv), "use NAME=VALUE")
			}
			cfg.Defaults[name] = value
		}
	}
	if changed("env-prefix") {
		cfg.Keys.Env.Prefix = s.envPrefix
	}
	if changed("var-prefix") {
		cfg.Keys.Var.Prefix = s.varPrefix
	}
	if changed("opt-name-prefix") {
		cfg.Keys.OptNamePrefix = s.optPrefix
	}
	if changed("option-transform") {
		cfg.Keys.OptionTransform = s.optTrans
	}
	return cfg.Validate()
}

// loadedTable is a table together with the local file it came from, if any
type loadedTable struct {
	table  argdecl.Table
	path   string
	source *tables.Source
}

func (l *loadedTable) Close() {
	if l.source != nil {
		l.source.Close()
	}
}

// openTable resolves cfg.Table, or the built-in cfg.Module when no table is set
func openTable(ctx context.Context, cfg *am.Config) (*loadedTable, error) {
	if cfg.Table == "" {
		table, err := common.Lookup(cfg.Module)
		if err != nil {
			return nil, err
		}
		return &loadedTable{table: table}, nil
	}

	src, err := tables.Resolve(ctx, cfg.Table, logger.ComponentLogger("tables"))
	if err != nil {
		return nil, err
	}
	table, err := tables.Load(src.Path)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &loadedTable{table: table, path: src.Path, source: src}, nil
}

// prepare loads config, applies the selection flags parsed into fs and opens the table
func prepare(cmd *cobra.Command, sel *selection, fs *pflag.FlagSet) (*am.Config, *loadedTable, argdecl.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, argdecl.Options{}, err
	}
	// The cached config is shared; work on a copy
	local := *cfg
	local.Families = maps.Clone(cfg.Families)
	local.Defaults = maps.Clone(cfg.Defaults)
	if err := sel.apply(&local, fs); err != nil {
		return nil, nil, argdecl.Options{}, err
	}

	lt, err := openTable(contextOf(cmd), &local)
	if err != nil {
		return nil, nil, argdecl.Options{}, err
	}

	opts, err := local.Options()
	if err != nil {
		lt.Close()
		return nil, nil, argdecl.Options{}, err
	}

	warnTable(lt.table, opts)
	return &local, lt, opts, nil
}

// warnTable logs family switches that match nothing and duplicate names
func warnTable(table argdecl.Table, opts argdecl.Options) {
	for family := range opts.Families {
		if !table.HasFamily(family) {
			logger.Warnw("Family switch matches no family",
				logger.FieldModule, table.Module,
				logger.FieldFamily, family,
				"families", table.FamilyNames())
		}
	}
	if dups := argdecl.Duplicates(table.Select(opts.Families)); len(dups) > 0 {
		logger.Warnw("Duplicate argument names, the last declaration wins",
			logger.FieldModule, table.Module,
			"names", dups)
	}
}
