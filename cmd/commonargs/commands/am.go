package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/am"
	"github.com/teranos/commonargs/display"
	"github.com/teranos/commonargs/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage commonargs configuration",
	Long: `am - Manage commonargs configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (COMMONARGS_* prefix)
3. Project config (nearest commonargs.toml, searching up directories)
4. User config (<user config dir>/commonargs/commonargs.toml)
5. System config (/etc/commonargs/commonargs.toml)
6. Default values

Examples:
  commonargs am show                  # Show current configuration
  commonargs am show --format json    # Show configuration as JSON
  commonargs am where                 # Show which source set each value
  commonargs am init --module gnudirs # Write ./commonargs.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and the source of every
effective setting.`,
	Args: cobra.NoArgs,
	RunE: runAmWhere,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter commonargs.toml in the current directory",
	Args:  cobra.NoArgs,
	RunE:  runAmInit,
}

var (
	configFormat string
	initModule   string
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amInitCmd.Flags().StringVar(&initModule, "module", am.DefaultModule, "Module the starter config selects")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing commonargs.toml (a backup is kept)")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	format, err := display.FormatFromCommand(cmd, configFormat)
	if err != nil {
		return err
	}
	if format == display.FormatTOML || format == display.FormatYAML {
		fmt.Fprintln(cmd.OutOrStdout(), "# commonargs configuration")
	}
	return display.Document(cmd.OutOrStdout(), cfg.Settings(), format)
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return display.WriteJSON(out, intro)
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/commonargs/commonargs.toml")
	if user := am.UserConfigPath(); user != "" {
		fmt.Fprintf(out, "  3. [USER]     %s\n", user)
	}
	fmt.Fprintln(out, "  4. [PROJECT]  ./commonargs.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      COMMONARGS_* environment variables")
	fmt.Fprintln(out)

	type fileGroup struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}
	groups := make(map[string]*fileGroup)
	for _, setting := range intro.Settings {
		key := setting.SourcePath
		if key == "" || setting.Source == am.SourceEnvironment {
			key = string(setting.Source)
		}
		if group, ok := groups[key]; ok {
			group.settings = append(group.settings, setting)
			continue
		}
		groups[key] = &fileGroup{source: setting.Source, path: setting.SourcePath, settings: []am.SettingInfo{setting}}
	}

	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	}

	fmt.Fprintln(out, "Active configuration:")
	for _, source := range sourceOrder {
		var level []*fileGroup
		for _, group := range groups {
			if group.source == source {
				level = append(level, group)
			}
		}
		sort.Slice(level, func(i, j int) bool { return level[i].path < level[j].path })

		for _, group := range level {
			switch source {
			case am.SourceEnvironment:
				fmt.Fprintf(out, "\n%s: %d settings from environment variables\n", source, len(group.settings))
			case am.SourceDefault:
				fmt.Fprintf(out, "\n%s: %d settings\n", source, len(group.settings))
			default:
				fmt.Fprintf(out, "\n%s: %d settings from %s\n", source, len(group.settings), group.path)
			}
			for _, setting := range group.settings {
				value := fmt.Sprintf("%v", setting.Value)
				if len(value) > 50 {
					value = value[:47] + "..."
				}
				fmt.Fprintf(out, "  %s = %s\n", setting.Key, value)
			}
		}
	}
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	path := filepath.Join(cwd, am.ProjectConfigName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.WithHint(errors.Newf("%s already exists", path),
			"use --force to overwrite it; the previous file is kept as a backup")
	}

	cfg := am.Starter(initModule)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := am.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
