package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/display"
	"github.com/teranos/commonargs/host"
	"github.com/teranos/commonargs/logger"
)

// ResolveCmd resolves argument values the way a build tool would
var ResolveCmd = &cobra.Command{
	Use:   "resolve [--option=value ...] [NAME=value ...]",
	Short: "Resolve argument values from options, variables and the environment",
	Long: `Declare the selected arguments as live options, command-line
variables and environment keys, then resolve each value.

Precedence, highest first: --option on the command line, NAME=value
variable, environment variable named after the construction environment
key, config file, declared default.

Examples:
  commonargs resolve -m cc --cc=clang CXXFLAGS="-O2 -g"
  commonargs resolve -m gnudirs --var-prefix GNU_ GNU_prefix=/opt --format sh --expand`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args, false)
	},
}

// HelpVarsCmd prints per-argument help
var HelpVarsCmd = &cobra.Command{
	Use:   "help-vars [--option=value ...] [NAME=value ...]",
	Short: "Print help for every argument with its default and actual value",
	Long: `Print one block per argument:

  CC: A C compiler to use
      default: UNDEFINED
      actual: gcc

Values are resolved exactly as by 'commonargs resolve'.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args, true)
	},
}

func runResolve(cmd *cobra.Command, args []string, helpVars bool) error {
	var sel selection
	var expand, showHelp bool

	// Selection flags are needed before the table is known, so they are
	// parsed first and unknown options are left for the second pass.
	pre := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	sel.register(pre)
	pre.BoolVar(&expand, "expand", false, "Expand ${name} references in values")
	pre.BoolVarP(&showHelp, "help", "h", false, "Help for resolve, including the declared options")
	pre.AddFlagSet(cmd.InheritedFlags())
	if err := pre.Parse(args); err != nil {
		return err
	}
	if err := InitLogger(cmd); err != nil {
		return err
	}

	cfg, lt, opts, err := prepare(cmd, &sel, pre)
	if err != nil {
		return err
	}
	defer lt.Close()

	h := host.New(pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError), viper.New())
	pre.VisitAll(func(f *pflag.Flag) { h.Reserve(f.Name) })
	if _, err := argdecl.DeclareTo(h, lt.table, opts); err != nil {
		return err
	}
	pre.VisitAll(func(f *pflag.Flag) {
		if h.Flags().Lookup(f.Name) != nil {
			return
		}
		h.Flags().AddFlag(&pflag.Flag{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Usage:       f.Usage,
			DefValue:    f.DefValue,
			NoOptDefVal: f.NoOptDefVal,
			Value:       parsedValue{f.Value},
		})
	})

	if showHelp {
		fmt.Fprintf(cmd.OutOrStdout(), "Usage:\n  %s\n\nFlags:\n%s", cmd.UseLine(), h.Flags().FlagUsages())
		return nil
	}

	// The second pass only sees the declared options; the selection
	// flags were consumed by the first
	if err := h.Flags().Parse(args); err != nil {
		return err
	}

	variables, rest := host.ParseVariables(h.Flags().Args())
	for _, word := range rest {
		logger.Warnw("Ignoring argument", "argument", word)
	}
	for _, name := range h.UnknownVariables(variables) {
		logger.Warnw("Variable matches no declared argument", "variable", name)
	}

	h.Commit(variables)

	if helpVars {
		_, err := fmt.Fprint(cmd.OutOrStdout(), h.HelpText())
		return err
	}

	format, err := display.FormatFromCommand(cmd, cfg.Format)
	if err != nil {
		return err
	}
	if format == display.FormatSh {
		_, err := fmt.Fprint(cmd.OutOrStdout(), h.ShellExports(expand))
		return err
	}

	values := h.Values()
	if expand {
		for i := range values {
			if values[i].Set {
				values[i].Value = h.Subst(values[i].Value)
			}
		}
	}
	return display.Values(cmd.OutOrStdout(), values, format)
}

// parsedValue stands in for a flag already consumed by an earlier parse
type parsedValue struct{ pflag.Value }

func (parsedValue) Set(string) error { return nil }
