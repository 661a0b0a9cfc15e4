package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/commonargs/am"
	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/display"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

var (
	declareSel   selection
	declareWatch bool
)

// DeclareCmd prints declarations
var DeclareCmd = &cobra.Command{
	Use:   "declare",
	Short: "Print argument declarations",
	Long: `Print the declaration of every selected argument: construction
environment key, command-line variable key, option key, rendered option,
type, metavar, default and help.

With --watch the table file and config files are watched and the
declarations are printed again after every change.

Examples:
  commonargs declare -m cc -D CC=gcc --format yaml
  commonargs declare -m gnudirs --var-prefix GNU_ --opt-name-prefix with-
  commonargs declare -t ./fortran.toml --watch --format json`,
	Args: cobra.NoArgs,
	RunE: runDeclare,
}

func init() {
	declareSel.register(DeclareCmd.Flags())
	DeclareCmd.Flags().BoolVarP(&declareWatch, "watch", "w", false, "Regenerate when the table or config files change")
}

func runDeclare(cmd *cobra.Command, args []string) error {
	if err := renderDeclarations(cmd); err != nil {
		return err
	}
	if !declareWatch {
		return nil
	}
	return watchDeclarations(cmd)
}

func renderDeclarations(cmd *cobra.Command) error {
	cfg, lt, opts, err := prepare(cmd, &declareSel, cmd.Flags())
	if err != nil {
		return err
	}
	defer lt.Close()

	decls, err := argdecl.Declare(lt.table, opts)
	if err != nil {
		return err
	}

	format, err := display.FormatFromCommand(cmd, cfg.Format)
	if err != nil {
		return err
	}
	return display.Declarations(cmd.OutOrStdout(), decls, format)
}

func watchDeclarations(cmd *cobra.Command) error {
	cfg, lt, _, err := prepare(cmd, &declareSel, cmd.Flags())
	if err != nil {
		return err
	}
	lt.Close()

	var paths []string
	if lt.path != "" && lt.source != nil && !lt.source.Remote {
		paths = append(paths, lt.path)
	}
	paths = append(paths, cfg.Sources...)
	if len(paths) == 0 {
		return errors.WithHint(errors.New("nothing to watch"), "use a local --table file or a commonargs.toml")
	}

	fw, err := am.NewFileWatcher(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, paths...)
	if err != nil {
		return err
	}
	defer fw.Stop()

	fw.OnChange(func(changed []string) error {
		// Config files are cached after the first load
		am.Reset()
		fmt.Fprintln(cmd.OutOrStdout())
		return renderDeclarations(cmd)
	})
	fw.Start()

	logger.Infow("Watching for changes", logger.FieldCount, len(paths), "files", paths)

	ctx, stop := signal.NotifyContext(contextOf(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
