// Package host registers argument declarations as live endpoints of a
// command-line tool and resolves their values.
//
// A declaration's store key becomes a viper key (fed by the environment,
// a config file or the declared default), its option becomes a pflag flag
// and its variable key is matched against NAME=value words.
package host

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

// AnnotationStoreKey annotates each registered flag with its store key
const AnnotationStoreKey = "commonargs_store_key"

// Value sources, from highest to lowest precedence
const (
	SourceOption      = "option"
	SourceVariable    = "variable"
	SourceEnvironment = "environment"
	SourceConfig      = "config"
	SourceDefault     = "default"
)

// Host implements argdecl.Sink on top of a pflag.FlagSet and a viper store.
type Host struct {
	flags  *pflag.FlagSet
	store  *viper.Viper
	decls  *argdecl.Declarations
	values map[string]*flagValue
	source map[string]string
	// reserved option names belong to the tool itself
	reserved map[string]bool
	logger   *zap.SugaredLogger
}

// New creates a host. Nil arguments get fresh instances.
func New(flags *pflag.FlagSet, store *viper.Viper) *Host {
	if flags == nil {
		flags = pflag.NewFlagSet("commonargs", pflag.ContinueOnError)
	}
	if store == nil {
		store = viper.New()
	}
	return &Host{
		flags:  flags,
		store:  store,
		decls:  argdecl.NewDeclarations(),
		values:   make(map[string]*flagValue),
		source:   make(map[string]string),
		reserved: make(map[string]bool),
		logger:   logger.ComponentLogger("host"),
	}
}

// Flags returns the flag set options are registered on
func (h *Host) Flags() *pflag.FlagSet { return h.flags }

// Store returns the viper instance backing store keys
func (h *Host) Store() *viper.Viper { return h.store }

// Declarations returns everything declared so far, in order
func (h *Host) Declarations() *argdecl.Declarations { return h.decls }

// Reserve marks option names (without dashes) that declarations may not use,
// typically the tool's own flags when they are parsed in a separate pass.
func (h *Host) Reserve(names ...string) {
	for _, name := range names {
		h.reserved[name] = true
	}
}

// Declare registers every declaration: a flag named after its option, a
// default on its store key and an environment binding of the same name.
// Nothing is registered when any option clashes with an existing flag.
func (h *Host) Declare(decls *argdecl.Declarations) error {
	if decls == nil {
		return nil
	}

	all := decls.All()
	seen := make(map[string]string, len(all))
	for _, d := range all {
		name := flagName(d)
		if name == "" {
			return errors.Newf("argument %s has an empty option name", d.Name)
		}
		if h.reserved[name] {
			err := errors.Newf("option --%s of argument %s is reserved", name, d.Name)
			return errors.WithHint(err, "set opt_name_prefix or option_transform to rename the declared options")
		}
		if h.flags.Lookup(name) != nil {
			return errors.Newf("option --%s of argument %s is already defined", name, d.Name)
		}
		if other, ok := seen[name]; ok {
			return errors.Newf("arguments %s and %s map to the same option --%s", other, d.Name, name)
		}
		seen[name] = d.Name
	}

	for _, d := range all {
		name := flagName(d)
		v := &flagValue{metavar: d.Metavar}
		h.flags.Var(v, name, d.Help.OrElse(""))
		if err := h.flags.SetAnnotation(name, AnnotationStoreKey, []string{d.StoreKey}); err != nil {
			return errors.Wrapf(err, "failed to annotate option --%s", name)
		}
		h.values[d.Name] = v

		if def, ok := d.Default.Get(); ok && def != nil {
			h.store.SetDefault(d.StoreKey, def)
		}
		if err := h.store.BindEnv(d.StoreKey, d.StoreKey); err != nil {
			return errors.Wrapf(err, "failed to bind environment variable %s", d.StoreKey)
		}

		h.decls.Set(d)
		h.logger.Debugw("Declared argument",
			logger.FieldArgument, d.Name,
			logger.FieldStoreKey, d.StoreKey,
			logger.FieldOption, "--"+name)
	}
	return nil
}

// Commit resolves every declared argument and writes the winner into the
// store. Options given on the command line take precedence over
// command-line variables, which take precedence over whatever the store
// already holds (environment, config file, default).
func (h *Host) Commit(variables map[string]string) {
	for _, d := range h.decls.All() {
		if v := h.values[d.Name]; v != nil && v.set {
			h.store.Set(d.StoreKey, v.value)
			h.source[d.Name] = SourceOption
		} else if val, ok := variables[d.VariableKey]; ok {
			h.store.Set(d.StoreKey, val)
			h.source[d.Name] = SourceVariable
		} else {
			h.source[d.Name] = h.passiveSource(d.StoreKey)
		}

		if src := h.source[d.Name]; src != "" {
			h.logger.Debugw("Resolved argument",
				logger.FieldArgument, d.Name,
				logger.FieldStoreKey, d.StoreKey,
				logger.FieldSource, src)
		}
	}
}

func (h *Host) passiveSource(key string) string {
	// viper ignores empty environment variables
	if os.Getenv(key) != "" {
		return SourceEnvironment
	}
	if h.store.InConfig(key) {
		return SourceConfig
	}
	if h.store.IsSet(key) {
		return SourceDefault
	}
	return ""
}

// UnknownVariables returns the sorted keys of variables that match no
// declared variable key.
func (h *Host) UnknownVariables(variables map[string]string) []string {
	known := make(map[string]bool, h.decls.Len())
	for _, d := range h.decls.All() {
		known[d.VariableKey] = true
	}
	var unknown []string
	for k := range variables {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func flagName(d argdecl.Declaration) string {
	return strings.TrimLeft(d.Option, "-")
}

// flagValue is a string flag whose type name is the declaration's metavar,
// so usage renders as "--prefix DIR".
type flagValue struct {
	value   string
	metavar string
	set     bool
}

func (v *flagValue) String() string { return v.value }

func (v *flagValue) Set(s string) error {
	v.value = s
	v.set = true
	return nil
}

func (v *flagValue) Type() string {
	if v.metavar == "" {
		return "string"
	}
	return v.metavar
}

func render(v any) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(v)
}
