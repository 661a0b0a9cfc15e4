package argdecl

import (
	"github.com/teranos/commonargs/casing"
)

// DefaultOptionPrefix is the leading marker of rendered command-line options
const DefaultOptionPrefix = "--"

// EndpointConfig configures the key of one endpoint kind: prefix + transform(name) + suffix.
type EndpointConfig struct {
	Prefix    string
	Suffix    string
	Transform Transform
}

// NameConvConfig configures a NameConv.
// The zero value yields identity keys for all three endpoint kinds and
// options rendered as "--" + lowercase name with underscores as dashes.
type NameConvConfig struct {
	Store    EndpointConfig // env_key_*: construction environment / store key
	Variable EndpointConfig // var_key_*: command-line variable key
	Option   EndpointConfig // opt_key_*: command-line option destination key

	// OptionPrefix is the leading option marker; nil means DefaultOptionPrefix.
	// A pointer so that an explicit empty marker can be configured.
	OptionPrefix     *string
	OptionNamePrefix string
	OptionNameSuffix string
	OptionTransform  Transform
}

// NameConv converts argument names to endpoint keys.
// It is immutable; build a new one when configuration changes.
type NameConv struct {
	store    endpoint
	variable endpoint
	option   endpoint

	optPrefix     string
	optNamePrefix string
	optNameSuffix string
	optTransform  func(string) string
}

type endpoint struct {
	prefix    string
	suffix    string
	transform func(string) string
}

func (e endpoint) key(name string) string {
	return e.prefix + e.transform(name) + e.suffix
}

func identity(s string) string { return s }

// NewNameConv builds a converter, resolving every transform up front.
// Unresolvable transforms fail with errors.ErrUnresolvedEndpointTransform.
func NewNameConv(cfg NameConvConfig) (*NameConv, error) {
	storeFn, err := cfg.Store.Transform.resolve("env_key_transform", identity)
	if err != nil {
		return nil, err
	}
	varFn, err := cfg.Variable.Transform.resolve("var_key_transform", identity)
	if err != nil {
		return nil, err
	}
	optKeyFn, err := cfg.Option.Transform.resolve("opt_key_transform", identity)
	if err != nil {
		return nil, err
	}
	optFn, err := cfg.OptionTransform.resolve("option_transform", casing.ToOptionName)
	if err != nil {
		return nil, err
	}

	optPrefix := DefaultOptionPrefix
	if cfg.OptionPrefix != nil {
		optPrefix = *cfg.OptionPrefix
	}

	return &NameConv{
		store:         endpoint{prefix: cfg.Store.Prefix, suffix: cfg.Store.Suffix, transform: storeFn},
		variable:      endpoint{prefix: cfg.Variable.Prefix, suffix: cfg.Variable.Suffix, transform: varFn},
		option:        endpoint{prefix: cfg.Option.Prefix, suffix: cfg.Option.Suffix, transform: optKeyFn},
		optPrefix:     optPrefix,
		optNamePrefix: cfg.OptionNamePrefix,
		optNameSuffix: cfg.OptionNameSuffix,
		optTransform:  optFn,
	}, nil
}

// MustNameConv is like NewNameConv but panics on error; for static configuration only.
func MustNameConv(cfg NameConvConfig) *NameConv {
	nc, err := NewNameConv(cfg)
	if err != nil {
		panic(err)
	}
	return nc
}

// StoreKey returns the key under which the argument lives in the host's store
func (nc *NameConv) StoreKey(name string) string {
	return nc.store.key(name)
}

// VariableKey returns the key of the command-line variable (NAME=value)
func (nc *NameConv) VariableKey(name string) string {
	return nc.variable.key(name)
}

// OptionKey returns the destination key of the command-line option
func (nc *NameConv) OptionKey(name string) string {
	return nc.option.key(name)
}

// Option returns the rendered command-line option, e.g. "--exec-prefix"
func (nc *NameConv) Option(name string) string {
	return nc.optPrefix + nc.optNamePrefix + nc.optTransform(name) + nc.optNameSuffix
}

// OptionPrefix returns the leading option marker in use
func (nc *NameConv) OptionPrefix() string {
	return nc.optPrefix
}
