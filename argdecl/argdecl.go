// Package argdecl turns static tables of build-tool arguments (CC, CFLAGS,
// prefix, ...) into declarations for a host tool.
//
// Every argument is projected onto three endpoints:
//
//	store key     construction environment entry, e.g. ${CC}
//	variable key  command-line variable, e.g. CC=gcc
//	option key    command-line option destination, rendered as --cc
//
// Keys are derived by a NameConv from independently configured prefix,
// suffix and transform rules. Declarations additionally carry help text,
// default value, metavar, type and cardinality.
//
// Typical use from a module package:
//
//	decls, err := argdecl.Declare(table, argdecl.Options{
//	    Defaults: map[string]any{"CC": "gcc"},
//	    Filter:   argdecl.FilterNames("CC", "CXX"),
//	    NameConv: argdecl.NameConvConfig{Variable: argdecl.EndpointConfig{Prefix: "MY_"}},
//	})
//
// Everything here is a pure function of its inputs. Nothing logs, and no
// state survives a call.
package argdecl

// Options configures Names and Declare.
type Options struct {
	// Defaults override table defaults per argument name
	Defaults map[string]any
	// Filter restricts which names are processed; the zero Filter keeps all
	Filter Filter
	// Type is the declared value kind (default "string")
	Type string
	// Metavar, when set, replaces the inferred metavar of every declaration
	Metavar string
	// Families switches families on or off by name; missing families are included
	Families map[string]bool
	// NameConv configures key conversion. Its Option.Transform defaults to
	// Verbatim here, so option keys equal argument names unless overridden.
	NameConv NameConvConfig
	// Converter, when non-nil, is used instead of building one from NameConv
	Converter *NameConv
}

// Names returns the names of the table's enabled families accepted by the filter, in order.
func Names(table Table, opts Options) ([]string, error) {
	keep, err := opts.Filter.Predicate()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, spec := range table.Select(opts.Families) {
		if keep(spec.Name) {
			names = append(names, spec.Name)
		}
	}
	return names, nil
}

// Declare builds declarations for the table's enabled families.
// Filter and converter are both constructed before any declaration is built,
// so a configuration error never yields a partial result.
func Declare(table Table, opts Options) (*Declarations, error) {
	keep, err := opts.Filter.Predicate()
	if err != nil {
		return nil, err
	}

	conv, err := opts.converter()
	if err != nil {
		return nil, err
	}

	return Build(table.Select(opts.Families), keep, conv, BuildParams{
		Overrides: opts.Defaults,
		Type:      opts.Type,
		Metavar:   opts.Metavar,
	}), nil
}

func (opts Options) converter() (*NameConv, error) {
	if opts.Converter != nil {
		return opts.Converter, nil
	}
	cfg := opts.NameConv
	if cfg.Option.Transform.IsDefault() {
		cfg.Option.Transform = Verbatim()
	}
	return NewNameConv(cfg)
}

// Sink receives declarations and registers them as live endpoints in a host tool.
type Sink interface {
	Declare(decls *Declarations) error
}

// DeclareTo builds declarations and hands them to sink.
func DeclareTo(sink Sink, table Table, opts Options) (*Declarations, error) {
	decls, err := Declare(table, opts)
	if err != nil {
		return nil, err
	}
	if err := sink.Declare(decls); err != nil {
		return nil, err
	}
	return decls, nil
}
