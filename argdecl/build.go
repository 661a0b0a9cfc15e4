package argdecl

// BuildParams carries the per-call settings of Build.
type BuildParams struct {
	// Overrides maps argument names to defaults that take precedence over table defaults
	Overrides map[string]any
	// Type is the declared value kind; empty means DefaultType
	Type string
	// Metavar, when non-empty, is used for every declaration of the call
	Metavar string
}

// Build assembles declarations for the specs accepted by keep, in input order.
//
// The default is taken from Overrides, then from the spec; when neither has one
// the declaration has no default at all. When two accepted specs share a name
// the later one wins and keeps the position of the first.
func Build(specs []Spec, keep func(string) bool, conv *NameConv, params BuildParams) *Declarations {
	typ := params.Type
	if typ == "" {
		typ = DefaultType
	}

	decls := NewDeclarations()
	for _, spec := range specs {
		if !keep(spec.Name) {
			continue
		}

		def := spec.Default
		if v, ok := params.Overrides[spec.Name]; ok {
			def = Some(v)
		}

		decls.Set(Declaration{
			Name:        spec.Name,
			StoreKey:    conv.StoreKey(spec.Name),
			VariableKey: conv.VariableKey(spec.Name),
			OptionKey:   conv.OptionKey(spec.Name),
			Option:      conv.Option(spec.Name),
			Type:        typ,
			Nargs:       1,
			Metavar:     ResolveMetavar(spec, params.Metavar),
			Default:     def,
			Help:        spec.Description,
		})
	}
	return decls
}
