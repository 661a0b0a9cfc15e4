package argdecl

// Spec is one entry of an argument table: a name with optional help text,
// optional default value and optional metavar.
type Spec struct {
	Name        string
	Description Optional[string]
	Default     Optional[any]
	// Metavar overrides the name-based placeholder heuristic for this argument
	Metavar string
}

// Arg creates a Spec with a description and no default
func Arg(name, description string) Spec {
	return Spec{Name: name, Description: Some(description)}
}

// ArgDefault creates a Spec with a description and a default value
func ArgDefault(name, description string, def any) Spec {
	return Spec{Name: name, Description: Some(description), Default: Some(def)}
}

// WithMetavar returns a copy of s with an explicit metavar
func (s Spec) WithMetavar(metavar string) Spec {
	s.Metavar = metavar
	return s
}

// Family is a named, ordered group of arguments that can be switched on or off as a whole.
type Family struct {
	Name  string
	Specs []Spec
}

// Table is the static argument catalog of one module (e.g. "cc", "ar").
// Families are kept in declaration order.
type Table struct {
	Module   string
	Families []Family
}

// FamilyNames returns the family names in declaration order
func (t Table) FamilyNames() []string {
	names := make([]string, 0, len(t.Families))
	for _, f := range t.Families {
		names = append(names, f.Name)
	}
	return names
}

// HasFamily reports whether the table defines a family with the given name
func (t Table) HasFamily(name string) bool {
	for _, f := range t.Families {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Select concatenates the specs of every enabled family, in family order.
// A family is enabled unless switches maps its name to false; switch names
// that match no family are ignored.
func (t Table) Select(switches map[string]bool) []Spec {
	var specs []Spec
	for _, f := range t.Families {
		if include, ok := switches[f.Name]; ok && !include {
			continue
		}
		specs = append(specs, f.Specs...)
	}
	return specs
}

// Duplicates returns names that occur more than once in specs, in order of
// their second occurrence. Declaration building lets the last one win.
func Duplicates(specs []Spec) []string {
	seen := make(map[string]int, len(specs))
	var dups []string
	for _, s := range specs {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}
