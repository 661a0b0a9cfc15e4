package argdecl

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// DefaultType is the declared value kind when none is given
const DefaultType = "string"

// Declaration is the fully resolved, host-registrable record for one argument.
type Declaration struct {
	Name        string
	StoreKey    string
	VariableKey string
	OptionKey   string
	Option      string // rendered option, e.g. "--cc"
	Type        string
	Nargs       int
	Metavar     string
	Default     Optional[any]
	Help        Optional[string]
}

// WireDeclaration is the serialized form of a Declaration; absent fields are omitted, not null.
type WireDeclaration struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	StoreKey    string  `json:"env_key" yaml:"env_key" toml:"env_key"`
	VariableKey string  `json:"var_key" yaml:"var_key" toml:"var_key"`
	OptionKey   string  `json:"opt_key" yaml:"opt_key" toml:"opt_key"`
	Option      string  `json:"option" yaml:"option" toml:"option"`
	Type        string  `json:"type" yaml:"type" toml:"type"`
	Nargs       int     `json:"nargs" yaml:"nargs" toml:"nargs"`
	Metavar     string  `json:"metavar" yaml:"metavar" toml:"metavar"`
	Default     *any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Help        *string `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
}

// Wire returns the serializable form of d. Absent default and help are nil.
func (d Declaration) Wire() WireDeclaration {
	w := WireDeclaration{
		Name:        d.Name,
		StoreKey:    d.StoreKey,
		VariableKey: d.VariableKey,
		OptionKey:   d.OptionKey,
		Option:      d.Option,
		Type:        d.Type,
		Nargs:       d.Nargs,
		Metavar:     d.Metavar,
	}
	if v, ok := d.Default.Get(); ok {
		w.Default = &v
	}
	if h, ok := d.Help.Get(); ok {
		w.Help = &h
	}
	return w
}

// MarshalJSON implements json.Marshaler
func (d Declaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Wire())
}

// MarshalYAML implements yaml.Marshaler
func (d Declaration) MarshalYAML() (interface{}, error) {
	return d.Wire(), nil
}

// Declarations is an ordered mapping from argument name to Declaration.
// Insertion order is preserved; re-setting a name replaces its value in place.
type Declarations struct {
	m *orderedmap.OrderedMap[string, Declaration]
}

// NewDeclarations returns an empty collection
func NewDeclarations() *Declarations {
	return &Declarations{m: orderedmap.New[string, Declaration]()}
}

// Set inserts or replaces the declaration keyed by decl.Name.
// It reports whether an existing declaration was replaced.
func (d *Declarations) Set(decl Declaration) bool {
	_, replaced := d.m.Set(decl.Name, decl)
	return replaced
}

// Get returns the declaration for name
func (d *Declarations) Get(name string) (Declaration, bool) {
	return d.m.Get(name)
}

// Len returns the number of declarations
func (d *Declarations) Len() int {
	return d.m.Len()
}

// Names returns argument names in order
func (d *Declarations) Names() []string {
	names := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns the declarations in order
func (d *Declarations) All() []Declaration {
	decls := make([]Declaration, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		decls = append(decls, pair.Value)
	}
	return decls
}

// Update copies every declaration of other into d, in other's order
func (d *Declarations) Update(other *Declarations) {
	if other == nil {
		return
	}
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		d.m.Set(pair.Key, pair.Value)
	}
}

// MarshalJSON renders the collection as a JSON object keyed by name, in order
func (d *Declarations) MarshalJSON() ([]byte, error) {
	return d.m.MarshalJSON()
}

// MarshalYAML renders the collection as a YAML mapping keyed by name, in order
func (d *Declarations) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{}
		if err := key.Encode(pair.Key); err != nil {
			return nil, err
		}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value.Wire()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
