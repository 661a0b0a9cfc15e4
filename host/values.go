package host

import (
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Value is the resolved state of one declared argument.
type Value struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	StoreKey string `json:"env_key" yaml:"env_key" toml:"env_key"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Set      bool   `json:"set" yaml:"set" toml:"set"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
}

// Values returns the current value of every declared argument, in
// declaration order. Arguments without any value have Set false.
func (h *Host) Values() []Value {
	decls := h.decls.All()
	values := make([]Value, 0, len(decls))
	for _, d := range decls {
		v := Value{Name: d.Name, StoreKey: d.StoreKey, Source: h.source[d.Name]}
		if raw := h.store.Get(d.StoreKey); raw != nil {
			v.Value = fmt.Sprint(raw)
			v.Set = true
		}
		values = append(values, v)
	}
	return values
}

// Subst expands ${name} references in s. A name is looked up as an argument
// name first and as a store key second; unknown names expand to "".
// Expansion repeats until the string stops changing, bounded by the number
// of declarations.
func (h *Host) Subst(s string) string {
	mapping := func(name string) string {
		key := name
		if d, ok := h.decls.Get(name); ok {
			key = d.StoreKey
		}
		if raw := h.store.Get(key); raw != nil {
			return fmt.Sprint(raw)
		}
		return ""
	}

	for i := 0; i <= h.decls.Len(); i++ {
		next := os.Expand(s, mapping)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// HelpText renders one block per declared argument:
//
//	CC: A C compiler to use
//	    default: UNDEFINED
//	    actual: None
func (h *Host) HelpText() string {
	var sb strings.Builder
	for _, d := range h.decls.All() {
		def := "UNDEFINED"
		if v, ok := d.Default.Get(); ok {
			def = render(v)
		}
		fmt.Fprintf(&sb, "%s: %s\n", d.VariableKey, d.Help.OrElse(""))
		fmt.Fprintf(&sb, "    default: %s\n", def)
		fmt.Fprintf(&sb, "    actual: %s\n\n", render(h.store.Get(d.StoreKey)))
	}
	return sb.String()
}

// ShellExports renders an export line per argument that has a value,
// quoted for POSIX shells. When expand is true ${name} references are
// resolved first.
func (h *Host) ShellExports(expand bool) string {
	var sb strings.Builder
	for _, v := range h.Values() {
		if !v.Set {
			continue
		}
		val := v.Value
		if expand {
			val = h.Subst(val)
		}
		fmt.Fprintf(&sb, "export %s=%s\n", v.StoreKey, shellquote.Join(val))
	}
	return sb.String()
}
