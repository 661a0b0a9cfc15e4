// Package common is the registry of built-in argument modules.
package common

import (
	"sort"
	"strings"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/common/ar"
	"github.com/teranos/commonargs/common/cc"
	"github.com/teranos/commonargs/common/gnudirs"
	"github.com/teranos/commonargs/errors"
)

// Info describes a registered module
type Info struct {
	Name        string
	Description string
	Families    []string
	Count       int
}

type entry struct {
	description string
	table       func() argdecl.Table
}

var registry = map[string]entry{
	cc.Module:      {"C and C++ compilers, linkers and their flags", cc.Table},
	ar.Module:      {"Static library archiver and archive indexer", ar.Table},
	gnudirs.Module: {"GNU installation directories and man page extensions", gnudirs.Table},
}

// Modules returns the names of all built-in modules, sorted
func Modules() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the table of the named module.
func Lookup(name string) (argdecl.Table, error) {
	e, ok := registry[name]
	if !ok {
		err := errors.Wrapf(errors.ErrUnknownModule, "%q", name)
		return argdecl.Table{}, errors.WithHintf(err, "available modules: %s", strings.Join(Modules(), ", "))
	}
	return e.table(), nil
}

// Describe returns summary information about every built-in module, sorted by name
func Describe() []Info {
	infos := make([]Info, 0, len(registry))
	for _, name := range Modules() {
		e := registry[name]
		table := e.table()
		infos = append(infos, Info{
			Name:        name,
			Description: e.description,
			Families:    table.FamilyNames(),
			Count:       len(table.Select(nil)),
		})
	}
	return infos
}
