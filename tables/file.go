// Package tables loads user-defined argument tables from TOML or YAML files.
//
// A table file looks like:
//
//	schema = "1.0"
//	module = "fortran"
//	description = "Fortran compilers"
//
//	[[families]]
//	name = "progs"
//
//	  [[families.args]]
//	  name = "FC"
//	  help = "A Fortran compiler to use"
//	  default = "gfortran"
//	  metavar = "PROG"
package tables

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

// Format identifies the encoding of a table file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is the on-disk shape of a table.
type File struct {
	Schema      string       `toml:"schema" yaml:"schema"`
	Module      string       `toml:"module" yaml:"module"`
	Description string       `toml:"description" yaml:"description"`
	Families    []FamilyFile `toml:"families" yaml:"families"`
}

// FamilyFile is one [[families]] entry
type FamilyFile struct {
	Name string    `toml:"name" yaml:"name"`
	Args []ArgFile `toml:"args" yaml:"args"`
}

// ArgFile is one argument. A missing help or default stays absent in the
// resulting declarations; a YAML null default counts as missing.
type ArgFile struct {
	Name    string  `toml:"name" yaml:"name"`
	Help    *string `toml:"help" yaml:"help"`
	Default any     `toml:"default" yaml:"default"`
	Metavar string  `toml:"metavar" yaml:"metavar"`
}

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.WithHint(
			errors.NewInvalidTableError("unsupported table file extension %q", filepath.Ext(path)),
			"use .toml, .yaml or .yml")
	}
}

// LoadFile reads and validates a table file
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read table file %s", path)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "table file %s", path)
	}

	logger.Debugw("Loaded table file",
		logger.FieldFile, path,
		logger.FieldModule, f.Module,
		logger.FieldCount, len(f.Table().Select(nil)))
	return f, nil
}

// Load reads a table file and converts it to an argdecl.Table
func Load(path string) (argdecl.Table, error) {
	f, err := LoadFile(path)
	if err != nil {
		return argdecl.Table{}, err
	}
	return f.Table(), nil
}

// Parse decodes and validates table data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidTable, "%v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, errors.NewInvalidTableError("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidTable, "%v", err)
		}
	default:
		return nil, errors.Newf("unknown table format %q", format)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks schema compatibility and structural rules.
// Duplicate argument names are allowed and only logged; the last one wins.
func (f *File) Validate() error {
	if err := CheckSchema(f.Schema); err != nil {
		return err
	}
	if f.Module == "" {
		return errors.NewInvalidTableError("module name is required")
	}
	if len(f.Families) == 0 {
		return errors.NewInvalidTableError("module %s declares no families", f.Module)
	}

	families := make(map[string]bool, len(f.Families))
	for i, fam := range f.Families {
		if fam.Name == "" {
			return errors.NewInvalidTableError("family #%d of module %s has no name", i+1, f.Module)
		}
		if families[fam.Name] {
			return errors.NewInvalidTableError("family %s of module %s is declared twice", fam.Name, f.Module)
		}
		families[fam.Name] = true

		for j, arg := range fam.Args {
			if arg.Name == "" {
				return errors.NewInvalidTableError("argument #%d of family %s has no name", j+1, fam.Name)
			}
		}
	}

	if dups := argdecl.Duplicates(f.Table().Select(nil)); len(dups) > 0 {
		sort.Strings(dups)
		logger.Warnw("Duplicate argument names, the last declaration wins",
			logger.FieldModule, f.Module,
			"names", dups)
	}
	return nil
}

// Table converts the file to an argdecl.Table
func (f *File) Table() argdecl.Table {
	table := argdecl.Table{Module: f.Module}
	for _, fam := range f.Families {
		specs := make([]argdecl.Spec, 0, len(fam.Args))
		for _, arg := range fam.Args {
			spec := argdecl.Spec{Name: arg.Name, Metavar: arg.Metavar}
			if arg.Help != nil {
				spec.Description = argdecl.Some(*arg.Help)
			}
			if arg.Default != nil {
				spec.Default = argdecl.Some(arg.Default)
			}
			specs = append(specs, spec)
		}
		table.Families = append(table.Families, argdecl.Family{Name: fam.Name, Specs: specs})
	}
	return table
}
