package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/common"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/host"
)

// Declarations renders declarations in order.
// TOML has no ordered top-level mapping, so it gets an [[arguments]] array.
func Declarations(w io.Writer, decls *argdecl.Declarations, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, decls)
	case FormatYAML:
		return writeYAML(w, decls)
	case FormatTOML:
		wire := make([]argdecl.WireDeclaration, 0, decls.Len())
		for _, d := range decls.All() {
			wire = append(wire, d.Wire())
		}
		return writeTOML(w, map[string]any{"arguments": wire})
	case FormatTable:
		data := pterm.TableData{{"NAME", "ENV KEY", "VAR KEY", "OPTION", "METAVAR", "DEFAULT", "HELP"}}
		for _, d := range decls.All() {
			def := "-"
			if v, ok := d.Default.Get(); ok {
				def = fmt.Sprint(v)
			}
			data = append(data, []string{d.Name, d.StoreKey, d.VariableKey, d.Option, d.Metavar, def, d.Help.OrElse("")})
		}
		return writeTable(w, data)
	case FormatSh:
		// Only arguments with a default produce a line
		var sb strings.Builder
		for _, d := range decls.All() {
			v, ok := d.Default.Get()
			if !ok || v == nil {
				continue
			}
			fmt.Fprintf(&sb, "%s=%s\n", d.StoreKey, shellquote.Join(fmt.Sprint(v)))
		}
		_, err := io.WriteString(w, sb.String())
		return err
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// Names renders argument names
func Names(w io.Writer, names []string, format Format) error {
	if names == nil {
		names = []string{}
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, names)
	case FormatYAML:
		return writeYAML(w, names)
	case FormatTOML:
		return writeTOML(w, map[string]any{"names": names})
	case FormatTable, FormatSh:
		for _, n := range names {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// Values renders resolved argument values. The sh format emits export
// lines for arguments that have a value.
func Values(w io.Writer, values []host.Value, format Format) error {
	if values == nil {
		values = []host.Value{}
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, values)
	case FormatYAML:
		return writeYAML(w, values)
	case FormatTOML:
		return writeTOML(w, map[string]any{"values": values})
	case FormatTable:
		data := pterm.TableData{{"NAME", "ENV KEY", "VALUE", "SOURCE"}}
		for _, v := range values {
			val := "None"
			if v.Set {
				val = v.Value
			}
			data = append(data, []string{v.Name, v.StoreKey, val, v.Source})
		}
		return writeTable(w, data)
	case FormatSh:
		var sb strings.Builder
		for _, v := range values {
			if v.Set {
				fmt.Fprintf(&sb, "export %s=%s\n", v.StoreKey, shellquote.Join(v.Value))
			}
		}
		_, err := io.WriteString(w, sb.String())
		return err
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// Modules renders the built-in module registry
func Modules(w io.Writer, infos []common.Info, format Format) error {
	type wireInfo struct {
		Name        string   `json:"name" yaml:"name" toml:"name"`
		Description string   `json:"description" yaml:"description" toml:"description"`
		Families    []string `json:"families" yaml:"families" toml:"families"`
		Count       int      `json:"count" yaml:"count" toml:"count"`
	}
	wire := make([]wireInfo, 0, len(infos))
	for _, i := range infos {
		wire = append(wire, wireInfo(i))
	}

	switch format {
	case FormatJSON:
		return WriteJSON(w, wire)
	case FormatYAML:
		return writeYAML(w, wire)
	case FormatTOML:
		return writeTOML(w, map[string]any{"modules": wire})
	case FormatTable:
		data := pterm.TableData{{"MODULE", "ARGUMENTS", "FAMILIES", "DESCRIPTION"}}
		for _, i := range infos {
			data = append(data, []string{i.Name, strconv.Itoa(i.Count), strings.Join(i.Families, ", "), i.Description})
		}
		return writeTable(w, data)
	case FormatSh:
		for _, i := range infos {
			if _, err := fmt.Fprintln(w, i.Name); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
