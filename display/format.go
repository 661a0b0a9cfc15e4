// Package display renders commonargs results as json, yaml, toml, a
// terminal table or POSIX shell.
package display

import (
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/commonargs/errors"
)

// Format is an output format name
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatTable Format = "table"
	FormatSh    Format = "sh"
)

var formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatTable, FormatSh}

// Formats returns the supported format names
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat validates a format name; empty means table
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.WithHintf(errors.Newf("unknown output format %q", s),
		"supported formats: %s", strings.Join(Formats(), ", "))
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal YAML")
	}
	return enc.Close()
}

func writeTOML(w io.Writer, v interface{}) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal TOML")
	}
	return nil
}

// Document writes a plain document in one of the serialization formats
func Document(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	case FormatTOML:
		return writeTOML(w, v)
	default:
		return errors.WithHint(errors.Newf("format %q is not supported here", format),
			"use json, yaml or toml")
	}
}
