// Package casing holds the naming conventions commonargs applies to
// argument names that no general casing library covers.
package casing

import "strings"

// ToOptionName converts an argument name to the default command-line option
// spelling: lowercase with underscores turned into dashes ("exec_prefix" -> "exec-prefix").
// It never splits on case changes, so "CXXFLAGS" stays one word.
func ToOptionName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}
