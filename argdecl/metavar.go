package argdecl

import "strings"

// Metavar placeholders produced by InferMetavar
const (
	MetavarExt     = "EXT"
	MetavarDir     = "DIR"
	MetavarGeneric = "X"
)

// InferMetavar guesses a display placeholder from the shape of an argument name.
// It is a best-effort display aid: names ending in "ext" get EXT, names ending
// in "dir" (and prefix / exec_prefix) get DIR, everything else X. Matching is
// case-insensitive.
func InferMetavar(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ext"):
		return MetavarExt
	case strings.HasSuffix(lower, "dir"), lower == "prefix", lower == "exec_prefix":
		return MetavarDir
	default:
		return MetavarGeneric
	}
}

// ResolveMetavar picks the metavar for one spec: the explicit per-call
// metavar wins, then the spec's own metavar, then InferMetavar.
func ResolveMetavar(spec Spec, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if spec.Metavar != "" {
		return spec.Metavar
	}
	return InferMetavar(spec.Name)
}
