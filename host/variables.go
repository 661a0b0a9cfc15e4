package host

import "strings"

// ParseVariables splits NAME=value words out of args. Words that do not look
// like variable assignments, including everything after "--", are returned
// in rest unchanged. A later assignment to the same name wins.
func ParseVariables(args []string) (variables map[string]string, rest []string) {
	variables = make(map[string]string)
	for i, arg := range args {
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		name, value, ok := strings.Cut(arg, "=")
		if !ok || !isVariableName(name) {
			rest = append(rest, arg)
			continue
		}
		variables[name] = value
	}
	return variables, rest
}

func isVariableName(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
