package argdecl

import (
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/teranos/commonargs/casing"
	"github.com/teranos/commonargs/errors"
)

type transformKind int

const (
	transformDefault transformKind = iota
	transformVerbatim
	transformFunc
	transformNamed
)

// Transform selects how an argument name is rewritten for one endpoint kind.
// The zero Transform means "use the endpoint kind's default".
type Transform struct {
	kind transformKind
	fn   func(string) string
	name string
}

// DefaultTransform uses the endpoint kind's default transform
func DefaultTransform() Transform {
	return Transform{}
}

// Verbatim uses the argument name unchanged
func Verbatim() Transform {
	return Transform{kind: transformVerbatim}
}

// TransformFunc applies fn to the argument name
func TransformFunc(fn func(string) string) Transform {
	return Transform{kind: transformFunc, fn: fn}
}

// NamedTransform refers to one of the built-in transforms by name (see TransformNames)
func NamedTransform(name string) Transform {
	return Transform{kind: transformNamed, name: name}
}

// IsDefault reports whether t defers to the endpoint kind's default
func (t Transform) IsDefault() bool {
	return t.kind == transformDefault
}

// String describes the transform for diagnostics
func (t Transform) String() string {
	switch t.kind {
	case transformDefault:
		return "default"
	case transformVerbatim:
		return "verbatim"
	case transformFunc:
		return "func"
	case transformNamed:
		return t.name
	default:
		return "invalid"
	}
}

var builtinTransforms = map[string]func(string) string{
	"identity":        func(s string) string { return s },
	"verbatim":        func(s string) string { return s },
	"upper":           strings.ToUpper,
	"lower":           strings.ToLower,
	"snake":           strcase.ToSnake,
	"screaming_snake": strcase.ToScreamingSnake,
	"kebab":           strcase.ToKebab,
	"camel":           strcase.ToLowerCamel,
	"pascal":          strcase.ToCamel,
	"option":          casing.ToOptionName,
}

// TransformNames lists the built-in transform names, sorted
func TransformNames() []string {
	names := make([]string, 0, len(builtinTransforms))
	for name := range builtinTransforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve turns t into a concrete function, falling back to def for the default kind.
// field names the configuration field for error messages.
func (t Transform) resolve(field string, def func(string) string) (func(string) string, error) {
	switch t.kind {
	case transformDefault:
		return def, nil
	case transformVerbatim:
		return builtinTransforms["verbatim"], nil
	case transformFunc:
		if t.fn == nil {
			return nil, errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s is a nil function", field)
		}
		return t.fn, nil
	case transformNamed:
		fn, ok := builtinTransforms[t.name]
		if !ok {
			err := errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s %q", field, t.name)
			return nil, errors.WithHintf(err, "known transforms: %s", strings.Join(TransformNames(), ", "))
		}
		return fn, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s has kind %d", field, t.kind)
	}
}

// TransformFrom converts a loosely typed transform value into a Transform.
// Accepted: nil or true (default), false (verbatim), a transform name,
// func(string) string and Transform.
func TransformFrom(field string, raw any) (Transform, error) {
	switch v := raw.(type) {
	case nil:
		return DefaultTransform(), nil
	case Transform:
		return v, nil
	case bool:
		if v {
			return DefaultTransform(), nil
		}
		return Verbatim(), nil
	case string:
		if v == "" || v == "default" {
			return DefaultTransform(), nil
		}
		if _, ok := builtinTransforms[v]; !ok {
			err := errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s %q", field, v)
			return Transform{}, errors.WithHintf(err, "known transforms: %s", strings.Join(TransformNames(), ", "))
		}
		return NamedTransform(v), nil
	case func(string) string:
		if v == nil {
			return Transform{}, errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s is a nil function", field)
		}
		return TransformFunc(v), nil
	default:
		return Transform{}, errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "%s of type %T", field, raw)
	}
}
