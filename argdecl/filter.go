package argdecl

import (
	"github.com/teranos/commonargs/errors"
)

type filterKind int

const (
	filterAll filterKind = iota
	filterFunc
	filterNames
)

// Filter restricts which argument names are processed.
// The zero Filter accepts every name.
type Filter struct {
	kind  filterKind
	fn    func(string) bool
	names map[string]struct{}
}

// FilterFunc wraps a caller-supplied predicate
func FilterFunc(fn func(string) bool) Filter {
	return Filter{kind: filterFunc, fn: fn}
}

// FilterNames accepts exactly the given names
func FilterNames(names ...string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return Filter{kind: filterNames, names: set}
}

// Predicate resolves the filter into a single predicate.
// A function filter with a nil function fails with ErrInvalidFilterKind.
func (f Filter) Predicate() (func(string) bool, error) {
	switch f.kind {
	case filterAll:
		return func(string) bool { return true }, nil
	case filterFunc:
		if f.fn == nil {
			return nil, errors.Wrap(errors.ErrInvalidFilterKind, "name filter predicate is nil")
		}
		return f.fn, nil
	case filterNames:
		names := f.names
		return func(name string) bool {
			_, ok := names[name]
			return ok
		}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidFilterKind, "filter kind %d", f.kind)
	}
}

// FilterFrom converts a loosely typed name_filter value into a Filter.
// Accepted: nil, Filter, func(string) bool, []string, []any of strings,
// map[string]bool (true entries) and map[string]struct{}.
func FilterFrom(raw any) (Filter, error) {
	switch v := raw.(type) {
	case nil:
		return Filter{}, nil
	case Filter:
		return v, nil
	case func(string) bool:
		if v == nil {
			return Filter{}, errors.Wrap(errors.ErrInvalidFilterKind, "name_filter is a nil function")
		}
		return FilterFunc(v), nil
	case []string:
		return FilterNames(v...), nil
	case []any:
		names := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return Filter{}, errors.Wrapf(errors.ErrInvalidFilterKind, "name_filter[%d] is %T, not a name", i, item)
			}
			names = append(names, s)
		}
		return FilterNames(names...), nil
	case map[string]bool:
		names := make([]string, 0, len(v))
		for name, keep := range v {
			if keep {
				names = append(names, name)
			}
		}
		return FilterNames(names...), nil
	case map[string]struct{}:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		return FilterNames(names...), nil
	default:
		return Filter{}, errors.Wrapf(errors.ErrInvalidFilterKind, "name_filter of type %T", raw)
	}
}
