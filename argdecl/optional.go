package argdecl

// Optional holds a value that may be absent.
// The zero Optional is absent, which is distinct from a present nil or empty value.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSet reports whether the value is present
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrElse returns the value if present, fallback otherwise
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}
