package datapath

import "fmt"

// Wildcardable is a partition value that is either the "*" wildcard or
// a concrete value of type T, as in "ts=1337" vs "ts=*". The zero
// value is the wildcard.
type Wildcardable[T comparable] struct {
	value    T
	concrete bool
}

// Star returns the wildcard value.
func Star[T comparable]() Wildcardable[T] {
	return Wildcardable[T]{}
}

// Value wraps a concrete value.
func Value[T comparable](v T) Wildcardable[T] {
	return Wildcardable[T]{value: v, concrete: true}
}

// IsStar reports whether this value is the wildcard.
func (w Wildcardable[T]) IsStar() bool { return !w.concrete }

// Inner returns the concrete value, or false for the wildcard.
func (w Wildcardable[T]) Inner() (T, bool) {
	return w.value, w.concrete
}

// String renders the value with its default formatting, or "*" for the
// wildcard. Use Text when the value needs specific formatting.
func (w Wildcardable[T]) String() string {
	if !w.concrete {
		return "*"
	}
	return fmt.Sprint(w.value)
}

// Text renders the value as path text: "*" for the wildcard, format(v)
// otherwise.
func (w Wildcardable[T]) Text(format func(T) string) string {
	if !w.concrete {
		return "*"
	}
	return format(w.value)
}

// ParseWildcardable parses "*" as the wildcard and anything else with
// parse.
func ParseWildcardable[T comparable](s string, parse func(string) (T, error)) (Wildcardable[T], error) {
	if s == "*" {
		return Star[T](), nil
	}
	v, err := parse(s)
	if err != nil {
		return Wildcardable[T]{}, err
	}
	return Value(v), nil
}
