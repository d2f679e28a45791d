package imptest

import (
	"fmt"
	"reflect"
)

// Matcher is satisfied by gomega matchers, so any of them can be passed where
// imptest accepts a matcher.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any matches every value.
func Any() Matcher {
	return anyMatcher{}
}

// MatchValue reports whether actual matches expected. Matchers are asked
// directly; anything else is compared with reflect.DeepEqual.
func MatchValue(actual, expected any) (bool, string) {
	matcher, ok := expected.(Matcher)
	if !ok {
		if reflect.DeepEqual(actual, expected) {
			return true, ""
		}

		return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
	}

	success, err := matcher.Match(actual)
	if err != nil {
		return false, err.Error()
	}

	if !success {
		return false, matcher.FailureMessage(actual)
	}

	return true, ""
}

// Satisfies matches values of type T for which predicate returns nil.
func Satisfies[T any](predicate func(T) error) Matcher {
	return &satisfiesMatcher[T]{predicate: predicate}
}

type anyMatcher struct{}

func (anyMatcher) FailureMessage(_ any) string {
	return ""
}

func (anyMatcher) Match(_ any) (bool, error) {
	return true, nil
}

type satisfiesMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfiesMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("%#v does not satisfy predicate: %v", actual, m.lastErr)
	}

	var zero T

	return fmt.Sprintf("expected a %T, got %T", zero, actual)
}

func (m *satisfiesMatcher[T]) Match(actual any) (bool, error) {
	m.lastErr = nil

	typed, ok := actual.(T)
	if !ok {
		return false, nil
	}

	m.lastErr = m.predicate(typed)

	return m.lastErr == nil, nil
}
