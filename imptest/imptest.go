// Package imptest provides conversational test doubles for Go interfaces.
//
// The code under test runs in its own goroutine (see Start). Every call it makes
// on a mocked dependency is sent to an Imp and blocks until the test claims the
// call with an expectation and injects a response:
//
//	imp := imptest.NewImp(t)
//	store := NewBasketLikeImp(imp)
//	result := imptest.Start(imp, func() error { return mgr.AddProduct(p) })
//	store.AddProduct.ExpectCalledWithExactly(p).InjectReturnValues(nil)
//	result.ExpectReturnsEqual(nil)
//
// Mocks for an interface are produced by the impgen tool.
package imptest

import "time"

// TestReporter is the minimal interface imptest needs from test frameworks.
// *testing.T, *testing.B and *rapid.T all satisfy it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Timer abstracts time-based operations for testability.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
