package imptest

import (
	"reflect"
	"sync"
)

// Target is a run of the code under test, started in its own goroutine so
// that it can block on mocked dependencies while the test answers them.
type Target[R any] struct {
	t          TestReporter
	returnChan chan R
	panicChan  chan any

	mu       sync.Mutex
	finished bool
	returned R
	panicked any
}

// Start runs fn in a goroutine and returns a handle for checking how it ends.
func Start[R any](t TestReporter, fn func() R) *Target[R] {
	target := &Target[R]{
		t:          t,
		returnChan: make(chan R, 1),
		panicChan:  make(chan any, 1),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				target.panicChan <- r
			}
		}()

		target.returnChan <- fn()
	}()

	return target
}

// StartVoid is Start for functions with no results.
func StartVoid(t TestReporter, fn func()) *Target[struct{}] {
	return Start(t, func() struct{} {
		fn()

		return struct{}{}
	})
}

// ExpectCompletes fails the test if the run panicked.
func (tg *Target[R]) ExpectCompletes() {
	tg.t.Helper()
	tg.WaitForResponse()

	if tg.panicked != nil {
		tg.t.Fatalf("expected function to return, but it panicked with: %v", tg.panicked)
	}
}

// ExpectPanicEquals fails the test unless the run panicked with exactly value.
func (tg *Target[R]) ExpectPanicEquals(value any) {
	tg.t.Helper()
	tg.WaitForResponse()

	if tg.panicked == nil {
		tg.t.Fatalf("expected function to panic with %#v, but it returned %#v", value, tg.returned)

		return
	}

	if !reflect.DeepEqual(tg.panicked, value) {
		tg.t.Fatalf("expected panic value %#v, got %#v", value, tg.panicked)
	}
}

// ExpectPanicMatches fails the test unless the run panicked with a value
// accepted by matcher.
func (tg *Target[R]) ExpectPanicMatches(matcher any) {
	tg.t.Helper()
	tg.WaitForResponse()

	if tg.panicked == nil {
		tg.t.Fatalf("expected function to panic, but it returned %#v", tg.returned)

		return
	}

	ok, msg := MatchValue(tg.panicked, matcher)
	if !ok {
		tg.t.Fatalf("panic value: %s", msg)
	}
}

// ExpectReturnsEqual fails the test unless the run returned exactly expected.
func (tg *Target[R]) ExpectReturnsEqual(expected R) {
	tg.t.Helper()
	tg.ExpectCompletes()

	if !reflect.DeepEqual(tg.returned, expected) {
		tg.t.Fatalf("expected return value %#v, got %#v", expected, tg.returned)
	}
}

// ExpectReturnsMatch fails the test unless the run returned a value accepted
// by matcher.
func (tg *Target[R]) ExpectReturnsMatch(matcher any) {
	tg.t.Helper()
	tg.ExpectCompletes()

	ok, msg := MatchValue(tg.returned, matcher)
	if !ok {
		tg.t.Fatalf("return value: %s", msg)
	}
}

// Result waits for the run to return and gives back its value.
func (tg *Target[R]) Result() R {
	tg.t.Helper()
	tg.ExpectCompletes()

	return tg.returned
}

// WaitForResponse blocks until the run returns or panics.
func (tg *Target[R]) WaitForResponse() {
	tg.mu.Lock()
	defer tg.mu.Unlock()

	if tg.finished {
		return
	}

	select {
	case ret := <-tg.returnChan:
		tg.returned = ret
	case p := <-tg.panicChan:
		tg.panicked = p
	}

	tg.finished = true
}
