package imptest_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/toejough/basketimp/imptest"
)

// recordingReporter is a TestReporter that records failures instead of
// stopping the test, so failure paths can be asserted on.
type recordingReporter struct {
	mu       sync.Mutex
	failures []string
}

func (r *recordingReporter) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.failures...)
}

func (r *recordingReporter) Fatalf(format string, args ...any) {
	r.mu.Lock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *recordingReporter) Helper() {}

// firedTimer is a Timer whose deadlines have always already passed.
type firedTimer struct{}

func (firedTimer) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()

	return ch
}

func newCall(name string, args ...any) *imptest.GenericCall {
	return &imptest.GenericCall{
		MethodName:   name,
		Args:         args,
		ResponseChan: make(chan imptest.GenericResponse, 1),
	}
}

func named(name string) func(*imptest.GenericCall) error {
	return func(call *imptest.GenericCall) error {
		if call.MethodName != name {
			return fmt.Errorf("want %s, got %s", name, call.MethodName) //nolint:err113 // test validator
		}

		return nil
	}
}
