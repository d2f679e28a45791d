package imptest

import (
	"sync"
	"time"
)

// GetOrCreateImp returns the Imp for t, creating one on first use. Mocks and
// targets built from the same t share it. When t supports Cleanup the Imp is
// dropped at the end of the test.
func GetOrCreateImp(t TestReporter) *Imp {
	if imp, ok := t.(*Imp); ok {
		return imp
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if imp, ok := registry[t]; ok {
		return imp
	}

	imp := NewImp(t)
	registry[t] = imp

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}

	return imp
}

// SetTimeout sets the ordered-expectation timeout for t's Imp.
func SetTimeout(t TestReporter, d time.Duration) {
	GetOrCreateImp(t).SetTimeout(d)
}

// Wait blocks until every Eventually expectation under t is satisfied.
// It returns at once if t never created an Imp.
func Wait(t TestReporter) {
	registryMu.Lock()
	imp, ok := registry[t]
	registryMu.Unlock()

	if !ok {
		return
	}

	imp.Wait()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // registry coordinates mocks created from the same test
	registry = make(map[TestReporter]*Imp)
	//nolint:gochecknoglobals // guards registry
	registryMu sync.Mutex
)

type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
