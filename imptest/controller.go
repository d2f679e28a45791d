package imptest

import (
	"sync"
	"time"
)

// Call is anything the Controller can queue and hand out.
type Call interface {
	Name() string
	Done() bool
}

// Controller owns the queue of calls made by the code under test and the
// waiters registered by the test. Calls arrive on CallChan and are routed by a
// single dispatch goroutine.
type Controller[T Call] struct {
	T        TestReporter
	Timer    Timer
	CallChan chan T

	// PendingMatcher sees every incoming call first, under the controller lock.
	// Returning true means the call was claimed by an Eventually expectation and
	// needs no further routing.
	PendingMatcher func(T) bool

	mu        sync.Mutex
	callQueue []T
	waiters   []*waiter[T]
}

// NewController creates a controller backed by the real clock.
func NewController[T Call](t TestReporter) *Controller[T] {
	return NewControllerWithTimer[T](t, realTimer{})
}

// NewControllerWithTimer creates a controller with a custom timer.
func NewControllerWithTimer[T Call](t TestReporter, timer Timer) *Controller[T] {
	ctrl := &Controller[T]{
		T:        t,
		Timer:    timer,
		CallChan: make(chan T, 1),
	}
	go ctrl.dispatchLoop()

	return ctrl
}

// GetCallEventually waits indefinitely for a call accepted by validator. The
// whole queue is scanned, so calls that arrived out of order are fine.
func (c *Controller[T]) GetCallEventually(validator func(T) error) T {
	c.T.Helper()

	c.mu.Lock()

	for i, call := range c.callQueue {
		if validator(call) == nil {
			c.callQueue = append(c.callQueue[:i], c.callQueue[i+1:]...)
			c.mu.Unlock()

			return call
		}
	}

	// register before unlocking so a call can't slip past us
	mine := newWaiter(validator, false)
	c.waiters = append(c.waiters, mine)
	c.mu.Unlock()

	return <-mine.result
}

// GetCallOrdered waits for the next call and fails the test if it is not the
// one validator accepts. A timeout of zero waits forever.
func (c *Controller[T]) GetCallOrdered(timeout time.Duration, validator func(T) error) T {
	c.T.Helper()

	var zero T

	c.mu.Lock()

	if len(c.callQueue) > 0 {
		first := c.callQueue[0]
		c.callQueue = c.callQueue[1:]
		c.mu.Unlock()

		err := validator(first)
		if err != nil {
			c.T.Fatalf("ordered mode fail-fast: %v", err)

			return zero
		}

		return first
	}

	mine := newWaiter(validator, true)
	c.waiters = append(c.waiters, mine)
	c.mu.Unlock()

	var timeoutChan <-chan time.Time
	if timeout > 0 {
		timeoutChan = c.Timer.After(timeout)
	}

	select {
	case call := <-mine.result:
		return call
	case err := <-mine.mismatch:
		c.T.Fatalf("ordered mode fail-fast: %v", err)

		return zero
	case <-timeoutChan:
		c.removeWaiter(mine)
		c.T.Fatalf("timeout after %v waiting for call", timeout)

		return zero
	}
}

// QueueLen reports how many calls are waiting to be claimed.
func (c *Controller[T]) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.callQueue)
}

func (c *Controller[T]) dispatchLoop() {
	for call := range c.CallChan {
		c.mu.Lock()

		if c.PendingMatcher == nil || !c.PendingMatcher(call) {
			c.route(call)
		}

		c.mu.Unlock()
	}
}

// route hands call to the first waiter that accepts it. An ordered waiter at
// the head of the line that rejects the call gets the mismatch instead.
// Callers hold c.mu.
func (c *Controller[T]) route(call T) {
	if len(c.waiters) > 0 && c.waiters[0].failOnMismatch {
		head := c.waiters[0]

		err := head.validator(call)
		if err != nil {
			c.waiters = c.waiters[1:]
			head.mismatch <- err

			return
		}
	}

	for i, w := range c.waiters {
		if w.validator(call) == nil {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			w.result <- call

			return
		}
	}

	c.callQueue = append(c.callQueue, call)
}

func (c *Controller[T]) removeWaiter(target *waiter[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, w := range c.waiters {
		if w == target {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)

			return
		}
	}
}

type waiter[T any] struct {
	validator      func(T) error
	result         chan T
	mismatch       chan error
	failOnMismatch bool
}

func newWaiter[T any](validator func(T) error, failOnMismatch bool) *waiter[T] {
	return &waiter[T]{
		validator:      validator,
		result:         make(chan T, 1),
		mismatch:       make(chan error, 1),
		failOnMismatch: failOnMismatch,
	}
}
