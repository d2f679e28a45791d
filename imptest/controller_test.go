package imptest_test

import (
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL
	"github.com/toejough/basketimp/imptest"
)

func TestController_GetCallOrdered_TakesQueuedCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)

	add := newCall("Add", 1, 2)
	ctrl.CallChan <- add

	g.Eventually(ctrl.QueueLen).Should(Equal(1))
	g.Expect(ctrl.GetCallOrdered(0, named("Add"))).To(BeIdenticalTo(add))
	g.Expect(ctrl.QueueLen()).To(Equal(0))
	g.Expect(reporter.Failures()).To(BeEmpty())
}

func TestController_GetCallOrdered_WaitsForLateCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)
	add := newCall("Add")

	go func() {
		time.Sleep(20 * time.Millisecond)
		ctrl.CallChan <- add
	}()

	g.Expect(ctrl.GetCallOrdered(time.Second, named("Add"))).To(BeIdenticalTo(add))
	g.Expect(reporter.Failures()).To(BeEmpty())
}

func TestController_GetCallOrdered_FailsFastOnQueuedMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)

	ctrl.CallChan <- newCall("Multiply")
	g.Eventually(ctrl.QueueLen).Should(Equal(1))

	g.Expect(ctrl.GetCallOrdered(0, named("Add"))).To(BeNil())
	g.Expect(reporter.Failures()).To(ConsistOf(ContainSubstring("ordered mode fail-fast: want Add, got Multiply")))
}

func TestController_GetCallOrdered_FailsFastOnArrivingMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)

	got := make(chan *imptest.GenericCall, 1)

	go func() {
		got <- ctrl.GetCallOrdered(0, named("Add"))
	}()

	// give the waiter time to register so the call is routed, not queued
	time.Sleep(20 * time.Millisecond)
	ctrl.CallChan <- newCall("Multiply")

	g.Eventually(got).Should(Receive(BeNil()))
	g.Expect(reporter.Failures()).To(ConsistOf(ContainSubstring("ordered mode fail-fast")))
}

func TestController_GetCallOrdered_TimesOut(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewControllerWithTimer[*imptest.GenericCall](reporter, firedTimer{})

	g.Expect(ctrl.GetCallOrdered(time.Millisecond, named("Add"))).To(BeNil())
	g.Expect(reporter.Failures()).To(ConsistOf(ContainSubstring("timeout")))

	// the abandoned waiter must not swallow later calls
	late := newCall("Add")
	ctrl.CallChan <- late

	g.Eventually(ctrl.QueueLen).Should(Equal(1))
}

func TestController_GetCallEventually_SkipsOtherCalls(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)

	first := newCall("Multiply")
	second := newCall("Add")
	ctrl.CallChan <- first
	ctrl.CallChan <- second

	g.Eventually(ctrl.QueueLen).Should(Equal(2))
	g.Expect(ctrl.GetCallEventually(named("Add"))).To(BeIdenticalTo(second))
	g.Expect(ctrl.GetCallEventually(named("Multiply"))).To(BeIdenticalTo(first))
	g.Expect(reporter.Failures()).To(BeEmpty())
}

// TestController_ConcurrentWaiters verifies each of several concurrent waiters
// receives the call its validator asks for.
func TestController_ConcurrentWaiters(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	ctrl := imptest.NewController[*imptest.GenericCall](reporter)

	names := []string{"A", "B", "C", "D"}
	results := make([]*imptest.GenericCall, len(names))

	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = ctrl.GetCallEventually(named(name))
		}()
	}

	for i := len(names) - 1; i >= 0; i-- {
		ctrl.CallChan <- newCall(names[i])
	}

	wg.Wait()

	for i, name := range names {
		g.Expect(results[i].Name()).To(Equal(name))
	}

	g.Expect(reporter.Failures()).To(BeEmpty())
}
