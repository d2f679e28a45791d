package imptest_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL
	"github.com/toejough/basketimp/imptest"
)

type point struct{ X, Y int }

func TestDependencyMethod_ExactlyInjectsReturn(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	imp := imptest.NewImp(&recordingReporter{})
	method := imptest.NewDependencyMethod(imp, "Move")
	results := make(chan []any, 1)

	go func() {
		results <- imp.Invoke("Move", point{1, 2})
	}()

	call := method.ExpectCalledWithExactly(point{1, 2})
	g.Expect(call.RawArgs()).To(Equal([]any{point{1, 2}}))

	call.InjectReturnValues(true)

	g.Eventually(results).Should(Receive(Equal([]any{true})))
}

func TestDependencyMethod_ExactlyReportsMismatches(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		sent     []any
		expected []any
		message  string
	}{
		"arg count": {[]any{1}, []any{1, 2}, "expected 2 args, got 1"},
		"arg value": {[]any{point{1, 2}}, []any{point{2, 1}}, "arg 0: expected imptest_test.point{X:2, Y:1}"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			reporter := &recordingReporter{}
			imp := imptest.NewImp(reporter)

			go imp.Invoke("Move", tc.sent...)

			call := imptest.NewDependencyMethod(imp, "Move").ExpectCalledWithExactly(tc.expected...)

			g.Expect(call.RawArgs()).To(BeNil())
			g.Expect(reporter.Failures()).To(ConsistOf(ContainSubstring(tc.message)))
		})
	}
}

func TestDependencyMethod_MatchesAcceptsGomegaMatchers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	imp := imptest.NewImp(reporter)
	target := imptest.Start(t, func() []any { return imp.Invoke("Move", point{3, 4}, "fast") })

	imptest.NewDependencyMethod(imp, "Move").
		ExpectCalledWithMatches(HaveField("X", BeNumerically(">", 2)), "fast").
		InjectReturnValues("ok")

	target.ExpectReturnsEqual([]any{"ok"})
	g.Expect(reporter.Failures()).To(BeEmpty())
}

func TestDependencyMethod_MatchesReportsFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	imp := imptest.NewImp(reporter)

	go imp.Invoke("Move", point{1, 1})

	imptest.NewDependencyMethod(imp, "Move").ExpectCalledWithMatches(HaveField("X", Equal(5)))

	g.Expect(reporter.Failures()).To(ConsistOf(ContainSubstring("arg 0:")))
}

func TestDependencyMethod_InjectPanicValue(t *testing.T) {
	t.Parallel()

	imp := imptest.NewImp(&recordingReporter{})
	target := imptest.StartVoid(t, func() { imp.Invoke("Move") })

	imptest.NewDependencyMethod(imp, "Move").ExpectCalledWithExactly().InjectPanicValue(errors.New("nope"))

	target.ExpectPanicMatches(MatchError("nope"))
}

func TestDependencyMethod_EventuallyMatchesOutOfOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	imp := imptest.NewImp(&recordingReporter{})
	first := imptest.NewDependencyMethod(imp, "First")
	second := imptest.NewDependencyMethod(imp, "Second")

	target := imptest.Start(t, func() []any {
		done := make(chan []any, 1)

		go func() { done <- imp.Invoke("Second", 2) }()

		firstResult := imp.Invoke("First", 1)

		return append(firstResult, <-done...)
	})

	secondCall := second.Eventually.ExpectCalledWithExactly(2)
	firstCall := first.Eventually.ExpectCalledWithExactly(1)

	g.Expect(firstCall.RawArgs()).To(Equal([]any{1}))
	g.Expect(secondCall.RawArgs()).To(Equal([]any{2}))

	secondCall.InjectReturnValues("b")
	firstCall.InjectReturnValues("a")

	imp.Wait()
	target.ExpectReturnsEqual([]any{"a", "b"})
}

func TestDependencyCall_UnclaimedCallIsInert(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	call := &imptest.DependencyCall{}

	g.Expect(call.RawArgs()).To(BeNil())
	g.Expect(func() {
		call.InjectReturnValues(1)
		call.InjectPanicValue("x")
	}).NotTo(Panic())
}
