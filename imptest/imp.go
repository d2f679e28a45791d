package imptest

import (
	"fmt"
	"sync"
	"time"
)

// ResponseType says how a mocked method should finish.
type ResponseType string

// Response types.
const (
	ReturnResponse ResponseType = "return"
	PanicResponse  ResponseType = "panic"
)

// GenericCall is one call made on a mock. The mock blocks on ResponseChan.
type GenericCall struct {
	MethodName   string
	Args         []any
	ResponseChan chan GenericResponse

	mu   sync.Mutex
	done bool
}

// Done reports whether a response has been injected.
func (c *GenericCall) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.done
}

// MarkDone records that a response has been injected.
func (c *GenericCall) MarkDone() {
	c.mu.Lock()
	c.done = true
	c.mu.Unlock()
}

// Name returns the method name.
func (c *GenericCall) Name() string {
	return c.MethodName
}

// GenericResponse is what a mocked method receives back from the test.
type GenericResponse struct {
	Type         ResponseType
	ReturnValues []any
	PanicValue   any
}

// Imp coordinates every mock and target in one test.
type Imp struct {
	*Controller[*GenericCall]

	t TestReporter

	timeoutMu sync.Mutex
	timeout   time.Duration

	pendingMu           sync.Mutex
	pendingExpectations []*PendingExpectation
}

// NewImp creates an Imp reporting to t.
func NewImp(t TestReporter) *Imp {
	imp := &Imp{
		Controller: NewController[*GenericCall](t),
		t:          t,
	}
	imp.PendingMatcher = imp.matchPendingExpectation

	return imp
}

// Fatalf fails the test.
func (i *Imp) Fatalf(format string, args ...any) {
	i.t.Fatalf(format, args...)
}

// Helper marks the caller as a test helper.
func (i *Imp) Helper() {
	i.t.Helper()
}

// GetCallEventually waits for a call to methodName whose args pass validator,
// regardless of what else arrives first.
func (i *Imp) GetCallEventually(methodName string, validator func([]any) error) *GenericCall {
	i.t.Helper()

	return i.Controller.GetCallEventually(methodValidator(methodName, validator))
}

// GetCallOrdered waits for the next call and requires it to be methodName with
// args that pass validator.
func (i *Imp) GetCallOrdered(methodName string, validator func([]any) error) *GenericCall {
	i.t.Helper()

	return i.Controller.GetCallOrdered(i.Timeout(), methodValidator(methodName, validator))
}

// Invoke is what generated mocks call for every interface method. It hands the
// call to the test, blocks until the test responds, and then either panics
// with the injected value or returns the injected return values.
func (i *Imp) Invoke(methodName string, args ...any) []any {
	responseChan := make(chan GenericResponse, 1)

	i.CallChan <- &GenericCall{
		MethodName:   methodName,
		Args:         args,
		ResponseChan: responseChan,
	}

	resp := <-responseChan
	if resp.Type == PanicResponse {
		panic(resp.PanicValue)
	}

	return resp.ReturnValues
}

// RegisterPendingExpectation registers an Eventually expectation and returns
// it for Return/Panic chaining. A matching call already in the queue is
// claimed immediately.
func (i *Imp) RegisterPendingExpectation(methodName string, validator func([]any) error) *PendingExpectation {
	pending := newPendingExpectation(methodName, validator)

	// lock order matches the dispatch loop: queue first, then expectations
	i.mu.Lock()

	i.pendingMu.Lock()
	i.pendingExpectations = append(i.pendingExpectations, pending)
	i.pendingMu.Unlock()

	for idx, call := range i.callQueue {
		if call.MethodName == methodName && validator(call.Args) == nil {
			i.callQueue = append(i.callQueue[:idx], i.callQueue[idx+1:]...)
			i.mu.Unlock()
			pending.setMatched(call)

			return pending
		}
	}

	i.mu.Unlock()

	return pending
}

// SetTimeout bounds how long ordered expectations wait for a call.
// Zero waits forever.
func (i *Imp) SetTimeout(d time.Duration) {
	i.timeoutMu.Lock()
	i.timeout = d
	i.timeoutMu.Unlock()
}

// Timeout returns the current ordered-expectation timeout.
func (i *Imp) Timeout() time.Duration {
	i.timeoutMu.Lock()
	defer i.timeoutMu.Unlock()

	return i.timeout
}

// Wait blocks until every Eventually expectation has been matched and answered.
func (i *Imp) Wait() {
	i.pendingMu.Lock()
	expectations := make([]*PendingExpectation, len(i.pendingExpectations))
	copy(expectations, i.pendingExpectations)
	i.pendingMu.Unlock()

	for _, pe := range expectations {
		<-pe.done
	}
}

func (i *Imp) matchPendingExpectation(call *GenericCall) bool {
	i.pendingMu.Lock()
	defer i.pendingMu.Unlock()

	for _, pending := range i.pendingExpectations {
		if pending.isMatched() || pending.MethodName != call.MethodName {
			continue
		}

		if pending.Validator(call.Args) != nil {
			continue
		}

		pending.setMatched(call)

		return true
	}

	return false
}

// PendingExpectation is an Eventually expectation. Its response may be
// supplied before or after the matching call shows up.
type PendingExpectation struct {
	MethodName string
	Validator  func([]any) error

	mu          sync.Mutex
	call        *GenericCall
	response    *GenericResponse
	matchedChan chan struct{}
	done        chan struct{}
}

func newPendingExpectation(methodName string, validator func([]any) error) *PendingExpectation {
	return &PendingExpectation{
		MethodName:  methodName,
		Validator:   validator,
		matchedChan: make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// GetMatchedArgs blocks until a call matches and returns its args.
func (pe *PendingExpectation) GetMatchedArgs() []any {
	<-pe.matchedChan

	pe.mu.Lock()
	defer pe.mu.Unlock()

	return pe.call.Args
}

// Panic makes the matched call panic with value.
func (pe *PendingExpectation) Panic(value any) {
	pe.inject(GenericResponse{Type: PanicResponse, PanicValue: value})
}

// Return makes the matched call return values.
func (pe *PendingExpectation) Return(values ...any) {
	pe.inject(GenericResponse{Type: ReturnResponse, ReturnValues: values})
}

func (pe *PendingExpectation) inject(resp GenericResponse) {
	pe.mu.Lock()
	pe.response = &resp
	call := pe.call
	pe.mu.Unlock()

	if call != nil {
		pe.respond(call, resp)
	}
}

func (pe *PendingExpectation) isMatched() bool {
	pe.mu.Lock()
	defer pe.mu.Unlock()

	return pe.call != nil
}

func (pe *PendingExpectation) respond(call *GenericCall, resp GenericResponse) {
	call.MarkDone()
	call.ResponseChan <- resp

	close(pe.done)
}

func (pe *PendingExpectation) setMatched(call *GenericCall) {
	pe.mu.Lock()
	pe.call = call
	resp := pe.response
	pe.mu.Unlock()

	close(pe.matchedChan)

	if resp != nil {
		pe.respond(call, *resp)
	}
}

func methodValidator(methodName string, validator func([]any) error) func(*GenericCall) error {
	return func(call *GenericCall) error {
		if call.MethodName != methodName {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("expected method %q, got %q", methodName, call.MethodName)
		}

		err := validator(call.Args)
		if err != nil {
			return fmt.Errorf("method %q: %w", methodName, err)
		}

		return nil
	}
}
