package imptest

import (
	"fmt"
	"reflect"
)

// DependencyMethod is one method of a mocked interface. Generated mocks expose
// one per interface method.
type DependencyMethod struct {
	imp        *Imp
	methodName string
	eventually bool

	// Eventually is the unordered variant of this method, for code that makes
	// calls concurrently: mock.AddProduct.Eventually.ExpectCalledWithExactly(p)
	Eventually *DependencyMethod
}

// NewDependencyMethod creates the expectation handle for methodName.
func NewDependencyMethod(imp *Imp, methodName string) *DependencyMethod {
	return &DependencyMethod{
		imp:        imp,
		methodName: methodName,
		Eventually: &DependencyMethod{
			imp:        imp,
			methodName: methodName,
			eventually: true,
		},
	}
}

// ExpectCalledWithExactly claims the next call and requires its args to be
// deeply equal to args.
func (dm *DependencyMethod) ExpectCalledWithExactly(args ...any) *DependencyCall {
	dm.imp.Helper()

	return dm.expect(func(actual []any) error {
		if len(actual) != len(args) {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("expected %d args, got %d", len(args), len(actual))
		}

		for i, expected := range args {
			if !reflect.DeepEqual(actual[i], expected) {
				//nolint:err113 // validation error with dynamic context
				return fmt.Errorf("arg %d: expected %#v, got %#v", i, expected, actual[i])
			}
		}

		return nil
	})
}

// ExpectCalledWithMatches claims the next call and requires each arg to satisfy
// the matcher in the same position. Plain values are compared with DeepEqual;
// gomega matchers work as-is.
func (dm *DependencyMethod) ExpectCalledWithMatches(matchers ...any) *DependencyCall {
	dm.imp.Helper()

	return dm.expect(func(actual []any) error {
		if len(actual) != len(matchers) {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("expected %d args, got %d", len(matchers), len(actual))
		}

		for i, m := range matchers {
			ok, msg := MatchValue(actual[i], m)
			if !ok {
				//nolint:err113 // validation error with dynamic context
				return fmt.Errorf("arg %d: %s", i, msg)
			}
		}

		return nil
	})
}

func (dm *DependencyMethod) expect(validator func([]any) error) *DependencyCall {
	dm.imp.Helper()

	if dm.eventually {
		return &DependencyCall{pending: dm.imp.RegisterPendingExpectation(dm.methodName, validator)}
	}

	return &DependencyCall{call: dm.imp.GetCallOrdered(dm.methodName, validator)}
}

// DependencyCall is a claimed call. Exactly one of call and pending is set.
type DependencyCall struct {
	call    *GenericCall
	pending *PendingExpectation
}

// InjectPanicValue makes the mocked method panic with value.
func (dc *DependencyCall) InjectPanicValue(value any) {
	if dc.pending != nil {
		dc.pending.Panic(value)

		return
	}

	if dc.call == nil {
		return
	}

	dc.call.MarkDone()
	dc.call.ResponseChan <- GenericResponse{Type: PanicResponse, PanicValue: value}
}

// InjectReturnValues makes the mocked method return values.
func (dc *DependencyCall) InjectReturnValues(values ...any) {
	if dc.pending != nil {
		dc.pending.Return(values...)

		return
	}

	if dc.call == nil {
		return
	}

	dc.call.MarkDone()
	dc.call.ResponseChan <- GenericResponse{Type: ReturnResponse, ReturnValues: values}
}

// RawArgs returns the args the code under test passed. In Eventually mode it
// blocks until a call has matched.
func (dc *DependencyCall) RawArgs() []any {
	if dc.pending != nil {
		return dc.pending.GetMatchedArgs()
	}

	if dc.call == nil {
		return nil
	}

	return dc.call.Args
}
