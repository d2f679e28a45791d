package basket_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL
	"github.com/onsi/gomega/types"
	"github.com/shopspring/decimal"
	"github.com/toejough/basketimp/basket"
	"github.com/toejough/basketimp/imptest"
)

//go:generate go run ../impgen BasketLike --dir .

// BeDecimal matches a decimal.Decimal numerically equal to expected.
func BeDecimal(expected string) types.GomegaMatcher {
	want := decimal.RequireFromString(expected)

	return WithTransform(func(d decimal.Decimal) string {
		return d.StringFixed(4)
	}, Equal(want.StringFixed(4)))
}

func price(s string) *basket.Product {
	return basket.NewProduct(decimal.RequireFromString(s))
}

// startManager builds an InterfaceManager over a fresh mock, answering the
// Subscribe call the constructor makes. It returns the mock, the manager, the
// handler the manager subscribed, and a counter of unsubscribe calls.
func startManager(
	t *testing.T, opts ...basket.Option,
) (*BasketLikeImp, *basket.InterfaceManager, basket.ProductAddedHandler, *int) {
	t.Helper()

	mock := NewBasketLikeImp(t)
	mock.Imp.SetTimeout(time.Second)

	ctor := imptest.Start(mock.Imp, func() *basket.InterfaceManager {
		return basket.NewInterfaceManager(mock.Interface(), opts...)
	})

	unsubscribed := 0
	call := mock.Subscribe.ExpectCalledWithMatches(imptest.Any())
	call.InjectReturnValues(func() { unsubscribed++ })

	handler, ok := call.RawArgs()[0].(basket.ProductAddedHandler)
	if !ok || handler == nil {
		t.Fatalf("expected a ProductAddedHandler, got %T", call.RawArgs()[0])
	}

	return mock, ctor.Result(), handler, &unsubscribed
}
