package basket

import "github.com/shopspring/decimal"

// BasketLike is what a manager needs from a basket. Basket implements it;
// tests substitute a mock.
//
//nolint:revive // the stutter reads better than basket.Like at call sites
type BasketLike interface {
	AddProduct(p *Product) error
	TotalPrice() decimal.Decimal
	Subscribe(handler ProductAddedHandler) (unsubscribe func())
}

// Basket is an ordered collection of products.
type Basket struct {
	products  []*Product
	observers observers
}

// New returns an empty basket.
func New() *Basket {
	return &Basket{}
}

// AddProduct appends p and then notifies subscribers. A nil product is
// accepted like any other.
func (b *Basket) AddProduct(p *Product) error {
	b.products = append(b.products, p)
	b.observers.notify(b, ProductAdded{Product: p})

	return nil
}

// Len returns the number of products in the basket.
func (b *Basket) Len() int {
	return len(b.products)
}

// Products returns the products in insertion order. The slice is a copy.
func (b *Basket) Products() []*Product {
	out := make([]*Product, len(b.products))
	copy(out, b.products)

	return out
}

// Subscribe registers handler for product-added notifications.
func (b *Basket) Subscribe(handler ProductAddedHandler) (unsubscribe func()) {
	return b.observers.add(handler)
}

// TotalPrice sums the prices of everything in the basket.
func (b *Basket) TotalPrice() decimal.Decimal {
	total := decimal.Zero

	for _, p := range b.products {
		total = total.Add(priceOf(p))
	}

	return total
}

// Compile-time check.
var _ BasketLike = (*Basket)(nil)
