package basket

import "github.com/shopspring/decimal"

// Product is something that can go in a basket.
type Product struct {
	Price decimal.Decimal
}

// NewProduct returns a product with the given price.
func NewProduct(price decimal.Decimal) *Product {
	return &Product{Price: price}
}

// priceOf treats a nil product as free.
func priceOf(p *Product) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}

	return p.Price
}
