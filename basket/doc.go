// Package basket holds a tiny shopping-basket domain used to show how the
// imptest doubles stub, verify and answer a dependency.
//
// Basket is the concrete, list-backed basket. Manager drives a *Basket
// directly; InterfaceManager drives anything satisfying BasketLike, which is
// what makes it replaceable by a generated mock in tests.
package basket
