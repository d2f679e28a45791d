package basket

// Manager forwards to a concrete basket supplied by the caller.
type Manager struct {
	basket *Basket
}

// NewManager returns a manager for b.
func NewManager(b *Basket) *Manager {
	return &Manager{basket: b}
}

// AddProduct puts p in the managed basket.
func (m *Manager) AddProduct(p *Product) {
	_ = m.basket.AddProduct(p) // a concrete Basket never rejects a product
}
