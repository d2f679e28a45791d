package basket

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Exported variables.
var (
	// ErrProductNotAdded is the only error InterfaceManager.AddProduct returns.
	// Whatever went wrong inside the basket is not attached.
	ErrProductNotAdded = errors.New("basket: product could not be added")
)

// DefaultSurcharge is added to every total computed through InterfaceManager.
//
//nolint:gochecknoglobals // decimal has no const form
var DefaultSurcharge = decimal.RequireFromString("2.00")

// InterfaceManager manages any BasketLike. It listens for product-added
// events from the moment it is built until Close.
type InterfaceManager struct {
	basket      BasketLike
	surcharge   decimal.Decimal
	logger      zerolog.Logger
	hook        ProductAddedHandler
	unsubscribe func()
}

// Option configures an InterfaceManager.
type Option func(*InterfaceManager)

// WithConfig applies the settings in cfg.
func WithConfig(cfg Config) Option {
	return func(m *InterfaceManager) {
		m.surcharge = cfg.Surcharge
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *InterfaceManager) {
		m.logger = logger
	}
}

// WithProductAddedHook sets the function OnProductAdded calls.
func WithProductAddedHook(hook ProductAddedHandler) Option {
	return func(m *InterfaceManager) {
		m.hook = hook
	}
}

// WithSurcharge overrides DefaultSurcharge.
func WithSurcharge(surcharge decimal.Decimal) Option {
	return func(m *InterfaceManager) {
		m.surcharge = surcharge
	}
}

// NewInterfaceManager builds a manager for b and subscribes it to b's
// product-added events.
func NewInterfaceManager(b BasketLike, opts ...Option) *InterfaceManager {
	m := &InterfaceManager{
		basket:    b,
		surcharge: DefaultSurcharge,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.unsubscribe = b.Subscribe(m.OnProductAdded)

	return m
}

// AddProduct hands p to the basket. Any failure, returned or panicked, comes
// back as ErrProductNotAdded.
func (m *InterfaceManager) AddProduct(p *Product) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logDiscarded(fmt.Errorf("panic: %v", r)) //nolint:err113 // carries the recovered value
			err = ErrProductNotAdded
		}
	}()

	addErr := m.basket.AddProduct(p)
	if addErr != nil {
		m.logDiscarded(addErr)

		return ErrProductNotAdded
	}

	return nil
}

// Close stops listening for product-added events. Calling it again is a no-op.
func (m *InterfaceManager) Close() {
	if m.unsubscribe == nil {
		return
	}

	m.unsubscribe()
	m.unsubscribe = nil
}

// OnProductAdded is called by the basket after every addition. The product is
// already in the basket by then, so a panicking hook is logged and swallowed
// rather than failing the addition.
func (m *InterfaceManager) OnProductAdded(sender any, event ProductAdded) {
	m.logger.Debug().Stringer("price", priceOf(event.Product)).Msg("product added")

	if m.hook == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug().Interface("panic", r).Msg("product-added hook panicked")
		}
	}()

	m.hook(sender, event)
}

// Surcharge returns the amount added on top of the basket total.
func (m *InterfaceManager) Surcharge() decimal.Decimal {
	return m.surcharge
}

// TotalPrice is the basket total plus the surcharge.
func (m *InterfaceManager) TotalPrice() decimal.Decimal {
	return m.basket.TotalPrice().Add(m.surcharge)
}

func (m *InterfaceManager) logDiscarded(cause error) {
	m.logger.Debug().Err(cause).Msg("basket rejected product; reporting ErrProductNotAdded")
}
