package basket

// ProductAdded is raised after a product lands in a basket.
type ProductAdded struct {
	Product *Product
}

// ProductAddedHandler receives ProductAdded events. sender is the basket that
// raised the event.
type ProductAddedHandler func(sender any, event ProductAdded)

type observers struct {
	nextID   int
	handlers []subscription
}

type subscription struct {
	id      int
	handler ProductAddedHandler
}

// add registers handler and returns its idempotent remover.
func (o *observers) add(handler ProductAddedHandler) func() {
	o.nextID++
	id := o.nextID
	o.handlers = append(o.handlers, subscription{id: id, handler: handler})

	return func() {
		for i, s := range o.handlers {
			if s.id == id {
				o.handlers = append(o.handlers[:i:i], o.handlers[i+1:]...)

				return
			}
		}
	}
}

// notify calls handlers in subscription order. Handlers added or removed
// during a notification take effect on the next one.
func (o *observers) notify(sender any, event ProductAdded) {
	snapshot := o.handlers

	for _, s := range snapshot {
		if s.handler != nil {
			s.handler(sender, event)
		}
	}
}
