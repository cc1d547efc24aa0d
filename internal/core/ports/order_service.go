package ports

import "context"

// OrderLine is one {product, quantity} pair within an order request.
type OrderLine struct {
	ProductID int
	Quantity  int
}

// OrderResult is returned by the service after a successful order commit.
type OrderResult struct {
	// Reference identifies the order in logs and the notification subject.
	// Orders are not persisted as entities.
	Reference string
	Total     float64
}

// OrderNotification carries everything the mail sender needs for one
// order-summary message.
type OrderNotification struct {
	Reference string
	Recipient string
	Subject   string
	Body      string
}

// OrderNotifier accepts notifications for asynchronous, best-effort delivery.
// Enqueue must not block the order workflow; delivery failures are logged by
// the implementation and never surfaced to the caller.
type OrderNotifier interface {
	Enqueue(n OrderNotification)
}

// OrderService validates and commits a multi-item order against the catalog,
// then triggers the order-summary notification.
type OrderService interface {
	PlaceOrder(ctx context.Context, username string, lines []OrderLine) (*OrderResult, error)
}
