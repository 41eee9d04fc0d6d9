package interfaces

import "context"

// INotifier delivers a text message to a customer phone. Delivery is best effort.
type INotifier interface {
	Send(ctx context.Context, msg Notification) (DeliveryResult, error)
}

type Notification struct {
	To       string
	Body     string
	MediaURL string
}

type DeliveryResult struct {
	ID     string
	Status string
}
