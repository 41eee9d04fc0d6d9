package interfaces

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// Checkout sessions are hosted by the provider; the webhook later tells us which
// provider payment settled them, and GetPayment fetches its status.
type IPaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	GetPayment(ctx context.Context, providerPaymentID string) (ProviderPayment, error)
}

type CheckoutRequest struct {
	Reference       string
	Title           string
	Description     string
	Amount          decimal.Decimal
	Currency        string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
	Metadata        map[string]any
}

type CheckoutSession struct {
	PreferenceID string
	URL          string
	Raw          json.RawMessage
}

type ProviderPayment struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            decimal.Decimal
	Raw               json.RawMessage
}
