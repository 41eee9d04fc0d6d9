package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentTransaction is one checkout attempt for a booked quote.
//
// Storage model (DynamoDB):
//   - PK: id (checkout session id handed to the client; sent to the provider as external_reference)
//   - GSI (booking_id-index): booking_id
//
// ProviderPayload keeps the last provider body for audit.
type PaymentTransaction struct {
	ID        string          `json:"id"`
	QuoteID   string          `json:"quote_id"`
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    PaymentStatus   `json:"status"`

	CheckoutURL       string          `json:"checkout_url"`
	PreferenceID      string          `json:"preference_id,omitempty"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	ProviderStatus    string          `json:"provider_status,omitempty"`
	ProviderPayload   json.RawMessage `json:"provider_payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentStatusFromProvider maps a MercadoPago payment status onto ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusPaid
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusFailed
	}
	return PaymentStatusInitiated
}
