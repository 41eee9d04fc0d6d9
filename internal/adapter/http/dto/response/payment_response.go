package response

import (
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

type CheckoutSessionResponse struct {
	SessionID    string  `json:"session_id"`
	URL          string  `json:"url"`
	PreferenceID string  `json:"preference_id,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

func FromCheckoutSession(p entities.PaymentTransaction) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		SessionID:    p.ID,
		URL:          p.CheckoutURL,
		PreferenceID: p.PreferenceID,
		Amount:       p.Amount.InexactFloat64(),
		Currency:     p.Currency,
	}
}

type PaymentStatusResponse struct {
	SessionID         string    `json:"session_id"`
	BookingID         string    `json:"booking_id"`
	QuoteID           string    `json:"quote_id"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FromPaymentStatus reports payment_status the way the checkout pages poll for it:
// "paid" once settled, otherwise the provider's own status or "pending".
func FromPaymentStatus(p entities.PaymentTransaction) PaymentStatusResponse {
	ps := p.ProviderStatus
	switch {
	case p.Status == entities.PaymentStatusPaid:
		ps = "paid"
	case ps == "":
		ps = "pending"
	}
	return PaymentStatusResponse{
		SessionID:         p.ID,
		BookingID:         p.BookingID,
		QuoteID:           p.QuoteID,
		Status:            string(p.Status),
		PaymentStatus:     ps,
		ProviderPaymentID: p.ProviderPaymentID,
		Amount:            p.Amount.InexactFloat64(),
		Currency:          p.Currency,
		UpdatedAt:         p.UpdatedAt,
	}
}
