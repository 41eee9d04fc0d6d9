package interfaces

import (
	"context"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for PaymentTransaction.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.PaymentTransaction) (entities.PaymentTransaction, error)
	GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error)
	ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentTransaction, error)
	UpdateProviderStatus(ctx context.Context, id string, update PaymentUpdate) (entities.PaymentTransaction, error)
}

// PaymentUpdate carries what the provider told us about a transaction.
type PaymentUpdate struct {
	Status            entities.PaymentStatus
	ProviderPaymentID string
	ProviderStatus    string
	ProviderPayload   []byte
}
