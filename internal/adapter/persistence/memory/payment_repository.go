package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]entities.PaymentTransaction
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]entities.PaymentTransaction)}
}

func (r *PaymentRepository) Create(_ context.Context, p entities.PaymentTransaction) (entities.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[p.ID]; exists {
		return entities.PaymentTransaction{}, ErrAlreadyExists
	}
	r.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.payments[id], nil
}

func (r *PaymentRepository) ListByBookingID(_ context.Context, bookingID string) ([]entities.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.PaymentTransaction{}
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *PaymentRepository) UpdateProviderStatus(_ context.Context, id string, update interfaces.PaymentUpdate) (entities.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return entities.PaymentTransaction{}, nil
	}
	p.Status = update.Status
	p.ProviderPaymentID = update.ProviderPaymentID
	p.ProviderStatus = update.ProviderStatus
	if len(update.ProviderPayload) > 0 {
		p.ProviderPayload = append([]byte(nil), update.ProviderPayload...)
	}
	p.UpdatedAt = time.Now().UTC()
	r.payments[id] = p
	return p, nil
}
