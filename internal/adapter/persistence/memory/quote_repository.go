package memory

import (
	"context"
	"sync"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
)

// QuoteRepository keeps quotes in process memory. Used for local runs and tests.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]entities.Quote
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]entities.Quote)}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.quotes[q.ID]; exists {
		return entities.Quote{}, ErrAlreadyExists
	}
	r.quotes[q.ID] = cloneQuote(q)
	return cloneQuote(q), nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneQuote(r.quotes[id]), nil
}

func (r *QuoteRepository) ListByApprovalStatus(_ context.Context, status entities.ApprovalStatus) ([]entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.Quote{}
	for _, q := range r.quotes {
		if q.ApprovalStatus == status {
			out = append(out, cloneQuote(q))
		}
	}
	return out, nil
}

func (r *QuoteRepository) CountByApprovalStatus(_ context.Context) (map[entities.ApprovalStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[entities.ApprovalStatus]int)
	for _, q := range r.quotes {
		counts[q.ApprovalStatus]++
	}
	return counts, nil
}

func (r *QuoteRepository) RecordDecision(_ context.Context, id string, d entities.ApprovalDecision) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok || q.ApprovalStatus != entities.ApprovalStatusPending {
		return entities.Quote{}, nil
	}
	at := d.ApprovedAt
	q.ApprovalStatus = d.Status
	q.AdminNotes = d.AdminNotes
	q.ApprovedBy = d.ApprovedBy
	q.ApprovedAt = &at
	q.ApprovedPrice = nil
	if d.ApprovedPrice != nil {
		p := *d.ApprovedPrice
		q.ApprovedPrice = &p
	}
	q.UpdatedAt = at
	r.quotes[id] = q
	return cloneQuote(q), nil
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.Items != nil {
		q.Items = append([]entities.Item(nil), q.Items...)
	}
	if q.ScaleLevel != nil {
		lvl := *q.ScaleLevel
		q.ScaleLevel = &lvl
	}
	if q.ApprovedPrice != nil {
		p := *q.ApprovedPrice
		q.ApprovedPrice = &p
	}
	if q.ApprovedAt != nil {
		at := *q.ApprovedAt
		q.ApprovedAt = &at
	}
	return q
}
