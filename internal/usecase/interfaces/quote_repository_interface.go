package interfaces

import (
	"context"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// Lookups return a zero Quote (ID == "") when nothing matches. RecordDecision is a
// compare-and-set on approval_status == pending_approval and also returns a zero
// Quote when the condition no longer holds.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByApprovalStatus(ctx context.Context, status entities.ApprovalStatus) ([]entities.Quote, error)
	CountByApprovalStatus(ctx context.Context) (map[entities.ApprovalStatus]int, error)
	RecordDecision(ctx context.Context, id string, d entities.ApprovalDecision) (entities.Quote, error)
}
