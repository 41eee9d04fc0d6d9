package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

// ErrSlotUnavailable is returned by CreateWithSlot when another slot-holding booking
// already owns the (pickup_date, pickup_time) pair.
var ErrSlotUnavailable = errors.New("slot already held")

// IBookingRepository abstracts persistence for Booking and its slot claim.
//
// Every mutating call is conditional. When the condition does not hold (status moved
// on, token already consumed) the call returns a zero Booking and a nil error, the
// same way lookups report a missing record.
type IBookingRepository interface {
	// CreateWithSlot stores the booking and claims its slot in one atomic step.
	CreateWithSlot(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	GetByApprovalToken(ctx context.Context, token string) (entities.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]entities.Booking, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Booking, error)

	// BeginPriceApproval moves a scheduled booking to pending_customer_approval.
	BeginPriceApproval(ctx context.Context, id string, req entities.PriceApprovalRequest, at time.Time) (entities.Booking, error)
	// ResolvePriceApproval consumes the token. A rejection cancels the booking and frees the slot.
	ResolvePriceApproval(ctx context.Context, token string, d entities.CustomerDecision) (entities.Booking, error)
	// UpdateStatus applies change only while the booking is still in change.From.
	UpdateStatus(ctx context.Context, id string, change entities.StatusChange) (entities.Booking, error)
}
