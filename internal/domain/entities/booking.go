package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle of a pickup booking.
//
// Forward path is scheduled -> in_progress -> completed. A scheduled booking may be
// diverted to pending_customer_approval by an admin price change and comes back to
// scheduled (customer accepts) or goes to cancelled (customer declines).
type BookingStatus string

const (
	BookingStatusScheduled               BookingStatus = "scheduled"
	BookingStatusPendingCustomerApproval BookingStatus = "pending_customer_approval"
	BookingStatusInProgress              BookingStatus = "in_progress"
	BookingStatusCompleted               BookingStatus = "completed"
	BookingStatusCancelled               BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusScheduled:               {BookingStatusInProgress, BookingStatusCancelled, BookingStatusPendingCustomerApproval},
	BookingStatusPendingCustomerApproval: {BookingStatusScheduled, BookingStatusCancelled},
	BookingStatusInProgress:              {BookingStatusCompleted, BookingStatusCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusScheduled, BookingStatusPendingCustomerApproval, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// HoldsSlot reports whether a booking in this status occupies its (date, slot) pair.
// pending_customer_approval keeps the slot it may return to.
func (s BookingStatus) HoldsSlot() bool {
	switch s {
	case BookingStatusScheduled, BookingStatusInProgress, BookingStatusPendingCustomerApproval:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking is a scheduled pickup for exactly one quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (pickup_date-index): pickup_date
//   - GSI (quote_id-index): quote_id
//   - GSI (customer_approval_token-index): customer_approval_token (sparse)
//   - slot claims live in a separate lock table keyed by "<date>#<slot>"
type Booking struct {
	ID                  string        `json:"id"`
	QuoteID             string        `json:"quote_id"`
	PickupDate          time.Time     `json:"pickup_date"`
	PickupTime          string        `json:"pickup_time"`
	Address             string        `json:"address"`
	Phone               string        `json:"phone"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	Status              BookingStatus `json:"status"`

	RequiresCustomerApproval bool             `json:"requires_customer_approval"`
	CustomerApprovalToken    string           `json:"customer_approval_token,omitempty"`
	OriginalPrice            *decimal.Decimal `json:"original_price,omitempty"`
	AdjustedPrice            *decimal.Decimal `json:"adjusted_price,omitempty"`
	PriceAdjustmentReason    string           `json:"price_adjustment_reason,omitempty"`
	CustomerNotes            string           `json:"customer_notes,omitempty"`
	CustomerRespondedAt      *time.Time       `json:"customer_responded_at,omitempty"`

	CompletionNote     string     `json:"completion_note,omitempty"`
	CompletionPhotoURL string     `json:"completion_photo_url,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceApprovalRequest carries what the customer sees when asked to accept a new price.
type PriceApprovalRequest struct {
	Token         string
	OriginalPrice decimal.Decimal
	AdjustedPrice decimal.Decimal
	Reason        string
}

// CustomerDecision is the outcome of redeeming a price-approval token.
type CustomerDecision struct {
	Approved    bool
	Notes       string
	RespondedAt time.Time
}

// StatusChange describes a compare-and-set on a booking status.
type StatusChange struct {
	From     BookingStatus
	To       BookingStatus
	At       time.Time
	Note     string
	PhotoURL string

	// ReleaseSlot frees the (date, slot) claim in the same write.
	ReleaseSlot bool
	// ClearApprovalToken drops an outstanding customer price-approval token.
	ClearApprovalToken bool
}

// NewStatusChange fills the slot and token flags implied by from -> to.
func NewStatusChange(from, to BookingStatus, at time.Time) StatusChange {
	return StatusChange{
		From:               from,
		To:                 to,
		At:                 at,
		ReleaseSlot:        from.HoldsSlot() && !to.HoldsSlot(),
		ClearApprovalToken: from == BookingStatusPendingCustomerApproval,
	}
}
