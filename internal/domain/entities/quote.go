package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the lifecycle of a quote's price approval.
//
// Domain notes:
//   - auto_approved is reached directly at creation and never changes.
//   - pending_approval is the only state an admin decision can leave.
//   - approved / rejected are terminal.
type ApprovalStatus string

const (
	ApprovalStatusAutoApproved ApprovalStatus = "auto_approved"
	ApprovalStatusPending      ApprovalStatus = "pending_approval"
	ApprovalStatusApproved     ApprovalStatus = "approved"
	ApprovalStatusRejected     ApprovalStatus = "rejected"
)

var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalStatusPending: {ApprovalStatusApproved, ApprovalStatusRejected},
}

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusAutoApproved, ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the approval table allows s -> to.
func (s ApprovalStatus) CanTransitionTo(to ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Payable reports whether money may be collected for a quote in this state.
func (s ApprovalStatus) Payable() bool {
	return s == ApprovalStatusAutoApproved || s == ApprovalStatusApproved
}

// QuoteSource tells how the item list was obtained.
type QuoteSource string

const (
	QuoteSourceText  QuoteSource = "text"
	QuoteSourceImage QuoteSource = "image"
)

// PriceBreakdown is the itemised explanation returned with every priced quote.
type PriceBreakdown struct {
	BasePrice         decimal.Decimal `json:"base_price"`
	VolumeAssessment  string          `json:"volume_assessment"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	Total             decimal.Decimal `json:"total"`
}

// Quote is a priced junk-removal estimate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (approval_status-index): approval_status
//
// Quotes are never deleted; admin decisions are kept for audit.
type Quote struct {
	ID          string          `json:"id"`
	Items       []Item          `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ScaleLevel  *int            `json:"scale_level"`
	Description string          `json:"description"`
	Explanation string          `json:"explanation,omitempty"`
	Breakdown   PriceBreakdown  `json:"breakdown"`
	Source      QuoteSource     `json:"source"`

	ApprovalStatus   ApprovalStatus   `json:"approval_status"`
	RequiresApproval bool             `json:"requires_approval"`
	AdminNotes       string           `json:"admin_notes,omitempty"`
	ApprovedPrice    *decimal.Decimal `json:"approved_price,omitempty"`
	ApprovedBy       string           `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectivePrice is what the customer is charged: the admin price when one was set.
func (q Quote) EffectivePrice() decimal.Decimal {
	if q.ApprovedPrice != nil {
		return *q.ApprovedPrice
	}
	return q.TotalPrice
}

// Classified reports whether a scale level was assigned.
func (q Quote) Classified() bool {
	return q.ScaleLevel != nil
}

// ApprovalDecision is the set of fields written together when an admin decides.
type ApprovalDecision struct {
	Status        ApprovalStatus
	AdminNotes    string
	ApprovedPrice *decimal.Decimal
	ApprovedBy    string
	ApprovedAt    time.Time
}

// ApprovalStats counts quotes per approval status.
type ApprovalStats struct {
	PendingApproval        int `json:"pending_approval"`
	Approved               int `json:"approved"`
	Rejected               int `json:"rejected"`
	AutoApproved           int `json:"auto_approved"`
	TotalRequiringApproval int `json:"total_requiring_approval"`
}
