package response

import (
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Description string `json:"description,omitempty"`
}

type BreakdownResponse struct {
	BasePrice         float64 `json:"base_price"`
	VolumeAssessment  string  `json:"volume_assessment"`
	AdditionalCharges float64 `json:"additional_charges"`
	Total             float64 `json:"total"`
}

type QuoteResponse struct {
	ID               string            `json:"id"`
	Items            []ItemResponse    `json:"items"`
	TotalPrice       float64           `json:"total_price"`
	ScaleLevel       *int              `json:"scale_level"`
	Description      string            `json:"description"`
	AIExplanation    string            `json:"ai_explanation,omitempty"`
	Breakdown        BreakdownResponse `json:"breakdown"`
	Source           string            `json:"source"`
	ApprovalStatus   string            `json:"approval_status"`
	RequiresApproval bool              `json:"requires_approval"`
	AdminNotes       string            `json:"admin_notes,omitempty"`
	ApprovedPrice    *float64          `json:"approved_price,omitempty"`
	ApprovedBy       string            `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	items := make([]ItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, ItemResponse{Name: it.Name, Quantity: it.Quantity, Size: string(it.Size), Description: it.Description})
	}
	return QuoteResponse{
		ID:            q.ID,
		Items:         items,
		TotalPrice:    q.TotalPrice.InexactFloat64(),
		ScaleLevel:    q.ScaleLevel,
		Description:   q.Description,
		AIExplanation: q.Explanation,
		Breakdown: BreakdownResponse{
			BasePrice:         q.Breakdown.BasePrice.InexactFloat64(),
			VolumeAssessment:  q.Breakdown.VolumeAssessment,
			AdditionalCharges: q.Breakdown.AdditionalCharges.InexactFloat64(),
			Total:             q.Breakdown.Total.InexactFloat64(),
		},
		Source:           string(q.Source),
		ApprovalStatus:   string(q.ApprovalStatus),
		RequiresApproval: q.RequiresApproval,
		AdminNotes:       q.AdminNotes,
		ApprovedPrice:    floatPtr(q.ApprovedPrice),
		ApprovedBy:       q.ApprovedBy,
		ApprovedAt:       q.ApprovedAt,
		CreatedAt:        q.CreatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

type ApprovalStatsResponse struct {
	PendingApproval        int `json:"pending_approval"`
	Approved               int `json:"approved"`
	Rejected               int `json:"rejected"`
	AutoApproved           int `json:"auto_approved"`
	TotalRequiringApproval int `json:"total_requiring_approval"`
}

func FromApprovalStats(s entities.ApprovalStats) ApprovalStatsResponse {
	return ApprovalStatsResponse(s)
}

type DecisionResponse struct {
	Quote                   QuoteResponse `json:"quote"`
	CustomerApprovalPending []string      `json:"customer_approval_pending"`
	FailedBookingIDs        []string      `json:"failed_booking_ids,omitempty"`
	Warnings                []string      `json:"warnings,omitempty"`
}

func FromDecision(r usecase.DecisionResult) DecisionResponse {
	ids := make([]string, 0, len(r.PendingCustomer))
	for _, b := range r.PendingCustomer {
		ids = append(ids, b.ID)
	}
	out := DecisionResponse{
		Quote:                   FromQuote(r.Quote),
		CustomerApprovalPending: ids,
		FailedBookingIDs:        r.FailedBookingIDs,
	}
	if r.CascadeErr != nil {
		out.Warnings = []string{r.CascadeErr.Error()}
	}
	return out
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
