package request

import (
	"errors"
	"strings"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/shopspring/decimal"
)

var ErrInvalidApprovedPrice = errors.New("approved_price must be a decimal number")

type QuoteItemRequest struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Description string `json:"description"`
}

// CreateQuoteRequest is the body of POST /quotes. Item validation belongs to the
// pricing engine; here only the shape is checked.
type CreateQuoteRequest struct {
	Items       []QuoteItemRequest `json:"items" binding:"required"`
	Description string             `json:"description"`
}

func (r CreateQuoteRequest) ToItems() []entities.Item {
	items := make([]entities.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.Item{
			Name:        it.Name,
			Quantity:    it.Quantity,
			Size:        entities.ItemSize(strings.ToLower(strings.TrimSpace(it.Size))),
			Description: it.Description,
		})
	}
	return items
}

// ApprovalDecisionRequest is the admin body of POST /admin/quotes/:quote_id/approve.
//
// approved_price accepts a JSON number or a numeric string.
type ApprovalDecisionRequest struct {
	Action        string `json:"action" binding:"required"`
	AdminNotes    string `json:"admin_notes"`
	ApprovedPrice any    `json:"approved_price"`
}

func (r ApprovalDecisionRequest) ToCommand(actor string) (usecase.DecideCommand, error) {
	cmd := usecase.DecideCommand{
		Action:     usecase.ApprovalAction(strings.ToLower(strings.TrimSpace(r.Action))),
		AdminNotes: strings.TrimSpace(r.AdminNotes),
		Actor:      actor,
	}
	price, err := parseOptionalDecimal(r.ApprovedPrice)
	if err != nil {
		return usecase.DecideCommand{}, err
	}
	cmd.ApprovedPrice = price
	return cmd, nil
}

func parseOptionalDecimal(v any) (*decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		d := decimal.NewFromFloat(t)
		return &d, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return nil, ErrInvalidApprovedPrice
		}
		return &d, nil
	}
	return nil, ErrInvalidApprovedPrice
}
