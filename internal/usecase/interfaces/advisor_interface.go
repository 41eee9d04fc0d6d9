package interfaces

import (
	"context"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// PriceSuggestion is what an external advisor proposes. Nothing in it is trusted:
// items are re-validated, the level is checked against the table and the price is
// clamped into the volume band (or level range for a bare level) before use.
type PriceSuggestion struct {
	Items       []entities.Item
	ScaleLevel  int
	Price       decimal.Decimal
	Description string
	Explanation string
}

// IPriceAdvisor suggests a price for an item list.
type IPriceAdvisor interface {
	SuggestPrice(ctx context.Context, items []entities.Item, description string) (PriceSuggestion, error)
}

// IVisionAdvisor identifies items in a photo and suggests a price for them.
type IVisionAdvisor interface {
	SuggestPriceFromImage(ctx context.Context, image []byte, mimeType string, description string) (PriceSuggestion, error)
}
