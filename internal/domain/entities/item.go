package entities

import "strings"

// ItemSize is the coarse size class a customer picks for each item.
type ItemSize string

const (
	ItemSizeSmall  ItemSize = "small"
	ItemSizeMedium ItemSize = "medium"
	ItemSizeLarge  ItemSize = "large"
)

func (s ItemSize) Valid() bool {
	switch s {
	case ItemSizeSmall, ItemSizeMedium, ItemSizeLarge:
		return true
	}
	return false
}

// ParseItemSize accepts any casing/whitespace; unknown values return false.
func ParseItemSize(raw string) (ItemSize, bool) {
	s := ItemSize(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Item is one line of junk attached to a quote. Items are never modified once the
// quote has been stored.
type Item struct {
	Name        string   `json:"name"`
	Quantity    int      `json:"quantity"`
	Size        ItemSize `json:"size"`
	Description string   `json:"description,omitempty"`
}
