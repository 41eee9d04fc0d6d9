package pricing

import (
	"errors"
	"fmt"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/shopspring/decimal"
)

var ErrInvalidConfig = errors.New("invalid pricing config")

// Range is the inclusive price band of one scale level.
type Range struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

func (r Range) Midpoint() decimal.Decimal {
	return r.Low.Add(r.High).Div(decimal.NewFromInt(2)).Round(2)
}

func (r Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Low) && v.LessThanOrEqual(r.High)
}

// Config is the immutable pricing table injected into the Pricer.
//
// VolumeBounds[i] is the largest volume that still maps to level i+1; any volume
// above the last bound maps to the top level, so len(VolumeBounds) == len(Ranges)-1.
type Config struct {
	Weights           map[entities.ItemSize]int
	VolumeBounds      []int
	Ranges            []Range
	ApprovalThreshold int
}

func usd(low, high int64) Range {
	return Range{Low: decimal.NewFromInt(low), High: decimal.NewFromInt(high)}
}

// DefaultConfig returns the 20-level volume scale in USD with approval from level 9.
func DefaultConfig() Config {
	return Config{
		Weights: map[entities.ItemSize]int{
			entities.ItemSizeSmall:  1,
			entities.ItemSizeMedium: 5,
			entities.ItemSizeLarge:  12,
		},
		VolumeBounds: []int{2, 4, 7, 10, 14, 19, 25, 32, 40, 50, 60, 72, 86, 100, 120, 140, 165, 190, 220},
		Ranges: []Range{
			usd(15, 25), usd(25, 35), usd(35, 55), usd(55, 75), usd(75, 95),
			usd(95, 115), usd(115, 135), usd(135, 155), usd(155, 185), usd(185, 215),
			usd(215, 250), usd(250, 285), usd(285, 320), usd(320, 360), usd(360, 400),
			usd(400, 450), usd(450, 500), usd(500, 560), usd(560, 620), usd(620, 700),
		},
		ApprovalThreshold: 9,
	}
}

// WithApprovalThreshold returns a copy of c using the given threshold.
func (c Config) WithApprovalThreshold(threshold int) Config {
	out := c
	out.ApprovalThreshold = threshold
	return out
}

// Levels is the number of scale levels (20 for the default table).
func (c Config) Levels() int {
	return len(c.Ranges)
}

// Validate checks the properties the monotonic price mapping depends on.
func (c Config) Validate() error {
	if len(c.Ranges) == 0 {
		return fmt.Errorf("%w: no price ranges", ErrInvalidConfig)
	}
	if len(c.VolumeBounds) != len(c.Ranges)-1 {
		return fmt.Errorf("%w: expected %d volume bounds, got %d", ErrInvalidConfig, len(c.Ranges)-1, len(c.VolumeBounds))
	}
	for _, size := range []entities.ItemSize{entities.ItemSizeSmall, entities.ItemSizeMedium, entities.ItemSizeLarge} {
		if c.Weights[size] <= 0 {
			return fmt.Errorf("%w: weight for %q must be positive", ErrInvalidConfig, size)
		}
	}
	for i := 1; i < len(c.VolumeBounds); i++ {
		if c.VolumeBounds[i] < c.VolumeBounds[i-1] {
			return fmt.Errorf("%w: volume bounds must be non-decreasing (index %d)", ErrInvalidConfig, i)
		}
	}
	for i, r := range c.Ranges {
		if r.Low.IsNegative() || r.High.LessThan(r.Low) {
			return fmt.Errorf("%w: bad range for level %d", ErrInvalidConfig, i+1)
		}
		if i > 0 && !r.Midpoint().GreaterThan(c.Ranges[i-1].Midpoint()) {
			return fmt.Errorf("%w: midpoints must strictly increase (level %d)", ErrInvalidConfig, i+1)
		}
		if i > 0 && r.Low.LessThan(c.Ranges[i-1].High) {
			return fmt.Errorf("%w: range for level %d overlaps level %d", ErrInvalidConfig, i+1, i)
		}
	}
	if c.ApprovalThreshold < 1 || c.ApprovalThreshold > len(c.Ranges)+1 {
		return fmt.Errorf("%w: approval threshold %d out of range", ErrInvalidConfig, c.ApprovalThreshold)
	}
	return nil
}
