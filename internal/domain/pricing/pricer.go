package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems     = errors.New("at least one item is required")
	ErrInvalidItem = errors.New("invalid item")
)

// Result is the deterministic price of an item list. Band is the slice of Range
// owned by Volume; bands never overlap and rise with volume, so any price taken
// from a band is monotonic in the item multiset.
type Result struct {
	Volume           int
	ScaleLevel       int
	Range            Range
	Band             Range
	TotalPrice       decimal.Decimal
	Breakdown        entities.PriceBreakdown
	RequiresApproval bool
}

// Pricer maps item lists onto the volume scale. It is safe for concurrent use.
type Pricer struct {
	cfg Config
}

func NewPricer(cfg Config) (*Pricer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pricer{cfg: cfg}, nil
}

// MustNewPricer panics on an invalid config; meant for package-level defaults and tests.
func MustNewPricer(cfg Config) *Pricer {
	p, err := NewPricer(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pricer) Config() Config {
	return p.cfg
}

// ValidateItems rejects empty lists, blank names, quantity < 1 and unknown sizes.
func ValidateItems(items []entities.Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidItem, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %q quantity must be at least 1", ErrInvalidItem, it.Name)
		}
		if !it.Size.Valid() {
			return fmt.Errorf("%w: item %q has unknown size %q", ErrInvalidItem, it.Name, it.Size)
		}
	}
	return nil
}

// Volume is the weighted sum of the items. Adding items never lowers it.
func (p *Pricer) Volume(items []entities.Item) (int, error) {
	if err := ValidateItems(items); err != nil {
		return 0, err
	}
	total := 0
	for _, it := range items {
		total += p.cfg.Weights[it.Size] * it.Quantity
	}
	return total, nil
}

// LevelFor returns the 1-based scale level for a volume.
func (p *Pricer) LevelFor(volume int) int {
	for i, bound := range p.cfg.VolumeBounds {
		if volume <= bound {
			return i + 1
		}
	}
	return p.cfg.Levels()
}

func (p *Pricer) Range(level int) (Range, bool) {
	if level < 1 || level > p.cfg.Levels() {
		return Range{}, false
	}
	return p.cfg.Ranges[level-1], true
}

func (p *Pricer) ValidLevel(level int) bool {
	return level >= 1 && level <= p.cfg.Levels()
}

// RequiresApproval is true at or above the threshold, and always for an unclassified quote.
func (p *Pricer) RequiresApproval(level *int) bool {
	if level == nil {
		return true
	}
	return *level >= p.cfg.ApprovalThreshold
}

func (p *Pricer) Price(items []entities.Item) (Result, error) {
	volume, err := p.Volume(items)
	if err != nil {
		return Result{}, err
	}
	res := p.ForLevel(p.LevelFor(volume))
	res.Volume = volume
	res.Band = p.Band(volume)
	res.TotalPrice = res.Band.Midpoint()
	res.Breakdown.BasePrice = res.TotalPrice
	res.Breakdown.Total = res.TotalPrice
	res.Breakdown.VolumeAssessment = fmt.Sprintf("Level %d of %d (%d volume units)", res.ScaleLevel, p.cfg.Levels(), volume)
	return res, nil
}

// Band splits the level range of volume into equal steps, one per volume unit
// the level covers. The top level has no upper bound and collapses to its midpoint.
func (p *Pricer) Band(volume int) Range {
	level := p.LevelFor(volume)
	r := p.cfg.Ranges[level-1]
	if level == p.cfg.Levels() {
		mid := r.Midpoint()
		return Range{Low: mid, High: mid}
	}
	prev := 0
	if level > 1 {
		prev = p.cfg.VolumeBounds[level-2]
	}
	units := p.cfg.VolumeBounds[level-1] - prev
	if units <= 0 {
		return r
	}
	step := r.High.Sub(r.Low).Div(decimal.NewFromInt(int64(units)))
	k := int64(volume - prev - 1)
	if k < 0 {
		k = 0
	}
	low := r.Low.Add(step.Mul(decimal.NewFromInt(k)))
	high := r.High
	if k+1 < int64(units) {
		high = r.Low.Add(step.Mul(decimal.NewFromInt(k + 1)))
	}
	return Range{Low: low, High: high}
}

// ForLevel prices a known level at its midpoint. level must be valid. It is
// meant for quotes with a level but no items.
func (p *Pricer) ForLevel(level int) Result {
	r := p.cfg.Ranges[level-1]
	mid := r.Midpoint()
	return Result{
		ScaleLevel: level,
		Range:      r,
		Band:       r,
		TotalPrice: mid,
		Breakdown: entities.PriceBreakdown{
			BasePrice:         mid,
			VolumeAssessment:  fmt.Sprintf("Level %d of %d", level, p.cfg.Levels()),
			AdditionalCharges: decimal.Zero,
			Total:             mid,
		},
		RequiresApproval: level >= p.cfg.ApprovalThreshold,
	}
}

// Clamp forces a suggested price into the level's range. Negative suggestions
// are replaced by the midpoint.
func (p *Pricer) Clamp(level int, suggested decimal.Decimal) decimal.Decimal {
	r, ok := p.Range(level)
	if !ok {
		return suggested
	}
	return ClampTo(r, suggested)
}

// ClampTo forces suggested into r, rounded to cents. Negative suggestions are
// replaced by the midpoint.
func ClampTo(r Range, suggested decimal.Decimal) decimal.Decimal {
	if suggested.IsNegative() {
		return r.Midpoint()
	}
	if suggested.LessThan(r.Low) {
		return r.Low.Round(2)
	}
	if suggested.GreaterThan(r.High) {
		return r.High.Round(2)
	}
	return suggested.Round(2)
}
