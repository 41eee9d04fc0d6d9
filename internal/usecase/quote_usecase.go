package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/pricing"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItems       = errors.New("invalid items")
	ErrInvalidImage       = errors.New("invalid image")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrAdvisorUnavailable = errors.New("price advisor unavailable")
)

const defaultAdvisorTimeout = 20 * time.Second

// IQuoteUseCase prices item lists and exposes the approval queue.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, items []entities.Item, description string) (entities.Quote, error)
	CreateQuoteFromImage(ctx context.Context, image []byte, mimeType, description string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListPending(ctx context.Context) ([]entities.Quote, error)
	ApprovalStats(ctx context.Context) (entities.ApprovalStats, error)
}

type QuoteUseCase struct {
	repo           interfaces.IQuoteRepository
	pricer         *pricing.Pricer
	advisor        interfaces.IPriceAdvisor
	vision         interfaces.IVisionAdvisor
	advisorTimeout time.Duration
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

// NewQuoteUseCase wires the quote engine. advisor and vision may be nil, in which
// case text quotes are priced deterministically and image quotes go to manual review.
func NewQuoteUseCase(repo interfaces.IQuoteRepository, pricer *pricing.Pricer, advisor interfaces.IPriceAdvisor, vision interfaces.IVisionAdvisor, advisorTimeout time.Duration) *QuoteUseCase {
	if advisorTimeout <= 0 {
		advisorTimeout = defaultAdvisorTimeout
	}
	return &QuoteUseCase{repo: repo, pricer: pricer, advisor: advisor, vision: vision, advisorTimeout: advisorTimeout}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, items []entities.Item, description string) (entities.Quote, error) {
	items = normalizeItems(items)
	description = strings.TrimSpace(description)

	res, err := u.pricer.Price(items)
	if err != nil {
		log.Printf("[quote][usecase] create rejected items=%d err=%v", len(items), err)
		return entities.Quote{}, fmt.Errorf("%w: %w", ErrInvalidItems, err)
	}

	price := res.TotalPrice
	explanation := fmt.Sprintf("Priced by volume within level %d ($%s-$%s).", res.ScaleLevel, res.Range.Low.StringFixed(2), res.Range.High.StringFixed(2))

	if u.advisor != nil {
		sugg, err := u.suggest(ctx, items, description)
		if err != nil {
			log.Printf("[quote][usecase] advisor fallback level=%d err=%v", res.ScaleLevel, err)
		} else {
			if sugg.ScaleLevel != 0 && sugg.ScaleLevel != res.ScaleLevel {
				log.Printf("[quote][usecase] advisor level ignored advisor_level=%d level=%d", sugg.ScaleLevel, res.ScaleLevel)
			}
			if sugg.Price.IsPositive() {
				price = pricing.ClampTo(res.Band, sugg.Price)
			}
			if strings.TrimSpace(sugg.Explanation) != "" {
				explanation = strings.TrimSpace(sugg.Explanation)
			}
		}
	}

	level := res.ScaleLevel
	q := u.newQuote(items, &level, price, description, explanation, entities.QuoteSourceText)
	q.Breakdown.VolumeAssessment = res.Breakdown.VolumeAssessment

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] create failed quote_id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] create success quote_id=%s scale_level=%d price=%s status=%s", created.ID, level, created.TotalPrice, created.ApprovalStatus)
	return created, nil
}

func (u *QuoteUseCase) suggest(ctx context.Context, items []entities.Item, description string) (interfaces.PriceSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, u.advisorTimeout)
	defer cancel()
	sugg, err := u.advisor.SuggestPrice(ctx, items, description)
	if err != nil {
		return interfaces.PriceSuggestion{}, fmt.Errorf("%w: %w", ErrAdvisorUnavailable, err)
	}
	return sugg, nil
}

// CreateQuoteFromImage prices a photo of the junk. Items the advisor recognises are
// re-priced within their volume band; a bare level only bounds the price; anything
// else is stored unclassified for an admin to price.
func (u *QuoteUseCase) CreateQuoteFromImage(ctx context.Context, image []byte, mimeType, description string) (entities.Quote, error) {
	if len(image) == 0 {
		return entities.Quote{}, ErrInvalidImage
	}
	description = strings.TrimSpace(description)

	var sugg interfaces.PriceSuggestion
	var adviceErr error
	if u.vision == nil {
		adviceErr = ErrAdvisorUnavailable
	} else {
		vctx, cancel := context.WithTimeout(ctx, u.advisorTimeout)
		sugg, adviceErr = u.vision.SuggestPriceFromImage(vctx, image, mimeType, description)
		cancel()
	}
	if adviceErr != nil {
		log.Printf("[quote][usecase] vision advisor unavailable image_bytes=%d err=%v", len(image), adviceErr)
		sugg = interfaces.PriceSuggestion{}
	}

	if description == "" {
		description = strings.TrimSpace(sugg.Description)
	}
	explanation := strings.TrimSpace(sugg.Explanation)
	items := usableItems(sugg.Items)

	var q entities.Quote
	switch {
	case len(items) > 0:
		res, err := u.pricer.Price(items)
		if err != nil {
			return entities.Quote{}, fmt.Errorf("%w: %w", ErrInvalidItems, err)
		}
		price := res.TotalPrice
		if sugg.Price.IsPositive() {
			price = pricing.ClampTo(res.Band, sugg.Price)
		}
		level := res.ScaleLevel
		q = u.newQuote(items, &level, price, description, explanation, entities.QuoteSourceImage)
		q.Breakdown.VolumeAssessment = res.Breakdown.VolumeAssessment
	case u.pricer.ValidLevel(sugg.ScaleLevel):
		res := u.pricer.ForLevel(sugg.ScaleLevel)
		price := res.TotalPrice
		if sugg.Price.IsPositive() {
			price = u.pricer.Clamp(res.ScaleLevel, sugg.Price)
		}
		level := res.ScaleLevel
		q = u.newQuote(nil, &level, price, description, explanation, entities.QuoteSourceImage)
		q.Breakdown.VolumeAssessment = res.Breakdown.VolumeAssessment
	default:
		if explanation == "" {
			explanation = "Could not classify the photo; an admin will price this quote."
		}
		q = u.newQuote(nil, nil, decimal.Zero, description, explanation, entities.QuoteSourceImage)
		q.Breakdown.VolumeAssessment = "Unclassified - manual review required"
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] image create failed quote_id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] image create success quote_id=%s classified=%t price=%s status=%s", created.ID, created.Classified(), created.TotalPrice, created.ApprovalStatus)
	return created, nil
}

func (u *QuoteUseCase) newQuote(items []entities.Item, level *int, price decimal.Decimal, description, explanation string, source entities.QuoteSource) entities.Quote {
	if items == nil {
		items = []entities.Item{}
	}
	requiresApproval := u.pricer.RequiresApproval(level)
	status := entities.ApprovalStatusAutoApproved
	if requiresApproval {
		status = entities.ApprovalStatusPending
	}
	now := time.Now().UTC()
	return entities.Quote{
		ID:          uuid.NewString(),
		Items:       items,
		TotalPrice:  price,
		ScaleLevel:  level,
		Description: description,
		Explanation: explanation,
		Breakdown: entities.PriceBreakdown{
			BasePrice:         price,
			AdditionalCharges: decimal.Zero,
			Total:             price,
		},
		Source:           source,
		ApprovalStatus:   status,
		RequiresApproval: requiresApproval,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// ListPending returns the admin queue, oldest first.
func (u *QuoteUseCase) ListPending(ctx context.Context) ([]entities.Quote, error) {
	quotes, err := u.repo.ListByApprovalStatus(ctx, entities.ApprovalStatusPending)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].CreatedAt.Before(quotes[j].CreatedAt) })
	return quotes, nil
}

func (u *QuoteUseCase) ApprovalStats(ctx context.Context) (entities.ApprovalStats, error) {
	counts, err := u.repo.CountByApprovalStatus(ctx)
	if err != nil {
		return entities.ApprovalStats{}, err
	}
	stats := entities.ApprovalStats{
		PendingApproval: counts[entities.ApprovalStatusPending],
		Approved:        counts[entities.ApprovalStatusApproved],
		Rejected:        counts[entities.ApprovalStatusRejected],
		AutoApproved:    counts[entities.ApprovalStatusAutoApproved],
	}
	stats.TotalRequiringApproval = stats.PendingApproval + stats.Approved + stats.Rejected
	return stats, nil
}

func normalizeItems(items []entities.Item) []entities.Item {
	out := make([]entities.Item, 0, len(items))
	for _, it := range items {
		size, _ := entities.ParseItemSize(string(it.Size))
		out = append(out, entities.Item{
			Name:        strings.TrimSpace(it.Name),
			Quantity:    it.Quantity,
			Size:        size,
			Description: strings.TrimSpace(it.Description),
		})
	}
	return out
}

// usableItems keeps only the advisor items that would pass validation on their own.
func usableItems(items []entities.Item) []entities.Item {
	var out []entities.Item
	for _, it := range normalizeItems(items) {
		if pricing.ValidateItems([]entities.Item{it}) == nil {
			out = append(out, it)
		}
	}
	return out
}
