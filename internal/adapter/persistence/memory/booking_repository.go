package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
)

var ErrAlreadyExists = errors.New("record already exists")

// BookingRepository keeps bookings and slot claims behind one mutex, so the
// slot check and the insert happen as a single step.
type BookingRepository struct {
	mu       sync.Mutex
	bookings map[string]entities.Booking
	slots    map[string]string // "<date>#<slot>" -> booking id
}

var _ interfaces.IBookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[string]entities.Booking),
		slots:    make(map[string]string),
	}
}

func slotKey(date time.Time, slot string) string {
	return schedule.FormatDate(date) + "#" + slot
}

func (r *BookingRepository) CreateWithSlot(_ context.Context, b entities.Booking) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[b.ID]; exists {
		return entities.Booking{}, ErrAlreadyExists
	}
	key := slotKey(b.PickupDate, b.PickupTime)
	if _, held := r.slots[key]; held {
		return entities.Booking{}, interfaces.ErrSlotUnavailable
	}
	r.slots[key] = b.ID
	r.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b), nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneBooking(r.bookings[id]), nil
}

func (r *BookingRepository) GetByApprovalToken(_ context.Context, token string) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return entities.Booking{}, nil
	}
	for _, b := range r.bookings {
		if b.CustomerApprovalToken == token {
			return cloneBooking(b), nil
		}
	}
	return entities.Booking{}, nil
}

func (r *BookingRepository) ListByDate(_ context.Context, date time.Time) ([]entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := schedule.FormatDate(date)
	out := []entities.Booking{}
	for _, b := range r.bookings {
		if schedule.FormatDate(b.PickupDate) == day {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (r *BookingRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.Booking{}
	for _, b := range r.bookings {
		if b.QuoteID == quoteID {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (r *BookingRepository) BeginPriceApproval(_ context.Context, id string, req entities.PriceApprovalRequest, at time.Time) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != entities.BookingStatusScheduled {
		return entities.Booking{}, nil
	}
	original, adjusted := req.OriginalPrice, req.AdjustedPrice
	b.Status = entities.BookingStatusPendingCustomerApproval
	b.RequiresCustomerApproval = true
	b.CustomerApprovalToken = req.Token
	b.OriginalPrice = &original
	b.AdjustedPrice = &adjusted
	b.PriceAdjustmentReason = req.Reason
	b.CustomerNotes = ""
	b.CustomerRespondedAt = nil
	b.UpdatedAt = at
	r.bookings[id] = b
	return cloneBooking(b), nil
}

func (r *BookingRepository) ResolvePriceApproval(_ context.Context, token string, d entities.CustomerDecision) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return entities.Booking{}, nil
	}
	for id, b := range r.bookings {
		if b.CustomerApprovalToken != token || b.Status != entities.BookingStatusPendingCustomerApproval {
			continue
		}
		at := d.RespondedAt
		b.CustomerApprovalToken = ""
		b.RequiresCustomerApproval = false
		b.CustomerNotes = d.Notes
		b.CustomerRespondedAt = &at
		b.UpdatedAt = at
		if d.Approved {
			b.Status = entities.BookingStatusScheduled
		} else {
			b.Status = entities.BookingStatusCancelled
			r.releaseSlot(b)
		}
		r.bookings[id] = b
		return cloneBooking(b), nil
	}
	return entities.Booking{}, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, change entities.StatusChange) (entities.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != change.From {
		return entities.Booking{}, nil
	}
	b.Status = change.To
	b.UpdatedAt = change.At
	if change.To == entities.BookingStatusCompleted {
		at := change.At
		b.CompletedAt = &at
		if change.Note != "" {
			b.CompletionNote = change.Note
		}
		if change.PhotoURL != "" {
			b.CompletionPhotoURL = change.PhotoURL
		}
	}
	if change.ClearApprovalToken {
		b.CustomerApprovalToken = ""
		b.RequiresCustomerApproval = false
	}
	if change.ReleaseSlot {
		r.releaseSlot(b)
	}
	r.bookings[id] = b
	return cloneBooking(b), nil
}

// releaseSlot must be called with mu held.
func (r *BookingRepository) releaseSlot(b entities.Booking) {
	key := slotKey(b.PickupDate, b.PickupTime)
	if r.slots[key] == b.ID {
		delete(r.slots, key)
	}
}

func cloneBooking(b entities.Booking) entities.Booking {
	if b.OriginalPrice != nil {
		p := *b.OriginalPrice
		b.OriginalPrice = &p
	}
	if b.AdjustedPrice != nil {
		p := *b.AdjustedPrice
		b.AdjustedPrice = &p
	}
	if b.CustomerRespondedAt != nil {
		at := *b.CustomerRespondedAt
		b.CustomerRespondedAt = &at
	}
	if b.CompletedAt != nil {
		at := *b.CompletedAt
		b.CompletedAt = &at
	}
	return b
}
