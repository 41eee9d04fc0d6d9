package response

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromQuote(t *testing.T) {
	level := 12
	price := decimal.RequireFromString("280")
	q := entities.Quote{
		ID:             "q-1",
		Items:          []entities.Item{{Name: "Wardrobe", Quantity: 6, Size: entities.ItemSizeLarge}},
		TotalPrice:     decimal.RequireFromString("267.5"),
		ScaleLevel:     &level,
		ApprovalStatus: entities.ApprovalStatusApproved,
		ApprovedPrice:  &price,
	}

	got := FromQuote(q)
	if got.TotalPrice != 267.5 || *got.ApprovedPrice != 280 || *got.ScaleLevel != 12 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.ApprovalStatus != "approved" || got.Items[0].Size != "large" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestFromQuote_UnclassifiedKeepsNullLevel(t *testing.T) {
	b, _ := json.Marshal(FromQuote(entities.Quote{ID: "q-2"}))
	if !strings.Contains(string(b), `"scale_level":null`) {
		t.Fatalf("expected null scale_level, got %s", b)
	}
}

func TestFromBooking_HidesToken(t *testing.T) {
	b := entities.Booking{
		ID:                    "b-1",
		PickupDate:            time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:                entities.BookingStatusPendingCustomerApproval,
		CustomerApprovalToken: "secret-token",
	}
	raw, _ := json.Marshal(FromBooking(b))
	if strings.Contains(string(raw), "secret-token") {
		t.Fatalf("token leaked: %s", raw)
	}
	if !strings.Contains(string(raw), `"pickup_date":"2025-03-03"`) {
		t.Fatalf("expected civil date, got %s", raw)
	}
}

func TestFromAvailabilityRange(t *testing.T) {
	days := []entities.AvailabilityDay{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), TotalSlots: 5, AvailableCount: 5, Status: entities.AvailabilityAvailable},
		{Date: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), IsRestricted: true, Status: entities.AvailabilityRestricted},
	}
	got := FromAvailabilityRange(days)
	if len(got) != 2 || got["2025-03-07"].Status != "restricted" {
		t.Fatalf("unexpected range: %+v", got)
	}
	if got["2025-03-03"].BookedSlots == nil {
		t.Fatalf("booked_slots must serialize as an empty list")
	}
}

func TestFromDecision(t *testing.T) {
	r := usecase.DecisionResult{
		Quote:            entities.Quote{ID: "q-1"},
		PendingCustomer:  []entities.Booking{{ID: "b-1"}, {ID: "b-2"}},
		FailedBookingIDs: []string{"b-3"},
	}
	got := FromDecision(r)
	if len(got.CustomerApprovalPending) != 2 || got.FailedBookingIDs[0] != "b-3" {
		t.Fatalf("unexpected decision: %+v", got)
	}
	if got.Warnings != nil {
		t.Fatalf("expected no warnings, got %v", got.Warnings)
	}

	r.CascadeErr = fmt.Errorf("%w: listing bookings: timeout", usecase.ErrCascadeIncomplete)
	got = FromDecision(r)
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "timeout") {
		t.Fatalf("expected cascade warning, got %v", got.Warnings)
	}
}

func TestFromPaymentStatus(t *testing.T) {
	paid := FromPaymentStatus(entities.PaymentTransaction{ID: "s-1", Status: entities.PaymentStatusPaid, ProviderStatus: "approved"})
	if paid.PaymentStatus != "paid" {
		t.Fatalf("expected paid, got %q", paid.PaymentStatus)
	}
	open := FromPaymentStatus(entities.PaymentTransaction{ID: "s-2", Status: entities.PaymentStatusInitiated})
	if open.PaymentStatus != "pending" {
		t.Fatalf("expected pending, got %q", open.PaymentStatus)
	}
}
