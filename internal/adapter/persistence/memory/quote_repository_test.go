package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

func TestQuoteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := NewQuoteRepository()
		q := entities.Quote{ID: "q-1", ApprovalStatus: entities.ApprovalStatusPending, TotalPrice: decimal.NewFromInt(170)}
		if _, err := repo.Create(ctx, q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Create(ctx, q); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		got, _ := repo.GetByID(ctx, "q-1")
		if !got.TotalPrice.Equal(q.TotalPrice) {
			t.Fatalf("unexpected quote: %+v", got)
		}
		missing, _ := repo.GetByID(ctx, "nope")
		if missing.ID != "" {
			t.Fatalf("expected zero quote, got %+v", missing)
		}
	})

	t.Run("record decision only once", func(t *testing.T) {
		repo := NewQuoteRepository()
		_, _ = repo.Create(ctx, entities.Quote{ID: "q-1", ApprovalStatus: entities.ApprovalStatusPending})
		price := decimal.NewFromInt(220)
		d := entities.ApprovalDecision{Status: entities.ApprovalStatusApproved, ApprovedPrice: &price, ApprovedBy: "admin", ApprovedAt: time.Now()}

		got, err := repo.RecordDecision(ctx, "q-1", d)
		if err != nil || got.ApprovalStatus != entities.ApprovalStatusApproved || got.ApprovedPrice == nil || !got.ApprovedPrice.Equal(price) {
			t.Fatalf("unexpected decision result: %+v err=%v", got, err)
		}
		again, _ := repo.RecordDecision(ctx, "q-1", d)
		if again.ID != "" {
			t.Fatalf("second decision must be refused, got %+v", again)
		}
	})

	t.Run("counts and lists by status", func(t *testing.T) {
		repo := NewQuoteRepository()
		_, _ = repo.Create(ctx, entities.Quote{ID: "a", ApprovalStatus: entities.ApprovalStatusPending})
		_, _ = repo.Create(ctx, entities.Quote{ID: "b", ApprovalStatus: entities.ApprovalStatusPending})
		_, _ = repo.Create(ctx, entities.Quote{ID: "c", ApprovalStatus: entities.ApprovalStatusAutoApproved})

		counts, _ := repo.CountByApprovalStatus(ctx)
		if counts[entities.ApprovalStatusPending] != 2 || counts[entities.ApprovalStatusAutoApproved] != 1 {
			t.Fatalf("unexpected counts: %v", counts)
		}
		pending, _ := repo.ListByApprovalStatus(ctx, entities.ApprovalStatusPending)
		if len(pending) != 2 {
			t.Fatalf("expected 2 pending, got %d", len(pending))
		}
	})
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()
	base := time.Now().UTC()
	_, _ = repo.Create(ctx, entities.PaymentTransaction{ID: "s-2", BookingID: "b-1", Status: entities.PaymentStatusInitiated, CreatedAt: base.Add(time.Minute)})
	_, _ = repo.Create(ctx, entities.PaymentTransaction{ID: "s-1", BookingID: "b-1", Status: entities.PaymentStatusInitiated, CreatedAt: base})

	list, _ := repo.ListByBookingID(ctx, "b-1")
	if len(list) != 2 || list[0].ID != "s-1" {
		t.Fatalf("expected oldest first, got %+v", list)
	}

	update := interfaces.PaymentUpdate{Status: entities.PaymentStatusPaid, ProviderPaymentID: "123", ProviderStatus: "approved"}
	got, err := repo.UpdateProviderStatus(ctx, "s-1", update)
	if err != nil || got.Status != entities.PaymentStatusPaid || got.ProviderPaymentID != "123" {
		t.Fatalf("unexpected update: %+v err=%v", got, err)
	}
	missing, _ := repo.UpdateProviderStatus(ctx, "nope", update)
	if missing.ID != "" {
		t.Fatalf("expected zero payment, got %+v", missing)
	}
}
