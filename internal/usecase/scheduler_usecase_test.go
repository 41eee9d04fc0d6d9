package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	mock_interfaces "github.com/Lee196444/Text2toss-app/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func TestSchedulerUseCase_CheckSlot(t *testing.T) {
	t.Run("restricted weekday", func(t *testing.T) {
		uc := NewSchedulerUseCase(nil, schedule.DefaultCalendar())
		for offset := 4; offset <= 6; offset++ {
			err := uc.CheckSlot(context.Background(), monday.AddDate(0, 0, offset), "08:00-10:00")
			if !errors.Is(err, ErrRestrictedDay) {
				t.Fatalf("day +%d: expected ErrRestrictedDay, got %v", offset, err)
			}
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		uc := NewSchedulerUseCase(nil, schedule.DefaultCalendar())
		err := uc.CheckSlot(context.Background(), monday, "07:00-08:00")
		if !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("expected ErrInvalidSlot, got %v", err)
		}
	})

	t.Run("taken slot ignores cancelled bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := NewSchedulerUseCase(repo, schedule.DefaultCalendar())

		repo.EXPECT().ListByDate(gomock.Any(), monday).Return([]entities.Booking{
			{ID: "b-1", PickupTime: "08:00-10:00", Status: entities.BookingStatusCancelled},
			{ID: "b-2", PickupTime: "10:00-12:00", Status: entities.BookingStatusPendingCustomerApproval},
		}, nil).Times(2)

		if err := uc.CheckSlot(context.Background(), monday, "08:00-10:00"); err != nil {
			t.Fatalf("cancelled booking should not hold slot: %v", err)
		}
		if err := uc.CheckSlot(context.Background(), monday, "10:00-12:00"); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := NewSchedulerUseCase(repo, schedule.DefaultCalendar())

		repo.EXPECT().ListByDate(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))
		if err := uc.CheckSlot(context.Background(), monday, "08:00-10:00"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestSchedulerUseCase_Availability(t *testing.T) {
	t.Run("counts held slots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := NewSchedulerUseCase(repo, schedule.DefaultCalendar())

		repo.EXPECT().ListByDate(gomock.Any(), monday).Return([]entities.Booking{
			{PickupTime: "08:00-10:00", Status: entities.BookingStatusScheduled},
			{PickupTime: "10:00-12:00", Status: entities.BookingStatusInProgress},
			{PickupTime: "12:00-14:00", Status: entities.BookingStatusCompleted},
		}, nil)

		day, err := uc.Availability(context.Background(), monday.Add(9*time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if day.AvailableCount != 3 || day.Status != entities.AvailabilityAvailable {
			t.Fatalf("unexpected availability: %+v", day)
		}
	})

	t.Run("restricted day skips lookup", func(t *testing.T) {
		uc := NewSchedulerUseCase(nil, schedule.DefaultCalendar())
		day, err := uc.Availability(context.Background(), monday.AddDate(0, 0, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !day.IsRestricted || day.AvailableCount != 0 || day.Status != entities.AvailabilityRestricted {
			t.Fatalf("unexpected availability: %+v", day)
		}
	})

	t.Run("range validation", func(t *testing.T) {
		uc := NewSchedulerUseCase(nil, schedule.DefaultCalendar())
		if _, err := uc.AvailabilityRange(context.Background(), monday, monday.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
		if _, err := uc.AvailabilityRange(context.Background(), monday, monday.AddDate(0, 0, schedule.MaxRangeDays)); !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange for oversized range, got %v", err)
		}
	})

	t.Run("range covers every day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBookingRepository(ctrl)
		uc := NewSchedulerUseCase(repo, schedule.DefaultCalendar())

		repo.EXPECT().ListByDate(gomock.Any(), gomock.Any()).Return(nil, nil).Times(4)

		days, err := uc.AvailabilityRange(context.Background(), monday, monday.AddDate(0, 0, 6))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(days) != 7 {
			t.Fatalf("expected 7 days, got %d", len(days))
		}
	})
}
