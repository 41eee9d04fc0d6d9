package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidSlot      = errors.New("invalid time slot")
	ErrRestrictedDay    = errors.New("pickups are not available on this day")
	ErrSlotTaken        = errors.New("time slot already booked")
)

// ISchedulerUseCase answers slot and availability questions.
type ISchedulerUseCase interface {
	IsRestricted(date time.Time) bool
	CheckSlot(ctx context.Context, date time.Time, slot string) error
	Availability(ctx context.Context, date time.Time) (entities.AvailabilityDay, error)
	AvailabilityRange(ctx context.Context, start, end time.Time) ([]entities.AvailabilityDay, error)
}

type SchedulerUseCase struct {
	bookings interfaces.IBookingRepository
	calendar schedule.Calendar
}

var _ ISchedulerUseCase = (*SchedulerUseCase)(nil)

func NewSchedulerUseCase(bookings interfaces.IBookingRepository, calendar schedule.Calendar) *SchedulerUseCase {
	return &SchedulerUseCase{bookings: bookings, calendar: calendar}
}

func (u *SchedulerUseCase) Calendar() schedule.Calendar {
	return u.calendar
}

func (u *SchedulerUseCase) IsRestricted(date time.Time) bool {
	return u.calendar.IsRestricted(date)
}

// CheckSlot reports the first reason a (date, slot) cannot be booked: restricted
// day, unknown slot, then an existing slot-holding booking.
func (u *SchedulerUseCase) CheckSlot(ctx context.Context, date time.Time, slot string) error {
	if u.calendar.IsRestricted(date) {
		return fmt.Errorf("%w: %s is a %s", ErrRestrictedDay, schedule.FormatDate(date), date.Weekday())
	}
	if !u.calendar.ValidSlot(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	held, err := u.heldSlots(ctx, date)
	if err != nil {
		return err
	}
	for _, h := range held {
		if h == slot {
			return ErrSlotTaken
		}
	}
	return nil
}

func (u *SchedulerUseCase) Availability(ctx context.Context, date time.Time) (entities.AvailabilityDay, error) {
	date = schedule.Civil(date)
	if u.calendar.IsRestricted(date) {
		return u.calendar.Day(date, nil), nil
	}
	held, err := u.heldSlots(ctx, date)
	if err != nil {
		return entities.AvailabilityDay{}, err
	}
	return u.calendar.Day(date, held), nil
}

// AvailabilityRange covers start..end inclusive, at most MaxRangeDays days.
func (u *SchedulerUseCase) AvailabilityRange(ctx context.Context, start, end time.Time) ([]entities.AvailabilityDay, error) {
	start, end = schedule.Civil(start), schedule.Civil(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", ErrInvalidDateRange)
	}
	if span := schedule.SpanDays(start, end); span > schedule.MaxRangeDays {
		return nil, fmt.Errorf("%w: range spans %d days, max %d", ErrInvalidDateRange, span, schedule.MaxRangeDays)
	}

	days := schedule.Days(start, end)
	out := make([]entities.AvailabilityDay, 0, len(days))
	for _, d := range days {
		day, err := u.Availability(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

func (u *SchedulerUseCase) heldSlots(ctx context.Context, date time.Time) ([]string, error) {
	bookings, err := u.bookings.ListByDate(ctx, schedule.Civil(date))
	if err != nil {
		return nil, err
	}
	held := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.Status.HoldsSlot() {
			held = append(held, b.PickupTime)
		}
	}
	return held, nil
}
