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
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
	"github.com/Lee196444/Text2toss-app/pkg/phone"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

var (
	ErrInvalidBookingID    = errors.New("invalid booking id")
	ErrInvalidBookingInput = errors.New("invalid booking input")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrQuoteRejected       = errors.New("quote was rejected")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrNotificationFailed  = errors.New("notification could not be delivered")
)

// CreateBookingCommand is the customer input for a new pickup.
type CreateBookingCommand struct {
	QuoteID             string
	PickupDate          time.Time
	PickupTime          string
	Address             string
	Phone               string
	SpecialInstructions string
}

// DaySchedule is the admin view of one pickup day.
type DaySchedule struct {
	Date         time.Time
	Bookings     []entities.Booking
	Availability entities.AvailabilityDay
}

type WeekSchedule struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Days      []DaySchedule
}

// IBookingUseCase manages pickups from creation to completion.
type IBookingUseCase interface {
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, to entities.BookingStatus) (entities.Booking, error)
	Complete(ctx context.Context, id, note, photoURL string) (entities.Booking, error)
	NotifyCustomer(ctx context.Context, id string) (entities.Booking, error)
	DailySchedule(ctx context.Context, date time.Time) (DaySchedule, error)
	WeeklySchedule(ctx context.Context, date time.Time) (WeekSchedule, error)
	CalendarData(ctx context.Context, start, end time.Time) (map[string][]entities.Booking, error)
}

type BookingUseCase struct {
	repo      interfaces.IBookingRepository
	quotes    interfaces.IQuoteRepository
	scheduler ISchedulerUseCase
	calendar  schedule.Calendar
	notify    notificationSender
	messages  Messages
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(
	repo interfaces.IBookingRepository,
	quotes interfaces.IQuoteRepository,
	scheduler ISchedulerUseCase,
	calendar schedule.Calendar,
	notifier interfaces.INotifier,
	messages Messages,
) *BookingUseCase {
	return &BookingUseCase{
		repo:      repo,
		quotes:    quotes,
		scheduler: scheduler,
		calendar:  calendar,
		notify:    newNotificationSender(notifier),
		messages:  messages,
	}
}

func (u *BookingUseCase) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (entities.Booking, error) {
	quoteID := strings.TrimSpace(cmd.QuoteID)
	if quoteID == "" {
		return entities.Booking{}, ErrInvalidQuoteID
	}
	address := strings.TrimSpace(cmd.Address)
	if address == "" {
		return entities.Booking{}, fmt.Errorf("%w: address is required", ErrInvalidBookingInput)
	}
	normalizedPhone := phone.Normalize(cmd.Phone)
	if normalizedPhone == "" {
		return entities.Booking{}, fmt.Errorf("%w: phone %q is not a valid number", ErrInvalidBookingInput, cmd.Phone)
	}
	if cmd.PickupDate.IsZero() {
		return entities.Booking{}, ErrInvalidDate
	}
	date := schedule.Civil(cmd.PickupDate)
	slot := strings.TrimSpace(cmd.PickupTime)

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Booking{}, err
	}
	if q.ID == "" {
		return entities.Booking{}, ErrQuoteNotFound
	}
	if q.ApprovalStatus == entities.ApprovalStatusRejected {
		log.Printf("[booking][usecase] create refused quote_id=%s status=%s", quoteID, q.ApprovalStatus)
		return entities.Booking{}, ErrQuoteRejected
	}

	if err := u.scheduler.CheckSlot(ctx, date, slot); err != nil {
		log.Printf("[booking][usecase] slot check failed date=%s slot=%s err=%v", schedule.FormatDate(date), slot, err)
		return entities.Booking{}, err
	}

	ts := time.Now().UTC()
	b := entities.Booking{
		ID:                  uuid.NewString(),
		QuoteID:             quoteID,
		PickupDate:          date,
		PickupTime:          slot,
		Address:             address,
		Phone:               normalizedPhone,
		SpecialInstructions: strings.TrimSpace(cmd.SpecialInstructions),
		Status:              entities.BookingStatusScheduled,
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}

	created, err := u.repo.CreateWithSlot(ctx, b)
	if err != nil {
		if errors.Is(err, interfaces.ErrSlotUnavailable) {
			log.Printf("[booking][usecase] lost slot race date=%s slot=%s", schedule.FormatDate(date), slot)
			return entities.Booking{}, ErrSlotTaken
		}
		log.Printf("[booking][usecase] create failed booking_id=%s err=%v", b.ID, err)
		return entities.Booking{}, err
	}
	log.Printf("[booking][usecase] create success booking_id=%s quote_id=%s date=%s slot=%s", created.ID, quoteID, schedule.FormatDate(date), slot)

	u.notify.send(ctx, "booking", created.Phone, u.messages.bookingConfirmed(created, q), "")
	return created, nil
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// adminTargets are the statuses an admin may set directly. scheduled and
// pending_customer_approval are only reached through the price-approval workflow.
var adminTargets = map[entities.BookingStatus]bool{
	entities.BookingStatusInProgress: true,
	entities.BookingStatusCompleted:  true,
	entities.BookingStatusCancelled:  true,
}

func (u *BookingUseCase) UpdateStatus(ctx context.Context, id string, to entities.BookingStatus) (entities.Booking, error) {
	if !to.Valid() {
		return entities.Booking{}, fmt.Errorf("%w: unknown status %q", ErrInvalidBookingInput, to)
	}
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if !adminTargets[to] || !b.Status.CanTransitionTo(to) {
		log.Printf("[booking][usecase] transition rejected booking_id=%s from=%s to=%s", b.ID, b.Status, to)
		return entities.Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}

	updated, err := u.apply(ctx, b, entities.NewStatusChange(b.Status, to, time.Now().UTC()))
	if err != nil {
		return entities.Booking{}, err
	}
	if msg := u.messages.statusChanged(updated); msg != "" {
		u.notify.send(ctx, "booking", updated.Phone, msg, "")
	}
	return updated, nil
}

// Complete closes an in-progress pickup with the crew's note and photo.
func (u *BookingUseCase) Complete(ctx context.Context, id, note, photoURL string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if !b.Status.CanTransitionTo(entities.BookingStatusCompleted) {
		log.Printf("[booking][usecase] completion rejected booking_id=%s status=%s", b.ID, b.Status)
		return entities.Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, entities.BookingStatusCompleted)
	}
	change := entities.NewStatusChange(b.Status, entities.BookingStatusCompleted, time.Now().UTC())
	change.Note = strings.TrimSpace(note)
	change.PhotoURL = strings.TrimSpace(photoURL)
	return u.apply(ctx, b, change)
}

// NotifyCustomer texts the completion note and photo of a finished pickup.
func (u *BookingUseCase) NotifyCustomer(ctx context.Context, id string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.Status != entities.BookingStatusCompleted {
		return entities.Booking{}, ErrBookingNotCompleted
	}
	if !u.notify.send(ctx, "booking", b.Phone, u.messages.completionNotice(b), b.CompletionPhotoURL) {
		return entities.Booking{}, ErrNotificationFailed
	}
	return b, nil
}

func (u *BookingUseCase) apply(ctx context.Context, b entities.Booking, change entities.StatusChange) (entities.Booking, error) {
	updated, err := u.repo.UpdateStatus(ctx, b.ID, change)
	if err != nil {
		log.Printf("[booking][usecase] status update failed booking_id=%s err=%v", b.ID, err)
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		log.Printf("[booking][usecase] status changed concurrently booking_id=%s expected=%s", b.ID, change.From)
		return entities.Booking{}, fmt.Errorf("%w: booking is no longer %s", ErrInvalidTransition, change.From)
	}
	log.Printf("[booking][usecase] status updated booking_id=%s from=%s to=%s slot_released=%t", updated.ID, change.From, updated.Status, change.ReleaseSlot)
	return updated, nil
}

func (u *BookingUseCase) DailySchedule(ctx context.Context, date time.Time) (DaySchedule, error) {
	date = schedule.Civil(date)
	bookings, err := u.repo.ListByDate(ctx, date)
	if err != nil {
		return DaySchedule{}, err
	}
	u.sortBySlot(bookings)
	avail, err := u.scheduler.Availability(ctx, date)
	if err != nil {
		return DaySchedule{}, err
	}
	return DaySchedule{Date: date, Bookings: bookings, Availability: avail}, nil
}

// WeeklySchedule returns the Monday-to-Sunday week containing date.
func (u *BookingUseCase) WeeklySchedule(ctx context.Context, date time.Time) (WeekSchedule, error) {
	week := (&now.Config{WeekStartDay: time.Monday}).With(schedule.Civil(date))
	start := schedule.Civil(week.BeginningOfWeek())
	end := schedule.Civil(week.EndOfWeek())

	out := WeekSchedule{WeekStart: start, WeekEnd: end}
	for _, d := range schedule.Days(start, end) {
		day, err := u.DailySchedule(ctx, d)
		if err != nil {
			return WeekSchedule{}, err
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}

// CalendarData groups bookings by pickup date for the admin calendar.
func (u *BookingUseCase) CalendarData(ctx context.Context, start, end time.Time) (map[string][]entities.Booking, error) {
	start, end = schedule.Civil(start), schedule.Civil(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", ErrInvalidDateRange)
	}
	if span := schedule.SpanDays(start, end); span > schedule.MaxRangeDays {
		return nil, fmt.Errorf("%w: range spans %d days, max %d", ErrInvalidDateRange, span, schedule.MaxRangeDays)
	}

	days := schedule.Days(start, end)

	out := make(map[string][]entities.Booking)
	for _, d := range days {
		bookings, err := u.repo.ListByDate(ctx, d)
		if err != nil {
			return nil, err
		}
		if len(bookings) == 0 {
			continue
		}
		u.sortBySlot(bookings)
		out[schedule.FormatDate(d)] = bookings
	}
	return out, nil
}

func (u *BookingUseCase) sortBySlot(bookings []entities.Booking) {
	order := make(map[string]int)
	for i, s := range u.calendar.Slots() {
		order[s] = i
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		oi, iok := order[bookings[i].PickupTime]
		oj, jok := order[bookings[j].PickupTime]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
