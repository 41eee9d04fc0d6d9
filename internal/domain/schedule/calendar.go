package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
)

const (
	DateLayout   = "2006-01-02"
	MaxRangeDays = 92
)

var ErrInvalidCalendar = errors.New("invalid calendar")

// DefaultSlots are the five two-hour pickup windows of a working day.
var DefaultSlots = []string{
	"08:00-10:00",
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
}

// DefaultWeekdays are the days pickups run (Monday through Thursday).
var DefaultWeekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}

// Calendar is the immutable slot/weekday configuration injected into the scheduler.
type Calendar struct {
	slots   []string
	allowed map[time.Weekday]bool
}

func NewCalendar(slots []string, weekdays []time.Weekday) (Calendar, error) {
	if len(slots) == 0 {
		return Calendar{}, fmt.Errorf("%w: no slots", ErrInvalidCalendar)
	}
	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return Calendar{}, fmt.Errorf("%w: blank or duplicate slot %q", ErrInvalidCalendar, s)
		}
		seen[s] = true
	}
	allowed := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		allowed[d] = true
	}
	return Calendar{slots: append([]string(nil), slots...), allowed: allowed}, nil
}

func DefaultCalendar() Calendar {
	c, _ := NewCalendar(DefaultSlots, DefaultWeekdays)
	return c
}

// Slots returns a copy of the slot labels in display order.
func (c Calendar) Slots() []string {
	return append([]string(nil), c.slots...)
}

func (c Calendar) TotalSlots() int {
	return len(c.slots)
}

func (c Calendar) ValidSlot(slot string) bool {
	for _, s := range c.slots {
		if s == slot {
			return true
		}
	}
	return false
}

func (c Calendar) IsRestricted(date time.Time) bool {
	return !c.allowed[date.Weekday()]
}

// Day builds the availability view of one date given the slots already held.
func (c Calendar) Day(date time.Time, held []string) entities.AvailabilityDay {
	date = Civil(date)
	day := entities.AvailabilityDay{
		Date:           date,
		TotalSlots:     len(c.slots),
		BookedSlots:    []string{},
		AvailableSlots: []string{},
	}
	if c.IsRestricted(date) {
		day.IsRestricted = true
		day.Status = entities.AvailabilityRestricted
		return day
	}

	taken := make(map[string]bool, len(held))
	for _, h := range held {
		taken[h] = true
	}
	for _, s := range c.slots {
		if taken[s] {
			day.BookedSlots = append(day.BookedSlots, s)
		} else {
			day.AvailableSlots = append(day.AvailableSlots, s)
		}
	}
	day.AvailableCount = len(day.AvailableSlots)
	day.Status = DayStatus(false, day.AvailableCount)
	return day
}

// DayStatus: restricted, then fully_booked (0 free), limited (1-2 free), available.
func DayStatus(restricted bool, available int) entities.AvailabilityStatus {
	switch {
	case restricted:
		return entities.AvailabilityRestricted
	case available <= 0:
		return entities.AvailabilityFullyBooked
	case available <= 2:
		return entities.AvailabilityLimited
	default:
		return entities.AvailabilityAvailable
	}
}

// Civil drops the clock part and pins the date to UTC.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Days lists every civil date from start to end inclusive.
// SpanDays counts the days in start..end inclusive without materialising them.
// Spans beyond time.Duration saturate, which still exceeds any sane limit.
func SpanDays(start, end time.Time) int {
	start, end = Civil(start), Civil(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func Days(start, end time.Time) []time.Time {
	start, end = Civil(start), Civil(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
