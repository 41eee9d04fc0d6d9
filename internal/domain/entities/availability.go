package entities

import "time"

// AvailabilityStatus summarises how full a pickup day is.
type AvailabilityStatus string

const (
	AvailabilityRestricted  AvailabilityStatus = "restricted"
	AvailabilityFullyBooked AvailabilityStatus = "fully_booked"
	AvailabilityLimited     AvailabilityStatus = "limited"
	AvailabilityAvailable   AvailabilityStatus = "available"
)

// AvailabilityDay is derived from the calendar and the bookings of one date. Never stored.
type AvailabilityDay struct {
	Date           time.Time          `json:"date"`
	AvailableCount int                `json:"available_count"`
	TotalSlots     int                `json:"total_slots"`
	BookedSlots    []string           `json:"booked_slots"`
	AvailableSlots []string           `json:"available_slots"`
	IsRestricted   bool               `json:"is_restricted"`
	Status         AvailabilityStatus `json:"status"`
}
