package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status classifies a calendar day for a single room.
type Status string

const (
	// StatusPast indicates the day lies before the reference "today".
	StatusPast Status = "past"
	// StatusBooked indicates a confirmed booking blocks the day.
	StatusBooked Status = "booked"
	// StatusScheduled indicates a scheduled hold blocks the day.
	StatusScheduled Status = "scheduled"
	// StatusAvailable indicates the day is free for new bookings.
	StatusAvailable Status = "available"
)

// IntervalStatus describes the blocking state of a booking interval.
type IntervalStatus string

const (
	// IntervalConfirmed marks a confirmed booking.
	IntervalConfirmed IntervalStatus = "confirmed"
	// IntervalScheduled marks a scheduled hold that is not yet final.
	IntervalScheduled IntervalStatus = "scheduled"
)

// BookingInterval is one stay (confirmed booking or scheduled hold) against a
// room. CheckOut is the checkout morning; for blocking purposes the interval
// extends one day past CheckOut so the changeover day renders as occupied.
type BookingInterval struct {
	RoomID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Status    IntervalStatus
	GuestName string
}

// Room is the subset of room attributes the engine filters on.
type Room struct {
	ID       string
	Number   string
	Category string
}

// Classification is the outcome of classifying a day against a room's
// interval snapshot. GuestName is set for booked and scheduled days.
type Classification struct {
	Status    Status
	GuestName string
}

// RejectionReason explains why a date cannot start a new booking. Reasons are
// normal outcomes surfaced to callers as values, never raised as errors.
type RejectionReason string

const (
	// RejectionNone indicates the selection is acceptable.
	RejectionNone RejectionReason = ""
	// RejectionDateInPast indicates the date lies before today.
	RejectionDateInPast RejectionReason = "date_in_past"
	// RejectionAlreadyBooked indicates a confirmed booking occupies the date.
	RejectionAlreadyBooked RejectionReason = "already_booked"
	// RejectionAlreadyScheduled indicates a scheduled hold occupies the date.
	RejectionAlreadyScheduled RejectionReason = "already_scheduled"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("availability: invalid date")

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, trimmed)
	}
	return parsed, nil
}

// DateOnly normalizes an instant to its calendar day, discarding time-of-day
// and timezone so day comparisons are exact.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Classify determines the status of a (date, room) pair against a snapshot of
// that room's intervals. Rules are evaluated in order and the first match
// wins: past days take precedence over any interval, and confirmed bookings
// take precedence over scheduled holds when both contain the date.
func Classify(date time.Time, roomID string, intervals []BookingInterval, today time.Time) Classification {
	day := DateOnly(date)

	if day.Before(DateOnly(today)) {
		return Classification{Status: StatusPast}
	}

	if interval, ok := findBlocking(day, roomID, intervals, IntervalConfirmed); ok {
		return Classification{Status: StatusBooked, GuestName: interval.GuestName}
	}

	if interval, ok := findBlocking(day, roomID, intervals, IntervalScheduled); ok {
		return Classification{Status: StatusScheduled, GuestName: interval.GuestName}
	}

	return Classification{Status: StatusAvailable}
}

// ValidateSelection applies Classify and converts non-available outcomes into
// the rejection reason callers surface before starting a booking flow. The
// check is advisory: it does not reserve the date, so a concurrent caller may
// still observe the same availability.
func ValidateSelection(date time.Time, roomID string, intervals []BookingInterval, today time.Time) RejectionReason {
	switch Classify(date, roomID, intervals, today).Status {
	case StatusPast:
		return RejectionDateInPast
	case StatusBooked:
		return RejectionAlreadyBooked
	case StatusScheduled:
		return RejectionAlreadyScheduled
	default:
		return RejectionNone
	}
}

// FilterRooms returns the rooms whose number or category contains the search
// term, compared case-insensitively. Order is preserved and an empty term
// matches every room.
func FilterRooms(rooms []Room, term string) []Room {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		out := make([]Room, len(rooms))
		copy(out, rooms)
		return out
	}

	out := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if strings.Contains(strings.ToLower(room.Number), needle) ||
			strings.Contains(strings.ToLower(room.Category), needle) {
			out = append(out, room)
		}
	}
	return out
}

// findBlocking scans for the first interval of the given status containing
// the day under the half-open range [check-in, check-out + 1 day).
func findBlocking(day time.Time, roomID string, intervals []BookingInterval, status IntervalStatus) (BookingInterval, bool) {
	for _, interval := range intervals {
		if interval.RoomID != roomID || interval.Status != status {
			continue
		}
		if contains(interval, day) {
			return interval, true
		}
	}
	return BookingInterval{}, false
}

func contains(interval BookingInterval, day time.Time) bool {
	start := DateOnly(interval.CheckIn)
	end := DateOnly(interval.CheckOut).AddDate(0, 0, 1)
	return !day.Before(start) && day.Before(end)
}
