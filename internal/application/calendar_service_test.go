package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/pousada-manager/internal/availability"
)

func TestCalendarService_MonthCalendar(t *testing.T) {
	now := utcDate(2024, time.June, 15)
	rooms := &roomRepoStub{rooms: []Room{
		{ID: "room-1", Number: "101", Category: "standard"},
		{ID: "room-2", Number: "201", Category: "suite"},
	}}
	bookings := &bookingRepoStub{bookings: []Booking{
		{ID: "booking-1", RoomID: "room-1", GuestName: "Ana Souza", CheckIn: utcDate(2024, time.June, 16), CheckOut: utcDate(2024, time.June, 18), Status: BookingConfirmed},
		{ID: "booking-2", RoomID: "room-1", GuestName: "Bruno Lima", CheckIn: utcDate(2024, time.June, 20), CheckOut: utcDate(2024, time.June, 21), Status: BookingScheduled},
		{ID: "booking-3", RoomID: "room-1", GuestName: "Carla Dias", CheckIn: utcDate(2024, time.June, 10), CheckOut: utcDate(2024, time.June, 12), Status: BookingConfirmed},
	}}
	svc := NewCalendarService(rooms, bookings, &requestRepoStub{}, func() time.Time { return now })

	t.Run("classifies every day of the month", func(t *testing.T) {
		calendars, err := svc.MonthCalendar(context.Background(), MonthCalendarParams{
			Principal: Principal{UserID: "staff-1"},
			Month:     "2024-06",
		})
		if err != nil {
			t.Fatalf("MonthCalendar failed: %v", err)
		}

		if len(calendars) != 2 {
			t.Fatalf("expected 2 room calendars, got %d", len(calendars))
		}

		days := calendars[0].Days
		if len(days) != 30 {
			t.Fatalf("expected 30 days in June, got %d", len(days))
		}

		if days[0].Status != availability.StatusPast {
			t.Fatalf("expected June 1 past, got %q", days[0].Status)
		}
		// Stays entirely before today render as past, not booked
		if days[9].Status != availability.StatusPast {
			t.Fatalf("expected June 10 past, got %q", days[9].Status)
		}
		if days[14].Status != availability.StatusAvailable {
			t.Fatalf("expected June 15 available, got %q", days[14].Status)
		}
		if days[15].Status != availability.StatusBooked || days[15].GuestName != "Ana Souza" {
			t.Fatalf("expected June 16 booked by Ana Souza, got %+v", days[15])
		}
		// A stay blocks through its check-out day
		if days[17].Status != availability.StatusBooked {
			t.Fatalf("expected June 18 booked, got %q", days[17].Status)
		}
		if days[18].Status != availability.StatusAvailable {
			t.Fatalf("expected June 19 available, got %q", days[18].Status)
		}
		if days[19].Status != availability.StatusScheduled || days[19].GuestName != "Bruno Lima" {
			t.Fatalf("expected June 20 scheduled for Bruno Lima, got %+v", days[19])
		}
	})

	t.Run("filters rooms by search term", func(t *testing.T) {
		calendars, err := svc.MonthCalendar(context.Background(), MonthCalendarParams{
			Principal:  Principal{UserID: "staff-1"},
			Month:      "2024-06",
			SearchTerm: "suite",
		})
		if err != nil {
			t.Fatalf("MonthCalendar failed: %v", err)
		}

		if len(calendars) != 1 || calendars[0].Room.ID != "room-2" {
			t.Fatalf("expected only the suite, got %v", calendars)
		}
	})

	t.Run("rejects malformed months", func(t *testing.T) {
		_, err := svc.MonthCalendar(context.Background(), MonthCalendarParams{
			Principal: Principal{UserID: "staff-1"},
			Month:     "junho",
		})
		if !errors.Is(err, availability.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestCalendarService_Dashboard(t *testing.T) {
	now := utcDate(2024, time.June, 15)
	rooms := &roomRepoStub{rooms: []Room{
		{ID: "room-1", Number: "101", Category: "standard"},
		{ID: "room-2", Number: "102", Category: "standard"},
		{ID: "room-3", Number: "201", Category: "suite"},
	}}
	bookings := &bookingRepoStub{bookings: []Booking{
		{ID: "booking-1", RoomID: "room-1", GuestName: "Ana Souza", CheckIn: utcDate(2024, time.June, 14), CheckOut: utcDate(2024, time.June, 16), Status: BookingConfirmed},
		{ID: "booking-2", RoomID: "room-2", GuestName: "Bruno Lima", CheckIn: utcDate(2024, time.June, 15), CheckOut: utcDate(2024, time.June, 17), Status: BookingScheduled},
	}}
	requests := &requestRepoStub{requests: []BookingRequest{
		{ID: "request-1", Status: RequestPending},
		{ID: "request-2", Status: RequestPending},
		{ID: "request-3", Status: RequestRejected},
	}}
	svc := NewCalendarService(rooms, bookings, requests, func() time.Time { return now })

	summary, err := svc.Dashboard(context.Background(), Principal{UserID: "staff-1"})
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if summary.TotalRooms != 3 {
		t.Fatalf("expected 3 rooms, got %d", summary.TotalRooms)
	}
	if summary.OccupiedToday != 1 {
		t.Fatalf("expected 1 occupied room, got %d", summary.OccupiedToday)
	}
	if summary.ScheduledToday != 1 {
		t.Fatalf("expected 1 scheduled room, got %d", summary.ScheduledToday)
	}
	if summary.AvailableToday != 1 {
		t.Fatalf("expected 1 available room, got %d", summary.AvailableToday)
	}
	if summary.PendingRequests != 2 {
		t.Fatalf("expected 2 pending requests, got %d", summary.PendingRequests)
	}
}
