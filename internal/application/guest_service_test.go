package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuestService_ListGuests(t *testing.T) {
	bookings := &bookingRepoStub{bookings: []Booking{
		{ID: "booking-1", RoomID: "room-1", GuestName: "Ana Souza", GuestEmail: "ana@example.com", GuestPhone: "11 91111-0000", CheckIn: utcDate(2024, time.March, 10), Status: BookingConfirmed, TotalAmount: 300},
		{ID: "booking-2", RoomID: "room-2", GuestName: "Ana S. Souza", GuestEmail: "ana@example.com", GuestPhone: "11 92222-0000", CheckIn: utcDate(2024, time.May, 20), Status: BookingScheduled, TotalAmount: 450},
		{ID: "booking-3", RoomID: "room-1", GuestName: "Bruno Lima", GuestEmail: "bruno@example.com", CheckIn: utcDate(2024, time.April, 5), Status: BookingConfirmed, TotalAmount: 200},
		{ID: "booking-4", RoomID: "room-1", GuestName: "Carla Dias", GuestEmail: "carla@example.com", CheckIn: utcDate(2024, time.April, 8), Status: BookingCancelled, TotalAmount: 900},
	}}
	svc := NewGuestService(bookings)

	t.Run("aggregates stays per guest email", func(t *testing.T) {
		guests, err := svc.ListGuests(context.Background(), Principal{UserID: "staff-1"}, "")
		if err != nil {
			t.Fatalf("ListGuests failed: %v", err)
		}

		if len(guests) != 2 {
			t.Fatalf("expected cancelled-only guests omitted, got %d guests", len(guests))
		}

		ana := guests[0]
		if ana.Email != "ana@example.com" {
			t.Fatalf("expected guests ordered by name, got %v", guests)
		}
		if ana.StayCount != 2 || ana.TotalSpent != 750 {
			t.Fatalf("expected aggregated stays, got %+v", ana)
		}
		if ana.Name != "Ana S. Souza" || ana.Phone != "11 92222-0000" {
			t.Fatalf("expected most recent contact details, got %+v", ana)
		}
		if ana.LastStay == nil || !ana.LastStay.Equal(utcDate(2024, time.May, 20)) {
			t.Fatalf("expected last stay from most recent check-in, got %v", ana.LastStay)
		}
	})

	t.Run("filters by search term", func(t *testing.T) {
		guests, err := svc.ListGuests(context.Background(), Principal{UserID: "staff-1"}, "bruno")
		if err != nil {
			t.Fatalf("ListGuests failed: %v", err)
		}

		if len(guests) != 1 || guests[0].Email != "bruno@example.com" {
			t.Fatalf("expected only Bruno, got %v", guests)
		}
	})

	t.Run("filters by phone number", func(t *testing.T) {
		guests, err := svc.ListGuests(context.Background(), Principal{UserID: "staff-1"}, "92222")
		if err != nil {
			t.Fatalf("ListGuests failed: %v", err)
		}

		if len(guests) != 1 || guests[0].Email != "ana@example.com" {
			t.Fatalf("expected Ana matched by phone, got %v", guests)
		}
	})
}

func TestGuestService_GuestHistory(t *testing.T) {
	bookings := &bookingRepoStub{bookings: []Booking{
		{ID: "booking-1", RoomID: "room-1", GuestName: "Ana Souza", GuestEmail: "ana@example.com", CheckIn: utcDate(2024, time.March, 10), Status: BookingConfirmed, TotalAmount: 300},
		{ID: "booking-2", RoomID: "room-2", GuestName: "Ana Souza", GuestEmail: "ana@example.com", CheckIn: utcDate(2024, time.May, 20), Status: BookingCancelled, TotalAmount: 450},
	}}
	svc := NewGuestService(bookings)

	t.Run("fails for unknown guests", func(t *testing.T) {
		_, err := svc.GuestHistory(context.Background(), Principal{UserID: "staff-1"}, "nobody@example.com")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returns stays newest first", func(t *testing.T) {
		history, err := svc.GuestHistory(context.Background(), Principal{UserID: "staff-1"}, " Ana@Example.com ")
		if err != nil {
			t.Fatalf("GuestHistory failed: %v", err)
		}

		if len(history.Bookings) != 2 {
			t.Fatalf("expected both stays listed, got %d", len(history.Bookings))
		}
		if history.Bookings[0].ID != "booking-2" {
			t.Fatalf("expected newest stay first, got %v", history.Bookings)
		}
		if history.Guest.StayCount != 1 || history.Guest.TotalSpent != 300 {
			t.Fatalf("expected cancelled stays excluded from totals, got %+v", history.Guest)
		}
	})
}
