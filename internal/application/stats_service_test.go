package application

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/example/pousada-manager/internal/cache"
)

func TestStatsService_Summary(t *testing.T) {
	now := utcDate(2024, time.June, 15)
	rooms := &roomRepoStub{rooms: []Room{
		{ID: "room-1", Number: "101", Category: "standard"},
		{ID: "room-2", Number: "201", Category: "suite"},
	}}
	bookings := &bookingRepoStub{bookings: []Booking{
		{ID: "booking-1", RoomID: "room-1", CheckIn: utcDate(2024, time.June, 14), CheckOut: utcDate(2024, time.June, 16), Status: BookingConfirmed, TotalAmount: 300},
		{ID: "booking-2", RoomID: "room-2", CheckIn: utcDate(2024, time.April, 10), CheckOut: utcDate(2024, time.April, 12), Status: BookingScheduled, TotalAmount: 200},
		{ID: "booking-3", RoomID: "room-2", CheckIn: utcDate(2024, time.May, 5), CheckOut: utcDate(2024, time.May, 7), Status: BookingCancelled, TotalAmount: 500},
	}}
	requests := &requestRepoStub{requests: []BookingRequest{
		{ID: "request-1", Status: RequestPending},
	}}

	t.Run("aggregates rooms, revenue and occupancy", func(t *testing.T) {
		svc := NewStatsService(rooms, bookings, requests, nil, 0, func() time.Time { return now })

		summary, err := svc.Summary(context.Background(), Principal{UserID: "staff-1"})
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}

		if summary.TotalRooms != 2 {
			t.Fatalf("expected 2 rooms, got %d", summary.TotalRooms)
		}
		if summary.TotalBookings != 2 {
			t.Fatalf("expected cancelled stays excluded, got %d bookings", summary.TotalBookings)
		}
		if summary.TotalRevenue != 500 {
			t.Fatalf("expected revenue 500, got %v", summary.TotalRevenue)
		}
		if math.Abs(summary.OccupancyRate-50) > 1e-9 {
			t.Fatalf("expected 50%% occupancy, got %v", summary.OccupancyRate)
		}
		if summary.PendingRequests != 1 {
			t.Fatalf("expected 1 pending request, got %d", summary.PendingRequests)
		}
	})

	t.Run("buckets the six month series oldest first", func(t *testing.T) {
		svc := NewStatsService(rooms, bookings, requests, nil, 0, func() time.Time { return now })

		summary, err := svc.Summary(context.Background(), Principal{UserID: "staff-1"})
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}

		if len(summary.Monthly) != 6 {
			t.Fatalf("expected 6 monthly points, got %d", len(summary.Monthly))
		}

		labels := make([]string, 0, 6)
		for _, point := range summary.Monthly {
			labels = append(labels, point.Label)
		}
		want := []string{"jan", "fev", "mar", "abr", "mai", "jun"}
		for i, label := range want {
			if labels[i] != label {
				t.Fatalf("expected labels %v, got %v", want, labels)
			}
		}

		april := summary.Monthly[3]
		if april.Bookings != 1 || april.Revenue != 200 {
			t.Fatalf("expected one April booking worth 200, got %+v", april)
		}
		may := summary.Monthly[4]
		if may.Bookings != 0 || may.Revenue != 0 {
			t.Fatalf("expected cancelled May booking excluded, got %+v", may)
		}
		june := summary.Monthly[5]
		if june.Bookings != 1 || june.Revenue != 300 {
			t.Fatalf("expected one June booking worth 300, got %+v", june)
		}
	})

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		statsCache := cache.NewMemoryCache(time.Minute, 16, func() time.Time { return now })
		mutable := &bookingRepoStub{bookings: bookings.bookings}
		svc := NewStatsService(rooms, mutable, requests, statsCache, time.Minute, func() time.Time { return now })

		first, err := svc.Summary(context.Background(), Principal{UserID: "staff-1"})
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}

		mutable.bookings = append(mutable.bookings, Booking{
			ID: "booking-4", RoomID: "room-1", CheckIn: utcDate(2024, time.June, 20), CheckOut: utcDate(2024, time.June, 22), Status: BookingScheduled, TotalAmount: 400,
		})

		second, err := svc.Summary(context.Background(), Principal{UserID: "staff-1"})
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if second.TotalBookings != first.TotalBookings {
			t.Fatalf("expected cached summary, got %d bookings after %d", second.TotalBookings, first.TotalBookings)
		}

		svc.Invalidate(context.Background())

		third, err := svc.Summary(context.Background(), Principal{UserID: "staff-1"})
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if third.TotalBookings != first.TotalBookings+1 {
			t.Fatalf("expected recomputed summary after invalidation, got %d bookings", third.TotalBookings)
		}
	})
}
