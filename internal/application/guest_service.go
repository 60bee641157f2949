package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// GuestService derives the guest directory from booking history. Guests are
// identified by email; no separate guest table exists.
type GuestService struct {
	bookings BookingRepository
	logger   *slog.Logger
}

// NewGuestService constructs a guest service with the provided dependencies.
func NewGuestService(bookings BookingRepository) *GuestService {
	return NewGuestServiceWithLogger(bookings, nil)
}

// NewGuestServiceWithLogger constructs a guest service with a specified logger.
func NewGuestServiceWithLogger(bookings BookingRepository, logger *slog.Logger) *GuestService {
	return &GuestService{bookings: bookings, logger: defaultLogger(logger)}
}

func (s *GuestService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GuestService", operation, attrs...)
}

// ListGuests returns one entry per distinct guest email, optionally narrowed
// by a case-insensitive search over name and email, ordered by name.
func (s *GuestService) ListGuests(ctx context.Context, principal Principal, searchTerm string) (guests []Guest, err error) {
	if s == nil {
		err = fmt.Errorf("GuestService is nil")
		return
	}
	if s.bookings == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListGuests",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list guests", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(guests)).InfoContext(ctx, "guests listed")
	}()

	var bookings []Booking
	bookings, err = s.bookings.ListBookings(ctx, "", nil)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	byEmail := make(map[string]*Guest)
	for _, booking := range bookings {
		if booking.Status == BookingCancelled {
			continue
		}
		email := strings.ToLower(booking.GuestEmail)
		guest, ok := byEmail[email]
		if !ok {
			guest = &Guest{Name: booking.GuestName, Email: email, Phone: booking.GuestPhone}
			byEmail[email] = guest
		}
		guest.StayCount++
		guest.TotalSpent += booking.TotalAmount
		checkIn := booking.CheckIn
		if guest.LastStay == nil || checkIn.After(*guest.LastStay) {
			stay := checkIn
			guest.LastStay = &stay
			// Keep the most recent contact details
			guest.Name = booking.GuestName
			if booking.GuestPhone != "" {
				guest.Phone = booking.GuestPhone
			}
		}
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	guests = make([]Guest, 0, len(byEmail))
	for _, guest := range byEmail {
		if term != "" &&
			!strings.Contains(strings.ToLower(guest.Name), term) &&
			!strings.Contains(guest.Email, term) &&
			!strings.Contains(guest.Phone, term) {
			continue
		}
		guests = append(guests, *guest)
	}

	sort.Slice(guests, func(i, j int) bool {
		if strings.EqualFold(guests[i].Name, guests[j].Name) {
			return guests[i].Email < guests[j].Email
		}
		return strings.ToLower(guests[i].Name) < strings.ToLower(guests[j].Name)
	})

	return
}

// GuestHistory returns the guest's profile and their stays, newest first.
func (s *GuestService) GuestHistory(ctx context.Context, principal Principal, email string) (history GuestHistory, err error) {
	if s == nil {
		err = fmt.Errorf("GuestService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	logger := s.loggerWith(ctx, "GuestHistory",
		"principal_id", principal.UserID,
		"guest_email", normalized,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load guest history", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("stay_count", len(history.Bookings)).InfoContext(ctx, "guest history loaded")
	}()

	if normalized == "" {
		err = ErrNotFound
		return
	}

	var bookings []Booking
	bookings, err = s.bookings.ListBookingsByGuestEmail(ctx, normalized)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}
	if len(bookings) == 0 {
		err = ErrNotFound
		return
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CheckIn.Equal(bookings[j].CheckIn) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CheckIn.After(bookings[j].CheckIn)
	})

	guest := Guest{Name: bookings[0].GuestName, Email: normalized, Phone: bookings[0].GuestPhone}
	for _, booking := range bookings {
		if booking.Status == BookingCancelled {
			continue
		}
		guest.StayCount++
		guest.TotalSpent += booking.TotalAmount
		if guest.LastStay == nil || booking.CheckIn.After(*guest.LastStay) {
			stay := booking.CheckIn
			guest.LastStay = &stay
		}
	}

	history = GuestHistory{Guest: guest, Bookings: bookings}
	return
}
