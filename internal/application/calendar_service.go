package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/pousada-manager/internal/availability"
)

// CalendarDay is one classified cell of a room's month view.
type CalendarDay struct {
	Date      time.Time
	Status    availability.Status
	GuestName string
}

// RoomCalendar couples a room with its classified days.
type RoomCalendar struct {
	Room Room
	Days []CalendarDay
}

// MonthCalendarParams wraps the data required to render the month view.
type MonthCalendarParams struct {
	Principal  Principal
	Month      string
	SearchTerm string
}

// DashboardSummary aggregates the counters shown on the staff landing page.
type DashboardSummary struct {
	TotalRooms      int
	OccupiedToday   int
	ScheduledToday  int
	AvailableToday  int
	PendingRequests int
}

// CalendarService renders per-day room availability for staff screens.
type CalendarService struct {
	rooms    RoomRepository
	bookings BookingRepository
	requests BookingRequestRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewCalendarService constructs a calendar service with the provided dependencies.
func NewCalendarService(rooms RoomRepository, bookings BookingRepository, requests BookingRequestRepository, now func() time.Time) *CalendarService {
	return NewCalendarServiceWithLogger(rooms, bookings, requests, now, nil)
}

// NewCalendarServiceWithLogger constructs a calendar service with a specified logger.
func NewCalendarServiceWithLogger(rooms RoomRepository, bookings BookingRepository, requests BookingRequestRepository, now func() time.Time, logger *slog.Logger) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{rooms: rooms, bookings: bookings, requests: requests, now: now, logger: defaultLogger(logger)}
}

func (s *CalendarService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CalendarService", operation, attrs...)
}

// MonthCalendar classifies every day of the requested month for every room,
// optionally narrowed by a search term over room number and category. Month
// is given as YYYY-MM; empty means the current month.
func (s *CalendarService) MonthCalendar(ctx context.Context, params MonthCalendarParams) (calendars []RoomCalendar, err error) {
	if s == nil {
		err = fmt.Errorf("CalendarService is nil")
		return
	}
	if s.rooms == nil || s.bookings == nil {
		err = fmt.Errorf("calendar repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "MonthCalendar",
		"principal_id", params.Principal.UserID,
		"month", params.Month,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build month calendar", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_count", len(calendars)).InfoContext(ctx, "month calendar built")
	}()

	today := availability.DateOnly(s.now())

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	if params.Month != "" {
		monthStart, err = time.ParseInLocation("2006-01", params.Month, time.UTC)
		if err != nil {
			err = fmt.Errorf("%w: %q is not a valid month", availability.ErrInvalidDate, params.Month)
			return
		}
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	var rooms []Room
	rooms, err = s.rooms.ListRooms(ctx)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	if term := params.SearchTerm; term != "" {
		candidates := make([]availability.Room, len(rooms))
		byID := make(map[string]Room, len(rooms))
		for i, room := range rooms {
			candidates[i] = availability.Room{ID: room.ID, Number: room.Number, Category: room.Category}
			byID[room.ID] = room
		}
		matched := availability.FilterRooms(candidates, term)
		filtered := make([]Room, 0, len(matched))
		for _, candidate := range matched {
			filtered = append(filtered, byID[candidate.ID])
		}
		rooms = filtered
	}

	var intervals []availability.BookingInterval
	intervals, err = s.allBlockingIntervals(ctx)
	if err != nil {
		return
	}

	calendars = make([]RoomCalendar, 0, len(rooms))
	for _, room := range rooms {
		days := make([]CalendarDay, 0, 31)
		for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
			classification := availability.Classify(day, room.ID, intervals, today)
			days = append(days, CalendarDay{
				Date:      day,
				Status:    classification.Status,
				GuestName: classification.GuestName,
			})
		}
		calendars = append(calendars, RoomCalendar{Room: room, Days: days})
	}

	return
}

// Dashboard computes the counters for the staff landing page.
func (s *CalendarService) Dashboard(ctx context.Context, principal Principal) (summary DashboardSummary, err error) {
	if s == nil {
		err = fmt.Errorf("CalendarService is nil")
		return
	}
	if s.rooms == nil || s.bookings == nil {
		err = fmt.Errorf("calendar repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "Dashboard",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build dashboard", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "dashboard built")
	}()

	var rooms []Room
	rooms, err = s.rooms.ListRooms(ctx)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	var intervals []availability.BookingInterval
	intervals, err = s.allBlockingIntervals(ctx)
	if err != nil {
		return
	}

	today := availability.DateOnly(s.now())
	summary.TotalRooms = len(rooms)
	for _, room := range rooms {
		switch availability.Classify(today, room.ID, intervals, today).Status {
		case availability.StatusBooked:
			summary.OccupiedToday++
		case availability.StatusScheduled:
			summary.ScheduledToday++
		case availability.StatusAvailable:
			summary.AvailableToday++
		}
	}

	if s.requests != nil {
		var pending []BookingRequest
		pending, err = s.requests.ListBookingRequestsByStatus(ctx, RequestPending)
		if err != nil {
			err = mapBookingRepoError(err)
			return
		}
		summary.PendingRequests = len(pending)
	}

	return
}

func (s *CalendarService) allBlockingIntervals(ctx context.Context) ([]availability.BookingInterval, error) {
	bookings, err := s.bookings.ListBookings(ctx, "", []BookingStatus{BookingConfirmed, BookingScheduled})
	if err != nil {
		return nil, mapBookingRepoError(err)
	}

	intervals := make([]availability.BookingInterval, 0, len(bookings))
	for _, booking := range bookings {
		status := availability.IntervalScheduled
		if booking.Status == BookingConfirmed {
			status = availability.IntervalConfirmed
		}
		intervals = append(intervals, availability.BookingInterval{
			RoomID:    booking.RoomID,
			CheckIn:   booking.CheckIn,
			CheckOut:  booking.CheckOut,
			Status:    status,
			GuestName: booking.GuestName,
		})
	}
	return intervals, nil
}
