package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/pousada-manager/internal/availability"
	"github.com/example/pousada-manager/internal/persistence"
)

// BookingRequestRepository captures the persistence interactions for stay proposals.
type BookingRequestRepository interface {
	CreateBookingRequest(ctx context.Context, request BookingRequest) (BookingRequest, error)
	GetBookingRequest(ctx context.Context, id string) (BookingRequest, error)
	UpdateBookingRequestStatus(ctx context.Context, id string, status RequestStatus, updatedAt time.Time) error
	ListBookingRequests(ctx context.Context) ([]BookingRequest, error)
	ListBookingRequestsByStatus(ctx context.Context, status RequestStatus) ([]BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id string) error
}

// BookingRepository captures the persistence interactions for stays.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus, updatedAt time.Time) error
	ListBookings(ctx context.Context, roomID string, statuses []BookingStatus) ([]Booking, error)
	ListBookingsByGuestEmail(ctx context.Context, email string) ([]Booking, error)
}

// BookingService coordinates the stay lifecycle: requests submitted by guests,
// staff approval into scheduled bookings, and status transitions until checkout.
type BookingService struct {
	requests    BookingRequestRepository
	bookings    BookingRepository
	rooms       RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(requests BookingRequestRepository, bookings BookingRepository, rooms RoomRepository, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(requests, bookings, rooms, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(requests BookingRequestRepository, bookings BookingRepository, rooms RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		requests:    requests,
		bookings:    bookings,
		rooms:       rooms,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBookingRequest registers a stay proposal. No authentication is
// required: prospective guests submit requests from the public site.
func (s *BookingService) CreateBookingRequest(ctx context.Context, params CreateBookingRequestParams) (request BookingRequest, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.requests == nil {
		err = fmt.Errorf("booking request repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBookingRequest",
		"room_id", params.Input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking request", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("request_id", request.ID).InfoContext(ctx, "booking request created")
	}()

	var checkIn, checkOut time.Time
	checkIn, checkOut, vErr := validateStayInput(params.Input.GuestName, params.Input.GuestEmail, params.Input.CheckIn, params.Input.CheckOut)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if strings.TrimSpace(params.Input.RoomID) == "" {
		vErr.add("room_id", "room is required")
		err = vErr
		return
	}

	if s.rooms != nil {
		if _, err = s.rooms.GetRoom(ctx, params.Input.RoomID); err != nil {
			err = mapRoomRepoError(err)
			return
		}
	}

	if err = s.checkAvailability(ctx, params.Input.RoomID, checkIn, checkOut); err != nil {
		return
	}

	now := s.now()
	request = BookingRequest{
		ID:         s.idGenerator(),
		RoomID:     params.Input.RoomID,
		GuestName:  strings.TrimSpace(params.Input.GuestName),
		GuestEmail: strings.TrimSpace(strings.ToLower(params.Input.GuestEmail)),
		GuestPhone: strings.TrimSpace(params.Input.GuestPhone),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     RequestPending,
		Notes:      normalizeOptionalString(params.Input.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var persisted BookingRequest
	persisted, err = s.requests.CreateBookingRequest(ctx, request)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	request = persisted
	return
}

// ListBookingRequests returns stay proposals for staff, optionally narrowed to one status.
func (s *BookingService) ListBookingRequests(ctx context.Context, principal Principal, status RequestStatus) ([]BookingRequest, error) {
	if s == nil {
		return nil, fmt.Errorf("BookingService is nil")
	}
	if s.requests == nil {
		return nil, nil
	}

	if status != "" {
		return s.requests.ListBookingRequestsByStatus(ctx, status)
	}
	return s.requests.ListBookingRequests(ctx)
}

// ApproveBookingRequest converts a pending request into a confirmed booking.
// The stay total is the nightly rate times the number of nights. The booking
// is inserted before the request status changes, so a failed insert leaves
// the request pending and still actionable.
func (s *BookingService) ApproveBookingRequest(ctx context.Context, principal Principal, requestID string) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.requests == nil || s.bookings == nil {
		err = fmt.Errorf("booking repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "ApproveBookingRequest",
		"principal_id", principal.UserID,
		"request_id", requestID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to approve booking request", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking request approved")
	}()

	var request BookingRequest
	request, err = s.requests.GetBookingRequest(ctx, requestID)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	if request.Status != RequestPending {
		err = ErrInvalidTransition
		return
	}

	// The availability picture may have changed since the request was filed
	if err = s.checkAvailability(ctx, request.RoomID, request.CheckIn, request.CheckOut); err != nil {
		return
	}

	var rate float64
	if s.rooms != nil {
		var room Room
		room, err = s.rooms.GetRoom(ctx, request.RoomID)
		if err != nil {
			err = mapRoomRepoError(err)
			return
		}
		rate = room.DailyRate
	}

	now := s.now()
	requestID = request.ID
	booking = Booking{
		ID:          s.idGenerator(),
		RoomID:      request.RoomID,
		RequestID:   &requestID,
		GuestName:   request.GuestName,
		GuestEmail:  request.GuestEmail,
		GuestPhone:  request.GuestPhone,
		CheckIn:     request.CheckIn,
		CheckOut:    request.CheckOut,
		Status:      BookingConfirmed,
		TotalAmount: rate * float64(stayNights(request.CheckIn, request.CheckOut)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var persisted Booking
	persisted, err = s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}
	booking = persisted

	if err = s.requests.UpdateBookingRequestStatus(ctx, request.ID, RequestApproved, now); err != nil {
		err = mapBookingRepoError(err)
		return
	}
	return
}

// RejectBookingRequest marks a pending request as rejected.
func (s *BookingService) RejectBookingRequest(ctx context.Context, principal Principal, requestID string) error {
	return s.transitionRequest(ctx, principal, requestID, RequestRejected)
}

// CompleteBookingRequest marks an approved request as completed after the stay ends.
func (s *BookingService) CompleteBookingRequest(ctx context.Context, principal Principal, requestID string) error {
	return s.transitionRequest(ctx, principal, requestID, RequestCompleted)
}

func (s *BookingService) transitionRequest(ctx context.Context, principal Principal, requestID string, target RequestStatus) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.requests == nil {
		return fmt.Errorf("booking request repository not configured")
	}

	logger := s.loggerWith(ctx, "TransitionBookingRequest",
		"principal_id", principal.UserID,
		"request_id", requestID,
		"target_status", string(target),
	)

	request, err := s.requests.GetBookingRequest(ctx, requestID)
	if err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to load booking request", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !validRequestTransition(request.Status, target) {
		logger.ErrorContext(ctx, "invalid booking request transition", "error", ErrInvalidTransition, "error_kind", ErrorKind(ErrInvalidTransition))
		return ErrInvalidTransition
	}

	if err := s.requests.UpdateBookingRequestStatus(ctx, requestID, target, s.now()); err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to transition booking request", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "booking request transitioned")
	return nil
}

// DeleteBookingRequest removes a request when requested by an administrator.
func (s *BookingService) DeleteBookingRequest(ctx context.Context, principal Principal, requestID string) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.requests == nil {
		return fmt.Errorf("booking request repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBookingRequest",
		"principal_id", principal.UserID,
		"request_id", requestID,
	)

	if err := s.requests.DeleteBookingRequest(ctx, requestID); err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking request", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "booking request deleted")
	return nil
}

// CreateBooking registers a stay directly, bypassing the request flow. Staff
// use this for walk-ins and phone reservations.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBooking",
		"principal_id", params.Principal.UserID,
		"room_id", params.Input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	var checkIn, checkOut time.Time
	checkIn, checkOut, vErr := validateStayInput(params.Input.GuestName, params.Input.GuestEmail, params.Input.CheckIn, params.Input.CheckOut)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := params.Input.Status
	if status == "" {
		status = BookingScheduled
	}
	if status != BookingScheduled && status != BookingConfirmed {
		vErr.add("status", "status must be scheduled or confirmed")
		err = vErr
		return
	}

	var rate float64
	if s.rooms != nil {
		var room Room
		room, err = s.rooms.GetRoom(ctx, params.Input.RoomID)
		if err != nil {
			err = mapRoomRepoError(err)
			return
		}
		rate = room.DailyRate
	}

	if err = s.checkAvailability(ctx, params.Input.RoomID, checkIn, checkOut); err != nil {
		return
	}

	now := s.now()
	booking = Booking{
		ID:          s.idGenerator(),
		RoomID:      params.Input.RoomID,
		GuestName:   strings.TrimSpace(params.Input.GuestName),
		GuestEmail:  strings.TrimSpace(strings.ToLower(params.Input.GuestEmail)),
		GuestPhone:  strings.TrimSpace(params.Input.GuestPhone),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      status,
		TotalAmount: rate * float64(stayNights(checkIn, checkOut)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var persisted Booking
	persisted, err = s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	booking = persisted
	return
}

// ListBookings returns stays matching the filter, newest first.
func (s *BookingService) ListBookings(ctx context.Context, params ListBookingsParams) ([]Booking, error) {
	if s == nil {
		return nil, fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return nil, nil
	}

	bookings, err := s.bookings.ListBookings(ctx, params.RoomID, params.Statuses)
	if err != nil {
		return nil, mapBookingRepoError(err)
	}

	// History view: most recently created stays first
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}

// TransitionBooking moves a stay to a new status. Allowed transitions are
// scheduled to confirmed (check in), and scheduled or confirmed to cancelled.
func (s *BookingService) TransitionBooking(ctx context.Context, principal Principal, bookingID string, target BookingStatus) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return fmt.Errorf("booking repository not configured")
	}

	logger := s.loggerWith(ctx, "TransitionBooking",
		"principal_id", principal.UserID,
		"booking_id", bookingID,
		"target_status", string(target),
	)

	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to load booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !validBookingTransition(booking.Status, target) {
		logger.ErrorContext(ctx, "invalid booking transition", "error", ErrInvalidTransition, "error_kind", ErrorKind(ErrInvalidTransition))
		return ErrInvalidTransition
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, target, s.now()); err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to transition booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "booking transitioned")
	return nil
}

// CheckAvailability reports whether the given stay can be booked, returning a
// rejection reason without touching storage beyond reading current bookings.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID string, checkInValue, checkOutValue string) (availability.RejectionReason, error) {
	if s == nil {
		return availability.RejectionNone, fmt.Errorf("BookingService is nil")
	}

	checkIn, err := availability.ParseDate(checkInValue)
	if err != nil {
		return availability.RejectionNone, err
	}
	checkOut, err := availability.ParseDate(checkOutValue)
	if err != nil {
		return availability.RejectionNone, err
	}

	intervals, err := s.blockingIntervals(ctx, roomID)
	if err != nil {
		return availability.RejectionNone, err
	}

	today := availability.DateOnly(s.now())
	return validateStayRange(checkIn, checkOut, roomID, intervals, today), nil
}

// checkAvailability maps a rejection reason to a service error.
func (s *BookingService) checkAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) error {
	intervals, err := s.blockingIntervals(ctx, roomID)
	if err != nil {
		return err
	}

	today := availability.DateOnly(s.now())
	switch validateStayRange(checkIn, checkOut, roomID, intervals, today) {
	case availability.RejectionNone:
		return nil
	case availability.RejectionDateInPast:
		vErr := &ValidationError{}
		vErr.add("check_in", "stay cannot start in the past")
		return vErr
	default:
		return ErrRoomUnavailable
	}
}

// blockingIntervals loads the room's confirmed and scheduled stays as
// availability intervals.
func (s *BookingService) blockingIntervals(ctx context.Context, roomID string) ([]availability.BookingInterval, error) {
	if s.bookings == nil {
		return nil, nil
	}

	bookings, err := s.bookings.ListBookings(ctx, roomID, []BookingStatus{BookingConfirmed, BookingScheduled})
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

// validateStayRange checks every night of the stay. The check-out day itself
// is excluded so a departure and an arrival may share a date, but an existing
// stay still blocks through its own check-out day.
func validateStayRange(checkIn, checkOut time.Time, roomID string, intervals []availability.BookingInterval, today time.Time) availability.RejectionReason {
	start := availability.DateOnly(checkIn)
	end := availability.DateOnly(checkOut)
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if reason := availability.ValidateSelection(day, roomID, intervals, today); reason != availability.RejectionNone {
			return reason
		}
	}
	return availability.RejectionNone
}

func validateStayInput(guestName, guestEmail, checkInValue, checkOutValue string) (time.Time, time.Time, *ValidationError) {
	vErr := &ValidationError{}

	if strings.TrimSpace(guestName) == "" {
		vErr.add("guest_name", "guest name is required")
	}
	if strings.TrimSpace(guestEmail) == "" {
		vErr.add("guest_email", "guest email is required")
	} else if !strings.Contains(guestEmail, "@") {
		vErr.add("guest_email", "guest email is invalid")
	}

	var checkIn, checkOut time.Time
	var err error
	if checkIn, err = availability.ParseDate(checkInValue); err != nil {
		vErr.add("check_in", "check-in date must be YYYY-MM-DD")
	}
	if checkOut, err = availability.ParseDate(checkOutValue); err != nil {
		vErr.add("check_out", "check-out date must be YYYY-MM-DD")
	}
	if !checkIn.IsZero() && !checkOut.IsZero() && !checkOut.After(checkIn) {
		vErr.add("check_out", "check-out must be after check-in")
	}

	return checkIn, checkOut, vErr
}

func validRequestTransition(current, target RequestStatus) bool {
	switch current {
	case RequestPending:
		return target == RequestApproved || target == RequestRejected
	case RequestApproved:
		return target == RequestCompleted
	default:
		return false
	}
}

func validBookingTransition(current, target BookingStatus) bool {
	switch current {
	case BookingScheduled:
		return target == BookingConfirmed || target == BookingCancelled
	case BookingConfirmed:
		return target == BookingCancelled
	default:
		return false
	}
}

// stayNights counts the whole nights between check-in and check-out.
func stayNights(checkIn, checkOut time.Time) int {
	nights := int(availability.DateOnly(checkOut).Sub(availability.DateOnly(checkIn)).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func mapBookingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("room_id", "room does not exist")
		return vErr
	}
	return err
}
