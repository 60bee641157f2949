package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/pousada-manager/internal/application"
)

type bookingService interface {
	CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error)
	ListBookings(ctx context.Context, params application.ListBookingsParams) ([]application.Booking, error)
	TransitionBooking(ctx context.Context, principal application.Principal, bookingID string, target application.BookingStatus) error
}

type BookingHandler struct {
	service   bookingService
	stats     statsInvalidator
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, stats statsInvalidator, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, stats: stats, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) invalidateStats(ctx context.Context) {
	if h == nil || h.stats == nil {
		return
	}
	h.stats.Invalidate(ctx)
}

// CreateBooking registers a walk-in or phone stay directly, skipping the request flow.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	var req bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateBooking").ErrorContext(r.Context(), "failed to decode booking payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateBooking", "room_id", req.RoomID, "principal_id", principal.UserID)

	booking, err := h.service.CreateBooking(r.Context(), application.CreateBookingParams{
		Principal: principal,
		Input: application.BookingInput{
			RoomID:     req.RoomID,
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
			GuestPhone: req.GuestPhone,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			Status:     application.BookingStatus(req.Status),
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create booking", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookingDTO(booking))
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	query := r.URL.Query()

	var statuses []application.BookingStatus
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, application.BookingStatus(part))
			}
		}
	}

	bookings, err := h.service.ListBookings(r.Context(), application.ListBookingsParams{
		Principal: principal,
		RoomID:    query.Get("room_id"),
		Statuses:  statuses,
	})
	if err != nil {
		h.log(r.Context(), "ListBookings").ErrorContext(r.Context(), "failed to list bookings", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]bookingDTO, 0, len(bookings))
	for _, booking := range bookings {
		dtos = append(dtos, toBookingDTO(booking))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingListResponse{Bookings: dtos})
}

func (h *BookingHandler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || bookingID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	var req bookingTransitionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "TransitionBooking", "booking_id", bookingID).ErrorContext(r.Context(), "failed to decode transition payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "TransitionBooking", "booking_id", bookingID, "target_status", req.Status, "principal_id", principal.UserID)

	if err := h.service.TransitionBooking(r.Context(), principal, bookingID, application.BookingStatus(req.Status)); err != nil {
		logger.ErrorContext(r.Context(), "failed to transition booking", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.InfoContext(r.Context(), "booking transitioned")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type bookingPayload struct {
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
}

type bookingTransitionPayload struct {
	Status string `json:"status"`
}

type bookingDTO struct {
	ID          string  `json:"id"`
	RoomID      string  `json:"room_id"`
	RequestID   *string `json:"request_id,omitempty"`
	GuestName   string  `json:"guest_name"`
	GuestEmail  string  `json:"guest_email"`
	GuestPhone  string  `json:"guest_phone,omitempty"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type bookingListResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

func toBookingDTO(booking application.Booking) bookingDTO {
	return bookingDTO{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		RequestID:   booking.RequestID,
		GuestName:   booking.GuestName,
		GuestEmail:  booking.GuestEmail,
		GuestPhone:  booking.GuestPhone,
		CheckIn:     booking.CheckIn.UTC().Format("2006-01-02"),
		CheckOut:    booking.CheckOut.UTC().Format("2006-01-02"),
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   booking.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
