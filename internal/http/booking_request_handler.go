package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/pousada-manager/internal/application"
	"github.com/example/pousada-manager/internal/availability"
)

type bookingRequestService interface {
	CreateBookingRequest(ctx context.Context, params application.CreateBookingRequestParams) (application.BookingRequest, error)
	ListBookingRequests(ctx context.Context, principal application.Principal, status application.RequestStatus) ([]application.BookingRequest, error)
	ApproveBookingRequest(ctx context.Context, principal application.Principal, requestID string) (application.Booking, error)
	RejectBookingRequest(ctx context.Context, principal application.Principal, requestID string) error
	CompleteBookingRequest(ctx context.Context, principal application.Principal, requestID string) error
	DeleteBookingRequest(ctx context.Context, principal application.Principal, requestID string) error
	CheckAvailability(ctx context.Context, roomID string, checkInValue, checkOutValue string) (availability.RejectionReason, error)
}

// statsInvalidator drops cached aggregates after a write that changes them.
type statsInvalidator interface {
	Invalidate(ctx context.Context)
}

type BookingRequestHandler struct {
	service   bookingRequestService
	stats     statsInvalidator
	responder responder
	logger    *slog.Logger
}

func NewBookingRequestHandler(service bookingRequestService, stats statsInvalidator, logger *slog.Logger) *BookingRequestHandler {
	base := defaultLogger(logger)
	return &BookingRequestHandler{service: service, stats: stats, responder: newResponder(base), logger: base}
}

func (h *BookingRequestHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingRequestHandler", operation, attrs...)
}

func (h *BookingRequestHandler) invalidateStats(ctx context.Context) {
	if h == nil || h.stats == nil {
		return
	}
	h.stats.Invalidate(ctx)
}

// CreateBookingRequest accepts stay proposals from unauthenticated guests.
func (h *BookingRequestHandler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookingRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateBookingRequest").ErrorContext(r.Context(), "failed to decode booking request payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateBookingRequest", "room_id", req.RoomID)

	request, err := h.service.CreateBookingRequest(r.Context(), application.CreateBookingRequestParams{
		Input: application.BookingRequestInput{
			RoomID:     req.RoomID,
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
			GuestPhone: req.GuestPhone,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			Notes:      req.Notes,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create booking request", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.With("request_id", request.ID).InfoContext(r.Context(), "booking request created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookingRequestDTO(request))
}

func (h *BookingRequestHandler) ListBookingRequests(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	status := application.RequestStatus(r.URL.Query().Get("status"))

	requests, err := h.service.ListBookingRequests(r.Context(), principal, status)
	if err != nil {
		h.log(r.Context(), "ListBookingRequests", "status", string(status)).ErrorContext(r.Context(), "failed to list booking requests", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]bookingRequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, toBookingRequestDTO(request))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingRequestListResponse{Requests: dtos})
}

func (h *BookingRequestHandler) ApproveBookingRequest(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	requestID, ok := BookingRequestIDFromContext(r.Context())
	if !ok || requestID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRequestID)
		return
	}

	logger := h.log(r.Context(), "ApproveBookingRequest", "request_id", requestID, "principal_id", principal.UserID)

	booking, err := h.service.ApproveBookingRequest(r.Context(), principal, requestID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to approve booking request", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "booking request approved")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookingDTO(booking))
}

func (h *BookingRequestHandler) RejectBookingRequest(w http.ResponseWriter, r *http.Request) {
	h.transitionRequest(w, r, "RejectBookingRequest", func(ctx context.Context, principal application.Principal, requestID string) error {
		return h.service.RejectBookingRequest(ctx, principal, requestID)
	})
}

func (h *BookingRequestHandler) CompleteBookingRequest(w http.ResponseWriter, r *http.Request) {
	h.transitionRequest(w, r, "CompleteBookingRequest", func(ctx context.Context, principal application.Principal, requestID string) error {
		return h.service.CompleteBookingRequest(ctx, principal, requestID)
	})
}

func (h *BookingRequestHandler) transitionRequest(w http.ResponseWriter, r *http.Request, operation string, transition func(context.Context, application.Principal, string) error) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	requestID, ok := BookingRequestIDFromContext(r.Context())
	if !ok || requestID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRequestID)
		return
	}

	logger := h.log(r.Context(), operation, "request_id", requestID, "principal_id", principal.UserID)

	if err := transition(r.Context(), principal, requestID); err != nil {
		logger.ErrorContext(r.Context(), "failed to transition booking request", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.InfoContext(r.Context(), "booking request transitioned")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *BookingRequestHandler) DeleteBookingRequest(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	requestID, ok := BookingRequestIDFromContext(r.Context())
	if !ok || requestID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRequestID)
		return
	}

	logger := h.log(r.Context(), "DeleteBookingRequest", "request_id", requestID, "principal_id", principal.UserID)

	if err := h.service.DeleteBookingRequest(r.Context(), principal, requestID); err != nil {
		logger.ErrorContext(r.Context(), "failed to delete booking request", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.invalidateStats(r.Context())
	logger.InfoContext(r.Context(), "booking request deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// CheckAvailability answers whether a room can host a stay, without mutating anything.
func (h *BookingRequestHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	roomID := query.Get("room_id")
	checkIn := query.Get("check_in")
	checkOut := query.Get("check_out")

	logger := h.log(r.Context(), "CheckAvailability", "room_id", roomID, "check_in", checkIn, "check_out", checkOut)

	reason, err := h.service.CheckAvailability(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		Available: reason == availability.RejectionNone,
		Reason:    string(reason),
	})
}

type bookingRequestPayload struct {
	RoomID     string  `json:"room_id"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	GuestPhone string  `json:"guest_phone"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Notes      *string `json:"notes"`
}

type bookingRequestDTO struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	GuestPhone string  `json:"guest_phone,omitempty"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type bookingRequestListResponse struct {
	Requests []bookingRequestDTO `json:"booking_requests"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func toBookingRequestDTO(request application.BookingRequest) bookingRequestDTO {
	return bookingRequestDTO{
		ID:         request.ID,
		RoomID:     request.RoomID,
		GuestName:  request.GuestName,
		GuestEmail: request.GuestEmail,
		GuestPhone: request.GuestPhone,
		CheckIn:    request.CheckIn.UTC().Format("2006-01-02"),
		CheckOut:   request.CheckOut.UTC().Format("2006-01-02"),
		Status:     string(request.Status),
		Notes:      request.Notes,
		CreatedAt:  request.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  request.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
