package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/pousada-manager/internal/application"
)

type guestService interface {
	ListGuests(ctx context.Context, principal application.Principal, searchTerm string) ([]application.Guest, error)
	GuestHistory(ctx context.Context, principal application.Principal, email string) (application.GuestHistory, error)
}

type GuestHandler struct {
	service   guestService
	responder responder
	logger    *slog.Logger
}

func NewGuestHandler(service guestService, logger *slog.Logger) *GuestHandler {
	base := defaultLogger(logger)
	return &GuestHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *GuestHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "GuestHandler", operation, attrs...)
}

// ListGuests aggregates bookings into per-guest summaries.
func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	guests, err := h.service.ListGuests(r.Context(), principal, r.URL.Query().Get("q"))
	if err != nil {
		h.log(r.Context(), "ListGuests").ErrorContext(r.Context(), "failed to list guests", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]guestDTO, 0, len(guests))
	for _, guest := range guests {
		dtos = append(dtos, toGuestDTO(guest))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, guestListResponse{Guests: dtos})
}

func (h *GuestHandler) GuestHistory(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	email, ok := GuestEmailFromContext(r.Context())
	if !ok || email == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidGuestEmail)
		return
	}

	history, err := h.service.GuestHistory(r.Context(), principal, email)
	if err != nil {
		h.log(r.Context(), "GuestHistory", "guest_email", email).ErrorContext(r.Context(), "failed to fetch guest history", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	bookings := make([]bookingDTO, 0, len(history.Bookings))
	for _, booking := range history.Bookings {
		bookings = append(bookings, toBookingDTO(booking))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, guestHistoryResponse{
		Guest:    toGuestDTO(history.Guest),
		Bookings: bookings,
	})
}

type guestDTO struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	StayCount  int     `json:"stay_count"`
	TotalSpent float64 `json:"total_spent"`
	LastStay   *string `json:"last_stay,omitempty"`
}

type guestListResponse struct {
	Guests []guestDTO `json:"guests"`
}

type guestHistoryResponse struct {
	Guest    guestDTO     `json:"guest"`
	Bookings []bookingDTO `json:"bookings"`
}

func toGuestDTO(guest application.Guest) guestDTO {
	dto := guestDTO{
		Name:       guest.Name,
		Email:      guest.Email,
		Phone:      guest.Phone,
		StayCount:  guest.StayCount,
		TotalSpent: guest.TotalSpent,
	}
	if guest.LastStay != nil {
		value := guest.LastStay.UTC().Format("2006-01-02")
		dto.LastStay = &value
	}
	return dto
}
