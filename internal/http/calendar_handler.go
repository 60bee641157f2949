package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/pousada-manager/internal/application"
)

type calendarService interface {
	MonthCalendar(ctx context.Context, params application.MonthCalendarParams) ([]application.RoomCalendar, error)
	Dashboard(ctx context.Context, principal application.Principal) (application.DashboardSummary, error)
}

type CalendarHandler struct {
	service   calendarService
	responder responder
	logger    *slog.Logger
}

func NewCalendarHandler(service calendarService, logger *slog.Logger) *CalendarHandler {
	base := defaultLogger(logger)
	return &CalendarHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CalendarHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CalendarHandler", operation, attrs...)
}

// MonthCalendar renders per-room day classifications for the requested month.
func (h *CalendarHandler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	query := r.URL.Query()
	month := query.Get("month")

	calendars, err := h.service.MonthCalendar(r.Context(), application.MonthCalendarParams{
		Principal:  principal,
		Month:      month,
		SearchTerm: query.Get("q"),
	})
	if err != nil {
		h.log(r.Context(), "MonthCalendar", "month", month).ErrorContext(r.Context(), "failed to build month calendar", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]roomCalendarDTO, 0, len(calendars))
	for _, calendar := range calendars {
		days := make([]calendarDayDTO, 0, len(calendar.Days))
		for _, day := range calendar.Days {
			days = append(days, calendarDayDTO{
				Date:      day.Date.UTC().Format("2006-01-02"),
				Status:    string(day.Status),
				GuestName: day.GuestName,
			})
		}
		dtos = append(dtos, roomCalendarDTO{Room: toRoomDTO(calendar.Room), Days: days})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, calendarResponse{Calendars: dtos})
}

// Dashboard returns today's occupancy counters for the landing page.
func (h *CalendarHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	summary, err := h.service.Dashboard(r.Context(), principal)
	if err != nil {
		h.log(r.Context(), "Dashboard").ErrorContext(r.Context(), "failed to build dashboard summary", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dashboardResponse{
		TotalRooms:      summary.TotalRooms,
		OccupiedToday:   summary.OccupiedToday,
		ScheduledToday:  summary.ScheduledToday,
		AvailableToday:  summary.AvailableToday,
		PendingRequests: summary.PendingRequests,
	})
}

type calendarDayDTO struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	GuestName string `json:"guest_name,omitempty"`
}

type roomCalendarDTO struct {
	Room roomDTO          `json:"room"`
	Days []calendarDayDTO `json:"days"`
}

type calendarResponse struct {
	Calendars []roomCalendarDTO `json:"calendars"`
}

type dashboardResponse struct {
	TotalRooms      int `json:"total_rooms"`
	OccupiedToday   int `json:"occupied_today"`
	ScheduledToday  int `json:"scheduled_today"`
	AvailableToday  int `json:"available_today"`
	PendingRequests int `json:"pending_requests"`
}
