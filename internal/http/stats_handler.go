package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/pousada-manager/internal/application"
)

type statsService interface {
	Summary(ctx context.Context, principal application.Principal) (application.StatsSummary, error)
}

type StatsHandler struct {
	service   statsService
	responder responder
	logger    *slog.Logger
}

func NewStatsHandler(service statsService, logger *slog.Logger) *StatsHandler {
	base := defaultLogger(logger)
	return &StatsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *StatsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "StatsHandler", operation, attrs...)
}

// Summary returns occupancy and revenue aggregates. StatsSummary already
// carries JSON tags, so it is written as-is.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	summary, err := h.service.Summary(r.Context(), principal)
	if err != nil {
		h.log(r.Context(), "Summary").ErrorContext(r.Context(), "failed to compute statistics", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, summary)
}
