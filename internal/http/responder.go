package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/pousada-manager/internal/application"
	"github.com/example/pousada-manager/internal/availability"
	"github.com/example/pousada-manager/internal/logging"
)

var (
	errBadRequestBody      = errors.New("formato de requisição inválido.")
	errInvalidRoomID       = errors.New("identificador de quarto inválido.")
	errInvalidRequestID    = errors.New("identificador de solicitação inválido.")
	errInvalidBookingID    = errors.New("identificador de reserva inválido.")
	errInvalidOrderID      = errors.New("identificador de pedido inválido.")
	errInvalidMenuItemID   = errors.New("identificador de item do cardápio inválido.")
	errInvalidUserID       = errors.New("identificador de usuário inválido.")
	errInvalidGuestEmail   = errors.New("e-mail de hóspede inválido.")
	errMissingSessionToken = errors.New("informe o token de autenticação")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   "E-mail ou senha incorretos.",
		})
	case errors.Is(err, application.ErrAccountDisabled):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_ACCOUNT_DISABLED",
			Message:   "Esta conta está desativada.",
		})
	case errors.Is(err, application.ErrSessionExpired), errors.Is(err, application.ErrSessionRevoked):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_EXPIRED",
			Message:   "Sessão expirada. Faça login novamente.",
		})
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   "Você não tem permissão para executar esta operação.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "O recurso solicitado não foi encontrado."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Já existe um registro com estes dados."})
	case errors.Is(err, application.ErrInvalidTransition):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Esta mudança de status não é permitida."})
	case errors.Is(err, application.ErrRoomUnavailable):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "ROOM_UNAVAILABLE",
			Message:   "O quarto não está disponível nas datas escolhidas.",
		})
	case errors.Is(err, application.ErrRoomNotOccupied):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "ROOM_NOT_OCCUPIED",
			Message:   "O quarto não possui hóspede com check-in realizado.",
		})
	case errors.Is(err, application.ErrRoomInUse):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "ROOM_IN_USE",
			Message:   "O quarto possui reservas e não pode ser removido.",
		})
	case errors.Is(err, availability.ErrInvalidDate):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Message: "Informe a data no formato AAAA-MM-DD."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			details := localizeValidationErrors(vErr)
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Há erros nos dados informados.",
				Errors:  details,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Ocorreu um erro interno no servidor."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requisição inválida."
	case http.StatusUnauthorized:
		return "Autenticação necessária."
	case http.StatusForbidden:
		return "Você não tem permissão para executar esta operação."
	case http.StatusNotFound:
		return "O recurso solicitado não foi encontrado."
	case http.StatusConflict:
		return "A requisição conflita com o estado atual do recurso."
	case http.StatusUnprocessableEntity:
		return "Há erros nos dados informados."
	default:
		return "Ocorreu um erro interno no servidor."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "number is required":
		return "O número do quarto é obrigatório."
	case "category is required":
		return "A categoria do quarto é obrigatória."
	case "daily rate cannot be negative":
		return "A diária não pode ser negativa."
	case "room is required":
		return "Informe o quarto desejado."
	case "room does not exist":
		return "O quarto informado não existe."
	case "guest name is required":
		return "O nome do hóspede é obrigatório."
	case "guest email is required":
		return "O e-mail do hóspede é obrigatório."
	case "guest email is invalid":
		return "O e-mail do hóspede é inválido."
	case "check-in date must be YYYY-MM-DD":
		return "Informe a data de check-in no formato AAAA-MM-DD."
	case "check-out date must be YYYY-MM-DD":
		return "Informe a data de check-out no formato AAAA-MM-DD."
	case "check-out must be after check-in":
		return "A data de check-out deve ser posterior ao check-in."
	case "stay cannot start in the past":
		return "A estadia não pode começar em uma data passada."
	case "status must be scheduled or confirmed":
		return "O status inicial deve ser agendada ou confirmada."
	case "name is required":
		return "O nome é obrigatório."
	case "price cannot be negative":
		return "O preço não pode ser negativo."
	case "category must be one of porcoes, caldos, bebidas, vinhos":
		return "A categoria deve ser porções, caldos, bebidas ou vinhos."
	case "room number is required":
		return "Informe o número do quarto."
	case "order must contain at least one item":
		return "O pedido deve conter ao menos um item."
	case "item quantity must be positive":
		return "A quantidade de cada item deve ser positiva."
	case "item is no longer on the menu":
		return "Um dos itens não está mais disponível no cardápio."
	case "email is required":
		return "O e-mail é obrigatório."
	case "email is invalid":
		return "O e-mail é inválido."
	case "password is required":
		return "A senha é obrigatória."
	case "password must have at least 8 characters":
		return "A senha deve ter pelo menos 8 caracteres."
	case "birth date must be YYYY-MM-DD":
		return "Informe a data de nascimento no formato AAAA-MM-DD."
	case "cannot delete the signed-in account":
		return "Não é possível excluir a própria conta."
	default:
		return message
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
