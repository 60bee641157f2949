package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/pousada-manager/internal/application"
)

type menuService interface {
	ListMenu(ctx context.Context, principal application.Principal) (map[application.MenuCategory][]application.MenuItem, error)
	CreateMenuItem(ctx context.Context, principal application.Principal, input application.MenuItemInput) (application.MenuItem, error)
	UpdateMenuItem(ctx context.Context, principal application.Principal, itemID string, input application.MenuItemInput) (application.MenuItem, error)
	CreateOrder(ctx context.Context, params application.CreateOrderParams) (application.Order, error)
	ListOrders(ctx context.Context, principal application.Principal) ([]application.Order, error)
	TransitionOrder(ctx context.Context, principal application.Principal, orderID string, target application.OrderStatus) error
}

type MenuHandler struct {
	service   menuService
	responder responder
	logger    *slog.Logger
}

func NewMenuHandler(service menuService, logger *slog.Logger) *MenuHandler {
	base := defaultLogger(logger)
	return &MenuHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *MenuHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MenuHandler", operation, attrs...)
}

// ListMenu returns active menu items grouped by category.
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	grouped, err := h.service.ListMenu(r.Context(), principal)
	if err != nil {
		h.log(r.Context(), "ListMenu").ErrorContext(r.Context(), "failed to list menu", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	sections := make(map[string][]menuItemDTO, len(grouped))
	for category, items := range grouped {
		dtos := make([]menuItemDTO, 0, len(items))
		for _, item := range items {
			dtos = append(dtos, toMenuItemDTO(item))
		}
		sections[string(category)] = dtos
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, menuResponse{Menu: sections})
}

func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateMenuItem").ErrorContext(r.Context(), "failed to decode menu item payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateMenuItem", "principal_id", principal.UserID)

	item, err := h.service.CreateMenuItem(r.Context(), principal, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create menu item", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("menu_item_id", item.ID).InfoContext(r.Context(), "menu item created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toMenuItemDTO(item))
}

func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	itemID, ok := MenuItemIDFromContext(r.Context())
	if !ok || itemID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMenuItemID)
		return
	}

	var req menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateMenuItem", "menu_item_id", itemID).ErrorContext(r.Context(), "failed to decode menu item payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateMenuItem", "menu_item_id", itemID, "principal_id", principal.UserID)

	item, err := h.service.UpdateMenuItem(r.Context(), principal, itemID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update menu item", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "menu item updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMenuItemDTO(item))
}

// CreateOrder places a restaurant order against an occupied room.
func (h *MenuHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateOrder").ErrorContext(r.Context(), "failed to decode order payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	items := make([]application.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, application.OrderItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	logger := h.log(r.Context(), "CreateOrder", "room_number", req.RoomNumber, "principal_id", principal.UserID)

	order, err := h.service.CreateOrder(r.Context(), application.CreateOrderParams{
		Principal:  principal,
		RoomNumber: req.RoomNumber,
		Items:      items,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create order", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("order_id", order.ID).InfoContext(r.Context(), "order created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toOrderDTO(order))
}

func (h *MenuHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), principal)
	if err != nil {
		h.log(r.Context(), "ListOrders").ErrorContext(r.Context(), "failed to list orders", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]orderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, orderListResponse{Orders: dtos})
}

func (h *MenuHandler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, _ := PrincipalFromContext(r.Context())
	orderID, ok := OrderIDFromContext(r.Context())
	if !ok || orderID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidOrderID)
		return
	}

	var req orderTransitionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "TransitionOrder", "order_id", orderID).ErrorContext(r.Context(), "failed to decode transition payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "TransitionOrder", "order_id", orderID, "target_status", req.Status, "principal_id", principal.UserID)

	if err := h.service.TransitionOrder(r.Context(), principal, orderID, application.OrderStatus(req.Status)); err != nil {
		logger.ErrorContext(r.Context(), "failed to transition order", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "order transitioned")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type menuItemPayload struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Active   *bool   `json:"active"`
}

func (req menuItemPayload) toInput() application.MenuItemInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return application.MenuItemInput{
		Name:     req.Name,
		Category: application.MenuCategory(req.Category),
		Price:    req.Price,
		Active:   active,
	}
}

type menuItemDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type menuResponse struct {
	Menu map[string][]menuItemDTO `json:"menu"`
}

type orderItemPayload struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type orderPayload struct {
	RoomNumber string             `json:"room_number"`
	Items      []orderItemPayload `json:"items"`
}

type orderTransitionPayload struct {
	Status string `json:"status"`
}

type orderItemDTO struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type orderDTO struct {
	ID         string         `json:"id"`
	Items      []orderItemDTO `json:"items"`
	Total      float64        `json:"total"`
	Status     string         `json:"status"`
	RoomNumber string         `json:"room_number"`
	GuestName  string         `json:"guest_name"`
	CreatedBy  string         `json:"created_by"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

type orderListResponse struct {
	Orders []orderDTO `json:"orders"`
}

func toMenuItemDTO(item application.MenuItem) menuItemDTO {
	return menuItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		Category:  string(item.Category),
		Price:     item.Price,
		Active:    item.Active,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toOrderDTO(order application.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDTO{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	return orderDTO{
		ID:         order.ID,
		Items:      items,
		Total:      order.Total,
		Status:     string(order.Status),
		RoomNumber: order.RoomNumber,
		GuestName:  order.GuestName,
		CreatedBy:  order.CreatedBy,
		CreatedAt:  order.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  order.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
