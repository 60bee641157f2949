package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/pousada-manager/internal/availability"
)

// MenuRepository captures the persistence interactions for the menu catalog.
type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (MenuItem, error)
	ListMenuItems(ctx context.Context, activeOnly bool) ([]MenuItem, error)
}

// OrderRepository captures the persistence interactions for restaurant orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order Order) (Order, error)
	GetOrder(ctx context.Context, id string) (Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, updatedAt time.Time) error
	ListOrders(ctx context.Context) ([]Order, error)
}

// MenuService manages the restaurant catalog and orders charged to rooms.
// Orders may only target rooms whose guest is checked in today.
type MenuService struct {
	menu        MenuRepository
	orders      OrderRepository
	rooms       RoomRepository
	bookings    BookingRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMenuService constructs a menu service with the provided dependencies.
func NewMenuService(menu MenuRepository, orders OrderRepository, rooms RoomRepository, bookings BookingRepository, idGenerator func() string, now func() time.Time) *MenuService {
	return NewMenuServiceWithLogger(menu, orders, rooms, bookings, idGenerator, now, nil)
}

// NewMenuServiceWithLogger constructs a menu service with a specified logger.
func NewMenuServiceWithLogger(menu MenuRepository, orders OrderRepository, rooms RoomRepository, bookings BookingRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MenuService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MenuService{
		menu:        menu,
		orders:      orders,
		rooms:       rooms,
		bookings:    bookings,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *MenuService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MenuService", operation, attrs...)
}

// ListMenu returns active menu items grouped into the fixed category order.
func (s *MenuService) ListMenu(ctx context.Context, principal Principal) (map[MenuCategory][]MenuItem, error) {
	if s == nil {
		return nil, fmt.Errorf("MenuService is nil")
	}
	if s.menu == nil {
		return nil, nil
	}

	items, err := s.menu.ListMenuItems(ctx, true)
	if err != nil {
		return nil, mapBookingRepoError(err)
	}

	grouped := make(map[MenuCategory][]MenuItem, len(MenuCategories))
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped, nil
}

// CreateMenuItem adds a catalog entry for administrators.
func (s *MenuService) CreateMenuItem(ctx context.Context, principal Principal, input MenuItemInput) (item MenuItem, err error) {
	if s == nil {
		err = fmt.Errorf("MenuService is nil")
		return
	}
	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.menu == nil {
		err = fmt.Errorf("menu repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateMenuItem",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create menu item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("menu_item_id", item.ID).InfoContext(ctx, "menu item created")
	}()

	vErr := validateMenuItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	item = MenuItem{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Category:  input.Category,
		Price:     input.Price,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var persisted MenuItem
	persisted, err = s.menu.CreateMenuItem(ctx, item)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	item = persisted
	return
}

// UpdateMenuItem edits a catalog entry for administrators. Deactivating an
// item removes it from the guest-facing menu without losing order history.
func (s *MenuService) UpdateMenuItem(ctx context.Context, principal Principal, itemID string, input MenuItemInput) (item MenuItem, err error) {
	if s == nil {
		err = fmt.Errorf("MenuService is nil")
		return
	}
	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.menu == nil {
		err = fmt.Errorf("menu repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateMenuItem",
		"principal_id", principal.UserID,
		"menu_item_id", itemID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update menu item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "menu item updated")
	}()

	var existing MenuItem
	existing, err = s.menu.GetMenuItem(ctx, itemID)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	vErr := validateMenuItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Category = input.Category
	existing.Price = input.Price
	existing.Active = input.Active
	existing.UpdatedAt = s.now()

	item, err = s.menu.UpdateMenuItem(ctx, existing)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	return
}

// CreateOrder places a restaurant order against an occupied room. The order
// total and item prices are resolved from the catalog, never from the caller.
func (s *MenuService) CreateOrder(ctx context.Context, params CreateOrderParams) (order Order, err error) {
	if s == nil {
		err = fmt.Errorf("MenuService is nil")
		return
	}
	if s.orders == nil || s.menu == nil {
		err = fmt.Errorf("order repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateOrder",
		"principal_id", params.Principal.UserID,
		"room_number", params.RoomNumber,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create order", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("order_id", order.ID, "total", order.Total).InfoContext(ctx, "order created")
	}()

	roomNumber := strings.TrimSpace(params.RoomNumber)
	if roomNumber == "" {
		vErr := &ValidationError{}
		vErr.add("room_number", "room number is required")
		err = vErr
		return
	}
	if len(params.Items) == 0 {
		vErr := &ValidationError{}
		vErr.add("items", "order must contain at least one item")
		err = vErr
		return
	}

	var guestName string
	guestName, err = s.occupiedBy(ctx, roomNumber)
	if err != nil {
		return
	}

	items := make([]OrderItem, 0, len(params.Items))
	var total float64
	for _, line := range params.Items {
		if line.Quantity <= 0 {
			vErr := &ValidationError{}
			vErr.add("items", "item quantity must be positive")
			err = vErr
			return
		}

		var menuItem MenuItem
		menuItem, err = s.menu.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			err = mapBookingRepoError(err)
			return
		}
		if !menuItem.Active {
			vErr := &ValidationError{}
			vErr.add("items", "item is no longer on the menu")
			err = vErr
			return
		}

		items = append(items, OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   line.Quantity,
		})
		total += menuItem.Price * float64(line.Quantity)
	}

	now := s.now()
	order = Order{
		ID:         s.idGenerator(),
		Items:      items,
		Total:      total,
		Status:     OrderPending,
		RoomNumber: roomNumber,
		GuestName:  guestName,
		CreatedBy:  params.Principal.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var persisted Order
	persisted, err = s.orders.CreateOrder(ctx, order)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	order = persisted
	return
}

// ListOrders returns all orders, newest first.
func (s *MenuService) ListOrders(ctx context.Context, principal Principal) ([]Order, error) {
	if s == nil {
		return nil, fmt.Errorf("MenuService is nil")
	}
	if s.orders == nil {
		return nil, nil
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, mapBookingRepoError(err)
	}
	return orders, nil
}

// TransitionOrder moves an order through its kitchen lifecycle.
func (s *MenuService) TransitionOrder(ctx context.Context, principal Principal, orderID string, target OrderStatus) error {
	if s == nil {
		return fmt.Errorf("MenuService is nil")
	}
	if s.orders == nil {
		return fmt.Errorf("order repository not configured")
	}

	logger := s.loggerWith(ctx, "TransitionOrder",
		"principal_id", principal.UserID,
		"order_id", orderID,
		"target_status", string(target),
	)

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to load order", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !validOrderTransition(order.Status, target) {
		logger.ErrorContext(ctx, "invalid order transition", "error", ErrInvalidTransition, "error_kind", ErrorKind(ErrInvalidTransition))
		return ErrInvalidTransition
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, target, s.now()); err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to transition order", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "order transitioned")
	return nil
}

// occupiedBy resolves the guest checked into the room today, or fails with
// ErrRoomNotOccupied.
func (s *MenuService) occupiedBy(ctx context.Context, roomNumber string) (string, error) {
	if s.rooms == nil || s.bookings == nil {
		return "", fmt.Errorf("room and booking repositories not configured")
	}

	room, err := s.rooms.GetRoomByNumber(ctx, roomNumber)
	if err != nil {
		return "", mapRoomRepoError(err)
	}

	bookings, err := s.bookings.ListBookings(ctx, room.ID, []BookingStatus{BookingConfirmed})
	if err != nil {
		return "", mapBookingRepoError(err)
	}

	today := availability.DateOnly(s.now())
	for _, booking := range bookings {
		start := availability.DateOnly(booking.CheckIn)
		end := availability.DateOnly(booking.CheckOut)
		if !today.Before(start) && !today.After(end) {
			return booking.GuestName, nil
		}
	}

	return "", ErrRoomNotOccupied
}

func validateMenuItemInput(input MenuItemInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Price < 0 {
		vErr.add("price", "price cannot be negative")
	}

	valid := false
	for _, category := range MenuCategories {
		if input.Category == category {
			valid = true
			break
		}
	}
	if !valid {
		vErr.add("category", "category must be one of porcoes, caldos, bebidas, vinhos")
	}

	return vErr
}

func validOrderTransition(current, target OrderStatus) bool {
	switch current {
	case OrderPending:
		return target == OrderPreparing || target == OrderCancelled
	case OrderPreparing:
		return target == OrderDelivered || target == OrderCancelled
	default:
		return false
	}
}
