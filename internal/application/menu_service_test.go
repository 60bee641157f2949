package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

type menuRepoStub struct {
	items []MenuItem

	createErr error
	created   MenuItem

	updateErr error
	updated   MenuItem

	listErr error
}

func (m *menuRepoStub) CreateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	if m.createErr != nil {
		return MenuItem{}, m.createErr
	}
	m.created = item
	m.items = append(m.items, item)
	return item, nil
}

func (m *menuRepoStub) UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	if m.updateErr != nil {
		return MenuItem{}, m.updateErr
	}
	m.updated = item
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
		}
	}
	return item, nil
}

func (m *menuRepoStub) GetMenuItem(ctx context.Context, id string) (MenuItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return MenuItem{}, ErrNotFound
}

func (m *menuRepoStub) ListMenuItems(ctx context.Context, activeOnly bool) ([]MenuItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]MenuItem, 0, len(m.items))
	for _, item := range m.items {
		if activeOnly && !item.Active {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

type orderStatusUpdate struct {
	ID        string
	Status    OrderStatus
	UpdatedAt time.Time
}

type orderRepoStub struct {
	orders []Order

	createErr error
	created   Order

	updateErr     error
	statusUpdates []orderStatusUpdate

	listErr error
}

func (o *orderRepoStub) CreateOrder(ctx context.Context, order Order) (Order, error) {
	if o.createErr != nil {
		return Order{}, o.createErr
	}
	o.created = order
	o.orders = append(o.orders, order)
	return order, nil
}

func (o *orderRepoStub) GetOrder(ctx context.Context, id string) (Order, error) {
	for _, order := range o.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return Order{}, ErrNotFound
}

func (o *orderRepoStub) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, updatedAt time.Time) error {
	if o.updateErr != nil {
		return o.updateErr
	}
	o.statusUpdates = append(o.statusUpdates, orderStatusUpdate{ID: id, Status: status, UpdatedAt: updatedAt})
	for i := range o.orders {
		if o.orders[i].ID == id {
			o.orders[i].Status = status
			o.orders[i].UpdatedAt = updatedAt
		}
	}
	return nil
}

func (o *orderRepoStub) ListOrders(ctx context.Context) ([]Order, error) {
	if o.listErr != nil {
		return nil, o.listErr
	}
	out := make([]Order, len(o.orders))
	copy(out, o.orders)
	return out, nil
}

func TestMenuService_ListMenu(t *testing.T) {
	menu := &menuRepoStub{items: []MenuItem{
		{ID: "menu-1", Name: "Batata Frita 500gr", Category: CategoryPorcoes, Price: 45.90, Active: true},
		{ID: "menu-2", Name: "Caldo Verde", Category: CategoryCaldos, Price: 18.00, Active: true},
		{ID: "menu-3", Name: "Refrigerante Lata", Category: CategoryBebidas, Price: 6.50, Active: false},
	}}
	svc := NewMenuService(menu, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, nil, nil)

	grouped, err := svc.ListMenu(context.Background(), Principal{UserID: "staff-1"})
	if err != nil {
		t.Fatalf("ListMenu failed: %v", err)
	}

	if len(grouped[CategoryPorcoes]) != 1 || len(grouped[CategoryCaldos]) != 1 {
		t.Fatalf("expected one item per active category, got %v", grouped)
	}
	if len(grouped[CategoryBebidas]) != 0 {
		t.Fatalf("expected inactive items hidden, got %v", grouped[CategoryBebidas])
	}
}

func TestMenuService_CreateMenuItem(t *testing.T) {
	t.Run("requires administrator privileges", func(t *testing.T) {
		svc := NewMenuService(&menuRepoStub{}, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, nil, nil)

		_, err := svc.CreateMenuItem(context.Background(), Principal{UserID: "staff-1"}, MenuItemInput{
			Name:     "Caldo de Feijão",
			Category: CategoryCaldos,
			Price:    18,
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("validates name, price and category", func(t *testing.T) {
		svc := NewMenuService(&menuRepoStub{}, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, nil, nil)

		_, err := svc.CreateMenuItem(context.Background(), Principal{UserID: "admin-1", IsAdmin: true}, MenuItemInput{
			Name:     "  ",
			Category: MenuCategory("sobremesas"),
			Price:    -1,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "price", "category"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("persists items for administrators", func(t *testing.T) {
		menu := &menuRepoStub{}
		now := time.Date(2024, time.June, 15, 11, 0, 0, 0, time.UTC)
		svc := NewMenuService(menu, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, func() string { return "menu-1" }, func() time.Time { return now })

		item, err := svc.CreateMenuItem(context.Background(), Principal{UserID: "admin-1", IsAdmin: true}, MenuItemInput{
			Name:     " Caldo de Feijão ",
			Category: CategoryCaldos,
			Price:    18,
			Active:   true,
		})
		if err != nil {
			t.Fatalf("CreateMenuItem failed: %v", err)
		}

		if item.ID != "menu-1" || item.Name != "Caldo de Feijão" || !item.Active {
			t.Fatalf("expected persisted item, got %+v", item)
		}
		if !item.CreatedAt.Equal(now) {
			t.Fatalf("expected timestamp from the clock, got %v", item.CreatedAt)
		}
	})
}

func TestMenuService_UpdateMenuItem(t *testing.T) {
	t.Run("deactivates items without losing them", func(t *testing.T) {
		menu := &menuRepoStub{items: []MenuItem{{
			ID:       "menu-1",
			Name:     "Batata Frita 500gr",
			Category: CategoryPorcoes,
			Price:    45.90,
			Active:   true,
		}}}
		now := time.Date(2024, time.June, 15, 11, 0, 0, 0, time.UTC)
		svc := NewMenuService(menu, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, nil, func() time.Time { return now })

		item, err := svc.UpdateMenuItem(context.Background(), Principal{UserID: "admin-1", IsAdmin: true}, "menu-1", MenuItemInput{
			Name:     "Batata Frita 500gr",
			Category: CategoryPorcoes,
			Price:    49.90,
			Active:   false,
		})
		if err != nil {
			t.Fatalf("UpdateMenuItem failed: %v", err)
		}

		if item.Active {
			t.Fatalf("expected item deactivated, got %+v", item)
		}
		if item.Price != 49.90 {
			t.Fatalf("expected updated price, got %v", item.Price)
		}
		if menu.updated.ID != "menu-1" {
			t.Fatalf("expected update persisted, got %+v", menu.updated)
		}
	})

	t.Run("fails for unknown items", func(t *testing.T) {
		svc := NewMenuService(&menuRepoStub{}, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{}, nil, nil)

		_, err := svc.UpdateMenuItem(context.Background(), Principal{UserID: "admin-1", IsAdmin: true}, "missing", MenuItemInput{
			Name:     "Caldo Verde",
			Category: CategoryCaldos,
			Price:    18,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMenuService_CreateOrder(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	room := Room{ID: "room-1", Number: "101", Category: "standard"}
	occupied := Booking{
		ID:        "booking-1",
		RoomID:    "room-1",
		GuestName: "Ana Souza",
		CheckIn:   utcDate(2024, time.June, 14),
		CheckOut:  utcDate(2024, time.June, 16),
		Status:    BookingConfirmed,
	}
	catalog := []MenuItem{
		{ID: "menu-1", Name: "Batata Frita 500gr", Category: CategoryPorcoes, Price: 45.90, Active: true},
		{ID: "menu-2", Name: "Caldo Verde", Category: CategoryCaldos, Price: 18.00, Active: true},
		{ID: "menu-3", Name: "Chopp Artesanal", Category: CategoryBebidas, Price: 12.00, Active: false},
	}

	newService := func(menu *menuRepoStub, orders *orderRepoStub, rooms *roomRepoStub, bookings *bookingRepoStub) *MenuService {
		return NewMenuService(menu, orders, rooms, bookings, func() string { return "order-1" }, func() time.Time { return now })
	}

	t.Run("requires at least one item", func(t *testing.T) {
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "101",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["items"]; !ok {
			t.Fatalf("expected items validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects unknown rooms", func(t *testing.T) {
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{}, &bookingRepoStub{})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "999",
			Items:      []OrderItemInput{{MenuItemID: "menu-1", Quantity: 1}},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects rooms without a checked-in guest", func(t *testing.T) {
		scheduledOnly := occupied
		scheduledOnly.Status = BookingScheduled
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{bookings: []Booking{scheduledOnly}})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "101",
			Items:      []OrderItemInput{{MenuItemID: "menu-1", Quantity: 1}},
		})
		if !errors.Is(err, ErrRoomNotOccupied) {
			t.Fatalf("expected ErrRoomNotOccupied, got %v", err)
		}
	})

	t.Run("rejects stays outside today", func(t *testing.T) {
		pastStay := occupied
		pastStay.CheckIn = utcDate(2024, time.June, 1)
		pastStay.CheckOut = utcDate(2024, time.June, 3)
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{bookings: []Booking{pastStay}})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "101",
			Items:      []OrderItemInput{{MenuItemID: "menu-1", Quantity: 1}},
		})
		if !errors.Is(err, ErrRoomNotOccupied) {
			t.Fatalf("expected ErrRoomNotOccupied, got %v", err)
		}
	})

	t.Run("rejects inactive items", func(t *testing.T) {
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{bookings: []Booking{occupied}})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "101",
			Items:      []OrderItemInput{{MenuItemID: "menu-3", Quantity: 1}},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["items"]; !ok {
			t.Fatalf("expected items validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		svc := newService(&menuRepoStub{items: catalog}, &orderRepoStub{}, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{bookings: []Booking{occupied}})

		_, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: "101",
			Items:      []OrderItemInput{{MenuItemID: "menu-1", Quantity: 0}},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("prices the order from the catalog", func(t *testing.T) {
		orders := &orderRepoStub{}
		svc := newService(&menuRepoStub{items: catalog}, orders, &roomRepoStub{rooms: []Room{room}}, &bookingRepoStub{bookings: []Booking{occupied}})

		order, err := svc.CreateOrder(context.Background(), CreateOrderParams{
			Principal:  Principal{UserID: "staff-1"},
			RoomNumber: " 101 ",
			Items: []OrderItemInput{
				{MenuItemID: "menu-1", Quantity: 2},
				{MenuItemID: "menu-2", Quantity: 1},
			},
		})
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		if order.ID != "order-1" || order.Status != OrderPending {
			t.Fatalf("expected pending order, got %+v", order)
		}
		if order.RoomNumber != "101" || order.GuestName != "Ana Souza" {
			t.Fatalf("expected room and guest resolved, got %+v", order)
		}
		if order.CreatedBy != "staff-1" {
			t.Fatalf("expected creator recorded, got %q", order.CreatedBy)
		}
		if len(order.Items) != 2 || order.Items[0].Price != 45.90 || order.Items[0].Name != "Batata Frita 500gr" {
			t.Fatalf("expected catalog priced lines, got %v", order.Items)
		}
		if math.Abs(order.Total-109.80) > 1e-9 {
			t.Fatalf("expected total 109.80, got %v", order.Total)
		}
		if orders.created.ID != "order-1" {
			t.Fatalf("expected order persisted, got %+v", orders.created)
		}
	})
}

func TestMenuService_TransitionOrder(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		current OrderStatus
		target  OrderStatus
		wantErr bool
	}{
		{"pending to preparing", OrderPending, OrderPreparing, false},
		{"pending to cancelled", OrderPending, OrderCancelled, false},
		{"preparing to delivered", OrderPreparing, OrderDelivered, false},
		{"preparing to cancelled", OrderPreparing, OrderCancelled, false},
		{"pending to delivered", OrderPending, OrderDelivered, true},
		{"delivered to cancelled", OrderDelivered, OrderCancelled, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &orderRepoStub{orders: []Order{{ID: "order-1", Status: tc.current}}}
			svc := NewMenuService(&menuRepoStub{}, orders, &roomRepoStub{}, &bookingRepoStub{}, nil, func() time.Time { return now })

			err := svc.TransitionOrder(context.Background(), Principal{UserID: "staff-1"}, "order-1", tc.target)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TransitionOrder failed: %v", err)
			}
			if len(orders.statusUpdates) != 1 || orders.statusUpdates[0].Status != tc.target {
				t.Fatalf("expected status update to %q, got %v", tc.target, orders.statusUpdates)
			}
		})
	}
}
