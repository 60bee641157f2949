package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for staff accounts and guests.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}

// RoomRepository exposes CRUD operations for the room inventory.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	GetRoomByNumber(ctx context.Context, number string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// BookingRequestRepository stores stay proposals awaiting staff action.
type BookingRequestRepository interface {
	CreateBookingRequest(ctx context.Context, request BookingRequest) error
	GetBookingRequest(ctx context.Context, id string) (BookingRequest, error)
	UpdateBookingRequestStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	ListBookingRequests(ctx context.Context) ([]BookingRequest, error)
	ListBookingRequestsByStatus(ctx context.Context, status string) ([]BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id string) error
}

// BookingFilter narrows booking queries.
type BookingFilter struct {
	RoomID   string
	Statuses []string
}

// BookingRepository stores confirmed and scheduled stays.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)
	ListBookingsByGuestEmail(ctx context.Context, email string) ([]Booking, error)
}

// MenuRepository stores the restaurant menu catalog.
type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item MenuItem) error
	UpdateMenuItem(ctx context.Context, item MenuItem) error
	GetMenuItem(ctx context.Context, id string) (MenuItem, error)
	ListMenuItems(ctx context.Context, activeOnly bool) ([]MenuItem, error)
}

// OrderRepository stores restaurant orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order Order) error
	GetOrder(ctx context.Context, id string) (Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	ListOrders(ctx context.Context) ([]Order, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
