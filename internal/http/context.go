package http

import (
	"context"

	"github.com/example/pousada-manager/internal/application"
)

type contextKey string

const (
	principalContextKey  contextKey = "principal"
	roomIDContextKey     contextKey = "room_id"
	requestIDContextKey  contextKey = "booking_request_id"
	bookingIDContextKey  contextKey = "booking_id"
	orderIDContextKey    contextKey = "order_id"
	menuItemIDContextKey contextKey = "menu_item_id"
	userIDContextKey     contextKey = "user_id"
	guestEmailContextKey contextKey = "guest_email"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, roomID)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithBookingRequestID injects the booking request identifier resolved from the request path.
func ContextWithBookingRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// BookingRequestIDFromContext extracts a booking request identifier previously associated with the context.
func BookingRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}

// ContextWithBookingID injects the booking identifier resolved from the request path.
func ContextWithBookingID(ctx context.Context, bookingID string) context.Context {
	return context.WithValue(ctx, bookingIDContextKey, bookingID)
}

// BookingIDFromContext extracts a booking identifier previously associated with the context.
func BookingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(bookingIDContextKey).(string)
	return id, ok
}

// ContextWithOrderID injects the order identifier resolved from the request path.
func ContextWithOrderID(ctx context.Context, orderID string) context.Context {
	return context.WithValue(ctx, orderIDContextKey, orderID)
}

// OrderIDFromContext extracts an order identifier previously associated with the context.
func OrderIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(orderIDContextKey).(string)
	return id, ok
}

// ContextWithMenuItemID injects the menu item identifier resolved from the request path.
func ContextWithMenuItemID(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, menuItemIDContextKey, itemID)
}

// MenuItemIDFromContext extracts a menu item identifier previously associated with the context.
func MenuItemIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(menuItemIDContextKey).(string)
	return id, ok
}

// ContextWithUserID injects the user identifier resolved from the request path.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts a user identifier previously associated with the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}

// ContextWithGuestEmail injects the guest email resolved from the request path.
func ContextWithGuestEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, guestEmailContextKey, email)
}

// GuestEmailFromContext extracts a guest email previously associated with the context.
func GuestEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(guestEmailContextKey).(string)
	return email, ok
}
