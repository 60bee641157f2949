package application

import "time"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// RequestStatus tracks the lifecycle of a booking request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// BookingStatus tracks the lifecycle of a stay.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingScheduled BookingStatus = "scheduled"
	BookingCancelled BookingStatus = "cancelled"
)

// OrderStatus tracks the lifecycle of a restaurant order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// MenuCategory identifies one of the fixed restaurant menu sections.
type MenuCategory string

const (
	CategoryPorcoes MenuCategory = "porcoes"
	CategoryCaldos  MenuCategory = "caldos"
	CategoryBebidas MenuCategory = "bebidas"
	CategoryVinhos  MenuCategory = "vinhos"
)

// MenuCategories lists the menu sections in display order.
var MenuCategories = []MenuCategory{CategoryPorcoes, CategoryCaldos, CategoryBebidas, CategoryVinhos}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Number    string
	Category  string
	DailyRate float64
	Features  []string
	Notes     *string
}

// Room represents a guest room in the property's inventory.
type Room struct {
	ID        string
	Number    string
	Category  string
	DailyRate float64
	Features  []string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// BookingRequestInput captures caller provided stay proposal fields.
type BookingRequestInput struct {
	RoomID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    string
	CheckOut   string
	Notes      *string
}

// BookingRequest represents a stay proposal awaiting staff action.
type BookingRequest struct {
	ID         string
	RoomID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     RequestStatus
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateBookingRequestParams wraps the data required to submit a booking request.
type CreateBookingRequestParams struct {
	Input BookingRequestInput
}

// Booking represents a confirmed or scheduled stay.
type Booking struct {
	ID          string
	RoomID      string
	RequestID   *string
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	CheckIn     time.Time
	CheckOut    time.Time
	Status      BookingStatus
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingInput captures caller provided fields for a direct booking.
type BookingInput struct {
	RoomID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    string
	CheckOut   string
	Status     BookingStatus
}

// CreateBookingParams wraps the data required to register a stay directly.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// ListBookingsParams narrows booking listings.
type ListBookingsParams struct {
	Principal Principal
	RoomID    string
	Statuses  []BookingStatus
}

// MenuItem represents a restaurant menu entry.
type MenuItem struct {
	ID        string
	Name      string
	Category  MenuCategory
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItemInput captures caller provided menu item fields.
type MenuItemInput struct {
	Name     string
	Category MenuCategory
	Price    float64
	Active   bool
}

// OrderItemInput captures one requested line of an order.
type OrderItemInput struct {
	MenuItemID string
	Quantity   int
}

// OrderItem represents a priced line of a placed order.
type OrderItem struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
}

// Order represents a restaurant order charged to a room.
type Order struct {
	ID         string
	Items      []OrderItem
	Total      float64
	Status     OrderStatus
	RoomNumber string
	GuestName  string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateOrderParams wraps the data required to place an order.
type CreateOrderParams struct {
	Principal  Principal
	RoomNumber string
	Items      []OrderItemInput
}

// Guest summarizes a person who has stayed or requested to stay.
type Guest struct {
	Name       string
	Email      string
	Phone      string
	StayCount  int
	TotalSpent float64
	LastStay   *time.Time
}

// GuestHistory couples a guest with their stays.
type GuestHistory struct {
	Guest    Guest
	Bookings []Booking
}

// UserInput captures caller provided account attributes.
type UserInput struct {
	Email     string
	Name      string
	Phone     string
	Address   *string
	BirthDate *string
	Password  string
	IsAdmin   bool
}

// User represents a staff or guest account exposed by the application services.
type User struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Address   *string
	BirthDate *time.Time
	IsAdmin   bool
	Disabled  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserParams wraps the data required to create an account.
type CreateUserParams struct {
	Principal Principal
	Input     UserInput
}

// UpdateUserParams wraps the data required to update an account.
type UpdateUserParams struct {
	Principal Principal
	UserID    string
	Input     UserInput
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
	Disabled     bool
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID          string
	UserID      string
	Token       string
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RevokedAt   *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email       string
	Password    string
	Fingerprint string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}

// RefreshSessionParams captures the data required to refresh an existing session.
type RefreshSessionParams struct {
	Token       string
	Fingerprint string
}

// RefreshSessionResult captures the outcome of rotating a session token.
type RefreshSessionResult struct {
	Session Session
}
