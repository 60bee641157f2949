package persistence

import "time"

// User represents a staff account. Guests who stayed at the pousada are
// registered here as well, which is what the guest directory lists.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	Address      *string
	BirthDate    *time.Time
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Room represents a bookable unit in the inventory.
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

// BookingRequest is an unapproved stay proposal awaiting staff action.
type BookingRequest struct {
	ID         string
	RoomID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Booking is a stay against a room, normally created when a request is
// approved.
type Booking struct {
	ID          string
	RoomID      string
	RequestID   *string
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	CheckIn     time.Time
	CheckOut    time.Time
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is one entry of the restaurant menu catalog.
type MenuItem struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one line of a restaurant order, denormalized so the order
// remains readable after menu changes.
type OrderItem struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
}

// Order is a restaurant order placed for an occupied room.
type Order struct {
	ID         string
	Items      []OrderItem
	Total      float64
	Status     string
	RoomNumber string
	GuestName  string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Session represents an authentication session persisted for a user.
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
