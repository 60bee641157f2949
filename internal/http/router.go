package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth            *AuthHandler
	Rooms           *RoomHandler
	BookingRequests *BookingRequestHandler
	Bookings        *BookingHandler
	Calendar        *CalendarHandler
	Menu            *MenuHandler
	Guests          *GuestHandler
	Stats           *StatsHandler
	Users           *UserHandler
	RequireSession  func(http.Handler) http.Handler
	Middleware      []func(http.Handler) http.Handler
}

// NewRouter assembles the public and session-protected route trees. Booking
// request submission and the availability probe stay public so prospective
// guests can reach them without an account.
func NewRouter(cfg RouterConfig) http.Handler {
	protected := http.NewServeMux()
	registerProtectedRoutes(protected, cfg)

	var protectedHandler http.Handler = protected
	if cfg.RequireSession != nil {
		protectedHandler = cfg.RequireSession(protected)
	}

	public := http.NewServeMux()
	registerPublicRoutes(public, cfg, protectedHandler)
	public.Handle("/", protectedHandler)

	var handler http.Handler = public
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}

func registerPublicRoutes(mux *http.ServeMux, cfg RouterConfig, protected http.Handler) {
	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.HandleFunc("/sessions/refresh", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.RefreshSession(w, r)
		})
		mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		})
	}

	if cfg.BookingRequests != nil {
		mux.HandleFunc("/booking-requests", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				cfg.BookingRequests.CreateBookingRequest(w, r)
			case http.MethodGet:
				// Listing is staff-only and goes through session validation.
				protected.ServeHTTP(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/availability", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.BookingRequests.CheckAvailability(w, r)
		})
	}
}

func registerProtectedRoutes(mux *http.ServeMux, cfg RouterConfig) {
	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.ListRooms(w, r)
			case http.MethodPost:
				cfg.Rooms.CreateRoom(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/rooms/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithRoomID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.GetRoom(w, r)
			case http.MethodPut:
				cfg.Rooms.UpdateRoom(w, r)
			case http.MethodDelete:
				cfg.Rooms.DeleteRoom(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.BookingRequests != nil {
		mux.HandleFunc("/booking-requests", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.BookingRequests.ListBookingRequests(w, r)
		})
		mux.HandleFunc("/booking-requests/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/booking-requests/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			id, action, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithBookingRequestID(r.Context(), id))
			switch action {
			case "":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.BookingRequests.DeleteBookingRequest(w, r)
			case "approve":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.BookingRequests.ApproveBookingRequest(w, r)
			case "reject":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.BookingRequests.RejectBookingRequest(w, r)
			case "complete":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.BookingRequests.CompleteBookingRequest(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Bookings.ListBookings(w, r)
			case http.MethodPost:
				cfg.Bookings.CreateBooking(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/bookings/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/bookings/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" || action != "status" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			r = r.WithContext(ContextWithBookingID(r.Context(), id))
			cfg.Bookings.TransitionBooking(w, r)
		})
	}

	if cfg.Calendar != nil {
		mux.HandleFunc("/calendar", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Calendar.MonthCalendar(w, r)
		})
		mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Calendar.Dashboard(w, r)
		})
	}

	if cfg.Menu != nil {
		mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Menu.ListMenu(w, r)
		})
		mux.HandleFunc("/menu/items", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Menu.CreateMenuItem(w, r)
		})
		mux.HandleFunc("/menu/items/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/menu/items/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			r = r.WithContext(ContextWithMenuItemID(r.Context(), id))
			cfg.Menu.UpdateMenuItem(w, r)
		})
		mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Menu.ListOrders(w, r)
			case http.MethodPost:
				cfg.Menu.CreateOrder(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/orders/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" || action != "status" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			r = r.WithContext(ContextWithOrderID(r.Context(), id))
			cfg.Menu.TransitionOrder(w, r)
		})
	}

	if cfg.Guests != nil {
		mux.HandleFunc("/guests", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Guests.ListGuests(w, r)
		})
		mux.HandleFunc("/guests/", func(w http.ResponseWriter, r *http.Request) {
			email := strings.TrimPrefix(r.URL.Path, "/guests/")
			if email == "" || strings.Contains(email, "/") {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithGuestEmail(r.Context(), email))
			cfg.Guests.GuestHistory(w, r)
		})
	}

	if cfg.Stats != nil {
		mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Stats.Summary(w, r)
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Users.ListUsers(w, r)
			case http.MethodPost:
				cfg.Users.CreateUser(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/users/")
			id, action, _ := strings.Cut(rest, "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithUserID(r.Context(), id))
			switch action {
			case "":
				switch r.Method {
				case http.MethodPut:
					cfg.Users.UpdateUser(w, r)
				case http.MethodDelete:
					cfg.Users.DeleteUser(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case "disabled":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Users.SetDisabled(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
