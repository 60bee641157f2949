package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/pousada-manager/internal/application"
	"github.com/example/pousada-manager/internal/availability"
)

type stubAuthService struct {
	authenticateResult application.AuthenticateResult
	authenticateErr    error
	refreshResult      application.RefreshSessionResult
	refreshErr         error
	revokeErr          error
	revokedToken       string
}

func (s *stubAuthService) Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error) {
	if s.authenticateErr != nil {
		return application.AuthenticateResult{}, s.authenticateErr
	}
	return s.authenticateResult, nil
}

func (s *stubAuthService) RefreshSession(ctx context.Context, params application.RefreshSessionParams) (application.RefreshSessionResult, error) {
	if s.refreshErr != nil {
		return application.RefreshSessionResult{}, s.refreshErr
	}
	return s.refreshResult, nil
}

func (s *stubAuthService) RevokeSession(ctx context.Context, token string) error {
	s.revokedToken = token
	return s.revokeErr
}

type stubRoomService struct {
	rooms     []application.Room
	createErr error
	created   application.Room
	listErr   error
}

func (s *stubRoomService) CreateRoom(ctx context.Context, params application.CreateRoomParams) (application.Room, error) {
	if s.createErr != nil {
		return application.Room{}, s.createErr
	}
	return s.created, nil
}

func (s *stubRoomService) UpdateRoom(ctx context.Context, params application.UpdateRoomParams) (application.Room, error) {
	return s.created, nil
}

func (s *stubRoomService) GetRoom(ctx context.Context, principal application.Principal, roomID string) (application.Room, error) {
	for _, room := range s.rooms {
		if room.ID == roomID {
			return room, nil
		}
	}
	return application.Room{}, application.ErrNotFound
}

func (s *stubRoomService) DeleteRoom(ctx context.Context, principal application.Principal, roomID string) error {
	return nil
}

func (s *stubRoomService) ListRooms(ctx context.Context, principal application.Principal, searchTerm string) ([]application.Room, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rooms, nil
}

type stubBookingRequestService struct {
	created      application.BookingRequest
	createErr    error
	requests     []application.BookingRequest
	approved     application.Booking
	approveErr   error
	transitioned []string
	reason       availability.RejectionReason
	checkErr     error
}

func (s *stubBookingRequestService) CreateBookingRequest(ctx context.Context, params application.CreateBookingRequestParams) (application.BookingRequest, error) {
	if s.createErr != nil {
		return application.BookingRequest{}, s.createErr
	}
	return s.created, nil
}

func (s *stubBookingRequestService) ListBookingRequests(ctx context.Context, principal application.Principal, status application.RequestStatus) ([]application.BookingRequest, error) {
	return s.requests, nil
}

func (s *stubBookingRequestService) ApproveBookingRequest(ctx context.Context, principal application.Principal, requestID string) (application.Booking, error) {
	if s.approveErr != nil {
		return application.Booking{}, s.approveErr
	}
	s.transitioned = append(s.transitioned, "approve:"+requestID)
	return s.approved, nil
}

func (s *stubBookingRequestService) RejectBookingRequest(ctx context.Context, principal application.Principal, requestID string) error {
	s.transitioned = append(s.transitioned, "reject:"+requestID)
	return nil
}

func (s *stubBookingRequestService) CompleteBookingRequest(ctx context.Context, principal application.Principal, requestID string) error {
	s.transitioned = append(s.transitioned, "complete:"+requestID)
	return nil
}

func (s *stubBookingRequestService) DeleteBookingRequest(ctx context.Context, principal application.Principal, requestID string) error {
	s.transitioned = append(s.transitioned, "delete:"+requestID)
	return nil
}

func (s *stubBookingRequestService) CheckAvailability(ctx context.Context, roomID string, checkInValue, checkOutValue string) (availability.RejectionReason, error) {
	if s.checkErr != nil {
		return availability.RejectionNone, s.checkErr
	}
	return s.reason, nil
}

type stubBookingService struct {
	created       application.Booking
	createErr     error
	bookings      []application.Booking
	transitions   []string
	transitionErr error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error) {
	if s.createErr != nil {
		return application.Booking{}, s.createErr
	}
	return s.created, nil
}

func (s *stubBookingService) ListBookings(ctx context.Context, params application.ListBookingsParams) ([]application.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingService) TransitionBooking(ctx context.Context, principal application.Principal, bookingID string, target application.BookingStatus) error {
	if s.transitionErr != nil {
		return s.transitionErr
	}
	s.transitions = append(s.transitions, bookingID+":"+string(target))
	return nil
}

type stubStatsInvalidator struct {
	calls int
}

func (s *stubStatsInvalidator) Invalidate(ctx context.Context) {
	s.calls++
}

func newTestRouter(cfg RouterConfig, validator SessionValidator) http.Handler {
	if validator != nil {
		cfg.RequireSession = RequireSession(validator, nil)
	}
	return NewRouter(cfg)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAuthHandlers(t *testing.T) {
	t.Parallel()

	expires := time.Date(2024, time.June, 16, 3, 0, 0, 0, time.UTC)

	t.Run("login issues session token via cookie and header", func(t *testing.T) {
		t.Parallel()

		service := &stubAuthService{
			authenticateResult: application.AuthenticateResult{
				User: application.User{ID: "user-1", Name: "Ana Souza", IsAdmin: true},
				Session: application.Session{
					ID:        "session-1",
					Token:     "token-abc",
					ExpiresAt: expires,
				},
			},
		}
		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(service, nil)}, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"s3nh4forte"}`)
		req := httptest.NewRequest(http.MethodPost, "/sessions", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("X-Session-Token"); got != "token-abc" {
			t.Fatalf("expected session token header, got %q", got)
		}
		cookie := rec.Result().Cookies()
		if len(cookie) == 0 || cookie[0].Name != "session_token" || cookie[0].Value != "token-abc" {
			t.Fatalf("expected session_token cookie, got %+v", cookie)
		}

		var resp loginResponse
		decodeBody(t, rec, &resp)
		if resp.Token != "token-abc" {
			t.Fatalf("expected token in body, got %q", resp.Token)
		}
		if resp.Principal.UserID != "user-1" || !resp.Principal.IsAdmin {
			t.Fatalf("unexpected principal %+v", resp.Principal)
		}
	})

	t.Run("login with bad credentials returns 401", func(t *testing.T) {
		t.Parallel()

		service := &stubAuthService{authenticateErr: application.ErrInvalidCredentials}
		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(service, nil)}, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString(`{"email":"x@y.com","password":"errada"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.ErrorCode != "AUTH_INVALID_CREDENTIALS" {
			t.Fatalf("expected AUTH_INVALID_CREDENTIALS, got %q", resp.ErrorCode)
		}
	})

	t.Run("logout revokes the session and clears the cookie", func(t *testing.T) {
		t.Parallel()

		service := &stubAuthService{}
		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(service, nil)}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/sessions/current", nil)
		req.Header.Set("Authorization", "Bearer token-abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if service.revokedToken != "token-abc" {
			t.Fatalf("expected revoked token token-abc, got %q", service.revokedToken)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) == 0 || cookies[0].MaxAge != -1 {
			t.Fatalf("expected expired session cookie, got %+v", cookies)
		}
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		t.Parallel()

		service := &stubAuthService{
			refreshResult: application.RefreshSessionResult{
				Session: application.Session{ID: "session-1", Token: "token-next", ExpiresAt: expires},
			},
		}
		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(service, nil)}, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "token-abc"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp refreshResponse
		decodeBody(t, rec, &resp)
		if resp.Token != "token-next" {
			t.Fatalf("expected rotated token, got %q", resp.Token)
		}
	})

	t.Run("refresh without token returns 401", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(&stubAuthService{}, nil)}, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/refresh", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("login rejects unsupported methods", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{Auth: NewAuthHandler(&stubAuthService{}, nil)}, nil)

		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
			t.Fatalf("expected Allow: POST, got %q", allow)
		}
	})
}

func TestPublicBookingRequestRoutes(t *testing.T) {
	t.Parallel()

	t.Run("guests submit booking requests without a session", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingRequestService{
			created: application.BookingRequest{
				ID:       "request-1",
				RoomID:   "room-1",
				CheckIn:  time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC),
				Status:   application.RequestPending,
			},
		}
		stats := &stubStatsInvalidator{}
		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(service, stats, nil),
		}, fakeSessionValidator{err: application.ErrUnauthorized})

		body := bytes.NewBufferString(`{"room_id":"room-1","guest_name":"Ana","guest_email":"ana@example.com","check_in":"2024-07-10","check_out":"2024-07-12"}`)
		req := httptest.NewRequest(http.MethodPost, "/booking-requests", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp bookingRequestDTO
		decodeBody(t, rec, &resp)
		if resp.ID != "request-1" || resp.Status != "pending" {
			t.Fatalf("unexpected response %+v", resp)
		}
		if resp.CheckIn != "2024-07-10" || resp.CheckOut != "2024-07-12" {
			t.Fatalf("expected date-only stay bounds, got %q to %q", resp.CheckIn, resp.CheckOut)
		}
		if stats.calls != 1 {
			t.Fatalf("expected one stats invalidation, got %d", stats.calls)
		}
	})

	t.Run("availability probe stays public", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingRequestService{reason: availability.RejectionAlreadyBooked}
		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(service, nil, nil),
		}, fakeSessionValidator{err: application.ErrUnauthorized})

		req := httptest.NewRequest(http.MethodGet, "/availability?room_id=room-1&check_in=2024-07-10&check_out=2024-07-12", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp availabilityResponse
		decodeBody(t, rec, &resp)
		if resp.Available || resp.Reason != "already_booked" {
			t.Fatalf("unexpected availability response %+v", resp)
		}
	})

	t.Run("unavailable stays map to 409 with localized message", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingRequestService{createErr: application.ErrRoomUnavailable}
		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(service, nil, nil),
		}, nil)

		body := bytes.NewBufferString(`{"room_id":"room-1","guest_name":"Ana","guest_email":"ana@example.com","check_in":"2024-07-10","check_out":"2024-07-12"}`)
		req := httptest.NewRequest(http.MethodPost, "/booking-requests", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.ErrorCode != "ROOM_UNAVAILABLE" {
			t.Fatalf("expected ROOM_UNAVAILABLE, got %q", resp.ErrorCode)
		}
		if !strings.Contains(resp.Message, "não está disponível") {
			t.Fatalf("expected localized message, got %q", resp.Message)
		}
	})

	t.Run("validation errors are localized per field", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingRequestService{
			createErr: &application.ValidationError{FieldErrors: map[string]string{
				"guest_name": "guest name is required",
				"check_in":   "check-in date must be YYYY-MM-DD",
			}},
		}
		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(service, nil, nil),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/booking-requests", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["guest_name"] != "O nome do hóspede é obrigatório." {
			t.Fatalf("unexpected guest_name message %q", resp.Errors["guest_name"])
		}
		if resp.Errors["check_in"] != "Informe a data de check-in no formato AAAA-MM-DD." {
			t.Fatalf("unexpected check_in message %q", resp.Errors["check_in"])
		}
	})

	t.Run("listing requests requires a session", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(&stubBookingRequestService{}, nil, nil),
		}, fakeSessionValidator{err: application.ErrUnauthorized})

		req := httptest.NewRequest(http.MethodGet, "/booking-requests", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestProtectedRoutes(t *testing.T) {
	t.Parallel()

	admin := fakeSessionValidator{principal: application.Principal{UserID: "user-1", IsAdmin: true}}

	t.Run("rooms list requires a session token", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{
			Rooms: NewRoomHandler(&stubRoomService{}, nil),
		}, admin)

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", rec.Code)
		}
	})

	t.Run("rooms list returns catalog with a valid session", func(t *testing.T) {
		t.Parallel()

		service := &stubRoomService{rooms: []application.Room{
			{ID: "room-1", Number: "101", Category: "standard", DailyRate: 150},
			{ID: "room-2", Number: "201", Category: "suite", DailyRate: 320},
		}}
		router := newTestRouter(RouterConfig{Rooms: NewRoomHandler(service, nil)}, admin)

		req := httptest.NewRequest(http.MethodGet, "/rooms?q=suite", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp roomListResponse
		decodeBody(t, rec, &resp)
		if len(resp.Rooms) != 2 || resp.Rooms[1].Number != "201" {
			t.Fatalf("unexpected rooms payload %+v", resp.Rooms)
		}
	})

	t.Run("room mutations surface authorization failures as 403", func(t *testing.T) {
		t.Parallel()

		service := &stubRoomService{createErr: application.ErrUnauthorized}
		router := newTestRouter(RouterConfig{Rooms: NewRoomHandler(service, nil)}, admin)

		req := httptest.NewRequest(http.MethodPost, "/rooms", bytes.NewBufferString(`{"number":"101","category":"standard","daily_rate":150}`))
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.ErrorCode != "AUTH_FORBIDDEN" {
			t.Fatalf("expected AUTH_FORBIDDEN, got %q", resp.ErrorCode)
		}
	})

	t.Run("unknown room maps to 404", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{Rooms: NewRoomHandler(&stubRoomService{}, nil)}, admin)

		req := httptest.NewRequest(http.MethodGet, "/rooms/missing", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("approve route resolves the request identifier from the path", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingRequestService{approved: application.Booking{ID: "booking-1", Status: application.BookingScheduled}}
		stats := &stubStatsInvalidator{}
		router := newTestRouter(RouterConfig{
			BookingRequests: NewBookingRequestHandler(service, stats, nil),
		}, admin)

		req := httptest.NewRequest(http.MethodPost, "/booking-requests/request-7/approve", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}
		if len(service.transitioned) != 1 || service.transitioned[0] != "approve:request-7" {
			t.Fatalf("expected approve:request-7, got %v", service.transitioned)
		}
		if stats.calls != 1 {
			t.Fatalf("expected stats invalidation, got %d", stats.calls)
		}
	})

	t.Run("booking status route resolves identifier and target", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingService{}
		router := newTestRouter(RouterConfig{
			Bookings: NewBookingHandler(service, nil, nil),
		}, admin)

		req := httptest.NewRequest(http.MethodPut, "/bookings/booking-3/status", bytes.NewBufferString(`{"status":"confirmed"}`))
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d (%s)", rec.Code, rec.Body.String())
		}
		if len(service.transitions) != 1 || service.transitions[0] != "booking-3:confirmed" {
			t.Fatalf("unexpected transitions %v", service.transitions)
		}
	})

	t.Run("invalid booking transition maps to 409", func(t *testing.T) {
		t.Parallel()

		service := &stubBookingService{transitionErr: application.ErrInvalidTransition}
		router := newTestRouter(RouterConfig{
			Bookings: NewBookingHandler(service, nil, nil),
		}, admin)

		req := httptest.NewRequest(http.MethodPut, "/bookings/booking-3/status", bytes.NewBufferString(`{"status":"scheduled"}`))
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("malformed JSON bodies map to 400", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(RouterConfig{Rooms: NewRoomHandler(&stubRoomService{}, nil)}, admin)

		req := httptest.NewRequest(http.MethodPost, "/rooms", bytes.NewBufferString(`{"number":`))
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
