package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/pousada-manager/internal/application"
	"github.com/example/pousada-manager/internal/cache"
	"github.com/example/pousada-manager/internal/config"
	httptransport "github.com/example/pousada-manager/internal/http"
	"github.com/example/pousada-manager/internal/jobs"
	"github.com/example/pousada-manager/internal/persistence"
	"github.com/example/pousada-manager/internal/persistence/sqlite"
	"github.com/example/pousada-manager/internal/persistence/sqlite/migration"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(migration.DefaultSQLiteConfig(cfg.SQLiteDSN))
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	statsCache := cache.New(cache.Config{
		Backend:    cfg.CacheBackend,
		DefaultTTL: cfg.StatsCacheTTL,
		MaxEntries: 1024,
		Redis: cache.RedisOptions{
			URI:       cfg.RedisURI,
			Addr:      cfg.RedisAddr,
			KeyPrefix: "pousada",
		},
	}, logger)
	defer func() {
		if cerr := statsCache.Close(); cerr != nil {
			logger.Error("failed to close cache", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	tokenGenerator := uuid.NewString
	now := time.Now

	sessionRepo := sqlite.NewSessionRepository(pool)
	userRepo := newUserRepositoryAdapter(sqlite.NewUserRepository(pool))
	roomRepo := newRoomRepositoryAdapter(sqlite.NewRoomRepository(pool))
	requestRepo := newBookingRequestRepositoryAdapter(sqlite.NewBookingRequestRepository(pool))
	bookingRepo := newBookingRepositoryAdapter(sqlite.NewBookingRepository(pool))
	menuRepo := newMenuRepositoryAdapter(sqlite.NewMenuRepository(pool))
	orderRepo := newOrderRepositoryAdapter(sqlite.NewOrderRepository(pool))
	credentialStore := newCredentialStoreAdapter(sqlite.NewUserRepository(pool))
	sessions := newSessionRepositoryAdapter(sessionRepo)

	hasher := func(password string) (string, error) {
		return application.CreatePasswordHash(password, application.DefaultArgon2idParams)
	}

	authService := application.NewAuthServiceWithLogger(credentialStore, sessions, application.VerifyPassword, tokenGenerator, now, cfg.SessionTTL, logger)
	userService := application.NewUserService(userRepo, hasher, idGenerator, now)
	roomService := application.NewRoomServiceWithLogger(roomRepo, idGenerator, now, logger)
	bookingService := application.NewBookingServiceWithLogger(requestRepo, bookingRepo, roomRepo, idGenerator, now, logger)
	calendarService := application.NewCalendarServiceWithLogger(roomRepo, bookingRepo, requestRepo, now, logger)
	menuService := application.NewMenuServiceWithLogger(menuRepo, orderRepo, roomRepo, bookingRepo, idGenerator, now, logger)
	guestService := application.NewGuestServiceWithLogger(bookingRepo, logger)
	statsService := application.NewStatsServiceWithLogger(roomRepo, bookingRepo, requestRepo, statsCache, cfg.StatsCacheTTL, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:            httptransport.NewAuthHandler(authService, logger),
		Rooms:           httptransport.NewRoomHandler(roomService, logger),
		BookingRequests: httptransport.NewBookingRequestHandler(bookingService, statsService, logger),
		Bookings:        httptransport.NewBookingHandler(bookingService, statsService, logger),
		Calendar:        httptransport.NewCalendarHandler(calendarService, logger),
		Menu:            httptransport.NewMenuHandler(menuService, logger),
		Guests:          httptransport.NewGuestHandler(guestService, logger),
		Stats:           httptransport.NewStatsHandler(statsService, logger),
		Users:           httptransport.NewUserHandler(userService, logger),
		RequireSession:  httptransport.RequireSession(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	if cfg.JobsEnabled {
		scheduler, err := jobs.NewScheduler(jobs.SchedulerConfig{
			Sessions: sessionRepo,
			Requests: requestRepo,
			Now:      now,
			Logger:   logger,
		})
		if err != nil {
			logger.Error("failed to build background scheduler", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("pousada API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type userRepositoryAdapter struct {
	repo persistence.UserRepository
}

func newUserRepositoryAdapter(repo persistence.UserRepository) *userRepositoryAdapter {
	return &userRepositoryAdapter{repo: repo}
}

func (a *userRepositoryAdapter) CreateUser(ctx context.Context, user application.User, passwordHash string) (application.User, error) {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(user, passwordHash)); err != nil {
		return application.User{}, err
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) UpdateUser(ctx context.Context, user application.User, passwordHash string) (application.User, error) {
	if passwordHash == "" {
		current, err := a.repo.GetUser(ctx, user.ID)
		if err != nil {
			return application.User{}, err
		}
		passwordHash = current.PasswordHash
	}
	if err := a.repo.UpdateUser(ctx, toPersistenceUser(user, passwordHash)); err != nil {
		return application.User{}, err
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userRepositoryAdapter) DeleteUser(ctx context.Context, id string) error {
	return a.repo.DeleteUser(ctx, id)
}

func (a *userRepositoryAdapter) ListUsers(ctx context.Context) ([]application.User, error) {
	models, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]application.User, 0, len(models))
	for _, model := range models {
		users = append(users, toApplicationUser(model))
	}
	return users, nil
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, err
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
		Disabled:     stored.Disabled,
	}, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) UpdateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.UpdateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return a.repo.DeleteExpiredSessions(ctx, reference)
}

type roomRepositoryAdapter struct {
	repo persistence.RoomRepository
}

func newRoomRepositoryAdapter(repo persistence.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoomByNumber(ctx context.Context, number string) (application.Room, error) {
	stored, err := a.repo.GetRoomByNumber(ctx, number)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

type bookingRequestRepositoryAdapter struct {
	repo persistence.BookingRequestRepository
}

func newBookingRequestRepositoryAdapter(repo persistence.BookingRequestRepository) *bookingRequestRepositoryAdapter {
	return &bookingRequestRepositoryAdapter{repo: repo}
}

func (a *bookingRequestRepositoryAdapter) CreateBookingRequest(ctx context.Context, request application.BookingRequest) (application.BookingRequest, error) {
	if err := a.repo.CreateBookingRequest(ctx, toPersistenceBookingRequest(request)); err != nil {
		return application.BookingRequest{}, err
	}
	stored, err := a.repo.GetBookingRequest(ctx, request.ID)
	if err != nil {
		return application.BookingRequest{}, err
	}
	return toApplicationBookingRequest(stored), nil
}

func (a *bookingRequestRepositoryAdapter) GetBookingRequest(ctx context.Context, id string) (application.BookingRequest, error) {
	stored, err := a.repo.GetBookingRequest(ctx, id)
	if err != nil {
		return application.BookingRequest{}, err
	}
	return toApplicationBookingRequest(stored), nil
}

func (a *bookingRequestRepositoryAdapter) UpdateBookingRequestStatus(ctx context.Context, id string, status application.RequestStatus, updatedAt time.Time) error {
	return a.repo.UpdateBookingRequestStatus(ctx, id, string(status), updatedAt)
}

func (a *bookingRequestRepositoryAdapter) ListBookingRequests(ctx context.Context) ([]application.BookingRequest, error) {
	models, err := a.repo.ListBookingRequests(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationBookingRequests(models), nil
}

func (a *bookingRequestRepositoryAdapter) ListBookingRequestsByStatus(ctx context.Context, status application.RequestStatus) ([]application.BookingRequest, error) {
	models, err := a.repo.ListBookingRequestsByStatus(ctx, string(status))
	if err != nil {
		return nil, err
	}
	return toApplicationBookingRequests(models), nil
}

func (a *bookingRequestRepositoryAdapter) DeleteBookingRequest(ctx context.Context, id string) error {
	return a.repo.DeleteBookingRequest(ctx, id)
}

type bookingRepositoryAdapter struct {
	repo persistence.BookingRepository
}

func newBookingRepositoryAdapter(repo persistence.BookingRepository) *bookingRepositoryAdapter {
	return &bookingRepositoryAdapter{repo: repo}
}

func (a *bookingRepositoryAdapter) CreateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	if err := a.repo.CreateBooking(ctx, toPersistenceBooking(booking)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) GetBooking(ctx context.Context, id string) (application.Booking, error) {
	stored, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) UpdateBookingStatus(ctx context.Context, id string, status application.BookingStatus, updatedAt time.Time) error {
	return a.repo.UpdateBookingStatus(ctx, id, string(status), updatedAt)
}

func (a *bookingRepositoryAdapter) ListBookings(ctx context.Context, roomID string, statuses []application.BookingStatus) ([]application.Booking, error) {
	filter := persistence.BookingFilter{RoomID: roomID}
	for _, status := range statuses {
		filter.Statuses = append(filter.Statuses, string(status))
	}
	models, err := a.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toApplicationBookings(models), nil
}

func (a *bookingRepositoryAdapter) ListBookingsByGuestEmail(ctx context.Context, email string) ([]application.Booking, error) {
	models, err := a.repo.ListBookingsByGuestEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toApplicationBookings(models), nil
}

type menuRepositoryAdapter struct {
	repo persistence.MenuRepository
}

func newMenuRepositoryAdapter(repo persistence.MenuRepository) *menuRepositoryAdapter {
	return &menuRepositoryAdapter{repo: repo}
}

func (a *menuRepositoryAdapter) CreateMenuItem(ctx context.Context, item application.MenuItem) (application.MenuItem, error) {
	if err := a.repo.CreateMenuItem(ctx, toPersistenceMenuItem(item)); err != nil {
		return application.MenuItem{}, err
	}
	stored, err := a.repo.GetMenuItem(ctx, item.ID)
	if err != nil {
		return application.MenuItem{}, err
	}
	return toApplicationMenuItem(stored), nil
}

func (a *menuRepositoryAdapter) UpdateMenuItem(ctx context.Context, item application.MenuItem) (application.MenuItem, error) {
	if err := a.repo.UpdateMenuItem(ctx, toPersistenceMenuItem(item)); err != nil {
		return application.MenuItem{}, err
	}
	stored, err := a.repo.GetMenuItem(ctx, item.ID)
	if err != nil {
		return application.MenuItem{}, err
	}
	return toApplicationMenuItem(stored), nil
}

func (a *menuRepositoryAdapter) GetMenuItem(ctx context.Context, id string) (application.MenuItem, error) {
	stored, err := a.repo.GetMenuItem(ctx, id)
	if err != nil {
		return application.MenuItem{}, err
	}
	return toApplicationMenuItem(stored), nil
}

func (a *menuRepositoryAdapter) ListMenuItems(ctx context.Context, activeOnly bool) ([]application.MenuItem, error) {
	models, err := a.repo.ListMenuItems(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]application.MenuItem, 0, len(models))
	for _, model := range models {
		items = append(items, toApplicationMenuItem(model))
	}
	return items, nil
}

type orderRepositoryAdapter struct {
	repo persistence.OrderRepository
}

func newOrderRepositoryAdapter(repo persistence.OrderRepository) *orderRepositoryAdapter {
	return &orderRepositoryAdapter{repo: repo}
}

func (a *orderRepositoryAdapter) CreateOrder(ctx context.Context, order application.Order) (application.Order, error) {
	if err := a.repo.CreateOrder(ctx, toPersistenceOrder(order)); err != nil {
		return application.Order{}, err
	}
	stored, err := a.repo.GetOrder(ctx, order.ID)
	if err != nil {
		return application.Order{}, err
	}
	return toApplicationOrder(stored), nil
}

func (a *orderRepositoryAdapter) GetOrder(ctx context.Context, id string) (application.Order, error) {
	stored, err := a.repo.GetOrder(ctx, id)
	if err != nil {
		return application.Order{}, err
	}
	return toApplicationOrder(stored), nil
}

func (a *orderRepositoryAdapter) UpdateOrderStatus(ctx context.Context, id string, status application.OrderStatus, updatedAt time.Time) error {
	return a.repo.UpdateOrderStatus(ctx, id, string(status), updatedAt)
}

func (a *orderRepositoryAdapter) ListOrders(ctx context.Context) ([]application.Order, error) {
	models, err := a.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]application.Order, 0, len(models))
	for _, model := range models {
		orders = append(orders, toApplicationOrder(model))
	}
	return orders, nil
}

func toPersistenceUser(user application.User, passwordHash string) persistence.User {
	return persistence.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		Address:      user.Address,
		BirthDate:    user.BirthDate,
		PasswordHash: passwordHash,
		IsAdmin:      user.IsAdmin,
		Disabled:     user.Disabled,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toApplicationUser(user persistence.User) application.User {
	return application.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Address:   user.Address,
		BirthDate: user.BirthDate,
		IsAdmin:   user.IsAdmin,
		Disabled:  user.Disabled,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:          session.ID,
		UserID:      session.UserID,
		Token:       session.Token,
		Fingerprint: session.Fingerprint,
		ExpiresAt:   session.ExpiresAt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
		RevokedAt:   session.RevokedAt,
	}
}

func toApplicationSession(session persistence.Session) application.Session {
	return application.Session{
		ID:          session.ID,
		UserID:      session.UserID,
		Token:       session.Token,
		Fingerprint: session.Fingerprint,
		ExpiresAt:   session.ExpiresAt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
		RevokedAt:   session.RevokedAt,
	}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:        room.ID,
		Number:    room.Number,
		Category:  room.Category,
		DailyRate: room.DailyRate,
		Features:  room.Features,
		Notes:     room.Notes,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func toApplicationRoom(room persistence.Room) application.Room {
	return application.Room{
		ID:        room.ID,
		Number:    room.Number,
		Category:  room.Category,
		DailyRate: room.DailyRate,
		Features:  room.Features,
		Notes:     room.Notes,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func toPersistenceBookingRequest(request application.BookingRequest) persistence.BookingRequest {
	return persistence.BookingRequest{
		ID:         request.ID,
		RoomID:     request.RoomID,
		GuestName:  request.GuestName,
		GuestEmail: request.GuestEmail,
		GuestPhone: request.GuestPhone,
		CheckIn:    request.CheckIn,
		CheckOut:   request.CheckOut,
		Status:     string(request.Status),
		Notes:      request.Notes,
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}
}

func toApplicationBookingRequest(request persistence.BookingRequest) application.BookingRequest {
	return application.BookingRequest{
		ID:         request.ID,
		RoomID:     request.RoomID,
		GuestName:  request.GuestName,
		GuestEmail: request.GuestEmail,
		GuestPhone: request.GuestPhone,
		CheckIn:    request.CheckIn,
		CheckOut:   request.CheckOut,
		Status:     application.RequestStatus(request.Status),
		Notes:      request.Notes,
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}
}

func toApplicationBookingRequests(models []persistence.BookingRequest) []application.BookingRequest {
	requests := make([]application.BookingRequest, 0, len(models))
	for _, model := range models {
		requests = append(requests, toApplicationBookingRequest(model))
	}
	return requests
}

func toPersistenceBooking(booking application.Booking) persistence.Booking {
	return persistence.Booking{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		RequestID:   booking.RequestID,
		GuestName:   booking.GuestName,
		GuestEmail:  booking.GuestEmail,
		GuestPhone:  booking.GuestPhone,
		CheckIn:     booking.CheckIn,
		CheckOut:    booking.CheckOut,
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}

func toApplicationBooking(booking persistence.Booking) application.Booking {
	return application.Booking{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		RequestID:   booking.RequestID,
		GuestName:   booking.GuestName,
		GuestEmail:  booking.GuestEmail,
		GuestPhone:  booking.GuestPhone,
		CheckIn:     booking.CheckIn,
		CheckOut:    booking.CheckOut,
		Status:      application.BookingStatus(booking.Status),
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}

func toApplicationBookings(models []persistence.Booking) []application.Booking {
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings
}

func toPersistenceMenuItem(item application.MenuItem) persistence.MenuItem {
	return persistence.MenuItem{
		ID:        item.ID,
		Name:      item.Name,
		Category:  string(item.Category),
		Price:     item.Price,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toApplicationMenuItem(item persistence.MenuItem) application.MenuItem {
	return application.MenuItem{
		ID:        item.ID,
		Name:      item.Name,
		Category:  application.MenuCategory(item.Category),
		Price:     item.Price,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toPersistenceOrder(order application.Order) persistence.Order {
	items := make([]persistence.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, persistence.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	return persistence.Order{
		ID:         order.ID,
		Items:      items,
		Total:      order.Total,
		Status:     string(order.Status),
		RoomNumber: order.RoomNumber,
		GuestName:  order.GuestName,
		CreatedBy:  order.CreatedBy,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func toApplicationOrder(order persistence.Order) application.Order {
	items := make([]application.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, application.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	return application.Order{
		ID:         order.ID,
		Items:      items,
		Total:      order.Total,
		Status:     application.OrderStatus(order.Status),
		RoomNumber: order.RoomNumber,
		GuestName:  order.GuestName,
		CreatedBy:  order.CreatedBy,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
