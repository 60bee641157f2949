package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/pousada-manager/internal/availability"
	"github.com/example/pousada-manager/internal/cache"
)

// MonthlyPoint is one bucket of the six month booking series.
type MonthlyPoint struct {
	Label    string  `json:"label"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// StatsSummary aggregates the numbers shown on the statistics page.
type StatsSummary struct {
	TotalRooms      int            `json:"total_rooms"`
	TotalBookings   int            `json:"total_bookings"`
	PendingRequests int            `json:"pending_requests"`
	TotalRevenue    float64        `json:"total_revenue"`
	OccupancyRate   float64        `json:"occupancy_rate"`
	Monthly         []MonthlyPoint `json:"monthly"`
}

// Short month labels as rendered for Brazilian staff.
var monthLabels = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

const statsCacheKey = "stats:summary"

// StatsService computes occupancy and revenue statistics, memoizing results
// in the shared cache since the numbers only move when bookings do.
type StatsService struct {
	rooms    RoomRepository
	bookings BookingRepository
	requests BookingRequestRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStatsService constructs a stats service with the provided dependencies.
func NewStatsService(rooms RoomRepository, bookings BookingRepository, requests BookingRequestRepository, statsCache cache.Cache, cacheTTL time.Duration, now func() time.Time) *StatsService {
	return NewStatsServiceWithLogger(rooms, bookings, requests, statsCache, cacheTTL, now, nil)
}

// NewStatsServiceWithLogger constructs a stats service with a specified logger.
func NewStatsServiceWithLogger(rooms RoomRepository, bookings BookingRepository, requests BookingRequestRepository, statsCache cache.Cache, cacheTTL time.Duration, now func() time.Time, logger *slog.Logger) *StatsService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &StatsService{
		rooms:    rooms,
		bookings: bookings,
		requests: requests,
		cache:    statsCache,
		cacheTTL: cacheTTL,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

func (s *StatsService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StatsService", operation, attrs...)
}

// Summary returns the statistics page numbers, served from cache when fresh.
func (s *StatsService) Summary(ctx context.Context, principal Principal) (summary StatsSummary, err error) {
	if s == nil {
		err = fmt.Errorf("StatsService is nil")
		return
	}
	if s.rooms == nil || s.bookings == nil {
		err = fmt.Errorf("stats repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "Summary",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute statistics", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "statistics computed")
	}()

	if s.cache != nil {
		if cached, ok, cacheErr := s.cache.Get(ctx, statsCacheKey); cacheErr == nil && ok {
			if jsonErr := json.Unmarshal(cached, &summary); jsonErr == nil {
				logger.DebugContext(ctx, "statistics served from cache")
				return
			}
		}
	}

	summary, err = s.compute(ctx)
	if err != nil {
		return
	}

	if s.cache != nil {
		if encoded, jsonErr := json.Marshal(summary); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, statsCacheKey, encoded, s.cacheTTL); cacheErr != nil {
				logger.WarnContext(ctx, "failed to cache statistics", "error", cacheErr)
			}
		}
	}

	return
}

// Invalidate drops the cached summary. Booking writes call this so the next
// read recomputes.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.loggerWith(ctx, "Invalidate").WarnContext(ctx, "failed to invalidate statistics cache", "error", err)
	}
}

func (s *StatsService) compute(ctx context.Context) (StatsSummary, error) {
	var summary StatsSummary

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return StatsSummary{}, mapRoomRepoError(err)
	}
	summary.TotalRooms = len(rooms)

	bookings, err := s.bookings.ListBookings(ctx, "", nil)
	if err != nil {
		return StatsSummary{}, mapBookingRepoError(err)
	}

	today := availability.DateOnly(s.now())
	occupied := make(map[string]bool)

	for _, booking := range bookings {
		if booking.Status == BookingCancelled {
			continue
		}
		summary.TotalBookings++
		summary.TotalRevenue += booking.TotalAmount

		if booking.Status == BookingConfirmed {
			start := availability.DateOnly(booking.CheckIn)
			end := availability.DateOnly(booking.CheckOut)
			if !today.Before(start) && !today.After(end) {
				occupied[booking.RoomID] = true
			}
		}
	}

	if summary.TotalRooms > 0 {
		summary.OccupancyRate = float64(len(occupied)) / float64(summary.TotalRooms) * 100
	}

	if s.requests != nil {
		pending, err := s.requests.ListBookingRequestsByStatus(ctx, RequestPending)
		if err != nil {
			return StatsSummary{}, mapBookingRepoError(err)
		}
		summary.PendingRequests = len(pending)
	}

	summary.Monthly = monthlySeries(bookings, today)
	return summary, nil
}

// monthlySeries buckets non-cancelled bookings by check-in month over the six
// months ending at the reference date, oldest first.
func monthlySeries(bookings []Booking, reference time.Time) []MonthlyPoint {
	series := make([]MonthlyPoint, 6)
	index := make(map[string]int, 6)

	start := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	for i := 0; i < 6; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format("2006-01")
		series[i] = MonthlyPoint{Label: monthLabels[month.Month()-1]}
		index[key] = i
	}

	for _, booking := range bookings {
		if booking.Status == BookingCancelled {
			continue
		}
		key := booking.CheckIn.Format("2006-01")
		if i, ok := index[key]; ok {
			series[i].Bookings++
			series[i].Revenue += booking.TotalAmount
		}
	}

	return series
}
