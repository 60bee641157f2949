// Package jobs runs periodic housekeeping tasks for the pousada service.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/pousada-manager/internal/application"
	"github.com/example/pousada-manager/internal/availability"
)

// SessionPruner removes sessions that expired before the reference time.
type SessionPruner interface {
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// RequestExpirer lists and transitions booking requests so proposals whose
// check-in date has passed do not linger in the staff queue.
type RequestExpirer interface {
	ListBookingRequestsByStatus(ctx context.Context, status application.RequestStatus) ([]application.BookingRequest, error)
	UpdateBookingRequestStatus(ctx context.Context, id string, status application.RequestStatus, updatedAt time.Time) error
}

// SchedulerConfig wires the collaborators for the background scheduler.
type SchedulerConfig struct {
	Sessions SessionPruner
	Requests RequestExpirer
	// SessionPruneSpec and RequestExpirySpec are cron specs; empty values
	// fall back to hourly and daily runs respectively.
	SessionPruneSpec  string
	RequestExpirySpec string
	Now               func() time.Time
	Logger            *slog.Logger
}

// Scheduler owns the cron runner and its registered housekeeping jobs.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionPruner
	requests RequestExpirer
	now      func() time.Time
	logger   *slog.Logger
}

// NewScheduler registers the housekeeping jobs without starting them.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Scheduler{
		cron:     cron.New(),
		sessions: cfg.Sessions,
		requests: cfg.Requests,
		now:      now,
		logger:   logger,
	}

	if s.sessions != nil {
		spec := cfg.SessionPruneSpec
		if spec == "" {
			spec = "@every 1h"
		}
		if _, err := s.cron.AddFunc(spec, func() {
			s.PruneSessions(context.Background())
		}); err != nil {
			return nil, fmt.Errorf("failed to register session pruning job: %w", err)
		}
	}

	if s.requests != nil {
		spec := cfg.RequestExpirySpec
		if spec == "" {
			spec = "@daily"
		}
		if _, err := s.cron.AddFunc(spec, func() {
			s.ExpireStaleRequests(context.Background())
		}); err != nil {
			return nil, fmt.Errorf("failed to register request expiry job: %w", err)
		}
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("background scheduler started")
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("background scheduler stopped")
}

// PruneSessions deletes sessions that expired before the current time.
func (s *Scheduler) PruneSessions(ctx context.Context) {
	if s == nil || s.sessions == nil {
		return
	}

	reference := s.now()
	if err := s.sessions.DeleteExpiredSessions(ctx, reference); err != nil {
		s.logger.ErrorContext(ctx, "failed to prune expired sessions", "error", err)
		return
	}
	s.logger.DebugContext(ctx, "pruned expired sessions", "reference", reference)
}

// ExpireStaleRequests rejects pending booking requests whose check-in date
// already passed, so staff never approve a stay that can no longer happen.
func (s *Scheduler) ExpireStaleRequests(ctx context.Context) {
	if s == nil || s.requests == nil {
		return
	}

	pending, err := s.requests.ListBookingRequestsByStatus(ctx, application.RequestPending)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list pending booking requests", "error", err)
		return
	}

	now := s.now()
	today := availability.DateOnly(now)
	expired := 0
	for _, request := range pending {
		if !availability.DateOnly(request.CheckIn).Before(today) {
			continue
		}
		if err := s.requests.UpdateBookingRequestStatus(ctx, request.ID, application.RequestRejected, now); err != nil {
			s.logger.ErrorContext(ctx, "failed to expire booking request", "request_id", request.ID, "error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.InfoContext(ctx, "expired stale booking requests", "count", expired)
	}
}
