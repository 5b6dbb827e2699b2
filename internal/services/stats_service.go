package services

import (
	"context"
	"log"
	"time"

	"staymart/internal/caching"
	"staymart/internal/models"
	"staymart/internal/repositories"

	"golang.org/x/sync/errgroup"
)

const statsTTL = 5 * time.Minute

// StatsService aggregates the counts shown on the admin dashboard. The
// result is all-or-nothing: if any count fails, no partial stats are
// returned.
type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
	Refresh(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	users    repositories.UserRepository
	places   repositories.PlaceRepository
	bookings repositories.BookingRepository
	cache    caching.CacheService
}

func NewStatsService(users repositories.UserRepository, places repositories.PlaceRepository,
	bookings repositories.BookingRepository, cache caching.CacheService) StatsService {
	return &statsService{users: users, places: places, bookings: bookings, cache: cache}
}

func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	cached, err := s.cache.GetStats(ctx)
	if err != nil {
		log.Printf("WARN: stats cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh runs the three counts concurrently and rewrites the cached
// document.
func (s *statsService) Refresh(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(gctx)
		stats.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.places.Count(gctx)
		stats.TotalPlaces = n
		return err
	})
	g.Go(func() error {
		n, err := s.bookings.Count(gctx)
		stats.TotalBookings = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.cache.SetStats(ctx, stats, statsTTL); err != nil {
		log.Printf("WARN: stats cache write failed: %v", err)
	}
	return stats, nil
}
