package caching

import (
	"context"
	"encoding/json"
	"time"

	"staymart/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	activePlacesKey = "staymart:places:active"
	statsKey        = "staymart:admin:stats"
)

// CacheService fronts the hot read paths: the public active-listing feed and
// the admin stats document. A nil, nil return means cache miss.
type CacheService interface {
	GetActivePlaces(ctx context.Context) ([]*models.Place, error)
	SetActivePlaces(ctx context.Context, places []*models.Place, ttl time.Duration) error
	InvalidateActivePlaces(ctx context.Context) error

	GetStats(ctx context.Context) (*models.Stats, error)
	SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error
	InvalidateStats(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetActivePlaces(ctx context.Context) ([]*models.Place, error) {
	data, err := r.client.Get(ctx, activePlacesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var places []*models.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *redisCacheService) SetActivePlaces(ctx context.Context, places []*models.Place, ttl time.Duration) error {
	data, err := json.Marshal(places)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, activePlacesKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateActivePlaces(ctx context.Context) error {
	return r.client.Del(ctx, activePlacesKey).Err()
}

func (r *redisCacheService) GetStats(ctx context.Context) (*models.Stats, error) {
	data, err := r.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, statsKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateStats(ctx context.Context) error {
	return r.client.Del(ctx, statsKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
