package restaurantRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dinebot/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedRestaurantRepo wraps a RestaurantRepository with a Redis
// read-through cache on FilterAdvanced. Search results change rarely
// and the webhook flows hit the same cuisine/area pairs over and over.
// All other methods pass straight through.
type CachedRestaurantRepo struct {
	RestaurantRepository
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// NewCachedRestaurantRepo decorates repo with a FilterAdvanced cache.
func NewCachedRestaurantRepo(repo RestaurantRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRestaurantRepo {
	return &CachedRestaurantRepo{
		RestaurantRepository: repo,
		Cache:                cache,
		TTL:                  ttl,
		Logger:               logger,
	}
}

func filterCacheKey(filter models.RestaurantFilter) string {
	parts := []string{
		"restaurants:filter",
		strings.ToLower(strings.TrimSpace(filter.Cuisine)),
		strings.ToLower(strings.TrimSpace(filter.Area)),
	}
	if filter.MinRating != nil {
		parts = append(parts, fmt.Sprintf("minr=%.1f", *filter.MinRating))
	}
	if filter.MaxCost != nil {
		parts = append(parts, fmt.Sprintf("maxc=%.0f", *filter.MaxCost))
	}
	if filter.VegOnly {
		parts = append(parts, "veg")
	}
	if filter.DineInOnly {
		parts = append(parts, "dinein")
	}
	if filter.HomeDelivery {
		parts = append(parts, "delivery")
	}
	return strings.Join(parts, ":")
}

// FilterAdvanced serves cached results when present, otherwise queries
// the wrapped repository and stores the outcome. Cache failures are
// logged and ignored; the database remains the source of truth.
func (r *CachedRestaurantRepo) FilterAdvanced(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, error) {
	key := filterCacheKey(filter)

	if data, err := r.Cache.Get(ctx, key).Result(); err == nil {
		var cached []models.Restaurant
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return cached, nil
		}
		r.Logger.Warn("Discarding unreadable cached search result", zap.String("key", key))
	}

	list, err := r.RestaurantRepository.FilterAdvanced(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(list); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL).Err(); err != nil {
			r.Logger.Warn("Failed to cache search result", zap.String("key", key), zap.Error(err))
		}
	}
	return list, nil
}
