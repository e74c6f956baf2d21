// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/domain/entity"
)

const planCacheKeyPrefix = "budget_plan:"

// CachedBudgetPlanRepository decorates a BudgetPlanRepository with a redis
// read-through cache. Cache failures are logged and fall through to the
// underlying repository; the cache is never authoritative.
type CachedBudgetPlanRepository struct {
	inner adapter.BudgetPlanRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedBudgetPlanRepository creates a cached repository with the given TTL.
func NewCachedBudgetPlanRepository(inner adapter.BudgetPlanRepository, redisClient *redis.Client, ttl time.Duration) *CachedBudgetPlanRepository {
	return &CachedBudgetPlanRepository{
		inner: inner,
		redis: redisClient,
		ttl:   ttl,
	}
}

// FindByReferenceID serves the plan from cache when present, otherwise loads
// it from the underlying repository and caches the result.
func (r *CachedBudgetPlanRepository) FindByReferenceID(ctx context.Context, referenceID string) (*entity.BudgetPlan, error) {
	key := planCacheKeyPrefix + referenceID

	cached, err := r.redis.Get(ctx, key).Bytes()
	if err == nil {
		var plan entity.BudgetPlan
		if err := json.Unmarshal(cached, &plan); err == nil {
			return &plan, nil
		}
		// Corrupt entry, drop it and reload from the source.
		r.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Plan cache read failed", "reference_id", referenceID, "error", err)
	}

	plan, err := r.inner.FindByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(plan); err == nil {
		if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			slog.Warn("Plan cache write failed", "reference_id", referenceID, "error", err)
		}
	}

	return plan, nil
}

// Upsert writes through to the underlying repository and invalidates the cache.
func (r *CachedBudgetPlanRepository) Upsert(ctx context.Context, plan *entity.BudgetPlan) error {
	if err := r.inner.Upsert(ctx, plan); err != nil {
		return err
	}

	if err := r.redis.Del(ctx, planCacheKeyPrefix+plan.ReferenceID).Err(); err != nil {
		slog.Warn("Plan cache invalidation failed", "reference_id", plan.ReferenceID, "error", err)
	}

	return nil
}

// Delete removes the plan from the underlying repository and the cache.
func (r *CachedBudgetPlanRepository) Delete(ctx context.Context, referenceID string) error {
	if err := r.inner.Delete(ctx, referenceID); err != nil {
		return err
	}

	if err := r.redis.Del(ctx, planCacheKeyPrefix+referenceID).Err(); err != nil {
		slog.Warn("Plan cache invalidation failed", "reference_id", referenceID, "error", err)
	}

	return nil
}
