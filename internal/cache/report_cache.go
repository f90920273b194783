package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stocklane/warehouse-api/internal/config"
	"github.com/stocklane/warehouse-api/internal/domain"
)

const reorderReportKey = "reorder:report"

// ReportCache caches the full reorder report between product mutations.
type ReportCache interface {
	GetReport(ctx context.Context) (*domain.ReorderReport, bool, error)
	SetReport(ctx context.Context, report *domain.ReorderReport) error
	Invalidate(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context) (*domain.ReorderReport, bool, error) {
	payload, err := c.client.Get(ctx, reorderReportKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.ReorderReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode reorder report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, report *domain.ReorderReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode reorder report cache: %w", err)
	}

	if err := c.client.Set(ctx, reorderReportKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, reorderReportKey).Err()
}

func (n *noopReportCache) GetReport(ctx context.Context) (*domain.ReorderReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, report *domain.ReorderReport) error {
	return nil
}

func (n *noopReportCache) Invalidate(ctx context.Context) error {
	return nil
}
