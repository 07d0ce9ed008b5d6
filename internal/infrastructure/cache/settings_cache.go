package cache

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"isa_platform/internal/usecase/interfaces"
)

const commissionRateKey = "settings:commission_rate"

// SettingsCache fronts the platform settings repository with a short-lived
// redis cache. Commission rate is read on every checkout, so the row is a
// hot key. With a nil client every read falls through to the inner repo.

type SettingsCache struct {
	client *redis.Client
	inner  interfaces.IPlatformSettings
	ttl    time.Duration
}

var _ interfaces.IPlatformSettings = (*SettingsCache)(nil)

func NewSettingsCache(client *redis.Client, inner interfaces.IPlatformSettings) *SettingsCache {
	return &SettingsCache{client: client, inner: inner, ttl: 5 * time.Minute}
}

func (c *SettingsCache) CommissionRate(ctx context.Context) (float64, error) {
	if c.client == nil {
		return c.inner.CommissionRate(ctx)
	}

	cached, err := c.client.Get(ctx, commissionRateKey).Result()
	if err == nil {
		if rate, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return rate, nil
		}
	} else if err != redis.Nil {
		log.Printf("[cache][settings] read failed err=%v", err)
	}

	rate, err := c.inner.CommissionRate(ctx)
	if err != nil {
		return 0, err
	}

	// Cache only configured rates; a missing row (rate 0) must stay visible
	// to the fallback logging in the checkout flow.
	if rate > 0 {
		if err := c.client.Set(ctx, commissionRateKey, strconv.FormatFloat(rate, 'f', -1, 64), c.ttl).Err(); err != nil {
			log.Printf("[cache][settings] write failed err=%v", err)
		}
	}
	return rate, nil
}
