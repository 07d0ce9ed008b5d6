package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"isa_platform/internal/usecase/interfaces"
)

// NewRedisClient creates a redis client from environment variables.
//
// Supported env vars:
//   - REDIS_HOST (default: localhost), REDIS_PORT (default: 6379)
//   - REDIS_PASSWORD, REDIS_DB
//
// A nil client is returned when redis is unreachable; callers degrade
// gracefully (no lock serialization, no settings cache).
func NewRedisClient() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache][redis] unavailable, degrading to no cache/lock err=%v", err)
		return nil
	}
	return client
}

// PaymentLock serializes concurrent webhook deliveries for one gateway
// payment id with a SETNX lease. With a nil client every Acquire succeeds;
// the conditional approval claim on the Sale row stays the authoritative
// double-credit guard.

type PaymentLock struct {
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.IPaymentLocker = (*PaymentLock)(nil)

func NewPaymentLock(client *redis.Client) *PaymentLock {
	return &PaymentLock{client: client, ttl: 30 * time.Second}
}

func lockKey(paymentID string) string {
	return fmt.Sprintf("webhook:lock:%s", paymentID)
}

func (l *PaymentLock) Acquire(ctx context.Context, paymentID string) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	ok, err := l.client.SetNX(ctx, lockKey(paymentID), "1", l.ttl).Result()
	if err != nil {
		// Lock backend failure must not block reconciliation.
		log.Printf("[cache][lock] acquire failed payment_id=%s err=%v", paymentID, err)
		return true, nil
	}
	return ok, nil
}

func (l *PaymentLock) Release(ctx context.Context, paymentID string) error {
	if l.client == nil {
		return nil
	}
	return l.client.Del(ctx, lockKey(paymentID)).Err()
}
