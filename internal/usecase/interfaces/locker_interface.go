package interfaces

import "context"

// IPaymentLocker serializes concurrent webhook deliveries for the same
// gateway payment id. Acquire returns false when another delivery holds the
// lock. Implementations may degrade to always-acquired when the lock backend
// is unavailable; the conditional approval claim on the Sale row remains the
// authoritative guard against double crediting.

type IPaymentLocker interface {
	Acquire(ctx context.Context, paymentID string) (bool, error)
	Release(ctx context.Context, paymentID string) error
}
