package interfaces

import (
	"context"

	"isa_platform/internal/domain/entities"
)

// IPaymentLogRepository abstracts the append-only payment audit trail.
// Append failures are logged by callers but never abort the owning flow:
// the audit trail is an observer of state, not a gate.

type IPaymentLogRepository interface {
	Append(ctx context.Context, l entities.PaymentLog) error
	ListByPaymentID(ctx context.Context, paymentID string) ([]entities.PaymentLog, error)
}

// IAntifraudLogRepository abstracts the append-only antifraud record.

type IAntifraudLogRepository interface {
	Append(ctx context.Context, l entities.AntifraudLog) error
}
