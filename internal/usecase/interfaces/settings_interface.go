package interfaces

import "context"

// IPlatformSettings exposes platform configuration rows.
//
// CommissionRate returns 0 with a nil error when no commission_rate row
// exists; the checkout usecase applies the documented 10% default and logs
// the fallback loudly.

type IPlatformSettings interface {
	CommissionRate(ctx context.Context) (float64, error)
}
