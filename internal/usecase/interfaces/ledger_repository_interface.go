package interfaces

import (
	"context"

	"isa_platform/internal/domain/entities"
)

// ISellerBalanceRepository abstracts the per-seller ledger row.
//
// Credit must be atomic at the store level (single ADD update): concurrent
// webhook deliveries may race and the read-modify-write of the balance cannot
// be split across calls. A missing row is created at zero and incremented in
// the same write.

type ISellerBalanceRepository interface {
	Get(ctx context.Context, sellerID string) (entities.SellerBalance, error)
	Credit(ctx context.Context, sellerID string, amount float64) (entities.SellerBalance, error)
}

// IPlatformCommissionRepository abstracts the append-only commission ledger.

type IPlatformCommissionRepository interface {
	Create(ctx context.Context, c entities.PlatformCommission) (entities.PlatformCommission, error)
	ListBySaleID(ctx context.Context, saleID string) ([]entities.PlatformCommission, error)
}
