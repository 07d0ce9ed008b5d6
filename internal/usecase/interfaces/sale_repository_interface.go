package interfaces

import (
	"context"
	"time"

	"isa_platform/internal/domain/entities"
)

// SaleUpdate carries a partial update for a Sale row. Nil fields are left
// untouched. Amount fields are deliberately absent: totals are immutable
// after creation.

type SaleUpdate struct {
	Status        *entities.SaleStatus
	PaymentStatus *entities.PaymentStatus

	MPPaymentID    *string
	MPPreferenceID *string

	PixQRCode       *string
	PixQRCodeBase64 *string
	PixCopyPaste    *string
	CheckoutURL     *string
	BoletoURL       *string
	BoletoBarcode   *string

	DeliveryStatus *entities.DeliveryStatus
	PaidAt         *time.Time
	DeliverySentAt *time.Time
}

// ISaleRepository abstracts DynamoDB persistence for Sale.
//
// Reads return the zero value with a nil error when no row matches, following
// the repository convention used across this codebase.

type ISaleRepository interface {
	Create(ctx context.Context, s entities.Sale) (entities.Sale, error)
	GetByID(ctx context.Context, id string) (entities.Sale, error)
	GetByMPPaymentID(ctx context.Context, mpPaymentID string) (entities.Sale, error)
	Update(ctx context.Context, id string, upd SaleUpdate) (entities.Sale, error)

	// ClaimApproval transitions the sale to completed/approved with a
	// conditional expression on payment_status <> approved. It returns false
	// when the condition fails, i.e. a concurrent delivery already claimed
	// the approval; callers must not credit the ledger in that case.
	ClaimApproval(ctx context.Context, id string, paidAt time.Time) (bool, error)
}
