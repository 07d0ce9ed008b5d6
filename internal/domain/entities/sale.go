package entities

import "time"

// SaleStatus represents the lifecycle of a purchase attempt.
//
// Domain notes:
//   - A sale is created pending by the checkout flow and is mutated afterwards
//     only by the webhook reconciler.
//   - Sales are never deleted; payment_logs keep the audit trail.

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusFailed    SaleStatus = "failed"
)

// PaymentStatus mirrors the gateway's raw payment status string.

type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "pending"
	PaymentStatusApproved        PaymentStatus = "approved"
	PaymentStatusRejected        PaymentStatus = "rejected"
	PaymentStatusCancelled       PaymentStatus = "cancelled"
	PaymentStatusInProcess       PaymentStatus = "in_process"
	PaymentStatusAwaitingPayment PaymentStatus = "awaiting_payment"
	PaymentStatusFailed          PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

// DeliveryStatus tracks the digital-goods fan-out outcome. Empty means the
// dispatcher has not run for this sale yet.

type DeliveryStatus string

const (
	DeliveryStatusNotRequired DeliveryStatus = "not_required"
	DeliveryStatusSent        DeliveryStatus = "sent"
	DeliveryStatusFailed      DeliveryStatus = "failed"
)

// SaleItem is one line of the purchase cart.
type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Sale is one purchase attempt persisted in DynamoDB.
//
// Storage model:
//   - PK: id (caller-generated UUID, doubles as the gateway external_reference
//     and idempotency key)
//   - GSI1 (mp_payment_id-index): mp_payment_id
//
// Monetary invariant: SellerAmount + PlatformFee == Total at creation time.
// Amount fields are immutable once set; only status/derived fields change.

type Sale struct {
	ID            string     `json:"id"`
	SellerID      string     `json:"seller_id"`
	CustomerPhone string     `json:"customer_phone"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	Items         []SaleItem `json:"items"`

	Subtotal     float64 `json:"subtotal"`
	PlatformFee  float64 `json:"platform_fee"`
	SellerAmount float64 `json:"seller_amount"`
	Total        float64 `json:"total"`

	Status        SaleStatus    `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	MPPaymentID    string `json:"mp_payment_id,omitempty"`
	MPPreferenceID string `json:"mp_preference_id,omitempty"`

	PixQRCode       string `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string `json:"pix_qr_code_base64,omitempty"`
	PixCopyPaste    string `json:"pix_copy_paste,omitempty"`
	CheckoutURL     string `json:"checkout_url,omitempty"`
	BoletoURL       string `json:"boleto_url,omitempty"`
	BoletoBarcode   string `json:"boleto_barcode,omitempty"`

	DeliveryStatus DeliveryStatus `json:"delivery_status,omitempty"`

	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	DeliverySentAt *time.Time `json:"delivery_sent_at,omitempty"`
}
