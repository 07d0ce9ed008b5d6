package interfaces

import (
	"context"
	"time"
)

// Typed gateway requests. The webhook body and gateway responses are untyped
// JSON on the wire; shapes are validated at the gateway boundary so unknown
// payloads surface as errors instead of zero-valued fields.

// PixPaymentRequest creates an instant PIX charge. CPF is mandatory per
// gateway policy. IdempotencyKey is the sale id, suffixed on retries.
type PixPaymentRequest struct {
	IdempotencyKey    string
	ExternalReference string
	Amount            float64
	Description       string
	PayerEmail        string
	PayerFirstName    string
	PayerCPF          string
	ExpiresAt         time.Time
}

// BoletoPaymentRequest creates a payable-voucher charge.
type BoletoPaymentRequest struct {
	IdempotencyKey    string
	ExternalReference string
	Amount            float64
	Description       string
	PayerEmail        string
	PayerFirstName    string
	PayerCPF          string
}

type PreferenceItem struct {
	ID        string
	Title     string
	Quantity  int
	UnitPrice float64
}

// CheckoutPreferenceRequest creates a hosted checkout for card payments.
// ExcludedPaymentTypes carries gateway payment-type ids (e.g. "credit_card",
// "ticket") the hosted page must not offer.
type CheckoutPreferenceRequest struct {
	ExternalReference    string
	Items                []PreferenceItem
	PayerName            string
	PayerEmail           string
	ExcludedPaymentTypes []string
	SuccessURL           string
	PendingURL           string
	FailureURL           string
}

// GatewayPayment is the validated projection of a gateway payment response.
type GatewayPayment struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
	QRCode            string
	QRCodeBase64      string
	TicketURL         string
	BoletoURL         string
	BoletoBarcode     string
}

// CheckoutPreference is the validated projection of a preference response.
type CheckoutPreference struct {
	ID        string
	InitPoint string
}

// IPaymentGateway abstracts the external payment processor (Mercado Pago).

type IPaymentGateway interface {
	CreatePixPayment(ctx context.Context, req PixPaymentRequest) (GatewayPayment, error)
	CreateBoletoPayment(ctx context.Context, req BoletoPaymentRequest) (GatewayPayment, error)
	CreateCheckoutPreference(ctx context.Context, req CheckoutPreferenceRequest) (CheckoutPreference, error)

	// GetPayment re-fetches a payment by id. The webhook reconciler never
	// trusts the webhook payload; this call is the source of truth.
	GetPayment(ctx context.Context, id string) (GatewayPayment, error)
}
