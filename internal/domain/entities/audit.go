package entities

import (
	"encoding/json"
	"time"
)

// Payment log event types recorded by the core flows.
const (
	PaymentLogPixCreated       = "pix_created_success"
	PaymentLogPixFailed        = "pix_created_failed"
	PaymentLogBoletoCreated    = "boleto_created_success"
	PaymentLogCheckoutCreated  = "checkout_preference_created"
	PaymentLogCreateFailed     = "payment_created_failed"
	PaymentLogWebhookReceived  = "payment_webhook_received"
	PaymentLogApproved         = "payment_approved"
	PaymentLogDuplicateWebhook = "duplicate_webhook"
	PaymentLogUnhandledStatus  = "unhandled_status"
)

// PaymentLog is the append-only audit record of every payment event, keyed by
// payment_id + event_type. Rows are never mutated.
//
// PayloadRaw keeps the validated gateway payload (JSON) for traceability; we
// persist raw bytes because gateway schemas vary across integrations.

type PaymentLog struct {
	ID         string          `json:"id"`
	PaymentID  string          `json:"payment_id"`
	SaleID     string          `json:"sale_id,omitempty"`
	EventType  string          `json:"event_type"`
	PayloadRaw json.RawMessage `json:"payload_raw,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Antifraud reasons recorded by the webhook reconciler.
const (
	AntifraudInvalidValidation = "invalid_gateway_validation"
	AntifraudDuplicatePayment  = "duplicate_payment_reference"
)

// AntifraudLog records a suspicious webhook condition. Detection only: the
// request is rejected, not the seller/customer.

type AntifraudLog struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	Reason    string    `json:"reason"`
	Detail    string    `json:"detail,omitempty"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
}
