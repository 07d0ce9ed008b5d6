package request

import (
	"fmt"
	"strings"
)

// WebhookRequest is the gateway notification envelope. Mercado Pago varies the
// shape between api_version 1.0 ("topic"/"resource") and v2 ("type"/"action"/
// "data.id"), and data.id arrives either as a string or a number, so the
// payment id goes through a tolerant resolver.
type WebhookRequest struct {
	ID     any                `json:"id"`
	Type   string             `json:"type"`
	Action string             `json:"action"`
	Topic  string             `json:"topic"`
	Data   WebhookDataRequest `json:"data"`
}

type WebhookDataRequest struct {
	ID any `json:"id"`
}

func (r WebhookRequest) IsPaymentEvent() bool {
	if strings.EqualFold(strings.TrimSpace(r.Type), "payment") {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(r.Topic), "payment") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(r.Action)), "payment.")
}

// ResolvePaymentID extracts the gateway payment id from data.id regardless of
// its JSON type. Numbers are rendered without an exponent.
func (r WebhookRequest) ResolvePaymentID() string {
	return normalizeWebhookID(r.Data.ID)
}

func normalizeWebhookID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%.0f", id))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", id))
	}
}
