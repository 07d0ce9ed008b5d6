package request

import "testing"

func TestWebhookRequest_IsPaymentEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload WebhookRequest
		want    bool
	}{
		{name: "v2 type", payload: WebhookRequest{Type: "payment"}, want: true},
		{name: "v1 topic", payload: WebhookRequest{Topic: "payment"}, want: true},
		{name: "action only", payload: WebhookRequest{Action: "payment.updated"}, want: true},
		{name: "mixed case", payload: WebhookRequest{Type: "Payment"}, want: true},
		{name: "merchant order", payload: WebhookRequest{Topic: "merchant_order"}, want: false},
		{name: "empty", payload: WebhookRequest{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payload.IsPaymentEvent(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWebhookRequest_ResolvePaymentID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{name: "string id", id: " 12345 ", want: "12345"},
		{name: "numeric id", id: float64(123456789012), want: "123456789012"},
		{name: "missing id", id: nil, want: ""},
		{name: "integer-ish", id: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WebhookRequest{Data: WebhookDataRequest{ID: tt.id}}
			if got := r.ResolvePaymentID(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
