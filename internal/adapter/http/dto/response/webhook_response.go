package response

// WebhookAckResponse is what we echo back to the gateway. Mercado Pago only
// cares about the HTTP status; the body exists for humans reading retries.
type WebhookAckResponse struct {
	Received         bool   `json:"received"`
	Status           string `json:"status,omitempty"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
}
