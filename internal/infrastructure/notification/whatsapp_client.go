package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"isa_platform/internal/usecase/interfaces"
)

// WhatsAppClient sends messages through the WhatsApp send-message gateway.
//
// Supported env vars:
//   - WHATSAPP_GATEWAY_URL (default: http://localhost:3001)
//   - WHATSAPP_API_TOKEN (optional bearer token)

type WhatsAppClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ interfaces.INotifier = (*WhatsAppClient)(nil)

func NewWhatsAppClient() *WhatsAppClient {
	baseURL := os.Getenv("WHATSAPP_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}

	return &WhatsAppClient{
		baseURL: baseURL,
		token:   os.Getenv("WHATSAPP_API_TOKEN"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (c *WhatsAppClient) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(sendMessageRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/send-message", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	log.Printf("[notification][whatsapp] message sent phone=%s len=%d", phone, len(message))
	return nil
}
