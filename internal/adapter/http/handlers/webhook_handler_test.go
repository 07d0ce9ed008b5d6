package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"isa_platform/internal/adapter/http/handlers/mocks"
	"isa_platform/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newWebhookRouter(uc usecase.IWebhookUseCase) *gin.Engine {
	h := NewWebhookHandler(uc)
	r := gin.New()
	r.POST("/v1/webhooks/mercadopago", h.HandleMercadoPago)
	return r
}

func postWebhook(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_HandleMercadoPago(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago", "{not json")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("v2 body envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, event usecase.WebhookEvent) (usecase.WebhookResult, error) {
				if event.Type != "payment" || event.PaymentID != "12345" {
					t.Fatalf("unexpected event: %+v", event)
				}
				return usecase.WebhookResult{Received: true, Status: "approved"}, nil
			},
		)

		body := `{"type":"payment","action":"payment.updated","data":{"id":12345}}`
		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["received"] != true || resp["status"] != "approved" {
			t.Fatalf("unexpected response: %v", resp)
		}
	})

	t.Run("query string fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, event usecase.WebhookEvent) (usecase.WebhookResult, error) {
				if event.Type != "payment" || event.PaymentID != "987" {
					t.Fatalf("unexpected event: %+v", event)
				}
				return usecase.WebhookResult{Received: true, Status: "approved"}, nil
			},
		)

		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago?topic=payment&id=987", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("sale not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrWebhookSaleNotFound)

		body := `{"type":"payment","data":{"id":"12345"}}`
		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago", body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("gateway validation failure maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrWebhookGatewayValidation)

		body := `{"type":"payment","data":{"id":"12345"}}`
		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("duplicate webhook still acks 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{Received: true, Status: "approved", AlreadyProcessed: true}, nil)

		body := `{"type":"payment","data":{"id":"12345"}}`
		w := postWebhook(newWebhookRouter(uc), "/v1/webhooks/mercadopago", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["already_processed"] != true {
			t.Fatalf("expected already_processed flag, got %v", resp)
		}
	})
}
