package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"isa_platform/internal/adapter/http/handlers/mocks"
	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validCheckoutBody = `{
	"matricula": "mat-123",
	"customer_phone": "5511999990000",
	"customer_name": "Maria Silva",
	"items": [{"product_id": "prod-1", "name": "Curso", "quantity": 1, "unit_price": 100}],
	"payment_method": "pix"
}`

func newCheckoutRouter(uc usecase.ICheckoutUseCase) *gin.Engine {
	h := NewCheckoutHandler(uc)
	r := gin.New()
	r.POST("/v1/checkout", h.CreateCheckout)
	return r
}

func postCheckout(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_CreateCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("malformed payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		w := postCheckout(newCheckoutRouter(uc), `{"matricula":"mat-123"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("seller not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.Sale{}, usecase.ErrSellerNotFound)

		w := postCheckout(newCheckoutRouter(uc), validCheckoutBody)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("gateway rejection returns the sale id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(entities.Sale{ID: "sale-1"}, usecase.ErrGatewayRejected)

		w := postCheckout(newCheckoutRouter(uc), validCheckoutBody)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["sale_id"] != "sale-1" {
			t.Fatalf("expected sale_id in body, got %v", body)
		}
	})

	t.Run("pix success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, input usecase.CheckoutInput) (entities.Sale, error) {
				if input.SellerPublicID != "mat-123" || input.PaymentMethod != entities.PaymentMethodPix {
					t.Fatalf("unexpected input: %+v", input)
				}
				if len(input.Items) != 1 || input.Items[0].UnitPrice != 100 {
					t.Fatalf("unexpected items: %+v", input.Items)
				}
				return entities.Sale{
					ID:            "sale-1",
					MPPaymentID:   "mp-1",
					PaymentMethod: entities.PaymentMethodPix,
					Total:         100,
					PixQRCode:     "qr-data",
					PixCopyPaste:  "qr-data",
				}, nil
			},
		)

		w := postCheckout(newCheckoutRouter(uc), validCheckoutBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["success"] != true || body["sale_id"] != "sale-1" || body["payment_id"] != "mp-1" {
			t.Fatalf("unexpected body: %v", body)
		}
		payment, _ := body["payment"].(map[string]any)
		if payment["pix_copy_paste"] != "qr-data" {
			t.Fatalf("expected pix copy paste in payment block, got %v", payment)
		}
	})

	t.Run("legacy price field is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)

		uc.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, input usecase.CheckoutInput) (entities.Sale, error) {
				if input.Items[0].UnitPrice != 59.9 {
					t.Fatalf("expected price fallback, got %+v", input.Items[0])
				}
				return entities.Sale{ID: "sale-1", PaymentMethod: entities.PaymentMethodPix}, nil
			},
		)

		body := `{"matricula":"mat-123","customer_phone":"5511999990000","items":[{"product_id":"prod-1","price":59.9}]}`
		w := postCheckout(newCheckoutRouter(uc), body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
