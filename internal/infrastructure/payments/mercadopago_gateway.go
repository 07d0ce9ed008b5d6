package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"isa_platform/internal/usecase/interfaces"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway implements interfaces.IPaymentGateway over the official
// SDK. One instance wraps both the payments API (pix/boleto) and the
// preferences API (hosted card checkout).

type MercadoPagoGateway struct {
	payments    payment.Client
	preferences preference.Client
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:    payment.NewClient(cfg),
		preferences: preference.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreatePixPayment(ctx context.Context, req interfaces.PixPaymentRequest) (interfaces.GatewayPayment, error) {
	if g == nil || g.payments == nil {
		return interfaces.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] pix create start external_reference=%s idempotency_key=%s amount=%.2f",
		req.ExternalReference, req.IdempotencyKey, req.Amount)

	mpReq := payment.Request{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		Metadata:          map[string]any{"idempotency_key": req.IdempotencyKey},
		Payer: &payment.PayerRequest{
			Email:     req.PayerEmail,
			FirstName: req.PayerFirstName,
		},
	}
	if req.PayerCPF != "" {
		mpReq.Payer.Identification = &payment.IdentificationRequest{Type: "CPF", Number: req.PayerCPF}
	}
	if !req.ExpiresAt.IsZero() {
		exp := req.ExpiresAt.UTC()
		mpReq.DateOfExpiration = &exp
	}

	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway] pix create failed external_reference=%s err=%v", req.ExternalReference, err)
		return interfaces.GatewayPayment{}, err
	}
	log.Printf("[payment][gateway] pix create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fromPaymentResponse(resp), nil
}

func (g *MercadoPagoGateway) CreateBoletoPayment(ctx context.Context, req interfaces.BoletoPaymentRequest) (interfaces.GatewayPayment, error) {
	if g == nil || g.payments == nil {
		return interfaces.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] boleto create start external_reference=%s amount=%.2f", req.ExternalReference, req.Amount)

	mpReq := payment.Request{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		PaymentMethodID:   "bolbradesco",
		ExternalReference: req.ExternalReference,
		Metadata:          map[string]any{"idempotency_key": req.IdempotencyKey},
		Payer: &payment.PayerRequest{
			Email:     req.PayerEmail,
			FirstName: req.PayerFirstName,
		},
	}
	if req.PayerCPF != "" {
		mpReq.Payer.Identification = &payment.IdentificationRequest{Type: "CPF", Number: req.PayerCPF}
	}

	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway] boleto create failed external_reference=%s err=%v", req.ExternalReference, err)
		return interfaces.GatewayPayment{}, err
	}
	log.Printf("[payment][gateway] boleto create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fromPaymentResponse(resp), nil
}

func (g *MercadoPagoGateway) CreateCheckoutPreference(ctx context.Context, req interfaces.CheckoutPreferenceRequest) (interfaces.CheckoutPreference, error) {
	if g == nil || g.preferences == nil {
		return interfaces.CheckoutPreference{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] preference create start external_reference=%s items=%d", req.ExternalReference, len(req.Items))

	items := make([]preference.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, preference.ItemRequest{
			ID:        it.ID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	mpReq := preference.Request{
		Items:             items,
		ExternalReference: req.ExternalReference,
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Pending: req.PendingURL,
			Failure: req.FailureURL,
		},
	}
	if len(req.ExcludedPaymentTypes) > 0 {
		excluded := make([]preference.ExcludedPaymentTypeRequest, 0, len(req.ExcludedPaymentTypes))
		for _, id := range req.ExcludedPaymentTypes {
			excluded = append(excluded, preference.ExcludedPaymentTypeRequest{ID: id})
		}
		mpReq.PaymentMethods = &preference.PaymentMethodsRequest{ExcludedPaymentTypes: excluded}
	}

	resp, err := g.preferences.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway] preference create failed external_reference=%s err=%v", req.ExternalReference, err)
		return interfaces.CheckoutPreference{}, err
	}
	log.Printf("[payment][gateway] preference create success preference_id=%s", resp.ID)

	return interfaces.CheckoutPreference{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, id string) (interfaces.GatewayPayment, error) {
	if g == nil || g.payments == nil {
		return interfaces.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	numericID, err := strconv.Atoi(id)
	if err != nil {
		log.Printf("[payment][gateway] get rejected non-numeric payment_id=%q", id)
		return interfaces.GatewayPayment{}, errors.New("invalid gateway payment id")
	}

	resp, err := g.payments.Get(ctx, numericID)
	if err != nil {
		log.Printf("[payment][gateway] get failed payment_id=%s err=%v", id, err)
		return interfaces.GatewayPayment{}, err
	}
	log.Printf("[payment][gateway] get success payment_id=%s provider_status=%s", id, resp.Status)

	return fromPaymentResponse(resp), nil
}

func fromPaymentResponse(resp *payment.Response) interfaces.GatewayPayment {
	gp := interfaces.GatewayPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		QRCode:            resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:      resp.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:         resp.PointOfInteraction.TransactionData.TicketURL,
		BoletoURL:         resp.TransactionDetails.ExternalResourceURL,
	}
	gp.BoletoBarcode = extractBarcode(resp)
	return gp
}

// extractBarcode digs the boleto barcode out of the raw response body. The
// SDK does not type every boleto field and MP schemas vary per integration,
// so we go through the marshaled form instead of struct fields.
func extractBarcode(resp *payment.Response) string {
	b, err := json.Marshal(resp)
	if err != nil {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return ""
	}
	if barcode, ok := m["barcode"].(map[string]any); ok {
		if content, ok := barcode["content"].(string); ok {
			return content
		}
	}
	if details, ok := m["transaction_details"].(map[string]any); ok {
		if line, ok := details["digitable_line"].(string); ok {
			return line
		}
	}
	return ""
}
