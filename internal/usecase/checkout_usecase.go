package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCheckoutRequest   = errors.New("invalid checkout request")
	ErrSellerNotFound           = errors.New("seller not found")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrGatewayRejected          = errors.New("payment gateway rejected the request")
	ErrMissingConfiguration     = errors.New("payment gateway not configured")
)

const (
	defaultCommissionPercent = 10.0
	pixCreateMaxAttempts     = 3
	saleExpiryWindow         = 30 * time.Minute
)

// CheckoutItem is one cart line as received from the storefront.
type CheckoutItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
}

// CheckoutInput is the validated-enough shape the handler hands over. Total is
// optional; when zero it is derived from the items.
type CheckoutInput struct {
	SellerPublicID string
	CustomerPhone  string
	CustomerName   string
	CustomerEmail  string
	CustomerCPF    string
	Items          []CheckoutItem
	Total          float64
	PaymentMethod  entities.PaymentMethod
}

// ICheckoutUseCase builds a payment intent: pending sale first, gateway
// instrument second. On gateway failure the returned sale carries the failed
// record's id so callers can reference it.

type ICheckoutUseCase interface {
	CreateCheckout(ctx context.Context, input CheckoutInput) (entities.Sale, error)
}

type CheckoutUseCase struct {
	sales       interfaces.ISaleRepository
	sellers     interfaces.ISellerDirectory
	settings    interfaces.IPlatformSettings
	gateway     interfaces.IPaymentGateway
	paymentLogs interfaces.IPaymentLogRepository
	notifier    interfaces.INotifier
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	sales interfaces.ISaleRepository,
	sellers interfaces.ISellerDirectory,
	settings interfaces.IPlatformSettings,
	gateway interfaces.IPaymentGateway,
	paymentLogs interfaces.IPaymentLogRepository,
	notifier interfaces.INotifier,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		sales:       sales,
		sellers:     sellers,
		settings:    settings,
		gateway:     gateway,
		paymentLogs: paymentLogs,
		notifier:    notifier,
	}
}

func (u *CheckoutUseCase) CreateCheckout(ctx context.Context, input CheckoutInput) (entities.Sale, error) {
	log.Printf("[checkout][usecase] create start seller_public_id=%q method=%s items=%d", input.SellerPublicID, input.PaymentMethod, len(input.Items))

	if err := validateCheckoutInput(input); err != nil {
		log.Printf("[checkout][usecase] invalid request err=%v", err)
		return entities.Sale{}, err
	}
	if u.gateway == nil {
		log.Printf("[checkout][usecase] gateway not configured seller_public_id=%s", input.SellerPublicID)
		return entities.Sale{}, ErrMissingConfiguration
	}

	seller, err := u.sellers.ResolveByPublicID(ctx, strings.TrimSpace(input.SellerPublicID))
	if err != nil {
		log.Printf("[checkout][usecase] seller lookup failed seller_public_id=%s err=%v", input.SellerPublicID, err)
		return entities.Sale{}, err
	}
	if seller.UserID == "" {
		log.Printf("[checkout][usecase] seller not found seller_public_id=%s", input.SellerPublicID)
		return entities.Sale{}, ErrSellerNotFound
	}

	total := input.Total
	subtotal := 0.0
	for _, item := range input.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	subtotal = round2(subtotal)
	if total <= 0 {
		total = subtotal
	}
	total = round2(total)
	if total <= 0 {
		log.Printf("[checkout][usecase] non-positive total seller_id=%s total=%.2f", seller.UserID, total)
		return entities.Sale{}, ErrInvalidCheckoutRequest
	}

	rate := u.resolveCommissionRate(ctx)
	fee := round2(total * rate / 100)
	sellerAmount := round2(total - fee)

	now := time.Now().UTC()
	sale := entities.Sale{
		ID:            uuid.New().String(),
		SellerID:      seller.UserID,
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		Items:         toSaleItems(input.Items),
		Subtotal:      subtotal,
		PlatformFee:   fee,
		SellerAmount:  sellerAmount,
		Total:         total,
		Status:        entities.SaleStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: entities.PaymentStatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(saleExpiryWindow),
	}

	// The pending sale is persisted before any gateway call so a webhook
	// arriving early always finds its external_reference.
	created, err := u.sales.Create(ctx, sale)
	if err != nil {
		log.Printf("[checkout][usecase] sale create failed seller_id=%s err=%v", seller.UserID, err)
		return entities.Sale{}, err
	}
	log.Printf("[checkout][usecase] pending sale created sale_id=%s total=%.2f fee=%.2f seller_amount=%.2f rate=%.2f", created.ID, total, fee, sellerAmount, rate)

	switch input.PaymentMethod {
	case entities.PaymentMethodPix:
		created, err = u.createPixInstrument(ctx, created, seller, input)
	case entities.PaymentMethodCreditCard, entities.PaymentMethodDebitCard:
		created, err = u.createCheckoutInstrument(ctx, created, seller, input)
	case entities.PaymentMethodBoleto:
		created, err = u.createBoletoInstrument(ctx, created, seller, input)
	default:
		// validateCheckoutInput already rejects unknown methods; defensive only
		// against future additions to the enum.
		err = ErrUnsupportedPaymentMethod
	}
	if err != nil {
		u.markFailed(ctx, created, err)
		return created, err
	}

	u.appendPaymentLog(ctx, created, successEventFor(input.PaymentMethod))
	u.sendCartSummary(ctx, created, seller)

	log.Printf("[checkout][usecase] create success sale_id=%s method=%s mp_payment_id=%s", created.ID, created.PaymentMethod, created.MPPaymentID)
	return created, nil
}

func validateCheckoutInput(input CheckoutInput) error {
	if strings.TrimSpace(input.SellerPublicID) == "" {
		return ErrInvalidCheckoutRequest
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return ErrInvalidCheckoutRequest
	}
	if len(input.Items) == 0 {
		return ErrInvalidCheckoutRequest
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return ErrInvalidCheckoutRequest
		}
	}
	switch input.PaymentMethod {
	case entities.PaymentMethodPix, entities.PaymentMethodCreditCard, entities.PaymentMethodDebitCard, entities.PaymentMethodBoleto:
		return nil
	default:
		return ErrUnsupportedPaymentMethod
	}
}

// resolveCommissionRate loads the platform commission percentage, falling back
// to the default when the settings row is missing or unreadable. The fallback
// is loud on purpose: a silent zero would give sellers 100% of every sale.
func (u *CheckoutUseCase) resolveCommissionRate(ctx context.Context) float64 {
	rate, err := u.settings.CommissionRate(ctx)
	if err != nil {
		log.Printf("[checkout][usecase] commission rate load failed, using default=%.2f err=%v", defaultCommissionPercent, err)
		return defaultCommissionPercent
	}
	if rate <= 0 {
		log.Printf("[checkout][usecase] commission rate missing or zero, using default=%.2f", defaultCommissionPercent)
		return defaultCommissionPercent
	}
	return rate
}

func (u *CheckoutUseCase) createPixInstrument(ctx context.Context, sale entities.Sale, seller entities.Seller, input CheckoutInput) (entities.Sale, error) {
	req := interfaces.PixPaymentRequest{
		IdempotencyKey:    sale.ID,
		ExternalReference: sale.ID,
		Amount:            sale.Total,
		Description:       saleDescription(seller),
		PayerEmail:        payerEmail(sale),
		PayerFirstName:    payerFirstName(sale),
		PayerCPF:          strings.TrimSpace(input.CustomerCPF),
		ExpiresAt:         sale.ExpiresAt,
	}

	var payment interfaces.GatewayPayment
	var err error
	for attempt := 1; attempt <= pixCreateMaxAttempts; attempt++ {
		if attempt > 1 {
			// A fresh idempotency key gives the gateway a clean slate after a
			// policy rejection or a refused key replay.
			req.IdempotencyKey = fmt.Sprintf("%s-r%d", sale.ID, attempt-1)
			log.Printf("[checkout][usecase] pix retry sale_id=%s attempt=%d idempotency_key=%s", sale.ID, attempt, req.IdempotencyKey)
		}
		payment, err = u.gateway.CreatePixPayment(ctx, req)
		if err == nil {
			break
		}
		if !isGatewayPolicyRejected(err) && !isGatewayIdempotencyRejected(err) {
			break
		}
	}
	if err != nil {
		log.Printf("[checkout][usecase] pix create failed sale_id=%s err=%v", sale.ID, err)
		return sale, classifyGatewayError(err)
	}

	if payment.QRCode == "" {
		payment = u.repollPixPayment(ctx, sale.ID, payment)
	}

	updated, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		MPPaymentID:     strPtr(payment.ID),
		PixQRCode:       strPtr(payment.QRCode),
		PixQRCodeBase64: strPtr(payment.QRCodeBase64),
		PixCopyPaste:    strPtr(payment.QRCode),
	})
	if err != nil {
		log.Printf("[checkout][usecase] pix sale update failed sale_id=%s mp_payment_id=%s err=%v", sale.ID, payment.ID, err)
		return sale, err
	}
	return updated, nil
}

// repollPixPayment re-fetches a just-created pix payment once when the create
// response came back without QR data. The gateway occasionally materializes
// the QR a moment after the payment itself.
func (u *CheckoutUseCase) repollPixPayment(ctx context.Context, saleID string, payment interfaces.GatewayPayment) interfaces.GatewayPayment {
	log.Printf("[checkout][usecase] pix qr missing, re-polling sale_id=%s mp_payment_id=%s", saleID, payment.ID)
	select {
	case <-ctx.Done():
		return payment
	case <-time.After(2 * time.Second):
	}

	refreshed, err := u.gateway.GetPayment(ctx, payment.ID)
	if err != nil {
		log.Printf("[checkout][usecase] pix re-poll failed sale_id=%s mp_payment_id=%s err=%v", saleID, payment.ID, err)
		return payment
	}
	if refreshed.QRCode == "" {
		return payment
	}
	return refreshed
}

func (u *CheckoutUseCase) createCheckoutInstrument(ctx context.Context, sale entities.Sale, seller entities.Seller, input CheckoutInput) (entities.Sale, error) {
	// The hosted page is narrowed to the chosen method: debit checkout must
	// not offer credit cards, and neither card flow offers boleto ("ticket").
	excluded := []string{"ticket"}
	if input.PaymentMethod == entities.PaymentMethodDebitCard {
		excluded = append(excluded, "credit_card")
	}

	items := make([]interfaces.PreferenceItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, interfaces.PreferenceItem{
			ID:        item.ProductID,
			Title:     item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	baseURL := checkoutBackBaseURL()
	pref, err := u.gateway.CreateCheckoutPreference(ctx, interfaces.CheckoutPreferenceRequest{
		ExternalReference:    sale.ID,
		Items:                items,
		PayerName:            payerFirstName(sale),
		PayerEmail:           payerEmail(sale),
		ExcludedPaymentTypes: excluded,
		SuccessURL:           baseURL + "/pagamento/sucesso",
		PendingURL:           baseURL + "/pagamento/pendente",
		FailureURL:           baseURL + "/pagamento/erro",
	})
	if err != nil {
		log.Printf("[checkout][usecase] preference create failed sale_id=%s err=%v", sale.ID, err)
		return sale, classifyGatewayError(err)
	}

	updated, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		PaymentStatus:  paymentStatusPtr(entities.PaymentStatusAwaitingPayment),
		MPPreferenceID: strPtr(pref.ID),
		CheckoutURL:    strPtr(pref.InitPoint),
	})
	if err != nil {
		log.Printf("[checkout][usecase] preference sale update failed sale_id=%s preference_id=%s err=%v", sale.ID, pref.ID, err)
		return sale, err
	}
	return updated, nil
}

func (u *CheckoutUseCase) createBoletoInstrument(ctx context.Context, sale entities.Sale, seller entities.Seller, input CheckoutInput) (entities.Sale, error) {
	payment, err := u.gateway.CreateBoletoPayment(ctx, interfaces.BoletoPaymentRequest{
		IdempotencyKey:    sale.ID,
		ExternalReference: sale.ID,
		Amount:            sale.Total,
		Description:       saleDescription(seller),
		PayerEmail:        payerEmail(sale),
		PayerFirstName:    payerFirstName(sale),
		PayerCPF:          strings.TrimSpace(input.CustomerCPF),
	})
	if err != nil {
		log.Printf("[checkout][usecase] boleto create failed sale_id=%s err=%v", sale.ID, err)
		return sale, classifyGatewayError(err)
	}

	boletoURL := payment.BoletoURL
	if boletoURL == "" {
		boletoURL = payment.TicketURL
	}

	updated, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		MPPaymentID:   strPtr(payment.ID),
		BoletoURL:     strPtr(boletoURL),
		BoletoBarcode: strPtr(payment.BoletoBarcode),
	})
	if err != nil {
		log.Printf("[checkout][usecase] boleto sale update failed sale_id=%s mp_payment_id=%s err=%v", sale.ID, payment.ID, err)
		return sale, err
	}
	return updated, nil
}

func (u *CheckoutUseCase) markFailed(ctx context.Context, sale entities.Sale, cause error) {
	if sale.ID == "" {
		return
	}
	if _, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		Status:        saleStatusPtr(entities.SaleStatusFailed),
		PaymentStatus: paymentStatusPtr(entities.PaymentStatusFailed),
	}); err != nil {
		log.Printf("[checkout][usecase] mark-failed update failed sale_id=%s err=%v", sale.ID, err)
	}

	if u.paymentLogs != nil {
		logErr := u.paymentLogs.Append(ctx, entities.PaymentLog{
			ID:        uuid.New().String(),
			PaymentID: sale.MPPaymentID,
			SaleID:    sale.ID,
			EventType: failureEventFor(sale.PaymentMethod),
			CreatedAt: time.Now().UTC(),
		})
		if logErr != nil {
			log.Printf("[checkout][usecase] failure payment log append failed sale_id=%s err=%v", sale.ID, logErr)
		}
	}
	log.Printf("[checkout][usecase] sale marked failed sale_id=%s cause=%v", sale.ID, cause)
}

func (u *CheckoutUseCase) appendPaymentLog(ctx context.Context, sale entities.Sale, eventType string) {
	if u.paymentLogs == nil {
		return
	}
	if err := u.paymentLogs.Append(ctx, entities.PaymentLog{
		ID:        uuid.New().String(),
		PaymentID: sale.MPPaymentID,
		SaleID:    sale.ID,
		EventType: eventType,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("[checkout][usecase] payment log append failed sale_id=%s event=%s err=%v", sale.ID, eventType, err)
	}
}

// sendCartSummary pushes the order recap over WhatsApp. Delivery of this
// message is best-effort: the instrument already exists and is returned in the
// HTTP response either way.
func (u *CheckoutUseCase) sendCartSummary(ctx context.Context, sale entities.Sale, seller entities.Seller) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Send(ctx, sale.CustomerPhone, buildCartSummaryMessage(sale, seller)); err != nil {
		log.Printf("[checkout][usecase] cart summary send failed sale_id=%s err=%v", sale.ID, err)
	}
}

func buildCartSummaryMessage(sale entities.Sale, seller entities.Seller) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *Pedido recebido!* (%s)\n\n", seller.DisplayName)
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "• %dx %s — %s\n", item.Quantity, item.Name, formatBRL(float64(item.Quantity)*item.UnitPrice))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n", formatBRL(sale.Total))

	switch sale.PaymentMethod {
	case entities.PaymentMethodPix:
		if sale.PixCopyPaste != "" {
			fmt.Fprintf(&b, "\nPague com Pix copia e cola:\n\n%s", sale.PixCopyPaste)
		}
	case entities.PaymentMethodCreditCard, entities.PaymentMethodDebitCard:
		if sale.CheckoutURL != "" {
			fmt.Fprintf(&b, "\nFinalize o pagamento pelo link:\n%s", sale.CheckoutURL)
		}
	case entities.PaymentMethodBoleto:
		if sale.BoletoURL != "" {
			fmt.Fprintf(&b, "\nSeu boleto está disponível em:\n%s", sale.BoletoURL)
		}
	}
	return b.String()
}

func saleDescription(seller entities.Seller) string {
	return fmt.Sprintf("Compra com %s via ISA", seller.DisplayName)
}

func payerEmail(sale entities.Sale) string {
	if sale.CustomerEmail != "" {
		return sale.CustomerEmail
	}
	// The gateway requires a payer email; synthesize a stable one from the
	// phone when the storefront did not collect it.
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, sale.CustomerPhone)
	return fmt.Sprintf("cliente-%s@isa.app.br", digits)
}

func payerFirstName(sale entities.Sale) string {
	name := strings.TrimSpace(sale.CustomerName)
	if name == "" {
		return "Cliente"
	}
	if idx := strings.IndexByte(name, ' '); idx > 0 {
		return name[:idx]
	}
	return name
}

func successEventFor(method entities.PaymentMethod) string {
	switch method {
	case entities.PaymentMethodPix:
		return entities.PaymentLogPixCreated
	case entities.PaymentMethodBoleto:
		return entities.PaymentLogBoletoCreated
	default:
		return entities.PaymentLogCheckoutCreated
	}
}

func failureEventFor(method entities.PaymentMethod) string {
	if method == entities.PaymentMethodPix {
		return entities.PaymentLogPixFailed
	}
	return entities.PaymentLogCreateFailed
}

func checkoutBackBaseURL() string {
	if v := strings.TrimSpace(os.Getenv("CHECKOUT_BACK_BASE_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "https://isa.app.br"
}

func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	if isGatewayPolicyRejected(err) {
		return fmt.Errorf("%w: %v", ErrGatewayRejected, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "\"error\":\"bad_request\"") ||
		strings.Contains(msg, "\"status\":400") ||
		strings.Contains(msg, "\"status\":401") ||
		strings.Contains(msg, "\"error\":\"unauthorized\"") {
		return fmt.Errorf("%w: %v", ErrGatewayRejected, err)
	}
	return err
}

// isGatewayPolicyRejected matches Mercado Pago's PA_UNAUTHORIZED_RESULT_FROM_POLICIES
// family, which is transient for pix creation and worth a retry with a fresh
// idempotency key.
func isGatewayPolicyRejected(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unauthorized_result_from_policies") ||
		strings.Contains(msg, "as a result of policies") ||
		strings.Contains(msg, "\"status\":403")
}

func isGatewayIdempotencyRejected(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "idempotency") ||
		strings.Contains(msg, "already posted the same request") ||
		strings.Contains(msg, "\"status\":409")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatBRL(v float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

func toSaleItems(items []CheckoutItem) []entities.SaleItem {
	out := make([]entities.SaleItem, 0, len(items))
	for _, item := range items {
		out = append(out, entities.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return out
}

func strPtr(s string) *string { return &s }

func saleStatusPtr(s entities.SaleStatus) *entities.SaleStatus { return &s }

func paymentStatusPtr(s entities.PaymentStatus) *entities.PaymentStatus { return &s }

func deliveryStatusPtr(s entities.DeliveryStatus) *entities.DeliveryStatus { return &s }

func timePtr(t time.Time) *time.Time { return &t }
