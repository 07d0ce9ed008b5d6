package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrWebhookSaleNotFound       = errors.New("sale not found for webhook payment")
	ErrWebhookGatewayValidation  = errors.New("payment could not be validated with the gateway")
	ErrDuplicatePaymentReference = errors.New("payment already attached to another sale")
)

// WebhookEvent is the minimally-parsed gateway notification. Everything beyond
// the payment id is treated as untrusted; the reconciler re-fetches the
// payment from the gateway before acting.
type WebhookEvent struct {
	Type       string
	Action     string
	PaymentID  string
	RawPayload json.RawMessage
}

// WebhookResult is what the handler echoes back to the gateway.
type WebhookResult struct {
	Received         bool
	Status           string
	AlreadyProcessed bool
}

// IWebhookUseCase reconciles gateway payment notifications against sales.

type IWebhookUseCase interface {
	ProcessWebhook(ctx context.Context, event WebhookEvent) (WebhookResult, error)
}

type WebhookUseCase struct {
	sales         interfaces.ISaleRepository
	balances      interfaces.ISellerBalanceRepository
	commissions   interfaces.IPlatformCommissionRepository
	paymentLogs   interfaces.IPaymentLogRepository
	antifraudLogs interfaces.IAntifraudLogRepository
	gateway       interfaces.IPaymentGateway
	locker        interfaces.IPaymentLocker
	notifier      interfaces.INotifier
	dispatcher    IDeliveryDispatcher
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(
	sales interfaces.ISaleRepository,
	balances interfaces.ISellerBalanceRepository,
	commissions interfaces.IPlatformCommissionRepository,
	paymentLogs interfaces.IPaymentLogRepository,
	antifraudLogs interfaces.IAntifraudLogRepository,
	gateway interfaces.IPaymentGateway,
	locker interfaces.IPaymentLocker,
	notifier interfaces.INotifier,
	dispatcher IDeliveryDispatcher,
) *WebhookUseCase {
	return &WebhookUseCase{
		sales:         sales,
		balances:      balances,
		commissions:   commissions,
		paymentLogs:   paymentLogs,
		antifraudLogs: antifraudLogs,
		gateway:       gateway,
		locker:        locker,
		notifier:      notifier,
		dispatcher:    dispatcher,
	}
}

func (u *WebhookUseCase) ProcessWebhook(ctx context.Context, event WebhookEvent) (WebhookResult, error) {
	log.Printf("[webhook][usecase] received type=%q action=%q payment_id=%q", event.Type, event.Action, event.PaymentID)

	if !isPaymentEvent(event) {
		log.Printf("[webhook][usecase] ignoring non-payment event type=%q action=%q", event.Type, event.Action)
		return WebhookResult{Received: true, Status: "ignored"}, nil
	}

	paymentID := strings.TrimSpace(event.PaymentID)
	if paymentID == "" {
		// Nothing to reconcile without a payment id; a 4xx would only make the
		// gateway re-deliver the same empty notification.
		log.Printf("[webhook][usecase] payment event without payment id, acknowledging")
		return WebhookResult{Received: true, Status: "ignored"}, nil
	}

	if u.gateway == nil {
		log.Printf("[webhook][usecase] gateway not configured payment_id=%s", paymentID)
		return WebhookResult{}, ErrMissingConfiguration
	}

	acquired, err := u.locker.Acquire(ctx, paymentID)
	if err != nil {
		log.Printf("[webhook][usecase] lock acquire errored payment_id=%s err=%v", paymentID, err)
		return WebhookResult{}, err
	}
	if !acquired {
		// A concurrent delivery of the same notification holds the lease. The
		// gateway retries later; answering 200 keeps it from hammering us.
		log.Printf("[webhook][usecase] payment already being processed payment_id=%s", paymentID)
		return WebhookResult{Received: true, Status: "in_progress"}, nil
	}
	defer func() {
		if relErr := u.locker.Release(ctx, paymentID); relErr != nil {
			log.Printf("[webhook][usecase] lock release failed payment_id=%s err=%v", paymentID, relErr)
		}
	}()

	payment, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[webhook][usecase] gateway validation failed payment_id=%s err=%v", paymentID, err)
		u.appendAntifraudLog(ctx, paymentID, entities.AntifraudInvalidValidation, err.Error())
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrWebhookGatewayValidation, err)
	}
	log.Printf("[webhook][usecase] gateway payment fetched payment_id=%s status=%s external_reference=%s", payment.ID, payment.Status, payment.ExternalReference)

	sale, err := u.resolveSale(ctx, payment)
	if err != nil {
		return WebhookResult{}, err
	}

	u.appendPaymentLog(ctx, sale, payment, entities.PaymentLogWebhookReceived, event.RawPayload)

	// A completed sale never moves again: late or out-of-order notifications
	// (approved retries, but also cancelled/pending arriving after settlement)
	// must not regress payment_status and re-arm the approval claim.
	if sale.PaymentStatus == entities.PaymentStatusApproved {
		log.Printf("[webhook][usecase] webhook for settled sale payment_id=%s sale_id=%s gateway_status=%s", payment.ID, sale.ID, payment.Status)
		u.appendPaymentLog(ctx, sale, payment, entities.PaymentLogDuplicateWebhook, nil)
		return WebhookResult{Received: true, Status: "approved", AlreadyProcessed: true}, nil
	}

	switch payment.Status {
	case string(entities.PaymentStatusApproved):
		return u.reconcileApproved(ctx, sale, payment)
	case string(entities.PaymentStatusRejected), string(entities.PaymentStatusCancelled):
		return u.reconcileCancelled(ctx, sale, payment)
	case string(entities.PaymentStatusPending), string(entities.PaymentStatusInProcess):
		return u.reconcilePending(ctx, sale, payment)
	default:
		log.Printf("[webhook][usecase] unhandled payment status payment_id=%s status=%s", payment.ID, payment.Status)
		u.appendPaymentLog(ctx, sale, payment, entities.PaymentLogUnhandledStatus, nil)
		return WebhookResult{Received: true, Status: payment.Status}, nil
	}
}

// resolveSale maps the validated payment back to the sale that originated it.
// The external_reference is the sale id set at checkout time.
func (u *WebhookUseCase) resolveSale(ctx context.Context, payment interfaces.GatewayPayment) (entities.Sale, error) {
	ref := strings.TrimSpace(payment.ExternalReference)
	if ref != "" {
		sale, err := u.sales.GetByID(ctx, ref)
		if err != nil {
			log.Printf("[webhook][usecase] sale lookup failed sale_id=%s err=%v", ref, err)
			return entities.Sale{}, err
		}
		if sale.ID != "" {
			return sale, nil
		}
	}

	// No sale behind the reference. If this gateway payment id is already
	// attached to some other sale, the reference was tampered with or reused.
	other, err := u.sales.GetByMPPaymentID(ctx, payment.ID)
	if err != nil {
		log.Printf("[webhook][usecase] sale lookup by payment failed payment_id=%s err=%v", payment.ID, err)
		return entities.Sale{}, err
	}
	if other.ID != "" && other.ID != ref {
		log.Printf("[webhook][usecase] payment attached to another sale payment_id=%s sale_id=%s external_reference=%q", payment.ID, other.ID, ref)
		u.appendAntifraudLog(ctx, payment.ID, entities.AntifraudDuplicatePayment, fmt.Sprintf("payment belongs to sale %s, reference was %q", other.ID, ref))
		return entities.Sale{}, ErrDuplicatePaymentReference
	}

	log.Printf("[webhook][usecase] sale not found payment_id=%s external_reference=%q", payment.ID, ref)
	return entities.Sale{}, ErrWebhookSaleNotFound
}

func (u *WebhookUseCase) reconcileApproved(ctx context.Context, sale entities.Sale, payment interfaces.GatewayPayment) (WebhookResult, error) {
	paidAt := time.Now().UTC()

	// The conditional claim is the single point of truth against double
	// crediting: only one caller ever flips the sale to approved.
	claimed, err := u.sales.ClaimApproval(ctx, sale.ID, paidAt)
	if err != nil {
		log.Printf("[webhook][usecase] approval claim failed sale_id=%s err=%v", sale.ID, err)
		return WebhookResult{}, err
	}
	if !claimed {
		log.Printf("[webhook][usecase] approval already claimed sale_id=%s payment_id=%s", sale.ID, payment.ID)
		u.appendPaymentLog(ctx, sale, payment, entities.PaymentLogDuplicateWebhook, nil)
		return WebhookResult{Received: true, Status: "approved", AlreadyProcessed: true}, nil
	}

	if sale.MPPaymentID == "" {
		if _, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{MPPaymentID: strPtr(payment.ID)}); err != nil {
			log.Printf("[webhook][usecase] payment id backfill failed sale_id=%s err=%v", sale.ID, err)
		}
	}

	balance, err := u.balances.Credit(ctx, sale.SellerID, sale.SellerAmount)
	if err != nil {
		// The claim went through but the ledger write did not. Surface a 500 so
		// operators reconcile manually; a retry would be flagged as duplicate.
		log.Printf("[webhook][usecase] CRITICAL ledger credit failed after claim sale_id=%s seller_id=%s amount=%.2f err=%v", sale.ID, sale.SellerID, sale.SellerAmount, err)
		return WebhookResult{}, err
	}
	log.Printf("[webhook][usecase] seller credited sale_id=%s seller_id=%s amount=%.2f available=%.2f", sale.ID, sale.SellerID, sale.SellerAmount, balance.AvailableBalance)

	percentage := 0.0
	if sale.Total > 0 {
		percentage = round2(sale.PlatformFee / sale.Total * 100)
	}
	if _, err := u.commissions.Create(ctx, entities.PlatformCommission{
		ID:         uuid.New().String(),
		SaleID:     sale.ID,
		Amount:     sale.PlatformFee,
		Percentage: percentage,
		CreatedAt:  paidAt,
	}); err != nil {
		log.Printf("[webhook][usecase] commission record failed sale_id=%s amount=%.2f err=%v", sale.ID, sale.PlatformFee, err)
	}

	u.appendPaymentLog(ctx, sale, payment, entities.PaymentLogApproved, nil)
	u.notify(ctx, sale.CustomerPhone, buildApprovedMessage(sale))

	outcome := u.dispatcher.Dispatch(ctx, sale)
	deliveryStatus := entities.DeliveryStatusNotRequired
	update := interfaces.SaleUpdate{}
	if outcome.DeliveryCount > 0 {
		if outcome.Sent {
			deliveryStatus = entities.DeliveryStatusSent
			update.DeliverySentAt = timePtr(time.Now().UTC())
			u.notify(ctx, sale.CustomerPhone, "✅ Entrega concluída! Qualquer dúvida é só chamar por aqui.")
		} else {
			deliveryStatus = entities.DeliveryStatusFailed
		}
	}
	update.DeliveryStatus = deliveryStatusPtr(deliveryStatus)
	if _, err := u.sales.Update(ctx, sale.ID, update); err != nil {
		log.Printf("[webhook][usecase] delivery status update failed sale_id=%s status=%s err=%v", sale.ID, deliveryStatus, err)
	}

	log.Printf("[webhook][usecase] reconcile approved done sale_id=%s payment_id=%s deliveries=%d delivery_status=%s", sale.ID, payment.ID, outcome.DeliveryCount, deliveryStatus)
	return WebhookResult{Received: true, Status: "approved"}, nil
}

func (u *WebhookUseCase) reconcileCancelled(ctx context.Context, sale entities.Sale, payment interfaces.GatewayPayment) (WebhookResult, error) {
	if _, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		Status:         saleStatusPtr(entities.SaleStatusCancelled),
		PaymentStatus:  paymentStatusPtr(entities.PaymentStatus(payment.Status)),
		DeliveryStatus: deliveryStatusPtr(entities.DeliveryStatusNotRequired),
	}); err != nil {
		log.Printf("[webhook][usecase] cancel update failed sale_id=%s err=%v", sale.ID, err)
		return WebhookResult{}, err
	}

	u.notify(ctx, sale.CustomerPhone, buildNotApprovedMessage(sale, payment))
	log.Printf("[webhook][usecase] reconcile cancelled done sale_id=%s payment_id=%s status=%s", sale.ID, payment.ID, payment.Status)
	return WebhookResult{Received: true, Status: payment.Status}, nil
}

func (u *WebhookUseCase) reconcilePending(ctx context.Context, sale entities.Sale, payment interfaces.GatewayPayment) (WebhookResult, error) {
	if _, err := u.sales.Update(ctx, sale.ID, interfaces.SaleUpdate{
		PaymentStatus: paymentStatusPtr(entities.PaymentStatus(payment.Status)),
	}); err != nil {
		log.Printf("[webhook][usecase] pending update failed sale_id=%s err=%v", sale.ID, err)
		return WebhookResult{}, err
	}

	u.notify(ctx, sale.CustomerPhone, "⏳ Recebemos seu pagamento e ele está em análise. Avisamos assim que for confirmado!")
	log.Printf("[webhook][usecase] reconcile pending done sale_id=%s payment_id=%s status=%s", sale.ID, payment.ID, payment.Status)
	return WebhookResult{Received: true, Status: payment.Status}, nil
}

func (u *WebhookUseCase) appendPaymentLog(ctx context.Context, sale entities.Sale, payment interfaces.GatewayPayment, eventType string, payload json.RawMessage) {
	if err := u.paymentLogs.Append(ctx, entities.PaymentLog{
		ID:         uuid.New().String(),
		PaymentID:  payment.ID,
		SaleID:     sale.ID,
		EventType:  eventType,
		PayloadRaw: payload,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		log.Printf("[webhook][usecase] payment log append failed payment_id=%s event=%s err=%v", payment.ID, eventType, err)
	}
}

func (u *WebhookUseCase) appendAntifraudLog(ctx context.Context, paymentID, reason, detail string) {
	if err := u.antifraudLogs.Append(ctx, entities.AntifraudLog{
		ID:        uuid.New().String(),
		PaymentID: paymentID,
		Reason:    reason,
		Detail:    detail,
		IsBlocked: true,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		log.Printf("[webhook][usecase] antifraud log append failed payment_id=%s reason=%s err=%v", paymentID, reason, err)
	}
}

func (u *WebhookUseCase) notify(ctx context.Context, phone, message string) {
	if u.notifier == nil || phone == "" {
		return
	}
	if err := u.notifier.Send(ctx, phone, message); err != nil {
		log.Printf("[webhook][usecase] notification send failed phone=%s err=%v", phone, err)
	}
}

func buildApprovedMessage(sale entities.Sale) string {
	var b strings.Builder
	b.WriteString("✅ *Pagamento aprovado!*\n\n")
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "• %dx %s — %s\n", item.Quantity, item.Name, formatBRL(float64(item.Quantity)*item.UnitPrice))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n", formatBRL(sale.Total))
	fmt.Fprintf(&b, "\nAcompanhe seu pedido em:\n%s/pedidos/%s", checkoutBackBaseURL(), sale.ID)
	b.WriteString("\n\nSe houver itens digitais, eles chegam aqui em instantes.")
	return b.String()
}

func buildNotApprovedMessage(sale entities.Sale, payment interfaces.GatewayPayment) string {
	if payment.Status == string(entities.PaymentStatusCancelled) {
		return "❌ Seu pagamento foi cancelado. Se quiser, é só refazer o pedido por aqui."
	}
	return "❌ Seu pagamento não foi aprovado. Verifique os dados ou tente outra forma de pagamento."
}

func isPaymentEvent(event WebhookEvent) bool {
	if strings.EqualFold(event.Type, "payment") {
		return true
	}
	switch strings.ToLower(event.Action) {
	case "payment.created", "payment.updated":
		return true
	}
	return false
}
