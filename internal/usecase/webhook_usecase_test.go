package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"
	mock_interfaces "isa_platform/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type webhookMocks struct {
	sales         *mock_interfaces.MockISaleRepository
	balances      *mock_interfaces.MockISellerBalanceRepository
	commissions   *mock_interfaces.MockIPlatformCommissionRepository
	paymentLogs   *mock_interfaces.MockIPaymentLogRepository
	antifraudLogs *mock_interfaces.MockIAntifraudLogRepository
	gateway       *mock_interfaces.MockIPaymentGateway
	locker        *mock_interfaces.MockIPaymentLocker
	notifier      *mock_interfaces.MockINotifier
	catalog       *mock_interfaces.MockIProductCatalog
}

func newWebhookUseCaseForTest(ctrl *gomock.Controller) (*WebhookUseCase, webhookMocks) {
	m := webhookMocks{
		sales:         mock_interfaces.NewMockISaleRepository(ctrl),
		balances:      mock_interfaces.NewMockISellerBalanceRepository(ctrl),
		commissions:   mock_interfaces.NewMockIPlatformCommissionRepository(ctrl),
		paymentLogs:   mock_interfaces.NewMockIPaymentLogRepository(ctrl),
		antifraudLogs: mock_interfaces.NewMockIAntifraudLogRepository(ctrl),
		gateway:       mock_interfaces.NewMockIPaymentGateway(ctrl),
		locker:        mock_interfaces.NewMockIPaymentLocker(ctrl),
		notifier:      mock_interfaces.NewMockINotifier(ctrl),
		catalog:       mock_interfaces.NewMockIProductCatalog(ctrl),
	}
	dispatcher := NewDeliveryDispatcher(m.catalog, m.notifier)
	uc := NewWebhookUseCase(m.sales, m.balances, m.commissions, m.paymentLogs, m.antifraudLogs, m.gateway, m.locker, m.notifier, dispatcher)
	return uc, m
}

func paymentEvent(paymentID string) WebhookEvent {
	return WebhookEvent{Type: "payment", Action: "payment.updated", PaymentID: paymentID, RawPayload: []byte(`{"type":"payment"}`)}
}

func pendingSale() entities.Sale {
	return entities.Sale{
		ID:            "sale-1",
		SellerID:      "seller-1",
		CustomerPhone: "5511999990000",
		Items:         []entities.SaleItem{{ProductID: "prod-1", Name: "Ebook", Quantity: 1, UnitPrice: 100}},
		Subtotal:      100,
		PlatformFee:   10,
		SellerAmount:  90,
		Total:         100,
		Status:        entities.SaleStatusPending,
		PaymentStatus: entities.PaymentStatusPending,
		PaymentMethod: entities.PaymentMethodPix,
		MPPaymentID:   "mp-1",
	}
}

func TestWebhookUseCase_ProcessWebhook_IgnoresNonPaymentEvents(t *testing.T) {
	uc, _ := newWebhookUseCaseForTest(gomock.NewController(t))

	res, err := uc.ProcessWebhook(context.Background(), WebhookEvent{Type: "merchant_order", Action: "created"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Received || res.Status != "ignored" {
		t.Fatalf("expected ignored ack, got %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_MissingPaymentID(t *testing.T) {
	uc, _ := newWebhookUseCaseForTest(gomock.NewController(t))

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Received || res.Status != "ignored" {
		t.Fatalf("expected ignored ack, got %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_LockContention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(false, nil)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Received || res.Status != "in_progress" {
		t.Fatalf("expected in_progress ack, got %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_GatewayValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{}, errors.New("payment not found"))
	m.antifraudLogs.EXPECT().Append(gomock.Any(), gomock.AssignableToTypeOf(entities.AntifraudLog{})).DoAndReturn(
		func(_ context.Context, l entities.AntifraudLog) error {
			if l.Reason != entities.AntifraudInvalidValidation || !l.IsBlocked {
				t.Fatalf("unexpected antifraud log: %+v", l)
			}
			return nil
		},
	)

	_, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if !errors.Is(err, ErrWebhookGatewayValidation) {
		t.Fatalf("expected ErrWebhookGatewayValidation, got %v", err)
	}
}

func TestWebhookUseCase_ProcessWebhook_SaleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(entities.Sale{}, nil)
	m.sales.EXPECT().GetByMPPaymentID(gomock.Any(), "mp-1").Return(entities.Sale{}, nil)

	_, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if !errors.Is(err, ErrWebhookSaleNotFound) {
		t.Fatalf("expected ErrWebhookSaleNotFound, got %v", err)
	}
}

func TestWebhookUseCase_ProcessWebhook_DuplicatePaymentReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-x"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-x").Return(entities.Sale{}, nil)
	m.sales.EXPECT().GetByMPPaymentID(gomock.Any(), "mp-1").Return(entities.Sale{ID: "sale-other"}, nil)
	m.antifraudLogs.EXPECT().Append(gomock.Any(), gomock.AssignableToTypeOf(entities.AntifraudLog{})).DoAndReturn(
		func(_ context.Context, l entities.AntifraudLog) error {
			if l.Reason != entities.AntifraudDuplicatePayment {
				t.Fatalf("unexpected antifraud reason: %s", l.Reason)
			}
			return nil
		},
	)

	_, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if !errors.Is(err, ErrDuplicatePaymentReference) {
		t.Fatalf("expected ErrDuplicatePaymentReference, got %v", err)
	}
}

func TestWebhookUseCase_ProcessWebhook_DuplicateApprovedWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	sale := pendingSale()
	sale.Status = entities.SaleStatusCompleted
	sale.PaymentStatus = entities.PaymentStatusApproved

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(sale, nil)

	gotEvents := []string{}
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l entities.PaymentLog) error {
			gotEvents = append(gotEvents, l.EventType)
			return nil
		},
	).Times(2)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyProcessed || res.Status != "approved" {
		t.Fatalf("expected already-processed ack, got %+v", res)
	}
	if strings.Join(gotEvents, ",") != entities.PaymentLogWebhookReceived+","+entities.PaymentLogDuplicateWebhook {
		t.Fatalf("unexpected log events: %v", gotEvents)
	}
}

func TestWebhookUseCase_ProcessWebhook_SettledSaleIgnoresLateStatusChanges(t *testing.T) {
	for _, status := range []string{"cancelled", "rejected", "pending"} {
		t.Run(status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, m := newWebhookUseCaseForTest(ctrl)

			sale := pendingSale()
			sale.Status = entities.SaleStatusCompleted
			sale.PaymentStatus = entities.PaymentStatusApproved

			m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
			m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
			m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: status, ExternalReference: "sale-1"}, nil)
			m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(sale, nil)
			m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2) // webhook received + duplicate
			// No Update call: the sale must stay completed/approved, and
			// ClaimApproval must never be re-armed by a regressed payment_status.

			res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.AlreadyProcessed || res.Status != "approved" {
				t.Fatalf("expected settled ack, got %+v", res)
			}
		})
	}
}

func TestWebhookUseCase_ProcessWebhook_ApprovedHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	sale := pendingSale()

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(sale, nil)
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2) // webhook received + approved
	m.sales.EXPECT().ClaimApproval(gomock.Any(), "sale-1", gomock.Any()).Return(true, nil)
	m.balances.EXPECT().Credit(gomock.Any(), "seller-1", 90.0).Return(entities.SellerBalance{SellerID: "seller-1", AvailableBalance: 90}, nil)
	m.commissions.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.PlatformCommission{})).DoAndReturn(
		func(_ context.Context, c entities.PlatformCommission) (entities.PlatformCommission, error) {
			if c.SaleID != "sale-1" || c.Amount != 10 || c.Percentage != 10 {
				t.Fatalf("unexpected commission: %+v", c)
			}
			return c, nil
		},
	)
	m.catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
		ProductID:       "prod-1",
		Name:            "Ebook",
		DeliveryType:    entities.DeliveryTypeLink,
		DeliveryContent: "https://files.example.com/ebook",
	}, nil)
	// approved notice + delivery message + completion notice
	gotMessages := []string{}
	m.notifier.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, message string) error {
			gotMessages = append(gotMessages, message)
			return nil
		},
	).Times(3)
	m.sales.EXPECT().Update(gomock.Any(), "sale-1", gomock.AssignableToTypeOf(interfaces.SaleUpdate{})).DoAndReturn(
		func(_ context.Context, _ string, upd interfaces.SaleUpdate) (entities.Sale, error) {
			if upd.DeliveryStatus == nil || *upd.DeliveryStatus != entities.DeliveryStatusSent {
				t.Fatalf("expected delivery status sent")
			}
			if upd.DeliverySentAt == nil {
				t.Fatalf("expected delivery timestamp")
			}
			return entities.Sale{}, nil
		},
	)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "approved" || res.AlreadyProcessed {
		t.Fatalf("unexpected result: %+v", res)
	}
	// The confirmation carries the order recap, the total and a tracking link.
	approved := gotMessages[0]
	if !strings.Contains(approved, "1x Ebook") || !strings.Contains(approved, "R$ 100,00") || !strings.Contains(approved, "/pedidos/sale-1") {
		t.Fatalf("unexpected approved message: %s", approved)
	}
}

func TestWebhookUseCase_ProcessWebhook_ApprovalAlreadyClaimed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(pendingSale(), nil)
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2) // webhook received + duplicate
	m.sales.EXPECT().ClaimApproval(gomock.Any(), "sale-1", gomock.Any()).Return(false, nil)
	// No Credit, no commission, no delivery when the claim was lost.

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AlreadyProcessed {
		t.Fatalf("expected already-processed ack, got %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_LedgerCreditFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(pendingSale(), nil)
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	m.sales.EXPECT().ClaimApproval(gomock.Any(), "sale-1", gomock.Any()).Return(true, nil)
	m.balances.EXPECT().Credit(gomock.Any(), "seller-1", 90.0).Return(entities.SellerBalance{}, errors.New("dynamo down"))

	_, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err == nil || !strings.Contains(err.Error(), "dynamo down") {
		t.Fatalf("expected credit error, got %v", err)
	}
}

func TestWebhookUseCase_ProcessWebhook_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "rejected", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(pendingSale(), nil)
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	m.sales.EXPECT().Update(gomock.Any(), "sale-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd interfaces.SaleUpdate) (entities.Sale, error) {
			if upd.Status == nil || *upd.Status != entities.SaleStatusCancelled {
				t.Fatalf("expected cancelled status")
			}
			if upd.DeliveryStatus == nil || *upd.DeliveryStatus != entities.DeliveryStatusNotRequired {
				t.Fatalf("expected not_required delivery status")
			}
			return entities.Sale{}, nil
		},
	)
	m.notifier.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).Return(nil)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "rejected" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_InProcess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "in_process", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(pendingSale(), nil)
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	m.sales.EXPECT().Update(gomock.Any(), "sale-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd interfaces.SaleUpdate) (entities.Sale, error) {
			if upd.Status != nil {
				t.Fatalf("sale status must not change while in process")
			}
			if upd.PaymentStatus == nil || *upd.PaymentStatus != entities.PaymentStatusInProcess {
				t.Fatalf("expected in_process payment status")
			}
			return entities.Sale{}, nil
		},
	)
	m.notifier.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).Return(nil)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "in_process" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWebhookUseCase_ProcessWebhook_UnhandledStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newWebhookUseCaseForTest(ctrl)

	m.locker.EXPECT().Acquire(gomock.Any(), "mp-1").Return(true, nil)
	m.locker.EXPECT().Release(gomock.Any(), "mp-1").Return(nil)
	m.gateway.EXPECT().GetPayment(gomock.Any(), "mp-1").Return(interfaces.GatewayPayment{ID: "mp-1", Status: "charged_back", ExternalReference: "sale-1"}, nil)
	m.sales.EXPECT().GetByID(gomock.Any(), "sale-1").Return(pendingSale(), nil)

	gotEvents := []string{}
	m.paymentLogs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l entities.PaymentLog) error {
			gotEvents = append(gotEvents, l.EventType)
			return nil
		},
	).Times(2)

	res, err := uc.ProcessWebhook(context.Background(), paymentEvent("mp-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != "charged_back" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotEvents[1] != entities.PaymentLogUnhandledStatus {
		t.Fatalf("expected unhandled status log, got %v", gotEvents)
	}
}
