package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"isa_platform/internal/domain/entities"
	mock_interfaces "isa_platform/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func saleWithItems(items ...entities.SaleItem) entities.Sale {
	return entities.Sale{ID: "sale-1", CustomerPhone: "5511999990000", Items: items}
}

func TestDeliveryDispatcher_Dispatch(t *testing.T) {
	t.Run("text content goes out verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
			ProductID:       "prod-1",
			Name:            "Receita secreta",
			DeliveryType:    entities.DeliveryTypeText,
			DeliveryContent: "Misture tudo e asse por 40 minutos.",
		}, nil)
		notifier.EXPECT().Send(gomock.Any(), "5511999990000", "Misture tudo e asse por 40 minutos.").Return(nil)

		outcome := d.Dispatch(context.Background(), saleWithItems(entities.SaleItem{ProductID: "prod-1", Quantity: 1}))
		if !outcome.Sent || outcome.DeliveryCount != 1 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("link content is framed with the product name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
			ProductID:       "prod-1",
			Name:            "Curso de Bolos",
			DeliveryType:    entities.DeliveryTypeLink,
			DeliveryContent: "https://curso.example.com",
		}, nil)
		notifier.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, message string) error {
				if !strings.Contains(message, "Curso de Bolos") || !strings.Contains(message, "https://curso.example.com") {
					t.Fatalf("unexpected link message: %s", message)
				}
				return nil
			},
		)

		outcome := d.Dispatch(context.Background(), saleWithItems(entities.SaleItem{ProductID: "prod-1", Quantity: 1}))
		if !outcome.Sent || outcome.DeliveryCount != 1 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("file delivery uses the file url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
			ProductID:       "prod-1",
			Name:            "Apostila",
			DeliveryType:    entities.DeliveryTypeFile,
			DeliveryFileURL: "https://files.example.com/apostila.pdf",
		}, nil)
		notifier.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, message string) error {
				if !strings.Contains(message, "https://files.example.com/apostila.pdf") {
					t.Fatalf("unexpected file message: %s", message)
				}
				return nil
			},
		)

		outcome := d.Dispatch(context.Background(), saleWithItems(entities.SaleItem{ProductID: "prod-1", Quantity: 1}))
		if !outcome.Sent || outcome.DeliveryCount != 1 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("physical and unconfigured products are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
			ProductID:    "prod-1",
			DeliveryType: entities.DeliveryTypeNone,
		}, nil)
		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-2").Return(entities.ProductDeliveryInfo{
			ProductID:    "prod-2",
			DeliveryType: entities.DeliveryTypeLink,
			// no content configured
		}, nil)

		outcome := d.Dispatch(context.Background(), saleWithItems(
			entities.SaleItem{ProductID: "prod-1", Quantity: 1},
			entities.SaleItem{ProductID: "prod-2", Quantity: 1},
		))
		if !outcome.Sent || outcome.DeliveryCount != 0 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("send failure marks the outcome not sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{
			ProductID:       "prod-1",
			Name:            "Ebook",
			DeliveryType:    entities.DeliveryTypeText,
			DeliveryContent: "conteudo",
		}, nil)
		notifier.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("gateway offline"))

		outcome := d.Dispatch(context.Background(), saleWithItems(entities.SaleItem{ProductID: "prod-1", Quantity: 1}))
		if outcome.Sent || outcome.DeliveryCount != 1 {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("catalog failure marks the outcome not sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewDeliveryDispatcher(catalog, notifier)

		catalog.EXPECT().GetDeliveryInfo(gomock.Any(), "prod-1").Return(entities.ProductDeliveryInfo{}, errors.New("dynamo down"))

		outcome := d.Dispatch(context.Background(), saleWithItems(entities.SaleItem{ProductID: "prod-1", Quantity: 1}))
		if outcome.Sent {
			t.Fatalf("expected not sent, got %+v", outcome)
		}
	})
}
