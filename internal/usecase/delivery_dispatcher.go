package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"
)

// DeliveryOutcome summarizes a digital delivery fan-out for one sale.
//
// DeliveryCount counts products that actually had something deliverable;
// Sent is true only when every deliverable message went out.
type DeliveryOutcome struct {
	Sent          bool
	DeliveryCount int
}

type IDeliveryDispatcher interface {
	Dispatch(ctx context.Context, sale entities.Sale) DeliveryOutcome
}

// DeliveryDispatcher sends digital goods to the customer over WhatsApp after a
// sale is paid. It is stateless: the caller owns persisting the outcome.

type DeliveryDispatcher struct {
	catalog  interfaces.IProductCatalog
	notifier interfaces.INotifier
}

var _ IDeliveryDispatcher = (*DeliveryDispatcher)(nil)

func NewDeliveryDispatcher(catalog interfaces.IProductCatalog, notifier interfaces.INotifier) *DeliveryDispatcher {
	return &DeliveryDispatcher{catalog: catalog, notifier: notifier}
}

func (d *DeliveryDispatcher) Dispatch(ctx context.Context, sale entities.Sale) DeliveryOutcome {
	outcome := DeliveryOutcome{Sent: true}

	for _, item := range sale.Items {
		info, err := d.catalog.GetDeliveryInfo(ctx, item.ProductID)
		if err != nil {
			log.Printf("[delivery][dispatcher] catalog lookup failed sale_id=%s product_id=%s err=%v", sale.ID, item.ProductID, err)
			outcome.Sent = false
			continue
		}

		message := buildDeliveryMessage(info)
		if message == "" {
			// Physical goods and products with no configured content are skipped,
			// not failed.
			continue
		}

		outcome.DeliveryCount++
		if err := d.notifier.Send(ctx, sale.CustomerPhone, message); err != nil {
			log.Printf("[delivery][dispatcher] send failed sale_id=%s product_id=%s err=%v", sale.ID, item.ProductID, err)
			outcome.Sent = false
		}
	}

	if outcome.DeliveryCount > 0 {
		log.Printf("[delivery][dispatcher] dispatch done sale_id=%s deliveries=%d all_sent=%t", sale.ID, outcome.DeliveryCount, outcome.Sent)
	}
	return outcome
}

func buildDeliveryMessage(info entities.ProductDeliveryInfo) string {
	switch info.DeliveryType {
	case entities.DeliveryTypeText:
		if strings.TrimSpace(info.DeliveryContent) == "" {
			return ""
		}
		return info.DeliveryContent
	case entities.DeliveryTypeLink:
		if strings.TrimSpace(info.DeliveryContent) == "" {
			return ""
		}
		return fmt.Sprintf("🎉 Aqui está o seu acesso ao *%s*:\n\n%s", info.Name, info.DeliveryContent)
	case entities.DeliveryTypeFile:
		if strings.TrimSpace(info.DeliveryFileURL) == "" {
			return ""
		}
		return fmt.Sprintf("📎 Seu arquivo do *%s* está pronto para download:\n\n%s", info.Name, info.DeliveryFileURL)
	default:
		return ""
	}
}
