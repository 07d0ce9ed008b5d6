package routes

import (
	"isa_platform/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout = "/checkout"
	PathWebhooks = "/webhooks"
)

func addPaymentRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, webhookHandler *handlers.WebhookHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("", checkoutHandler.CreateCheckout)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		// Mercado Pago posts here; configured in the gateway dashboard.
		webhooks.POST("/mercadopago", webhookHandler.HandleMercadoPago)
	}
}
