package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	request "isa_platform/internal/adapter/http/dto/request"
	response "isa_platform/internal/adapter/http/dto/response"
	"isa_platform/internal/usecase"
	"isa_platform/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives Mercado Pago payment notifications.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleMercadoPago accepts both notification styles the gateway sends: the
// JSON body envelope and the older query-string form (?topic=payment&id=...).
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_WEBHOOK", "Invalid webhook payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.WebhookRequest
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			log.Printf("[webhook][handler] payload unmarshal failed err=%v", err)
			appErr := pkg.NewDomainErrorSimple("INVALID_WEBHOOK", "Invalid webhook payload", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	event := usecase.WebhookEvent{
		Type:       payload.Type,
		Action:     payload.Action,
		PaymentID:  payload.ResolvePaymentID(),
		RawPayload: raw,
	}
	if event.Type == "" {
		event.Type = firstNonEmpty(payload.Topic, c.Query("type"), c.Query("topic"))
	}
	if event.PaymentID == "" {
		event.PaymentID = firstNonEmpty(c.Query("data.id"), c.Query("id"))
	}

	result, err := h.usecase.ProcessWebhook(c.Request.Context(), event)
	if err != nil {
		log.Printf("[webhook][handler] process failed payment_id=%s err=%v", event.PaymentID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] process done payment_id=%s status=%s already_processed=%t", event.PaymentID, result.Status, result.AlreadyProcessed)

	c.JSON(http.StatusOK, response.WebhookAckResponse{
		Received:         result.Received,
		Status:           result.Status,
		AlreadyProcessed: result.AlreadyProcessed,
	})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrWebhookGatewayValidation):
		return pkg.NewDomainErrorSimple("PAYMENT_VALIDATION_FAILED", "Payment could not be validated", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWebhookSaleNotFound):
		return pkg.NewDomainErrorSimple("SALE_NOT_FOUND", "Sale not found for this payment", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicatePaymentReference):
		return pkg.NewDomainErrorSimple("DUPLICATE_PAYMENT_REFERENCE", "Payment already attached to another sale", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
