package handlers

import (
	"errors"
	"log"
	"net/http"

	request "isa_platform/internal/adapter/http/dto/request"
	response "isa_platform/internal/adapter/http/dto/response"
	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase"
	"isa_platform/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_CHECKOUT_INPUT", "Invalid checkout payload", http.StatusBadRequest)
)

// CheckoutHandler handles HTTP requests that open a sale and build its
// payment instrument.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateCheckout receives the storefront cart and returns the pending sale
// plus whatever the customer needs to pay (QR code, link or boleto).
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	input := usecase.CheckoutInput{
		SellerPublicID: payload.ResolveSellerPublicID(),
		CustomerPhone:  payload.CustomerPhone,
		CustomerName:   payload.CustomerName,
		CustomerEmail:  payload.CustomerEmail,
		CustomerCPF:    payload.CustomerCPF,
		Total:          payload.Total,
		PaymentMethod:  entities.PaymentMethod(payload.ResolvePaymentMethod()),
	}
	for _, item := range payload.Items {
		input.Items = append(input.Items, usecase.CheckoutItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.ResolveQuantity(),
			UnitPrice: item.ResolveUnitPrice(),
		})
	}

	log.Printf("[checkout][handler] create start matricula=%s method=%s items=%d", input.SellerPublicID, input.PaymentMethod, len(input.Items))
	created, err := h.usecase.CreateCheckout(c.Request.Context(), input)
	if err != nil {
		log.Printf("[checkout][handler] create failed matricula=%s sale_id=%s err=%v", input.SellerPublicID, created.ID, err)
		appErr := mapCheckoutError(err)
		if created.ID != "" {
			// The pending sale was persisted before the gateway refused; hand
			// the id back so support can trace the failed attempt.
			c.JSON(appErr.HTTPStatus, gin.H{"code": appErr.Code, "error": appErr.Message, "sale_id": created.ID})
			return
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create success sale_id=%s method=%s", created.ID, created.PaymentMethod)

	resp := response.FromSale(created)
	resp.Message = checkoutMessageFor(created.PaymentMethod)
	c.JSON(http.StatusOK, resp)
}

func checkoutMessageFor(method entities.PaymentMethod) string {
	switch method {
	case entities.PaymentMethodPix:
		return "Pedido criado! Pague com o Pix copia e cola para confirmar."
	case entities.PaymentMethodBoleto:
		return "Pedido criado! Pague o boleto para confirmar."
	default:
		return "Pedido criado! Finalize o pagamento pelo link."
	}
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedPaymentMethod):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_PAYMENT_METHOD", "Unsupported payment method", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSellerNotFound):
		return pkg.NewDomainErrorSimple("SELLER_NOT_FOUND", "Seller not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingConfiguration):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrGatewayRejected):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_REJECTED", "Payment provider rejected the request", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
