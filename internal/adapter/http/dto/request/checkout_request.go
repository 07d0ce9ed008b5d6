package request

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCheckoutTotal = errors.New("invalid checkout total")
)

type CheckoutItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	UnitPrice float64 `json:"unit_price"`
}

// ResolveUnitPrice tolerates both `unit_price` and the legacy `price` field
// still sent by older storefront versions.
func (r CheckoutItemRequest) ResolveUnitPrice() float64 {
	if r.UnitPrice > 0 {
		return r.UnitPrice
	}
	return r.Price
}

// ResolveQuantity defaults missing quantities to a single unit.
func (r CheckoutItemRequest) ResolveQuantity() int {
	if r.Quantity > 0 {
		return r.Quantity
	}
	return 1
}

// CheckoutRequest is the storefront-facing payload that opens a sale and asks
// for a payment instrument.
type CheckoutRequest struct {
	Matricula     string                `json:"matricula" binding:"required"`
	CustomerPhone string                `json:"customer_phone" binding:"required"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	CustomerCPF   string                `json:"customer_cpf"`
	Items         []CheckoutItemRequest `json:"items" binding:"required"`
	Total         float64               `json:"total"`
	PaymentMethod string                `json:"payment_method"`
}

func (r CheckoutRequest) ResolveSellerPublicID() string {
	return strings.TrimSpace(r.Matricula)
}

// ResolvePaymentMethod defaults to pix, the dominant method on the platform.
func (r CheckoutRequest) ResolvePaymentMethod() string {
	if v := strings.ToLower(strings.TrimSpace(r.PaymentMethod)); v != "" {
		return v
	}
	return "pix"
}

// ResolveTotal prefers the explicit total and falls back to summing the items.
func (r CheckoutRequest) ResolveTotal() (float64, error) {
	if r.Total > 0 {
		return r.Total, nil
	}

	totalFromItems := 0.0
	for _, item := range r.Items {
		price := item.ResolveUnitPrice()
		if price > 0 {
			totalFromItems += price * float64(item.ResolveQuantity())
		}
	}
	if totalFromItems > 0 {
		return totalFromItems, nil
	}

	return 0, ErrInvalidCheckoutTotal
}
