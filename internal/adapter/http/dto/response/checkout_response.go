package response

import (
	"time"

	"isa_platform/internal/domain/entities"
)

// CheckoutPaymentResponse carries the instrument the customer pays with. Only
// the fields for the chosen method are populated.
type CheckoutPaymentResponse struct {
	PixQRCode       string    `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string    `json:"pix_qr_code_base64,omitempty"`
	PixCopyPaste    string    `json:"pix_copy_paste,omitempty"`
	CheckoutURL     string    `json:"checkout_url,omitempty"`
	BoletoURL       string    `json:"boleto_url,omitempty"`
	BoletoBarcode   string    `json:"boleto_barcode,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type CheckoutResponse struct {
	Success       bool                    `json:"success"`
	SaleID        string                  `json:"sale_id"`
	PaymentID     string                  `json:"payment_id,omitempty"`
	PaymentMethod string                  `json:"payment_method"`
	Total         float64                 `json:"total"`
	Payment       CheckoutPaymentResponse `json:"payment"`
	Message       string                  `json:"message,omitempty"`
}

func FromSale(s entities.Sale) CheckoutResponse {
	return CheckoutResponse{
		Success:       true,
		SaleID:        s.ID,
		PaymentID:     s.MPPaymentID,
		PaymentMethod: string(s.PaymentMethod),
		Total:         s.Total,
		Payment: CheckoutPaymentResponse{
			PixQRCode:       s.PixQRCode,
			PixQRCodeBase64: s.PixQRCodeBase64,
			PixCopyPaste:    s.PixCopyPaste,
			CheckoutURL:     s.CheckoutURL,
			BoletoURL:       s.BoletoURL,
			BoletoBarcode:   s.BoletoBarcode,
			ExpiresAt:       s.ExpiresAt,
		},
	}
}
