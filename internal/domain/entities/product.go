package entities

// DeliveryType classifies how a product's digital content is fulfilled.

type DeliveryType string

const (
	DeliveryTypeNone DeliveryType = "none"
	DeliveryTypeText DeliveryType = "text"
	DeliveryTypeLink DeliveryType = "link"
	DeliveryTypeFile DeliveryType = "file"
)

// ProductDeliveryInfo is the catalog projection the delivery dispatcher needs.
// Physical products carry an empty or "none" delivery type.

type ProductDeliveryInfo struct {
	ProductID       string       `json:"product_id"`
	Name            string       `json:"name"`
	DeliveryType    DeliveryType `json:"delivery_type,omitempty"`
	DeliveryContent string       `json:"delivery_content,omitempty"`
	DeliveryFileURL string       `json:"delivery_file_url,omitempty"`
}
