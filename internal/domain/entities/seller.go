package entities

// Seller is the owner identity behind a storefront.
//
// Storage model (DynamoDB):
//   - PK: user_id
//   - GSI1 (matricula-index): matricula
//   - GSI2 (vitrine-index): vitrine_slug
//
// Customers reference sellers by matricula (public id) or by the vitrine
// storefront slug; both resolve to the same user_id.

type Seller struct {
	UserID      string `json:"user_id"`
	Matricula   string `json:"matricula"`
	VitrineSlug string `json:"vitrine_slug,omitempty"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// SellerBalance is the per-seller ledger row, mutated only by the webhook
// reconciler on payment approval.
//
// Invariant: AvailableBalance increases by exactly the sale's seller_amount
// once per approved sale; it never decreases here (withdrawals are external).

type SellerBalance struct {
	SellerID         string  `json:"seller_id"`
	AvailableBalance float64 `json:"available_balance"`
	PendingBalance   float64 `json:"pending_balance"`
	TotalEarned      float64 `json:"total_earned"`
	TotalWithdrawn   float64 `json:"total_withdrawn"`
}
