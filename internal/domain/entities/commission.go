package entities

import "time"

// PlatformCommission is the append-only ledger entry created once per
// approved sale.

type PlatformCommission struct {
	ID         string    `json:"id"`
	SaleID     string    `json:"sale_id"`
	Amount     float64   `json:"amount"`
	Percentage float64   `json:"percentage"`
	CreatedAt  time.Time `json:"created_at"`
}
