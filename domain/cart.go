package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry in the shopping cart. ProductID is the
// uniqueness key: re-adding an existing product increments Quantity
// instead of appending a duplicate line.
type CartLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Size      Size            `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is UnitPrice multiplied by Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
