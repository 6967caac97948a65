package domain

import "github.com/shopspring/decimal"

// Product prices are quoted in USD by the catalog; display conversion
// happens at render time, never here.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Origin      string          `json:"origin,omitempty"`
	Destination string          `json:"destination,omitempty"`
}

// CartLine is owned by the backend; the client holds a read-through copy.
type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

type Cart struct {
	Items []CartLine `json:"items"`
}

// Total sums price × quantity over all lines, in the catalog's native
// currency. Pure; recomputable in any order.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
