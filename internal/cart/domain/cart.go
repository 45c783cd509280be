package domain

import catalog "github.com/nordiclux/storefront/internal/catalog/domain"

// Line is one cart entry: the product reference, a snapshot of the product as
// it looked when added, and the chosen quantity. The snapshot keeps an open
// cart priced as the shopper saw it, regardless of later catalog edits.
type Line struct {
	ProductID string          `json:"productId"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
