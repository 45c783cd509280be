package adapter

import (
	cartapp "github.com/nordiclux/storefront/internal/cart/app"
	checkoutdomain "github.com/nordiclux/storefront/internal/checkout/domain"
)

// CartServiceReader adapts the cart store to what the checkout flow needs.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Lines() []checkoutdomain.DraftLine {
	lines := r.svc.Lines()
	out := make([]checkoutdomain.DraftLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, checkoutdomain.DraftLine{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Brand:     l.Product.Brand,
			Image:     l.Product.Image,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func (r *CartServiceReader) Total() float64 {
	return r.svc.Total()
}

func (r *CartServiceReader) Clear() error {
	return r.svc.Clear()
}
