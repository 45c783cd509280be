package domain

import "time"

type Ingredient struct {
	Name        string `json:"name"`
	Percentage  string `json:"percentage,omitempty"`
	Description string `json:"description"`
}

type Product struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Brand         string       `json:"brand,omitempty"`
	Category      string       `json:"category"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
	Badge         string       `json:"badge,omitempty"`
	Rating        int          `json:"rating"`
	Country       string       `json:"country"`
	Reviews       int          `json:"reviews"`
	Description   string       `json:"description,omitempty"`
	Stock         int          `json:"stock"`
	SKU           string       `json:"sku"`
	Overview      string       `json:"overview,omitempty"`
	Ingredients   []Ingredient `json:"ingredients,omitempty"`
	Benefits      []string     `json:"benefits,omitempty"`
	HowToUse      []string     `json:"howToUse,omitempty"`
	Tips          []string     `json:"tips,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// DiscountPercent is the round-number discount badge shown when an original
// price is set above the current price.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= p.Price || p.OriginalPrice == 0 {
		return 0
	}
	return int((p.OriginalPrice-p.Price)/p.OriginalPrice*100 + 0.5)
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name          *string       `json:"name,omitempty"`
	Brand         *string       `json:"brand,omitempty"`
	Category      *string       `json:"category,omitempty"`
	Price         *float64      `json:"price,omitempty"`
	OriginalPrice *float64      `json:"originalPrice,omitempty"`
	Image         *string       `json:"image,omitempty"`
	Badge         *string       `json:"badge,omitempty"`
	Rating        *int          `json:"rating,omitempty"`
	Country       *string       `json:"country,omitempty"`
	Reviews       *int          `json:"reviews,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Stock         *int          `json:"stock,omitempty"`
	SKU           *string       `json:"sku,omitempty"`
	Overview      *string       `json:"overview,omitempty"`
	Ingredients   *[]Ingredient `json:"ingredients,omitempty"`
	Benefits      *[]string     `json:"benefits,omitempty"`
	HowToUse      *[]string     `json:"howToUse,omitempty"`
	Tips          *[]string     `json:"tips,omitempty"`
}

// Apply merges the patch into p and refreshes the update stamp.
func (patch Patch) Apply(p *Product, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Badge != nil {
		p.Badge = *patch.Badge
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.Reviews != nil {
		p.Reviews = *patch.Reviews
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Overview != nil {
		p.Overview = *patch.Overview
	}
	if patch.Ingredients != nil {
		p.Ingredients = *patch.Ingredients
	}
	if patch.Benefits != nil {
		p.Benefits = *patch.Benefits
	}
	if patch.HowToUse != nil {
		p.HowToUse = *patch.HowToUse
	}
	if patch.Tips != nil {
		p.Tips = *patch.Tips
	}
	p.UpdatedAt = now
}
