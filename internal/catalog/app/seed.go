package app

import (
	"time"

	"github.com/nordiclux/storefront/internal/catalog/domain"
)

// seedProducts is the starter catalog installed on first run, before any
// admin has imported or created products.
func seedProducts(now time.Time) []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Niacinamide 10% + Zinc 1% Serum",
			Brand:       "The Ordinary",
			Category:    "Serum",
			Price:       12.90,
			Image:       "https://theordinary.com/dw/image/v2/BFKJ_PRD/on/demandware.static/-/Sites-deciem-master/default/dwce8a7cdf/Images/products/The%20Ordinary/rdn-niacinamide-10pct-zinc-1pct-30ml.png?sh=900&sm=fit&sw=900",
			Badge:       "Best Seller",
			Rating:      5,
			Country:     "Canada",
			Reviews:     2847,
			Stock:       150,
			SKU:         "ORD-NIA-001",
			Description: "A water-based serum designed to help improve skin clarity, control excess oil, refine texture and brighten the complexion.",
			Overview:    "The Ordinary Niacinamide 10% + Zinc 1% – 30ml is a water-based serum designed to help improve skin clarity, control excess oil, refine texture and brighten the complexion.",
			Ingredients: []domain.Ingredient{
				{
					Name:        "Niacinamide (Vitamin B3)",
					Percentage:  "10%",
					Description: "Helps reduce the appearance of blemishes and congestion, supports barrier function, improves texture, and boosts radiance.",
				},
				{
					Name:        "Zinc PCA",
					Percentage:  "1%",
					Description: "Works to balance sebum (oil) production and calm signs of congestion.",
				},
			},
			Benefits: []string{
				"Minimizes the appearance of enlarged pores and surface blemishes",
				"Helps control excess oil and shine",
				"Improves skin texture and tone with consistent use",
				"Boosts skin brightness and radiance",
				"Lightweight, non-greasy, and easy to layer under moisturizers or sunscreen",
			},
			HowToUse: []string{
				"Cleanse your face first",
				"Apply a few drops to clean, dry skin in the morning and/or evening",
				"Follow with moisturizer and sunscreen in the daytime",
				"Patch test before first use, especially if you have sensitive skin",
			},
			Tips: []string{
				"Suitable for all skin types, but high 10% niacinamide can be strong, so start slowly if your skin is sensitive",
				"If irritation occurs, stop use and consult with a dermatologist",
				"Daily sunscreen is recommended when using potent active ingredients like niacinamide",
				"Avoid using it at the same time as pure Vitamin C (L-ascorbic acid); apply those at different times of day if you're using both",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Hydrating Facial Cleanser",
			Brand:     "CeraVe",
			Category:  "Cleanser",
			Price:     15.49,
			Image:     "https://images.unsplash.com/photo-1556228720-195a672e8a03?fit=max&fm=jpg&q=80&w=1080",
			Rating:    5,
			Country:   "USA",
			Reviews:   1523,
			Stock:     200,
			SKU:       "CER-CLE-001",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
