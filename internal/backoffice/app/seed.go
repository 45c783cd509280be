package app

import (
	"time"

	"github.com/nordiclux/storefront/internal/backoffice/domain"
)

// seedCategories is the starter catalog taxonomy shown before an admin has
// created any categories.
func seedCategories(now time.Time) []domain.Category {
	return []domain.Category{
		{
			ID:        "1",
			Name:      "Skincare",
			Count:     245,
			Image:     "https://images.unsplash.com/photo-1620917669809-1af0497965de?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxza2luY2FyZSUyMHJvdXRpbmUlMjBtaW5pbWFsfGVufDF8fHx8MTc2NjcyMzgxMXww&ixlib=rb-4.1.0&q=80&w=1080",
			Slug:      "skincare",
			CreatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Makeup",
			Count:     189,
			Image:     "https://images.unsplash.com/photo-1765852549902-bd9c79d01afb?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxjb3NtZXRpY3MlMjBtYWtldXAlMjBjb2xsZWN0aW9ufGVufDF8fHx8MTc2NjcyMzgxMXww&ixlib=rb-4.1.0&q=80&w=1080",
			Slug:      "makeup",
			CreatedAt: now,
		},
	}
}

func seedSEO(now time.Time) []domain.SEOEntry {
	return []domain.SEOEntry{
		{
			ID:          "1",
			Page:        "home",
			Title:       "Nordic Lux - Premium Beauty Products",
			Description: "Shop authentic skincare and beauty products from trusted US and Canadian brands.",
			Keywords:    "beauty, skincare, cosmetics, nordic lux",
			UpdatedAt:   now,
		},
	}
}
