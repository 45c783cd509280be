package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	catalog "github.com/nordiclux/storefront/internal/catalog/domain"
)

// ImportJSON ingests a catalog export: a top-level JSON array of products.
// Products whose SKU already exists (case-insensitively), or that are missing
// a name or SKU, are skipped rather than reported. A payload that is not a
// product array aborts the whole import.
func (imp *Importer) ImportJSON(data []byte) (JSONResult, error) {
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return JSONResult{}, fmt.Errorf("invalid product export: %w", err)
	}

	var res JSONResult
	for _, p := range products {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.SKU) == "" {
			res.SkippedCount++
			continue
		}
		if _, exists := imp.catalog.FindBySKU(p.SKU); exists {
			res.SkippedCount++
			continue
		}
		if _, err := imp.catalog.Add(p); err != nil {
			res.SkippedCount++
			continue
		}
		res.ImportedCount++
	}

	res.Message = fmt.Sprintf("Imported %d products, skipped %d", res.ImportedCount, res.SkippedCount)
	return res, nil
}
