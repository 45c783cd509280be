package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"
)

// templateHeader is the column layout handed to operators for bulk imports.
var templateHeader = []string{
	"name", "brand", "category", "price", "originalPrice", "image",
	"description", "stock", "sku", "rating", "country", "reviews",
}

var templateExample = []string{
	"Product Name", "Brand Name", "Category", "19.99", "24.99",
	"https://example.com/image.jpg", "Product description", "100",
	"PROD-001", "5", "USA", "0",
}

const TemplateFilename = "product_import_template.csv"

// CSVTemplate renders the import template: the header row plus one example row.
func CSVTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(templateHeader)
	_ = w.Write(templateExample)
	w.Flush()
	return buf.Bytes()
}

// ExportJSON serializes the full catalog with 2-space indentation and returns
// the payload together with a date-stamped download filename.
func (s *Service) ExportJSON() ([]byte, string, error) {
	raw, err := json.MarshalIndent(s.List(), "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("export catalog: %w", err)
	}
	name := fmt.Sprintf("products_export_%s.json", time.Now().Format("2006-01-02"))
	return raw, name, nil
}
