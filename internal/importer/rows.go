package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	catalog "github.com/nordiclux/storefront/internal/catalog/domain"
)

// row is one spreadsheet line keyed by lowercased header names.
type row map[string]string

// value returns the first non-empty match among the candidate column names,
// compared case-insensitively and trimmed. Unresolved fields are empty.
func (r row) value(candidates ...string) string {
	for _, key := range candidates {
		if v, ok := r[strings.ToLower(key)]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseCSV(data []byte) ([]row, error) {
	rd := csv.NewReader(bytes.NewReader(data))
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	records, err := rd.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return recordsToRows(records), nil
}

func parseExcel(data []byte) ([]row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return recordsToRows(records), nil
}

// recordsToRows maps the first record as the header row and keys every
// following record by it, skipping fully empty lines.
func recordsToRows(records [][]string) []row {
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []row
	for _, rec := range records[1:] {
		empty := true
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		r := make(row, len(header))
		for i, h := range header {
			if i < len(rec) {
				r[h] = rec[i]
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// fields holds a row's logical values after alias resolution.
type fields struct {
	name          string
	category      string
	price         string
	sku           string
	image         string
	stock         string
	brand         string
	originalPrice string
	description   string
	rating        string
	country       string
	reviews       string
}

func resolveFields(r row) fields {
	f := fields{
		name:          r.value("name", "product name", "product_name", "title"),
		category:      r.value("category", "cat", "product category", "product_category"),
		price:         r.value("price", "product price", "product_price", "cost"),
		sku:           r.value("sku", "product sku", "product_sku", "code"),
		image:         r.value("image", "image url", "image_url", "imageUrl", "picture", "photo"),
		stock:         r.value("stock", "quantity", "qty", "inventory", "stock quantity"),
		brand:         r.value("brand", "manufacturer", "maker"),
		originalPrice: r.value("original price", "original_price", "originalPrice", "msrp", "list price"),
		description:   r.value("description", "desc", "details", "product description"),
		rating:        r.value("rating", "stars", "review rating"),
		country:       r.value("country", "origin", "made in"),
		reviews:       r.value("reviews", "review count", "review_count", "num reviews"),
	}
	if f.rating == "" {
		f.rating = "5"
	}
	if f.country == "" {
		f.country = "USA"
	}
	if f.reviews == "" {
		f.reviews = "0"
	}
	return f
}

// rowChecks runs in order; the first failing check short-circuits the row.
var rowChecks = []struct {
	name  string
	check func(f fields) string
}{
	{"name", func(f fields) string {
		if f.name == "" {
			return "Product name is required"
		}
		return ""
	}},
	{"category", func(f fields) string {
		if f.category == "" {
			return "Category is required"
		}
		return ""
	}},
	{"price", func(f fields) string {
		if _, err := strconv.ParseFloat(f.price, 64); f.price == "" || err != nil {
			return "Valid price is required"
		}
		return ""
	}},
	{"sku", func(f fields) string {
		if f.sku == "" {
			return "SKU is required"
		}
		return ""
	}},
	{"image", func(f fields) string {
		if f.image == "" {
			return "Image URL is required"
		}
		return ""
	}},
	{"stock", func(f fields) string {
		if _, err := strconv.Atoi(f.stock); f.stock == "" || err != nil {
			return "Valid stock quantity is required"
		}
		return ""
	}},
}

func (f fields) firstFailure() string {
	for _, c := range rowChecks {
		if msg := c.check(f); msg != "" {
			return msg
		}
	}
	return ""
}

// toProduct coerces the validated row into a product, applying numeric
// defaults for rating and review count.
func (f fields) toProduct() catalog.Product {
	price, _ := strconv.ParseFloat(f.price, 64)
	stock, _ := strconv.Atoi(f.stock)

	var originalPrice float64
	if f.originalPrice != "" {
		originalPrice, _ = strconv.ParseFloat(f.originalPrice, 64)
	}

	rating, err := strconv.Atoi(f.rating)
	if err != nil || rating == 0 {
		rating = 5
	}
	reviews, err := strconv.Atoi(f.reviews)
	if err != nil {
		reviews = 0
	}

	return catalog.Product{
		Name:          f.name,
		Brand:         f.brand,
		Category:      f.category,
		Price:         price,
		OriginalPrice: originalPrice,
		Image:         f.image,
		Description:   f.description,
		Stock:         stock,
		SKU:           f.sku,
		Rating:        rating,
		Country:       f.country,
		Reviews:       reviews,
	}
}
