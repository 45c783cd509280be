// Package importer turns uploaded spreadsheet (CSV/XLS/XLSX) or JSON catalog
// files into validated product insertions, reporting a per-row outcome.
//
// The two paths disagree on duplicate SKUs on purpose: the spreadsheet path
// reports a duplicate as a row error, the JSON path counts it as a silent
// skip. Operators re-importing a JSON export expect already-present products
// to be ignored, while a spreadsheet row colliding with the catalog is almost
// always a data-entry mistake worth surfacing.
package importer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	catalog "github.com/nordiclux/storefront/internal/catalog/domain"
)

// Catalog is the slice of the catalog store the pipeline needs.
type Catalog interface {
	Add(p catalog.Product) (catalog.Product, error)
	FindBySKU(sku string) (catalog.Product, bool)
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SpreadsheetResult is the CSV/Excel outcome: per-row errors never abort the
// batch, a parse-level failure yields a single row-0 error and no successes.
type SpreadsheetResult struct {
	SuccessCount int        `json:"successCount"`
	Errors       []RowError `json:"errors"`
}

// JSONResult is the JSON-export outcome. Duplicate SKUs are skipped, not
// reported.
type JSONResult struct {
	ImportedCount int    `json:"importedCount"`
	SkippedCount  int    `json:"skippedCount"`
	Message       string `json:"message"`
}

type Importer struct {
	catalog Catalog
	log     *slog.Logger
}

func New(c Catalog, log *slog.Logger) *Importer {
	return &Importer{catalog: c, log: log}
}

// IsJSON reports whether the upload should take the JSON-export path.
func IsJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// ImportSpreadsheet dispatches on the file extension, parses the upload into
// header-keyed rows and runs the row pipeline.
func (imp *Importer) ImportSpreadsheet(filename string, data []byte) SpreadsheetResult {
	var (
		rows []row
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(data)
		if err != nil {
			return parseFailure(fmt.Sprintf("Error parsing CSV: %v", err))
		}
	case ".xlsx", ".xls":
		rows, err = parseExcel(data)
		if err != nil {
			return parseFailure(fmt.Sprintf("Error parsing Excel: %v", err))
		}
	default:
		return parseFailure("Unsupported file format. Please use CSV or Excel (.xlsx, .xls)")
	}

	return imp.processRows(rows)
}

func (imp *Importer) processRows(rows []row) SpreadsheetResult {
	res := SpreadsheetResult{Errors: []RowError{}}

	for i, r := range rows {
		// Operators see 1-indexed rows below a header row.
		rowNum := i + 2

		f := resolveFields(r)
		if msg := f.firstFailure(); msg != "" {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("Row %d: %s", rowNum, msg)})
			continue
		}

		if _, exists := imp.catalog.FindBySKU(f.sku); exists {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("Row %d: SKU %q already exists", rowNum, f.sku)})
			continue
		}

		if _, err := imp.catalog.Add(f.toProduct()); err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("Row %d: %v", rowNum, err)})
			continue
		}
		res.SuccessCount++
	}

	if imp.log != nil {
		imp.log.Info("spreadsheet import finished",
			slog.Int("imported", res.SuccessCount),
			slog.Int("errors", len(res.Errors)))
	}
	return res
}

func parseFailure(message string) SpreadsheetResult {
	return SpreadsheetResult{Errors: []RowError{{Row: 0, Message: message}}}
}
