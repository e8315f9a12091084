package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Table describes a simple tabular document: a title, column headers with
// widths in millimeters, and row data.
type Table struct {
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// Render produces the PDF bytes for a table document. Long cell values are
// truncated to keep rows on a single line.
func Render(table Table) ([]byte, error) {
	if len(table.Headers) != len(table.Widths) {
		return nil, fmt.Errorf("header/width count mismatch: %d headers, %d widths", len(table.Headers), len(table.Widths))
	}

	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetTitle(table.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, table.Title, "", 1, "L", false, 0, "")
	doc.Ln(2)

	// Header row
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(230, 230, 230)
	for i, header := range table.Headers {
		doc.CellFormat(table.Widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	// Data rows
	doc.SetFont("Helvetica", "", 8)
	for _, row := range table.Rows {
		for i := range table.Headers {
			value := ""
			if i < len(row) {
				value = truncate(row[i], int(table.Widths[i]/1.8))
			}
			doc.CellFormat(table.Widths[i], 7, value, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
