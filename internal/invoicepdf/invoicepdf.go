// Package invoicepdf renders the printable single-page invoice.
package invoicepdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Summary is what the printed invoice shows.
type Summary struct {
	StoreName    string
	CustomerName string
	MedicineName string
	Date         time.Time
	Amount       decimal.Decimal
}

const (
	labelWidth = 60.0
	valueWidth = 110.0
	rowHeight  = 10.0
)

// Render draws the invoice as a titled two-column table and returns the
// PDF document bytes.
func Render(s Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 16, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	medicine := s.MedicineName
	if medicine == "" {
		medicine = "-"
	}
	rows := [][2]string{
		{"Medical Name", s.StoreName},
		{"Customer Name", s.CustomerName},
		{"Medicine Name", medicine},
		{"Date", s.Date.Format("2006-01-02")},
		{"Paying Amount", s.Amount.StringFixed(2)},
	}

	left := (210 - labelWidth - valueWidth) / 2
	for _, row := range rows {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(labelWidth, rowHeight, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(valueWidth, rowHeight, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
