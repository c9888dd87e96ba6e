package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 7.0
)

// RenderPDF lays out a monthly report on A4 pages. Long listings flow onto
// new pages; truncated ones end with a "+N more" line.
func RenderPDF(r *MonthlyReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Monthly report "+r.Period(), true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Monthly report - "+r.Period()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Summary")
	summary := [][2]string{
		{"Revenue this month", r.Revenue.StringFixed(2)},
		{"Sales this month", fmt.Sprintf("%d", r.SalesCount)},
		{"Units sold", fmt.Sprintf("%d", r.UnitsSold)},
		{"Products", fmt.Sprintf("%d", r.ProductCount)},
		{"Low stock products", fmt.Sprintf("%d", r.LowStockCount)},
		{"Inventory value (sale price)", r.InventoryValue.StringFixed(2)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary {
		pdf.CellFormat(90, lineHeight, row[0], "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, row[1], "B", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Sales")
	if len(r.Sales) == 0 {
		note(pdf, "No sales recorded this month.")
	} else {
		widths := []float64{30, 85, 25, 40}
		header(pdf, widths, "Date", "Product", "Qty", "Total")
		for _, s := range r.Sales {
			pdf.CellFormat(widths[0], lineHeight, s.Date.Format("2006-01-02"), "B", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], lineHeight, tr(s.ProductName), "B", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], lineHeight, fmt.Sprintf("%d", s.Quantity), "B", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], lineHeight, s.TotalPrice.StringFixed(2), "B", 1, "R", false, 0, "")
		}
		if r.MoreSales > 0 {
			note(pdf, fmt.Sprintf("+%d more sales", r.MoreSales))
		}
	}
	pdf.Ln(6)

	section(pdf, "Low stock")
	if len(r.LowStock) == 0 {
		note(pdf, "Every product is above its minimum stock.")
	} else {
		widths := []float64{85, 45, 25, 25}
		header(pdf, widths, "Product", "Category", "Stock", "Minimum")
		for _, p := range r.LowStock {
			pdf.CellFormat(widths[0], lineHeight, tr(p.Name), "B", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], lineHeight, tr(p.Category), "B", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], lineHeight, fmt.Sprintf("%d", p.Stock), "B", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], lineHeight, fmt.Sprintf("%d", p.MinStock), "B", 1, "R", false, 0, "")
		}
		if r.MoreLowStock > 0 {
			note(pdf, fmt.Sprintf("+%d more products", r.MoreLowStock))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func header(pdf *fpdf.Fpdf, widths []float64, titles ...string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(31, 41, 55)
	pdf.SetTextColor(255, 255, 255)
	for i, t := range titles {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], lineHeight, t, "", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
}

func note(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, lineHeight, text, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}
