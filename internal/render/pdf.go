package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
)

const (
	pageWidth  = 210.0
	marginX    = 15.0
	tableWidth = pageWidth - 2*marginX
)

var columnWidths = []float64{80, 25, 25, 25, 25}

// buildPDF lays out the estimate on A4. The letterhead image, when present
// on disk, sits behind the header block.
func buildPDF(doc Document, letterheadDir string) ([]byte, error) {
	if doc.Estimate == nil {
		return nil, fmt.Errorf("estimate is required")
	}
	est := doc.Estimate

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 15, marginX)
	pdf.AddPage()

	if path := letterheadFile(doc, letterheadDir); path != "" {
		pdf.ImageOptions(path, 0, 0, pageWidth, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetY(55)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, doc.BusinessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if doc.Phone != "" || doc.Address != "" {
		pdf.CellFormat(0, 5, strings.TrimSpace(doc.Address+"  "+doc.Phone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	title := est.EstimateTitle
	if title == "" {
		title = "Estimate"
	}
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Client: "+est.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+est.CreatedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeItemTable(pdf, est.Items)
	writeTotals(pdf, est)

	if est.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(tableWidth, 5, est.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeItemTable(pdf *fpdf.Fpdf, items []models.EstimateItem) {
	headers := []string{"Description", "Qty", "Unit", "Unit Price", "Amount"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(columnWidths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(columnWidths[0], 7, item.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[1], 7, item.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[2], 7, string(item.Unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[3], 7, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[4], 7, item.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func writeTotals(pdf *fpdf.Fpdf, est *models.Estimate) {
	labelWidth := columnWidths[0] + columnWidths[1] + columnWidths[2] + columnWidths[3]

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelWidth, 7, "Total Materials", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[4], 7, est.TotalMaterials.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(labelWidth, 7, "Workmanship", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[4], 7, est.Workmanship.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelWidth, 7, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[4], 7, est.GrandTotal.StringFixed(2), "1", 1, "R", false, 0, "")
}

// letterheadFile returns the resolved image path when the file exists,
// otherwise empty. Missing images never fail a render.
func letterheadFile(doc Document, dir string) string {
	if doc.LetterheadPath == nil || *doc.LetterheadPath == "" {
		return ""
	}
	path := *doc.LetterheadPath
	if !filepath.IsAbs(path) && dir != "" && !strings.HasPrefix(path, dir) {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
