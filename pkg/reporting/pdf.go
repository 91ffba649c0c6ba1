package reporting

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

// Report palette
var (
	colorAccent    = [3]int{139, 0, 0}     // Dark red masthead and header row
	colorHeaderTxt = [3]int{255, 255, 255} // White header text
	colorBodyTxt   = [3]int{0, 0, 0}       // Black cell text
)

const (
	reportTitle = "Formula 1 Drivers Report"

	pageMargin = 15.0
	breakLimit = 192.0 // rows that would cross this Y start a new page

	headerRowH = 10.0
	textRowH   = 8.0
	imageRowH  = 19.0

	assetColWidth = 21.2
	thumbEdge     = 17.6 // rendered thumbnail edge

	logoW = 35.3
	logoH = 17.6
)

// PDFGenerator renders resolved rows into the paginated drivers report.
type PDFGenerator struct {
	logoPath  string
	headshots bool
	columns   []Column
}

// NewPDFGenerator creates a PDF generator. logoPath may name a file that
// does not exist; the masthead logo is skipped in that case.
func NewPDFGenerator(logoPath string, headshots bool) *PDFGenerator {
	return &PDFGenerator{
		logoPath:  logoPath,
		headshots: headshots,
		columns:   Columns(),
	}
}

// Generate renders the report and returns the PDF bytes.
func (g *PDFGenerator) Generate(rows []Row) ([]byte, error) {
	pdf := g.build(rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

// build assembles the document without serializing it so tests can inspect
// page structure.
func (g *PDFGenerator) build(rows []Row) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	g.writeMasthead(pdf)
	g.writeTable(pdf, rows)
	g.addPageNumbers(pdf)

	return pdf
}

// writeMasthead draws the optional logo and the title block.
func (g *PDFGenerator) writeMasthead(pdf *fpdf.Fpdf) {
	y := pageMargin
	if g.logoPath != "" {
		if _, err := os.Stat(g.logoPath); err == nil {
			pdf.ImageOptions(g.logoPath, pageMargin, y, logoW, logoH, false, fpdf.ImageOptions{}, 0, "")
			y += logoH + 3
		} else {
			log.Debug().Str("path", g.logoPath).Msg("Logo not found, skipping masthead image")
		}
	}

	pdf.SetY(y)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.CellFormat(0, 12, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

// writeTable renders the header row and every data row, breaking pages as
// needed. Continuation pages hold rows only; the header is not repeated.
func (g *PDFGenerator) writeTable(pdf *fpdf.Fpdf, rows []Row) {
	widths := g.columnWidths()
	var tableWidth float64
	for _, w := range widths {
		tableWidth += w
	}
	pageWidth, _ := pdf.GetPageSize()
	left := (pageWidth - tableWidth) / 2

	g.writeTableHeader(pdf, left, widths)

	for _, row := range rows {
		rowH := textRowH
		if g.headshots && row.Asset != "" {
			rowH = imageRowH
		}
		if pdf.GetY()+rowH > breakLimit {
			pdf.AddPage()
			pdf.SetY(pageMargin)
		}
		g.writeRow(pdf, left, widths, row, rowH)
	}
}

func (g *PDFGenerator) writeTableHeader(pdf *fpdf.Fpdf, left float64, widths []float64) {
	pdf.SetX(left)
	pdf.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.SetTextColor(colorHeaderTxt[0], colorHeaderTxt[1], colorHeaderTxt[2])
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)

	for i, label := range g.headerLabels() {
		pdf.CellFormat(widths[i], headerRowH, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (g *PDFGenerator) writeRow(pdf *fpdf.Fpdf, left float64, widths []float64, row Row, rowH float64) {
	pdf.SetX(left)
	pdf.SetFillColor(row.Fill.R, row.Fill.G, row.Fill.B)
	pdf.SetTextColor(colorBodyTxt[0], colorBodyTxt[1], colorBodyTxt[2])
	pdf.SetFont("Helvetica", "", 9)

	cells := row.Cells
	if g.headshots {
		if row.Asset != "" {
			// Draw the bordered cell first, then overlay the thumbnail
			// centered inside it.
			x, y := pdf.GetX(), pdf.GetY()
			pdf.CellFormat(widths[0], rowH, "", "1", 0, "C", true, 0, "")
			pdf.ImageOptions(row.Asset, x+(widths[0]-thumbEdge)/2, y+(rowH-thumbEdge)/2, thumbEdge, thumbEdge, false, fpdf.ImageOptions{}, 0, "")
		} else {
			pdf.CellFormat(widths[0], rowH, NA, "1", 0, "C", true, 0, "")
		}
		widths = widths[1:]
	}
	for i, cell := range cells {
		pdf.CellFormat(widths[i], rowH, cell, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (g *PDFGenerator) columnWidths() []float64 {
	widths := make([]float64, 0, len(g.columns)+1)
	if g.headshots {
		widths = append(widths, assetColWidth)
	}
	for _, col := range g.columns {
		widths = append(widths, col.Width)
	}
	return widths
}

func (g *PDFGenerator) headerLabels() []string {
	labels := make([]string, 0, len(g.columns)+1)
	if g.headshots {
		labels = append(labels, "Headshot")
	}
	for _, col := range g.columns {
		labels = append(labels, col.Header)
	}
	return labels
}

// addPageNumbers stamps "Page n" on every page once the layout is final.
func (g *PDFGenerator) addPageNumbers(pdf *fpdf.Fpdf) {
	pdf.SetAutoPageBreak(false, 0)

	totalPages := pdf.PageCount()
	for i := 1; i <= totalPages; i++ {
		pdf.SetPage(i)
		_, pageHeight := pdf.GetPageSize()

		pdf.SetY(pageHeight - 12)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(colorBodyTxt[0], colorBodyTxt[1], colorBodyTxt[2])
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", i), "", 0, "R", false, 0, "")
	}
}
