package render

import (
	"bytes"
	"fmt"
	"time"

	"fayina-backend/internal/layout"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	marginLeft   = 10.0
	marginTop    = 10.0
	marginRight  = 10.0
	contentWidth = 190.0

	// Blocks flow top-to-bottom; a block that would cross this line starts
	// a new page instead. Blocks are never split mid-row.
	bottomLimit = 285.0

	headerTitleHeight = 12.0
	headerMetaHeight  = 6.0
	partyLineHeight   = 5.0
	partyTitleHeight  = 7.0
	itemRowHeight     = 6.0
	itemHeaderHeight  = 7.0
	totalsRowHeight   = 7.0
	footerLineHeight  = 5.0
	blockSpacer       = 5.0
)

// Renderer paginates composed blocks onto A4 pages and applies the page
// decorator per physical page. It produces the finished byte stream and
// nothing else; persisting it is the caller's concern.
type Renderer struct {
	decor *Decorator
}

func NewRenderer(decor *Decorator) *Renderer {
	return &Renderer{decor: decor}
}

// Render lays the blocks out onto as many pages as needed. The PDF creation
// date is pinned to the invoice issue date so identical inputs produce
// byte-identical output.
func (r *Renderer) Render(blocks []layout.Block, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(issuedAt.UTC())
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginTop)

	r.newPage(pdf)
	for _, b := range blocks {
		if pdf.GetY() > marginTop && pdf.GetY()+blockHeight(pdf, b) > bottomLimit {
			r.newPage(pdf)
		}
		drawBlock(pdf, b)
		pdf.Ln(blockSpacer)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render document: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	if r.decor != nil {
		r.decor.Apply(pdf, pdf.PageNo())
	}
	pdf.SetXY(marginLeft, marginTop)
}

func blockHeight(pdf *gofpdf.Fpdf, b layout.Block) float64 {
	switch v := b.(type) {
	case layout.HeaderBlock:
		return headerTitleHeight + 2*headerMetaHeight
	case layout.PartiesBlock:
		lines := len(v.BillTo)
		if len(v.BillFrom) > lines {
			lines = len(v.BillFrom)
		}
		return partyTitleHeight + float64(lines)*partyLineHeight
	case layout.ItemTableBlock:
		return itemHeaderHeight + float64(len(v.Rows))*itemRowHeight
	case layout.TotalsBlock:
		return float64(len(v.Rows)) * totalsRowHeight
	case layout.FooterBlock:
		pdf.SetFont("Arial", "", 9)
		lines := 0
		for _, line := range v.Lines {
			if line == "" {
				lines++
				continue
			}
			lines += len(pdf.SplitLines([]byte(line), contentWidth))
		}
		return float64(lines) * footerLineHeight
	default:
		return 0
	}
}

func drawBlock(pdf *gofpdf.Fpdf, b layout.Block) {
	switch v := b.(type) {
	case layout.HeaderBlock:
		drawHeader(pdf, v)
	case layout.PartiesBlock:
		drawParties(pdf, v)
	case layout.ItemTableBlock:
		drawItemTable(pdf, v)
	case layout.TotalsBlock:
		drawTotals(pdf, v)
	case layout.FooterBlock:
		drawFooter(pdf, v)
	}
}

func drawHeader(pdf *gofpdf.Fpdf, h layout.HeaderBlock) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(contentWidth, headerTitleHeight, h.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(contentWidth, headerMetaHeight, "Invoice No: "+h.InvoiceNumber, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, headerMetaHeight, "Date: "+h.IssueDate, "", 1, "C", false, 0, "")
}

func drawParties(pdf *gofpdf.Fpdf, p layout.PartiesBlock) {
	colWidth := contentWidth / 2
	top := pdf.GetY()

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(colWidth, partyTitleHeight, p.BillToTitle, "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range p.BillTo {
		pdf.CellFormat(colWidth, partyLineHeight, line, "", 2, "L", false, 0, "")
	}

	pdf.SetXY(marginLeft+colWidth, top)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(colWidth, partyTitleHeight, p.BillFromTitle, "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	bottom := pdf.GetY()
	for _, line := range p.BillFrom {
		pdf.CellFormat(colWidth, partyLineHeight, line, "", 2, "L", false, 0, "")
	}
	if pdf.GetY() > bottom {
		bottom = pdf.GetY()
	}
	pdf.SetXY(marginLeft, bottom)
}

func drawItemTable(pdf *gofpdf.Fpdf, t layout.ItemTableBlock) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, itemHeaderHeight, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(88, itemHeaderHeight, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, itemHeaderHeight, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, itemHeaderHeight, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, itemHeaderHeight, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range t.Rows {
		desc := row.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		pdf.CellFormat(12, itemRowHeight, row.Index, "1", 0, "C", false, 0, "")
		pdf.CellFormat(88, itemRowHeight, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, itemRowHeight, row.Quantity, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, itemRowHeight, row.UnitPrice, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, itemRowHeight, row.LineTotal, "1", 1, "R", false, 0, "")
	}
}

func drawTotals(pdf *gofpdf.Fpdf, t layout.TotalsBlock) {
	for _, row := range t.Rows {
		if row.Emphasis {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(100, totalsRowHeight, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(50, totalsRowHeight, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, totalsRowHeight, row.Amount, "1", 1, "R", false, 0, "")
	}
}

func drawFooter(pdf *gofpdf.Fpdf, f layout.FooterBlock) {
	for i, line := range f.Lines {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		if line == "" {
			pdf.Ln(footerLineHeight)
			continue
		}
		pdf.MultiCell(contentWidth, footerLineHeight, line, "", "L", false)
		pdf.SetX(marginLeft)
	}
}
