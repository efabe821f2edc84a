package payslip

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Renderer turns a Document into a printable byte stream.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
}

// PDFRenderer lays a Document out on a single A4 page.
type PDFRenderer struct {
	font string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{font: "Helvetica"}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

const (
	pageMargin  = 15.0
	lineHeight  = 6.0
	labelWidth  = 110.0
	valueWidth  = 70.0
	titleHeight = 10.0
)

func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(r.font, "B", 16)
	pdf.CellFormat(0, titleHeight, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	for _, section := range doc.Sections {
		if section.Title != "" {
			pdf.SetFont(r.font, "B", 11)
			pdf.SetFillColor(230, 230, 230)
			pdf.CellFormat(0, lineHeight+1, tr(section.Title), "B", 1, "L", true, 0, "")
		}

		if section.Diagnostic != "" {
			pdf.SetFont(r.font, "I", 10)
			pdf.SetTextColor(180, 0, 0)
			pdf.MultiCell(0, lineHeight, tr(section.Diagnostic), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)
			continue
		}

		style := ""
		if section.Emphasis {
			style = "B"
		}
		pdf.SetFont(r.font, style, 10)
		for _, line := range section.Lines {
			if line.Value == "" {
				pdf.MultiCell(0, lineHeight, tr(line.Label), "", "L", false)
				continue
			}
			pdf.CellFormat(labelWidth, lineHeight, tr(line.Label), "", 0, "L", false, 0, "")
			pdf.CellFormat(valueWidth, lineHeight, tr(line.Value), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	if doc.Footer != "" {
		pdf.Ln(4)
		pdf.SetFont(r.font, "I", 9)
		pdf.CellFormat(0, lineHeight, tr(doc.Footer), "T", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
