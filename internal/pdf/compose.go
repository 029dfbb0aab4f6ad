// Package pdf turns render layouts and raster snapshots into A4 PDFs.
//
// Two independent paths exist on purpose: Compose draws a layout with
// gofpdf's own page breaks (pagination decided by the composer), while
// ComposeFromImage slices a pre-rendered bitmap into fixed-height bands, one
// page each (pagination decided by arithmetic). The two do not produce
// identical page breaks.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"procdocs/internal/render"
)

const (
	contentWidthMm = 180.0
	marginMm       = 15.0
	rowHeightMm    = 7.0
)

// Compose renders a layout into a multi-page A4 portrait PDF. Returns the
// document bytes and the page count.
func Compose(l *render.Layout) ([]byte, int, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(l.Title, false)
	pdf.SetMargins(marginMm, marginMm, marginMm)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	writeLetterhead(pdf, l)
	writeHeader(pdf, l)
	writeParties(pdf, l)
	writeTable(pdf, l)
	writeNotes(pdf, l)
	writeSignatures(pdf, l)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("compose pdf: %w", err)
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

func writeLetterhead(pdf *gofpdf.Fpdf, l *render.Layout) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentWidthMm, 8, l.Letterhead.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidthMm, 5, l.Letterhead.Address, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func writeHeader(pdf *gofpdf.Fpdf, l *render.Layout) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidthMm, 8, l.Title, "T", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	if l.DocNumber != "" {
		pdf.CellFormat(contentWidthMm/2, 6, "No: "+l.DocNumber, "", 0, "L", false, 0, "")
	}
	if l.Date != "" {
		pdf.CellFormat(contentWidthMm/2, 6, "Date: "+l.Date, "", 0, "R", false, 0, "")
	}
	pdf.Ln(8)

	for _, f := range l.Meta {
		if f.Value == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, f.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidthMm-35, 6, f.Value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func writeParties(pdf *gofpdf.Fpdf, l *render.Layout) {
	if l.Vendor == nil && l.ShipTo == nil {
		return
	}
	writeParty := func(heading string, p *render.Party) {
		if p == nil {
			return
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidthMm, 6, heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if p.Name != "" {
			pdf.CellFormat(contentWidthMm, 5, p.Name, "", 1, "L", false, 0, "")
		}
		if p.Address != "" {
			pdf.MultiCell(contentWidthMm, 5, p.Address, "", "L", false)
		}
		pdf.Ln(2)
	}
	writeParty("Vendor", l.Vendor)
	writeParty("Ship To", l.ShipTo)
}

// columnWidth fixes widths for the narrow columns; Description absorbs the
// remainder.
func columnWidths(columns []string) []float64 {
	fixed := map[string]float64{
		"No":   10,
		"Unit": 16,
		"Qty":  16,
	}
	widths := make([]float64, len(columns))
	rest := contentWidthMm
	descIdx := -1
	moneyCols := 0
	for i, c := range columns {
		if w, ok := fixed[c]; ok {
			widths[i] = w
			rest -= w
		} else if c == "Description" {
			descIdx = i
		} else {
			moneyCols++
		}
	}
	// Half of what is left for the description, the rest split evenly across
	// the money/fee columns.
	descW := rest / 2
	if moneyCols == 0 {
		descW = rest
	}
	if descIdx >= 0 {
		widths[descIdx] = descW
		rest -= descW
	}
	for i, c := range columns {
		if widths[i] == 0 && c != "Description" {
			widths[i] = rest / float64(moneyCols)
		}
	}
	return widths
}

func cellAlign(column string) string {
	switch column {
	case "No", "Unit", "Qty":
		return "C"
	case "Description":
		return "L"
	default:
		return "R"
	}
}

func writeTable(pdf *gofpdf.Fpdf, l *render.Layout) {
	widths := columnWidths(l.Table.Columns)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range l.Table.Columns {
		pdf.CellFormat(widths[i], rowHeightMm, c, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range l.Table.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], rowHeightMm, cell, "1", 0, cellAlign(l.Table.Columns[i]), false, 0, "")
		}
		pdf.Ln(-1)
	}

	if l.ShowGrandTotal {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidthMm-40, rowHeightMm, "Grand Total", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, rowHeightMm, fmt.Sprintf("%.2f", l.GrandTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeNotes(pdf *gofpdf.Fpdf, l *render.Layout) {
	if len(l.Notes) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "I", 9)
	for _, n := range l.Notes {
		pdf.MultiCell(contentWidthMm, 5, n, "", "L", false)
	}
	pdf.Ln(2)
}

func writeSignatures(pdf *gofpdf.Fpdf, l *render.Layout) {
	if len(l.Signatures) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidthMm, 6, "Approvals", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	for i, s := range l.Signatures {
		x, y := pdf.GetX(), pdf.GetY()
		if imgType, data, ok := decodeDataURI(s.ImageRef); ok {
			name := fmt.Sprintf("sig-%d", i)
			pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(data))
			pdf.ImageOptions(name, x, y, 40, 15, false, gofpdf.ImageOptions{ImageType: imgType}, 0, "")
		} else {
			// No embeddable image (remote URL or nothing): neutral placeholder
			// instead of a live fetch at compose time.
			pdf.Rect(x, y, 40, 15, "D")
			pdf.SetFont("Helvetica", "I", 8)
			pdf.Text(x+10, y+9, "[Signature]")
		}
		pdf.SetXY(x+45, y)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentWidthMm-45, 5, s.Name, "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentWidthMm-45, 5, s.Role, "", 2, "L", false, 0, "")
		if s.SignedAt != "" {
			pdf.CellFormat(contentWidthMm-45, 5, s.SignedAt, "", 2, "L", false, 0, "")
		}
		pdf.SetXY(x, y+18)
	}
}

// decodeDataURI extracts the image bytes from a base64 data URI. Anything
// else (raw URLs included) is reported as not embeddable.
func decodeDataURI(s string) (imgType string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(rest, ";base64,")
	if !found {
		return "", nil, false
	}
	switch meta {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return imgType, data, true
}
