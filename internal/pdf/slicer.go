package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"github.com/phpdave11/gofpdf"
)

// A4 portrait in points (1 pt = 1/72 inch).
const (
	PageWidthPt  = 595.28
	PageHeightPt = 841.89

	ptToMm = 25.4 / 72.0
)

// PageHeightPx converts the A4 page height into pixels for a bitmap of the
// given width: the bitmap is mapped edge-to-edge onto the page width, and the
// same pixel-per-point ratio applies vertically.
func PageHeightPx(imgWidthPx int) int {
	pxPerPt := float64(imgWidthPx) / PageWidthPt
	return int(math.Round(pxPerPt * PageHeightPt))
}

// SlicePages cuts src into consecutive horizontal bands of pageHeightPx rows;
// the last band holds the remainder. ceil(H/P) bands come back, and stacking
// them in order reproduces src with no gap or overlap. Breaks are content
// unaware: a table row may land across two bands.
func SlicePages(src image.Image, pageHeightPx int) []image.Image {
	b := src.Bounds()
	h := b.Dy()
	if h == 0 || pageHeightPx <= 0 {
		return nil
	}
	n := (h + pageHeightPx - 1) / pageHeightPx

	out := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		bandH := pageHeightPx
		if remaining := h - i*pageHeightPx; remaining < bandH {
			bandH = remaining
		}
		band := image.NewRGBA(image.Rect(0, 0, b.Dx(), bandH))
		draw.Draw(band, band.Bounds(), src, image.Pt(b.Min.X, b.Min.Y+i*pageHeightPx), draw.Src)
		out = append(out, band)
	}
	return out
}

// ComposeFromImage builds a PDF from a rendered snapshot: the bitmap is
// sliced at page-height boundaries and each band becomes one full-width A4
// page. Returns the document bytes and the page count.
func ComposeFromImage(src image.Image) ([]byte, int, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, 0, fmt.Errorf("snapshot image is empty")
	}

	pxPerPt := float64(b.Dx()) / PageWidthPt
	bands := SlicePages(src, PageHeightPx(b.Dx()))

	pdf := gofpdf.New("P", "mm", "A4", "")
	for i, band := range bands {
		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return nil, 0, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}

		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		hMm := float64(band.Bounds().Dy()) / pxPerPt * ptToMm
		pdf.ImageOptions(name, 0, 0, PageWidthPt*ptToMm, hMm, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("compose snapshot pdf: %w", err)
	}
	return out.Bytes(), len(bands), nil
}
