package pdf

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage produces a bitmap whose every row is distinct, so any gap,
// overlap or reordering in the slices is detectable.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y % 256), G: uint8(y / 256), B: uint8(x % 256), A: 255})
		}
	}
	return img
}

func TestSlicePages_PageCount(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		pageHeight int
		wantPages  int
	}{
		{"fits one page exactly", 100, 100, 1},
		{"one row over", 101, 100, 2},
		{"exact multiple", 300, 100, 3},
		{"2.4 pages rounds up to 3", 240, 100, 3},
		{"single row", 1, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slices := SlicePages(gradientImage(50, tt.height), tt.pageHeight)
			assert.Len(t, slices, tt.wantPages)
		})
	}
}

func TestSlicePages_ReconstructsSource(t *testing.T) {
	const w, h, pageH = 40, 240, 100
	src := gradientImage(w, h)

	slices := SlicePages(src, pageH)
	require.Len(t, slices, 3)

	// Intermediate bands are full height, the last carries the remainder.
	assert.Equal(t, pageH, slices[0].Bounds().Dy())
	assert.Equal(t, pageH, slices[1].Bounds().Dy())
	assert.Equal(t, 40, slices[2].Bounds().Dy())

	// Stacking the bands in order reproduces the source pixel rows exactly.
	y := 0
	for _, band := range slices {
		bb := band.Bounds()
		for by := bb.Min.Y; by < bb.Max.Y; by++ {
			for x := 0; x < w; x++ {
				assert.Equal(t, src.At(x, y), band.At(x, by), "row %d", y)
			}
			y++
		}
	}
	assert.Equal(t, h, y)
}

func TestSlicePages_Degenerate(t *testing.T) {
	assert.Nil(t, SlicePages(gradientImage(10, 0), 100))
	assert.Nil(t, SlicePages(gradientImage(10, 10), 0))
}

func TestPageHeightPx(t *testing.T) {
	// At width == PageWidthPt the scale is 1px/pt.
	assert.Equal(t, 842, PageHeightPx(595))
	// 2x width, 2x page height.
	assert.Equal(t, 1684, PageHeightPx(1190))
}

func TestComposeFromImage(t *testing.T) {
	const w = 595
	pageH := PageHeightPx(w)

	t.Run("single page", func(t *testing.T) {
		data, pages, err := ComposeFromImage(gradientImage(w, pageH/2))
		require.NoError(t, err)
		assert.Equal(t, 1, pages)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("2.4 page heights produce 3 pages", func(t *testing.T) {
		h := pageH*2 + (pageH*2)/5
		data, pages, err := ComposeFromImage(gradientImage(w, h))
		require.NoError(t, err)
		assert.Equal(t, 3, pages)
		assert.NotEmpty(t, data)
	})

	t.Run("empty image rejected", func(t *testing.T) {
		_, _, err := ComposeFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))
		assert.Error(t, err)
	})
}
