package render

import (
	"fmt"
	"math"
	"strings"

	"procdocs/internal/model"
)

// LineTotal resolves one item's total: TotalPrice, then Total, then
// UnitPrice×Quantity. A non-numeric result counts as zero so a single bad
// backend value cannot poison the grand total.
func LineTotal(it model.LineItem) float64 {
	candidates := []float64{it.TotalPrice, it.Total, it.UnitPrice * it.Quantity}
	for _, v := range candidates {
		if !math.IsNaN(v) && v != 0 {
			return v
		}
	}
	return 0
}

// GrandTotal sums LineTotal over the items. The sum is independent of item
// order.
func GrandTotal(items []model.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += LineTotal(it)
	}
	return sum
}

// money formats an amount with thousand separators and two decimals. NaN
// renders as a dash.
func money(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	n := len(whole)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// qty formats a quantity, dropping a trailing ".00" for whole numbers.
func qty(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
