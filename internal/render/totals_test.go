package render

import (
	"math"
	"math/rand"
	"testing"

	"procdocs/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item model.LineItem
		want float64
	}{
		{"total price wins", model.LineItem{TotalPrice: 100, Total: 90, UnitPrice: 5, Quantity: 2}, 100},
		{"falls back to total", model.LineItem{Total: 90, UnitPrice: 5, Quantity: 2}, 90},
		{"falls back to unit price times quantity", model.LineItem{UnitPrice: 5, Quantity: 2}, 10},
		{"non-numeric total price skipped", model.LineItem{TotalPrice: math.NaN(), Total: 42}, 42},
		{"all non-numeric contributes zero", model.LineItem{TotalPrice: math.NaN(), Total: math.NaN(), UnitPrice: math.NaN(), Quantity: 3}, 0},
		{"empty item", model.LineItem{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineTotal(tt.item))
		})
	}
}

func TestGrandTotal_OrderIndependent(t *testing.T) {
	items := []model.LineItem{
		{TotalPrice: 125.5},
		{Total: 80},
		{UnitPrice: 15, Quantity: 10},
		{TotalPrice: math.NaN(), Total: math.NaN(), UnitPrice: math.NaN()},
	}
	want := GrandTotal(items)
	assert.Equal(t, 355.5, want)
	assert.False(t, math.IsNaN(want))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.LineItem, len(items))
		copy(shuffled, items)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, GrandTotal(shuffled))
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00", money(0))
	assert.Equal(t, "1,250.50", money(1250.5))
	assert.Equal(t, "1,000,000.00", money(1e6))
	assert.Equal(t, "-4,500.00", money(-4500))
	assert.Equal(t, "-", money(math.NaN()))
}

func TestQty(t *testing.T) {
	assert.Equal(t, "4", qty(4))
	assert.Equal(t, "2.50", qty(2.5))
	assert.Equal(t, "-", qty(math.NaN()))
}
