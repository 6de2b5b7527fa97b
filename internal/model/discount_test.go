package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDiscountPercentWinsOverAmount(t *testing.T) {
	d := Discount{DiscountPercent: intPtr(10), DiscountAmount: intPtr(50000)}
	assert.Equal(t, 20000, d.TotalDiscount(200000))
}

func TestTotalDiscountFlatAmount(t *testing.T) {
	d := Discount{DiscountAmount: intPtr(30000)}
	assert.Equal(t, 30000, d.TotalDiscount(200000))
	// The flat amount does not scale with the total.
	assert.Equal(t, 30000, d.TotalDiscount(1000000))
}

func TestTotalDiscountEmptyCode(t *testing.T) {
	d := Discount{}
	assert.Equal(t, 0, d.TotalDiscount(200000))
}

func TestLineDiscount(t *testing.T) {
	d := Discount{DiscountPercent: intPtr(10)}
	assert.Equal(t, 10000, d.LineDiscount(50000, 2))

	// Flat-amount codes never discount individual lines.
	flat := Discount{DiscountAmount: intPtr(30000)}
	assert.Equal(t, 0, flat.LineDiscount(50000, 2))
}

func TestOrderItemScaledDiscount(t *testing.T) {
	item := OrderItem{Quantity: 4, ItemDiscount: 20000}
	assert.Equal(t, 10000, item.ScaledDiscount(2))
	assert.Equal(t, 5000, item.ScaledDiscount(1))

	// Growing or equal quantities keep the discount unchanged.
	assert.Equal(t, 20000, item.ScaledDiscount(4))
	assert.Equal(t, 20000, item.ScaledDiscount(6))

	zero := OrderItem{Quantity: 0, ItemDiscount: 100}
	assert.Equal(t, 100, zero.ScaledDiscount(0))
}
