package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRecalcDiscountPrice(t *testing.T) {
	size := ProductSize{Price: 200000, DiscountPercent: intPtr(10)}
	size.RecalcDiscountPrice()
	assert.NotNil(t, size.DiscountPrice)
	assert.Equal(t, 180000, *size.DiscountPrice)

	// A zero percent still derives a price equal to the base price.
	size = ProductSize{Price: 200000, DiscountPercent: intPtr(0)}
	size.RecalcDiscountPrice()
	assert.NotNil(t, size.DiscountPrice)
	assert.Equal(t, 200000, *size.DiscountPrice)

	// Clearing the percent clears the derived price.
	size = ProductSize{Price: 200000, DiscountPrice: intPtr(180000)}
	size.RecalcDiscountPrice()
	assert.Nil(t, size.DiscountPrice)
}

func TestRecalcDiscountPriceFloors(t *testing.T) {
	size := ProductSize{Price: 99999, DiscountPercent: intPtr(15)}
	size.RecalcDiscountPrice()
	assert.Equal(t, 99999*85/100, *size.DiscountPrice)
}

func TestUnitPrice(t *testing.T) {
	size := ProductSize{Price: 500000}
	assert.Equal(t, 500000, size.UnitPrice())

	size.DiscountPercent = intPtr(20)
	size.RecalcDiscountPrice()
	assert.Equal(t, 400000, size.UnitPrice())

	// A derived price of zero falls back to the base price.
	size = ProductSize{Price: 500000, DiscountPrice: intPtr(0)}
	assert.Equal(t, 500000, size.UnitPrice())
}

func TestBuildProductTitle(t *testing.T) {
	assert.Equal(t, "تابلو گل کد ABC12", BuildProductTitle("گل", "ABC4512"))

	// Short codes pass through untouched.
	assert.Equal(t, "تابلو گل کد AB1", BuildProductTitle("گل", "AB1"))
}

func TestSlugifyTitle(t *testing.T) {
	title := BuildProductTitle("گل رز", "ABC4512")
	slug := SlugifyTitle(title)
	assert.NotContains(t, slug, " ")
	assert.NotContains(t, slug, "تابلو")
	assert.Equal(t, "گل_رزABC12", slug)
}

func TestTotalStockAndFirstAvailableSize(t *testing.T) {
	p := Product{Sizes: []ProductSize{
		{ID: 1, Stock: 0},
		{ID: 2, Stock: 3},
		{ID: 3, Stock: 5},
	}}
	assert.Equal(t, 8, p.TotalStock())
	assert.Equal(t, int64(2), p.FirstAvailableSize().ID)

	empty := Product{Sizes: []ProductSize{{ID: 7, Stock: 0}}}
	assert.Equal(t, int64(7), empty.FirstAvailableSize().ID)

	none := Product{}
	assert.Nil(t, none.FirstAvailableSize())
}
