package service

import (
	"testing"

	"github.com/Rasouli77/ellenovastyle/internal/cart"
	"github.com/Rasouli77/ellenovastyle/internal/model"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestTomanToRial(t *testing.T) {
	assert.Equal(t, 1750000, tomanToRial(175000))
	assert.Equal(t, 0, tomanToRial(0))
}

func TestGatewayMobile(t *testing.T) {
	assert.Equal(t, "+989121234567", gatewayMobile("09121234567"))
	// Already-international numbers pass through.
	assert.Equal(t, "+989121234567", gatewayMobile("+989121234567"))
}

func TestBuildCartRecord(t *testing.T) {
	s := &CheckoutService{shippingFee: 75000}
	categoryID := int64(3)
	lines := []Line{
		{
			Entry:   cart.Entry{ProductID: 1, SizeID: 10, Quantity: 2, Price: 50000},
			Product: &model.Product{ID: 1, Title: "تابلو گل کد ABC12", CategoryID: &categoryID},
			Size:    &model.ProductSize{ID: 10, Price: 50000},
		},
	}

	record := s.buildCartRecord(7, lines, 100000)
	assert.Equal(t, int64(7), record.CartID)
	assert.True(t, record.IsShipmentIncluded)
	assert.Equal(t, 750000, record.ShippingAmount)
	assert.Equal(t, 1750000, record.TotalAmount)

	assert.Len(t, record.CartItems, 1)
	item := record.CartItems[0]
	assert.Equal(t, int64(10), item.ID)
	assert.Equal(t, 500000, item.Amount)
	assert.Equal(t, 2, item.Count)
	assert.Equal(t, "100", item.CommissionType)
}

// The worked example the shop uses in its docs: a 200000 cart with a ten
// percent code ends at 255000 once shipping is added.
func TestCheckoutTotals(t *testing.T) {
	discount := &model.Discount{DiscountPercent: intPtr(10)}
	cartTotal := 200000
	reduction := discount.TotalDiscount(cartTotal)
	assert.Equal(t, 20000, reduction)
	assert.Equal(t, 255000, cartTotal-reduction+75000)
}

func TestLineLivePricing(t *testing.T) {
	size := &model.ProductSize{Price: 60000, DiscountPercent: intPtr(10)}
	size.RecalcDiscountPrice()
	line := Line{
		Entry: cart.Entry{Quantity: 2, Price: 50000},
		Size:  size,
	}
	// The snapshot price in the entry is stale; live pricing wins.
	assert.Equal(t, 54000, line.LivePrice())
	assert.Equal(t, 108000, line.LiveSubtotal())
}
