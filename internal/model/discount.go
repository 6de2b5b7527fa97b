package model

import "time"

// Discount is an admin-managed code. Exactly one of DiscountPercent or
// DiscountAmount is expected to be set; when both are set, percent wins
// (matching the historical behavior of the shop).
type Discount struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"size:255" json:"name"`
	Code            string    `gorm:"size:255;index" json:"code"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	MinPurchase     int       `gorm:"not null" json:"min_purchase"`
	DiscountPercent *int      `json:"discount_percent"`
	DiscountAmount  *int      `json:"discount_amount"`
	IsActive        bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*Discount) TableName() string {
	return "discounts"
}

func (d *Discount) IsValid() bool {
	return d.IsActive
}

// LineDiscount computes the percent discount for one order line. Flat-amount
// codes never discount per line.
func (d *Discount) LineDiscount(price, quantity int) int {
	if d.DiscountPercent == nil {
		return 0
	}
	return price * *d.DiscountPercent * quantity / 100
}

// TotalDiscount applies the code to a cart total: percent of the total when a
// percent is set, the flat amount once otherwise.
func (d *Discount) TotalDiscount(total int) int {
	if d.DiscountPercent != nil {
		return total * *d.DiscountPercent / 100
	}
	if d.DiscountAmount != nil {
		return *d.DiscountAmount
	}
	return 0
}
