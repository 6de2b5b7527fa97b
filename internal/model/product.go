package model

import (
	"strings"
	"time"
)

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:100;not null;uniqueIndex" json:"title"`
	PersianName string    `gorm:"size:200" json:"persian_name"`
	SeoTitle    string    `gorm:"size:255" json:"seo_title"`
	Meta        string    `gorm:"size:255" json:"meta"`
	Content     string    `gorm:"type:text" json:"content"`
	Image       string    `gorm:"size:255" json:"image"`
	Deleted     bool      `gorm:"default:false;not null;index" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*Category) TableName() string {
	return "categories"
}

type Product struct {
	ID                int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title             string        `gorm:"size:100;not null;uniqueIndex" json:"title"`
	SeoTitle          string        `gorm:"size:255" json:"seo_title"`
	Meta              string        `gorm:"size:255" json:"meta"`
	Slug              string        `gorm:"column:product_slug;size:255;index" json:"slug"`
	Content           string        `gorm:"type:text" json:"content"`
	Image             string        `gorm:"size:255" json:"image"`
	ImageOptimized    string        `gorm:"size:255" json:"image_optimized"`
	ImageOptimizedTwo string        `gorm:"size:255" json:"image_optimized_two"`
	Status            bool          `gorm:"default:true;not null;index" json:"status"`
	CategoryID        *int64        `gorm:"index" json:"category_id"`
	ContentCode       string        `gorm:"size:255;index" json:"content_code"`
	Glass             string        `gorm:"size:255" json:"glass"`
	Frame             string        `gorm:"size:255" json:"frame"`
	Color             string        `gorm:"size:255" json:"color"`
	Deleted           bool          `gorm:"default:false;not null;index" json:"-"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Sizes             []ProductSize `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`
	Images            []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (*Product) TableName() string {
	return "products"
}

// TotalStock sums stock across preloaded sizes.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// FirstAvailableSize returns the first preloaded size with stock, or the
// first size when none has stock.
func (p *Product) FirstAvailableSize() *ProductSize {
	for i := range p.Sizes {
		if p.Sizes[i].Stock > 0 {
			return &p.Sizes[i]
		}
	}
	if len(p.Sizes) > 0 {
		return &p.Sizes[0]
	}
	return nil
}

type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Image     string    `gorm:"size:255" json:"image"`
	Deleted   bool      `gorm:"default:false;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*ProductImage) TableName() string {
	return "product_images"
}

// ProductSize is a sellable variant of a product. Price and stock live here,
// not on the product.
type ProductSize struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Width           string    `gorm:"size:255" json:"width"`
	Height          string    `gorm:"size:255" json:"height"`
	ProductCode     string    `gorm:"size:255;index" json:"product_code"`
	Price           int       `gorm:"not null" json:"price"`
	Stock           int       `gorm:"not null;default:0" json:"stock"`
	DiscountPercent *int      `json:"discount_percent"`
	DiscountPrice   *int      `json:"discount_price"`
	Deleted         bool      `gorm:"default:false;not null;index" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*ProductSize) TableName() string {
	return "product_sizes"
}

// RecalcDiscountPrice derives discount_price from price and discount_percent.
// A set percent (including zero) yields floor(price*(100-pct)/100); an unset
// percent clears the derived price. Must be called on every price or percent
// change.
func (s *ProductSize) RecalcDiscountPrice() {
	if s.DiscountPercent != nil {
		dp := s.Price * (100 - *s.DiscountPercent) / 100
		s.DiscountPrice = &dp
	} else {
		s.DiscountPrice = nil
	}
}

// UnitPrice is the price a cart snapshot takes: the discounted price when one
// is derived, the base price otherwise.
func (s *ProductSize) UnitPrice() int {
	if s.DiscountPrice != nil && *s.DiscountPrice > 0 {
		return *s.DiscountPrice
	}
	return s.Price
}

// BuildProductTitle composes the canonical product title from the base title
// and the content code with its 4th and 5th characters dropped.
func BuildProductTitle(baseTitle, contentCode string) string {
	code := contentCode
	if len(code) > 5 {
		code = code[:3] + code[5:]
	}
	return "تابلو " + baseTitle + " کد " + code
}

// SlugifyTitle derives the URL slug from a generated title.
func SlugifyTitle(title string) string {
	slug := strings.ReplaceAll(title, "تابلو ", "")
	slug = strings.ReplaceAll(slug, " کد ", "")
	return strings.ReplaceAll(slug, " ", "_")
}
