package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// CatalogService serves the storefront listings and the vendor product CRUD.
type CatalogService struct {
	productDao *dao.ProductDao
	orderDao   *dao.OrderDao
}

func NewCatalogService(productDao *dao.ProductDao, orderDao *dao.OrderDao) *CatalogService {
	return &CatalogService{productDao: productDao, orderDao: orderDao}
}

// ProductPage is one page of a listing.
type ProductPage struct {
	Products []*model.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ListProducts returns a page of visible products, newest first unless the
// shopper flips the order.
func (s *CatalogService) ListProducts(ctx context.Context, page, pageSize int, oldFirst bool) (*ProductPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	products, total, err := s.productDao.ListVisible(ctx, oldFirst, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListByCategory lists in-stock products of one category, optionally filtered
// by a content keyword.
func (s *CatalogService) ListByCategory(ctx context.Context, categoryTitle string, page, pageSize int, oldFirst bool, contentFilter string) (*model.Category, *ProductPage, error) {
	category, err := s.productDao.GetCategoryByTitle(ctx, categoryTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCategoryNotFound
		}
		return nil, nil, err
	}

	page, pageSize = normalizePage(page, pageSize)
	products, total, err := s.productDao.ListByCategory(ctx, category.ID, oldFirst, contentFilter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return category, &ProductPage{Products: products, Total: total, Page: page, PageSize: pageSize}, nil
}

// LoadMore backs the infinite-scroll endpoint on the home page.
func (s *CatalogService) LoadMore(ctx context.Context, offset, limit int) ([]*model.Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}
	return s.productDao.ListInStock(ctx, offset, limit)
}

// ProductDetail is the detail page payload: the product with its sizes and
// gallery, plus other products sharing its content code.
type ProductDetail struct {
	Product *model.Product   `json:"product"`
	Related []*model.Product `json:"related"`
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.productDao.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var related []*model.Product
	if product.ContentCode != "" {
		related, err = s.productDao.ListRelated(ctx, product.ContentCode, product.ID)
		if err != nil {
			return nil, err
		}
	}
	return &ProductDetail{Product: product, Related: related}, nil
}

func (s *CatalogService) Search(ctx context.Context, term string) ([]*model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.Product{}, nil
	}
	return s.productDao.Search(ctx, term)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.productDao.ListCategories(ctx)
}

// SizeInput is one sellable variant in a create request.
type SizeInput struct {
	Width           string `json:"width"`
	Height          string `json:"height"`
	ProductCode     string `json:"product_code"`
	Price           int    `json:"price" binding:"required"`
	Stock           int    `json:"stock"`
	DiscountPercent *int   `json:"discount_percent"`
}

// CreateProductInput is the vendor create form.
type CreateProductInput struct {
	BaseTitle   string      `json:"base_title" binding:"required"`
	SeoTitle    string      `json:"seo_title"`
	Meta        string      `json:"meta"`
	Content     string      `json:"content"`
	Image       string      `json:"image"`
	CategoryID  *int64      `json:"category_id"`
	ContentCode string      `json:"content_code" binding:"required"`
	Glass       string      `json:"glass"`
	Frame       string      `json:"frame"`
	Color       string      `json:"color"`
	Sizes       []SizeInput `json:"sizes"`
}

// CreateProduct builds the canonical title from the base title and content
// code, suffixing a counter when the title is already taken, then derives the
// slug and persists the product with its sizes.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	title := model.BuildProductTitle(input.BaseTitle, input.ContentCode)
	for n := 2; ; n++ {
		exists, err := s.productDao.TitleExists(ctx, title)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
		title = fmt.Sprintf("%s %d", model.BuildProductTitle(input.BaseTitle, input.ContentCode), n)
	}

	product := &model.Product{
		Title:       title,
		SeoTitle:    input.SeoTitle,
		Meta:        input.Meta,
		Slug:        model.SlugifyTitle(title),
		Content:     input.Content,
		Image:       input.Image,
		Status:      true,
		CategoryID:  input.CategoryID,
		ContentCode: input.ContentCode,
		Glass:       input.Glass,
		Frame:       input.Frame,
		Color:       input.Color,
	}
	deriveImageVariants(product)
	for _, in := range input.Sizes {
		size := model.ProductSize{
			Width:           in.Width,
			Height:          in.Height,
			ProductCode:     in.ProductCode,
			Price:           in.Price,
			Stock:           in.Stock,
			DiscountPercent: in.DiscountPercent,
		}
		size.RecalcDiscountPrice()
		product.Sizes = append(product.Sizes, size)
	}

	if err := s.productDao.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update to the product row. A new image
// refreshes the derived webp paths.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	if _, err := s.productDao.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if image, ok := updates["image"].(string); ok && image != "" {
		updates["image_optimized"] = webpVariant(image, "")
		updates["image_optimized_two"] = webpVariant(image, "-sm")
	}
	return s.productDao.UpdateProduct(ctx, id, updates)
}

// deriveImageVariants records the paths the image pipeline writes the webp
// derivatives to. Generation itself runs out of band.
func deriveImageVariants(product *model.Product) {
	if product.Image == "" {
		return
	}
	product.ImageOptimized = webpVariant(product.Image, "")
	product.ImageOptimizedTwo = webpVariant(product.Image, "-sm")
}

func webpVariant(image, suffix string) string {
	ext := filepath.Ext(image)
	return strings.TrimSuffix(image, ext) + suffix + ".webp"
}

// UpdateSize edits one variant, rederiving its discount price.
func (s *CatalogService) UpdateSize(ctx context.Context, sizeID int64, price, stock int, discountPercent *int, clearPercent bool) (*model.ProductSize, error) {
	size, err := s.productDao.GetSizeByID(ctx, sizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	if price > 0 {
		size.Price = price
	}
	if stock >= 0 {
		size.Stock = stock
	}
	if clearPercent {
		size.DiscountPercent = nil
	} else if discountPercent != nil {
		size.DiscountPercent = discountPercent
	}
	if err := s.productDao.SaveSize(ctx, size); err != nil {
		return nil, err
	}
	return size, nil
}

// DeleteProduct soft deletes a product and cascades the flag onto historical
// order lines so past orders stop referencing it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.productDao.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productDao.SoftDeleteProduct(ctx, id); err != nil {
		return err
	}
	return s.orderDao.SoftDeleteItemsByProduct(ctx, id)
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 24
	}
	return page, pageSize
}
