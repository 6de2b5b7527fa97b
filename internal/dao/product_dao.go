package dao

import (
	"context"
	"errors"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

var ErrStockNotEnough = errors.New("insufficient stock")

type ProductDao struct {
	db *gorm.DB
}

func NewProductDao(db *gorm.DB) *ProductDao {
	return &ProductDao{db: db}
}

// visible scopes queries to products a shopper may see.
func (d *ProductDao) visible(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Where("status = ? AND deleted = ?", true, false)
}

// inStockProductIDs is the subquery behind listings that hide sold-out
// products: ids whose sizes sum to a positive stock.
func (d *ProductDao) inStockProductIDs(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Select("product_id").
		Where("deleted = ?", false).
		Group("product_id").
		Having("SUM(stock) > 0")
}

// ListVisible returns visible products, newest first unless oldFirst.
func (d *ProductDao) ListVisible(ctx context.Context, oldFirst bool, offset, limit int) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64

	q := d.visible(ctx).Model(&model.Product{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if oldFirst {
		order = "created_at ASC, id ASC"
	}
	err := d.visible(ctx).
		Preload("Sizes", "deleted = ?", false).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

// ListByCategory returns visible, in-stock products of one category.
func (d *ProductDao) ListByCategory(ctx context.Context, categoryID int64, oldFirst bool, contentFilter string, offset, limit int) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64

	base := func() *gorm.DB {
		q := d.visible(ctx).
			Where("category_id = ?", categoryID).
			Where("id IN (?)", d.inStockProductIDs(ctx))
		if contentFilter != "" {
			q = q.Where("content LIKE ?", "%"+contentFilter+"%")
		}
		return q
	}

	if err := base().Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if oldFirst {
		order = "created_at ASC, id ASC"
	}
	err := base().
		Preload("Sizes", "deleted = ?", false).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

// ListInStock backs the load-more endpoint: visible, in stock, newest id first.
func (d *ProductDao) ListInStock(ctx context.Context, offset, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := d.visible(ctx).
		Where("id IN (?)", d.inStockProductIDs(ctx)).
		Preload("Sizes", "deleted = ?", false).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (d *ProductDao) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := d.db.WithContext(ctx).
		Where("product_slug = ? AND deleted = ?", slug, false).
		Preload("Sizes", "deleted = ?", false).
		Preload("Images", "deleted = ?", false).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *ProductDao) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := d.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		Preload("Sizes", "deleted = ?", false).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListRelated returns visible products sharing a content code.
func (d *ProductDao) ListRelated(ctx context.Context, contentCode string, excludeID int64) ([]*model.Product, error) {
	var products []*model.Product
	err := d.visible(ctx).
		Where("content_code = ? AND id <> ?", contentCode, excludeID).
		Preload("Sizes", "deleted = ?", false).
		Find(&products).Error
	return products, err
}

// Search matches title or content of visible, in-stock products.
func (d *ProductDao) Search(ctx context.Context, term string) ([]*model.Product, error) {
	var products []*model.Product
	like := "%" + term + "%"
	err := d.visible(ctx).
		Where("(title LIKE ? OR content LIKE ?)", like, like).
		Where("id IN (?)", d.inStockProductIDs(ctx)).
		Preload("Sizes", "deleted = ?", false).
		Preload("Images", "deleted = ?", false).
		Find(&products).Error
	return products, err
}

func (d *ProductDao) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Product{}).
		Where("title = ?", title).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *ProductDao) CreateProduct(ctx context.Context, product *model.Product) error {
	return d.db.WithContext(ctx).Create(product).Error
}

func (d *ProductDao) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SoftDeleteProduct flags the product; rows are never removed.
func (d *ProductDao) SoftDeleteProduct(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}

func (d *ProductDao) ListCategories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := d.db.WithContext(ctx).
		Where("deleted = ?", false).
		Find(&categories).Error
	return categories, err
}

func (d *ProductDao) GetCategoryByTitle(ctx context.Context, title string) (*model.Category, error) {
	var category model.Category
	err := d.db.WithContext(ctx).
		Where("title = ? AND deleted = ?", title, false).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *ProductDao) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := d.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ---- sizes ----

func (d *ProductDao) GetSizeByID(ctx context.Context, id int64) (*model.ProductSize, error) {
	var size model.ProductSize
	err := d.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&size).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

func (d *ProductDao) GetSizeByCode(ctx context.Context, productCode string) (*model.ProductSize, error) {
	var size model.ProductSize
	err := d.db.WithContext(ctx).
		Where("product_code = ? AND deleted = ?", productCode, false).
		First(&size).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// SaveSize persists a size after RecalcDiscountPrice.
func (d *ProductDao) SaveSize(ctx context.Context, size *model.ProductSize) error {
	size.RecalcDiscountPrice()
	return d.db.WithContext(ctx).Save(size).Error
}

// DecrementStock atomically subtracts quantity, refusing to go below zero.
// The conditional UPDATE is the concurrency guard: two racing decrements for
// the last unit cannot both succeed.
func (d *ProductDao) DecrementStock(ctx context.Context, sizeID int64, quantity int) error {
	result := d.db.WithContext(ctx).Model(&model.ProductSize{}).
		Where("id = ? AND stock >= ?", sizeID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockNotEnough
	}
	return nil
}

// RestoreStock adds quantity back after a cancellation.
func (d *ProductDao) RestoreStock(ctx context.Context, sizeID int64, quantity int) error {
	return d.db.WithContext(ctx).Model(&model.ProductSize{}).
		Where("id = ?", sizeID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

// SetStockByCode overwrites stock from the external stock-management system.
func (d *ProductDao) SetStockByCode(ctx context.Context, productCode string, stock int) error {
	result := d.db.WithContext(ctx).Model(&model.ProductSize{}).
		Where("product_code = ? AND deleted = ?", productCode, false).
		Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
