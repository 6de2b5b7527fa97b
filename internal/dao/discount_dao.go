package dao

import (
	"context"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

type DiscountDao struct {
	db *gorm.DB
}

func NewDiscountDao(db *gorm.DB) *DiscountDao {
	return &DiscountDao{db: db}
}

// GetActiveByCode returns the active discount for a code, or
// gorm.ErrRecordNotFound when the code is unknown or inactive.
func (d *DiscountDao) GetActiveByCode(ctx context.Context, code string) (*model.Discount, error) {
	var discount model.Discount
	err := d.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}
