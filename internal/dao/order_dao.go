package dao

import (
	"context"
	"errors"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

var ErrOrderStatusChanged = errors.New("order status changed")

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{db: db}
}

// CreateOrderWithItems persists the order and its lines in one transaction.
// This runs before any gateway call; the order starts as FA.
func (d *OrderDao) CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *OrderDao) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", orderID, false).
		Preload("Items", "deleted = ?", false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *OrderDao) GetByAuthority(ctx context.Context, authority string) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).
		Where("zarinpal_authority = ? AND deleted = ?", authority, false).
		Preload("Items", "deleted = ?", false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *OrderDao) GetBySnappPayToken(ctx context.Context, paymentToken string) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).
		Where("snapppay_payment_token = ? AND deleted = ?", paymentToken, false).
		Preload("Items", "deleted = ?", false).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *OrderDao) GetUserOrders(ctx context.Context, userID int64) ([]*model.Order, error) {
	var orders []*model.Order
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND deleted = ?", userID, false).
		Preload("Items", "deleted = ?", false).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// TransitionStatus moves an order fromStatus -> toStatus with a conditional
// UPDATE. RowsAffected == 0 means someone else already moved it; callers use
// that to run payment side effects exactly once.
func (d *OrderDao) TransitionStatus(ctx context.Context, orderID int64, fromStatus, toStatus string) error {
	result := d.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, fromStatus).
		Update("status", toStatus)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderStatusChanged
	}
	return nil
}

// SetStatus overwrites status without a guard; only for transitions with no
// side effects (SU).
func (d *OrderDao) SetStatus(ctx context.Context, orderID int64, status string) error {
	return d.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (d *OrderDao) UpdateFields(ctx context.Context, orderID int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

// ReduceItemQuantity lowers a line's quantity and scales its discount
// proportionally. Quantities never grow through this path.
func (d *OrderDao) ReduceItemQuantity(ctx context.Context, itemID int64, newQuantity int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		if newQuantity >= item.Quantity {
			return nil
		}
		return tx.Model(&model.OrderItem{}).
			Where("id = ?", itemID).
			Updates(map[string]interface{}{
				"quantity":      newQuantity,
				"item_discount": item.ScaledDiscount(newQuantity),
			}).Error
	})
}

// SoftDeleteItemsByProduct cascades a product soft delete onto order lines.
func (d *OrderDao) SoftDeleteItemsByProduct(ctx context.Context, productID int64) error {
	return d.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Update("deleted", true).Error
}

func (d *OrderDao) CreatePaymentLog(ctx context.Context, log *model.PaymentLog) error {
	return d.db.WithContext(ctx).Create(log).Error
}
