package service

import (
	"context"
	"errors"

	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"
	"github.com/Rasouli77/ellenovastyle/internal/mq"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrStockNotEnough = dao.ErrStockNotEnough
	ErrSizeNotFound   = errors.New("product size not found")
)

// StockService owns inventory movements. Every successful decrement or
// restore enqueues a sync event so the external inventory system converges;
// the publish is fire-and-forget and never fails the payment flow.
type StockService struct {
	productDao *dao.ProductDao
	pool       *mq.Pool
}

func NewStockService(productDao *dao.ProductDao, pool *mq.Pool) *StockService {
	return &StockService{productDao: productDao, pool: pool}
}

// DecrementForOrder subtracts stock for every line of a paid order. A line
// failing the conditional decrement aborts with ErrStockNotEnough; lines
// already decremented stay decremented, matching the confirmed payment.
func (s *StockService) DecrementForOrder(ctx context.Context, order *model.Order) error {
	for _, item := range order.Items {
		if err := s.productDao.DecrementStock(ctx, item.SizeID, item.Quantity); err != nil {
			return err
		}
		s.publishSync(ctx, item.SizeID)
	}
	return nil
}

// RestoreForOrder is the inverse of DecrementForOrder, run on cancellation of
// a paid order.
func (s *StockService) RestoreForOrder(ctx context.Context, order *model.Order) error {
	for _, item := range order.Items {
		if err := s.productDao.RestoreStock(ctx, item.SizeID, item.Quantity); err != nil {
			return err
		}
		s.publishSync(ctx, item.SizeID)
	}
	return nil
}

// RestoreQuantity gives back part of one line, used when an order is trimmed
// before a SnappPay update.
func (s *StockService) RestoreQuantity(ctx context.Context, sizeID int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	if err := s.productDao.RestoreStock(ctx, sizeID, quantity); err != nil {
		return err
	}
	s.publishSync(ctx, sizeID)
	return nil
}

func (s *StockService) publishSync(ctx context.Context, sizeID int64) {
	if s.pool == nil {
		return
	}
	size, err := s.productDao.GetSizeByID(ctx, sizeID)
	if err != nil || size.ProductCode == "" {
		return
	}
	if err := s.pool.PublishStockSync(size.ProductCode, size.Stock); err != nil {
		logger.Warn("stock sync publish failed", "product_code", size.ProductCode, "error", err)
	}
}

// SetStockByCode overwrites a size's stock from the inbound machine endpoint.
// No sync event: the external system is the caller here.
func (s *StockService) SetStockByCode(ctx context.Context, productCode string, stock int) error {
	if stock < 0 {
		stock = 0
	}
	err := s.productDao.SetStockByCode(ctx, productCode, stock)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSizeNotFound
	}
	return err
}

// SetPriceByCode overwrites a size's price and rederives its discount price.
func (s *StockService) SetPriceByCode(ctx context.Context, productCode string, price int) error {
	size, err := s.productDao.GetSizeByCode(ctx, productCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSizeNotFound
		}
		return err
	}
	size.Price = price
	return s.productDao.SaveSize(ctx, size)
}
