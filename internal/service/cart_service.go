package service

import (
	"context"
	"errors"

	"github.com/Rasouli77/ellenovastyle/internal/cart"
	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartEmpty       = errors.New("cart is empty")
)

// CartService manages the Redis session cart. Entries snapshot the unit price
// at add time and checkout charges those snapshots; only the cart display
// total is recomputed from live catalog prices.
type CartService struct {
	store      *cart.Store
	productDao *dao.ProductDao
}

func NewCartService(store *cart.Store, productDao *dao.ProductDao) *CartService {
	return &CartService{store: store, productDao: productDao}
}

// Add puts one unit of a size in the cart; a repeated add of the same size
// increments the quantity by one. The add is refused when the product is
// hidden or the requested quantity exceeds stock.
func (s *CartService) Add(ctx context.Context, session string, productID, sizeID int64) (*cart.Entry, error) {
	product, err := s.productDao.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.Status {
		return nil, ErrProductNotFound
	}

	size, err := s.productDao.GetSizeByID(ctx, sizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	if size.ProductID != productID {
		return nil, ErrSizeNotFound
	}

	entry := cart.Entry{ProductID: productID, SizeID: sizeID, Quantity: 1, Price: size.UnitPrice()}
	existing, err := s.store.Get(ctx, session, entry.Key())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		entry = *existing
		entry.Quantity++
	}
	if entry.Quantity > size.Stock {
		return nil, ErrStockNotEnough
	}
	if err := s.store.Set(ctx, session, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Reduce lowers a line's quantity by one, removing the line at zero.
func (s *CartService) Reduce(ctx context.Context, session string, productID, sizeID int64) error {
	entry := cart.Entry{ProductID: productID, SizeID: sizeID}
	existing, err := s.store.Get(ctx, session, entry.Key())
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	existing.Quantity--
	if existing.Quantity <= 0 {
		return s.store.Remove(ctx, session, entry.Key())
	}
	return s.store.Set(ctx, session, *existing)
}

// Remove drops a line entirely.
func (s *CartService) Remove(ctx context.Context, session string, productID, sizeID int64) error {
	entry := cart.Entry{ProductID: productID, SizeID: sizeID}
	return s.store.Remove(ctx, session, entry.Key())
}

func (s *CartService) Clear(ctx context.Context, session string) error {
	return s.store.Clear(ctx, session)
}

// Line is a cart entry joined with its live catalog rows.
type Line struct {
	Entry   cart.Entry         `json:"entry"`
	Product *model.Product     `json:"product"`
	Size    *model.ProductSize `json:"size"`
}

// LivePrice is the current unit price, which may differ from the snapshot.
func (l *Line) LivePrice() int {
	return l.Size.UnitPrice()
}

// LiveSubtotal is quantity times the live unit price.
func (l *Line) LiveSubtotal() int {
	return l.Entry.Quantity * l.LivePrice()
}

// Materialize joins cart entries with the catalog, silently pruning lines
// whose size is gone or out of stock. The returned total uses live prices.
func (s *CartService) Materialize(ctx context.Context, session string) ([]Line, int, error) {
	entries, err := s.store.List(ctx, session)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]Line, 0, len(entries))
	total := 0
	for _, entry := range entries {
		size, err := s.productDao.GetSizeByID(ctx, entry.SizeID)
		if err != nil || size.Stock <= 0 {
			_ = s.store.Remove(ctx, session, entry.Key())
			continue
		}
		product, err := s.productDao.GetByID(ctx, entry.ProductID)
		if err != nil || !product.Status {
			_ = s.store.Remove(ctx, session, entry.Key())
			continue
		}
		if entry.Quantity > size.Stock {
			entry.Quantity = size.Stock
			_ = s.store.Set(ctx, session, entry)
		}
		line := Line{Entry: entry, Product: product, Size: size}
		total += line.LiveSubtotal()
		lines = append(lines, line)
	}
	return lines, total, nil
}

// Count is the number of units across all lines, shown in the header badge.
func (s *CartService) Count(ctx context.Context, session string) (int, error) {
	entries, err := s.store.List(ctx, session)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		count += entry.Quantity
	}
	return count, nil
}
