// Package cart stores session-scoped shopping carts in Redis. A cart is a
// hash keyed by the visitor's cart-session token; fields are
// "productID-sizeID" pairs holding a quantity and the unit price snapshotted
// at add time.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one cart line. Price is fixed when the line is added and is not
// refreshed when the catalog price changes.
type Entry struct {
	ProductID int64 `json:"product_id"`
	SizeID    int64 `json:"size_id"`
	Quantity  int   `json:"quantity"`
	Price     int   `json:"price"`
}

// Key is the hash field for this entry.
func (e Entry) Key() string {
	return fmt.Sprintf("%d-%d", e.ProductID, e.SizeID)
}

// Subtotal is quantity times the snapshot price.
func (e Entry) Subtotal() int {
	return e.Quantity * e.Price
}

type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewStore builds a cart store; carts idle longer than ttl expire.
func NewStore(rdb redis.UniversalClient, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func cartKey(session string) string {
	return "cart:" + session
}

// Get returns the entry for a field, or nil when absent.
func (s *Store) Get(ctx context.Context, session, field string) (*Entry, error) {
	raw, err := s.rdb.HGet(ctx, cartKey(session), field).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Set writes an entry and refreshes the cart TTL.
func (s *Store) Set(ctx context.Context, session string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, cartKey(session), entry.Key(), raw)
	pipe.Expire(ctx, cartKey(session), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// List returns all entries in the cart.
func (s *Store) List(ctx context.Context, session string) ([]Entry, error) {
	raw, err := s.rdb.HGetAll(ctx, cartKey(session)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, v := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Remove deletes one entry.
func (s *Store) Remove(ctx context.Context, session, field string) error {
	return s.rdb.HDel(ctx, cartKey(session), field).Err()
}

// Clear empties the cart; called after a confirmed payment.
func (s *Store) Clear(ctx context.Context, session string) error {
	return s.rdb.Del(ctx, cartKey(session)).Err()
}
