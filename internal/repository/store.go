package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

// Storage keys of the persisted collections.
const (
	keyProducts  = "products"
	keyOrders    = "orders"
	keyCustomers = "customers"
	keyAddresses = "addresses"
	prefixCart   = "cart:"
	prefixSess   = "session:"
)

// Store serialises read-modify-write cycles over the key/value storage and
// hands out order ids.
type Store struct {
	mu  sync.RWMutex
	kv  storage.Storage
	now func() time.Time

	lastOrderMillis int64
}

func NewStore(kv storage.Storage) *Store {
	return &Store{kv: kv, now: time.Now}
}

// OpenStore is NewStore for a backend that may already hold orders: ids
// continue above the highest persisted one even if the clock went back.
func OpenStore(ctx context.Context, kv storage.Storage) (*Store, error) {
	s := NewStore(kv)
	orders, err := loadList[domain.Order](ctx, s, keyOrders)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		ms, ok := orderMillis(o.ID)
		if ok && ms > s.lastOrderMillis {
			s.lastOrderMillis = ms
		}
	}
	return s, nil
}

func orderMillis(id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(rest, 10, 64)
	return ms, err == nil
}

// WithClock replaces the time source; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Now is the store's clock in UTC.
func (s *Store) Now() time.Time { return s.now().UTC() }

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (s *Store) rlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RLock()
	}
}
func (s *Store) runlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RUnlock()
	}
}
func (s *Store) wlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Lock()
	}
}
func (s *Store) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Unlock()
	}
}

// nextOrderID derives an id from the clock, bumped so ids strictly increase.
// Caller holds the write lock.
func (s *Store) nextOrderID() string {
	ms := s.now().UnixMilli()
	if ms <= s.lastOrderMillis {
		ms = s.lastOrderMillis + 1
	}
	s.lastOrderMillis = ms
	return "ORD-" + strconv.FormatInt(ms, 10)
}

func loadList[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	var out []T
	if _, err := storage.GetJSON(ctx, s.kv, key, &out); err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return out, nil
}

func saveList[T any](ctx context.Context, s *Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	if err := storage.SetJSON(ctx, s.kv, key, list); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Tx manager using the store write lock as the transaction boundary
type Tx struct{ store *Store }

func NewTx(store *Store) *Tx { return &Tx{store: store} }

var _ TxManager = (*Tx)(nil)

func (tx *Tx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if isTx(ctx) {
		return fn(ctx)
	}
	// repositories skip their own locking while the context carries the marker
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
