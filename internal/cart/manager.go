package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketshoes/cart-service-go/internal/catalog"
	"github.com/rocketshoes/cart-service-go/internal/notify"
	"github.com/rocketshoes/cart-service-go/internal/store"
)

// Catalog is the slice of the stock/product API the manager consumes.
type Catalog interface {
	Product(ctx context.Context, productID string) (catalog.Product, error)
	Stock(ctx context.Context, productID string) (catalog.Stock, error)
}

var (
	ErrProductNotFound = errors.New("product not in cart")
	ErrInvalidAmount   = errors.New("invalid product amount")
	ErrOutOfStock      = errors.New("requested amount out of stock")
)

// Fixed user-facing messages, one per failure case.
const (
	MsgOutOfStock   = "requested amount is out of stock"
	MsgAddFailed    = "could not add product to cart"
	MsgRemoveFailed = "could not remove product from cart"
	MsgUpdateFailed = "could not update product amount"
)

// Manager owns the in-memory cart and is the single writer for all
// mutations. Each operation runs end to end (fetch, validate, persist,
// commit) under one lock, so overlapping operations never act on a
// stale snapshot of the cart.
//
// Failures never escape half-applied: the snapshot is persisted before
// in-memory state is replaced, and every failure path leaves both
// representations untouched, fires the notifier with a fixed message,
// and returns a categorized error.
type Manager struct {
	catalog  Catalog
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	mu    sync.Mutex
	items []Product
}

// NewManager restores the cart from the persisted snapshot. A missing
// or corrupt snapshot degrades to an empty cart.
func NewManager(ctx context.Context, cat Catalog, st store.Store, n notify.Notifier, log *slog.Logger) *Manager {
	m := &Manager{
		catalog:  cat,
		store:    st,
		notifier: n,
		log:      log,
	}
	m.items = m.loadSnapshot(ctx)
	return m
}

func (m *Manager) loadSnapshot(ctx context.Context) []Product {
	data, err := m.store.Load(ctx)
	if errors.Is(err, store.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		m.log.Warn("could not load cart snapshot, starting empty", "error", err)
		return nil
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		m.log.Warn("discarding unreadable cart snapshot", "error", err)
		return nil
	}
	return items
}

// Items returns a copy of the current cart entries, in insertion order.
func (m *Manager) Items() []Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneItems()
}

// AddProduct puts one unit of the product into the cart. A product
// already present has its quantity incremented by one; a new product
// enters with quantity one. Both paths are validated against current
// stock first.
func (m *Manager) AddProduct(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stock, err := m.catalog.Stock(ctx, productID)
	if err != nil {
		return m.fail(ctx, "add", productID, MsgAddFailed, fmt.Errorf("fetch stock: %w", err))
	}

	if idx := m.indexOf(productID); idx >= 0 {
		next := m.items[idx].Amount + 1
		if next > stock.Amount {
			return m.fail(ctx, "add", productID, MsgOutOfStock, ErrOutOfStock)
		}
		updated := m.cloneItems()
		updated[idx].Amount = next
		return m.commit(ctx, "add", productID, MsgAddFailed, updated)
	}

	if stock.Amount < 1 {
		return m.fail(ctx, "add", productID, MsgOutOfStock, ErrOutOfStock)
	}

	product, err := m.catalog.Product(ctx, productID)
	if err != nil {
		return m.fail(ctx, "add", productID, MsgAddFailed, fmt.Errorf("fetch product: %w", err))
	}

	updated := append(m.cloneItems(), Product{
		ID:     product.ID,
		Title:  product.Title,
		Price:  product.Price,
		Image:  product.Image,
		Amount: 1,
	})
	return m.commit(ctx, "add", productID, MsgAddFailed, updated)
}

// RemoveProduct deletes the entry for the product id.
func (m *Manager) RemoveProduct(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(productID)
	if idx < 0 {
		return m.fail(ctx, "remove", productID, MsgRemoveFailed, ErrProductNotFound)
	}

	updated := make([]Product, 0, len(m.items)-1)
	updated = append(updated, m.items[:idx]...)
	updated = append(updated, m.items[idx+1:]...)
	return m.commit(ctx, "remove", productID, MsgRemoveFailed, updated)
}

// UpdateProductAmount sets the entry's quantity to the given absolute
// amount, subject to the current stock. Unlike AddProduct this is a
// set, not an increment.
func (m *Manager) UpdateProductAmount(ctx context.Context, productID string, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount <= 0 {
		return m.fail(ctx, "update", productID, MsgUpdateFailed, ErrInvalidAmount)
	}

	idx := m.indexOf(productID)
	if idx < 0 {
		return m.fail(ctx, "update", productID, MsgUpdateFailed, ErrProductNotFound)
	}
	if m.items[idx].Amount <= 0 {
		return m.fail(ctx, "update", productID, MsgUpdateFailed, ErrInvalidAmount)
	}

	stock, err := m.catalog.Stock(ctx, productID)
	if err != nil {
		return m.fail(ctx, "update", productID, MsgUpdateFailed, fmt.Errorf("fetch stock: %w", err))
	}
	if amount > stock.Amount {
		return m.fail(ctx, "update", productID, MsgOutOfStock, ErrOutOfStock)
	}

	updated := m.cloneItems()
	updated[idx].Amount = amount
	return m.commit(ctx, "update", productID, MsgUpdateFailed, updated)
}

// commit persists the next cart state and only then replaces the
// in-memory list, keeping the two representations in lockstep.
func (m *Manager) commit(ctx context.Context, op, productID, failMsg string, next []Product) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		return m.fail(ctx, op, productID, failMsg, fmt.Errorf("encode snapshot: %w", err))
	}
	if err := m.store.Save(ctx, data); err != nil {
		return m.fail(ctx, op, productID, failMsg, fmt.Errorf("persist snapshot: %w", err))
	}

	m.items = next
	return nil
}

func (m *Manager) fail(ctx context.Context, op, productID, msg string, err error) error {
	m.notifier.Notify(ctx, msg)
	m.log.Warn("cart operation rejected",
		"op", op,
		"productId", productID,
		"error", err,
	)
	return err
}

func (m *Manager) indexOf(productID string) int {
	for i := range m.items {
		if m.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (m *Manager) cloneItems() []Product {
	out := make([]Product, len(m.items))
	copy(out, m.items)
	return out
}
