// internal/repository/memory.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopfront/storefront-api/internal/models"
)

// MemoryStore is an in-process Store. Transactions take the store-wide lock
// for their whole duration and restore a snapshot when they fail.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memoryData
	inTx bool
}

type memoryData struct {
	nextProductID uint
	nextOrderID   uint
	nextItemID    uint
	products      map[uint]models.Product
	orders        map[uint]models.Order
	items         map[uint]models.OrderItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memoryData{
			nextProductID: 1,
			nextOrderID:   1,
			nextItemID:    1,
			products:      make(map[uint]models.Product),
			orders:        make(map[uint]models.Order),
			items:         make(map[uint]models.OrderItem),
		},
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Products() ProductRepository {
	return &memoryProducts{store: m}
}

func (m *MemoryStore) Orders() OrderRepository {
	return &memoryOrders{store: m}
}

func (m *MemoryStore) WithTransaction(ctx context.Context, fn func(tx Store) error) (err error) {
	if m.inTx {
		return fn(m)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.data.clone()
	tx := &MemoryStore{mu: m.mu, data: m.data, inTx: true}

	defer func() {
		if r := recover(); r != nil {
			*m.data = *snapshot
			panic(r)
		}
		if err != nil {
			*m.data = *snapshot
		}
	}()

	return fn(tx)
}

// Counts reports how many products, orders and order items are stored.
func (m *MemoryStore) Counts() (products, orders, items int) {
	defer m.lock()()
	return len(m.data.products), len(m.data.orders), len(m.data.items)
}

func (m *MemoryStore) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (d *memoryData) clone() *memoryData {
	cp := &memoryData{
		nextProductID: d.nextProductID,
		nextOrderID:   d.nextOrderID,
		nextItemID:    d.nextItemID,
		products:      make(map[uint]models.Product, len(d.products)),
		orders:        make(map[uint]models.Order, len(d.orders)),
		items:         make(map[uint]models.OrderItem, len(d.items)),
	}
	for id, p := range d.products {
		cp.products[id] = p
	}
	for id, o := range d.orders {
		cp.orders[id] = o
	}
	for id, it := range d.items {
		cp.items[id] = it
	}
	return cp
}

// Products

type memoryProducts struct {
	store *MemoryStore
}

func (r *memoryProducts) List(ctx context.Context) ([]models.Product, error) {
	defer r.store.lock()()

	products := make([]models.Product, 0, len(r.store.data.products))
	for _, p := range r.store.data.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *memoryProducts) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	defer r.store.lock()()

	for _, p := range r.store.data.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProducts) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	defer r.store.lock()()

	seen := make(map[uint]bool, len(ids))
	var products []models.Product
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.store.data.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *memoryProducts) Create(ctx context.Context, product *models.Product) error {
	defer r.store.lock()()

	for _, p := range r.store.data.products {
		if p.Slug == product.Slug {
			return fmt.Errorf("failed to create product %q: duplicate slug", product.Slug)
		}
	}
	product.ID = r.store.data.nextProductID
	r.store.data.nextProductID++
	r.store.data.products[product.ID] = *product
	return nil
}

func (r *memoryProducts) Update(ctx context.Context, product *models.Product) error {
	defer r.store.lock()()

	if _, ok := r.store.data.products[product.ID]; !ok {
		return ErrNotFound
	}
	for id, p := range r.store.data.products {
		if id != product.ID && p.Slug == product.Slug {
			return fmt.Errorf("failed to update product %q: duplicate slug", product.Slug)
		}
	}
	r.store.data.products[product.ID] = *product
	return nil
}

// Orders

type memoryOrders struct {
	store *MemoryStore
}

func (r *memoryOrders) Create(ctx context.Context, order *models.Order) error {
	defer r.store.lock()()

	order.ID = r.store.data.nextOrderID
	r.store.data.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	header := *order
	header.Items = nil
	r.store.data.orders[order.ID] = header
	return nil
}

func (r *memoryOrders) CreateItems(ctx context.Context, items []models.OrderItem) error {
	defer r.store.lock()()

	for i := range items {
		if _, ok := r.store.data.orders[items[i].OrderID]; !ok {
			return fmt.Errorf("failed to create order items: order %d does not exist", items[i].OrderID)
		}
	}
	for i := range items {
		items[i].ID = r.store.data.nextItemID
		r.store.data.nextItemID++
		r.store.data.items[items[i].ID] = items[i]
	}
	return nil
}

func (r *memoryOrders) UpdateTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	defer r.store.lock()()

	order, ok := r.store.data.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Total = total
	r.store.data.orders[orderID] = order
	return nil
}

func (r *memoryOrders) List(ctx context.Context) ([]models.Order, error) {
	defer r.store.lock()()

	orders := make([]models.Order, 0, len(r.store.data.orders))
	for _, o := range r.store.data.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *memoryOrders) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	defer r.store.lock()()

	order, ok := r.store.data.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	for _, it := range r.store.data.items {
		if it.OrderID == id {
			order.Items = append(order.Items, it)
		}
	}
	sort.Slice(order.Items, func(i, j int) bool { return order.Items[i].ID < order.Items[j].ID })
	return &order, nil
}

func (r *memoryOrders) Delete(ctx context.Context, id uint) error {
	defer r.store.lock()()

	if _, ok := r.store.data.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.data.orders, id)
	for itemID, it := range r.store.data.items {
		if it.OrderID == id {
			delete(r.store.data.items, itemID)
		}
	}
	return nil
}
