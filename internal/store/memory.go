package store

import (
	"context"
	"sync"

	"catalog-service/internal/models"

	"github.com/google/uuid"
)

// Memory is an in-memory product repository. It is the swappable stand-in
// used by tests and local development; it enforces the same SKU uniqueness
// constraint as the Postgres store so the validation/persist race behaves
// identically.
type Memory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]models.Product
	bySKU    map[string]uuid.UUID
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		products: make(map[uuid.UUID]models.Product),
		bySKU:    make(map[string]uuid.UUID),
	}
}

// CreateProduct inserts a product, failing with *models.ConflictError when
// the SKU is already taken.
func (m *Memory) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.bySKU[product.SKU]; taken {
		return &models.ConflictError{SKU: product.SKU}
	}

	m.products[product.ID] = *product
	m.bySKU[product.SKU] = product.ID
	return nil
}

// FindBySKU returns (nil, nil) when no product carries the SKU
func (m *Memory) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySKU[sku]
	if !ok {
		return nil, nil
	}
	product := m.products[id]
	return &product, nil
}

// GetProductByID retrieves a stored product
func (m *Memory) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &product, nil
}

// ListProducts returns all stored products
func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

// Len reports how many products are stored
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// NotFoundError signals a lookup for an id that does not exist
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return "product not found: " + e.ID.String()
}
