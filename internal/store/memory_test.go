package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(sku string) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Quantum Super Display",
		Brand:         "Nova Tech",
		SKU:           sku,
		Category:      models.CategoryElectronics,
		Price:         999.99,
		ReleaseDate:   time.Now().UTC().AddDate(0, 0, -65),
		CreatedAt:     time.Now().UTC(),
		IsAvailable:   true,
		StockQuantity: 15,
	}
}

func TestMemoryCreateAndFind(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	missing, err := m.FindBySKU(ctx, "ELEC-QSD-001")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent SKU yields (nil, nil)")

	product := newProduct("ELEC-QSD-001")
	require.NoError(t, m.CreateProduct(ctx, product))

	found, err := m.FindBySKU(ctx, "ELEC-QSD-001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.ID, found.ID)

	byID, err := m.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.SKU, byID.SKU)
}

func TestMemoryDuplicateSKUConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.CreateProduct(ctx, newProduct("DUP-SKU-123")))

	err := m.CreateProduct(ctx, newProduct("DUP-SKU-123"))

	var cErr *models.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "DUP-SKU-123", cErr.SKU)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryConcurrentSameSKU(t *testing.T) {
	// two writers race the same SKU: exactly one insert wins, the other
	// gets a conflict, mirroring the storage-level unique constraint
	m := NewMemory()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.CreateProduct(ctx, newProduct("RACE-SKU-01"))
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var cErr *models.ConflictError
		require.ErrorAs(t, err, &cErr)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, conflicts)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryNotFound(t *testing.T) {
	m := NewMemory()

	_, err := m.GetProductByID(context.Background(), uuid.New())

	var nfErr *NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func TestMemoryCancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.CreateProduct(ctx, newProduct("ELEC-QSD-001"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.Len())
}
