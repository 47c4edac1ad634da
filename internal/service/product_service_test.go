package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
	list        []models.Product
	hasList     bool
	failNext    error
}

func (f *fakeCache) Invalidate(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		return f.failNext
	}
	f.invalidated = append(f.invalidated, key)
	f.hasList = false
	return nil
}

func (f *fakeCache) CacheProductList(ctx context.Context, products []models.Product, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = products
	f.hasList = true
	return nil
}

func (f *fakeCache) GetProductList(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasList {
		return nil, nil
	}
	return f.list, nil
}

type fakePublisher struct {
	events []*models.ProductCreatedEvent
}

func (f *fakePublisher) PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error {
	f.events = append(f.events, event)
	return nil
}

// flakyRepo injects persistence failures after the advisory check passes
type flakyRepo struct {
	*store.Memory
	createErr error
}

func (r *flakyRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.Memory.CreateProduct(ctx, product)
}

func newTestService(repo ProductRepository, cache *fakeCache, pub *fakePublisher) *ProductService {
	return NewProductService(repo, cache, pub, NewValidator(testCatalogConfig(), repo), time.Minute)
}

func validElectronicsRequest() *CreateProductRequest {
	stock := 15
	img := "https://example.com/display.jpg"
	req := baseRequest()
	req.ImageURL = &img
	req.StockQuantity = &stock
	return req
}

func TestCreateProductEndToEnd(t *testing.T) {
	repo := store.NewMemory()
	cache := &fakeCache{}
	pub := &fakePublisher{}
	svc := newTestService(repo, cache, pub)

	profile, err := svc.CreateProduct(context.Background(), validElectronicsRequest())

	require.NoError(t, err)
	assert.Equal(t, "Electronics & Technology", profile.CategoryDisplay)
	assert.Equal(t, "NT", profile.BrandInitials)
	assert.Equal(t, "2 months old", profile.ProductAge)
	assert.Equal(t, "In Stock", profile.AvailabilityStatus)
	assert.Contains(t, profile.FormattedPrice, "999.99")
	assert.Equal(t, 999.99, profile.Price)

	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, []string{AllProductsCacheKey}, cache.invalidated)

	require.Len(t, pub.events, 1)
	assert.Equal(t, models.EventTypeProductCreated, pub.events[0].EventType)
	assert.Equal(t, "ELEC-QSD-001", pub.events[0].Product.SKU)
	assert.NotEmpty(t, pub.events[0].OperationID)
}

func TestCreateProductHomeDiscount(t *testing.T) {
	repo := store.NewMemory()
	cache := &fakeCache{}
	svc := newTestService(repo, cache, &fakePublisher{})

	img := "https://example.com/sofa.jpg"
	req := baseRequest()
	req.Name = "Cloud Sofa"
	req.Brand = "HomeGoods"
	req.SKU = "HOME-SOFA-01"
	req.Category = models.CategoryHome
	req.Price = 100.00
	req.ImageURL = &img

	profile, err := svc.CreateProduct(context.Background(), req)

	require.NoError(t, err)
	assert.InDelta(t, 90.0, profile.Price, 1e-9)
	assert.Equal(t, "$90.00", profile.FormattedPrice)
	assert.Nil(t, profile.ImageURL)

	stored, err := repo.FindBySKU(context.Background(), "HOME-SOFA-01")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 100.00, stored.Price, "discount applies to the display profile only")
	assert.Equal(t, &img, stored.ImageURL)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := store.NewMemory()
	cache := &fakeCache{}
	svc := newTestService(repo, cache, &fakePublisher{})

	_, err := svc.CreateProduct(context.Background(), validElectronicsRequest())
	require.NoError(t, err)
	cache.invalidated = nil

	_, err = svc.CreateProduct(context.Background(), validElectronicsRequest())

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors[0].Message, "ELEC-QSD-001")

	assert.Equal(t, 1, repo.Len(), "no second persist")
	assert.Empty(t, cache.invalidated, "no cache invalidation on failure")
}

func TestCreateProductInvalidSKUSkipsRepository(t *testing.T) {
	repo := &spyRepo{Memory: store.NewMemory()}
	svc := newTestService(repo, &fakeCache{}, &fakePublisher{})

	req := validElectronicsRequest()
	req.SKU = "a1"

	_, err := svc.CreateProduct(context.Background(), req)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, repo.findCalls)
	assert.Equal(t, 0, repo.Len())
}

func TestCreateProductPersistenceFailure(t *testing.T) {
	repo := &flakyRepo{Memory: store.NewMemory(), createErr: errors.New("storage unavailable")}
	cache := &fakeCache{}
	svc := newTestService(repo, cache, &fakePublisher{})

	_, err := svc.CreateProduct(context.Background(), validElectronicsRequest())

	require.Error(t, err)
	var vErr *models.ValidationError
	assert.False(t, errors.As(err, &vErr), "persistence faults are not validation failures")
	assert.Contains(t, err.Error(), "storage unavailable")
	assert.Empty(t, cache.invalidated)
}

func TestCreateProductConflictAtPersistence(t *testing.T) {
	// the advisory check passes but a concurrent writer wins the insert
	repo := &flakyRepo{
		Memory:    store.NewMemory(),
		createErr: &models.ConflictError{SKU: "ELEC-QSD-001"},
	}
	cache := &fakeCache{}
	svc := newTestService(repo, cache, &fakePublisher{})

	_, err := svc.CreateProduct(context.Background(), validElectronicsRequest())

	var cErr *models.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "ELEC-QSD-001", cErr.SKU)
	assert.Empty(t, cache.invalidated)
}

func TestCreateProductCancelled(t *testing.T) {
	repo := store.NewMemory()
	cache := &fakeCache{}
	pub := &fakePublisher{}
	svc := newTestService(repo, cache, pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateProduct(ctx, validElectronicsRequest())

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, cache.invalidated)
	assert.Empty(t, pub.events)
}

func TestListProductsCacheAside(t *testing.T) {
	repo := &spyRepo{Memory: store.NewMemory()}
	cache := &fakeCache{}
	svc := newTestService(repo, cache, &fakePublisher{})

	_, err := svc.CreateProduct(context.Background(), validElectronicsRequest())
	require.NoError(t, err)

	profiles, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "NT", profiles[0].BrandInitials)
	assert.True(t, cache.hasList, "miss populates the listing cache")

	// second read is served from the cache
	cached, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profiles, cached)
}

func TestGetProductRecomputesProfile(t *testing.T) {
	repo := store.NewMemory()
	svc := newTestService(repo, &fakeCache{}, &fakePublisher{})

	created, err := svc.CreateProduct(context.Background(), validElectronicsRequest())
	require.NoError(t, err)

	fetched, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.BrandInitials, fetched.BrandInitials)
	assert.Equal(t, created.FormattedPrice, fetched.FormattedPrice)
}
