package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllProductsCacheKey is the well-known key for cached product listings,
// invalidated on every successful creation.
const AllProductsCacheKey = "products:all"

// ProductRepository is the persistence collaborator. FindBySKU returns
// (nil, nil) when the SKU is unused. Implementations must be safe for
// concurrent use; CreateProduct must enforce SKU uniqueness and surface a
// violation as *models.ConflictError.
type ProductRepository interface {
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ListingCache is the best-effort cache collaborator
type ListingCache interface {
	Invalidate(ctx context.Context, key string) error
	CacheProductList(ctx context.Context, products []models.Product, ttl time.Duration) error
	GetProductList(ctx context.Context) ([]models.Product, error)
}

// ProductEventPublisher publishes creation events
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error
}

// ProductService orchestrates product creation: validation, entity build,
// persistence, cache invalidation, display-profile derivation, and metrics
// emission. Each call is one sequential unit of work; concurrent calls
// share the repository and cache collaborators.
type ProductService struct {
	repo      ProductRepository
	cache     ListingCache
	events    ProductEventPublisher
	validator *Validator
	emitter   *MetricsEmitter
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	repo ProductRepository,
	cache ListingCache,
	events ProductEventPublisher,
	validator *Validator,
	cacheTTL time.Duration,
) *ProductService {
	logger := util.GetLogger()
	return &ProductService{
		repo:      repo,
		cache:     cache,
		events:    events,
		validator: validator,
		emitter:   NewMetricsEmitter(logger),
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// NewOperationID generates a short, human-scannable id for correlating the
// telemetry of one creation call.
func NewOperationID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// CreateProduct runs the creation pipeline and returns the display profile
// of the persisted product. It fails with *models.ValidationError,
// *models.ConflictError (wrapped), or the wrapped collaborator error; no
// partial result is ever returned and no phase is retried.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.DisplayProfile, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	opID := NewOperationID()
	logger := s.logger.With(zap.String("operation_id", opID))
	if cid := util.CorrelationID(ctx); cid != "" {
		logger = logger.With(zap.String("correlation_id", cid))
	}

	totalStart := time.Now()
	metrics := &models.CreationMetrics{
		OperationID: opID,
		ProductName: req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
	}

	logger.Info("Product creation started",
		zap.String("name", req.Name),
		zap.String("brand", req.Brand),
		zap.String("sku", req.SKU),
		zap.String("category", req.Category))

	validationStart := time.Now()
	err := s.validator.Validate(ctx, req)
	metrics.ValidationDuration = time.Since(validationStart)

	if err != nil {
		metrics.TotalDuration = time.Since(totalStart)

		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			metrics.ErrorReason = "Validation Failure"
			s.emitter.Emit(ctx, metrics, FailureKindValidation)
			return nil, err
		}

		metrics.ErrorReason = err.Error()
		s.emitter.Emit(ctx, metrics, FailureKindUnexpected)
		logger.Error("Product creation failed unexpectedly",
			zap.String("sku", req.SKU), zap.Error(err))
		return nil, err
	}

	product := BuildProduct(req)

	dbStart := time.Now()
	logger.Debug("Persistence started", zap.String("product_id", product.ID.String()))
	err = s.repo.CreateProduct(ctx, product)
	metrics.DBSaveDuration = time.Since(dbStart)

	if err != nil {
		metrics.TotalDuration = time.Since(totalStart)
		metrics.ErrorReason = err.Error()

		var cErr *models.ConflictError
		if errors.As(err, &cErr) {
			// lost the race against a concurrent writer with the same SKU
			s.emitter.Emit(ctx, metrics, FailureKindConflict)
		} else {
			s.emitter.Emit(ctx, metrics, FailureKindUnexpected)
		}
		logger.Error("Product creation failed unexpectedly",
			zap.String("sku", product.SKU), zap.Error(err))
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	logger.Debug("Persistence completed", zap.String("product_id", product.ID.String()))

	if err := s.cache.Invalidate(ctx, AllProductsCacheKey); err != nil {
		metrics.TotalDuration = time.Since(totalStart)
		metrics.ErrorReason = err.Error()
		s.emitter.Emit(ctx, metrics, FailureKindUnexpected)
		logger.Error("Product creation failed unexpectedly",
			zap.String("sku", product.SKU), zap.Error(err))
		return nil, fmt.Errorf("cache invalidation failed: %w", err)
	}
	util.CacheInvalidationsTotal.Inc()
	logger.Debug("Cache invalidated", zap.String("cache_key", AllProductsCacheKey))

	profile := NewDisplayProfile(product)

	if s.events != nil {
		event := &models.ProductCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductCreated,
				Timestamp: time.Now().UTC(),
			},
			Product:       *product,
			OperationID:   opID,
			CorrelationID: util.CorrelationID(ctx),
		}
		if err := s.events.PublishProductCreated(ctx, event); err != nil {
			logger.Error("Failed to publish ProductCreated event", zap.Error(err))
		}
	}

	metrics.TotalDuration = time.Since(totalStart)
	metrics.Success = true
	s.emitter.Emit(ctx, metrics, "")

	return profile, nil
}

// GetProduct returns the display profile of a stored product. Derived
// fields are recomputed on every call.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.DisplayProfile, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.GetProduct")
	defer span.End()

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewDisplayProfile(product), nil
}

// ListProducts returns display profiles for all products, reading the raw
// records through the listing cache when possible. Cache faults degrade to
// the repository instead of failing the read.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.DisplayProfile, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.cache.GetProductList(ctx)
	if err != nil {
		s.logger.Warn("Listing cache read failed, falling back to repository", zap.Error(err))
		products = nil
	}

	if products == nil {
		products, err = s.repo.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		if err := s.cache.CacheProductList(ctx, products, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache product listing", zap.Error(err))
		}
	}

	profiles := make([]models.DisplayProfile, 0, len(products))
	for i := range products {
		profiles = append(profiles, *NewDisplayProfile(&products[i]))
	}
	return profiles, nil
}
