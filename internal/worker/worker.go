package worker

import (
	"context"
	"time"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/redisclient"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// CatalogWorker consumes product events and keeps the per-product redis
// cache warm. Events are processed at most once via the processed_events
// table.
type CatalogWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	redis        *redisclient.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewCatalogWorker creates a new catalog worker
func NewCatalogWorker(
	consumer *broker.Consumer,
	st *store.Store,
	redis *redisclient.Client,
	cacheTTL time.Duration,
) *CatalogWorker {
	w := &CatalogWorker{
		consumer: consumer,
		store:    st,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnProductCreated(w.handleProductCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *CatalogWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting catalog worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CatalogWorker) Stop() error {
	w.logger.Info("Stopping catalog worker")
	return w.consumer.Close()
}

func (w *CatalogWorker) handleProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error {
	logger := w.logger.With(
		zap.String("event_id", event.EventID),
		zap.String("operation_id", event.OperationID),
		zap.String("sku", event.Product.SKU))

	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		logger.Debug("Skipping already processed event")
		return nil
	}

	if err := w.redis.CacheProduct(ctx, &event.Product, w.cacheTTL); err != nil {
		// cache warm is best effort, the event still counts as handled
		logger.Warn("Failed to warm product cache", zap.Error(err))
	}

	if err := w.store.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		return err
	}

	logger.Debug("Handled ProductCreated event")
	return nil
}
