package service

import (
	"context"

	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// Failure kinds used as the low-cardinality prometheus label; the full
// reason string goes to the log only.
const (
	FailureKindValidation = "validation_failure"
	FailureKindConflict   = "conflict"
	FailureKindUnexpected = "unexpected"
)

// MetricsEmitter formats creation metrics and forwards them to the log and
// the Prometheus collectors. One Emit per orchestration call.
type MetricsEmitter struct {
	logger *zap.Logger
}

// NewMetricsEmitter creates a metrics emitter
func NewMetricsEmitter(logger *zap.Logger) *MetricsEmitter {
	return &MetricsEmitter{logger: logger}
}

// Emit records the metrics for one creation attempt. failureKind is empty
// on success.
func (e *MetricsEmitter) Emit(ctx context.Context, m *models.CreationMetrics, failureKind string) {
	util.ValidationLatency.Observe(m.ValidationDuration.Seconds())
	if m.DBSaveDuration > 0 {
		util.DBSaveLatency.Observe(m.DBSaveDuration.Seconds())
	}
	util.CreationLatency.Observe(m.TotalDuration.Seconds())

	fields := []zap.Field{
		zap.String("operation_id", m.OperationID),
		zap.String("product_name", m.ProductName),
		zap.String("sku", m.SKU),
		zap.String("category", m.Category),
		zap.Duration("validation_duration", m.ValidationDuration),
		zap.Duration("db_save_duration", m.DBSaveDuration),
		zap.Duration("total_duration", m.TotalDuration),
		zap.Bool("success", m.Success),
	}
	if cid := util.CorrelationID(ctx); cid != "" {
		fields = append(fields, zap.String("correlation_id", cid))
	}

	if m.Success {
		util.ProductsCreatedTotal.Inc()
		e.logger.Info("Product creation succeeded", fields...)
		return
	}

	util.ProductsFailedTotal.WithLabelValues(failureKind).Inc()
	fields = append(fields,
		zap.String("failure_kind", failureKind),
		zap.String("error_reason", m.ErrorReason))
	e.logger.Warn("Product creation failed", fields...)
}
