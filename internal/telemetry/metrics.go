// internal/telemetry/metrics.go
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/shopfront/storefront-api"

// OrderMetrics records order outcomes. A nil *OrderMetrics is valid and
// records nothing.
type OrderMetrics struct {
	created  metric.Int64Counter
	rejected metric.Int64Counter
	total    metric.Float64Histogram
}

func NewOrderMetrics(provider metric.MeterProvider) (*OrderMetrics, error) {
	meter := provider.Meter(instrumentationName)

	created, err := meter.Int64Counter("orders.created",
		metric.WithDescription("Orders persisted"))
	if err != nil {
		return nil, fmt.Errorf("failed to create orders.created counter: %w", err)
	}

	rejected, err := meter.Int64Counter("orders.rejected",
		metric.WithDescription("Order requests rejected before anything was written"))
	if err != nil {
		return nil, fmt.Errorf("failed to create orders.rejected counter: %w", err)
	}

	total, err := meter.Float64Histogram("orders.total",
		metric.WithDescription("Order totals"),
		metric.WithUnit("{currency}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create orders.total histogram: %w", err)
	}

	return &OrderMetrics{created: created, rejected: rejected, total: total}, nil
}

func (m *OrderMetrics) OrderCreated(ctx context.Context, total float64, items int) {
	if m == nil {
		return
	}
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.Int("items", items)))
	m.total.Record(ctx, total)
}

func (m *OrderMetrics) OrderRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
