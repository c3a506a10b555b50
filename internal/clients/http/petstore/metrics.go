package petstore

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(m metric.Meter) clientMetrics {
	if m == nil {
		return clientMetrics{}
	}
	requests, _ := m.Int64Counter("petstore.client.requests", metric.WithDescription("Number of requests sent to the petstore API"))
	duration, _ := m.Float64Histogram("petstore.client.duration", metric.WithDescription("Petstore request duration"), metric.WithUnit("ms"))
	return clientMetrics{requests: requests, duration: duration}
}

func (m clientMetrics) record(ctx context.Context, method string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", status),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}
}
