package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram
	EmailsSent      metric.Int64Counter
	FeedFetches     metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("lala-site-api")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	emailsSent, err := meter.Int64Counter(
		"contact.emails.sent",
		metric.WithDescription("Contact relay emails dispatched"),
	)
	if err != nil {
		return nil, err
	}

	feedFetches, err := meter.Int64Counter(
		"instagram.fetches.total",
		metric.WithDescription("Upstream Instagram fetches"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:  requestCounter,
		RequestDuration: requestDuration,
		EmailsSent:      emailsSent,
		FeedFetches:     feedFetches,
	}, nil
}

// RecordRequest records one handled HTTP request
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", status),
	)
	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, duration, attrs)
}
