package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records use case outcomes.
type BusinessMetrics interface {
	// RecordOperation counts one call of operation in domain (e.g. "git_tokens", "get").
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordCipherWait records how long a caller waited for a key derivation slot.
	RecordCipherWait(ctx context.Context, operation string, wait time.Duration)
}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	cipherWait metric.Float64Histogram
}

// NewBusinessMetrics creates the business instruments, prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	cipherWait, err := meter.Float64Histogram(
		fmt.Sprintf("%s_cipher_wait_seconds", namespace),
		metric.WithDescription("Time spent waiting for a key derivation slot"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher wait histogram: %w", err)
	}

	return &businessMetrics{
		operations: operations,
		durations:  durations,
		cipherWait: cipherWait,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durations.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

func (b *businessMetrics) RecordCipherWait(ctx context.Context, operation string, wait time.Duration) {
	b.cipherWait.Record(ctx, wait.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// NoOpBusinessMetrics discards everything. Used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (n *NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

func (n *NoOpBusinessMetrics) RecordCipherWait(context.Context, string, time.Duration) {}
