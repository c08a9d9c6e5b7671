package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrOutcome   = "outcome"
	attrResult    = "result"
)

// Metrics provides methods for recording observability metrics. A nil or
// zero Metrics records nothing.
type Metrics struct {
	// Calendar API metrics
	calendarOperationsTotal   metric.Int64Counter
	calendarOperationDuration metric.Float64Histogram

	// Scheduling metrics
	bookingsTotal           metric.Int64Counter
	dueRefreshPeople        metric.Int64Gauge
	availabilityChecksTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.calendarOperationsTotal, err = meter.Int64Counter(
		"calendar_operations_total",
		metric.WithDescription("Total number of calendar API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_operations_total counter: %w", err)
	}

	m.calendarOperationDuration, err = meter.Float64Histogram(
		"calendar_operation_duration_seconds",
		metric.WithDescription("Calendar API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_operation_duration_seconds histogram: %w", err)
	}

	m.bookingsTotal, err = meter.Int64Counter(
		"oneonone_bookings_total",
		metric.WithDescription("Total number of 1:1 booking attempts"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oneonone_bookings_total counter: %w", err)
	}

	m.dueRefreshPeople, err = meter.Int64Gauge(
		"oneonone_due_refresh_people",
		metric.WithDescription("Number of people per outcome in the last due-date refresh"),
		metric.WithUnit("{person}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oneonone_due_refresh_people gauge: %w", err)
	}

	m.availabilityChecksTotal, err = meter.Int64Counter(
		"oneonone_availability_checks_total",
		metric.WithDescription("Total number of availability checks by result"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oneonone_availability_checks_total counter: %w", err)
	}

	return m, nil
}

// RecordCalendarOperation records a calendar API call with operation, status
// and duration.
//
// Parameters:
//   - operation: Operation type (search, create, list_calendars)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.calendarOperationsTotal == nil || m.calendarOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.calendarOperationsTotal.Add(ctx, 1, attrs)
	m.calendarOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBooking records a 1:1 booking attempt. Status is "success" or "error".
func (m *Metrics) RecordBooking(ctx context.Context, status string) {
	if m == nil || m.bookingsTotal == nil {
		return
	}
	m.bookingsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// RecordDueRefresh records how many people ended in outcome during a refresh.
func (m *Metrics) RecordDueRefresh(ctx context.Context, outcome string, people int) {
	if m == nil || m.dueRefreshPeople == nil {
		return
	}
	m.dueRefreshPeople.Record(ctx, int64(people), metric.WithAttributes(attribute.String(attrOutcome, outcome)))
}

// RecordAvailabilityCheck records the result of one availability check.
func (m *Metrics) RecordAvailabilityCheck(ctx context.Context, result string) {
	if m == nil || m.availabilityChecksTotal == nil || result == "" {
		return
	}
	m.availabilityChecksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}
