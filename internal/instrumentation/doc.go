// Package instrumentation provides OpenTelemetry metrics and tracing for
// cadence.
//
// Instrumentation is off unless INSTRUMENTATION_ENABLED=true. When disabled,
// NewProvider returns a provider whose Metrics records nothing, and spans go
// to the global no-op tracer.
//
// # Metrics
//
// Calendar API Metrics:
//   - calendar_operations_total: Counter of calendar API calls by operation and status
//   - calendar_operation_duration_seconds: Histogram of calendar API call durations
//
// Scheduling Metrics:
//   - oneonone_bookings_total: Counter of booking attempts by status
//   - oneonone_due_refresh_people: Gauge of people per outcome in the last refresh
//   - oneonone_availability_checks_total: Counter of availability checks by result
//
// # Tracing
//
// Spans are created for calendar.search, calendar.create, oneonone.refresh
// and oneonone.recommend.
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED: Enable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - METRICS_TEXTFILE: Write Prometheus metrics to this file on shutdown
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: cadence)
//
// # Example Usage
//
//	cfg, err := instrumentation.DefaultConfig()
//	if err != nil {
//		return err
//	}
//	provider, err := instrumentation.NewProvider(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordCalendarOperation(ctx, "search", "success", time.Since(start))
package instrumentation
