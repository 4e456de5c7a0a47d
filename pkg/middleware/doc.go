// Package middleware provides the service's observability layer.
//
// # Prometheus Metrics
//
// NewMetrics registers the contact_* collectors:
//   - contact_events_total{type,status}: form events processed
//   - contact_event_duration_seconds{type}: event processing duration
//   - contact_validation_failures_total{field}: failing fields on submit
//   - contact_submissions_total{channel}: accepted submissions
//   - contact_active_sessions: open WebSocket sessions
//   - contact_http_requests_total{route,code}: HTTP requests by chi route
//   - contact_inbox_deliveries_total{sink,status}: inbox delivery attempts
//
// Mount the request counter on a chi router:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := chi.NewRouter()
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// A nil *Metrics records nothing, so callers need no nil checks.
//
// # OpenTelemetry Tracing
//
// Tracer.Handler wraps each HTTP request in a server span named after the
// matched route. StartEvent and EndEvent bracket the application of one
// WebSocket event:
//
//	ctx, span := tracer.StartEvent(ctx, "submit")
//	defer middleware.EndEvent(span, status, err)
//
// Spans go to the global tracer provider unless WithTracerProvider is given.
package middleware
