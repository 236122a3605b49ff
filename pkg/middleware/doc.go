// Package middleware provides optional observability middleware for the
// page server: Prometheus metrics and OpenTelemetry tracing.
//
// Both are plain func(http.Handler) http.Handler wrappers and work with
// any router. Register them on a Server with Use:
//
//	app := server.New(nil)
//	app.Use(middleware.Prometheus())
//	app.Use(middleware.OpenTelemetry())
package middleware
