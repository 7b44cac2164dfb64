// Package otel bridges client core metrics into an OpenTelemetry meter via
// observable instruments. Values are pulled from snapshots on each
// collection cycle; the core stays free of OpenTelemetry types.
package otel
