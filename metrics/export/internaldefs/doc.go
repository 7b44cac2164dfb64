// Package internaldefs holds the shared metric name table used by the
// Prometheus and OpenTelemetry exporters. It exists so both exporters render
// identical metric names and bucket layouts from one definition.
//
// # Architecture boundaries
//
// Only the exporter packages may import internaldefs. It must not grow
// behavior beyond static definitions and bucket arithmetic.
package internaldefs
