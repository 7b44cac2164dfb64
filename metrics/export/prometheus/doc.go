// Package prometheus renders client core metrics in the Prometheus text
// exposition format without depending on the Prometheus client library.
//
// # Architecture boundaries
//
// The exporter only reads snapshots through the metrics source interface; it
// never reaches into collector internals.
package prometheus
