// Package metrics records compilation metrics.
//
// The pipeline engine reports through the Recorder interface. NoopRecorder is
// the default; PrometheusRecorder registers collectors on a registry that the
// CLI can dump to a node-exporter textfile after a run.
package metrics
