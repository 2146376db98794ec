// Package metrics records generation metrics behind a small Recorder interface.
//
// Components default to NoopRecorder and accept a real implementation through
// a WithRecorder option:
//
//	reg := prom.NewRegistry()
//	gen := site.NewGenerator(cfg, "www").WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The preview server exposes the registry through HTTPHandler.
package metrics
