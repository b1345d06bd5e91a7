// Package metrics records generation metrics.
//
// Components receive a Recorder and default to NoopRecorder, so call sites
// never check for nil:
//
//	gen := generate.New(opts) // NoopRecorder
//	gen = gen.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The Prometheus implementation registers its collectors on a caller-owned
// registry. A CLI run dumps that registry with WriteTextfile when asked to.
package metrics
