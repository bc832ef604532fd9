// Package monitoring provides Prometheus metrics for the filesystem layer.
//
// Metrics cover the three core concerns: bounded reads (files and bytes
// read, reads denied by reason), glob resolution (resolutions and matches),
// and permission validation (unsafe verdicts by rule).
//
// All recording helpers are nil-safe so callers can pass a nil *Metrics
// when metrics are not wired up (library use, tests).
package monitoring
