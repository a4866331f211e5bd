// Package metrics records topology build metrics with Prometheus client_golang.
//
// meshtopo is a batch tool, so metrics are not served over HTTP; they are
// written once per run to a file readable by the node_exporter textfile collector.
package metrics
