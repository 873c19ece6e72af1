// Package metrics exports batch run statistics in the Prometheus text
// exposition format, so a run can leave behind a metrics file for scraping
// via a node-exporter textfile collector or for ad-hoc inspection.
package metrics
