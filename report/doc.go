// Package report writes optional YAML run reports: run metadata, per-job
// command lines and outcomes, and batch totals. Reports are write-only
// observability; the conversion path never reads them.
package report
