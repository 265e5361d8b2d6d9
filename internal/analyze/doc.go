// Package analyze implements single-repository analysis: it collects commit
// history and working-tree facts, aggregates activity metrics, evaluates the
// quality checks, and renders the assembled report in the requested format.
package analyze
