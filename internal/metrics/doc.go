// Package metrics derives contributor, file activity, language, and task
// metrics from collected commit history and working-tree snapshots. Every
// aggregator is a pure function over its inputs, so aggregators can run
// independently and in any order.
package metrics
