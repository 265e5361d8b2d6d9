// Package checks evaluates repository health across a fixed set of quality
// checkers. Checkers are independent: each one inspects the repository
// snapshot on its own, never fails the run for a missing file, and reports a
// pass, warning, or error outcome with actionable suggestions.
package checks
