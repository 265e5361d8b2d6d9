// Package execshell provides structured helpers for invoking git as a
// subprocess.
//
// It wraps os/exec with logging, lifecycle events, and bounded timeouts via
// ShellExecutor, exposes OSCommandRunner for default process execution, and
// defines the abstractions repohealth uses to read repository state in a
// testable manner.
package execshell
