// Package ecosystem analyzes every repository found under one or more root
// directories and condenses the results into an ecosystem summary. It owns
// the analyze-org command, the bounded worker-pool orchestrator, and the
// bundle writer that materializes per-repository reports plus the shared
// dashboard on disk.
package ecosystem
