// Package cli constructs the repohealth command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. It exposes helpers to build reusable application instances and
// to execute the analyze and analyze-org commands as a reusable library.
package cli
