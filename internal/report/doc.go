// Package report defines the repository analysis data model.
//
// The Report entity is the single serialization boundary between analysis and
// rendering: collectors, aggregators, and checkers feed the Builder, renderers
// consume the resulting immutable value and never touch repository state
// again. EcosystemSummary plays the same role for multi-repository runs.
package report
