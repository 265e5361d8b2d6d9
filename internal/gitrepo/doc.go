// Package gitrepo reads repository state for analysis.
//
// HistoryReader collects commit history and repository metadata through the
// shell executor, CollectTreeSnapshot lists the current working tree, and the
// remote URL helpers translate between textual git remotes and structured
// representations. Everything in this package is read-only.
package gitrepo
