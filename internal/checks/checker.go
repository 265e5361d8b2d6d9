package checks

import (
	"fmt"
	"strings"

	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	checkerPanicMessageTemplateConstant = "check failed unexpectedly: %v"
	checkerPanicSuggestionConstant      = "Re-run the analysis and report the failure if it repeats"
	rootPathSeparatorConstant           = "/"
)

// FileReader reads file contents during check evaluation.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// RepositorySnapshot is the read-only view checkers evaluate against.
//
// Tree describes the current working-tree layout and RecentCommits carries
// the trailing-window commit sample, so checkers never touch git themselves.
type RepositorySnapshot struct {
	Tree          gitrepo.TreeSnapshot
	RecentCommits []report.Commit
}

// Checker is the capability shared by all repository quality checks.
type Checker interface {
	Name() string
	Evaluate(snapshot RepositorySnapshot) report.CheckResult
}

// DefaultCheckers returns the fixed, ordered checker set.
func DefaultCheckers(fileReader FileReader) []Checker {
	return []Checker{
		NewStructureChecker(),
		NewDependencyChecker(fileReader),
		NewTestChecker(),
		NewDocumentationChecker(fileReader),
		NewCIChecker(fileReader),
	}
}

// RunCheckers evaluates every checker against the snapshot.
//
// A checker panic degrades to an error-status result for that checker alone;
// the remaining checkers still run.
func RunCheckers(checkers []Checker, snapshot RepositorySnapshot) []report.CheckResult {
	checkResults := make([]report.CheckResult, 0, len(checkers))
	for _, checker := range checkers {
		checkResults = append(checkResults, evaluateSafely(checker, snapshot))
	}
	return checkResults
}

func evaluateSafely(checker Checker, snapshot RepositorySnapshot) (checkResult report.CheckResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			checkResult = report.CheckResult{
				Name:        checker.Name(),
				Status:      report.CheckStatusError,
				Message:     fmt.Sprintf(checkerPanicMessageTemplateConstant, recovered),
				Suggestions: []string{checkerPanicSuggestionConstant},
			}
		}
	}()

	checkResult = checker.Evaluate(snapshot)
	if checkResult.Suggestions == nil {
		checkResult.Suggestions = []string{}
	}
	return checkResult
}

// findRootFileFold locates the first root-level tree entry matching any
// candidate name, ignoring case.
func findRootFileFold(tree gitrepo.TreeSnapshot, candidateNames []string) (string, bool) {
	for _, candidateName := range candidateNames {
		for _, treePath := range tree.Files {
			if strings.Contains(treePath, rootPathSeparatorConstant) {
				continue
			}
			if strings.EqualFold(treePath, candidateName) {
				return treePath, true
			}
		}
	}
	return "", false
}
