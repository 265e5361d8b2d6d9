package checks_test

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/checks"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	testSnapshotRootConstant       = "/workspace/example"
	testPanicCheckerNameConstant   = "Panicky"
	testLenientCheckerNameConstant = "Lenient"
)

type stubFileReader struct {
	files map[string][]byte
}

func (reader *stubFileReader) ReadFile(path string) ([]byte, error) {
	content, found := reader.files[path]
	if !found {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

func snapshotWithFiles(treeFiles ...string) checks.RepositorySnapshot {
	sortedFiles := append([]string{}, treeFiles...)
	sort.Strings(sortedFiles)
	return checks.RepositorySnapshot{Tree: gitrepo.TreeSnapshot{Root: testSnapshotRootConstant, Files: sortedFiles}}
}

type panickingChecker struct{}

func (checker *panickingChecker) Name() string {
	return testPanicCheckerNameConstant
}

func (checker *panickingChecker) Evaluate(checks.RepositorySnapshot) report.CheckResult {
	panic("exploded mid-evaluation")
}

type lenientChecker struct{}

func (checker *lenientChecker) Name() string {
	return testLenientCheckerNameConstant
}

func (checker *lenientChecker) Evaluate(checks.RepositorySnapshot) report.CheckResult {
	return report.CheckResult{Name: testLenientCheckerNameConstant, Status: report.CheckStatusPass, Message: "all good"}
}

func TestDefaultCheckersOrder(testInstance *testing.T) {
	checkers := checks.DefaultCheckers(&stubFileReader{})

	checkerNames := make([]string, 0, len(checkers))
	for _, checker := range checkers {
		checkerNames = append(checkerNames, checker.Name())
	}

	require.Equal(testInstance, []string{"Structure", "Dependencies", "Tests", "Documentation", "CI"}, checkerNames)
}

func TestRunCheckersRecoversPanics(testInstance *testing.T) {
	snapshot := snapshotWithFiles("cmd/app/main.go", "README.md")

	checkResults := checks.RunCheckers([]checks.Checker{&panickingChecker{}, checks.NewStructureChecker()}, snapshot)

	require.Len(testInstance, checkResults, 2)
	require.Equal(testInstance, testPanicCheckerNameConstant, checkResults[0].Name)
	require.Equal(testInstance, report.CheckStatusError, checkResults[0].Status)
	require.Contains(testInstance, checkResults[0].Message, "exploded mid-evaluation")
	require.NotEmpty(testInstance, checkResults[0].Suggestions)
	require.Equal(testInstance, report.CheckStatusPass, checkResults[1].Status)
}

func TestRunCheckersNormalizesNilSuggestions(testInstance *testing.T) {
	checkResults := checks.RunCheckers([]checks.Checker{&lenientChecker{}}, snapshotWithFiles())

	require.Len(testInstance, checkResults, 1)
	require.NotNil(testInstance, checkResults[0].Suggestions)
	require.Empty(testInstance, checkResults[0].Suggestions)
}

func TestWarningAndErrorResultsCarrySuggestions(testInstance *testing.T) {
	emptySnapshot := snapshotWithFiles()

	checkResults := checks.RunCheckers(checks.DefaultCheckers(&stubFileReader{}), emptySnapshot)

	require.Len(testInstance, checkResults, 5)
	for _, checkResult := range checkResults {
		if checkResult.Status == report.CheckStatusPass {
			continue
		}
		require.NotEmptyf(testInstance, checkResult.Suggestions, "check %s must suggest a fix", checkResult.Name)
	}
}
