package checks

import (
	"fmt"
	"path"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const (
	testCheckerNameConstant            = "Tests"
	testsFoundMessageTemplateConstant  = "Found %d test files and %s"
	testsUncoveredMessageConstant      = "Tests present without coverage configuration"
	testsMissingMessageConstant        = "No test files found"
	testsAddSuiteSuggestionConstant    = "Add a test suite covering the core behavior"
	testsAddCoverageSuggestionConstant = "Add coverage or test-runner configuration (for example codecov.yml)"
	goTestFileSuffixConstant           = "_test.go"
	pythonTestFilePrefixConstant       = "test_"
	pythonTestFileSuffixConstant       = "_test.py"
	pythonFileExtensionConstant        = ".py"
	javascriptTestInfixConstant        = ".test."
	javascriptSpecInfixConstant        = ".spec."
)

// testRunnerConfigurationNames are root-level files that signal a configured
// test runner or coverage setup.
var testRunnerConfigurationNames = []string{
	"pytest.ini",
	"tox.ini",
	".coveragerc",
	"codecov.yml",
	".codecov.yml",
	"jest.config.js",
	"jest.config.ts",
	"vitest.config.ts",
	"karma.conf.js",
	"phpunit.xml",
}

// testDirectoryPrefixes mark directories that hold test suites.
var testDirectoryPrefixes = []string{"tests/", "test/", "spec/"}

// javascriptTestExtensions limit infix matching to script sources.
var javascriptTestExtensions = map[string]struct{}{
	".js":  {},
	".ts":  {},
	".jsx": {},
	".tsx": {},
}

// TestChecker verifies the repository carries a discoverable test suite.
type TestChecker struct{}

// NewTestChecker constructs a TestChecker.
func NewTestChecker() *TestChecker {
	return &TestChecker{}
}

// Name identifies the checker in reports.
func (checker *TestChecker) Name() string {
	return testCheckerNameConstant
}

// Evaluate applies the test-suite policy to the snapshot.
func (checker *TestChecker) Evaluate(snapshot RepositorySnapshot) report.CheckResult {
	testFileCount := 0
	for _, treePath := range snapshot.Tree.Files {
		if isTestFile(treePath) {
			testFileCount++
		}
	}

	if testFileCount == 0 {
		return report.CheckResult{
			Name:        testCheckerNameConstant,
			Status:      report.CheckStatusError,
			Message:     testsMissingMessageConstant,
			Suggestions: []string{testsAddSuiteSuggestionConstant},
		}
	}

	configurationName, configurationFound := findRootFileFold(snapshot.Tree, testRunnerConfigurationNames)
	if !configurationFound {
		return report.CheckResult{
			Name:        testCheckerNameConstant,
			Status:      report.CheckStatusWarning,
			Message:     testsUncoveredMessageConstant,
			Suggestions: []string{testsAddCoverageSuggestionConstant},
		}
	}

	return report.CheckResult{
		Name:        testCheckerNameConstant,
		Status:      report.CheckStatusPass,
		Message:     fmt.Sprintf(testsFoundMessageTemplateConstant, testFileCount, configurationName),
		Suggestions: []string{},
	}
}

func isTestFile(treePath string) bool {
	baseName := strings.ToLower(path.Base(treePath))
	extension := path.Ext(baseName)

	if strings.HasSuffix(baseName, goTestFileSuffixConstant) {
		return true
	}
	if strings.HasSuffix(baseName, pythonTestFileSuffixConstant) {
		return true
	}
	if strings.HasPrefix(baseName, pythonTestFilePrefixConstant) && extension == pythonFileExtensionConstant {
		return true
	}
	if _, scriptSource := javascriptTestExtensions[extension]; scriptSource {
		if strings.Contains(baseName, javascriptTestInfixConstant) || strings.Contains(baseName, javascriptSpecInfixConstant) {
			return true
		}
	}

	loweredPath := strings.ToLower(treePath)
	for _, testDirectoryPrefix := range testDirectoryPrefixes {
		if !strings.HasPrefix(loweredPath, testDirectoryPrefix) && !strings.Contains(loweredPath, rootPathSeparatorConstant+testDirectoryPrefix) {
			continue
		}
		if _, recognized := recognizedSourceExtensions[path.Ext(loweredPath)]; recognized {
			return true
		}
	}
	return false
}
