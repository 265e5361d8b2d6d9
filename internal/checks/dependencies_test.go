package checks_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/checks"
	"github.com/temirov/repohealth/internal/report"
)

const testGoModuleContentConstant = "module example.com/demo\n\ngo 1.22\n\nrequire github.com/stretchr/testify v1.11.1\n"

func TestDependencyCheckerEvaluate(testInstance *testing.T) {
	testCases := []struct {
		name            string
		manifests       map[string]string
		expectedStatus  report.CheckStatus
		expectedMessage string
	}{
		{
			name:            "missing_manifest",
			manifests:       map[string]string{},
			expectedStatus:  report.CheckStatusError,
			expectedMessage: "No dependency manifest found",
		},
		{
			name:            "go_module_parses",
			manifests:       map[string]string{"go.mod": testGoModuleContentConstant},
			expectedStatus:  report.CheckStatusPass,
			expectedMessage: "Dependency manifests parse cleanly (go.mod)",
		},
		{
			name:            "package_json_with_wildcards",
			manifests:       map[string]string{"package.json": `{"dependencies":{"left-pad":"*","express":"4.18.2"}}`},
			expectedStatus:  report.CheckStatusWarning,
			expectedMessage: "Unpinned dependency versions in package.json",
		},
		{
			name:           "package_json_unparsable",
			manifests:      map[string]string{"package.json": `{"dependencies":`},
			expectedStatus: report.CheckStatusError,
		},
		{
			name:            "requirements_pinned",
			manifests:       map[string]string{"requirements.txt": "requests==2.31.0\n# comment\n-r extra.txt\n"},
			expectedStatus:  report.CheckStatusPass,
			expectedMessage: "Dependency manifests parse cleanly (requirements.txt)",
		},
		{
			name:            "requirements_unpinned",
			manifests:       map[string]string{"requirements.txt": "requests\nflask>=2.0\n"},
			expectedStatus:  report.CheckStatusWarning,
			expectedMessage: "Unpinned dependency versions in requirements.txt",
		},
		{
			name:            "cargo_wildcard_version",
			manifests:       map[string]string{"Cargo.toml": "[package]\nname = \"demo\"\n\n[dependencies]\nserde = \"*\"\n"},
			expectedStatus:  report.CheckStatusWarning,
			expectedMessage: "Unpinned dependency versions in Cargo.toml",
		},
		{
			name:            "pyproject_unpinned_requirement",
			manifests:       map[string]string{"pyproject.toml": "[project]\nname = \"demo\"\ndependencies = [\"requests\"]\n"},
			expectedStatus:  report.CheckStatusWarning,
			expectedMessage: "Unpinned dependency versions in pyproject.toml",
		},
		{
			name: "multiple_manifests_parse_cleanly",
			manifests: map[string]string{
				"go.mod":           testGoModuleContentConstant,
				"requirements.txt": "requests==2.31.0\n",
			},
			expectedStatus:  report.CheckStatusPass,
			expectedMessage: "Dependency manifests parse cleanly (go.mod, requirements.txt)",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			manifestFiles := map[string][]byte{}
			treeFiles := []string{"cmd/app/main.go"}
			for manifestName, manifestContent := range testCase.manifests {
				manifestFiles[filepath.Join(testSnapshotRootConstant, manifestName)] = []byte(manifestContent)
				treeFiles = append(treeFiles, manifestName)
			}
			dependencyChecker := checks.NewDependencyChecker(&stubFileReader{files: manifestFiles})

			checkResult := dependencyChecker.Evaluate(snapshotWithFiles(treeFiles...))

			require.Equal(testInstance, "Dependencies", checkResult.Name)
			require.Equal(testInstance, testCase.expectedStatus, checkResult.Status)
			if len(testCase.expectedMessage) > 0 {
				require.Equal(testInstance, testCase.expectedMessage, checkResult.Message)
			}
			if checkResult.Status != report.CheckStatusPass {
				require.NotEmpty(testInstance, checkResult.Suggestions)
			}
		})
	}
}

func TestDependencyCheckerReportsParseFailureDetails(testInstance *testing.T) {
	brokenManifest := &stubFileReader{files: map[string][]byte{
		filepath.Join(testSnapshotRootConstant, "package.json"): []byte(`{"dependencies":`),
	}}
	dependencyChecker := checks.NewDependencyChecker(brokenManifest)

	checkResult := dependencyChecker.Evaluate(snapshotWithFiles("package.json"))

	require.Equal(testInstance, report.CheckStatusError, checkResult.Status)
	require.Contains(testInstance, checkResult.Message, "package.json is unparsable")
	require.Equal(testInstance, []string{"Fix the syntax of package.json"}, checkResult.Suggestions)
}
