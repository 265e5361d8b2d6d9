package checks_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/checks"
	"github.com/temirov/repohealth/internal/report"
)

func TestStructureCheckerEvaluate(testInstance *testing.T) {
	testCases := []struct {
		name           string
		treeFiles      []string
		expectedStatus report.CheckStatus
	}{
		{
			name:           "conventional_layout",
			treeFiles:      []string{"cmd/app/main.go", "internal/core/core.go", "README.md"},
			expectedStatus: report.CheckStatusPass,
		},
		{
			name:           "documented_root_sources",
			treeFiles:      []string{"analyzer.py", "README.md"},
			expectedStatus: report.CheckStatusPass,
		},
		{
			name:           "flat_root_without_docs",
			treeFiles:      []string{"script.py"},
			expectedStatus: report.CheckStatusWarning,
		},
		{
			name:           "unrecognized_subdirectory_layout",
			treeFiles:      []string{"stuff/widget.go", "README.md"},
			expectedStatus: report.CheckStatusWarning,
		},
		{
			name:           "deeply_nested_sources",
			treeFiles:      []string{"layer/one/two/three/four/handler.go", "README.md"},
			expectedStatus: report.CheckStatusWarning,
		},
		{
			name:           "no_source_files",
			treeFiles:      []string{"README.md", "LICENSE"},
			expectedStatus: report.CheckStatusError,
		},
	}

	structureChecker := checks.NewStructureChecker()

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			checkResult := structureChecker.Evaluate(snapshotWithFiles(testCase.treeFiles...))

			require.Equal(testInstance, "Structure", checkResult.Name)
			require.Equal(testInstance, testCase.expectedStatus, checkResult.Status)
			if checkResult.Status != report.CheckStatusPass {
				require.NotEmpty(testInstance, checkResult.Suggestions)
			}
		})
	}
}
