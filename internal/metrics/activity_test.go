package metrics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/metrics"
	"github.com/temirov/repohealth/internal/report"
)

const (
	testChangeCountRankingCaseNameConstant = "ranking_by_change_count"
	testPathTieBreakCaseNameConstant       = "path_tie_break"
	testDefaultLimitCaseNameConstant       = "default_limit_applied"
	testExplicitLimitCaseNameConstant      = "explicit_limit_applied"
)

func commitTouching(paths ...string) report.Commit {
	return report.Commit{Files: paths}
}

func TestAggregateFileActivity(testInstance *testing.T) {
	wideCommit := commitTouching(
		"file_00.go", "file_01.go", "file_02.go", "file_03.go", "file_04.go", "file_05.go",
		"file_06.go", "file_07.go", "file_08.go", "file_09.go", "file_10.go", "file_11.go",
	)

	testCases := []struct {
		name             string
		commits          []report.Commit
		limit            int
		expectedActivity []report.FileActivity
	}{
		{
			name: testChangeCountRankingCaseNameConstant,
			commits: []report.Commit{
				commitTouching("core.go", "README.md"),
				commitTouching("core.go"),
				commitTouching("core.go"),
			},
			expectedActivity: []report.FileActivity{
				{Path: "core.go", Changes: 3},
				{Path: "README.md", Changes: 1},
			},
		},
		{
			name: testPathTieBreakCaseNameConstant,
			commits: []report.Commit{
				commitTouching("runner.go", "adapter.go"),
				commitTouching("runner.go", "adapter.go"),
			},
			expectedActivity: []report.FileActivity{
				{Path: "adapter.go", Changes: 2},
				{Path: "runner.go", Changes: 2},
			},
		},
		{
			name:    testDefaultLimitCaseNameConstant,
			commits: []report.Commit{wideCommit},
			expectedActivity: []report.FileActivity{
				{Path: "file_00.go", Changes: 1},
				{Path: "file_01.go", Changes: 1},
				{Path: "file_02.go", Changes: 1},
				{Path: "file_03.go", Changes: 1},
				{Path: "file_04.go", Changes: 1},
				{Path: "file_05.go", Changes: 1},
				{Path: "file_06.go", Changes: 1},
				{Path: "file_07.go", Changes: 1},
				{Path: "file_08.go", Changes: 1},
				{Path: "file_09.go", Changes: 1},
			},
		},
		{
			name: testExplicitLimitCaseNameConstant,
			commits: []report.Commit{
				commitTouching("core.go", "helper.go"),
				commitTouching("core.go"),
			},
			limit: 1,
			expectedActivity: []report.FileActivity{
				{Path: "core.go", Changes: 2},
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			rankedActivity := metrics.AggregateFileActivity(testCase.commits, testCase.limit)

			require.Equal(testInstance, testCase.expectedActivity, rankedActivity)
		})
	}
}
