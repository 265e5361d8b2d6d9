package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/metrics"
	"github.com/temirov/repohealth/internal/report"
)

const (
	testRankingByCommitCountCaseNameConstant  = "ranking_by_commit_count"
	testIdentityNormalizationCaseNameConstant = "identity_normalization"
	testFirstCommitTieBreakCaseNameConstant   = "first_commit_tie_break"
	testNameTieBreakCaseNameConstant          = "name_tie_break"
	testAliceAuthorNameConstant               = "Alice"
	testAliceAuthorEmailConstant              = "alice@example.com"
	testBobAuthorNameConstant                 = "Bob"
	testBobAuthorEmailConstant                = "bob@example.com"
)

func authoredCommit(authorName string, authorEmail string, timestamp time.Time) report.Commit {
	return report.Commit{Author: authorName, AuthorEmail: authorEmail, Timestamp: timestamp, Files: []string{}}
}

func TestAggregateContributors(testInstance *testing.T) {
	baseTimestamp := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name                 string
		commits              []report.Commit
		expectedContributors []report.ContributorStat
	}{
		{
			name: testRankingByCommitCountCaseNameConstant,
			commits: []report.Commit{
				authoredCommit(testAliceAuthorNameConstant, testAliceAuthorEmailConstant, baseTimestamp),
				authoredCommit(testBobAuthorNameConstant, testBobAuthorEmailConstant, baseTimestamp.Add(time.Hour)),
				authoredCommit(testAliceAuthorNameConstant, testAliceAuthorEmailConstant, baseTimestamp.Add(2*time.Hour)),
				authoredCommit(testAliceAuthorNameConstant, testAliceAuthorEmailConstant, baseTimestamp.Add(3*time.Hour)),
			},
			expectedContributors: []report.ContributorStat{
				{
					Name:        testAliceAuthorNameConstant,
					Email:       testAliceAuthorEmailConstant,
					Commits:     3,
					FirstCommit: baseTimestamp,
					LastCommit:  baseTimestamp.Add(3 * time.Hour),
				},
				{
					Name:        testBobAuthorNameConstant,
					Email:       testBobAuthorEmailConstant,
					Commits:     1,
					FirstCommit: baseTimestamp.Add(time.Hour),
					LastCommit:  baseTimestamp.Add(time.Hour),
				},
			},
		},
		{
			name: testIdentityNormalizationCaseNameConstant,
			commits: []report.Commit{
				authoredCommit("Alice", "Alice@Example.com", baseTimestamp),
				authoredCommit("  alice  ", "alice@example.com", baseTimestamp.Add(time.Hour)),
			},
			expectedContributors: []report.ContributorStat{
				{
					Name:        testAliceAuthorNameConstant,
					Email:       "Alice@Example.com",
					Commits:     2,
					FirstCommit: baseTimestamp,
					LastCommit:  baseTimestamp.Add(time.Hour),
				},
			},
		},
		{
			name: testFirstCommitTieBreakCaseNameConstant,
			commits: []report.Commit{
				authoredCommit(testBobAuthorNameConstant, testBobAuthorEmailConstant, baseTimestamp),
				authoredCommit(testAliceAuthorNameConstant, testAliceAuthorEmailConstant, baseTimestamp.Add(time.Hour)),
			},
			expectedContributors: []report.ContributorStat{
				{
					Name:        testBobAuthorNameConstant,
					Email:       testBobAuthorEmailConstant,
					Commits:     1,
					FirstCommit: baseTimestamp,
					LastCommit:  baseTimestamp,
				},
				{
					Name:        testAliceAuthorNameConstant,
					Email:       testAliceAuthorEmailConstant,
					Commits:     1,
					FirstCommit: baseTimestamp.Add(time.Hour),
					LastCommit:  baseTimestamp.Add(time.Hour),
				},
			},
		},
		{
			name: testNameTieBreakCaseNameConstant,
			commits: []report.Commit{
				authoredCommit(testBobAuthorNameConstant, testBobAuthorEmailConstant, baseTimestamp),
				authoredCommit(testAliceAuthorNameConstant, testAliceAuthorEmailConstant, baseTimestamp),
			},
			expectedContributors: []report.ContributorStat{
				{
					Name:        testAliceAuthorNameConstant,
					Email:       testAliceAuthorEmailConstant,
					Commits:     1,
					FirstCommit: baseTimestamp,
					LastCommit:  baseTimestamp,
				},
				{
					Name:        testBobAuthorNameConstant,
					Email:       testBobAuthorEmailConstant,
					Commits:     1,
					FirstCommit: baseTimestamp,
					LastCommit:  baseTimestamp,
				},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			rankedContributors := metrics.AggregateContributors(testCase.commits)

			require.Equal(testInstance, testCase.expectedContributors, rankedContributors)
		})
	}
}

func TestAggregateContributorsEmptyHistory(testInstance *testing.T) {
	rankedContributors := metrics.AggregateContributors([]report.Commit{})

	require.NotNil(testInstance, rankedContributors)
	require.Empty(testInstance, rankedContributors)
}
