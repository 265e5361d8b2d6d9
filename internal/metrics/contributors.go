package metrics

import (
	"sort"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const contributorIdentitySeparatorConstant = "|"

// AggregateContributors groups commit activity by normalized author identity.
//
// Authors are merged when their lower-cased trimmed name and email both
// match. The result is ranked by commit count descending, then first-commit
// timestamp ascending, then display name for a deterministic order.
func AggregateContributors(commits []report.Commit) []report.ContributorStat {
	statisticsByIdentity := map[string]*report.ContributorStat{}

	for _, commit := range commits {
		identity := normalizeContributorIdentity(commit.Author, commit.AuthorEmail)
		contributorStatistics, identityKnown := statisticsByIdentity[identity]
		if !identityKnown {
			contributorStatistics = &report.ContributorStat{
				Name:        strings.TrimSpace(commit.Author),
				Email:       strings.TrimSpace(commit.AuthorEmail),
				FirstCommit: commit.Timestamp,
				LastCommit:  commit.Timestamp,
			}
			statisticsByIdentity[identity] = contributorStatistics
		}
		contributorStatistics.Commits++
		if commit.Timestamp.Before(contributorStatistics.FirstCommit) {
			contributorStatistics.FirstCommit = commit.Timestamp
		}
		if commit.Timestamp.After(contributorStatistics.LastCommit) {
			contributorStatistics.LastCommit = commit.Timestamp
		}
	}

	rankedContributors := make([]report.ContributorStat, 0, len(statisticsByIdentity))
	for _, contributorStatistics := range statisticsByIdentity {
		rankedContributors = append(rankedContributors, *contributorStatistics)
	}

	sort.SliceStable(rankedContributors, func(firstIndex int, secondIndex int) bool {
		first := rankedContributors[firstIndex]
		second := rankedContributors[secondIndex]
		if first.Commits != second.Commits {
			return first.Commits > second.Commits
		}
		if !first.FirstCommit.Equal(second.FirstCommit) {
			return first.FirstCommit.Before(second.FirstCommit)
		}
		return first.Name < second.Name
	})

	return rankedContributors
}

func normalizeContributorIdentity(authorName string, authorEmail string) string {
	normalizedName := strings.ToLower(strings.TrimSpace(authorName))
	normalizedEmail := strings.ToLower(strings.TrimSpace(authorEmail))
	return normalizedName + contributorIdentitySeparatorConstant + normalizedEmail
}
