package metrics

import (
	"sort"

	"github.com/temirov/repohealth/internal/report"
)

const defaultFileActivityLimitConstant = 10

// AggregateFileActivity counts how often each path appears across the commit
// change sets and keeps the most-changed entries.
//
// Non-positive limits fall back to the default of ten. Equal change counts
// are ordered by path so the ranking stays deterministic.
func AggregateFileActivity(commits []report.Commit, limit int) []report.FileActivity {
	if limit <= 0 {
		limit = defaultFileActivityLimitConstant
	}

	changeCountsByPath := map[string]int{}
	for _, commit := range commits {
		for _, changedPath := range commit.Files {
			changeCountsByPath[changedPath]++
		}
	}

	rankedActivity := make([]report.FileActivity, 0, len(changeCountsByPath))
	for changedPath, changeCount := range changeCountsByPath {
		rankedActivity = append(rankedActivity, report.FileActivity{Path: changedPath, Changes: changeCount})
	}

	sort.SliceStable(rankedActivity, func(firstIndex int, secondIndex int) bool {
		first := rankedActivity[firstIndex]
		second := rankedActivity[secondIndex]
		if first.Changes != second.Changes {
			return first.Changes > second.Changes
		}
		return first.Path < second.Path
	})

	if len(rankedActivity) > limit {
		rankedActivity = rankedActivity[:limit]
	}
	return rankedActivity
}
