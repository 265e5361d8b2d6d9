package metrics

import (
	"path"
	"sort"
	"strings"

	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const defaultLanguageLimitConstant = 5

// LanguageOptions tunes the language histogram.
type LanguageOptions struct {
	Limit int
}

// AggregateLanguages builds an extension histogram over the working tree.
//
// Only the current snapshot participates, never history, so deleted files do
// not skew the distribution. Extensions are lower-cased with their leading
// dot; extensionless files and bare dotfiles are skipped. The result is
// ranked by file count descending then extension, capped at the limit
// (default five).
func AggregateLanguages(treeSnapshot gitrepo.TreeSnapshot, options LanguageOptions) []report.LanguageCount {
	limit := options.Limit
	if limit <= 0 {
		limit = defaultLanguageLimitConstant
	}

	fileCountsByExtension := map[string]int{}
	for _, relativePath := range treeSnapshot.Files {
		baseName := path.Base(relativePath)
		extension := strings.ToLower(path.Ext(baseName))
		if len(extension) == 0 || extension == strings.ToLower(baseName) {
			continue
		}
		fileCountsByExtension[extension]++
	}

	rankedLanguages := make([]report.LanguageCount, 0, len(fileCountsByExtension))
	for extension, fileCount := range fileCountsByExtension {
		rankedLanguages = append(rankedLanguages, report.LanguageCount{Extension: extension, Files: fileCount})
	}

	sort.SliceStable(rankedLanguages, func(firstIndex int, secondIndex int) bool {
		first := rankedLanguages[firstIndex]
		second := rankedLanguages[secondIndex]
		if first.Files != second.Files {
			return first.Files > second.Files
		}
		return first.Extension < second.Extension
	})

	if len(rankedLanguages) > limit {
		rankedLanguages = rankedLanguages[:limit]
	}
	return rankedLanguages
}
