package checks

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const (
	documentationCheckerNameConstant             = "Documentation"
	minimumReadmeLengthConstant                  = 200
	documentationCompleteMessageConstant         = "README, LICENSE, and CHANGELOG are present"
	documentationGapsMessageTemplateConstant     = "Documentation gaps: %s"
	documentationMissingReadmeMessageConstant    = "README is missing"
	documentationAddReadmeSuggestionConstant     = "Add a README.md describing the project"
	documentationAddLicenseSuggestionConstant    = "Add a LICENSE file stating usage terms"
	documentationAddChangelogSuggestionConstant  = "Add a CHANGELOG.md tracking releases"
	documentationExpandReadmeSuggestionConstant  = "Expand the README with setup and usage details"
	documentationRefreshReadmeSuggestionConstant = "Refresh the README to cover recent changes"
	documentationMissingLicenseGapConstant       = "missing LICENSE"
	documentationMissingChangelogGapConstant     = "missing CHANGELOG"
	documentationTrivialReadmeGapConstant        = "README needs more detail"
	documentationGapSeparatorConstant            = ", "
	readmeBaseNamePrefixConstant                 = "readme"
)

var readmeCandidateNames = []string{"README.md", "README.rst", "README.txt", "README"}
var licenseCandidateNames = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"}
var changelogCandidateNames = []string{"CHANGELOG.md", "CHANGELOG", "CHANGELOG.rst", "CHANGES.md", "HISTORY.md"}

// DocumentationChecker verifies README, LICENSE, and CHANGELOG presence and
// that the README carries non-trivial content.
type DocumentationChecker struct {
	fileReader FileReader
}

// NewDocumentationChecker constructs a DocumentationChecker.
func NewDocumentationChecker(fileReader FileReader) *DocumentationChecker {
	return &DocumentationChecker{fileReader: fileReader}
}

// Name identifies the checker in reports.
func (checker *DocumentationChecker) Name() string {
	return documentationCheckerNameConstant
}

// Evaluate applies the documentation policy to the snapshot.
//
// A missing README is an error; any other gap is a warning. A complete set
// still earns a refresh suggestion when recent commits changed code without
// touching the README.
func (checker *DocumentationChecker) Evaluate(snapshot RepositorySnapshot) report.CheckResult {
	readmePath, readmeFound := findRootFileFold(snapshot.Tree, readmeCandidateNames)
	_, licenseFound := findRootFileFold(snapshot.Tree, licenseCandidateNames)
	_, changelogFound := findRootFileFold(snapshot.Tree, changelogCandidateNames)

	missingSuggestions := []string{}
	gapDescriptions := []string{}
	if !licenseFound {
		missingSuggestions = append(missingSuggestions, documentationAddLicenseSuggestionConstant)
		gapDescriptions = append(gapDescriptions, documentationMissingLicenseGapConstant)
	}
	if !changelogFound {
		missingSuggestions = append(missingSuggestions, documentationAddChangelogSuggestionConstant)
		gapDescriptions = append(gapDescriptions, documentationMissingChangelogGapConstant)
	}

	if !readmeFound {
		return report.CheckResult{
			Name:        documentationCheckerNameConstant,
			Status:      report.CheckStatusError,
			Message:     documentationMissingReadmeMessageConstant,
			Suggestions: append([]string{documentationAddReadmeSuggestionConstant}, missingSuggestions...),
		}
	}

	readmeSubstantial := checker.readmeLength(snapshot.Tree.Root, readmePath) >= minimumReadmeLengthConstant
	if readmeSubstantial && licenseFound && changelogFound {
		suggestions := []string{}
		if readmeIsStale(snapshot.RecentCommits) {
			suggestions = append(suggestions, documentationRefreshReadmeSuggestionConstant)
		}
		return report.CheckResult{
			Name:        documentationCheckerNameConstant,
			Status:      report.CheckStatusPass,
			Message:     documentationCompleteMessageConstant,
			Suggestions: suggestions,
		}
	}

	suggestions := missingSuggestions
	if !readmeSubstantial {
		suggestions = append([]string{documentationExpandReadmeSuggestionConstant}, suggestions...)
		gapDescriptions = append([]string{documentationTrivialReadmeGapConstant}, gapDescriptions...)
	}
	return report.CheckResult{
		Name:        documentationCheckerNameConstant,
		Status:      report.CheckStatusWarning,
		Message:     formatDocumentationGaps(gapDescriptions),
		Suggestions: suggestions,
	}
}

func (checker *DocumentationChecker) readmeLength(repositoryRoot string, readmePath string) int {
	if checker.fileReader == nil {
		return 0
	}
	readmeContent, readError := checker.fileReader.ReadFile(filepath.Join(repositoryRoot, filepath.FromSlash(readmePath)))
	if readError != nil {
		return 0
	}
	return len(strings.TrimSpace(string(readmeContent)))
}

func formatDocumentationGaps(gapDescriptions []string) string {
	return fmt.Sprintf(documentationGapsMessageTemplateConstant, strings.Join(gapDescriptions, documentationGapSeparatorConstant))
}

// readmeIsStale reports whether recent commits changed the repository without
// touching any README file.
func readmeIsStale(recentCommits []report.Commit) bool {
	touchedOther := false
	touchedReadme := false
	for _, commit := range recentCommits {
		for _, changedPath := range commit.Files {
			baseName := strings.ToLower(path.Base(changedPath))
			if strings.HasPrefix(baseName, readmeBaseNamePrefixConstant) {
				touchedReadme = true
			} else {
				touchedOther = true
			}
		}
	}
	return touchedOther && !touchedReadme
}
