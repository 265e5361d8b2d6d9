package render

import (
	"fmt"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const (
	markdownDocumentTemplateConstant = `# %s

**%s**

## 📊 Project Overview

%s

### Top Contributors

%s

### Most Active Files

%s

### Languages Used

%s

## 🔍 Health Checks

%s

## 📋 Next Steps

%s

## 📜 Recent Commits

%s

*[View full history in the JSON file]*
`
	markdownCreatedTemplateConstant     = "- **Created:** %s"
	markdownUpdatedTemplateConstant     = "- **Last Updated:** %s"
	markdownCommitsTemplateConstant     = "- **Total Commits:** %d"
	markdownBranchTemplateConstant      = "- **Branch:** %s"
	markdownRemoteTemplateConstant      = "- **Repository:** [%s](%s)"
	markdownContributorTemplateConstant = "- %s: %d commits"
	markdownFileTemplateConstant        = "- %s: %d changes"
	markdownLanguageTemplateConstant    = "- %s: %d files"
	markdownCheckTemplateConstant       = "- %s **%s**: %s"
	markdownSuggestionTemplateConstant  = "  - %s"
	markdownTaskTemplateConstant        = "- [ ] %s"
	markdownCommitTemplateConstant      = "- `%s` %s (%s)"
)

// RenderMarkdown formats the report as a standalone Markdown document.
func RenderMarkdown(analysisReport report.Report) string {
	return fmt.Sprintf(markdownDocumentTemplateConstant,
		analysisReport.Name,
		analysisReport.Description,
		strings.Join(markdownOverviewLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownContributorLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownFileLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownLanguageLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownCheckLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownTaskLines(analysisReport), textLineSeparatorConstant),
		strings.Join(markdownCommitLines(analysisReport), textLineSeparatorConstant),
	)
}

func markdownOverviewLines(analysisReport report.Report) []string {
	lines := []string{
		fmt.Sprintf(markdownCreatedTemplateConstant, formatDate(analysisReport.CreatedAt)),
		fmt.Sprintf(markdownUpdatedTemplateConstant, formatDate(analysisReport.UpdatedAt)),
		fmt.Sprintf(markdownCommitsTemplateConstant, len(analysisReport.Commits)),
	}
	if len(analysisReport.Branch) > 0 {
		lines = append(lines, fmt.Sprintf(markdownBranchTemplateConstant, analysisReport.Branch))
	}
	remoteLine, remoteAvailable := markdownRemoteLine(analysisReport.RemoteURL)
	if remoteAvailable {
		lines = append(lines, remoteLine)
	}
	return lines
}

func markdownRemoteLine(remoteAddress string) (string, bool) {
	remoteLabel, webAddress, remoteAvailable := remoteWebLink(remoteAddress)
	if !remoteAvailable {
		return "", false
	}
	return fmt.Sprintf(markdownRemoteTemplateConstant, remoteLabel, webAddress), true
}

func markdownContributorLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, contributor := range analysisReport.Contributors {
		lines = append(lines, fmt.Sprintf(markdownContributorTemplateConstant, contributor.Name, contributor.Commits))
	}
	return lines
}

func markdownFileLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, fileActivity := range analysisReport.FileActivity {
		lines = append(lines, fmt.Sprintf(markdownFileTemplateConstant, fileActivity.Path, fileActivity.Changes))
	}
	return lines
}

func markdownLanguageLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, languageCount := range analysisReport.Languages {
		lines = append(lines, fmt.Sprintf(markdownLanguageTemplateConstant, languageCount.Extension, languageCount.Files))
	}
	return lines
}

func markdownCheckLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, checkResult := range analysisReport.Checks {
		lines = append(lines, fmt.Sprintf(markdownCheckTemplateConstant, StatusGlyph(checkResult.Status), checkResult.Name, checkResult.Message))
		for _, suggestion := range checkResult.Suggestions {
			lines = append(lines, fmt.Sprintf(markdownSuggestionTemplateConstant, suggestion))
		}
	}
	return lines
}

func markdownTaskLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, task := range analysisReport.Tasks {
		lines = append(lines, fmt.Sprintf(markdownTaskTemplateConstant, task))
	}
	return lines
}

func markdownCommitLines(analysisReport report.Report) []string {
	lines := []string{}
	for _, commit := range recentCommits(analysisReport) {
		lines = append(lines, fmt.Sprintf(markdownCommitTemplateConstant, shortHash(commit.Hash), commit.Message, formatDate(commit.Timestamp)))
	}
	return lines
}
