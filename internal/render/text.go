package render

import (
	"fmt"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const (
	textReportTitleConstant            = "📊 Repository Analysis Report"
	textHeavyRuleConstant              = "================================================================================"
	textLightRuleConstant              = "--------------------------------------------------------------------------------"
	textProjectLineTemplateConstant    = "Project: %s"
	textGeneratedLineTemplateConstant  = "Generated: %s"
	textSummaryHeadingConstant         = "Summary:"
	textPassedLineTemplateConstant     = "✅ %d passed"
	textWarningsLineTemplateConstant   = "⚠️  %d warnings"
	textErrorsLineTemplateConstant     = "❌ %d errors"
	textDetailsHeadingConstant         = "Detailed Results:"
	textCommitsHeadingConstant         = "Recent Commits:"
	textCommitLineTemplateConstant     = "%s %s (%s)"
	textSuggestionsHeadingConstant     = "  Suggestions:"
	textSuggestionLineTemplateConstant = "    • %s"
	textActionsHeadingConstant         = "Recommended Actions:"
	textActionTitleTemplateConstant    = "%d. %s"
	textActionItemTemplateConstant     = "   • %s"
	textMessageIndentConstant          = "  "
	textLineSeparatorConstant          = "\n"
	passStatusPrefixConstant           = "✅ "
	warningStatusPrefixConstant        = "⚠️  "
	errorStatusPrefixConstant          = "❌ "
)

// TextOptions tunes the console rendering.
type TextOptions struct {
	ShowSuggestions bool
}

// RenderText formats the report for terminal display.
//
// The layout is a summary tally, per-check details with optional suggestion
// blocks, the latest commits, and a Recommended Actions digest collected
// from every non-passing check.
func RenderText(analysisReport report.Report, options TextOptions) string {
	lines := []string{
		textReportTitleConstant,
		textHeavyRuleConstant,
		fmt.Sprintf(textProjectLineTemplateConstant, analysisReport.Name),
		fmt.Sprintf(textGeneratedLineTemplateConstant, formatTimestamp(analysisReport.GeneratedAt)),
		"",
		textSummaryHeadingConstant,
		textLightRuleConstant,
		fmt.Sprintf(textPassedLineTemplateConstant, analysisReport.Summary.Passed),
		fmt.Sprintf(textWarningsLineTemplateConstant, analysisReport.Summary.Warnings),
		fmt.Sprintf(textErrorsLineTemplateConstant, analysisReport.Summary.Errors),
		"",
		textDetailsHeadingConstant,
		textLightRuleConstant,
	}

	for _, checkResult := range analysisReport.Checks {
		lines = append(lines,
			textStatusPrefix(checkResult.Status)+checkResult.Name,
			textMessageIndentConstant+checkResult.Message,
		)
		if options.ShowSuggestions && len(checkResult.Suggestions) > 0 {
			lines = append(lines, "", textSuggestionsHeadingConstant)
			for _, suggestion := range checkResult.Suggestions {
				lines = append(lines, fmt.Sprintf(textSuggestionLineTemplateConstant, suggestion))
			}
		}
		lines = append(lines, "")
	}

	newestCommits := recentCommits(analysisReport)
	if len(newestCommits) > 0 {
		lines = append(lines, textCommitsHeadingConstant, textLightRuleConstant)
		for _, commit := range newestCommits {
			lines = append(lines, fmt.Sprintf(textCommitLineTemplateConstant, shortHash(commit.Hash), commit.Message, formatDate(commit.Timestamp)))
		}
		lines = append(lines, "")
	}

	if options.ShowSuggestions {
		lines = append(lines, renderRecommendedActions(analysisReport)...)
	}

	return strings.Join(lines, textLineSeparatorConstant) + textLineSeparatorConstant
}

func textStatusPrefix(status report.CheckStatus) string {
	switch status {
	case report.CheckStatusPass:
		return passStatusPrefixConstant
	case report.CheckStatusWarning:
		return warningStatusPrefixConstant
	default:
		return errorStatusPrefixConstant
	}
}

func renderRecommendedActions(analysisReport report.Report) []string {
	actionableChecks := []report.CheckResult{}
	for _, checkResult := range analysisReport.Checks {
		if checkResult.Status == report.CheckStatusPass {
			continue
		}
		if len(checkResult.Suggestions) == 0 {
			continue
		}
		actionableChecks = append(actionableChecks, checkResult)
	}
	if len(actionableChecks) == 0 {
		return nil
	}

	lines := []string{textActionsHeadingConstant, textLightRuleConstant}
	for actionIndex, checkResult := range actionableChecks {
		lines = append(lines, fmt.Sprintf(textActionTitleTemplateConstant, actionIndex+1, checkResult.Name))
		for _, suggestion := range checkResult.Suggestions {
			lines = append(lines, fmt.Sprintf(textActionItemTemplateConstant, suggestion))
		}
		lines = append(lines, "")
	}
	return lines
}
