package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	renderErrorTemplateConstant     = "%s rendering failed: %v"
	remoteLabelTemplateConstant     = "%s/%s"
	statusPassGlyphConstant         = "✅"
	statusWarningGlyphConstant      = "⚠️"
	statusErrorGlyphConstant        = "❌"
	dateLayoutConstant              = "2006-01-02"
	timestampLayoutConstant         = "2006-01-02 15:04:05"
	missingValuePlaceholderConstant = "N/A"
	shortHashLengthConstant         = 7
	recentCommitSampleSizeConstant  = 10
)

// RenderError marks a serialization failure in one output format.
//
// The failure is fatal only for that format; callers continue with the
// remaining requested formats.
type RenderError struct {
	Format string
	Cause  error
}

// Error describes the failed format.
func (renderError RenderError) Error() string {
	return fmt.Sprintf(renderErrorTemplateConstant, renderError.Format, renderError.Cause)
}

// Unwrap exposes the underlying serialization failure.
func (renderError RenderError) Unwrap() error {
	return renderError.Cause
}

// StatusGlyph maps a check status onto its console glyph.
func StatusGlyph(status report.CheckStatus) string {
	switch status {
	case report.CheckStatusPass:
		return statusPassGlyphConstant
	case report.CheckStatusWarning:
		return statusWarningGlyphConstant
	default:
		return statusErrorGlyphConstant
	}
}

func formatDate(timestamp time.Time) string {
	if timestamp.IsZero() {
		return missingValuePlaceholderConstant
	}
	return timestamp.Format(dateLayoutConstant)
}

func formatTimestamp(timestamp time.Time) string {
	if timestamp.IsZero() {
		return missingValuePlaceholderConstant
	}
	return timestamp.Format(timestampLayoutConstant)
}

func shortHash(commitHash string) string {
	if len(commitHash) <= shortHashLengthConstant {
		return commitHash
	}
	return commitHash[:shortHashLengthConstant]
}

// remoteWebLink derives the browsable label and address for a remote.
// Remotes that do not resolve to a known hosting layout report false so the
// renderers omit the link instead of emitting a broken one.
func remoteWebLink(remoteAddress string) (string, string, bool) {
	if len(strings.TrimSpace(remoteAddress)) == 0 {
		return "", "", false
	}
	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteAddress)
	if parseError != nil {
		return "", "", false
	}
	webAddress, formatError := gitrepo.FormatWebAddress(parsedRemote)
	if formatError != nil {
		return "", "", false
	}
	remoteLabel := fmt.Sprintf(remoteLabelTemplateConstant, parsedRemote.Owner, parsedRemote.Repository)
	return remoteLabel, webAddress, true
}

// recentCommits returns the newest commits first, capped at the sample size.
func recentCommits(analysisReport report.Report) []report.Commit {
	commitCount := len(analysisReport.Commits)
	sampleSize := recentCommitSampleSizeConstant
	if commitCount < sampleSize {
		sampleSize = commitCount
	}

	newestFirst := make([]report.Commit, 0, sampleSize)
	for commitIndex := commitCount - 1; commitIndex >= commitCount-sampleSize; commitIndex-- {
		newestFirst = append(newestFirst, analysisReport.Commits[commitIndex])
	}
	return newestFirst
}
