package gitrepo

import (
	"strconv"
	"strings"
	"time"

	"github.com/temirov/repohealth/internal/report"
)

const (
	commitStartSentinelConstant       = "COMMIT_START"
	commitEndSentinelConstant         = "COMMIT_END"
	commitHashLineIndexConstant       = 0
	commitAuthorNameLineIndexConstant = 1
	commitAuthorMailLineIndexConstant = 2
	commitTimestampLineIndexConstant  = 3
	commitSubjectLineIndexConstant    = 4
	numstatFieldCountConstant         = 3
	numstatBinaryMarkerConstant       = "-"
	numstatFieldSeparatorConstant     = "\t"
	historyLineSeparatorConstant      = "\n"
)

// parseHistoryOutput converts sentinel-delimited git log output into commits.
//
// The expected record layout is the COMMIT_START sentinel followed by hash,
// author name, author email, strict ISO author date, and subject on separate
// lines, then COMMIT_END and the numstat block for the commit. Timestamps are
// normalized to UTC; binary numstat entries contribute their path with zero
// line counts.
func parseHistoryOutput(logOutput string) []report.Commit {
	commits := []report.Commit{}
	var currentCommit *report.Commit
	headerLineIndex := 0
	readingNumstat := false

	for _, rawLine := range strings.Split(logOutput, historyLineSeparatorConstant) {
		line := strings.TrimRight(rawLine, "\r")

		switch {
		case line == commitStartSentinelConstant:
			if currentCommit != nil {
				commits = append(commits, *currentCommit)
			}
			currentCommit = &report.Commit{Files: []string{}}
			headerLineIndex = 0
			readingNumstat = false

		case line == commitEndSentinelConstant:
			readingNumstat = true

		case currentCommit != nil && !readingNumstat:
			parseHeaderLine(currentCommit, headerLineIndex, line)
			headerLineIndex++

		case currentCommit != nil && readingNumstat && len(line) > 0:
			applyNumstatLine(currentCommit, line)
		}
	}

	if currentCommit != nil {
		commits = append(commits, *currentCommit)
	}
	return commits
}

func parseHeaderLine(commit *report.Commit, lineIndex int, line string) {
	switch lineIndex {
	case commitHashLineIndexConstant:
		commit.Hash = line
	case commitAuthorNameLineIndexConstant:
		commit.Author = line
	case commitAuthorMailLineIndexConstant:
		commit.AuthorEmail = line
	case commitTimestampLineIndexConstant:
		parsedTimestamp, parseError := time.Parse(time.RFC3339, line)
		if parseError == nil {
			commit.Timestamp = parsedTimestamp.UTC().Truncate(time.Second)
		}
	case commitSubjectLineIndexConstant:
		commit.Message = line
	}
}

func applyNumstatLine(commit *report.Commit, line string) {
	fields := strings.Split(line, numstatFieldSeparatorConstant)
	if len(fields) != numstatFieldCountConstant {
		return
	}

	commit.Files = append(commit.Files, fields[2])
	if fields[0] == numstatBinaryMarkerConstant {
		return
	}

	additions, additionsError := strconv.Atoi(fields[0])
	if additionsError == nil {
		commit.Additions += additions
	}
	deletions, deletionsError := strconv.Atoi(fields[1])
	if deletionsError == nil {
		commit.Deletions += deletions
	}
}
