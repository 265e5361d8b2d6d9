package gitrepo

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/temirov/repohealth/internal/execshell"
	"github.com/temirov/repohealth/internal/report"
)

const (
	gitRevParseSubcommandConstant      = "rev-parse"
	gitWorkTreeFlagConstant            = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitVerifyFlagConstant              = "--verify"
	gitQuietFlagConstant               = "--quiet"
	gitHeadReferenceConstant           = "HEAD"
	gitSymbolicRefSubcommandConstant   = "symbolic-ref"
	gitShortFlagConstant               = "--short"
	gitRemoteSubcommandConstant        = "remote"
	gitRemoteGetURLSubcommandConstant  = "get-url"
	gitOriginRemoteNameConstant        = "origin"
	gitLogSubcommandConstant           = "log"
	gitNoMergesFlagConstant            = "--no-merges"
	gitReverseFlagConstant             = "--reverse"
	gitNumstatFlagConstant             = "--numstat"
	gitLogFormatFlagTemplateConstant   = "--format=" + gitLogRecordFormatConstant
	gitLogRecordFormatConstant         = commitStartSentinelConstant + "%n%H%n%an%n%ae%n%aI%n%s%n" + commitEndSentinelConstant
	workTreeConfirmationOutputConstant = "true"
	noDescriptionFallbackConstant      = "No description"
	markdownHeadingPrefixConstant      = "#"
)

// readmeCandidateNames lists README files consulted for the repository description.
var readmeCandidateNames = []string{"README.md", "README.rst", "README.txt", "README"}

// GitExecutor abstracts git command execution for repository readers.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem abstracts the filesystem reads used during metadata collection.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// HistoryReader collects commit history and repository metadata through git.
type HistoryReader struct {
	gitExecutor GitExecutor
	fileSystem  FileSystem
}

// NewHistoryReader constructs a HistoryReader from its collaborators.
func NewHistoryReader(gitExecutor GitExecutor, fileSystem FileSystem) *HistoryReader {
	return &HistoryReader{gitExecutor: gitExecutor, fileSystem: fileSystem}
}

// IsRepository reports whether the path resolves to a git work tree.
func (reader *HistoryReader) IsRepository(executionContext context.Context, repositoryPath string) bool {
	executionResult, executionError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == workTreeConfirmationOutputConstant
}

// CollectHistory returns the repository's full commit list ordered oldest first.
//
// Invalid repository paths fail with RepositoryNotFoundError. A repository
// without any commit yields an empty slice so downstream aggregation can
// degrade gracefully. Merge commits are excluded.
func (reader *HistoryReader) CollectHistory(executionContext context.Context, repositoryPath string) ([]report.Commit, error) {
	if !reader.IsRepository(executionContext, repositoryPath) {
		return nil, RepositoryNotFoundError{Path: repositoryPath}
	}

	if !reader.hasAnyCommit(executionContext, repositoryPath) {
		return []report.Commit{}, nil
	}

	executionResult, executionError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitLogSubcommandConstant,
			gitNoMergesFlagConstant,
			gitReverseFlagConstant,
			gitLogFormatFlagTemplateConstant,
			gitNumstatFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	return parseHistoryOutput(executionResult.StandardOutput), nil
}

// hasAnyCommit reports whether HEAD resolves to a commit.
func (reader *HistoryReader) hasAnyCommit(executionContext context.Context, repositoryPath string) bool {
	_, verificationError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if verificationError == nil {
		return true
	}
	var commandFailure execshell.CommandFailedError
	if errors.As(verificationError, &commandFailure) {
		return false
	}
	return false
}

// ResolveMetadata gathers repository identity outside of commit history.
//
// The current branch tolerates detached HEAD (git reports the literal HEAD)
// and unborn branches; a missing origin remote yields an empty remote URL.
// CreatedAt is left for the caller to derive from the first collected commit.
func (reader *HistoryReader) ResolveMetadata(executionContext context.Context, repositoryPath string) report.RepositoryMetadata {
	return report.RepositoryMetadata{
		Name:        filepath.Base(filepath.Clean(repositoryPath)),
		Path:        repositoryPath,
		Description: reader.resolveDescription(repositoryPath),
		Branch:      reader.resolveCurrentBranch(executionContext, repositoryPath),
		RemoteURL:   reader.resolveRemoteURL(executionContext, repositoryPath),
	}
}

func (reader *HistoryReader) resolveCurrentBranch(executionContext context.Context, repositoryPath string) string {
	revParseResult, revParseError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if revParseError == nil {
		return strings.TrimSpace(revParseResult.StandardOutput)
	}

	// rev-parse cannot resolve an unborn branch; symbolic-ref still names it.
	symbolicRefResult, symbolicRefError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if symbolicRefError == nil {
		return strings.TrimSpace(symbolicRefResult.StandardOutput)
	}
	return ""
}

func (reader *HistoryReader) resolveRemoteURL(executionContext context.Context, repositoryPath string) string {
	executionResult, executionError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, gitOriginRemoteNameConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return ""
	}
	return strings.TrimSpace(executionResult.StandardOutput)
}

// resolveDescription extracts the first substantive README line.
func (reader *HistoryReader) resolveDescription(repositoryPath string) string {
	if reader.fileSystem == nil {
		return noDescriptionFallbackConstant
	}
	for _, candidateName := range readmeCandidateNames {
		readmeContent, readError := reader.fileSystem.ReadFile(filepath.Join(repositoryPath, candidateName))
		if readError != nil {
			continue
		}
		description := firstSubstantiveLine(string(readmeContent))
		if len(description) > 0 {
			return description
		}
	}
	return noDescriptionFallbackConstant
}

func firstSubstantiveLine(content string) string {
	for _, line := range strings.Split(content, historyLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, markdownHeadingPrefixConstant) {
			continue
		}
		return trimmedLine
	}
	return ""
}
