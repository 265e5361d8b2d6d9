package gitrepo_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/execshell"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	testRepositoryPathConstant          = "/workspace/example"
	testNotRepositoryCaseNameConstant   = "not_a_repository"
	testProbeFailureCaseNameConstant    = "probe_failure"
	testEmptyRepositoryCaseNameConstant = "empty_repository"
	testFullHistoryCaseNameConstant     = "full_history"
	testWorkTreeConfirmationConstant    = "true\n"
	testWorkTreeRejectionConstant       = "false\n"
	testAttachedBranchCaseNameConstant  = "attached_branch_with_remote"
	testDetachedHeadCaseNameConstant    = "detached_head"
	testUnbornBranchCaseNameConstant    = "unborn_branch"
	testBareMetadataCaseNameConstant    = "no_remote_no_readme"
	testReadmeDescriptionConstant       = "Analyzer that reports repository health."
	testNoDescriptionFallbackConstant   = "No description"
	testHistoryLogOutputConstant        = "COMMIT_START\n" +
		"abc123\n" +
		"Alice Example\n" +
		"alice@example.com\n" +
		"2024-03-01T10:00:00-05:00\n" +
		"Add history parser\n" +
		"COMMIT_END\n" +
		"12\t3\tinternal/parser.go\n" +
		"0\t0\tdocs/notes.md\n" +
		"-\t-\tassets/logo.png\n" +
		"\n" +
		"COMMIT_START\n" +
		"def456\n" +
		"Bob Builder\n" +
		"bob@example.com\n" +
		"2024-03-02T11:30:00+02:00\n" +
		"Handle binary files\n" +
		"COMMIT_END\n" +
		"5\t1\tinternal/parser.go\n"
)

type stubGitExecutor struct {
	insideWorkTreeOutput string
	insideWorkTreeError  error
	headVerifyError      error
	branchOutput         string
	branchError          error
	symbolicRefOutput    string
	symbolicRefError     error
	remoteOutput         string
	remoteError          error
	logOutput            string
	logError             error
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, errors.New("missing git arguments")
	}
	switch details.Arguments[0] {
	case "rev-parse":
		switch details.Arguments[1] {
		case "--is-inside-work-tree":
			return execshell.ExecutionResult{StandardOutput: executor.insideWorkTreeOutput}, executor.insideWorkTreeError
		case "--verify":
			return execshell.ExecutionResult{}, executor.headVerifyError
		case "--abbrev-ref":
			return execshell.ExecutionResult{StandardOutput: executor.branchOutput}, executor.branchError
		}
	case "symbolic-ref":
		return execshell.ExecutionResult{StandardOutput: executor.symbolicRefOutput}, executor.symbolicRefError
	case "remote":
		return execshell.ExecutionResult{StandardOutput: executor.remoteOutput}, executor.remoteError
	case "log":
		return execshell.ExecutionResult{StandardOutput: executor.logOutput}, executor.logError
	}
	return execshell.ExecutionResult{}, errors.New("unexpected git invocation")
}

type stubFileSystem struct {
	files map[string][]byte
}

func (fileSystem *stubFileSystem) ReadFile(path string) ([]byte, error) {
	content, found := fileSystem.files[path]
	if !found {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

func TestHistoryReaderCollectHistory(testInstance *testing.T) {
	commandFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}

	testCases := []struct {
		name               string
		executor           *stubGitExecutor
		expectNotFound     bool
		expectedCommits    []report.Commit
	}{
		{
			name:           testNotRepositoryCaseNameConstant,
			executor:       &stubGitExecutor{insideWorkTreeOutput: testWorkTreeRejectionConstant},
			expectNotFound: true,
		},
		{
			name:           testProbeFailureCaseNameConstant,
			executor:       &stubGitExecutor{insideWorkTreeError: commandFailure},
			expectNotFound: true,
		},
		{
			name: testEmptyRepositoryCaseNameConstant,
			executor: &stubGitExecutor{
				insideWorkTreeOutput: testWorkTreeConfirmationConstant,
				headVerifyError:      commandFailure,
			},
			expectedCommits: []report.Commit{},
		},
		{
			name: testFullHistoryCaseNameConstant,
			executor: &stubGitExecutor{
				insideWorkTreeOutput: testWorkTreeConfirmationConstant,
				logOutput:            testHistoryLogOutputConstant,
			},
			expectedCommits: []report.Commit{
				{
					Hash:        "abc123",
					Author:      "Alice Example",
					AuthorEmail: "alice@example.com",
					Timestamp:   time.Date(2024, time.March, 1, 15, 0, 0, 0, time.UTC),
					Message:     "Add history parser",
					Files:       []string{"internal/parser.go", "docs/notes.md", "assets/logo.png"},
					Additions:   12,
					Deletions:   3,
				},
				{
					Hash:        "def456",
					Author:      "Bob Builder",
					AuthorEmail: "bob@example.com",
					Timestamp:   time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC),
					Message:     "Handle binary files",
					Files:       []string{"internal/parser.go"},
					Additions:   5,
					Deletions:   1,
				},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			historyReader := gitrepo.NewHistoryReader(testCase.executor, &stubFileSystem{})

			collectedCommits, collectionError := historyReader.CollectHistory(context.Background(), testRepositoryPathConstant)

			if testCase.expectNotFound {
				require.Error(testInstance, collectionError)
				var notFoundError gitrepo.RepositoryNotFoundError
				require.ErrorAs(testInstance, collectionError, &notFoundError)
				require.Equal(testInstance, testRepositoryPathConstant, notFoundError.Path)
				return
			}

			require.NoError(testInstance, collectionError)
			require.NotNil(testInstance, collectedCommits)
			require.Equal(testInstance, testCase.expectedCommits, collectedCommits)
		})
	}
}

func TestHistoryReaderResolveMetadata(testInstance *testing.T) {
	readmePath := filepath.Join(testRepositoryPathConstant, "README.md")
	readmeContent := []byte("# Example\n\n" + testReadmeDescriptionConstant + "\n")

	testCases := []struct {
		name                string
		executor            *stubGitExecutor
		files               map[string][]byte
		expectedBranch      string
		expectedRemote      string
		expectedDescription string
	}{
		{
			name: testAttachedBranchCaseNameConstant,
			executor: &stubGitExecutor{
				branchOutput: "main\n",
				remoteOutput: "git@github.com:example/repo.git\n",
			},
			files:               map[string][]byte{readmePath: readmeContent},
			expectedBranch:      "main",
			expectedRemote:      "git@github.com:example/repo.git",
			expectedDescription: testReadmeDescriptionConstant,
		},
		{
			name: testDetachedHeadCaseNameConstant,
			executor: &stubGitExecutor{
				branchOutput: "HEAD\n",
				remoteError:  errors.New("no such remote"),
			},
			expectedBranch:      "HEAD",
			expectedDescription: testNoDescriptionFallbackConstant,
		},
		{
			name: testUnbornBranchCaseNameConstant,
			executor: &stubGitExecutor{
				branchError:       errors.New("unknown revision"),
				symbolicRefOutput: "main\n",
				remoteError:       errors.New("no such remote"),
			},
			expectedBranch:      "main",
			expectedDescription: testNoDescriptionFallbackConstant,
		},
		{
			name: testBareMetadataCaseNameConstant,
			executor: &stubGitExecutor{
				branchError:      errors.New("unknown revision"),
				symbolicRefError: errors.New("unknown revision"),
				remoteError:      errors.New("no such remote"),
			},
			expectedDescription: testNoDescriptionFallbackConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			historyReader := gitrepo.NewHistoryReader(testCase.executor, &stubFileSystem{files: testCase.files})

			resolvedMetadata := historyReader.ResolveMetadata(context.Background(), testRepositoryPathConstant)

			require.Equal(testInstance, filepath.Base(testRepositoryPathConstant), resolvedMetadata.Name)
			require.Equal(testInstance, testRepositoryPathConstant, resolvedMetadata.Path)
			require.Equal(testInstance, testCase.expectedBranch, resolvedMetadata.Branch)
			require.Equal(testInstance, testCase.expectedRemote, resolvedMetadata.RemoteURL)
			require.Equal(testInstance, testCase.expectedDescription, resolvedMetadata.Description)
		})
	}
}
