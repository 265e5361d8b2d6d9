package analyze_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/analyze"
	"github.com/temirov/repohealth/internal/execshell"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	testWorkTreeConfirmationConstant = "true\n"
	testWorkTreeRejectionConstant    = "false\n"
	testBranchOutputConstant         = "main\n"
	testRemoteOutputConstant         = "git@github.com:temirov/service.git\n"
	testGoModuleContentConstant      = "module example.com/service\n\ngo 1.22\n"
	testWorkflowContentConstant      = "name: ci\non: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - uses: actions/checkout@v4\n"
)

const testReadmeContentConstant = "# Service\n\nA sample service used in analysis tests. It exposes a small HTTP API, " +
	"persists nothing, and exists so the documentation checker sees a README long enough " +
	"to count as substantial during test runs across the analysis pipeline.\n"

const testHistoryLogOutputConstant = "COMMIT_START\n" +
	"1111111aaaaaaa\n" +
	"Alice Example\n" +
	"alice@example.com\n" +
	"2024-01-05T09:00:00+00:00\n" +
	"Initial commit\n" +
	"COMMIT_END\n" +
	"10\t0\tmain.go\n" +
	"4\t0\tREADME.md\n" +
	"\n" +
	"COMMIT_START\n" +
	"2222222bbbbbbb\n" +
	"Bob Builder\n" +
	"bob@example.com\n" +
	"2024-03-02T18:30:00+00:00\n" +
	"Add server package\n" +
	"COMMIT_END\n" +
	"25\t2\tinternal/server/server.go\n"

type stubGitExecutor struct {
	insideWorkTreeOutput string
	headVerifyError      error
	branchOutput         string
	remoteOutput         string
	logOutput            string
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, errors.New("missing git arguments")
	}
	switch details.Arguments[0] {
	case "rev-parse":
		switch details.Arguments[1] {
		case "--is-inside-work-tree":
			return execshell.ExecutionResult{StandardOutput: executor.insideWorkTreeOutput}, nil
		case "--verify":
			return execshell.ExecutionResult{}, executor.headVerifyError
		case "--abbrev-ref":
			return execshell.ExecutionResult{StandardOutput: executor.branchOutput}, nil
		}
	case "remote":
		return execshell.ExecutionResult{StandardOutput: executor.remoteOutput}, nil
	case "log":
		return execshell.ExecutionResult{StandardOutput: executor.logOutput}, nil
	}
	return execshell.ExecutionResult{}, errors.New("unexpected git invocation")
}

type fixedClock struct {
	current time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.current
}

func writeRepositoryFixture(testInstance *testing.T, repositoryRoot string) {
	testInstance.Helper()

	fixtureFiles := map[string]string{
		"README.md":                  testReadmeContentConstant,
		"LICENSE":                    "MIT License\n",
		"CHANGELOG.md":               "# Changelog\n\n## 0.1.0\n",
		"go.mod":                     testGoModuleContentConstant,
		"main.go":                    "package main\n",
		"internal/server/server.go":  "package server\n",
		"internal/server/server_test.go": "package server\n",
		".github/workflows/ci.yml":   testWorkflowContentConstant,
	}
	for relativePath, content := range fixtureFiles {
		absolutePath := filepath.Join(repositoryRoot, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
}

func TestServiceAnalyzeAssemblesReport(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	writeRepositoryFixture(testInstance, repositoryRoot)

	generationTime := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	service, creationError := analyze.NewService(analyze.ServiceDependencies{
		GitExecutor: &stubGitExecutor{
			insideWorkTreeOutput: testWorkTreeConfirmationConstant,
			branchOutput:         testBranchOutputConstant,
			remoteOutput:         testRemoteOutputConstant,
			logOutput:            testHistoryLogOutputConstant,
		},
		Clock: fixedClock{current: generationTime},
	})
	require.NoError(testInstance, creationError)

	analysisReport, analysisError := service.Analyze(context.Background(), analyze.AnalysisOptions{
		RepositoryPath: repositoryRoot,
	})
	require.NoError(testInstance, analysisError)

	require.Equal(testInstance, filepath.Base(repositoryRoot), analysisReport.Name)
	require.Equal(testInstance, repositoryRoot, analysisReport.Path)
	require.Equal(testInstance, "A sample service used in analysis tests. It exposes a small HTTP API, persists nothing, and exists so the documentation checker sees a README long enough to count as substantial during test runs across the analysis pipeline.", analysisReport.Description)
	require.Equal(testInstance, "main", analysisReport.Branch)
	require.Equal(testInstance, "git@github.com:temirov/service.git", analysisReport.RemoteURL)
	require.Equal(testInstance, generationTime, analysisReport.GeneratedAt)

	require.Len(testInstance, analysisReport.Commits, 2)
	require.Equal(testInstance, "1111111aaaaaaa", analysisReport.Commits[0].Hash)
	require.Equal(testInstance, "2222222bbbbbbb", analysisReport.Commits[1].Hash)
	require.Equal(testInstance, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), analysisReport.CreatedAt)
	require.Equal(testInstance, time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC), analysisReport.UpdatedAt)

	require.Len(testInstance, analysisReport.Contributors, 2)
	require.Equal(testInstance, "Alice Example", analysisReport.Contributors[0].Name)
	require.Equal(testInstance, 1, analysisReport.Contributors[0].Commits)

	require.NotEmpty(testInstance, analysisReport.FileActivity)
	require.NotEmpty(testInstance, analysisReport.Languages)
	require.Equal(testInstance, ".go", analysisReport.Languages[0].Extension)
	require.Equal(testInstance, 3, analysisReport.Languages[0].Files)

	require.Len(testInstance, analysisReport.Checks, 5)
	tally := analysisReport.Summary
	require.Equal(testInstance, 5, tally.Passed+tally.Warnings+tally.Errors)
	for _, checkResult := range analysisReport.Checks {
		if checkResult.Status != report.CheckStatusPass {
			require.NotEmpty(testInstance, checkResult.Suggestions, "check %s must suggest a fix", checkResult.Name)
		}
	}

	require.NotEmpty(testInstance, analysisReport.Tasks)
}

func TestServiceAnalyzeRejectsNonRepository(testInstance *testing.T) {
	service, creationError := analyze.NewService(analyze.ServiceDependencies{
		GitExecutor: &stubGitExecutor{insideWorkTreeOutput: testWorkTreeRejectionConstant},
	})
	require.NoError(testInstance, creationError)

	_, analysisError := service.Analyze(context.Background(), analyze.AnalysisOptions{
		RepositoryPath: testInstance.TempDir(),
	})

	var notFoundError gitrepo.RepositoryNotFoundError
	require.ErrorAs(testInstance, analysisError, &notFoundError)
}

func TestServiceAnalyzeHandlesEmptyRepository(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, "README.md"), []byte(testReadmeContentConstant), 0o644))

	headMissingFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}
	service, creationError := analyze.NewService(analyze.ServiceDependencies{
		GitExecutor: &stubGitExecutor{
			insideWorkTreeOutput: testWorkTreeConfirmationConstant,
			headVerifyError:      headMissingFailure,
			branchOutput:         testBranchOutputConstant,
		},
		Clock: fixedClock{current: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)},
	})
	require.NoError(testInstance, creationError)

	analysisReport, analysisError := service.Analyze(context.Background(), analyze.AnalysisOptions{
		RepositoryPath: repositoryRoot,
	})
	require.NoError(testInstance, analysisError)

	require.Empty(testInstance, analysisReport.Commits)
	require.Empty(testInstance, analysisReport.Contributors)
	require.True(testInstance, analysisReport.CreatedAt.IsZero())
	require.True(testInstance, analysisReport.UpdatedAt.IsZero())
	require.Len(testInstance, analysisReport.Checks, 5)
	require.NotEmpty(testInstance, analysisReport.Tasks)
}

func TestServiceRequiresGitExecutor(testInstance *testing.T) {
	_, creationError := analyze.NewService(analyze.ServiceDependencies{})
	require.Error(testInstance, creationError)
}
