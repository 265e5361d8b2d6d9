package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/render"
)

const (
	orgIntegrationAlphaRepositoryConstant   = "alpha-service"
	orgIntegrationBetaRepositoryConstant    = "beta-library"
	orgIntegrationAlphaRemoteConstant       = "git@github.com:integration/alpha-service.git"
	orgIntegrationBetaRemoteConstant        = "git@github.com:integration/beta-library.git"
	orgIntegrationPlainDirectoryConstant    = "notes"
	orgIntegrationOutputDirectoryConstant   = "status"
	orgIntegrationTallyLineConstant         = "Analyzed 2 repositories: 2 succeeded, 0 failed"
	orgIntegrationAlphaStatusLineConstant   = "alpha-service: 2 commits, 1 contributors"
	orgIntegrationBetaStatusLineConstant    = "beta-library: 1 commits, 1 contributors"
	orgIntegrationWrittenPrefixConstant     = "Reports written to "
	orgIntegrationDiscoveryErrorConstant    = "repository discovery failed"
	orgIntegrationSummaryFileNameConstant   = "summary.json"
	orgIntegrationReportFileNameConstant    = "status.json"
	orgIntegrationMarkdownFileNameConstant  = "status.md"
	orgIntegrationDashboardFileNameConstant = "index.html"
	orgIntegrationMissingRootNameConstant   = "missing-root"
)

func buildOrganizationRoot(testInstance *testing.T) string {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()

	initializeIntegrationRepository(testInstance, filepath.Join(rootDirectory, orgIntegrationAlphaRepositoryConstant), orgIntegrationAlphaRemoteConstant, []integrationCommitSpec{
		{
			message: "bootstrap service",
			files: map[string]string{
				"go.mod":  "module example.com/alpha-service\n\ngo 1.24\n",
				"main.go": "package main\n\nfunc main() {}\n",
			},
		},
		{
			message: "document service",
			files: map[string]string{
				"README.md": "# alpha-service\n",
			},
		},
	})

	initializeIntegrationRepository(testInstance, filepath.Join(rootDirectory, orgIntegrationBetaRepositoryConstant), orgIntegrationBetaRemoteConstant, []integrationCommitSpec{
		{
			message: "bootstrap library",
			files: map[string]string{
				"library.go": "package library\n",
			},
		},
	})

	plainDirectory := filepath.Join(rootDirectory, orgIntegrationPlainDirectoryConstant)
	require.NoError(testInstance, os.MkdirAll(plainDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(plainDirectory, "scratch.txt"), []byte("not a repository\n"), 0o644))

	return rootDirectory
}

func TestAnalyzeOrgCommandProducesBundles(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	organizationRoot := buildOrganizationRoot(testInstance)
	outputDirectory := filepath.Join(testInstance.TempDir(), orgIntegrationOutputDirectoryConstant)

	outputText := runIntegrationCommand(testInstance, repositoryRootDirectory, nil, integrationCommandTimeout, []string{
		"run", ".", "analyze-org", organizationRoot,
		"--output", outputDirectory,
		integrationLogLevelFlagConstant, integrationErrorLevelConstant,
	})
	statusText := filterStructuredOutput(outputText)

	require.Contains(testInstance, statusText, orgIntegrationTallyLineConstant)
	require.Contains(testInstance, statusText, orgIntegrationAlphaStatusLineConstant)
	require.Contains(testInstance, statusText, orgIntegrationBetaStatusLineConstant)
	require.Contains(testInstance, statusText, orgIntegrationWrittenPrefixConstant+outputDirectory)

	summaryBytes, summaryReadError := os.ReadFile(filepath.Join(outputDirectory, orgIntegrationSummaryFileNameConstant))
	require.NoError(testInstance, summaryReadError)
	ecosystemSummary, summaryParseError := render.ParseEcosystemSummary(summaryBytes)
	require.NoError(testInstance, summaryParseError)

	require.Equal(testInstance, 2, ecosystemSummary.TotalRepositories)
	require.Empty(testInstance, ecosystemSummary.Failures)
	require.Len(testInstance, ecosystemSummary.Repositories, 2)
	require.Equal(testInstance, orgIntegrationAlphaRepositoryConstant, ecosystemSummary.Repositories[0].Name)
	require.Equal(testInstance, 2, ecosystemSummary.Repositories[0].TotalCommits)
	require.Equal(testInstance, orgIntegrationBetaRepositoryConstant, ecosystemSummary.Repositories[1].Name)
	require.Equal(testInstance, 1, ecosystemSummary.Repositories[1].TotalCommits)
	require.Len(testInstance, ecosystemSummary.MostActive, 2)
	require.Equal(testInstance, orgIntegrationAlphaRepositoryConstant, ecosystemSummary.MostActive[0].Name)

	for _, repositoryName := range []string{orgIntegrationAlphaRepositoryConstant, orgIntegrationBetaRepositoryConstant} {
		bundleDirectory := filepath.Join(outputDirectory, repositoryName)

		reportBytes, reportReadError := os.ReadFile(filepath.Join(bundleDirectory, orgIntegrationReportFileNameConstant))
		require.NoError(testInstance, reportReadError)
		repositoryReport, reportParseError := render.ParseReport(reportBytes)
		require.NoError(testInstance, reportParseError)
		require.Equal(testInstance, repositoryName, repositoryReport.Name)

		markdownBytes, markdownReadError := os.ReadFile(filepath.Join(bundleDirectory, orgIntegrationMarkdownFileNameConstant))
		require.NoError(testInstance, markdownReadError)
		require.True(testInstance, strings.HasPrefix(string(markdownBytes), "# "+repositoryName))

		indexBytes, indexReadError := os.ReadFile(filepath.Join(bundleDirectory, orgIntegrationDashboardFileNameConstant))
		require.NoError(testInstance, indexReadError)
		require.Contains(testInstance, string(indexBytes), orgIntegrationReportFileNameConstant)
	}

	dashboardBytes, dashboardReadError := os.ReadFile(filepath.Join(outputDirectory, orgIntegrationDashboardFileNameConstant))
	require.NoError(testInstance, dashboardReadError)
	require.Contains(testInstance, string(dashboardBytes), orgIntegrationAlphaRepositoryConstant)
	require.Contains(testInstance, string(dashboardBytes), orgIntegrationBetaRepositoryConstant)
}

func TestAnalyzeOrgCommandFailsWhenRootMissing(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	missingRoot := filepath.Join(testInstance.TempDir(), orgIntegrationMissingRootNameConstant)
	outputDirectory := filepath.Join(testInstance.TempDir(), orgIntegrationOutputDirectoryConstant)

	outputText, runError := runFailingIntegrationCommand(testInstance, repositoryRootDirectory, nil, integrationCommandTimeout, []string{
		"run", ".", "analyze-org", missingRoot,
		"--output", outputDirectory,
		integrationLogLevelFlagConstant, integrationErrorLevelConstant,
	})
	require.Error(testInstance, runError)
	require.Contains(testInstance, outputText, orgIntegrationDiscoveryErrorConstant)
}
