package analyze

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/repohealth/internal/checks"
	"github.com/temirov/repohealth/internal/filesystem"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/metrics"
	"github.com/temirov/repohealth/internal/report"
)

const (
	recentCommitSampleSizeConstant      = 10
	gitExecutorRequiredMessageConstant  = "analysis service requires a git executor"
	treeCollectionErrorTemplateConstant = "unable to inspect working tree: %w"
	analysisCompletedMessageConstant    = "Repository analysis completed"
	logFieldRepositoryPathConstant      = "repository"
	logFieldCommitCountConstant         = "commits"
	logFieldContributorCountConstant    = "contributors"
	logFieldCheckWarningCountConstant   = "warnings"
	logFieldCheckErrorCountConstant     = "errors"
)

// FileSystem bundles the file reads performed across the analysis pipeline.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// ServiceDependencies carries the collaborators required to build a Service.
type ServiceDependencies struct {
	Logger      *zap.Logger
	GitExecutor gitrepo.GitExecutor
	FileSystem  FileSystem
	Clock       report.Clock
}

// AnalysisOptions tunes one analysis run.
type AnalysisOptions struct {
	RepositoryPath     string
	TopFiles           int
	TopLanguages       int
	IgnoredDirectories []string
}

// Service runs the single-repository analysis pipeline: history collection,
// metric aggregation, quality checks, and report assembly.
type Service struct {
	logger        *zap.Logger
	historyReader *gitrepo.HistoryReader
	fileSystem    FileSystem
	reportBuilder *report.Builder
}

// NewService validates dependencies and constructs a Service. The filesystem
// and clock fall back to their operating system implementations.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, errors.New(gitExecutorRequiredMessageConstant)
	}

	resolvedFileSystem := dependencies.FileSystem
	if resolvedFileSystem == nil {
		resolvedFileSystem = filesystem.OSFileSystem{}
	}
	resolvedClock := dependencies.Clock
	if resolvedClock == nil {
		resolvedClock = report.SystemClock{}
	}
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Service{
		logger:        resolvedLogger,
		historyReader: gitrepo.NewHistoryReader(dependencies.GitExecutor, resolvedFileSystem),
		fileSystem:    resolvedFileSystem,
		reportBuilder: report.NewBuilder(resolvedClock),
	}, nil
}

// Analyze produces the full report for one repository.
//
// A path that is not a git repository fails with
// gitrepo.RepositoryNotFoundError. Missing metrics inputs degrade to empty
// sections; quality findings never fail the run.
func (service *Service) Analyze(executionContext context.Context, options AnalysisOptions) (report.Report, error) {
	commits, historyError := service.historyReader.CollectHistory(executionContext, options.RepositoryPath)
	if historyError != nil {
		return report.Report{}, historyError
	}

	repositoryMetadata := service.historyReader.ResolveMetadata(executionContext, options.RepositoryPath)
	if len(commits) > 0 {
		repositoryMetadata.CreatedAt = commits[0].Timestamp
	}

	treeSnapshot, treeError := gitrepo.CollectTreeSnapshot(options.RepositoryPath, options.IgnoredDirectories...)
	if treeError != nil {
		return report.Report{}, fmt.Errorf(treeCollectionErrorTemplateConstant, treeError)
	}

	checkResults := checks.RunCheckers(
		checks.DefaultCheckers(service.fileSystem),
		checks.RepositorySnapshot{Tree: treeSnapshot, RecentCommits: recentCommitSample(commits)},
	)

	assembledReport, buildError := service.reportBuilder.Build(report.BuildRequest{
		Metadata:     repositoryMetadata,
		Commits:      commits,
		Contributors: metrics.AggregateContributors(commits),
		FileActivity: metrics.AggregateFileActivity(commits, options.TopFiles),
		Languages:    metrics.AggregateLanguages(treeSnapshot, metrics.LanguageOptions{Limit: options.TopLanguages}),
		Tasks:        metrics.ExtractTasks(commits, treeSnapshot, service.fileSystem, metrics.TaskOptions{}),
		Checks:       checkResults,
	})
	if buildError != nil {
		return report.Report{}, buildError
	}

	service.logger.Debug(
		analysisCompletedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, assembledReport.Path),
		zap.Int(logFieldCommitCountConstant, len(assembledReport.Commits)),
		zap.Int(logFieldContributorCountConstant, len(assembledReport.Contributors)),
		zap.Int(logFieldCheckWarningCountConstant, assembledReport.Summary.Warnings),
		zap.Int(logFieldCheckErrorCountConstant, assembledReport.Summary.Errors),
	)

	return assembledReport, nil
}

// recentCommitSample keeps the newest commits, capped at the sample size,
// preserving chronological order.
func recentCommitSample(commits []report.Commit) []report.Commit {
	if len(commits) <= recentCommitSampleSizeConstant {
		return commits
	}
	return commits[len(commits)-recentCommitSampleSizeConstant:]
}
