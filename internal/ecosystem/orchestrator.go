package ecosystem

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/temirov/repohealth/internal/analyze"
	"github.com/temirov/repohealth/internal/discovery"
	"github.com/temirov/repohealth/internal/report"
)

const (
	repositoryAnalyzerRequiredMessageConstant = "repository analyzer is required"
	discoveryFailedErrorTemplateConstant      = "repository discovery failed: %w"
	workerPoolCreationErrorTemplateConstant   = "unable to create worker pool: %w"
	repositoryAnalysisFailedMessageConstant   = "Repository analysis failed"
	orchestrationCompletedMessageConstant     = "Ecosystem analysis completed"
	logFieldRepositoryPathConstant            = "repository"
	logFieldRepositoryCountConstant           = "repositories"
	logFieldFailureCountConstant              = "failures"
)

// RepositoryDiscoverer locates repositories beneath the provided root directories.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootDirectories []string) ([]string, error)
}

// RepositoryAnalyzer runs the single-repository analysis pipeline.
type RepositoryAnalyzer interface {
	Analyze(executionContext context.Context, options analyze.AnalysisOptions) (report.Report, error)
}

// RepositoryAnalysis pairs a repository path with its completed report.
type RepositoryAnalysis struct {
	Path   string
	Report report.Report
}

// RunOptions parameterizes one orchestrated ecosystem analysis.
type RunOptions struct {
	RootDirectories []string
	WorkerCount     int
	WindowDays      int
}

// RunResult carries the merged summary together with the full per-repository
// reports the bundle writer renders from.
type RunResult struct {
	Summary  report.EcosystemSummary
	Analyses []RepositoryAnalysis
}

// OrchestratorDependencies lists the collaborators an Orchestrator requires.
type OrchestratorDependencies struct {
	Logger     *zap.Logger
	Discoverer RepositoryDiscoverer
	Analyzer   RepositoryAnalyzer
	Clock      report.Clock
}

// Orchestrator fans the single-repository pipeline out over every discovered
// repository and merges the results deterministically.
//
// Workers run on a bounded pool; each failure becomes a per-repository error
// record instead of aborting the batch. After the pool drains, digests and
// failures are sorted by name so identical inputs produce identical summaries
// regardless of completion order.
type Orchestrator struct {
	logger     *zap.Logger
	discoverer RepositoryDiscoverer
	analyzer   RepositoryAnalyzer
	clock      report.Clock
}

// NewOrchestrator wires an Orchestrator, applying defaults for optional collaborators.
func NewOrchestrator(dependencies OrchestratorDependencies) (*Orchestrator, error) {
	if dependencies.Analyzer == nil {
		return nil, errors.New(repositoryAnalyzerRequiredMessageConstant)
	}

	orchestrator := &Orchestrator{
		logger:     dependencies.Logger,
		discoverer: dependencies.Discoverer,
		analyzer:   dependencies.Analyzer,
		clock:      dependencies.Clock,
	}
	if orchestrator.logger == nil {
		orchestrator.logger = zap.NewNop()
	}
	if orchestrator.discoverer == nil {
		orchestrator.discoverer = discovery.NewFilesystemRepositoryDiscoverer()
	}
	if orchestrator.clock == nil {
		orchestrator.clock = report.SystemClock{}
	}
	return orchestrator, nil
}

// Run discovers repositories under the configured roots, analyzes each on the
// worker pool, and merges the outcomes into an ecosystem summary.
//
// Cancellation stops further submissions and discards in-flight repositories
// while keeping every analysis that already completed.
func (orchestrator *Orchestrator) Run(executionContext context.Context, options RunOptions) (RunResult, error) {
	repositoryPaths, discoveryError := orchestrator.discoverer.DiscoverRepositories(options.RootDirectories)
	if discoveryError != nil {
		return RunResult{}, fmt.Errorf(discoveryFailedErrorTemplateConstant, discoveryError)
	}

	workerCount := options.WorkerCount
	if workerCount <= 0 {
		workerCount = defaultWorkerCountConstant
	}
	windowDays := options.WindowDays
	if windowDays <= 0 {
		windowDays = defaultWindowDaysConstant
	}

	workerPool, poolError := ants.NewPool(workerCount)
	if poolError != nil {
		return RunResult{}, fmt.Errorf(workerPoolCreationErrorTemplateConstant, poolError)
	}
	defer workerPool.Release()

	collector := &resultCollector{}
	waitGroup := sync.WaitGroup{}

	for _, repositoryPath := range repositoryPaths {
		if executionContext.Err() != nil {
			break
		}

		submittedPath := repositoryPath
		waitGroup.Add(1)
		submissionError := workerPool.Submit(func() {
			defer waitGroup.Done()
			orchestrator.analyzeRepository(executionContext, submittedPath, collector)
		})
		if submissionError != nil {
			waitGroup.Done()
			collector.recordFailure(submittedPath, submissionError)
		}
	}
	waitGroup.Wait()

	generatedAt := orchestrator.clock.Now().UTC().Truncate(time.Second)
	summary, analyses := collector.merge(generatedAt, windowDays)

	orchestrator.logger.Debug(
		orchestrationCompletedMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, summary.TotalRepositories),
		zap.Int(logFieldFailureCountConstant, len(summary.Failures)),
	)
	return RunResult{Summary: summary, Analyses: analyses}, nil
}

func (orchestrator *Orchestrator) analyzeRepository(executionContext context.Context, repositoryPath string, collector *resultCollector) {
	if executionContext.Err() != nil {
		return
	}

	analysisReport, analysisError := orchestrator.analyzer.Analyze(executionContext, analyze.AnalysisOptions{RepositoryPath: repositoryPath})
	if analysisError != nil {
		if errors.Is(analysisError, context.Canceled) || errors.Is(analysisError, context.DeadlineExceeded) {
			return
		}
		orchestrator.logger.Warn(
			repositoryAnalysisFailedMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.Error(analysisError),
		)
		collector.recordFailure(repositoryPath, analysisError)
		return
	}
	collector.recordAnalysis(repositoryPath, analysisReport)
}

// resultCollector is the single structure shared between workers. All other
// state stays confined to one repository's analysis.
type resultCollector struct {
	mutex    sync.Mutex
	analyses []RepositoryAnalysis
	failures []report.RepositoryFailure
}

func (collector *resultCollector) recordAnalysis(repositoryPath string, analysisReport report.Report) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	collector.analyses = append(collector.analyses, RepositoryAnalysis{Path: repositoryPath, Report: analysisReport})
}

func (collector *resultCollector) recordFailure(repositoryPath string, failureCause error) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	collector.failures = append(collector.failures, report.RepositoryFailure{
		Name:  filepath.Base(repositoryPath),
		Path:  repositoryPath,
		Error: failureCause.Error(),
	})
}

func (collector *resultCollector) merge(generatedAt time.Time, windowDays int) (report.EcosystemSummary, []RepositoryAnalysis) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()

	sort.SliceStable(collector.analyses, func(firstIndex, secondIndex int) bool {
		if collector.analyses[firstIndex].Report.Name != collector.analyses[secondIndex].Report.Name {
			return collector.analyses[firstIndex].Report.Name < collector.analyses[secondIndex].Report.Name
		}
		return collector.analyses[firstIndex].Path < collector.analyses[secondIndex].Path
	})
	sort.SliceStable(collector.failures, func(firstIndex, secondIndex int) bool {
		if collector.failures[firstIndex].Name != collector.failures[secondIndex].Name {
			return collector.failures[firstIndex].Name < collector.failures[secondIndex].Name
		}
		return collector.failures[firstIndex].Path < collector.failures[secondIndex].Path
	})

	summary := report.EcosystemSummary{
		GeneratedAt:       generatedAt,
		WindowDays:        windowDays,
		TotalRepositories: len(collector.analyses) + len(collector.failures),
		Failures:          collector.failures,
		MostActive:        rankRecentActivity(collector.analyses, generatedAt, windowDays),
	}
	for _, repositoryAnalysis := range collector.analyses {
		summary.Repositories = append(summary.Repositories, report.DigestOf(repositoryAnalysis.Report))
	}
	return summary, collector.analyses
}

// rankRecentActivity orders repositories by commit count inside the trailing
// window, breaking ties by lines changed and then by name. Repositories with
// no commits inside the window are omitted.
func rankRecentActivity(analyses []RepositoryAnalysis, generatedAt time.Time, windowDays int) []report.ActivityRank {
	windowStart := generatedAt.AddDate(0, 0, -windowDays)

	var ranking []report.ActivityRank
	for _, repositoryAnalysis := range analyses {
		rankEntry := report.ActivityRank{Name: repositoryAnalysis.Report.Name}
		for _, commitEntry := range repositoryAnalysis.Report.Commits {
			if commitEntry.Timestamp.Before(windowStart) {
				continue
			}
			rankEntry.RecentCommits++
			rankEntry.RecentLinesChanged += commitEntry.Additions + commitEntry.Deletions
		}
		if rankEntry.RecentCommits == 0 {
			continue
		}
		ranking = append(ranking, rankEntry)
	}

	sort.SliceStable(ranking, func(firstIndex, secondIndex int) bool {
		if ranking[firstIndex].RecentCommits != ranking[secondIndex].RecentCommits {
			return ranking[firstIndex].RecentCommits > ranking[secondIndex].RecentCommits
		}
		if ranking[firstIndex].RecentLinesChanged != ranking[secondIndex].RecentLinesChanged {
			return ranking[firstIndex].RecentLinesChanged > ranking[secondIndex].RecentLinesChanged
		}
		return ranking[firstIndex].Name < ranking[secondIndex].Name
	})
	return ranking
}
