package ecosystem

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/repohealth/internal/analyze"
	"github.com/temirov/repohealth/internal/execshell"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
	"github.com/temirov/repohealth/internal/ui"
	"github.com/temirov/repohealth/internal/utils"
	pathutils "github.com/temirov/repohealth/internal/utils/path"
)

const (
	commandUseConstant                    = "analyze-org [path...]"
	commandShortDescriptionConstant       = "Analyze every repository under the provided roots and write report bundles"
	commandLongDescriptionConstant        = "analyze-org discovers the repositories beneath each root directory, runs the single-repository analysis on a bounded worker pool, and writes one report bundle per repository plus a summary and dashboard at the output root. A repository that cannot be analyzed is recorded and skipped; the command exits non-zero only when the batch itself cannot run."
	outputFlagNameConstant                = "output"
	outputFlagShorthandConstant           = "o"
	outputFlagUsageConstant               = "Directory receiving the report bundles"
	workersFlagNameConstant               = "workers"
	workersFlagUsageConstant              = "Number of repositories analyzed concurrently"
	windowDaysFlagNameConstant            = "window-days"
	windowDaysFlagUsageConstant           = "Trailing window in days for the activity ranking"
	verboseFlagNameConstant               = "verbose"
	verboseFlagShorthandConstant          = "v"
	verboseFlagUsageConstant              = "Enable debug logging"
	defaultRootDirectoryConstant          = "."
	serviceCreationErrorTemplateConstant  = "unable to construct analysis service: %w"
	bundleWriteFailedMessageConstant      = "Bundle artifact could not be written"
	logFieldArtifactPathConstant          = "artifact"
	successGlyphConstant                  = "✅"
	warningGlyphConstant                  = "⚠️"
	failureGlyphConstant                  = "❌"
	repositoryStatusLineTemplateConstant  = "%s %s: %d commits, %d contributors\n"
	repositoryFailureLineTemplateConstant = "%s %s: %s\n"
	runTallyTemplateConstant              = "Analyzed %d repositories: %d succeeded, %d failed\n"
	writeFailureTallyTemplateConstant     = "%d report files could not be written\n"
	outputLocationTemplateConstant        = "Reports written to %s\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

type commandOptions struct {
	debugLoggingEnabled bool
	rootDirectories     []string
	outputDirectory     string
	workerCount         int
	windowDays          int
}

// CommandBuilder assembles the analyze-org Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	FileSystem                   analyze.FileSystem
	BundleFileSystem             BundleFileSystem
	Clock                        report.Clock
	Discoverer                   RepositoryDiscoverer
	Analyzer                     RepositoryAnalyzer
	GitTimeoutProvider           func() time.Duration
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

var commandPathSanitizer = pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
	ExcludeBooleanLiteralCandidates: true,
	PruneNestedPaths:                true,
})

// Build constructs the analyze-org command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE:          builder.runAnalyzeOrganization,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, defaults.Output, outputFlagUsageConstant)
	command.Flags().Int(workersFlagNameConstant, defaults.Workers, workersFlagUsageConstant)
	command.Flags().Int(windowDaysFlagNameConstant, defaults.WindowDays, windowDaysFlagUsageConstant)
	command.Flags().BoolP(verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runAnalyzeOrganization(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)

	logger := builder.resolveLogger(options.debugLoggingEnabled)

	orchestrator, orchestratorError := builder.resolveOrchestrator(logger)
	if orchestratorError != nil {
		return orchestratorError
	}

	runResult, runError := orchestrator.Run(command.Context(), RunOptions{
		RootDirectories: options.rootDirectories,
		WorkerCount:     options.workerCount,
		WindowDays:      options.windowDays,
	})
	if runError != nil {
		return runError
	}
	if contextError := command.Context().Err(); contextError != nil {
		return contextError
	}

	writeFailures, writeError := builder.resolveBundleWriter().WriteBundles(options.outputDirectory, runResult)
	if writeError != nil {
		return writeError
	}
	for _, writeFailure := range writeFailures {
		logger.Warn(
			bundleWriteFailedMessageConstant,
			zap.String(logFieldRepositoryPathConstant, writeFailure.Repository),
			zap.String(logFieldArtifactPathConstant, writeFailure.Path),
			zap.Error(writeFailure.Cause),
		)
	}

	builder.printRunReport(command, runResult, writeFailures, options.outputDirectory)
	return nil
}

func (builder *CommandBuilder) printRunReport(command *cobra.Command, runResult RunResult, writeFailures []WriteFailure, outputDirectory string) {
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	for _, repositoryDigest := range runResult.Summary.Repositories {
		fmt.Fprintf(
			outputWriter,
			repositoryStatusLineTemplateConstant,
			digestGlyph(repositoryDigest),
			repositoryDigest.Name,
			repositoryDigest.TotalCommits,
			repositoryDigest.Contributors,
		)
	}
	for _, repositoryFailure := range runResult.Summary.Failures {
		fmt.Fprintf(outputWriter, repositoryFailureLineTemplateConstant, failureGlyphConstant, repositoryFailure.Name, repositoryFailure.Error)
	}

	fmt.Fprintf(
		outputWriter,
		runTallyTemplateConstant,
		runResult.Summary.TotalRepositories,
		len(runResult.Summary.Repositories),
		len(runResult.Summary.Failures),
	)
	if len(writeFailures) > 0 {
		fmt.Fprintf(outputWriter, writeFailureTallyTemplateConstant, len(writeFailures))
	}
	fmt.Fprintf(outputWriter, outputLocationTemplateConstant, outputDirectory)
}

func digestGlyph(repositoryDigest report.RepositoryDigest) string {
	switch {
	case repositoryDigest.Errors > 0:
		return failureGlyphConstant
	case repositoryDigest.Warnings > 0:
		return warningGlyphConstant
	default:
		return successGlyphConstant
	}
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) commandOptions {
	configuration := builder.resolveConfiguration()

	options := commandOptions{
		outputDirectory: configuration.Output,
		workerCount:     configuration.Workers,
		windowDays:      configuration.WindowDays,
	}

	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				options.debugLoggingEnabled = true
			}
		}
		if verboseRequested, _ := command.Flags().GetBool(verboseFlagNameConstant); verboseRequested {
			options.debugLoggingEnabled = true
		}
	}

	options.rootDirectories = commandPathSanitizer.Sanitize(arguments)
	if len(options.rootDirectories) == 0 {
		options.rootDirectories = []string{defaultRootDirectoryConstant}
	}

	if command != nil {
		if command.Flags().Changed(outputFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(outputFlagNameConstant)
			options.outputDirectory = strings.TrimSpace(flagValue)
		}
		if command.Flags().Changed(workersFlagNameConstant) {
			flagValue, _ := command.Flags().GetInt(workersFlagNameConstant)
			options.workerCount = flagValue
		}
		if command.Flags().Changed(windowDaysFlagNameConstant) {
			flagValue, _ := command.Flags().GetInt(windowDaysFlagNameConstant)
			options.windowDays = flagValue
		}
	}

	sanitizedFallback := CommandConfiguration{
		Output:     options.outputDirectory,
		Workers:    options.workerCount,
		WindowDays: options.windowDays,
	}.Sanitize()
	options.outputDirectory = sanitizedFallback.Output
	options.workerCount = sanitizedFallback.Workers
	options.windowDays = sanitizedFallback.WindowDays

	return options
}

func (builder *CommandBuilder) resolveLogger(enableDebug bool) *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if enableDebug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.DebugLevel))
	}
	return logger
}

func (builder *CommandBuilder) resolveOrchestrator(logger *zap.Logger) (*Orchestrator, error) {
	analyzer, analyzerError := builder.resolveAnalyzer(logger)
	if analyzerError != nil {
		return nil, analyzerError
	}
	return NewOrchestrator(OrchestratorDependencies{
		Logger:     logger,
		Discoverer: builder.Discoverer,
		Analyzer:   analyzer,
		Clock:      builder.Clock,
	})
}

func (builder *CommandBuilder) resolveAnalyzer(logger *zap.Logger) (RepositoryAnalyzer, error) {
	if builder.Analyzer != nil {
		return builder.Analyzer, nil
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	analysisService, serviceError := analyze.NewService(analyze.ServiceDependencies{
		Logger:      logger,
		GitExecutor: gitExecutor,
		FileSystem:  builder.FileSystem,
		Clock:       builder.Clock,
	})
	if serviceError != nil {
		return nil, fmt.Errorf(serviceCreationErrorTemplateConstant, serviceError)
	}
	return analysisService, nil
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()

	var shellExecutor *execshell.ShellExecutor
	var creationError error
	if builder.humanReadableLoggingEnabled() {
		shellExecutor, creationError = execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, creationError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if creationError != nil {
		return nil, creationError
	}

	if commandTimeout := builder.resolveGitTimeout(); commandTimeout > 0 {
		shellExecutor.ConfigureCommandTimeout(commandTimeout)
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveGitTimeout() time.Duration {
	if builder.GitTimeoutProvider == nil {
		return 0
	}
	return builder.GitTimeoutProvider()
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveBundleWriter() *BundleWriter {
	return NewBundleWriter(builder.BundleFileSystem)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
