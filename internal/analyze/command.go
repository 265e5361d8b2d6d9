package analyze

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/repohealth/internal/execshell"
	"github.com/temirov/repohealth/internal/filesystem"
	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
	"github.com/temirov/repohealth/internal/ui"
	"github.com/temirov/repohealth/internal/utils"
	flagutils "github.com/temirov/repohealth/internal/utils/flags"
	pathutils "github.com/temirov/repohealth/internal/utils/path"
)

const (
	commandUseConstant                     = "analyze [path]"
	commandShortDescriptionConstant        = "Analyze one repository and render its health report"
	commandLongDescriptionConstant         = "analyze collects commit history and working-tree facts for a single repository, evaluates the quality checks, and writes the rendered report to stdout or the requested file. Check warnings and errors are findings, not failures; the command exits non-zero only when the analysis itself cannot run."
	formatFlagNameConstant                 = "format"
	formatFlagShorthandConstant            = "f"
	formatFlagDescriptionConstant          = "Report output format"
	outputFlagNameConstant                 = "output"
	outputFlagShorthandConstant            = "o"
	outputFlagUsageConstant                = "Output file (default: stdout)"
	showSuggestionsFlagNameConstant        = "show-suggestions"
	showSuggestionsFlagUsageConstant       = "Show improvement suggestions"
	noSuggestionsFlagNameConstant          = "no-suggestions"
	noSuggestionsFlagUsageConstant         = "Hide improvement suggestions"
	verboseFlagNameConstant                = "verbose"
	verboseFlagShorthandConstant           = "v"
	verboseFlagUsageConstant               = "Enable debug logging"
	defaultRepositoryPathConstant          = "."
	stdoutOutputSentinelConstant           = "-"
	reportFilePermissionsConstant          = fs.FileMode(0o644)
	analysisFailedErrorTemplateConstant    = "analysis of %s failed: %w"
	renderFailedErrorTemplateConstant      = "report rendering for %s failed: %w"
	outputWriteFailedErrorTemplateConstant = "unable to write report to %s: %w"
	serviceCreationErrorTemplateConstant   = "unable to construct analysis service: %w"
	reportWrittenMessageConstant           = "Report written"
	logFieldOutputPathConstant             = "output"
	logFieldReportFormatConstant           = "format"
)

// RepositoryAnalyzer runs the analysis pipeline for one repository.
type RepositoryAnalyzer interface {
	Analyze(executionContext context.Context, options AnalysisOptions) (report.Report, error)
}

// ReportWriter persists rendered reports to files.
type ReportWriter interface {
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// ServiceProvider constructs a repository analyzer from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (RepositoryAnalyzer, error)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

type commandOptions struct {
	debugLoggingEnabled bool
	repositoryPath      string
	outputFormat        string
	outputPath          string
	showSuggestions     bool
	configuration       CommandConfiguration
}

// CommandBuilder assembles the analyze Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	FileSystem                   FileSystem
	ReportWriter                 ReportWriter
	Clock                        report.Clock
	ServiceProvider              ServiceProvider
	GitTimeoutProvider           func() time.Duration
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

var commandPathSanitizer = pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
	ExcludeBooleanLiteralCandidates: true,
})

// Build constructs the analyze command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          builder.runAnalyze,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().StringP(
		formatFlagNameConstant,
		formatFlagShorthandConstant,
		defaults.Format,
		flagutils.FormatChoiceUsage(defaults.Format, SupportedFormats(), formatFlagDescriptionConstant),
	)
	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagUsageConstant)

	var suggestionsToggleTarget bool
	flagutils.AddToggleFlag(command.Flags(), &suggestionsToggleTarget, showSuggestionsFlagNameConstant, "", defaults.ShowSuggestions, showSuggestionsFlagUsageConstant)
	command.Flags().Bool(noSuggestionsFlagNameConstant, false, noSuggestionsFlagUsageConstant)

	command.Flags().BoolP(verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runAnalyze(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger(options.debugLoggingEnabled)

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:      logger,
		GitExecutor: gitExecutor,
		FileSystem:  builder.FileSystem,
		Clock:       builder.Clock,
	})
	if serviceError != nil {
		return fmt.Errorf(serviceCreationErrorTemplateConstant, serviceError)
	}

	analysisReport, analysisError := service.Analyze(command.Context(), AnalysisOptions{
		RepositoryPath:     options.repositoryPath,
		TopFiles:           options.configuration.TopFiles,
		TopLanguages:       options.configuration.TopLanguages,
		IgnoredDirectories: options.configuration.IgnoredDirectories,
	})
	if analysisError != nil {
		return fmt.Errorf(analysisFailedErrorTemplateConstant, options.repositoryPath, analysisError)
	}

	renderedReport, renderError := RenderReport(analysisReport, options.outputFormat, options.showSuggestions)
	if renderError != nil {
		return fmt.Errorf(renderFailedErrorTemplateConstant, options.repositoryPath, renderError)
	}

	return builder.writeReport(command, logger, options, renderedReport)
}

func (builder *CommandBuilder) writeReport(command *cobra.Command, logger *zap.Logger, options commandOptions, renderedReport string) error {
	if len(options.outputPath) == 0 || options.outputPath == stdoutOutputSentinelConstant {
		_, writeError := fmt.Fprint(utils.NewFlushingWriter(command.OutOrStdout()), renderedReport)
		return writeError
	}

	writeError := builder.resolveReportWriter().WriteFile(options.outputPath, []byte(renderedReport), reportFilePermissionsConstant)
	if writeError != nil {
		return fmt.Errorf(outputWriteFailedErrorTemplateConstant, options.outputPath, writeError)
	}

	logger.Info(
		reportWrittenMessageConstant,
		zap.String(logFieldRepositoryPathConstant, options.repositoryPath),
		zap.String(logFieldOutputPathConstant, options.outputPath),
		zap.String(logFieldReportFormatConstant, options.outputFormat),
	)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	debugEnabled := false
	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				debugEnabled = true
			}
		}
		if verboseRequested, _ := command.Flags().GetBool(verboseFlagNameConstant); verboseRequested {
			debugEnabled = true
		}
	}

	repositoryPath := defaultRepositoryPathConstant
	sanitizedArguments := commandPathSanitizer.Sanitize(arguments)
	if len(sanitizedArguments) > 0 {
		repositoryPath = sanitizedArguments[0]
	}

	outputFormat := configuration.Format
	outputPath := ""
	showSuggestions := configuration.ShowSuggestions
	if command != nil {
		if command.Flags().Changed(formatFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(formatFlagNameConstant)
			outputFormat = strings.ToLower(strings.TrimSpace(flagValue))
		}
		if command.Flags().Changed(outputFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(outputFlagNameConstant)
			outputPath = strings.TrimSpace(flagValue)
		}
		if command.Flags().Changed(showSuggestionsFlagNameConstant) {
			flagValue, _ := command.Flags().GetBool(showSuggestionsFlagNameConstant)
			showSuggestions = flagValue
		}
		if suggestionsDisabled, _ := command.Flags().GetBool(noSuggestionsFlagNameConstant); suggestionsDisabled {
			showSuggestions = false
		}
	}

	if !isSupportedFormat(outputFormat) {
		return commandOptions{}, UnsupportedFormatError{Format: outputFormat}
	}

	return commandOptions{
		debugLoggingEnabled: debugEnabled,
		repositoryPath:      repositoryPath,
		outputFormat:        outputFormat,
		outputPath:          outputPath,
		showSuggestions:     showSuggestions,
		configuration:       configuration,
	}, nil
}

func isSupportedFormat(formatName string) bool {
	for _, supportedFormat := range SupportedFormats() {
		if formatName == supportedFormat {
			return true
		}
	}
	return false
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

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (RepositoryAnalyzer, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveReportWriter() ReportWriter {
	if builder.ReportWriter != nil {
		return builder.ReportWriter
	}
	return filesystem.OSFileSystem{}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
