package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repohealth/internal/execshell"
)

const (
	startedMessageTemplateConstant        = "Running %s"
	completedMessageTemplateConstant      = "Completed %s"
	exitCodeFailureTemplateConstant       = "%s failed with exit code %d"
	executionFailureTemplateConstant      = "%s failed: %s"
	workingDirectoryLabelTemplateConstant = " (in %s)"
	stderrDetailTemplateConstant          = ": %s"
	commandPartSeparatorConstant          = " "
	unknownFailureMessageConstant         = "unknown error"
)

// ConsoleCommandEventLogger renders command lifecycle events through a zap
// logger configured for human-readable output.
//
// Analysis runs issue many read-only git invocations, so start and success
// notifications stay at debug level; only abnormal outcomes surface louder.
type ConsoleCommandEventLogger struct {
	logger *zap.Logger
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(fmt.Sprintf(startedMessageTemplateConstant, commandLabel(command)))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(fmt.Sprintf(completedMessageTemplateConstant, commandLabel(command)))
		return
	}

	failureMessage := fmt.Sprintf(exitCodeFailureTemplateConstant, commandLabel(command), result.ExitCode)
	if standardErrorDetail := strings.TrimSpace(result.StandardError); len(standardErrorDetail) > 0 {
		failureMessage += fmt.Sprintf(stderrDetailTemplateConstant, standardErrorDetail)
	}
	eventLogger.logger.Warn(failureMessage)
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	failureDescription := unknownFailureMessageConstant
	if failure != nil {
		failureDescription = failure.Error()
	}
	eventLogger.logger.Error(fmt.Sprintf(executionFailureTemplateConstant, commandLabel(command), failureDescription))
}

// commandLabel renders the executable, its arguments, and the working
// directory as one display string.
func commandLabel(command execshell.ShellCommand) string {
	labelBuilder := strings.Builder{}
	labelBuilder.WriteString(string(command.Name))
	if len(command.Details.Arguments) > 0 {
		labelBuilder.WriteString(commandPartSeparatorConstant)
		labelBuilder.WriteString(strings.Join(command.Details.Arguments, commandPartSeparatorConstant))
	}
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		labelBuilder.WriteString(fmt.Sprintf(workingDirectoryLabelTemplateConstant, workingDirectory))
	}
	return labelBuilder.String()
}
