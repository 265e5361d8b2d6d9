package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentEntryTemplateConstant = "%s=%s"

// OSCommandRunner launches commands through os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by the host operating system.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run starts the command and captures both output streams. A command that ran
// to completion reports through ExecutionResult even when its exit code is
// non-zero; the error return is reserved for commands that never ran.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	processArguments := append([]string(nil), command.Details.Arguments...)
	process := exec.CommandContext(executionContext, string(command.Name), processArguments...)
	process.Dir = command.Details.WorkingDirectory

	if len(command.Details.EnvironmentVariables) > 0 {
		processEnvironment := os.Environ()
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			processEnvironment = append(processEnvironment, fmt.Sprintf(environmentEntryTemplateConstant, environmentKey, environmentValue))
		}
		process.Env = processEnvironment
	}

	var collectedStdout bytes.Buffer
	var collectedStderr bytes.Buffer
	process.Stdout = &collectedStdout
	process.Stderr = &collectedStderr

	runError := process.Run()
	executionResult := ExecutionResult{
		StandardOutput: collectedStdout.String(),
		StandardError:  collectedStderr.String(),
	}
	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}
	return ExecutionResult{}, runError
}
