package execshell

// CommandEventObserver receives lifecycle notifications while a shell command runs.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the command process launches.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the command produced an execution result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when execution broke down before any result existed.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardEventObserver drops every command event.
type discardEventObserver struct{}

func (discardEventObserver) CommandStarted(ShellCommand)                    {}
func (discardEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}
func (discardEventObserver) CommandExecutionFailed(ShellCommand, error)     {}
