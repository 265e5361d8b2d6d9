package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type integrationCommitSpec struct {
	message string
	files   map[string]string
}

func runIntegrationCommand(testInstance *testing.T, repositoryRoot string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) string {
	testInstance.Helper()

	outputText, runError := runFailingIntegrationCommand(testInstance, repositoryRoot, environmentOverrides, timeout, arguments)
	require.NoError(testInstance, runError, outputText)
	return outputText
}

func runFailingIntegrationCommand(testInstance *testing.T, repositoryRoot string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), timeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, "go", arguments...)
	command.Dir = repositoryRoot
	environment := append([]string{}, os.Environ()...)
	for overrideKey, overrideValue := range environmentOverrides {
		environment = append(environment, overrideKey+"="+overrideValue)
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments ...string) {
	testInstance.Helper()

	command := exec.Command("git", arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	outputBytes, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
}

func initializeIntegrationRepository(testInstance *testing.T, repositoryPath string, remoteURL string, commitSpecs []integrationCommitSpec) {
	testInstance.Helper()

	require.NoError(testInstance, os.MkdirAll(repositoryPath, 0o755))
	runGitCommand(testInstance, repositoryPath, "init", "--initial-branch=main", ".")
	runGitCommand(testInstance, repositoryPath, "config", "user.name", "Integration Tester")
	runGitCommand(testInstance, repositoryPath, "config", "user.email", "integration@example.com")
	if len(remoteURL) > 0 {
		runGitCommand(testInstance, repositoryPath, "remote", "add", "origin", remoteURL)
	}

	for _, commitSpec := range commitSpecs {
		for relativePath, fileContent := range commitSpec.files {
			absolutePath := filepath.Join(repositoryPath, relativePath)
			require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
			require.NoError(testInstance, os.WriteFile(absolutePath, []byte(fileContent), 0o644))
		}
		runGitCommand(testInstance, repositoryPath, "add", "--all")
		runGitCommand(testInstance, repositoryPath, "commit", "--message", commitSpec.message)
	}
}
