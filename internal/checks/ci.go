package checks

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/repohealth/internal/report"
)

const (
	ciCheckerNameConstant                = "CI"
	githubWorkflowsDirectoryConstant     = ".github/workflows"
	workflowTriggerKeyConstant           = "on"
	workflowLegacyTriggerKeyConstant     = "true"
	workflowJobsKeyConstant              = "jobs"
	ciWorkflowsMessageTemplateConstant   = "GitHub Actions workflows are configured (%d)"
	ciAlternativeMessageTemplateConstant = "CI configuration found (%s)"
	ciMalformedMessageConstant           = "CI workflow present but missing triggers or jobs"
	ciMissingMessageConstant             = "No CI configuration found"
	ciFixWorkflowSuggestionConstant      = "Define on triggers and at least one job in the workflow file"
	ciAddWorkflowSuggestionConstant      = "Add a CI workflow under .github/workflows"
	yamlExtensionConstant                = ".yml"
	yamlLongExtensionConstant            = ".yaml"
)

// alternativeCIConfigurationPaths are recognized by presence alone.
var alternativeCIConfigurationPaths = []string{".gitlab-ci.yml", ".circleci/config.yml", "Jenkinsfile"}

// CIChecker verifies a continuous-integration setup exists and is usable.
type CIChecker struct {
	fileReader FileReader
}

// NewCIChecker constructs a CIChecker.
func NewCIChecker(fileReader FileReader) *CIChecker {
	return &CIChecker{fileReader: fileReader}
}

// Name identifies the checker in reports.
func (checker *CIChecker) Name() string {
	return ciCheckerNameConstant
}

// Evaluate applies the CI policy to the snapshot.
//
// GitHub Actions workflows must parse and define triggers plus at least one
// job; other CI systems are recognized by configuration presence alone.
func (checker *CIChecker) Evaluate(snapshot RepositorySnapshot) report.CheckResult {
	workflowPaths := collectWorkflowPaths(snapshot)
	if len(workflowPaths) > 0 {
		wellFormedCount := 0
		for _, workflowPath := range workflowPaths {
			if checker.workflowWellFormed(snapshot.Tree.Root, workflowPath) {
				wellFormedCount++
			}
		}
		if wellFormedCount > 0 {
			return report.CheckResult{
				Name:        ciCheckerNameConstant,
				Status:      report.CheckStatusPass,
				Message:     fmt.Sprintf(ciWorkflowsMessageTemplateConstant, wellFormedCount),
				Suggestions: []string{},
			}
		}
		return report.CheckResult{
			Name:        ciCheckerNameConstant,
			Status:      report.CheckStatusWarning,
			Message:     ciMalformedMessageConstant,
			Suggestions: []string{ciFixWorkflowSuggestionConstant},
		}
	}

	for _, alternativePath := range alternativeCIConfigurationPaths {
		if snapshot.Tree.Contains(alternativePath) {
			return report.CheckResult{
				Name:        ciCheckerNameConstant,
				Status:      report.CheckStatusPass,
				Message:     fmt.Sprintf(ciAlternativeMessageTemplateConstant, alternativePath),
				Suggestions: []string{},
			}
		}
	}

	return report.CheckResult{
		Name:        ciCheckerNameConstant,
		Status:      report.CheckStatusError,
		Message:     ciMissingMessageConstant,
		Suggestions: []string{ciAddWorkflowSuggestionConstant},
	}
}

func collectWorkflowPaths(snapshot RepositorySnapshot) []string {
	workflowPaths := []string{}
	for _, candidatePath := range snapshot.Tree.FilesWithin(githubWorkflowsDirectoryConstant) {
		extension := strings.ToLower(path.Ext(candidatePath))
		if extension == yamlExtensionConstant || extension == yamlLongExtensionConstant {
			workflowPaths = append(workflowPaths, candidatePath)
		}
	}
	return workflowPaths
}

func (checker *CIChecker) workflowWellFormed(repositoryRoot string, workflowPath string) bool {
	if checker.fileReader == nil {
		return false
	}
	workflowContent, readError := checker.fileReader.ReadFile(filepath.Join(repositoryRoot, filepath.FromSlash(workflowPath)))
	if readError != nil {
		return false
	}

	var workflowDocument map[string]any
	if parseError := yaml.Unmarshal(workflowContent, &workflowDocument); parseError != nil {
		return false
	}

	// YAML 1.1 readers resolve the bare on key to a boolean, so both
	// spellings count as the trigger block.
	_, triggerFound := workflowDocument[workflowTriggerKeyConstant]
	_, legacyTriggerFound := workflowDocument[workflowLegacyTriggerKeyConstant]
	if !triggerFound && !legacyTriggerFound {
		return false
	}

	jobsValue, jobsFound := workflowDocument[workflowJobsKeyConstant]
	if !jobsFound {
		return false
	}
	jobsTable, isTable := jobsValue.(map[string]any)
	return isTable && len(jobsTable) > 0
}
