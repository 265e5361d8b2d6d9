package checks

import (
	"fmt"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"

	"github.com/temirov/repohealth/internal/report"
)

const (
	dependencyCheckerNameConstant                 = "Dependencies"
	goModManifestNameConstant                     = "go.mod"
	packageJSONManifestNameConstant               = "package.json"
	requirementsManifestNameConstant              = "requirements.txt"
	pyprojectManifestNameConstant                 = "pyproject.toml"
	cargoManifestNameConstant                     = "Cargo.toml"
	dependenciesParsedMessageTemplateConstant     = "Dependency manifests parse cleanly (%s)"
	dependenciesUnpinnedMessageTemplateConstant   = "Unpinned dependency versions in %s"
	dependenciesUnparsableMessageTemplateConstant = "Dependency manifest %s is unparsable: %s"
	dependenciesMissingMessageConstant            = "No dependency manifest found"
	dependenciesPinSuggestionTemplateConstant     = "Pin dependency versions in %s"
	dependenciesFixSuggestionTemplateConstant     = "Fix the syntax of %s"
	dependenciesAddManifestSuggestionConstant     = "Add a dependency manifest (go.mod, package.json, requirements.txt, pyproject.toml, or Cargo.toml)"
	manifestListSeparatorConstant                 = ", "
	requirementsCommentPrefixConstant             = "#"
	requirementsOptionPrefixConstant              = "-"
	pinnedRequirementOperatorConstant             = "=="
	wildcardVersionConstant                       = "*"
	latestVersionConstant                         = "latest"
	unboundedRangePrefixConstant                  = ">"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// manifestInspection captures one manifest's parse outcome.
type manifestInspection struct {
	manifestName  string
	parseFailure  string
	unpinnedCount int
}

// DependencyChecker verifies dependency manifests exist, parse, and pin their
// versions.
type DependencyChecker struct {
	fileReader FileReader
}

// NewDependencyChecker constructs a DependencyChecker.
func NewDependencyChecker(fileReader FileReader) *DependencyChecker {
	return &DependencyChecker{fileReader: fileReader}
}

// Name identifies the checker in reports.
func (checker *DependencyChecker) Name() string {
	return dependencyCheckerNameConstant
}

// Evaluate applies the dependency policy to the snapshot.
//
// Every recognized manifest present at the repository root is inspected. An
// unparsable manifest is an error reported in the result, never a fault;
// unpinned or wildcard constraints downgrade the result to a warning.
func (checker *DependencyChecker) Evaluate(snapshot RepositorySnapshot) report.CheckResult {
	inspections := []manifestInspection{}
	for _, manifestName := range recognizedManifestNames() {
		if !snapshot.Tree.Contains(manifestName) {
			continue
		}
		inspections = append(inspections, checker.inspectManifest(snapshot.Tree.Root, manifestName))
	}

	if len(inspections) == 0 {
		return report.CheckResult{
			Name:        dependencyCheckerNameConstant,
			Status:      report.CheckStatusError,
			Message:     dependenciesMissingMessageConstant,
			Suggestions: []string{dependenciesAddManifestSuggestionConstant},
		}
	}

	for _, inspection := range inspections {
		if len(inspection.parseFailure) > 0 {
			return report.CheckResult{
				Name:        dependencyCheckerNameConstant,
				Status:      report.CheckStatusError,
				Message:     fmt.Sprintf(dependenciesUnparsableMessageTemplateConstant, inspection.manifestName, inspection.parseFailure),
				Suggestions: []string{fmt.Sprintf(dependenciesFixSuggestionTemplateConstant, inspection.manifestName)},
			}
		}
	}

	unpinnedManifestNames := []string{}
	for _, inspection := range inspections {
		if inspection.unpinnedCount > 0 {
			unpinnedManifestNames = append(unpinnedManifestNames, inspection.manifestName)
		}
	}
	if len(unpinnedManifestNames) > 0 {
		joinedNames := strings.Join(unpinnedManifestNames, manifestListSeparatorConstant)
		return report.CheckResult{
			Name:        dependencyCheckerNameConstant,
			Status:      report.CheckStatusWarning,
			Message:     fmt.Sprintf(dependenciesUnpinnedMessageTemplateConstant, joinedNames),
			Suggestions: []string{fmt.Sprintf(dependenciesPinSuggestionTemplateConstant, joinedNames)},
		}
	}

	parsedManifestNames := make([]string, 0, len(inspections))
	for _, inspection := range inspections {
		parsedManifestNames = append(parsedManifestNames, inspection.manifestName)
	}
	return report.CheckResult{
		Name:        dependencyCheckerNameConstant,
		Status:      report.CheckStatusPass,
		Message:     fmt.Sprintf(dependenciesParsedMessageTemplateConstant, strings.Join(parsedManifestNames, manifestListSeparatorConstant)),
		Suggestions: []string{},
	}
}

func recognizedManifestNames() []string {
	return []string{
		goModManifestNameConstant,
		packageJSONManifestNameConstant,
		requirementsManifestNameConstant,
		pyprojectManifestNameConstant,
		cargoManifestNameConstant,
	}
}

func (checker *DependencyChecker) inspectManifest(repositoryRoot string, manifestName string) manifestInspection {
	if checker.fileReader == nil {
		return manifestInspection{manifestName: manifestName, parseFailure: "no file reader configured"}
	}
	manifestContent, readError := checker.fileReader.ReadFile(filepath.Join(repositoryRoot, manifestName))
	if readError != nil {
		return manifestInspection{manifestName: manifestName, parseFailure: readError.Error()}
	}

	switch manifestName {
	case goModManifestNameConstant:
		return inspectGoModule(manifestContent)
	case packageJSONManifestNameConstant:
		return inspectPackageJSON(manifestContent)
	case requirementsManifestNameConstant:
		return inspectRequirements(manifestContent)
	case pyprojectManifestNameConstant:
		return inspectPyproject(manifestContent)
	default:
		return inspectCargo(manifestContent)
	}
}

func inspectGoModule(manifestContent []byte) manifestInspection {
	inspection := manifestInspection{manifestName: goModManifestNameConstant}
	_, parseError := modfile.Parse(goModManifestNameConstant, manifestContent, nil)
	if parseError != nil {
		inspection.parseFailure = parseError.Error()
	}
	return inspection
}

func inspectPackageJSON(manifestContent []byte) manifestInspection {
	inspection := manifestInspection{manifestName: packageJSONManifestNameConstant}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if parseError := jsonCodec.Unmarshal(manifestContent, &manifest); parseError != nil {
		inspection.parseFailure = parseError.Error()
		return inspection
	}

	for _, versionConstraint := range manifest.Dependencies {
		if versionIsUnpinned(versionConstraint) {
			inspection.unpinnedCount++
		}
	}
	for _, versionConstraint := range manifest.DevDependencies {
		if versionIsUnpinned(versionConstraint) {
			inspection.unpinnedCount++
		}
	}
	return inspection
}

func inspectRequirements(manifestContent []byte) manifestInspection {
	inspection := manifestInspection{manifestName: requirementsManifestNameConstant}

	for _, rawLine := range strings.Split(string(manifestContent), "\n") {
		requirementLine := strings.TrimSpace(rawLine)
		if len(requirementLine) == 0 {
			continue
		}
		if strings.HasPrefix(requirementLine, requirementsCommentPrefixConstant) {
			continue
		}
		if strings.HasPrefix(requirementLine, requirementsOptionPrefixConstant) {
			continue
		}
		if !strings.Contains(requirementLine, pinnedRequirementOperatorConstant) {
			inspection.unpinnedCount++
		}
	}
	return inspection
}

func inspectPyproject(manifestContent []byte) manifestInspection {
	inspection := manifestInspection{manifestName: pyprojectManifestNameConstant}

	var document map[string]any
	if parseError := toml.Unmarshal(manifestContent, &document); parseError != nil {
		inspection.parseFailure = parseError.Error()
		return inspection
	}

	for _, requirementEntry := range pyprojectRequirementEntries(document) {
		if !strings.Contains(requirementEntry, pinnedRequirementOperatorConstant) {
			inspection.unpinnedCount++
		}
	}
	for _, versionConstraint := range poetryDependencyConstraints(document) {
		if versionIsUnpinned(versionConstraint) {
			inspection.unpinnedCount++
		}
	}
	return inspection
}

func pyprojectRequirementEntries(document map[string]any) []string {
	projectTable, isTable := document["project"].(map[string]any)
	if !isTable {
		return nil
	}
	dependencyList, isList := projectTable["dependencies"].([]any)
	if !isList {
		return nil
	}
	requirementEntries := make([]string, 0, len(dependencyList))
	for _, dependencyEntry := range dependencyList {
		if requirementEntry, isString := dependencyEntry.(string); isString {
			requirementEntries = append(requirementEntries, requirementEntry)
		}
	}
	return requirementEntries
}

func poetryDependencyConstraints(document map[string]any) []string {
	toolTable, isTable := document["tool"].(map[string]any)
	if !isTable {
		return nil
	}
	poetryTable, isTable := toolTable["poetry"].(map[string]any)
	if !isTable {
		return nil
	}
	dependenciesTable, isTable := poetryTable["dependencies"].(map[string]any)
	if !isTable {
		return nil
	}
	versionConstraints := []string{}
	for _, constraintValue := range dependenciesTable {
		if versionConstraint, isString := constraintValue.(string); isString {
			versionConstraints = append(versionConstraints, versionConstraint)
		}
	}
	return versionConstraints
}

func inspectCargo(manifestContent []byte) manifestInspection {
	inspection := manifestInspection{manifestName: cargoManifestNameConstant}

	var document map[string]any
	if parseError := toml.Unmarshal(manifestContent, &document); parseError != nil {
		inspection.parseFailure = parseError.Error()
		return inspection
	}

	dependenciesTable, isTable := document["dependencies"].(map[string]any)
	if !isTable {
		return inspection
	}
	for _, constraintValue := range dependenciesTable {
		switch typedConstraint := constraintValue.(type) {
		case string:
			if versionIsUnpinned(typedConstraint) {
				inspection.unpinnedCount++
			}
		case map[string]any:
			if versionConstraint, isString := typedConstraint["version"].(string); isString && versionIsUnpinned(versionConstraint) {
				inspection.unpinnedCount++
			}
		}
	}
	return inspection
}

// versionIsUnpinned flags wildcard, latest, and unbounded range constraints.
func versionIsUnpinned(versionConstraint string) bool {
	trimmedConstraint := strings.TrimSpace(versionConstraint)
	if len(trimmedConstraint) == 0 {
		return true
	}
	if strings.EqualFold(trimmedConstraint, latestVersionConstant) {
		return true
	}
	if strings.Contains(trimmedConstraint, wildcardVersionConstant) {
		return true
	}
	return strings.HasPrefix(trimmedConstraint, unboundedRangePrefixConstant)
}
