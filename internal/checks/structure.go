package checks

import (
	"path"
	"strings"

	"github.com/temirov/repohealth/internal/report"
)

const (
	structureCheckerNameConstant            = "Structure"
	structureConventionalMessageConstant    = "Source layout follows a conventional structure"
	structureDocumentedRootMessageConstant  = "Root-level sources are documented"
	structureFlatRootMessageConstant        = "Sources sit at the repository root without a recognized layout"
	structureDeepNestingMessageConstant     = "Sources are buried in deeply nested directories"
	structureNoSourcesMessageConstant       = "No recognized source files found"
	structureFlatRootSuggestionConstant     = "Organize sources under a conventional root such as cmd/ or src/ and add a README"
	structureDeepNestingSuggestionConstant  = "Flatten the package hierarchy so sources start near the repository root"
	structureNoSourcesSuggestionConstant    = "Add source files or retire the repository"
	structureUnrecognizedSuggestionConstant = "Adopt a conventional layout (cmd/, internal/, pkg/, src/, or lib/)"
	deepNestingMinimumDepthConstant         = 5
)

// recognizedSourceRoots are top-level directories that signal a conventional layout.
var recognizedSourceRoots = []string{"cmd", "internal", "pkg", "src", "lib"}

// recognizedSourceExtensions identify files counted as sources.
var recognizedSourceExtensions = map[string]struct{}{
	".go":    {},
	".py":    {},
	".js":    {},
	".ts":    {},
	".jsx":   {},
	".tsx":   {},
	".rb":    {},
	".rs":    {},
	".java":  {},
	".c":     {},
	".h":     {},
	".cpp":   {},
	".cs":    {},
	".kt":    {},
	".swift": {},
	".sh":    {},
}

// StructureChecker verifies the repository follows a recognizable source layout.
type StructureChecker struct{}

// NewStructureChecker constructs a StructureChecker.
func NewStructureChecker() *StructureChecker {
	return &StructureChecker{}
}

// Name identifies the checker in reports.
func (checker *StructureChecker) Name() string {
	return structureCheckerNameConstant
}

// Evaluate inspects the tree snapshot for a conventional source layout.
func (checker *StructureChecker) Evaluate(snapshot RepositorySnapshot) report.CheckResult {
	sourcePaths := collectSourcePaths(snapshot)
	if len(sourcePaths) == 0 {
		return report.CheckResult{
			Name:        structureCheckerNameConstant,
			Status:      report.CheckStatusError,
			Message:     structureNoSourcesMessageConstant,
			Suggestions: []string{structureNoSourcesSuggestionConstant},
		}
	}

	if minimumSourceDepth(sourcePaths) >= deepNestingMinimumDepthConstant {
		return report.CheckResult{
			Name:        structureCheckerNameConstant,
			Status:      report.CheckStatusWarning,
			Message:     structureDeepNestingMessageConstant,
			Suggestions: []string{structureDeepNestingSuggestionConstant},
		}
	}

	if hasRecognizedSourceRoot(sourcePaths) {
		return report.CheckResult{
			Name:        structureCheckerNameConstant,
			Status:      report.CheckStatusPass,
			Message:     structureConventionalMessageConstant,
			Suggestions: []string{},
		}
	}

	_, readmePresent := findRootFileFold(snapshot.Tree, readmeCandidateNames)
	if hasRootLevelSource(sourcePaths) {
		if readmePresent {
			return report.CheckResult{
				Name:        structureCheckerNameConstant,
				Status:      report.CheckStatusPass,
				Message:     structureDocumentedRootMessageConstant,
				Suggestions: []string{},
			}
		}
		return report.CheckResult{
			Name:        structureCheckerNameConstant,
			Status:      report.CheckStatusWarning,
			Message:     structureFlatRootMessageConstant,
			Suggestions: []string{structureFlatRootSuggestionConstant},
		}
	}

	return report.CheckResult{
		Name:        structureCheckerNameConstant,
		Status:      report.CheckStatusWarning,
		Message:     structureFlatRootMessageConstant,
		Suggestions: []string{structureUnrecognizedSuggestionConstant},
	}
}

func collectSourcePaths(snapshot RepositorySnapshot) []string {
	sourcePaths := []string{}
	for _, treePath := range snapshot.Tree.Files {
		extension := strings.ToLower(path.Ext(treePath))
		if _, recognized := recognizedSourceExtensions[extension]; recognized {
			sourcePaths = append(sourcePaths, treePath)
		}
	}
	return sourcePaths
}

func minimumSourceDepth(sourcePaths []string) int {
	minimumDepth := -1
	for _, sourcePath := range sourcePaths {
		depth := strings.Count(sourcePath, rootPathSeparatorConstant)
		if minimumDepth == -1 || depth < minimumDepth {
			minimumDepth = depth
		}
	}
	return minimumDepth
}

func hasRecognizedSourceRoot(sourcePaths []string) bool {
	for _, sourcePath := range sourcePaths {
		firstSegment, _, nested := strings.Cut(sourcePath, rootPathSeparatorConstant)
		if !nested {
			continue
		}
		for _, recognizedRoot := range recognizedSourceRoots {
			if firstSegment == recognizedRoot {
				return true
			}
		}
	}
	return false
}

func hasRootLevelSource(sourcePaths []string) bool {
	for _, sourcePath := range sourcePaths {
		if !strings.Contains(sourcePath, rootPathSeparatorConstant) {
			return true
		}
	}
	return false
}
