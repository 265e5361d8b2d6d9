package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	booleanLiteralTrueConstant    = "true"
	booleanLiteralFalseConstant   = "false"
	windowsOperatingSystemLiteral = "windows"
)

// RepositoryPathSanitizerConfiguration controls repository path sanitization behavior.
type RepositoryPathSanitizerConfiguration struct {
	// ExcludeBooleanLiteralCandidates drops arguments that look like stray
	// toggle flag values ("true", "false") rather than paths.
	ExcludeBooleanLiteralCandidates bool
	// PruneNestedPaths removes paths nested inside other provided paths so
	// overlapping roots are walked once.
	PruneNestedPaths bool
}

// RepositoryPathSanitizer normalizes repository path inputs consistently across commands.
type RepositoryPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration RepositoryPathSanitizerConfiguration
}

// NewRepositoryPathSanitizer constructs a RepositoryPathSanitizer with default behavior.
func NewRepositoryPathSanitizer() *RepositoryPathSanitizer {
	return NewRepositoryPathSanitizerWithConfiguration(nil, RepositoryPathSanitizerConfiguration{})
}

// NewRepositoryPathSanitizerWithConfiguration constructs a RepositoryPathSanitizer using the provided expander and configuration.
func NewRepositoryPathSanitizerWithConfiguration(homeExpander *HomeExpander, configuration RepositoryPathSanitizerConfiguration) *RepositoryPathSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &RepositoryPathSanitizer{
		homeExpander:  resolvedExpander,
		configuration: configuration,
	}
}

// Sanitize trims whitespace, expands home directory shortcuts, and removes disallowed values.
// It returns nil when no usable paths remain.
func (sanitizer *RepositoryPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		return NewRepositoryPathSanitizer().Sanitize(candidatePaths)
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePath)
		if len(trimmedCandidate) == 0 {
			continue
		}
		if sanitizer.configuration.ExcludeBooleanLiteralCandidates && isBooleanLiteral(trimmedCandidate) {
			continue
		}

		expandedPath := sanitizer.homeExpander.Expand(trimmedCandidate)
		if len(expandedPath) == 0 {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if sanitizer.configuration.PruneNestedPaths {
		sanitizedPaths = pruneNestedPaths(sanitizedPaths)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

func isBooleanLiteral(candidate string) bool {
	loweredCandidate := strings.ToLower(candidate)
	return loweredCandidate == booleanLiteralTrueConstant || loweredCandidate == booleanLiteralFalseConstant
}

// pruneNestedPaths keeps the first occurrence of each distinct path and drops
// any path nested inside another surviving path. Original ordering is
// preserved.
func pruneNestedPaths(candidatePaths []string) []string {
	canonicalPaths := make([]string, len(candidatePaths))
	for pathIndex := range candidatePaths {
		canonicalPaths[pathIndex] = canonicalizePath(candidatePaths[pathIndex])
	}

	prunedPaths := make([]string, 0, len(candidatePaths))
	for candidateIndex := range candidatePaths {
		dropped := false
		for otherIndex := range candidatePaths {
			if otherIndex == candidateIndex {
				continue
			}
			if comparablePath(canonicalPaths[otherIndex]) == comparablePath(canonicalPaths[candidateIndex]) {
				if otherIndex < candidateIndex {
					dropped = true
					break
				}
				continue
			}
			if isAncestorPath(canonicalPaths[otherIndex], canonicalPaths[candidateIndex]) {
				dropped = true
				break
			}
		}
		if !dropped {
			prunedPaths = append(prunedPaths, candidatePaths[candidateIndex])
		}
	}

	return prunedPaths
}

func canonicalizePath(candidatePath string) string {
	cleanedPath := filepath.Clean(candidatePath)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError != nil {
		return cleanedPath
	}
	return filepath.Clean(absolutePath)
}

func comparablePath(candidatePath string) string {
	comparisonValue := filepath.Clean(candidatePath)
	if runtime.GOOS == windowsOperatingSystemLiteral {
		comparisonValue = strings.ToLower(comparisonValue)
	}
	return comparisonValue
}

func isAncestorPath(ancestorCandidate string, descendantCandidate string) bool {
	ancestorComparable := comparablePath(ancestorCandidate)
	descendantComparable := comparablePath(descendantCandidate)

	if len(descendantComparable) <= len(ancestorComparable) {
		return false
	}
	if !strings.HasPrefix(descendantComparable, ancestorComparable) {
		return false
	}

	if ancestorComparable[len(ancestorComparable)-1] == os.PathSeparator {
		return true
	}
	return descendantComparable[len(ancestorComparable)] == os.PathSeparator
}
