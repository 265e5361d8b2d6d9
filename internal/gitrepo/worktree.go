package gitrepo

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const gitMetadataDirectoryNameConstant = ".git"

// ignoredTreeDirectoryNames lists directories excluded from tree snapshots.
// They hold generated or third-party content that would skew language and
// quality signals derived from the snapshot.
var ignoredTreeDirectoryNames = []string{
	gitMetadataDirectoryNameConstant,
	"node_modules",
	"vendor",
	"target",
	"dist",
	"build",
	"__pycache__",
	".venv",
	"venv",
	".idea",
	".vscode",
}

// TreeSnapshot captures the tracked shape of a repository working tree.
//
// Files holds slash-separated paths relative to Root in lexical order.
type TreeSnapshot struct {
	Root  string
	Files []string
}

// Contains reports whether the snapshot holds the exact relative path.
func (snapshot TreeSnapshot) Contains(relativePath string) bool {
	matchIndex := sort.SearchStrings(snapshot.Files, relativePath)
	return matchIndex < len(snapshot.Files) && snapshot.Files[matchIndex] == relativePath
}

// ContainsFold reports whether the snapshot holds the relative path ignoring case.
func (snapshot TreeSnapshot) ContainsFold(relativePath string) bool {
	for _, candidatePath := range snapshot.Files {
		if strings.EqualFold(candidatePath, relativePath) {
			return true
		}
	}
	return false
}

// FilesWithin returns the snapshot paths located under the directory prefix.
func (snapshot TreeSnapshot) FilesWithin(directoryPrefix string) []string {
	normalizedPrefix := strings.TrimSuffix(directoryPrefix, pathSeparatorConstant) + pathSeparatorConstant
	matches := make([]string, 0, len(snapshot.Files))
	for _, candidatePath := range snapshot.Files {
		if strings.HasPrefix(candidatePath, normalizedPrefix) {
			matches = append(matches, candidatePath)
		}
	}
	return matches
}

// CollectTreeSnapshot walks the repository working tree and records its files.
//
// Ignored directories, including any additional names supplied by the
// caller, are skipped during the walk, so their contents never reach
// language statistics or repository checks.
func CollectTreeSnapshot(repositoryRoot string, additionalIgnoredDirectories ...string) (TreeSnapshot, error) {
	collectedFiles := make([]string, 0)

	walkError := filepath.WalkDir(repositoryRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if directoryEntry.IsDir() {
			if currentPath != repositoryRoot && isIgnoredTreeDirectory(directoryEntry.Name(), additionalIgnoredDirectories) {
				return filepath.SkipDir
			}
			return nil
		}
		relativePath, relativeError := filepath.Rel(repositoryRoot, currentPath)
		if relativeError != nil {
			return relativeError
		}
		collectedFiles = append(collectedFiles, filepath.ToSlash(relativePath))
		return nil
	})
	if walkError != nil {
		return TreeSnapshot{}, walkError
	}

	sort.Strings(collectedFiles)
	return TreeSnapshot{Root: repositoryRoot, Files: collectedFiles}, nil
}

func isIgnoredTreeDirectory(directoryName string, additionalIgnoredDirectories []string) bool {
	for _, ignoredName := range ignoredTreeDirectoryNames {
		if directoryName == ignoredName {
			return true
		}
	}
	for _, ignoredName := range additionalIgnoredDirectories {
		if directoryName == ignoredName {
			return true
		}
	}
	return false
}
