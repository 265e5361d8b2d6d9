package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const gitMetadataDirectoryNameConstant = ".git"

// ignoredDirectoryNames lists directories never descended into during
// discovery. They hold third-party checkouts whose nested repositories are
// not part of the ecosystem under analysis.
var ignoredDirectoryNames = []string{
	"node_modules",
	"vendor",
	".venv",
	"venv",
}

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns the directories
// containing a .git entry, sorted and deduplicated across roots.
//
// Discovery stops at repository boundaries: a repository nested inside
// another is reported only when its parent is passed as an explicit root.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(rootDirectories []string) ([]string, error) {
	seenRepositories := make(map[string]struct{})
	var repositoryPaths []string

	for _, rootDirectory := range rootDirectories {
		walkError := filepath.WalkDir(rootDirectory, func(currentPath string, directoryEntry fs.DirEntry, visitError error) error {
			if visitError != nil {
				// An unusable root is a caller mistake; unreadable nested
				// entries are skipped so one directory cannot abort the walk.
				if currentPath == rootDirectory {
					return visitError
				}
				return nil
			}
			if !directoryEntry.IsDir() {
				return nil
			}
			if currentPath != rootDirectory && directoryIsIgnored(directoryEntry.Name()) {
				return fs.SkipDir
			}

			// A .git entry may be a directory or, for linked worktrees, a file.
			gitMetadataPath := filepath.Join(currentPath, gitMetadataDirectoryNameConstant)
			if _, statError := os.Stat(gitMetadataPath); statError != nil {
				return nil
			}

			if _, alreadySeen := seenRepositories[currentPath]; !alreadySeen {
				seenRepositories[currentPath] = struct{}{}
				repositoryPaths = append(repositoryPaths, currentPath)
			}
			return fs.SkipDir
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositoryPaths)
	return repositoryPaths, nil
}

func directoryIsIgnored(directoryName string) bool {
	for _, ignoredName := range ignoredDirectoryNames {
		if directoryName == ignoredName {
			return true
		}
	}
	return false
}
