package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/discovery"
)

const (
	workspaceDirectoryName         = "workspace"
	platformGroupDirectoryName     = "platform"
	serviceRepositoryDirectoryName = "orders-service"
	libraryRepositoryDirectoryName = "shared-library"
	toolsRepositoryDirectoryName   = "release-tools"
	vendoredDirectoryName          = "node_modules"
	vendoredRepositoryName         = "left-pad"
	nestedRepositoryDirectoryName  = "embedded-fixture"
	gitMetadataDirectoryName       = ".git"
	directoryPermissions           = 0o755
)

func createRepository(testInstance *testing.T, pathSegments ...string) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(pathSegments...)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, gitMetadataDirectoryName), directoryPermissions))
	return repositoryPath
}

func TestFilesystemRepositoryDiscovererFindsNestedLayouts(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	servicePath := createRepository(testInstance, rootDirectory, workspaceDirectoryName, platformGroupDirectoryName, serviceRepositoryDirectoryName)
	libraryPath := createRepository(testInstance, rootDirectory, workspaceDirectoryName, platformGroupDirectoryName, libraryRepositoryDirectoryName)
	toolsPath := createRepository(testInstance, rootDirectory, workspaceDirectoryName, toolsRepositoryDirectoryName)

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := discoverer.DiscoverRepositories([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)

	expectedRepositories := []string{servicePath, libraryPath, toolsPath}
	require.Equal(testInstance, expectedRepositories, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererStopsAtRepositoryBoundaries(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	servicePath := createRepository(testInstance, rootDirectory, serviceRepositoryDirectoryName)
	createRepository(testInstance, servicePath, "testdata", nestedRepositoryDirectoryName)

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := discoverer.DiscoverRepositories([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{servicePath}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererSkipsVendoredCheckouts(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	toolsPath := createRepository(testInstance, rootDirectory, toolsRepositoryDirectoryName)
	createRepository(testInstance, rootDirectory, vendoredDirectoryName, vendoredRepositoryName)

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := discoverer.DiscoverRepositories([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{toolsPath}, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererReportsMissingRoot(testInstance *testing.T) {
	missingRoot := filepath.Join(testInstance.TempDir(), "missing-root")

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := discoverer.DiscoverRepositories([]string{missingRoot})
	require.Error(testInstance, discoveryError)
	require.Nil(testInstance, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererDeduplicatesOverlappingRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	workspacePath := filepath.Join(rootDirectory, workspaceDirectoryName)
	toolsPath := createRepository(testInstance, workspacePath, toolsRepositoryDirectoryName)

	discoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := discoverer.DiscoverRepositories([]string{rootDirectory, workspacePath, toolsPath})
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{toolsPath}, discoveredRepositories)
}
