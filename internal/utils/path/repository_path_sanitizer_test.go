package pathutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repohealth/internal/utils/path"
)

const (
	testAbsolutePathSuffixConstant = "analyzer-root"
	testTildeRelativePathConstant  = "Projects/example"
	testWhitespacePrefixConstant   = "  "
	testWhitespaceSuffixConstant   = "\t"
)

func TestRepositoryPathSanitizerNormalizesInputs(testInstance *testing.T) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	temporaryDirectory := testInstance.TempDir()
	absolutePath := filepath.Join(temporaryDirectory, testAbsolutePathSuffixConstant)
	tildeInput := filepath.Join("~", testTildeRelativePathConstant)
	expandedTilde := filepath.Join(homeDirectory, testTildeRelativePathConstant)

	testCases := []struct {
		name            string
		sanitizer       *pathutils.RepositoryPathSanitizer
		inputs          []string
		expectedOutputs []string
	}{
		{
			name:      "default_configuration",
			sanitizer: pathutils.NewRepositoryPathSanitizer(),
			inputs: []string{
				"",
				testWhitespacePrefixConstant + absolutePath + testWhitespaceSuffixConstant,
				testWhitespacePrefixConstant + tildeInput + testWhitespaceSuffixConstant,
			},
			expectedOutputs: []string{absolutePath, expandedTilde},
		},
		{
			name: "boolean_filter_configuration",
			sanitizer: pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
				ExcludeBooleanLiteralCandidates: true,
			}),
			inputs:          []string{"TRUE", "False", tildeInput},
			expectedOutputs: []string{expandedTilde},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			sanitized := testCase.sanitizer.Sanitize(testCase.inputs)
			require.Equal(subTest, testCase.expectedOutputs, sanitized)
		})
	}
}

func TestRepositoryPathSanitizerPrunesNestedPaths(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	parentRoot := filepath.Join(temporaryDirectory, "workspace")
	nestedRoot := filepath.Join(parentRoot, "tools", "analyzer")
	siblingRoot := filepath.Join(temporaryDirectory, "library")

	sanitizer := pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
		PruneNestedPaths: true,
	})

	sanitized := sanitizer.Sanitize([]string{parentRoot, nestedRoot, siblingRoot, parentRoot})
	require.Equal(testInstance, []string{parentRoot, siblingRoot}, sanitized)
}

func TestRepositoryPathSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	sanitizer := pathutils.NewRepositoryPathSanitizer()

	sanitized := sanitizer.Sanitize([]string{"   ", "\n"})
	require.Nil(testInstance, sanitized)
}
