package ecosystem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repohealth/internal/ecosystem"
)

func TestDefaultCommandConfiguration(testInstance *testing.T) {
	defaults := ecosystem.DefaultCommandConfiguration()

	require.Equal(testInstance, "status", defaults.Output)
	require.Equal(testInstance, 4, defaults.Workers)
	require.Equal(testInstance, 7, defaults.WindowDays)
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := ecosystem.DefaultConfigurationValues("tools.ecosystem")

	require.Equal(testInstance, "status", values["tools.ecosystem.output"])
	require.Equal(testInstance, 4, values["tools.ecosystem.workers"])
	require.Equal(testInstance, 7, values["tools.ecosystem.window_days"])
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    ecosystem.CommandConfiguration
		expected ecosystem.CommandConfiguration
	}{
		{
			name:     "trims_output_directory",
			input:    ecosystem.CommandConfiguration{Output: "  reports ", Workers: 2, WindowDays: 14},
			expected: ecosystem.CommandConfiguration{Output: "reports", Workers: 2, WindowDays: 14},
		},
		{
			name:     "restores_defaults_for_unusable_values",
			input:    ecosystem.CommandConfiguration{Output: "   ", Workers: -3, WindowDays: 0},
			expected: ecosystem.CommandConfiguration{Output: "status", Workers: 4, WindowDays: 7},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, testCase.input.Sanitize())
		})
	}
}
