package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "text",
			choices:        []string{"text", "json", "markdown", "html"},
			description:    "Report output format.",
			expectedOutput: "`<TEXT|json|markdown|html>` Report output format.",
		},
		{
			name:           "DefaultMiddleChoice",
			defaultChoice:  "json",
			choices:        []string{"text", "json", "markdown"},
			description:    "Report output format.",
			expectedOutput: "`<text|JSON|markdown>` Report output format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "info",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "",
			expectedOutput: "`<debug|INFO|warn|error>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "structured",
			choices:        []string{"structured", "structured", "console"},
			description:    "Log output encoding.",
			expectedOutput: "`<STRUCTURED|console>` Log output encoding.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "markdown",
			choices:        []string{" text ", " markdown "},
			description:    "Report output format.",
			expectedOutput: "`<text|MARKDOWN>` Report output format.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}
