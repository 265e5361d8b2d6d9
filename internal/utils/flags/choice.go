// Package flags provides shared helpers for Cobra flag registration and usage strings.
package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderOpenConstant   = "<"
	choicePlaceholderCloseConstant  = ">"
	choiceValueSeparatorConstant    = "|"
	choiceBareUsageTemplateConstant = "`%s`"
	choiceFullUsageTemplateConstant = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string listing the accepted values,
// with the default value capitalized inside the placeholder.
func FormatChoiceUsage(defaultChoice string, availableChoices []string, description string) string {
	placeholder := choicePlaceholderOpenConstant +
		strings.Join(emphasizeDefaultChoice(defaultChoice, availableChoices), choiceValueSeparatorConstant) +
		choicePlaceholderCloseConstant

	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceBareUsageTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceFullUsageTemplateConstant, placeholder, trimmedDescription)
}

func emphasizeDefaultChoice(defaultChoice string, availableChoices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	seenChoices := make(map[string]struct{}, len(availableChoices))
	emphasizedChoices := make([]string, 0, len(availableChoices))

	for _, choiceValue := range availableChoices {
		trimmedChoice := strings.TrimSpace(choiceValue)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			emphasizedChoices = append(emphasizedChoices, strings.ToUpper(trimmedChoice))
			continue
		}
		emphasizedChoices = append(emphasizedChoices, trimmedChoice)
	}

	return emphasizedChoices
}
