package analyze

import "strings"

const (
	formatConfigurationKeyConstant             = "format"
	showSuggestionsConfigurationKeyConstant    = "show_suggestions"
	topFilesConfigurationKeyConstant           = "top_files"
	topLanguagesConfigurationKeyConstant       = "top_languages"
	ignoredDirectoriesConfigurationKeyConstant = "ignored_directories"
	configurationKeySeparatorConstant          = "."
	defaultReportFormatConstant                = FormatText
	defaultTopFilesConstant                    = 10
	defaultTopLanguagesConstant                = 5
)

// CommandConfiguration captures persisted configuration for repository analysis.
type CommandConfiguration struct {
	Format             string   `mapstructure:"format"`
	ShowSuggestions    bool     `mapstructure:"show_suggestions"`
	TopFiles           int      `mapstructure:"top_files"`
	TopLanguages       int      `mapstructure:"top_languages"`
	IgnoredDirectories []string `mapstructure:"ignored_directories"`
}

// DefaultCommandConfiguration returns baseline configuration values for repository analysis.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Format:             defaultReportFormatConstant,
		ShowSuggestions:    true,
		TopFiles:           defaultTopFilesConstant,
		TopLanguages:       defaultTopLanguagesConstant,
		IgnoredDirectories: nil,
	}
}

// DefaultConfigurationValues produces Viper defaults for the analyze command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + formatConfigurationKeyConstant:             defaults.Format,
		rootKey + configurationKeySeparatorConstant + showSuggestionsConfigurationKeyConstant:    defaults.ShowSuggestions,
		rootKey + configurationKeySeparatorConstant + topFilesConfigurationKeyConstant:           defaults.TopFiles,
		rootKey + configurationKeySeparatorConstant + topLanguagesConfigurationKeyConstant:       defaults.TopLanguages,
		rootKey + configurationKeySeparatorConstant + ignoredDirectoriesConfigurationKeyConstant: defaults.IgnoredDirectories,
	}
}

// Sanitize normalizes configured values and restores defaults for unusable entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = defaultReportFormatConstant
	}

	if sanitized.TopFiles <= 0 {
		sanitized.TopFiles = defaultTopFilesConstant
	}
	if sanitized.TopLanguages <= 0 {
		sanitized.TopLanguages = defaultTopLanguagesConstant
	}

	trimmedDirectories := make([]string, 0, len(configuration.IgnoredDirectories))
	for _, directoryName := range configuration.IgnoredDirectories {
		trimmedDirectory := strings.TrimSpace(directoryName)
		if len(trimmedDirectory) == 0 {
			continue
		}
		trimmedDirectories = append(trimmedDirectories, trimmedDirectory)
	}
	if len(trimmedDirectories) == 0 {
		trimmedDirectories = nil
	}
	sanitized.IgnoredDirectories = trimmedDirectories

	return sanitized
}
