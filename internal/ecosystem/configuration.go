package ecosystem

import "strings"

const (
	outputConfigurationKeyConstant     = "output"
	workersConfigurationKeyConstant    = "workers"
	windowDaysConfigurationKeyConstant = "window_days"
	configurationKeySeparatorConstant  = "."
	defaultOutputDirectoryConstant     = "status"
)

const (
	defaultWorkerCountConstant = 4
	defaultWindowDaysConstant  = 7
)

// CommandConfiguration captures the configurable behavior of the analyze-org command.
type CommandConfiguration struct {
	Output     string `mapstructure:"output"`
	Workers    int    `mapstructure:"workers"`
	WindowDays int    `mapstructure:"window_days"`
}

// DefaultCommandConfiguration returns the built-in analyze-org settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Output:     defaultOutputDirectoryConstant,
		Workers:    defaultWorkerCountConstant,
		WindowDays: defaultWindowDaysConstant,
	}
}

// DefaultConfigurationValues exposes the command defaults keyed under the
// provided configuration root for registration with the configuration loader.
func DefaultConfigurationValues(configurationRootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationRootKey + configurationKeySeparatorConstant + outputConfigurationKeyConstant:     defaults.Output,
		configurationRootKey + configurationKeySeparatorConstant + workersConfigurationKeyConstant:    defaults.Workers,
		configurationRootKey + configurationKeySeparatorConstant + windowDaysConfigurationKeyConstant: defaults.WindowDays,
	}
}

// Sanitize normalizes configured values and restores defaults for entries the
// orchestrator could not use.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitizedConfiguration := configuration
	sanitizedConfiguration.Output = strings.TrimSpace(sanitizedConfiguration.Output)
	if len(sanitizedConfiguration.Output) == 0 {
		sanitizedConfiguration.Output = defaultOutputDirectoryConstant
	}
	if sanitizedConfiguration.Workers <= 0 {
		sanitizedConfiguration.Workers = defaultWorkerCountConstant
	}
	if sanitizedConfiguration.WindowDays <= 0 {
		sanitizedConfiguration.WindowDays = defaultWindowDaysConstant
	}
	return sanitizedConfiguration
}
