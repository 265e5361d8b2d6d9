package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedDefaultConfiguration []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default
// configuration together with its configuration type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationCopy := append([]byte(nil), embeddedDefaultConfiguration...)
	return configurationCopy, configurationTypeConstant
}
