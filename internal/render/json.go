package render

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/temirov/repohealth/internal/report"
)

const (
	jsonFormatNameConstant  = "json"
	jsonIndentConstant      = "  "
	trailingNewlineConstant = "\n"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// RenderJSON serializes the full report losslessly.
//
// Output is two-space indented with a trailing newline; parsing it back
// through ParseReport reconstructs every field value.
func RenderJSON(analysisReport report.Report) (string, error) {
	serializedReport, marshalError := jsonCodec.MarshalIndent(analysisReport, "", jsonIndentConstant)
	if marshalError != nil {
		return "", RenderError{Format: jsonFormatNameConstant, Cause: marshalError}
	}
	return string(serializedReport) + trailingNewlineConstant, nil
}

// ParseReport reverses RenderJSON.
func ParseReport(serializedReport []byte) (report.Report, error) {
	var analysisReport report.Report
	if unmarshalError := jsonCodec.Unmarshal(serializedReport, &analysisReport); unmarshalError != nil {
		return report.Report{}, RenderError{Format: jsonFormatNameConstant, Cause: unmarshalError}
	}
	return analysisReport, nil
}

// RenderEcosystemJSON serializes the multi-repository summary losslessly.
func RenderEcosystemJSON(ecosystemSummary report.EcosystemSummary) (string, error) {
	serializedSummary, marshalError := jsonCodec.MarshalIndent(ecosystemSummary, "", jsonIndentConstant)
	if marshalError != nil {
		return "", RenderError{Format: jsonFormatNameConstant, Cause: marshalError}
	}
	return string(serializedSummary) + trailingNewlineConstant, nil
}

// ParseEcosystemSummary reverses RenderEcosystemJSON.
func ParseEcosystemSummary(serializedSummary []byte) (report.EcosystemSummary, error) {
	var ecosystemSummary report.EcosystemSummary
	if unmarshalError := jsonCodec.Unmarshal(serializedSummary, &ecosystemSummary); unmarshalError != nil {
		return report.EcosystemSummary{}, RenderError{Format: jsonFormatNameConstant, Cause: unmarshalError}
	}
	return ecosystemSummary, nil
}
