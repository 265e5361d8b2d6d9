package analyze

import (
	"fmt"

	"github.com/temirov/repohealth/internal/render"
	"github.com/temirov/repohealth/internal/report"
)

// Supported report format names.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

const unsupportedFormatTemplateConstant = "unsupported report format %q"

// SupportedFormats lists the renderable report formats in display order.
func SupportedFormats() []string {
	return []string{FormatText, FormatJSON, FormatMarkdown, FormatHTML}
}

// UnsupportedFormatError reports a requested format outside the supported set.
type UnsupportedFormatError struct {
	Format string
}

// Error names the rejected format.
func (formatError UnsupportedFormatError) Error() string {
	return fmt.Sprintf(unsupportedFormatTemplateConstant, formatError.Format)
}

// RenderReport serializes the report in the requested format.
func RenderReport(analysisReport report.Report, outputFormat string, showSuggestions bool) (string, error) {
	switch outputFormat {
	case FormatText:
		return render.RenderText(analysisReport, render.TextOptions{ShowSuggestions: showSuggestions}), nil
	case FormatJSON:
		return render.RenderJSON(analysisReport)
	case FormatMarkdown:
		return render.RenderMarkdown(analysisReport), nil
	case FormatHTML:
		return render.RenderHTML(analysisReport)
	default:
		return "", UnsupportedFormatError{Format: outputFormat}
	}
}
