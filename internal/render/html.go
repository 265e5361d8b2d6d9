package render

import (
	"bytes"
	"html/template"

	"github.com/temirov/repohealth/internal/report"
)

const (
	htmlFormatNameConstant              = "html"
	htmlReportTemplateNameConstant      = "repository_report"
	formatDateFunctionNameConstant      = "formatDate"
	formatTimestampFunctionNameConstant = "formatTimestamp"
	statusGlyphFunctionNameConstant     = "statusGlyph"
	shortHashFunctionNameConstant       = "shortHash"
	htmlPageTemplateConstant            = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Name}} - Repository Health Report</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
            line-height: 1.6;
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
        }
        h1, h2, h3 { color: #2c3e50; }
        h1 { border-bottom: 2px solid #eee; padding-bottom: 10px; }
        code {
            background: #f8f9fa;
            font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
            padding: 2px 5px;
            border-radius: 3px;
            font-size: 0.9em;
        }
        .header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 20px;
        }
        .download-btn {
            background: #4e73df;
            color: white;
            padding: 8px 16px;
            border-radius: 4px;
            text-decoration: none;
            font-size: 0.9em;
            margin-left: 8px;
        }
        .description { font-size: 1.1em; }
        .content ul { padding-left: 24px; }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            font-size: 0.9em;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Name}}</h1>
        <div>
            <a href="status.json" class="download-btn" download>Download JSON</a>
            <a href="status.md" class="download-btn" download>Download Markdown</a>
        </div>
    </div>
    <div class="content">
        <p class="description"><strong>{{.Description}}</strong></p>
        <h2>📊 Project Overview</h2>
        <ul>
            <li><strong>Created:</strong> {{formatDate .CreatedAt}}</li>
            <li><strong>Last Updated:</strong> {{formatDate .UpdatedAt}}</li>
            <li><strong>Total Commits:</strong> {{len .Commits}}</li>
{{- if .Branch}}
            <li><strong>Branch:</strong> {{.Branch}}</li>
{{- end}}
{{- if .RemoteWebAddress}}
            <li><strong>Repository:</strong> <a href="{{.RemoteWebAddress}}">{{.RemoteLabel}}</a></li>
{{- end}}
        </ul>
        <h3>Top Contributors</h3>
        <ul>
{{- range .Contributors}}
            <li>{{.Name}}: {{.Commits}} commits</li>
{{- end}}
        </ul>
        <h3>Most Active Files</h3>
        <ul>
{{- range .FileActivity}}
            <li><code>{{.Path}}</code>: {{.Changes}} changes</li>
{{- end}}
        </ul>
        <h3>Languages Used</h3>
        <ul>
{{- range .Languages}}
            <li>{{.Extension}}: {{.Files}} files</li>
{{- end}}
        </ul>
        <h2>🔍 Health Checks</h2>
        <ul>
{{- range .Checks}}
            <li>{{statusGlyph .Status}} <strong>{{.Name}}</strong>: {{.Message}}
{{- if .Suggestions}}
                <ul>
{{- range .Suggestions}}
                    <li>{{.}}</li>
{{- end}}
                </ul>
{{- end}}
            </li>
{{- end}}
        </ul>
        <h2>📋 Next Steps</h2>
        <ul>
{{- range .Tasks}}
            <li>{{.}}</li>
{{- end}}
        </ul>
        <h2>📜 Recent Commits</h2>
        <ul>
{{- range .RecentCommits}}
            <li><code>{{shortHash .Hash}}</code> {{.Message}} ({{formatDate .Timestamp}})</li>
{{- end}}
        </ul>
    </div>
    <div class="footer">
        Generated on {{formatTimestamp .GeneratedAt}} by repohealth
    </div>
</body>
</html>
`
)

var htmlReportTemplate = template.Must(template.New(htmlReportTemplateNameConstant).Funcs(htmlTemplateFunctions()).Parse(htmlPageTemplateConstant))

// htmlReportView augments the report with values precomputed for templating.
type htmlReportView struct {
	report.Report
	RecentCommits    []report.Commit
	RemoteLabel      string
	RemoteWebAddress string
}

func htmlTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		formatDateFunctionNameConstant:      formatDate,
		formatTimestampFunctionNameConstant: formatTimestamp,
		statusGlyphFunctionNameConstant:     StatusGlyph,
		shortHashFunctionNameConstant:       shortHash,
	}
}

// RenderHTML formats the report as a standalone page with embedded styling.
//
// Download links point at the sibling bundle files so the page works when
// served from the report directory without any external assets.
func RenderHTML(analysisReport report.Report) (string, error) {
	remoteLabel, remoteWebAddress, _ := remoteWebLink(analysisReport.RemoteURL)
	reportView := htmlReportView{
		Report:           analysisReport,
		RecentCommits:    recentCommits(analysisReport),
		RemoteLabel:      remoteLabel,
		RemoteWebAddress: remoteWebAddress,
	}

	renderedPage := bytes.Buffer{}
	if executeError := htmlReportTemplate.Execute(&renderedPage, reportView); executeError != nil {
		return "", RenderError{Format: htmlFormatNameConstant, Cause: executeError}
	}
	return renderedPage.String(), nil
}
