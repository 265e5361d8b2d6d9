package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/temirov/repohealth/internal/report"
)

const (
	dashboardTemplateNameConstant         = "ecosystem_dashboard"
	rankPositionFunctionNameConstant      = "rankPosition"
	dashboardHealthyBadgeConstant         = "✅ Healthy"
	dashboardWarningBadgeTemplateConstant = "⚠️ %d warnings"
	dashboardErrorBadgeTemplateConstant   = "❌ %d errors"
	dashboardHealthyClassConstant         = "health-high"
	dashboardWarningClassConstant         = "health-medium"
	dashboardErrorClassConstant           = "health-low"
	dashboardPageTemplateConstant         = `<!DOCTYPE html>
<html>
<head>
    <title>Repository Ecosystem Dashboard</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f7fa;
            color: #333;
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
            padding: 20px;
            background: linear-gradient(135deg, #6e8efb, #a777e3);
            color: white;
            border-radius: 10px;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
        }
        .dashboard-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(350px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .repo-card {
            background: white;
            border-radius: 8px;
            padding: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            transition: transform 0.2s, box-shadow 0.2s;
        }
        .repo-card:hover {
            transform: translateY(-5px);
            box-shadow: 0 6px 12px rgba(0,0,0,0.1);
        }
        .health-score {
            font-weight: bold;
            padding: 3px 8px;
            border-radius: 12px;
            font-size: 0.9em;
            display: inline-block;
            margin-bottom: 10px;
        }
        .health-high { background-color: #d4edda; color: #155724; }
        .health-medium { background-color: #fff3cd; color: #856404; }
        .health-low { background-color: #f8d7da; color: #721c24; }
        .metrics {
            display: grid;
            grid-template-columns: repeat(2, 1fr);
            gap: 10px;
            margin: 10px 0;
        }
        .metric {
            font-size: 0.9em;
        }
        .metric .label {
            color: #666;
            font-size: 0.8em;
        }
        .bundle-links {
            font-size: 0.85em;
            margin-top: 10px;
        }
        .activity-table {
            width: 100%;
            border-collapse: collapse;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
        }
        .activity-table th, .activity-table td {
            padding: 10px 15px;
            text-align: left;
            border-bottom: 1px solid #eee;
        }
        .activity-table th {
            background: #f8f9fa;
            color: #444;
        }
        .failure-list {
            background: #f8d7da;
            color: #721c24;
            border-radius: 8px;
            padding: 15px 20px;
        }
        h2 {
            color: #444;
            border-bottom: 2px solid #eee;
            padding-bottom: 10px;
            margin-top: 40px;
        }
        a {
            color: #4a6baf;
            text-decoration: none;
        }
        a:hover { text-decoration: underline; }
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
        <h1>Repository Ecosystem Dashboard</h1>
        <p>Last updated: {{formatTimestamp .GeneratedAt}}</p>
        <p>{{.TotalRepositories}} repositories analyzed over the last {{.WindowDays}} days</p>
    </div>
{{- if .MostActive}}
    <h2>Most Active Repositories</h2>
    <table class="activity-table">
        <tr><th>#</th><th>Repository</th><th>Recent Commits</th><th>Lines Changed</th></tr>
{{- range $rankIndex, $rankEntry := .MostActive}}
        <tr><td>{{rankPosition $rankIndex}}</td><td><a href="{{$rankEntry.Name}}/index.html">{{$rankEntry.Name}}</a></td><td>{{$rankEntry.RecentCommits}}</td><td>{{$rankEntry.RecentLinesChanged}}</td></tr>
{{- end}}
    </table>
{{- end}}
    <h2>Repositories</h2>
    <div class="dashboard-grid">
{{- range .Cards}}
        <div class="repo-card">
            <div class="health-score {{.BadgeClass}}">{{.BadgeText}}</div>
            <h3><a href="{{.Name}}/index.html">{{.Name}}</a></h3>
            <p>{{.Description}}</p>
            <div class="metrics">
                <div class="metric">
                    <div class="label">Commits</div>
                    <div>{{.TotalCommits}}</div>
                </div>
                <div class="metric">
                    <div class="label">Contributors</div>
                    <div>{{.Contributors}}</div>
                </div>
                <div class="metric">
                    <div class="label">Created</div>
                    <div>{{formatDate .CreatedAt}}</div>
                </div>
                <div class="metric">
                    <div class="label">Updated</div>
                    <div>{{formatDate .UpdatedAt}}</div>
                </div>
            </div>
            <div class="bundle-links">
                <a href="{{.Name}}/status.json">JSON</a> · <a href="{{.Name}}/status.md">Markdown</a>
            </div>
        </div>
{{- end}}
    </div>
{{- if .Failures}}
    <h2>Failed Analyses</h2>
    <div class="failure-list">
        <ul>
{{- range .Failures}}
            <li><strong>{{.Name}}</strong> ({{.Path}}): {{.Error}}</li>
{{- end}}
        </ul>
    </div>
{{- end}}
    <div class="footer">
        Generated on {{formatTimestamp .GeneratedAt}} by repohealth
    </div>
</body>
</html>
`
)

var dashboardTemplate = template.Must(template.New(dashboardTemplateNameConstant).Funcs(dashboardTemplateFunctions()).Parse(dashboardPageTemplateConstant))

// dashboardView augments the summary with card badges precomputed in Go so
// the template stays free of status logic.
type dashboardView struct {
	report.EcosystemSummary
	Cards []dashboardCardView
}

type dashboardCardView struct {
	report.RepositoryDigest
	BadgeClass string
	BadgeText  string
}

func dashboardTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		formatDateFunctionNameConstant:      formatDate,
		formatTimestampFunctionNameConstant: formatTimestamp,
		rankPositionFunctionNameConstant:    rankPosition,
	}
}

func rankPosition(rankIndex int) int {
	return rankIndex + 1
}

func dashboardCard(repositoryDigest report.RepositoryDigest) dashboardCardView {
	cardView := dashboardCardView{
		RepositoryDigest: repositoryDigest,
		BadgeClass:       dashboardHealthyClassConstant,
		BadgeText:        dashboardHealthyBadgeConstant,
	}
	if repositoryDigest.Warnings > 0 {
		cardView.BadgeClass = dashboardWarningClassConstant
		cardView.BadgeText = fmt.Sprintf(dashboardWarningBadgeTemplateConstant, repositoryDigest.Warnings)
	}
	if repositoryDigest.Errors > 0 {
		cardView.BadgeClass = dashboardErrorClassConstant
		cardView.BadgeText = fmt.Sprintf(dashboardErrorBadgeTemplateConstant, repositoryDigest.Errors)
	}
	return cardView
}

// RenderDashboard formats the ecosystem summary as a standalone overview
// page with repository cards, the recent-activity ranking, and any analysis
// failures. Links point at the per-repository bundles written alongside it.
func RenderDashboard(ecosystemSummary report.EcosystemSummary) (string, error) {
	summaryView := dashboardView{EcosystemSummary: ecosystemSummary}
	for _, repositoryDigest := range ecosystemSummary.Repositories {
		summaryView.Cards = append(summaryView.Cards, dashboardCard(repositoryDigest))
	}

	renderedPage := bytes.Buffer{}
	if executeError := dashboardTemplate.Execute(&renderedPage, summaryView); executeError != nil {
		return "", RenderError{Format: htmlFormatNameConstant, Cause: executeError}
	}
	return renderedPage.String(), nil
}
