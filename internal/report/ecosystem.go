package report

import "time"

// RepositoryDigest condenses one repository Report for ecosystem summaries.
type RepositoryDigest struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	TotalCommits int       `json:"total_commits"`
	Contributors int       `json:"contributors"`
	Warnings     int       `json:"warnings"`
	Errors       int       `json:"errors"`
}

// ActivityRank positions one repository inside the recent-activity ranking.
type ActivityRank struct {
	Name               string `json:"name"`
	RecentCommits      int    `json:"recent_commits"`
	RecentLinesChanged int    `json:"recent_lines_changed"`
}

// RepositoryFailure records a repository whose analysis could not complete.
type RepositoryFailure struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// EcosystemSummary aggregates a multi-repository analysis run.
//
// Repositories and Failures are ordered by name; MostActive is ordered by
// recent commit count descending with recent line churn as the secondary key
// and name as the final tie break.
type EcosystemSummary struct {
	GeneratedAt       time.Time           `json:"generated_at"`
	WindowDays        int                 `json:"window_days"`
	TotalRepositories int                 `json:"total_repositories"`
	Repositories      []RepositoryDigest  `json:"repositories"`
	MostActive        []ActivityRank      `json:"most_active"`
	Failures          []RepositoryFailure `json:"failures"`
}

// DigestOf condenses a Report into its ecosystem digest entry.
func DigestOf(analysisReport Report) RepositoryDigest {
	return RepositoryDigest{
		Name:         analysisReport.Name,
		Path:         analysisReport.Path,
		Description:  analysisReport.Description,
		CreatedAt:    analysisReport.CreatedAt,
		UpdatedAt:    analysisReport.UpdatedAt,
		TotalCommits: len(analysisReport.Commits),
		Contributors: len(analysisReport.Contributors),
		Warnings:     analysisReport.Summary.Warnings,
		Errors:       analysisReport.Summary.Errors,
	}
}
