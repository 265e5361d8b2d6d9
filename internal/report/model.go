package report

import "time"

// CheckStatus enumerates the possible outcomes of a quality check.
type CheckStatus string

const (
	// CheckStatusPass indicates the check found no issues.
	CheckStatusPass CheckStatus = "pass"
	// CheckStatusWarning indicates the check found improvable but non-blocking issues.
	CheckStatusWarning CheckStatus = "warning"
	// CheckStatusError indicates the check found a missing or broken expectation.
	CheckStatusError CheckStatus = "error"
)

// Commit captures one history entry as reported by the repository.
type Commit struct {
	Hash        string    `json:"hash"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
	Files       []string  `json:"files"`
	Additions   int       `json:"additions"`
	Deletions   int       `json:"deletions"`
}

// ContributorStat aggregates commit activity for one author identity.
type ContributorStat struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Commits     int       `json:"commits"`
	FirstCommit time.Time `json:"first_commit"`
	LastCommit  time.Time `json:"last_commit"`
}

// FileActivity counts how often one path appeared across commit change sets.
type FileActivity struct {
	Path    string `json:"path"`
	Changes int    `json:"changes"`
}

// LanguageCount tallies working-tree files sharing one extension.
type LanguageCount struct {
	Extension string `json:"extension"`
	Files     int    `json:"files"`
}

// CheckResult records the outcome of a single quality check.
type CheckResult struct {
	Name        string      `json:"name"`
	Status      CheckStatus `json:"status"`
	Message     string      `json:"message"`
	Suggestions []string    `json:"suggestions"`
}

// Summary tallies check outcomes by status.
type Summary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// RepositoryMetadata describes repository identity collected outside history.
type RepositoryMetadata struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Description string    `json:"description"`
	Branch      string    `json:"branch"`
	RemoteURL   string    `json:"remote_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Report aggregates every analysis output for one repository.
//
// Reports are immutable after Builder assembly; commit order is chronological
// oldest first, contributor and file activity sequences carry their ranking
// order, and Summary always reflects the tally of Checks statuses.
type Report struct {
	Name         string            `json:"name"`
	Path         string            `json:"path"`
	Description  string            `json:"description"`
	Branch       string            `json:"branch"`
	RemoteURL    string            `json:"remote_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Commits      []Commit          `json:"commits"`
	Contributors []ContributorStat `json:"contributors"`
	FileActivity []FileActivity    `json:"file_activity"`
	Languages    []LanguageCount   `json:"languages"`
	Tasks        []string          `json:"tasks"`
	Checks       []CheckResult     `json:"checks"`
	Summary      Summary           `json:"summary"`
}

// HasIssues reports whether any check finished below a passing status.
func (analysisReport Report) HasIssues() bool {
	return analysisReport.Summary.Warnings > 0 || analysisReport.Summary.Errors > 0
}
