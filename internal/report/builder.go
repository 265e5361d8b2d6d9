package report

import (
	"fmt"
	"time"
)

const (
	missingNameFieldConstant            = "name"
	missingPathFieldConstant            = "path"
	incompleteInputMessageTemplate      = "report input missing mandatory field %q"
	timestampPrecisionConstant          = time.Second
	builderClockRequiredMessageConstant = "report builder requires a clock"
)

// IncompleteInputError reports that a mandatory report field was absent.
type IncompleteInputError struct {
	MissingField string
}

// Error describes the missing mandatory field.
func (incompleteError IncompleteInputError) Error() string {
	return fmt.Sprintf(incompleteInputMessageTemplate, incompleteError.MissingField)
}

// BuildRequest carries every input consumed during report assembly.
type BuildRequest struct {
	Metadata     RepositoryMetadata
	Commits      []Commit
	Contributors []ContributorStat
	FileActivity []FileActivity
	Languages    []LanguageCount
	Tasks        []string
	Checks       []CheckResult
}

// Builder assembles immutable Reports from collected repository inputs.
type Builder struct {
	clock Clock
}

// NewBuilder constructs a Builder stamping reports with the supplied clock.
func NewBuilder(clock Clock) *Builder {
	if clock == nil {
		panic(builderClockRequiredMessageConstant)
	}
	return &Builder{clock: clock}
}

// Build validates the request and returns the assembled Report.
//
// Mandatory fields are the repository name and path; every metric and check
// section defaults to an empty collection. The Summary tally is recomputed
// from the supplied check results and timestamps are normalized to UTC with
// second precision.
func (builder *Builder) Build(request BuildRequest) (Report, error) {
	if len(request.Metadata.Name) == 0 {
		return Report{}, IncompleteInputError{MissingField: missingNameFieldConstant}
	}
	if len(request.Metadata.Path) == 0 {
		return Report{}, IncompleteInputError{MissingField: missingPathFieldConstant}
	}

	commits := normalizeCommits(request.Commits)
	updatedAt := time.Time{}
	if len(commits) > 0 {
		updatedAt = commits[len(commits)-1].Timestamp
	}

	assembledReport := Report{
		Name:         request.Metadata.Name,
		Path:         request.Metadata.Path,
		Description:  request.Metadata.Description,
		Branch:       request.Metadata.Branch,
		RemoteURL:    request.Metadata.RemoteURL,
		CreatedAt:    normalizeTimestamp(request.Metadata.CreatedAt),
		UpdatedAt:    updatedAt,
		GeneratedAt:  normalizeTimestamp(builder.clock.Now()),
		Commits:      commits,
		Contributors: normalizeContributors(request.Contributors),
		FileActivity: copyFileActivity(request.FileActivity),
		Languages:    copyLanguages(request.Languages),
		Tasks:        copyStrings(request.Tasks),
		Checks:       normalizeChecks(request.Checks),
	}
	assembledReport.Summary = summarizeChecks(assembledReport.Checks)

	return assembledReport, nil
}

// summarizeChecks tallies check statuses into a Summary.
func summarizeChecks(checkResults []CheckResult) Summary {
	tally := Summary{}
	for _, checkResult := range checkResults {
		switch checkResult.Status {
		case CheckStatusPass:
			tally.Passed++
		case CheckStatusWarning:
			tally.Warnings++
		case CheckStatusError:
			tally.Errors++
		}
	}
	return tally
}

func normalizeTimestamp(value time.Time) time.Time {
	if value.IsZero() {
		return time.Time{}
	}
	return value.UTC().Truncate(timestampPrecisionConstant)
}

func normalizeCommits(commits []Commit) []Commit {
	normalized := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		normalizedCommit := commit
		normalizedCommit.Timestamp = normalizeTimestamp(commit.Timestamp)
		normalizedCommit.Files = copyStrings(commit.Files)
		normalized = append(normalized, normalizedCommit)
	}
	return normalized
}

func normalizeContributors(contributors []ContributorStat) []ContributorStat {
	normalized := make([]ContributorStat, 0, len(contributors))
	for _, contributor := range contributors {
		normalizedContributor := contributor
		normalizedContributor.FirstCommit = normalizeTimestamp(contributor.FirstCommit)
		normalizedContributor.LastCommit = normalizeTimestamp(contributor.LastCommit)
		normalized = append(normalized, normalizedContributor)
	}
	return normalized
}

func normalizeChecks(checkResults []CheckResult) []CheckResult {
	normalized := make([]CheckResult, 0, len(checkResults))
	for _, checkResult := range checkResults {
		normalizedResult := checkResult
		normalizedResult.Suggestions = copyStrings(checkResult.Suggestions)
		normalized = append(normalized, normalizedResult)
	}
	return normalized
}

func copyFileActivity(entries []FileActivity) []FileActivity {
	copied := make([]FileActivity, len(entries))
	copy(copied, entries)
	return copied
}

func copyLanguages(entries []LanguageCount) []LanguageCount {
	copied := make([]LanguageCount, len(entries))
	copy(copied, entries)
	return copied
}

func copyStrings(values []string) []string {
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}
