package metrics

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/temirov/repohealth/internal/gitrepo"
	"github.com/temirov/repohealth/internal/report"
)

const (
	defaultTaskLimitConstant         = 10
	defaultTaskWindowConstant        = 7 * 24 * time.Hour
	advisoryCommitSampleSizeConstant = 10
	largeFileChangeThresholdConstant = 50
	largeFileSampleSizeConstant      = 2
	addTestsAdvisoryConstant         = "Add tests for recent changes"
	refactorAdvisoryTemplateConstant = "Refactor large files: %s..."
	noIssuesAdvisoryConstant         = "No critical issues found"
	largeFileListSeparatorConstant   = ", "
	testPathFragmentConstant         = "test"
	taskLineSeparatorConstant        = "\n"
	taskWordSeparatorConstant        = " "
)

// taskMarkerTokens lists the comment and message markers that become tasks.
var taskMarkerTokens = []string{"TODO", "FIXME"}

// documentationSuffixes mark paths that do not count as code changes.
var documentationSuffixes = []string{".md", ".txt"}

// largeFileExtensions limit the refactoring advisory to source files.
var largeFileExtensions = []string{".py", ".js", ".ts", ".go"}

// commentIntroducers must precede a marker for a source line to count.
var commentIntroducers = []string{"//", "#", "/*", "--"}

// commentScanExtensions lists file types scanned for marker comments.
var commentScanExtensions = map[string]struct{}{
	".go":   {},
	".py":   {},
	".js":   {},
	".ts":   {},
	".rb":   {},
	".rs":   {},
	".java": {},
	".c":    {},
	".h":    {},
	".cpp":  {},
	".sh":   {},
}

// FileReader reads file contents during comment scanning.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// TaskOptions tunes task extraction.
//
// A zero ReferenceTime anchors the trailing window at the newest commit so
// extraction stays deterministic for unchanged repositories.
type TaskOptions struct {
	Window        time.Duration
	ReferenceTime time.Time
	Limit         int
}

// ExtractTasks collects actionable task lines for the repository.
//
// Marker tokens are gathered from commit messages inside the trailing window
// and from comment lines of recently-changed source files still present in
// the tree. Advisory items derived from activity patterns are appended, the
// combined list is deduplicated by normalized text and capped (default ten),
// and a repository with nothing to report yields a single all-clear entry.
func ExtractTasks(commits []report.Commit, treeSnapshot gitrepo.TreeSnapshot, fileReader FileReader, options TaskOptions) []string {
	limit := options.Limit
	if limit <= 0 {
		limit = defaultTaskLimitConstant
	}
	window := options.Window
	if window <= 0 {
		window = defaultTaskWindowConstant
	}

	collector := newTaskCollector()

	recentCommits := commitsWithinWindow(commits, options.ReferenceTime, window)
	for _, commit := range recentCommits {
		collector.addAll(markerMatches(commit.Message))
	}
	for _, relativePath := range recentlyChangedSourceFiles(recentCommits, treeSnapshot) {
		collector.addAll(scanFileComments(fileReader, treeSnapshot.Root, relativePath))
	}

	collector.addAll(advisoryTasks(commits))

	tasks := collector.items()
	if len(tasks) == 0 {
		return []string{noIssuesAdvisoryConstant}
	}
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

type taskCollector struct {
	seenNormalized map[string]struct{}
	orderedTasks   []string
}

func newTaskCollector() *taskCollector {
	return &taskCollector{seenNormalized: map[string]struct{}{}, orderedTasks: []string{}}
}

func (collector *taskCollector) add(task string) {
	trimmedTask := strings.TrimSpace(task)
	if len(trimmedTask) == 0 {
		return
	}
	normalizedTask := normalizeTaskText(trimmedTask)
	if _, alreadySeen := collector.seenNormalized[normalizedTask]; alreadySeen {
		return
	}
	collector.seenNormalized[normalizedTask] = struct{}{}
	collector.orderedTasks = append(collector.orderedTasks, trimmedTask)
}

func (collector *taskCollector) addAll(tasks []string) {
	for _, task := range tasks {
		collector.add(task)
	}
}

func (collector *taskCollector) items() []string {
	return collector.orderedTasks
}

func normalizeTaskText(task string) string {
	return strings.ToLower(strings.Join(strings.Fields(task), taskWordSeparatorConstant))
}

func commitsWithinWindow(commits []report.Commit, referenceTime time.Time, window time.Duration) []report.Commit {
	if len(commits) == 0 {
		return nil
	}
	if referenceTime.IsZero() {
		referenceTime = commits[len(commits)-1].Timestamp
	}
	windowStart := referenceTime.Add(-window)

	recentCommits := make([]report.Commit, 0, len(commits))
	for _, commit := range commits {
		if !commit.Timestamp.Before(windowStart) {
			recentCommits = append(recentCommits, commit)
		}
	}
	return recentCommits
}

// markerMatches returns one task per line containing a marker token, from
// the marker to the end of the line.
func markerMatches(text string) []string {
	matches := []string{}
	for _, line := range strings.Split(text, taskLineSeparatorConstant) {
		for _, markerToken := range taskMarkerTokens {
			markerIndex := strings.Index(line, markerToken)
			if markerIndex >= 0 {
				matches = append(matches, strings.TrimSpace(line[markerIndex:]))
				break
			}
		}
	}
	return matches
}

func recentlyChangedSourceFiles(recentCommits []report.Commit, treeSnapshot gitrepo.TreeSnapshot) []string {
	uniquePaths := map[string]struct{}{}
	for _, commit := range recentCommits {
		for _, changedPath := range commit.Files {
			extension := strings.ToLower(path.Ext(changedPath))
			if _, scannable := commentScanExtensions[extension]; !scannable {
				continue
			}
			if !treeSnapshot.Contains(changedPath) {
				continue
			}
			uniquePaths[changedPath] = struct{}{}
		}
	}

	sortedPaths := make([]string, 0, len(uniquePaths))
	for changedPath := range uniquePaths {
		sortedPaths = append(sortedPaths, changedPath)
	}
	sort.Strings(sortedPaths)
	return sortedPaths
}

func scanFileComments(fileReader FileReader, repositoryRoot string, relativePath string) []string {
	if fileReader == nil {
		return nil
	}
	fileContent, readError := fileReader.ReadFile(filepath.Join(repositoryRoot, filepath.FromSlash(relativePath)))
	if readError != nil {
		return nil
	}

	matches := []string{}
	for _, line := range strings.Split(string(fileContent), taskLineSeparatorConstant) {
		commentMatch, matched := commentMarkerMatch(line)
		if matched {
			matches = append(matches, commentMatch)
		}
	}
	return matches
}

// commentMarkerMatch extracts a marker task from a source line when a comment
// introducer precedes the marker token.
func commentMarkerMatch(line string) (string, bool) {
	introducerIndex := -1
	for _, introducer := range commentIntroducers {
		candidateIndex := strings.Index(line, introducer)
		if candidateIndex >= 0 && (introducerIndex == -1 || candidateIndex < introducerIndex) {
			introducerIndex = candidateIndex
		}
	}
	if introducerIndex == -1 {
		return "", false
	}
	for _, markerToken := range taskMarkerTokens {
		markerIndex := strings.Index(line, markerToken)
		if markerIndex > introducerIndex {
			return strings.TrimSpace(line[markerIndex:]), true
		}
	}
	return "", false
}

func advisoryTasks(commits []report.Commit) []string {
	advisories := []string{}

	sampleStart := len(commits) - advisoryCommitSampleSizeConstant
	if sampleStart < 0 {
		sampleStart = 0
	}
	recentSample := commits[sampleStart:]

	hasCodeChanges := false
	hasTestChanges := false
	for _, commit := range recentSample {
		for _, changedPath := range commit.Files {
			loweredPath := strings.ToLower(changedPath)
			if strings.Contains(loweredPath, testPathFragmentConstant) {
				hasTestChanges = true
			}
			if !hasDocumentationSuffix(loweredPath) {
				hasCodeChanges = true
			}
		}
	}
	if hasCodeChanges && !hasTestChanges {
		advisories = append(advisories, addTestsAdvisoryConstant)
	}

	largeFiles := largeChangedFiles(commits)
	if len(largeFiles) > 0 {
		advisories = append(advisories, fmt.Sprintf(refactorAdvisoryTemplateConstant, strings.Join(largeFiles, largeFileListSeparatorConstant)))
	}
	return advisories
}

func hasDocumentationSuffix(loweredPath string) bool {
	for _, documentationSuffix := range documentationSuffixes {
		if strings.HasSuffix(loweredPath, documentationSuffix) {
			return true
		}
	}
	return false
}

func largeChangedFiles(commits []report.Commit) []string {
	changeCountsByPath := map[string]int{}
	for _, commit := range commits {
		for _, changedPath := range commit.Files {
			changeCountsByPath[changedPath]++
		}
	}

	candidates := []report.FileActivity{}
	for changedPath, changeCount := range changeCountsByPath {
		if changeCount <= largeFileChangeThresholdConstant {
			continue
		}
		if !hasLargeFileExtension(changedPath) {
			continue
		}
		candidates = append(candidates, report.FileActivity{Path: changedPath, Changes: changeCount})
	}

	sort.SliceStable(candidates, func(firstIndex int, secondIndex int) bool {
		if candidates[firstIndex].Changes != candidates[secondIndex].Changes {
			return candidates[firstIndex].Changes > candidates[secondIndex].Changes
		}
		return candidates[firstIndex].Path < candidates[secondIndex].Path
	})

	if len(candidates) > largeFileSampleSizeConstant {
		candidates = candidates[:largeFileSampleSizeConstant]
	}
	largePaths := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		largePaths = append(largePaths, candidate.Path)
	}
	return largePaths
}

func hasLargeFileExtension(changedPath string) bool {
	extension := strings.ToLower(path.Ext(changedPath))
	for _, largeExtension := range largeFileExtensions {
		if extension == largeExtension {
			return true
		}
	}
	return false
}
