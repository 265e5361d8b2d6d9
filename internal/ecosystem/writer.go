package ecosystem

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/temirov/repohealth/internal/filesystem"
	"github.com/temirov/repohealth/internal/render"
	"github.com/temirov/repohealth/internal/report"
)

const (
	repositoryReportFileNameConstant     = "status.json"
	repositoryMarkdownFileNameConstant   = "status.md"
	indexPageFileNameConstant            = "index.html"
	summaryFileNameConstant              = "summary.json"
	ecosystemArtifactOwnerConstant       = "ecosystem"
	outputDirectoryErrorTemplateConstant = "unable to create output directory %s: %w"
	bundleDirectoryPermissionsConstant   = fs.FileMode(0o755)
	bundleFilePermissionsConstant        = fs.FileMode(0o644)
)

// BundleFileSystem captures the write operations bundle creation needs.
type BundleFileSystem interface {
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// WriteFailure records one bundle artifact that could not be produced.
type WriteFailure struct {
	Repository string
	Path       string
	Cause      error
}

type bundleArtifact struct {
	fileName string
	render   func() (string, error)
}

// BundleWriter materializes an orchestrated run as a browsable directory
// tree: one bundle per repository plus the summary and dashboard at the
// output root. Failures on one artifact never stop the remaining artifacts
// or repositories.
type BundleWriter struct {
	fileSystem BundleFileSystem
}

// NewBundleWriter constructs a bundle writer, defaulting to the operating
// system filesystem when none is supplied.
func NewBundleWriter(fileSystem BundleFileSystem) *BundleWriter {
	writer := &BundleWriter{fileSystem: fileSystem}
	if writer.fileSystem == nil {
		writer.fileSystem = filesystem.OSFileSystem{}
	}
	return writer
}

// WriteBundles writes every repository bundle and the root summary
// artifacts under the output directory. The returned slice lists artifacts
// that could not be written; the error is reserved for an unusable output
// root, which leaves nothing to write at all.
func (writer *BundleWriter) WriteBundles(outputDirectory string, runResult RunResult) ([]WriteFailure, error) {
	if mkdirError := writer.fileSystem.MkdirAll(outputDirectory, bundleDirectoryPermissionsConstant); mkdirError != nil {
		return nil, fmt.Errorf(outputDirectoryErrorTemplateConstant, outputDirectory, mkdirError)
	}

	var writeFailures []WriteFailure
	for _, repositoryAnalysis := range runResult.Analyses {
		writeFailures = append(writeFailures, writer.writeRepositoryBundle(outputDirectory, repositoryAnalysis)...)
	}
	writeFailures = append(writeFailures, writer.writeSummaryArtifacts(outputDirectory, runResult.Summary)...)
	return writeFailures, nil
}

func (writer *BundleWriter) writeRepositoryBundle(outputDirectory string, repositoryAnalysis RepositoryAnalysis) []WriteFailure {
	repositoryName := repositoryAnalysis.Report.Name
	repositoryDirectory := filepath.Join(outputDirectory, repositoryName)
	if mkdirError := writer.fileSystem.MkdirAll(repositoryDirectory, bundleDirectoryPermissionsConstant); mkdirError != nil {
		return []WriteFailure{{Repository: repositoryName, Path: repositoryDirectory, Cause: mkdirError}}
	}

	bundleArtifacts := []bundleArtifact{
		{repositoryReportFileNameConstant, func() (string, error) { return render.RenderJSON(repositoryAnalysis.Report) }},
		{repositoryMarkdownFileNameConstant, func() (string, error) { return render.RenderMarkdown(repositoryAnalysis.Report), nil }},
		{indexPageFileNameConstant, func() (string, error) { return render.RenderHTML(repositoryAnalysis.Report) }},
	}

	var writeFailures []WriteFailure
	for _, artifact := range bundleArtifacts {
		artifactPath := filepath.Join(repositoryDirectory, artifact.fileName)
		if writeFailure := writer.writeArtifact(repositoryName, artifactPath, artifact.render); writeFailure != nil {
			writeFailures = append(writeFailures, *writeFailure)
		}
	}
	return writeFailures
}

func (writer *BundleWriter) writeSummaryArtifacts(outputDirectory string, ecosystemSummary report.EcosystemSummary) []WriteFailure {
	summaryArtifacts := []bundleArtifact{
		{summaryFileNameConstant, func() (string, error) { return render.RenderEcosystemJSON(ecosystemSummary) }},
		{indexPageFileNameConstant, func() (string, error) { return render.RenderDashboard(ecosystemSummary) }},
	}

	var writeFailures []WriteFailure
	for _, artifact := range summaryArtifacts {
		artifactPath := filepath.Join(outputDirectory, artifact.fileName)
		if writeFailure := writer.writeArtifact(ecosystemArtifactOwnerConstant, artifactPath, artifact.render); writeFailure != nil {
			writeFailures = append(writeFailures, *writeFailure)
		}
	}
	return writeFailures
}

func (writer *BundleWriter) writeArtifact(ownerName string, artifactPath string, renderArtifact func() (string, error)) *WriteFailure {
	renderedArtifact, renderError := renderArtifact()
	if renderError != nil {
		return &WriteFailure{Repository: ownerName, Path: artifactPath, Cause: renderError}
	}
	if writeError := writer.fileSystem.WriteFile(artifactPath, []byte(renderedArtifact), bundleFilePermissionsConstant); writeError != nil {
		return &WriteFailure{Repository: ownerName, Path: artifactPath, Cause: writeError}
	}
	return nil
}
