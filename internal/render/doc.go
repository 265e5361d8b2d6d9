// Package render maps analysis reports onto their output formats. Renderers
// are pure functions over the report value: identical input produces
// identical output bytes, and no renderer reaches back into repository
// state. JSON output is lossless; text, Markdown, and HTML are summaries.
package render
