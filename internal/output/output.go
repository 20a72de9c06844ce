// Package output provides formatting and file writing for source listings.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format represents an output format type.
type Format string

const (
	// FormatText outputs one path per line. This is the default.
	FormatText Format = "text"
	// FormatJSON outputs as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML.
	FormatYAML Format = "yaml"
	// FormatXML outputs as generic XML.
	FormatXML Format = "xml"
	// FormatMarkdown outputs as a Markdown report.
	FormatMarkdown Format = "markdown"
	// FormatHTML outputs the Markdown report rendered to HTML.
	FormatHTML Format = "html"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatText),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatXML),
		string(FormatMarkdown),
		string(FormatHTML),
	}
}

// IsValidFormat checks if a format string is valid.
func IsValidFormat(s string) bool {
	switch Format(strings.ToLower(s)) {
	case FormatText, FormatJSON, FormatYAML, FormatXML, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// IgnoredPath represents a path that was dropped by filter rules.
type IgnoredPath struct {
	Path   string
	Reason string // "include", "exclude", or "regex"
	Rule   string // The rule that matched
}

// Report contains all data needed for output formatting.
type Report struct {
	GeneratedAt time.Time
	Root        string
	Extensions  []string
	Files       []string // Root-relative, already sorted
	Ignored     []IgnoredPath
	Stats       map[string]any
}

// Formatter is the interface that output formatters implement.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// GetFormatter returns the appropriate formatter for a format.
func GetFormatter(format Format) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatXML:
		return &XMLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	case FormatHTML:
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// FormatReport formats a report using the specified format.
func FormatReport(report *Report, format Format) ([]byte, error) {
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// InferFormat determines the output format from a filename extension.
func InferFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".lst", ".list":
		return FormatText, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xml":
		return FormatXML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf(
			"cannot infer format from extension %q (supported: .txt, .lst, .list, .json, .yaml, .yml, .xml, .md, .markdown, .html, .htm)",
			ext,
		)
	}
}

// WriteToFile writes a formatted report to a file.
func WriteToFile(report *Report, filename string) error {
	format, err := InferFormat(filename)
	if err != nil {
		return err
	}

	data, err := FormatReport(report, format)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
