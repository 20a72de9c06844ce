package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MarkdownFormatter formats reports as Markdown.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (*MarkdownFormatter) Format(report *Report) ([]byte, error) {
	// Pre-grow builder: estimate ~60 bytes per file + ~400 bytes header
	var b strings.Builder
	b.Grow(len(report.Files)*60 + 400)

	// Header
	b.WriteString("# Source Files\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Root:** `%s`  \n", report.Root))
	b.WriteString(fmt.Sprintf("**Extensions:** %s  \n", formatExtensions(report.Extensions)))
	b.WriteString(fmt.Sprintf("**Files:** %d\n\n", len(report.Files)))

	// Files grouped by directory, in listing order
	if len(report.Files) > 0 {
		b.WriteString("## Files\n\n")
		current := ""
		for i, f := range report.Files {
			dir := filepath.ToSlash(filepath.Dir(f))
			if i == 0 || dir != current {
				if i > 0 {
					b.WriteString("\n")
				}
				current = dir
				b.WriteString(fmt.Sprintf("### %s\n\n", escapeMarkdown(displayDir(dir))))
			}
			b.WriteString(fmt.Sprintf("- `%s`\n", filepath.ToSlash(f)))
		}
		b.WriteString("\n")
	}

	// Ignored section
	if len(report.Ignored) > 0 {
		b.WriteString(fmt.Sprintf("## Ignored Paths (%d)\n\n", len(report.Ignored)))
		b.WriteString("| Path | Reason | Rule |\n")
		b.WriteString("|------|--------|------|\n")
		for _, ig := range report.Ignored {
			rule := ""
			if ig.Rule != "" {
				rule = "`" + escapeMarkdown(ig.Rule) + "`"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				escapeMarkdown(filepath.ToSlash(ig.Path)), ig.Reason, rule))
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// displayDir names the root directory for headings.
func displayDir(dir string) string {
	if dir == "." {
		return "(root)"
	}
	return dir
}

// formatExtensions renders extensions as inline code, comma separated.
func formatExtensions(exts []string) string {
	if len(exts) == 0 {
		return "none"
	}
	parts := make([]string, len(exts))
	for i, e := range exts {
		parts[i] = "`" + e + "`"
	}
	return strings.Join(parts, ", ")
}

// escapeMarkdown escapes special markdown characters in a string.
func escapeMarkdown(s string) string {
	// Escape pipe characters which break tables
	s = strings.ReplaceAll(s, "|", "\\|")
	// Escape backticks
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}
