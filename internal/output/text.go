package output

import "strings"

// TextFormatter writes one path per line with no header or trailer.
// Build systems read this format directly.
type TextFormatter struct{}

// Format implements Formatter.
func (*TextFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder
	for _, f := range report.Files {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}
