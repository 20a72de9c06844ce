package output

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// HTMLFormatter renders the Markdown report to a standalone HTML page.
type HTMLFormatter struct{}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Source Files</title>
</head>
<body>
`

const htmlFoot = `</body>
</html>
`

// Format implements Formatter.
func (*HTMLFormatter) Format(report *Report) ([]byte, error) {
	source, err := (&MarkdownFormatter{}).Format(report)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table, // Ignored paths are a table
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	var buf bytes.Buffer
	buf.WriteString(htmlHead)
	if err := md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	buf.WriteString(htmlFoot)

	return buf.Bytes(), nil
}
