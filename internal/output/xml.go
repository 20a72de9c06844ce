package output

import (
	"encoding/xml"
	"strings"
)

// XMLFormatter formats reports as generic XML.
type XMLFormatter struct{}

// xmlOutput is the XML structure for output.
type xmlOutput struct {
	XMLName     xml.Name    `xml:"sources"`
	GeneratedAt string      `xml:"generated_at,attr"`
	Root        string      `xml:"root,attr"`
	Extensions  string      `xml:"extensions,attr"`
	TotalFiles  int         `xml:"total_files,attr"`
	Files       []string    `xml:"file"`
	Ignored     *xmlIgnored `xml:"ignored,omitempty"`
}

type xmlIgnored struct {
	Items []xmlIgnoredItem `xml:"item"`
}

type xmlIgnoredItem struct {
	Path   string `xml:",chardata"`
	Reason string `xml:"reason,attr"`
	Rule   string `xml:"rule,attr,omitempty"`
}

// Format implements Formatter.
func (*XMLFormatter) Format(report *Report) ([]byte, error) {
	output := xmlOutput{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Root:        report.Root,
		Extensions:  strings.Join(report.Extensions, ","),
		TotalFiles:  len(report.Files),
		Files:       report.Files,
	}

	if len(report.Ignored) > 0 {
		output.Ignored = &xmlIgnored{}
		for _, ig := range report.Ignored {
			output.Ignored.Items = append(output.Ignored.Items, xmlIgnoredItem(ig))
		}
	}

	data, err := xml.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}
