package output

import (
	"encoding/json"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// jsonOutput is the JSON structure for output.
type jsonOutput struct {
	GeneratedAt string         `json:"generated_at"`
	Root        string         `json:"root"`
	Extensions  []string       `json:"extensions"`
	TotalFiles  int            `json:"total_files"`
	Files       []string       `json:"files"`
	Ignored     []jsonIgnored  `json:"ignored,omitempty"`
	Stats       map[string]any `json:"stats,omitempty"`
}

type jsonIgnored struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Rule   string `json:"rule,omitempty"`
}

// Format implements Formatter.
func (*JSONFormatter) Format(report *Report) ([]byte, error) {
	output := jsonOutput{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Root:        report.Root,
		Extensions:  nonNil(report.Extensions),
		TotalFiles:  len(report.Files),
		Files:       nonNil(report.Files),
		Stats:       report.Stats,
	}

	for _, ig := range report.Ignored {
		output.Ignored = append(output.Ignored, jsonIgnored(ig))
	}

	return json.MarshalIndent(output, "", "  ")
}

// nonNil keeps empty lists as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
