package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct{}

// yamlOutput is the YAML structure for output.
type yamlOutput struct {
	GeneratedAt string         `yaml:"generated_at"`
	Root        string         `yaml:"root"`
	Extensions  []string       `yaml:"extensions"`
	Files       []string       `yaml:"files"`
	Ignored     []yamlIgnored  `yaml:"ignored,omitempty"`
	Stats       map[string]any `yaml:"stats,omitempty"`
	TotalFiles  int            `yaml:"total_files"`
}

type yamlIgnored struct {
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
	Rule   string `yaml:"rule,omitempty"`
}

// Format implements Formatter.
func (*YAMLFormatter) Format(report *Report) ([]byte, error) {
	output := yamlOutput{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Root:        report.Root,
		Extensions:  nonNil(report.Extensions),
		TotalFiles:  len(report.Files),
		Files:       nonNil(report.Files),
		Stats:       report.Stats,
	}

	for _, ig := range report.Ignored {
		output.Ignored = append(output.Ignored, yamlIgnored(ig))
	}

	return yaml.Marshal(output)
}
