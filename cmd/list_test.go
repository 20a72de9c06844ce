package cmd

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leonardomso/srclist/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProject creates <tmp>/bin and <tmp>/src with the given files under src.
func newProject(t *testing.T, files ...string) (layout.Layout, string) {
	t.Helper()

	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "src"), 0o755))
	writeFiles(t, filepath.Join(tmp, "src"), files...)

	return layout.FromScriptDir(filepath.Join(tmp, "bin")), tmp
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+f+"\n"), 0o600))
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srclistrc.yaml"), []byte(content), 0o600))
}

func defaultOptions() listOptions {
	return listOptions{
		Scan:     ScanFlags{Extensions: defaultExtensions},
		NoConfig: true,
	}
}

func run(t *testing.T, lay layout.Layout, opts listOptions) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := listSources(lay, opts, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func lines(paths ...string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(filepath.FromSlash(p))
		b.WriteString("\n")
	}
	return b.String()
}

func TestListSources(t *testing.T) {
	t.Parallel()

	t.Run("ListsValaSortedAndRelative", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t, "b.vala", "a.VALA", "sub/c.vala", "notes.txt", "sub/d.vapi")

		stdout, stderr, err := run(t, lay, defaultOptions())

		require.NoError(t, err)
		assert.Equal(t, lines("a.VALA", "b.vala", "sub/c.vala"), stdout)
		assert.Empty(t, stderr)
	})

	t.Run("EmptyTreePrintsNothing", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t)

		stdout, _, err := run(t, lay, defaultOptions())

		require.NoError(t, err)
		assert.Empty(t, stdout)
	})

	t.Run("MissingSourceRoot", func(t *testing.T) {
		t.Parallel()
		tmp := t.TempDir()
		lay := layout.FromScriptDir(filepath.Join(tmp, "bin"))

		stdout, _, err := run(t, lay, defaultOptions())

		require.Error(t, err)
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Empty(t, stdout)
	})

	t.Run("SourceFlagOverridesLayout", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "ignored.vala")
		writeFiles(t, filepath.Join(tmp, "lib"), "x.vala")

		opts := defaultOptions()
		opts.Scan.Source = filepath.Join(tmp, "lib")
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("x.vala"), stdout)
	})

	t.Run("ExtensionFlag", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t, "a.vala", "b.vapi", "c.c")

		opts := defaultOptions()
		opts.Scan.Extensions = []string{"vala", ".VAPI"}
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala", "b.vapi"), stdout)
	})

	t.Run("ExcludeAndShowIgnored", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t, "main.vala", "tests/main_test.vala")

		opts := defaultOptions()
		opts.Scan.Exclude = []string{"tests/**"}
		opts.ShowIgnored = true
		stdout, stderr, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("main.vala"), stdout)
		assert.Contains(t, stderr, "Ignored Paths (1)")
		assert.Contains(t, stderr, "[IGNORED] "+filepath.Join("tests", "main_test.vala"))
		assert.Contains(t, stderr, `exclude "tests/**"`)
	})

	t.Run("StatsGoToStderr", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t, "a.vala")

		opts := defaultOptions()
		opts.ShowStats = true
		stdout, stderr, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala"), stdout)
		assert.Contains(t, stderr, "Performance Statistics")
	})

	t.Run("JSONFormat", func(t *testing.T) {
		t.Parallel()
		lay, _ := newProject(t, "b.vala", "a.vala")

		opts := defaultOptions()
		opts.Format = "json"
		stdout, _, err := run(t, lay, opts)
		require.NoError(t, err)

		var got struct {
			TotalFiles int      `json:"total_files"`
			Files      []string `json:"files"`
			Extensions []string `json:"extensions"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, 2, got.TotalFiles)
		assert.Equal(t, []string{"a.vala", "b.vala"}, got.Files)
		assert.Equal(t, []string{".vala"}, got.Extensions)
	})

	t.Run("OutputFile", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala", "sub/b.vala")
		report := filepath.Join(tmp, "sources.md")

		opts := defaultOptions()
		opts.OutputFile = report
		stdout, stderr, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Wrote 2 path(s)")

		data, err := os.ReadFile(report)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Source Files")
		assert.Contains(t, string(data), "- `sub/b.vala`")
	})
}

func TestListSourcesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*listOptions)
		errMsg string
	}{
		{
			name: "FormatAndOutput",
			modify: func(o *listOptions) {
				o.Format = "json"
				o.OutputFile = "out.json"
			},
			errMsg: "mutually exclusive",
		},
		{
			name:   "InvalidFormat",
			modify: func(o *listOptions) { o.Format = "csv" },
			errMsg: "invalid format",
		},
		{
			name:   "EmptyExtension",
			modify: func(o *listOptions) { o.Scan.Extensions = []string{" "} },
			errMsg: "empty extension",
		},
		{
			name:   "InvalidGlob",
			modify: func(o *listOptions) { o.Scan.Exclude = []string{"[unclosed"} },
			errMsg: "invalid glob pattern",
		},
		{
			name:   "InvalidRegex",
			modify: func(o *listOptions) { o.Scan.Regex = []string{"(unclosed"} },
			errMsg: "invalid regex pattern",
		},
		{
			name:   "UnknownOutputExtension",
			modify: func(o *listOptions) { o.OutputFile = "report.pdf" },
			errMsg: "cannot infer format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lay, _ := newProject(t, "a.vala")

			opts := defaultOptions()
			tt.modify(&opts)
			stdout, _, err := run(t, lay, opts)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, stdout)
		})
	}
}

func TestListSourcesWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("ConfigFromProjectRoot", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala", "b.vapi", "tests/t.vapi")
		writeConfig(t, tmp, `
source:
  extensions: [.vapi]
scan:
  exclude: ["tests/**"]
`)

		opts := defaultOptions()
		opts.NoConfig = false
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("b.vapi"), stdout)
	})

	t.Run("CLIOverridesConfig", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala", "b.vapi")
		writeConfig(t, tmp, "source:\n  extensions: [.vapi]\noutput:\n  format: json\n")

		opts := defaultOptions()
		opts.NoConfig = false
		opts.Scan.Extensions = []string{".vala", ".vapi"}
		opts.Scan.ExtensionsSet = true
		opts.Format = "text"
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala", "b.vapi"), stdout)
	})

	t.Run("ExplicitDefaultExtensionBeatsConfig", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala", "b.vapi")
		writeConfig(t, tmp, "source:\n  extensions: [.vapi]\n")

		opts := defaultOptions()
		opts.NoConfig = false
		opts.Scan.Extensions = []string{".vala"}
		opts.Scan.ExtensionsSet = true
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala"), stdout)
	})

	t.Run("ConfigAboveProjectRootIgnored", func(t *testing.T) {
		t.Parallel()
		parent := t.TempDir()
		project := filepath.Join(parent, "project")
		require.NoError(t, os.MkdirAll(filepath.Join(project, "bin"), 0o755))
		writeFiles(t, filepath.Join(project, "src"), "a.vala", "b.vapi")
		writeConfig(t, parent, "source:\n  extensions: [.vapi]\n")
		lay := layout.FromScriptDir(filepath.Join(project, "bin"))

		opts := defaultOptions()
		opts.NoConfig = false
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala"), stdout)
	})

	t.Run("ConfigSourcePath", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "skipped.vala")
		writeFiles(t, filepath.Join(tmp, "lib", "src"), "core.vala")
		writeConfig(t, tmp, "source:\n  path: lib/src\n")

		opts := defaultOptions()
		opts.NoConfig = false
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("core.vala"), stdout)
	})

	t.Run("NoConfigSkipsFile", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala")
		writeConfig(t, tmp, "source:\n  extensions: [.vapi]\n")

		stdout, _, err := run(t, lay, defaultOptions())

		require.NoError(t, err)
		assert.Equal(t, lines("a.vala"), stdout)
	})

	t.Run("ExplicitConfigFile", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala", "b.vapi")
		path := filepath.Join(tmp, "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[source]\nextensions = [\".vapi\"]\n"), 0o600))

		opts := defaultOptions()
		opts.NoConfig = false
		opts.ConfigFile = path
		stdout, _, err := run(t, lay, opts)

		require.NoError(t, err)
		assert.Equal(t, lines("b.vapi"), stdout)
	})

	t.Run("ExplicitConfigMissing", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala")

		opts := defaultOptions()
		opts.NoConfig = false
		opts.ConfigFile = filepath.Join(tmp, "nope.yaml")
		_, _, err := run(t, lay, opts)

		require.Error(t, err)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("InvalidConfigFormat", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala")
		writeConfig(t, tmp, "output:\n  format: pdf\n")

		opts := defaultOptions()
		opts.NoConfig = false
		stdout, _, err := run(t, lay, opts)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
		assert.Empty(t, stdout)
	})

	t.Run("MalformedConfig", func(t *testing.T) {
		t.Parallel()
		lay, tmp := newProject(t, "a.vala")
		writeConfig(t, tmp, "source: [unclosed\n")

		opts := defaultOptions()
		opts.NoConfig = false
		_, _, err := run(t, lay, opts)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})
}
