package cmd

import (
	"os"

	"github.com/leonardomso/srclist/internal/scanner"

	"github.com/spf13/cobra"
)

// version is set by main.go via SetVersion.
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Flag variables shared by the root and interactive commands.
var (
	sourceDir    string
	extensions   []string
	includeGlobs []string
	excludeGlobs []string
	excludeRegex []string
	skipHidden   bool
	configFile   string
	noConfig     bool

	// Output flags, root command only.
	outputFormat string
	outputFile   string
	showStats    bool
	showIgnored  bool
	watchTree    bool
)

// defaultExtensions is the --ext default.
var defaultExtensions = []string{scanner.DefaultExtension}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "srclist",
	Short:   "List the Vala sources of a project",
	Version: version,
	Long: `srclist prints every Vala source file of a project, one path per line.

The source root is the "src" directory next to the directory holding the
srclist binary (<bin>/../src). Paths are printed relative to that root and
sorted. Extensions match case-insensitively, so "Main.VALA" is listed too.

Exit codes:
  0 - Listing printed (possibly empty)
  1 - Any error (nothing is printed to stdout)

Examples:
  srclist                            # List <bin>/../src/**/*.vala
  srclist --source=./lib             # List another tree
  srclist --ext=.vala,.vapi          # Also list bindings
  srclist --exclude="tests/**"       # Drop test sources
  srclist --format=json              # JSON report to stdout
  srclist --output=sources.md        # Markdown report to a file
  srclist --stats                    # Timing on stderr
  srclist --watch -o sources.txt     # Keep sources.txt up to date
  srclist interactive                # Browse the list in a TUI

Note: --format and --output are mutually exclusive.

Config file (.srclistrc.yaml in the project root; parent directories are not searched):
  source:
    path: src
    extensions: [.vala]
  scan:
    exclude: ["tests/**"]`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	addScanFlags(rootCmd)

	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format for stdout: text, json, yaml, xml, markdown, html")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write report to file (format inferred from extension: .txt, .json, .yaml, .xml, .md, .html)")
	rootCmd.Flags().BoolVar(&showStats, "stats", false,
		"Show performance statistics on stderr")
	rootCmd.Flags().BoolVar(&showIgnored, "show-ignored", false,
		"Show which paths were filtered out and why, on stderr")
	rootCmd.Flags().BoolVarP(&watchTree, "watch", "w", false,
		"Keep running and list again whenever files are added, removed or renamed")
}

// addScanFlags registers the flags that control what is collected.
func addScanFlags(c *cobra.Command) {
	c.Flags().StringVarP(&sourceDir, "source", "s", "",
		"Source root to scan (default: <bin>/../src)")
	c.Flags().StringSliceVarP(&extensions, "ext", "e", defaultExtensions,
		"Extensions to list, case-insensitive (comma-separated or repeated)")
	c.Flags().StringSliceVar(&includeGlobs, "include", nil,
		"Only list paths matching these glob patterns (can be repeated)")
	c.Flags().StringSliceVar(&excludeGlobs, "exclude", nil,
		"Glob patterns of paths to drop (can be repeated)")
	c.Flags().StringSliceVar(&excludeRegex, "exclude-regex", nil,
		"Regex patterns of paths to drop (can be repeated)")
	c.Flags().BoolVar(&skipHidden, "skip-hidden", false,
		"Do not descend into directories starting with a dot")
	c.Flags().StringVar(&configFile, "config", "",
		"Config file to use instead of searching for .srclistrc.yaml")
	c.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading the config file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
