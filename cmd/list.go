package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/leonardomso/srclist/internal/filter"
	"github.com/leonardomso/srclist/internal/layout"
	"github.com/leonardomso/srclist/internal/output"
	"github.com/leonardomso/srclist/internal/scanner"
	"github.com/leonardomso/srclist/internal/stats"

	"github.com/spf13/cobra"
)

// listOptions holds everything the list command reads from flags.
type listOptions struct {
	Scan        ScanFlags
	ConfigFile  string
	NoConfig    bool
	Format      string
	OutputFile  string
	ShowStats   bool
	ShowIgnored bool
	Watch       bool
}

// runList is the main entry point for the root command.
func runList(c *cobra.Command, _ []string) {
	lay, err := layout.Resolve(os.Args[0])
	exitOnError(err, "Error locating sources")

	opts := currentListOptions(c)
	if opts.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = watchSources(ctx, lay, opts, os.Stdout, os.Stderr)
		stop()
	} else {
		err = listSources(lay, opts, os.Stdout, os.Stderr)
	}
	exitOnError(err, "Error")
}

// currentListOptions collects the parsed flag values.
func currentListOptions(c *cobra.Command) listOptions {
	return listOptions{
		Scan:        currentScanFlags(c),
		ConfigFile:  configFile,
		NoConfig:    noConfig,
		Format:      outputFormat,
		OutputFile:  outputFile,
		ShowStats:   showStats,
		ShowIgnored: showIgnored,
		Watch:       watchTree,
	}
}

// currentScanFlags collects the parsed scan flag values of c.
func currentScanFlags(c *cobra.Command) ScanFlags {
	return ScanFlags{
		Source:        sourceDir,
		Extensions:    extensions,
		ExtensionsSet: c.Flags().Changed("ext"),
		Include:       includeGlobs,
		Exclude:       excludeGlobs,
		Regex:         excludeRegex,
		SkipHidden:    skipHidden,
	}
}

// exitOnError prints an error message and exits if err is not nil.
func exitOnError(err error, message string) {
	if err != nil {
		if message != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

// listSources collects the sources under the resolved root and writes them.
// Nothing reaches stdout unless the whole collection succeeded.
func listSources(lay layout.Layout, opts listOptions, stdout, stderr io.Writer) error {
	scanOpts, format, err := resolveList(lay, opts)
	if err != nil {
		return err
	}
	return emitList(scanOpts, format, opts, stdout, stderr)
}

// resolveList validates flags, loads config and returns the effective scan
// options and output format.
func resolveList(lay layout.Layout, opts listOptions) (scanner.ScanOptions, string, error) {
	if err := validateListFlags(opts); err != nil {
		return scanner.ScanOptions{}, "", fmt.Errorf("invalid flags: %w", err)
	}

	lc, err := LoadConfig(opts.NoConfig, opts.ConfigFile, lay.ProjectRoot)
	if err != nil {
		return scanner.ScanOptions{}, "", err
	}

	format := lc.GetOutputFormat(opts.Format)
	if format != "" && !output.IsValidFormat(format) {
		return scanner.ScanOptions{}, "", fmt.Errorf("invalid format %q; valid formats: %s",
			format, strings.Join(output.ValidFormats(), ", "))
	}

	return lc.BuildScanOptions(opts.Scan, lay.ProjectRoot, lay.SourceRoot), format, nil
}

// emitList runs one collection and writes the result.
func emitList(scanOpts scanner.ScanOptions, format string, opts listOptions, stdout, stderr io.Writer) error {
	perf := stats.New()
	perf.StartScan()
	result, err := scanner.Collect(scanOpts)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", scanOpts.Root, err)
	}
	perf.EndScan(result.Files, result.Filter.IgnoredCount())

	report := buildReport(result, scanOpts.Extensions, opts.ShowIgnored)

	perf.StartWrite()
	if opts.ShowStats && (opts.OutputFile != "" || isStructured(format)) {
		report.Stats = perf.ToJSON()
	}
	if err := writeReport(report, format, opts.OutputFile, stdout, stderr); err != nil {
		return err
	}
	perf.EndWrite()

	if opts.ShowIgnored {
		printIgnoredPaths(stderr, result.Filter)
	}
	if opts.ShowStats {
		fmt.Fprint(stderr, perf.String())
	}
	return nil
}

// validateListFlags checks for invalid flag combinations.
func validateListFlags(opts listOptions) error {
	// Validate mutually exclusive flags
	if opts.Format != "" && opts.OutputFile != "" {
		return errors.New("--format and --output are mutually exclusive; " +
			"use --format for stdout output, or --output for file output")
	}

	if opts.Format != "" && !output.IsValidFormat(opts.Format) {
		return fmt.Errorf("invalid format %q; valid formats: %s",
			opts.Format, strings.Join(output.ValidFormats(), ", "))
	}

	for _, ext := range opts.Scan.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("--ext: empty extension")
		}
	}

	return nil
}

// isStructured reports whether format produces a report rather than a bare list.
func isStructured(format string) bool {
	return format != "" && !strings.EqualFold(format, string(output.FormatText))
}

// buildReport creates an output.Report from a collection result.
func buildReport(result *scanner.Result, exts []string, withIgnored bool) *output.Report {
	report := &output.Report{
		GeneratedAt: time.Now(),
		Root:        result.Root,
		Extensions:  exts,
		Files:       result.Files,
	}

	if withIgnored {
		for _, ig := range result.Filter.IgnoredPaths() {
			report.Ignored = append(report.Ignored, output.IgnoredPath{
				Path:   ig.Path,
				Reason: ig.Type,
				Rule:   ig.Rule,
			})
		}
	}

	return report
}

// writeReport sends the report to a file or to stdout.
func writeReport(report *output.Report, format, file string, stdout, stderr io.Writer) error {
	if file != "" {
		if err := output.WriteToFile(report, file); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
		fmt.Fprintf(stderr, "Wrote %d path(s) to %s\n", len(report.Files), filepath.Clean(file))
		return nil
	}

	data, err := output.FormatReport(report, output.Format(format))
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// printIgnoredPaths lists the paths dropped by filter rules.
func printIgnoredPaths(w io.Writer, f *filter.Filter) {
	ignored := f.IgnoredPaths()
	if len(ignored) == 0 {
		return
	}

	fmt.Fprintf(w, "\n=== Ignored Paths (%d) ===\n\n", len(ignored))
	for _, ig := range ignored {
		fmt.Fprintf(w, "  [IGNORED] %s\n", ig.Path)
		fmt.Fprintf(w, "            Reason: %s %q\n", ig.Type, ig.Rule)
	}
}
