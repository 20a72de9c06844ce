package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/leonardomso/srclist/internal/layout"
	"github.com/leonardomso/srclist/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// interactiveCmd represents the interactive command.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Browse the source list in a terminal UI",
	Long: `Launch an interactive terminal UI over the same listing the root command prints.

Type / to fuzzy-search paths, press f to cycle through the extensions
present, and press enter to print the selected path to stdout and exit.

Controls:
  ↑/↓ or j/k    Navigate through files
  /             Search
  f             Cycle extension filter
  enter         Print selected path and exit
  ?             Toggle help
  q             Quit`,
	Args: cobra.NoArgs,
	Run:  runInteractive,
}

func init() {
	addScanFlags(interactiveCmd)
	rootCmd.AddCommand(interactiveCmd)
}

// runInteractive resolves the scan options and runs the Bubble Tea program.
func runInteractive(c *cobra.Command, _ []string) {
	exitOnError(requireTerminal(os.Stdin.Fd()), "Error")

	lay, err := layout.Resolve(os.Args[0])
	exitOnError(err, "Error locating sources")

	lc, err := LoadConfig(noConfig, configFile, lay.ProjectRoot)
	exitOnError(err, "Error")

	scanOpts := lc.BuildScanOptions(currentScanFlags(c), lay.ProjectRoot, lay.SourceRoot)

	// Draw on stderr; stdout carries only the selection
	p := tea.NewProgram(ui.New(scanOpts), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	exitOnError(err, "Error running interactive mode")

	m, ok := final.(ui.Model)
	if !ok {
		return
	}
	exitOnError(m.Err(), "Error scanning")
	if selected := m.Selected(); selected != "" {
		fmt.Println(selected)
	}
}

// requireTerminal fails when fd is not an interactive terminal.
func requireTerminal(fd uintptr) error {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return errors.New("interactive mode needs a terminal on stdin; use the root command in scripts")
}
