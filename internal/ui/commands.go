package ui

import (
	"github.com/leonardomso/srclist/internal/scanner"

	tea "github.com/charmbracelet/bubbletea"
)

// ScanFilesCmd returns a command that collects source files with the given options.
func ScanFilesCmd(opts scanner.ScanOptions) tea.Cmd {
	return func() tea.Msg {
		result, err := scanner.Collect(opts)
		return FilesFoundMsg{Result: result, Err: err}
	}
}
