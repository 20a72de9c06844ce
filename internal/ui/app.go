package ui

import (
	"fmt"
	"slices"

	"github.com/leonardomso/srclist/internal/scanner"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

type appState int

const (
	stateScanning appState = iota // Walking the source tree
	stateResults                  // Showing the file list
)

// allExtensions is the filter position that shows every file.
const allExtensions = ""

// =============================================================================
// MODEL
// =============================================================================

// Model is the main application model.
type Model struct {
	// State
	state    appState
	quitting bool
	err      error

	// Data
	root       string
	files      []FileItem
	extensions []string // Distinct extensions present, sorted
	ignored    int

	// Extension filter; allExtensions shows everything
	extFilter string

	// Selection made with enter
	selected string

	// Components
	spinner spinner.Model
	list    list.Model
	help    help.Model
	keys    KeyMap

	// UI state
	width    int
	height   int
	showHelp bool

	// Config
	opts scanner.ScanOptions
}

// New creates and returns a new Model that collects with opts.
func New(opts scanner.ScanOptions) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = SelectedStyle
	delegate.Styles.SelectedDesc = StatusStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Source Files"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false) // We use our own help
	l.Styles.Title = TitleStyle

	return Model{
		state:     stateScanning,
		spinner:   s,
		list:      l,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		extFilter: allExtensions,
		opts:      opts,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, ScanFilesCmd(m.opts))
}

// Selected returns the path chosen with enter, or "" if the user quit.
func (m Model) Selected() string {
	return m.selected
}

// Err returns the collection error, if any.
func (m Model) Err() error {
	return m.err
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for header, summary, and detail panel
		listHeight := max(msg.Height-12, 5)
		m.list.SetSize(msg.Width, listHeight)
		return m, nil

	case spinner.TickMsg:
		if m.state != stateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FilesFoundMsg:
		return m.handleFilesFound(msg)
	}

	// Pass other messages to list if in results state
	if m.state == stateResults {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing a fuzzy filter every key except ctrl+c belongs to the list
	if m.state == stateResults && m.list.FilterState() == list.Filtering {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.ToggleHelp) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.state == stateResults {
		if key.Matches(msg, m.keys.CycleExt) {
			m.extFilter = m.nextExtension()
			m.updateListItems()
			return m, nil
		}

		if key.Matches(msg, m.keys.Print) {
			if item, ok := m.list.SelectedItem().(FileItem); ok {
				m.selected = item.Path
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleFilesFound(msg FilesFoundMsg) (tea.Model, tea.Cmd) {
	m.state = stateResults
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}

	m.root = msg.Result.Root
	m.files = FilesToItems(msg.Result.Root, msg.Result.Files)
	m.ignored = msg.Result.Filter.IgnoredCount()
	m.extensions = distinctExtensions(m.files)
	m.updateListItems()
	return m, nil
}

// nextExtension advances the filter: all, then each extension present, then all again.
func (m Model) nextExtension() string {
	if m.extFilter == allExtensions {
		if len(m.extensions) == 0 {
			return allExtensions
		}
		return m.extensions[0]
	}
	i := slices.Index(m.extensions, m.extFilter)
	if i < 0 || i+1 >= len(m.extensions) {
		return allExtensions
	}
	return m.extensions[i+1]
}

// updateListItems updates the list with the filtered files.
func (m *Model) updateListItems() {
	filtered := m.getFilteredFiles()
	items := make([]list.Item, len(filtered))
	for i, f := range filtered {
		items[i] = f
	}
	m.list.SetItems(items)
}

// getFilteredFiles returns files matching the current extension filter.
func (m *Model) getFilteredFiles() []FileItem {
	if m.extFilter == allExtensions {
		return m.files
	}
	var out []FileItem
	for _, f := range m.files {
		if f.Extension() == m.extFilter {
			out = append(out, f)
		}
	}
	return out
}

// distinctExtensions returns the sorted set of extensions among items.
func distinctExtensions(items []FileItem) []string {
	var exts []string
	for _, it := range items {
		if ext := it.Extension(); !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)
	return exts
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s string

	s += TitleStyle.Render("srclist - Source Files")
	s += "\n\n"

	if m.err != nil {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		s += "\n"
		s += HelpStyle.Render("Press q to quit")
		return s
	}

	switch m.state {
	case stateScanning:
		s += m.spinner.View() + " Scanning " + MutedStyle.Render(m.opts.Root) + "..."

	case stateResults:
		s += m.renderResults()
	}

	if m.showHelp {
		s += "\n\n" + m.help.View(m.keys)
	} else {
		s += "\n\n" + m.renderShortHelp()
	}

	return s
}

func (m Model) renderResults() string {
	var s string

	s += fmt.Sprintf("Found %d file(s) under %s", len(m.files), MutedStyle.Render(m.root))
	if m.ignored > 0 {
		s += fmt.Sprintf(" (%d ignored)", m.ignored)
	}
	s += "\n\n"

	if len(m.files) == 0 {
		s += StatusStyle.Render("No source files found.")
		return s
	}

	name := "All"
	if m.extFilter != allExtensions {
		name = m.extFilter
	}
	s += fmt.Sprintf("Filter: %s (%d/%d)\n\n",
		SelectedStyle.Render(name),
		len(m.getFilteredFiles()),
		len(m.files))

	s += m.list.View()

	if selected := m.list.SelectedItem(); selected != nil {
		if item, ok := selected.(FileItem); ok {
			s += "\n" + item.DetailView()
		}
	}

	return s
}

func (m Model) renderShortHelp() string {
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
