package ui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/leonardomso/srclist/internal/scanner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T, files ...string) Model {
	t.Helper()

	m := New(scanner.ScanOptions{Root: "/project/src"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(FilesFoundMsg{Result: &scanner.Result{
		Root:  "/project/src",
		Files: files,
	}})

	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := New(scanner.ScanOptions{Root: "src"})

	assert.Equal(t, stateScanning, m.state)
	assert.Equal(t, allExtensions, m.extFilter)
	assert.Empty(t, m.Selected())
	assert.NoError(t, m.Err())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Scanning")
}

func TestFilesFound(t *testing.T) {
	t.Parallel()

	t.Run("PopulatesList", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t, "main.vala", filepath.Join("ui", "window.vala"), filepath.Join("ui", "gtk.vapi"))

		assert.Equal(t, stateResults, m.state)
		assert.Len(t, m.list.Items(), 3)
		assert.Equal(t, []string{".vala", ".vapi"}, m.extensions)
		assert.Contains(t, m.View(), "Found 3 file(s)")
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t)

		assert.Empty(t, m.list.Items())
		assert.Contains(t, m.View(), "No source files found.")
	})

	t.Run("Error", func(t *testing.T) {
		t.Parallel()
		m := New(scanner.ScanOptions{Root: "missing"})
		updated, _ := m.Update(FilesFoundMsg{Err: errors.New("boom")})

		model, ok := updated.(Model)
		require.True(t, ok)
		require.Error(t, model.Err())
		assert.Contains(t, model.View(), "Error: boom")
	})
}

func TestExtensionFilterCycle(t *testing.T) {
	t.Parallel()

	m := loadedModel(t, "a.vala", "b.vala", "c.vapi")

	steps := []struct {
		ext   string
		count int
	}{
		{".vala", 2},
		{".vapi", 1},
		{allExtensions, 3},
	}

	var current tea.Model = m
	for _, step := range steps {
		current, _ = current.Update(keyRune('f'))
		model, ok := current.(Model)
		require.True(t, ok)
		assert.Equal(t, step.ext, model.extFilter)
		assert.Len(t, model.list.Items(), step.count)
	}
}

func TestExtensionFilterNoFiles(t *testing.T) {
	t.Parallel()

	m := loadedModel(t)
	updated, _ := m.Update(keyRune('f'))

	model, ok := updated.(Model)
	require.True(t, ok)
	assert.Equal(t, allExtensions, model.extFilter)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("EnterPrintsSelection", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t, "a.vala", filepath.Join("sub", "b.vala"))

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model, ok := updated.(Model)
		require.True(t, ok)

		assert.Equal(t, "a.vala", model.Selected())
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("EnterWithoutItems", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t)

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model, ok := updated.(Model)
		require.True(t, ok)

		assert.Empty(t, model.Selected())
		assert.Nil(t, cmd)
	})
}

func TestQuitAndHelp(t *testing.T) {
	t.Parallel()

	t.Run("Quit", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t, "a.vala")

		updated, cmd := m.Update(keyRune('q'))
		model, ok := updated.(Model)
		require.True(t, ok)

		assert.True(t, model.quitting)
		assert.Empty(t, model.Selected())
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, model.View())
	})

	t.Run("HelpToggles", func(t *testing.T) {
		t.Parallel()
		m := loadedModel(t, "a.vala")

		updated, _ := m.Update(keyRune('?'))
		model, ok := updated.(Model)
		require.True(t, ok)
		assert.True(t, model.showHelp)

		updated, _ = model.Update(keyRune('?'))
		model, ok = updated.(Model)
		require.True(t, ok)
		assert.False(t, model.showHelp)
	})
}
