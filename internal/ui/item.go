package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leonardomso/srclist/internal/helpers"
)

// FileItem wraps a listed source path to implement list.Item interface.
type FileItem struct {
	// Path is relative to Root, with native separators.
	Path string
	Root string
}

// FilterValue returns the string used for filtering.
// Implements list.Item interface.
func (i FileItem) FilterValue() string {
	return filepath.ToSlash(i.Path)
}

// Title returns the main display text for the item.
// Implements list.DefaultItem interface.
func (i FileItem) Title() string {
	return filepath.Base(i.Path)
}

// Description returns secondary text for the item.
// Implements list.DefaultItem interface.
func (i FileItem) Description() string {
	dir := filepath.Dir(i.Path)
	if dir == "." {
		return "(root)"
	}
	return helpers.TruncatePath(filepath.ToSlash(dir), 60)
}

// Extension returns the lowercased extension of the file, with its dot.
func (i FileItem) Extension() string {
	return strings.ToLower(filepath.Ext(i.Path))
}

// DetailView returns an expanded detail view for the selected item.
func (i FileItem) DetailView() string {
	var b strings.Builder

	b.WriteString("┌─ Details ─────────────────────────────────────────────────────────────\n")
	b.WriteString(fmt.Sprintf("│ %s  %s\n", DetailLabelStyle.Render("Path:"), i.Path))
	b.WriteString(fmt.Sprintf("│ %s  %s\n", DetailLabelStyle.Render("Type:"), ExtensionBadge(i.Extension())))
	if i.Root != "" {
		b.WriteString(fmt.Sprintf("│ %s  %s\n", DetailLabelStyle.Render("Absolute:"), filepath.Join(i.Root, i.Path)))
	}
	b.WriteString("└────────────────────────────────────────────────────────────────────────\n")

	return b.String()
}

// FilesToItems converts root-relative paths to FileItems.
func FilesToItems(root string, files []string) []FileItem {
	items := make([]FileItem, len(files))
	for i, f := range files {
		items[i] = FileItem{Path: f, Root: root}
	}
	return items
}
