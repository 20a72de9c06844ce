// Package scanner finds files in a directory tree based on their extensions.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leonardomso/srclist/internal/filter"
)

// DefaultExtension is the extension collected when none is configured.
const DefaultExtension = ".vala"

// FindFiles walks root and returns the absolute paths of all regular files
// whose name ends with one of the given extensions, compared case-insensitively.
// Extensions should include the leading dot (e.g., ".vala", ".vapi").
//
// Entries are classified by stat, so symlinks are followed. Anything that is
// neither a regular file nor a directory (broken links, sockets) is skipped.
// The order of the result is unspecified.
func FindFiles(root string, extensions []string) ([]string, error) {
	return findFiles(root, extensions, false)
}

func findFiles(root string, extensions []string, skipHidden bool) ([]string, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	w := &walker{
		suffixes:   normalizeExtensions(extensions),
		skipHidden: skipHidden,
		ancestors:  map[string]bool{},
	}
	files, err := w.walk(absRoot)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// walker holds the state of one traversal.
type walker struct {
	suffixes   []string
	skipHidden bool

	// ancestors holds the real paths of the directories on the current
	// descent. A link back to one of them is a cycle and is not followed;
	// a directory reached under two names is listed under both.
	ancestors map[string]bool
}

// walk lists dir, adds its matching files and recurses into its subdirectories.
// Each call builds its own slice and returns it to the caller.
func (w *walker) walk(dir string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if w.ancestors[resolved] {
		return nil, nil
	}
	w.ancestors[resolved] = true
	defer delete(w.ancestors, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files, subdirs []string
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		info, err := os.Stat(child)
		if err != nil {
			// A dangling symlink is neither a file nor a directory.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat: %w", err)
		}

		switch {
		case info.Mode().IsRegular():
			if w.matches(entry.Name()) {
				files = append(files, child)
			}
		case info.IsDir():
			if w.skipHidden && strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			subdirs = append(subdirs, child)
		}
	}

	for _, sub := range subdirs {
		found, err := w.walk(sub)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

// matches reports whether name ends with one of the configured extensions.
func (w *walker) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range w.suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// normalizeExtensions lowercases extensions and drops blanks and duplicates.
func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || slices.Contains(out, ext) {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// FindFilesByTypes walks a directory and returns all files matching the given type names.
// Type names are without the leading dot (e.g., "vala", "vapi", "c").
func FindFilesByTypes(root string, types []string) ([]string, error) {
	return FindFiles(root, TypesToExtensions(types))
}

// TypesToExtensions converts type names to extensions.
// Values that already start with a dot are kept as they are.
func TypesToExtensions(types []string) []string {
	extensions := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		switch {
		case t == "":
			continue
		case strings.HasPrefix(t, "."):
			extensions = append(extensions, strings.ToLower(t))
		default:
			extensions = append(extensions, "."+strings.ToLower(t))
		}
	}
	return extensions
}

// Relativize converts absolute paths under root to root-relative paths
// using the platform's separator.
func Relativize(root string, files []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(absRoot, f)
		if err != nil {
			return nil, fmt.Errorf("relative path of %s: %w", f, err)
		}
		rel = append(rel, r)
	}
	return rel, nil
}

// ScanOptions holds options for collecting files with filtering.
type ScanOptions struct {
	// Root is the directory to scan.
	Root string

	// Extensions to collect (e.g., ".vala"). Defaults to DefaultExtension when empty.
	Extensions []string

	// Include patterns (glob) - if set, only matching files are kept.
	Include []string

	// Exclude patterns (glob) - matching files are dropped.
	Exclude []string

	// Regex patterns - matching files are dropped.
	Regex []string

	// SkipHidden stops the walk from entering directories starting with ".".
	SkipHidden bool
}

// Result is the outcome of Collect.
type Result struct {
	// Root is the absolute scan root.
	Root string

	// Files are root-relative paths in ascending byte order.
	Files []string

	// Filter holds the rules applied and the paths they dropped.
	Filter *filter.Filter
}

// Collect finds matching files, makes them relative to the root,
// applies the include/exclude rules and sorts the result.
// This is the recommended entry point for listing sources.
func Collect(opts ScanOptions) (*Result, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{DefaultExtension}
	}

	// Compile rules first so a bad pattern fails before any I/O
	f, err := filter.New(filter.Config{
		Include:       opts.Include,
		Exclude:       opts.Exclude,
		RegexPatterns: opts.Regex,
	})
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Root, err)
	}

	abs, err := findFiles(root, extensions, opts.SkipHidden)
	if err != nil {
		return nil, err
	}

	rel, err := Relativize(root, abs)
	if err != nil {
		return nil, err
	}

	files := f.Apply(rel)
	slices.Sort(files)

	return &Result{
		Root:   root,
		Files:  files,
		Filter: f,
	}, nil
}
