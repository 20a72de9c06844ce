// Package layout resolves the project and source directories relative to the
// location of the srclist binary.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProjectPath is the path from the binary's directory to the project directory.
var ProjectPath = []string{".."}

// SourcePath is the path from the binary's directory to the source directory.
var SourcePath = []string{"..", "src"}

// Layout holds the absolute directories srclist works with.
type Layout struct {
	// ScriptDir is the directory containing the invoked binary.
	ScriptDir string

	// ProjectRoot is ScriptDir joined with ProjectPath.
	ProjectRoot string

	// SourceRoot is ScriptDir joined with SourcePath. This is the traversal root.
	SourceRoot string
}

// executable is swapped in tests.
var executable = os.Executable

// Resolve builds a Layout from the invocation path (usually os.Args[0]).
// An invocation without a directory component was found on PATH, so the
// binary's real location is taken from os.Executable instead.
func Resolve(invocation string) (Layout, error) {
	dir, err := ScriptDir(invocation)
	if err != nil {
		return Layout{}, err
	}
	return FromScriptDir(dir), nil
}

// FromScriptDir builds a Layout from an already known binary directory.
func FromScriptDir(dir string) Layout {
	return Layout{
		ScriptDir:   dir,
		ProjectRoot: join(dir, ProjectPath),
		SourceRoot:  join(dir, SourcePath),
	}
}

// ScriptDir returns the absolute directory of the invoked binary.
func ScriptDir(invocation string) (string, error) {
	if !hasDir(invocation) {
		exe, err := executable()
		if err != nil {
			return "", fmt.Errorf("locating executable: %w", err)
		}
		invocation = exe
	}

	dir, err := filepath.Abs(filepath.Dir(invocation))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", invocation, err)
	}
	return dir, nil
}

// hasDir reports whether the invocation path names a directory.
// Both separators are accepted so "bin/srclist" works on Windows too.
func hasDir(invocation string) bool {
	if invocation == "" {
		return false
	}
	return strings.ContainsRune(invocation, '/') ||
		strings.ContainsRune(invocation, filepath.Separator)
}

func join(dir string, rel []string) string {
	return filepath.Join(append([]string{dir}, rel...)...)
}
