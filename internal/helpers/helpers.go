// Package helpers provides shared utility functions used across the application.
// These are generic helpers that don't belong to a specific domain package.
package helpers

import "strings"

// TruncateText shortens text to the specified maximum length, adding "..." if truncated.
// Returns empty string if input is empty or only whitespace.
func TruncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		// No room for the ellipsis
		return text
	}
	return text[:maxLen-3] + "..."
}

// TruncatePath shortens a path to maxLen by cutting from the front,
// so the file name stays visible: "...widgets/button.vala".
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path
	}
	return "..." + path[len(path)-(maxLen-3):]
}

// CountUniqueStrings returns the number of unique strings in a slice.
// Useful for counting distinct directories or extensions.
func CountUniqueStrings(items []string) int {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item] = true
	}
	return len(seen)
}
