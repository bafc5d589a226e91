// Package icons picks the glyph shown next to a citation.
package icons

import "strings"

const (
	// Document marks a file-based source.
	Document = "📄"
	// Link marks a web source.
	Link = "🔗"
)

// ForSource returns the icon for a raw source path or URI.
func ForSource(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Link
	}
	return Document
}
