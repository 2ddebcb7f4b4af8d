// Package diffview renders unified diffs of generated files for dry-run previews.
package diffview

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// DefaultMaxLines is the default maximum number of diff lines shown per file.
const DefaultMaxLines = 40

// Preview is the diff between a file on disk and its regenerated content.
type Preview struct {
	Path        string
	UnifiedDiff string
	Truncated   bool
	// New is true when the file does not exist yet.
	New bool
}

// Changed reports whether the regenerated content differs from disk.
func (p Preview) Changed() bool {
	return p.UnifiedDiff != ""
}

// Build compares current (empty when the file is missing) with next.
func Build(path string, current string, next string, exists bool, maxLines int) Preview {
	fromName := path
	if !exists {
		fromName = "/dev/null"
	}
	rendered, truncated := renderTruncatedUnifiedDiff(fromName, path, current, next, maxLines)
	return Preview{Path: path, UnifiedDiff: rendered, Truncated: truncated, New: !exists}
}

func normalizeMaxLines(value int) int {
	if value <= 0 {
		return DefaultMaxLines
	}
	return value
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf("... (truncated to %d lines)", limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// Indent prefixes every line of a rendered diff for nesting under a step line.
func Indent(diff string, prefix string) string {
	lines := splitDiffLines(diff)
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return ensureTrailingNewline(strings.Join(lines, "\n"))
}
