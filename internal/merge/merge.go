// Package merge implements the delta aggregator (§4.5): insertion-point
// resolution, duplicate detection, and cross-delta conflict detection for
// the boundary layer that merges generated snippets into an existing MBEL
// document. File I/O is the caller's responsibility — this package only
// computes text and metadata.
package merge

import (
	"regexp"
	"strings"
)

// InsertionPoint is findInsertionPoint's result: where a delta belongs in
// an existing document.
type InsertionPoint struct {
	Section      string
	Line         int // 1-based
	IsNewSection bool
	Offset       int // 0-based rune offset
}

// Delta is one snippet to merge: the section it belongs to, and its text.
type Delta struct {
	Section string
	Text    string
}

var sectionHeader = regexp.MustCompile(`^\[([^\]]+)\]\s*$`)

// FindInsertionPoint locates where delta's text should be inserted into
// content: at the end of its matching [SECTION], or at end-of-file if no
// section with that name exists yet.
func FindInsertionPoint(content string, delta Delta) InsertionPoint {
	runes := []rune(content)
	lines := splitKeepEnds(content)

	lineOffset := 0
	inSection := false
	sectionEndOffset := len(runes)
	sectionEndLine := len(lines) + 1

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r\n")
		if m := sectionHeader.FindStringSubmatch(trimmed); m != nil {
			if inSection {
				sectionEndOffset = lineOffset
				sectionEndLine = i + 1
				break
			}
			if m[1] == delta.Section {
				inSection = true
			}
		}
		lineOffset += len([]rune(line))
	}

	if !inSection {
		return InsertionPoint{
			Section:      delta.Section,
			Line:         len(lines) + 1,
			IsNewSection: true,
			Offset:       len(runes),
		}
	}
	if sectionEndOffset == len(runes) && sectionEndLine == len(lines)+1 {
		// matched section ran to end of file with no following header.
		sectionEndOffset = len(runes)
		sectionEndLine = len(lines) + 1
	}
	return InsertionPoint{
		Section:      delta.Section,
		Line:         sectionEndLine,
		IsNewSection: false,
		Offset:       sectionEndOffset,
	}
}

// splitKeepEnds splits s into lines, keeping each line's trailing
// terminator so offsets computed by summing line lengths stay aligned
// with the original text.
func splitKeepEnds(s string) []string {
	var lines []string
	start := 0
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' {
			lines = append(lines, string(runes[start:i+1]))
			start = i + 1
		}
	}
	if start < len(runes) {
		lines = append(lines, string(runes[start:]))
	}
	return lines
}

// IsDuplicate reports whether delta's trimmed text already occurs
// verbatim somewhere in content.
func IsDuplicate(content, delta string) bool {
	trimmed := strings.TrimSpace(delta)
	if trimmed == "" {
		return false
	}
	return strings.Contains(content, trimmed)
}
