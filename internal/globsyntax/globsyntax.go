// Package globsyntax provides syntax-only glob validation for link, anchor,
// and heat path fields: the analyzer never touches a filesystem, so the
// only thing worth checking is whether gobwas/glob can compile the pattern
// at all.
package globsyntax

import "github.com/gobwas/glob"

// Valid reports whether pattern compiles as a glob using '/' as the
// path separator, matching how file paths are written throughout MBEL
// documents.
func Valid(pattern string) bool {
	_, err := glob.Compile(pattern, '/')
	return err == nil
}

// Match reports whether path matches pattern, compiling pattern fresh
// each call; there is no compiled-pattern cache. The query engine calls
// this only for the heat entries and hotspot anchors whose paths are globs.
func Match(pattern, path string) bool {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return false
	}
	return g.Match(path)
}

// TripleAsterisk reports the one pattern shape gobwas/glob accepts
// syntactically but MBEL treats as invalid: three or more consecutive
// asterisks, which no tool in the ecosystem gives meaning to.
func TripleAsterisk(pattern string) bool {
	count := 0
	for _, r := range pattern {
		if r == '*' {
			count++
			if count >= 3 {
				return true
			}
		} else {
			count = 0
		}
	}
	return false
}
