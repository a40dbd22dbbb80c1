// Package paths provides pure string operations on '/'-delimited virtual
// folder paths. These paths address positions in the vault hierarchy and are
// unrelated to filesystem paths; path/filepath semantics (OS separators,
// Clean) do not apply here.
//
// All functions are total: malformed input (empty strings, doubled or stray
// separators) is normalized by dropping empty segments rather than rejected.
package paths

import "strings"

// Separator delimits segments in a virtual folder path.
const Separator = "/"

// Segments splits a path on '/' and drops empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, Separator)
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// Normalize rejoins the non-empty segments of path, collapsing doubled
// separators and trimming leading/trailing ones. Normalize("") == "".
func Normalize(path string) string {
	return strings.Join(Segments(path), Separator)
}

// Base returns the last non-empty segment of path, or the path itself when it
// contains no separator.
func Base(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return path
	}
	return segs[len(segs)-1]
}

// Parent returns the path with its final segment removed. The parent of a
// top-level folder (and of the empty path) is "", the root.
func Parent(path string) string {
	segs := Segments(path)
	if len(segs) <= 1 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], Separator)
}

// Join appends name under parent. An empty parent yields name itself, so the
// result never carries a leading separator.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + Separator + name
}

// IsSelfOrDescendant reports whether path is candidateAncestor itself or lies
// anywhere below it in the hierarchy.
func IsSelfOrDescendant(candidateAncestor, path string) bool {
	return path == candidateAncestor || strings.HasPrefix(path, candidateAncestor+Separator)
}
