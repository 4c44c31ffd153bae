// Package parsers extracts structure from C-family sources, linker scripts
// and build files by pattern matching.
//
// The extractors are heuristics. Function extraction over-matches call
// sites and casts shaped like declarations and misses macro-generated
// declarations; callers get a superset-biased approximation of the function
// names in a file, not exact declarations.
package parsers

import (
	"regexp"
	"strings"
)

var (
	// functionRe matches return-type words followed by an identifier and '('.
	functionRe = regexp.MustCompile(`\b([a-zA-Z_][\w\s*]+?)\s+([a-zA-Z_]\w*)\s*\(`)
	includeRe  = regexp.MustCompile(`#include\s+[<"](.+?)[>"]`)
	buildVarRe = regexp.MustCompile(`(?m)^[ \t]*(CFLAGS|LDFLAGS)[ \t]*[:+?]?=[ \t]*(.*)$`)
)

// Functions returns the function-like names in raw C or header text, in
// order of appearance, duplicates included.
func Functions(src string) []string {
	matches := functionRe.FindAllStringSubmatch(src, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[2])
	}
	return names
}

// Includes returns the raw names inside #include <...> and #include "..."
// directives, in order, duplicates included.
func Includes(src string) []string {
	matches := includeRe.FindAllStringSubmatch(src, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// BuildVar is a variable assignment found in a build file.
type BuildVar struct {
	Name  string
	Value string
}

// BuildFlags returns the CFLAGS and LDFLAGS assignments of a Makefile.
func BuildFlags(src string) []BuildVar {
	var vars []BuildVar
	for _, m := range buildVarRe.FindAllStringSubmatch(src, -1) {
		vars = append(vars, BuildVar{Name: m[1], Value: strings.TrimSpace(m[2])})
	}
	return vars
}
