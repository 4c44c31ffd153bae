package normalize

import "strings"

// preservedDirectives are the preprocessor lines kept in assembly text.
// Any other line starting with '#' is a comment.
var preservedDirectives = []string{"#include", "#define", "#if", "#endif", "#ifdef", "#ifndef"}

// Assembly strips '#' comments from assembly text, one output line per
// surviving input line. Lines are never joined: labels and instructions
// are line-sensitive.
func Assembly(src string) string {
	var out []string
	for _, line := range splitLines(src) {
		line = strings.TrimRight(line, " \t\f\v")
		if line == "" {
			continue
		}

		trimmed := strings.TrimLeft(line, " \t\f\v")
		if strings.HasPrefix(trimmed, "#") {
			if isPreservedDirective(trimmed) {
				out = append(out, trimmed)
			}
			continue
		}

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimRight(line[:i], " \t\f\v")
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func isPreservedDirective(line string) bool {
	for _, d := range preservedDirectives {
		if strings.HasPrefix(line, d) {
			return true
		}
	}
	return false
}
