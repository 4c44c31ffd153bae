// Package normalize strips comments from C-family and assembly text and
// compresses whitespace so the result is compact to display.
//
// The transforms are textual. String and character literals are not
// recognized, so comment markers or operator spacing inside literals are
// rewritten like any other text.
package normalize

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//.*`)

	// operatorSpaceRe matches horizontal whitespace around punctuation and
	// operator characters. Newlines are never consumed.
	operatorSpaceRe = regexp.MustCompile(`[ \t\f\v]*([=+\-*/%&|^!<>?:;,(){}\[\]])[ \t\f\v]*`)
)

// StripCComments removes /* ... */ block comments and // line comments.
func StripCComments(src string) string {
	src = blockCommentRe.ReplaceAllString(src, "")
	return lineCommentRe.ReplaceAllString(src, "")
}

// C minifies C or header text.
//
// Comments are removed and blank lines dropped. Every preprocessor directive
// is emitted alone on its own line, unchanged apart from surrounding
// whitespace. Runs of ordinary lines between directives are joined with
// single spaces and have the whitespace around operators removed, so
// "a = b + c;" becomes "a=b+c;".
func C(src string) string {
	src = StripCComments(src)

	var out []string
	var buf []string
	flush := func() {
		if len(buf) == 0 {
			return
		}
		out = append(out, compressOperators(strings.Join(buf, " ")))
		buf = buf[:0]
	}

	for _, line := range splitLines(src) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			flush()
			out = append(out, line)
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return strings.Join(out, "\n")
}

func compressOperators(line string) string {
	return operatorSpaceRe.ReplaceAllString(line, "$1")
}

// splitLines splits on \n, \r\n and lone \r.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
