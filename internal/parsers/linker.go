package parsers

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mvp-joe/project-pir/internal/pir"
)

var (
	entryRe      = regexp.MustCompile(`ENTRY\s*\(\s*([^)]+)\s*\)`)
	baseRe       = regexp.MustCompile(`\.\s*=\s*(0x[0-9a-fA-F]+)`)
	sectionRe    = regexp.MustCompile(`\.(\w+)\s*:\s*\{([^}]*)\}`)
	wildcardRe   = regexp.MustCompile(`\*\(([^)]+)\)`)
	assignmentRe = regexp.MustCompile(`([a-zA-Z_]\w*)\s*=`)
)

// LinkerLayout is the structure extracted from one linker script.
// Entry and Base are nil when absent.
type LinkerLayout struct {
	Entry    *string
	Base     *string
	Sections []pir.Section

	// Symbols are the names assigned inside section bodies, sorted and
	// deduplicated.
	Symbols []string
}

// LinkerScript extracts the entry symbol, base load address, output
// sections and section-scope symbol assignments of a linker script.
// Malformed input yields absent fields, never an error.
func LinkerScript(src string) LinkerLayout {
	var layout LinkerLayout

	if m := entryRe.FindStringSubmatch(src); m != nil {
		entry := strings.TrimSpace(m[1])
		layout.Entry = &entry
	}

	if m := baseRe.FindStringSubmatch(src); m != nil {
		base := m[1]
		layout.Base = &base
	}

	var symbols []string
	for _, sec := range sectionRe.FindAllStringSubmatch(src, -1) {
		name, body := sec[1], sec[2]

		var wildcards []string
		for _, w := range wildcardRe.FindAllStringSubmatch(body, -1) {
			wildcards = append(wildcards, w[1])
		}
		// Sections without input wildcards are not part of the layout.
		if len(wildcards) > 0 {
			layout.Sections = append(layout.Sections, pir.Section{Name: name, Wildcards: wildcards})
		}

		for _, a := range assignmentRe.FindAllStringSubmatch(body, -1) {
			symbols = append(symbols, a[1])
		}
	}

	slices.Sort(symbols)
	layout.Symbols = slices.Compact(symbols)
	return layout
}
