package pir

import (
	"path/filepath"
	"strconv"
	"strings"
)

// FileKind is the source category of a unit, derived from its file name.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindC
	KindHeader
	KindAssembly
	KindLinkerScript
	KindBuildFile
)

func (k FileKind) String() string {
	switch k {
	case KindC:
		return "c"
	case KindHeader:
		return "header"
	case KindAssembly:
		return "assembly"
	case KindLinkerScript:
		return "linker-script"
	case KindBuildFile:
		return "build-file"
	default:
		return "unknown"
	}
}

// IsCFamily reports whether the kind is C source or a header.
func (k FileKind) IsCFamily() bool {
	return k == KindC || k == KindHeader
}

// KindOf derives the file kind from a file name.
func KindOf(name string) FileKind {
	base := filepath.Base(name)
	switch filepath.Ext(base) {
	case ".c":
		return KindC
	case ".h":
		return KindHeader
	case ".s", ".S":
		return KindAssembly
	case ".ld":
		return KindLinkerScript
	case ".mk":
		return KindBuildFile
	}
	if base == "Makefile" || base == "makefile" || base == "GNUmakefile" {
		return KindBuildFile
	}
	return KindUnknown
}

// TypeTag returns the upper-cased extension without its dot ("C", "H", "S", "LD").
// Extension-less files use their upper-cased base name ("MAKEFILE").
func TypeTag(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return strings.ToUpper(base)
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// Bucket is an architectural classification label.
type Bucket string

const (
	// BucketOther is returned when no configured bucket matches.
	BucketOther Bucket = "other"
	// BucketLink is forced for linker scripts regardless of path.
	BucketLink Bucket = "link"
)

// DefaultBuckets is the fixed lookup order used when none is configured.
var DefaultBuckets = []Bucket{"core", "mm", "driver", "fs", "user", BucketLink}

// Unit is one enumerated source file and its derived metadata.
type Unit struct {
	ID      string
	Path    string // slash-separated, relative to the scan root
	AbsPath string
	Kind    FileKind
	Type    string
	Bucket  Bucket
}

// UnitID formats the stable identifier for the n-th discovered unit.
func UnitID(n int) string {
	return "u" + strconv.Itoa(n)
}

// IncludeEdge is a directed relation from an owning unit to a raw include name.
type IncludeEdge struct {
	UnitID string
	Target string
}

// Role of a symbol in the symbol table.
type Role string

const (
	RoleFunction Role = "func"
	RoleLinker   Role = "ld"
)

// Symbol is a (name, owning unit, role) triple.
type Symbol struct {
	Name   string
	UnitID string
	Role   Role
}

// Section is a named linker output section and its input-section wildcards.
type Section struct {
	Name      string
	Wildcards []string
}

// Layout is the memory layout extracted from one linker script.
// Entry and Base are nil when the script does not declare them.
type Layout struct {
	UnitID   string
	Entry    *string
	Base     *string
	Sections []Section
	Symbols  []string
}

// BuildFlag is a CFLAGS/LDFLAGS style assignment found in a build file.
type BuildFlag struct {
	UnitID string
	Name   string
	Value  string
}

// Body is the normalized text of one unit.
type Body struct {
	UnitID string
	Text   string
}
