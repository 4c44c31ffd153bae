package pir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for PIR model:
// - KindOf()/TypeTag() derive kind and type tag from file names
// - SymbolTable collapses identical triples and sorts by name, unit, role
// - DependencyGraph drops edges whose owner is unknown and keeps duplicate edges in order
// - DependencyGraph counts distinct vertices and edges and ranks include targets
// - Render() emits sections in fixed order, omits absent layout fields and empty bodies

func TestKindAndTypeTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind FileKind
		tag  string
	}{
		{"a/main.c", KindC, "C"},
		{"os.h", KindHeader, "H"},
		{"start.S", KindAssembly, "S"},
		{"entry.s", KindAssembly, "S"},
		{"kernel.ld", KindLinkerScript, "LD"},
		{"Makefile", KindBuildFile, "MAKEFILE"},
		{"rules.mk", KindBuildFile, "MK"},
		{"notes.txt", KindUnknown, "TXT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.name), tt.name)
		assert.Equal(t, tt.tag, TypeTag(tt.name), tt.name)
	}
	assert.True(t, KindC.IsCFamily())
	assert.True(t, KindHeader.IsCFamily())
	assert.False(t, KindAssembly.IsCFamily())
}

func TestSymbolTable_DedupAndSort(t *testing.T) {
	t.Parallel()

	st := NewSymbolTable()
	st.Add("main", "u1", RoleFunction)
	st.Add("add", "u10", RoleFunction)
	st.Add("add", "u2", RoleFunction)
	st.Add("main", "u1", RoleFunction)
	st.Add("_end", "u3", RoleLinker)
	st.Add("main", "u1", RoleLinker)
	st.Add("", "u1", RoleFunction)

	assert.Equal(t, 5, st.Len())
	assert.Equal(t, []Symbol{
		{"_end", "u3", RoleLinker},
		{"add", "u10", RoleFunction},
		{"add", "u2", RoleFunction},
		{"main", "u1", RoleFunction},
		{"main", "u1", RoleLinker},
	}, st.Sorted())
}

func TestDependencyGraph(t *testing.T) {
	t.Parallel()

	g := NewDependencyGraph([]Unit{{ID: "u0"}, {ID: "u1"}})

	assert.True(t, g.Add(IncludeEdge{UnitID: "u0", Target: "os.h"}))
	assert.True(t, g.Add(IncludeEdge{UnitID: "u1", Target: "os.h"}))
	assert.True(t, g.Add(IncludeEdge{UnitID: "u0", Target: "os.h"}))
	assert.False(t, g.Add(IncludeEdge{UnitID: "u9", Target: "stdio.h"}))

	assert.Equal(t, []IncludeEdge{
		{UnitID: "u0", Target: "os.h"},
		{UnitID: "u1", Target: "os.h"},
		{UnitID: "u0", Target: "os.h"},
	}, g.Edges())

	nodes, edges, err := g.Counts()
	require.NoError(t, err)
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 2, edges)

	top, err := g.TopTargets(5)
	require.NoError(t, err)
	assert.Equal(t, []TargetCount{{Target: "os.h", Units: 2}}, top)
}

func TestDependencyGraph_TopTargets(t *testing.T) {
	t.Parallel()

	g := NewDependencyGraph([]Unit{{ID: "u0"}, {ID: "u1"}, {ID: "u2"}})
	g.Add(IncludeEdge{UnitID: "u0", Target: "types.h"})
	g.Add(IncludeEdge{UnitID: "u1", Target: "types.h"})
	g.Add(IncludeEdge{UnitID: "u2", Target: "types.h"})
	g.Add(IncludeEdge{UnitID: "u0", Target: "riscv.h"})
	g.Add(IncludeEdge{UnitID: "u1", Target: "defs.h"})

	top, err := g.TopTargets(2)
	require.NoError(t, err)
	assert.Equal(t, []TargetCount{
		{Target: "types.h", Units: 3},
		{Target: "defs.h", Units: 1},
	}, top)

	all, err := g.TopTargets(-1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRender_OmitsAbsentFields(t *testing.T) {
	t.Parallel()

	base := "0x80000000"
	doc := &Document{
		Meta: Meta{Name: "os", Root: "/src/os", Profile: "os-riscv"},
		Units: []Unit{
			{ID: "u0", Path: "os.ld", Type: "LD", Bucket: BucketLink},
			{ID: "u1", Path: "empty.c", Type: "C", Bucket: BucketOther},
		},
		Layouts: []Layout{
			{UnitID: "u0", Base: &base, Sections: []Section{{Name: "text", Wildcards: []string{".text", ".text.*"}}}},
		},
		Bodies: []Body{{UnitID: "u1", Text: ""}},
	}

	out := doc.Render()
	assert.Contains(t, out, "<LAYOUT>\nBASE=0x80000000\n.text:.text .text.*\n</LAYOUT>\n")
	assert.NotContains(t, out, "ENTRY=")
	assert.Contains(t, out, "<CODE>\n</CODE>\n</PIR>\n")
	assert.Contains(t, out, "lang:C,ASM,LD\n")
	assert.NotContains(t, out, "<BUILD>")

	order := []string{"<PIR>", "<META>", "<UNITS>", "<GRAPH>", "<SYMBOLS>", "<LAYOUT>", "<CODE>", "</PIR>"}
	last := -1
	for _, tag := range order {
		idx := strings.Index(out, tag)
		require.Greater(t, idx, last, tag)
		last = idx
	}
}
